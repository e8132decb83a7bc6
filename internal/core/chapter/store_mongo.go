// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/dberr"
	"github.com/taibuivan/enredo/internal/platform/mongodb"
)

// # MongoDB Documents

type chapterDocument struct {
	ID            string    `bson:"_id"`
	StoryID       string    `bson:"story_id"`
	ChapterNumber int       `bson:"chapter_number"`
	Title         string    `bson:"title"`
	Content       string    `bson:"content"`
	IsEnding      bool      `bson:"is_ending"`
	DateCreated   time.Time `bson:"date_created"`
}

func (document chapterDocument) toChapter() *Chapter {
	return &Chapter{
		ID:        document.ID,
		StoryID:   document.StoryID,
		Number:    document.ChapterNumber,
		Title:     document.Title,
		Content:   document.Content,
		IsEnding:  document.IsEnding,
		CreatedAt: document.DateCreated,
	}
}

type choiceDocument struct {
	ID            string    `bson:"_id"`
	ChapterID     string    `bson:"chapter_id"`
	ChoiceText    string    `bson:"choice_text"`
	NextChapterID *string   `bson:"next_chapter_id"`
	OrderNumber   int       `bson:"order_number"`
	DateCreated   time.Time `bson:"date_created"`
}

func (document choiceDocument) toChoice() *Choice {
	return &Choice{
		ID:            document.ID,
		ChapterID:     document.ChapterID,
		Text:          document.ChoiceText,
		NextChapterID: document.NextChapterID,
		Order:         document.OrderNumber,
		CreatedAt:     document.DateCreated,
	}
}

var (
	chapterSort = bson.D{{Key: "chapter_number", Value: 1}, {Key: "date_created", Value: 1}, {Key: "_id", Value: 1}}
	choiceSort  = bson.D{{Key: "chapter_id", Value: 1}, {Key: "order_number", Value: 1}, {Key: "date_created", Value: 1}, {Key: "_id", Value: 1}}
)

// # Chapter Repository

type mongoChapterRepository struct {
	chapters *mongo.Collection
}

// NewMongoChapterRepository constructs a MongoDB backed chapter store.
func NewMongoChapterRepository(db *mongo.Database) ChapterRepository {
	return &mongoChapterRepository{chapters: db.Collection(mongodb.CollectionChapters)}
}

func (repository *mongoChapterRepository) Create(context context.Context, chapter *Chapter) error {
	_, err := repository.chapters.InsertOne(context, chapterDocument{
		ID:            chapter.ID,
		StoryID:       chapter.StoryID,
		ChapterNumber: chapter.Number,
		Title:         chapter.Title,
		Content:       chapter.Content,
		IsEnding:      chapter.IsEnding,
		DateCreated:   chapter.CreatedAt,
	})
	return dberr.Wrap(err, "Chapter", "insert chapter")
}

func (repository *mongoChapterRepository) FindByID(context context.Context, id string) (*Chapter, error) {
	var document chapterDocument
	if err := repository.chapters.FindOne(context, bson.M{"_id": id}).Decode(&document); err != nil {
		return nil, dberr.Wrap(err, "Chapter", "find chapter")
	}
	return document.toChapter(), nil
}

func (repository *mongoChapterRepository) Update(context context.Context, chapter *Chapter) error {
	result, err := repository.chapters.UpdateByID(context, chapter.ID, bson.M{"$set": bson.M{
		"chapter_number": chapter.Number,
		"title":          chapter.Title,
		"content":        chapter.Content,
		"is_ending":      chapter.IsEnding,
	}})
	if err != nil {
		return dberr.Wrap(err, "Chapter", "update chapter")
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("Chapter")
	}
	return nil
}

func (repository *mongoChapterRepository) Delete(context context.Context, id string) error {
	_, err := repository.chapters.DeleteOne(context, bson.M{"_id": id})
	return dberr.Wrap(err, "Chapter", "delete chapter")
}

func (repository *mongoChapterRepository) ListByStory(context context.Context, storyID string) ([]*Chapter, error) {
	cursor, err := repository.chapters.Find(context, bson.M{"story_id": storyID}, options.Find().SetSort(chapterSort))
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter", "list chapters")
	}
	defer cursor.Close(context)

	var documents []chapterDocument
	if err := cursor.All(context, &documents); err != nil {
		return nil, dberr.Wrap(err, "Chapter", "decode chapters")
	}

	chapters := make([]*Chapter, 0, len(documents))
	for _, document := range documents {
		chapters = append(chapters, document.toChapter())
	}
	return chapters, nil
}

func (repository *mongoChapterRepository) MaxNumber(context context.Context, storyID string) (int, bool, error) {
	opts := options.FindOne().
		SetSort(bson.D{{Key: "chapter_number", Value: -1}}).
		SetProjection(bson.M{"chapter_number": 1})

	var document chapterDocument
	err := repository.chapters.FindOne(context, bson.M{"story_id": storyID}, opts).Decode(&document)
	if err == mongo.ErrNoDocuments {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, dberr.Wrap(err, "Chapter", "max chapter number")
	}
	return document.ChapterNumber, true, nil
}

func (repository *mongoChapterRepository) First(context context.Context, storyID string) (*Chapter, error) {
	var document chapterDocument
	err := repository.chapters.FindOne(context, bson.M{"story_id": storyID}, options.FindOne().SetSort(chapterSort)).Decode(&document)
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter", "first chapter")
	}
	return document.toChapter(), nil
}

func (repository *mongoChapterRepository) DeleteByStory(context context.Context, storyID string) error {
	_, err := repository.chapters.DeleteMany(context, bson.M{"story_id": storyID})
	return dberr.Wrap(err, "Chapter", "delete story chapters")
}

// # Choice Repository

type mongoChoiceRepository struct {
	choices *mongo.Collection
}

// NewMongoChoiceRepository constructs a MongoDB backed choice store.
func NewMongoChoiceRepository(db *mongo.Database) ChoiceRepository {
	return &mongoChoiceRepository{choices: db.Collection(mongodb.CollectionChoices)}
}

func (repository *mongoChoiceRepository) Create(context context.Context, choice *Choice) error {
	_, err := repository.choices.InsertOne(context, choiceDocument{
		ID:            choice.ID,
		ChapterID:     choice.ChapterID,
		ChoiceText:    choice.Text,
		NextChapterID: choice.NextChapterID,
		OrderNumber:   choice.Order,
		DateCreated:   choice.CreatedAt,
	})
	return dberr.Wrap(err, "Choice", "insert choice")
}

func (repository *mongoChoiceRepository) FindByID(context context.Context, id string) (*Choice, error) {
	var document choiceDocument
	if err := repository.choices.FindOne(context, bson.M{"_id": id}).Decode(&document); err != nil {
		return nil, dberr.Wrap(err, "Choice", "find choice")
	}
	return document.toChoice(), nil
}

func (repository *mongoChoiceRepository) Delete(context context.Context, id string) error {
	_, err := repository.choices.DeleteOne(context, bson.M{"_id": id})
	return dberr.Wrap(err, "Choice", "delete choice")
}

func (repository *mongoChoiceRepository) ListByChapter(context context.Context, chapterID string) ([]*Choice, error) {
	return repository.find(context, bson.M{"chapter_id": chapterID})
}

func (repository *mongoChoiceRepository) ListByChapters(context context.Context, chapterIDs []string) ([]*Choice, error) {
	if len(chapterIDs) == 0 {
		return nil, nil
	}
	return repository.find(context, bson.M{"chapter_id": bson.M{"$in": chapterIDs}})
}

func (repository *mongoChoiceRepository) find(context context.Context, filter bson.M) ([]*Choice, error) {
	cursor, err := repository.choices.Find(context, filter, options.Find().SetSort(choiceSort))
	if err != nil {
		return nil, dberr.Wrap(err, "Choice", "list choices")
	}
	defer cursor.Close(context)

	var documents []choiceDocument
	if err := cursor.All(context, &documents); err != nil {
		return nil, dberr.Wrap(err, "Choice", "decode choices")
	}

	choices := make([]*Choice, 0, len(documents))
	for _, document := range documents {
		choices = append(choices, document.toChoice())
	}
	return choices, nil
}

func (repository *mongoChoiceRepository) DeleteByChapter(context context.Context, chapterID string) error {
	_, err := repository.choices.DeleteMany(context, bson.M{"chapter_id": chapterID})
	return dberr.Wrap(err, "Choice", "delete chapter choices")
}

func (repository *mongoChoiceRepository) DeleteByChapters(context context.Context, chapterIDs []string) error {
	if len(chapterIDs) == 0 {
		return nil
	}
	_, err := repository.choices.DeleteMany(context, bson.M{"chapter_id": bson.M{"$in": chapterIDs}})
	return dberr.Wrap(err, "Choice", "delete story choices")
}

func (repository *mongoChoiceRepository) ClearNextChapter(context context.Context, chapterID string) error {
	_, err := repository.choices.UpdateMany(context,
		bson.M{"next_chapter_id": chapterID},
		bson.M{"$set": bson.M{"next_chapter_id": nil}},
	)
	return dberr.Wrap(err, "Choice", "clear next chapter")
}

func (repository *mongoChoiceRepository) SetNextChapter(context context.Context, choiceID, chapterID string) error {
	result, err := repository.choices.UpdateByID(context, choiceID, bson.M{"$set": bson.M{"next_chapter_id": chapterID}})
	if err != nil {
		return dberr.Wrap(err, "Choice", "link choice")
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("Choice")
	}
	return nil
}
