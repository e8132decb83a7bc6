// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/dberr"
	"github.com/taibuivan/enredo/internal/platform/mongodb"
)

// # MongoDB Repository

// storyDocument is the persisted shape in the stories collection.
type storyDocument struct {
	ID           string    `bson:"_id"`
	Title        string    `bson:"title"`
	Description  string    `bson:"description"`
	CoverColor   string    `bson:"cover_color"`
	CoverImage   *string   `bson:"cover_image,omitempty"`
	Genre        string    `bson:"genre"`
	Status       string    `bson:"status"`
	DateCreated  time.Time `bson:"date_created"`
	DateUpdated  time.Time `bson:"date_updated"`
	ChapterCount int       `bson:"chapter_count,omitempty"`
}

func toStoryDocument(story *Story) storyDocument {
	return storyDocument{
		ID:          story.ID,
		Title:       story.Title,
		Description: story.Description,
		CoverColor:  story.CoverColor,
		CoverImage:  story.CoverImage,
		Genre:       story.Genre,
		Status:      story.Status,
		DateCreated: story.CreatedAt,
		DateUpdated: story.UpdatedAt,
	}
}

func (document storyDocument) toStory() Story {
	return Story{
		ID:          document.ID,
		Title:       document.Title,
		Description: document.Description,
		CoverColor:  document.CoverColor,
		CoverImage:  document.CoverImage,
		Genre:       document.Genre,
		Status:      document.Status,
		CreatedAt:   document.DateCreated,
		UpdatedAt:   document.DateUpdated,
	}
}

// mongoRepository implements [StoryRepository] on a MongoDB database.
type mongoRepository struct {
	stories *mongo.Collection
}

// NewMongoRepository constructs a MongoDB backed story store.
func NewMongoRepository(db *mongo.Database) StoryRepository {
	return &mongoRepository{stories: db.Collection(mongodb.CollectionStories)}
}

func (repository *mongoRepository) Create(context context.Context, story *Story) error {
	_, err := repository.stories.InsertOne(context, toStoryDocument(story))
	return dberr.Wrap(err, "Story", "insert story")
}

func (repository *mongoRepository) FindByID(context context.Context, id string) (*Story, error) {
	var document storyDocument
	if err := repository.stories.FindOne(context, bson.M{"_id": id}).Decode(&document); err != nil {
		return nil, dberr.Wrap(err, "Story", "find story")
	}

	story := document.toStory()
	return &story, nil
}

func (repository *mongoRepository) Update(context context.Context, story *Story) error {
	set := bson.M{
		"title":        story.Title,
		"description":  story.Description,
		"cover_color":  story.CoverColor,
		"genre":        story.Genre,
		"status":       story.Status,
		"date_updated": story.UpdatedAt,
	}
	update := bson.M{"$set": set}
	if story.CoverImage != nil {
		set["cover_image"] = *story.CoverImage
	} else {
		update["$unset"] = bson.M{"cover_image": ""}
	}

	result, err := repository.stories.UpdateByID(context, story.ID, update)
	if err != nil {
		return dberr.Wrap(err, "Story", "update story")
	}
	if result.MatchedCount == 0 {
		return apperr.NotFound("Story")
	}
	return nil
}

func (repository *mongoRepository) Delete(context context.Context, id string) error {
	_, err := repository.stories.DeleteOne(context, bson.M{"_id": id})
	return dberr.Wrap(err, "Story", "delete story")
}

/*
ListWithChapterCounts joins the chapters collection per story.

Pipeline: $lookup chapters by story_id, $addFields chapter_count = $size,
drop the joined array, newest first.
*/
func (repository *mongoRepository) ListWithChapterCounts(context context.Context) ([]*Summary, error) {
	pipeline := mongo.Pipeline{
		{{Key: "$lookup", Value: bson.D{
			{Key: "from", Value: mongodb.CollectionChapters},
			{Key: "localField", Value: "_id"},
			{Key: "foreignField", Value: "story_id"},
			{Key: "as", Value: "chapters"},
		}}},
		{{Key: "$addFields", Value: bson.D{
			{Key: "chapter_count", Value: bson.D{{Key: "$size", Value: "$chapters"}}},
		}}},
		{{Key: "$project", Value: bson.D{{Key: "chapters", Value: 0}}}},
		{{Key: "$sort", Value: bson.D{{Key: "date_created", Value: -1}, {Key: "_id", Value: -1}}}},
	}

	cursor, err := repository.stories.Aggregate(context, pipeline)
	if err != nil {
		return nil, dberr.Wrap(err, "Story", "aggregate stories")
	}
	defer cursor.Close(context)

	var documents []storyDocument
	if err := cursor.All(context, &documents); err != nil {
		return nil, dberr.Wrap(err, "Story", "decode stories")
	}

	summaries := make([]*Summary, 0, len(documents))
	for _, document := range documents {
		summaries = append(summaries, &Summary{Story: document.toStory(), ChapterCount: document.ChapterCount})
	}
	return summaries, nil
}
