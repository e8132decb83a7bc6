// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/taibuivan/enredo/internal/platform/dberr"
	"github.com/taibuivan/enredo/internal/platform/mongodb"
)

// # MongoDB Repository

type progressDocument struct {
	SessionID        string    `bson:"session_id"`
	StoryID          string    `bson:"story_id"`
	CurrentChapterID string    `bson:"current_chapter_id"`
	LastRead         time.Time `bson:"last_read"`
}

// mongoRepository implements [ProgressRepository] on a MongoDB database.
// Uniqueness of (session_id, story_id) comes from the index created by mongodb.EnsureIndexes.
type mongoRepository struct {
	progress *mongo.Collection
}

// NewMongoRepository constructs a MongoDB backed progress store.
func NewMongoRepository(db *mongo.Database) ProgressRepository {
	return &mongoRepository{progress: db.Collection(mongodb.CollectionProgress)}
}

func (repository *mongoRepository) Find(context context.Context, sessionID, storyID string) (*Progress, error) {
	var document progressDocument
	err := repository.progress.FindOne(context, bson.M{"session_id": sessionID, "story_id": storyID}).Decode(&document)
	if err != nil {
		return nil, dberr.Wrap(err, "Progress", "find progress")
	}

	return &Progress{
		SessionID:        document.SessionID,
		StoryID:          document.StoryID,
		CurrentChapterID: document.CurrentChapterID,
		LastReadAt:       document.LastRead,
	}, nil
}

func (repository *mongoRepository) Upsert(context context.Context, progress *Progress) error {
	_, err := repository.progress.UpdateOne(context,
		bson.M{"session_id": progress.SessionID, "story_id": progress.StoryID},
		bson.M{"$set": bson.M{
			"current_chapter_id": progress.CurrentChapterID,
			"last_read":          progress.LastReadAt,
		}},
		options.Update().SetUpsert(true),
	)
	return dberr.Wrap(err, "Progress", "upsert progress")
}

func (repository *mongoRepository) Delete(context context.Context, sessionID, storyID string) error {
	_, err := repository.progress.DeleteOne(context, bson.M{"session_id": sessionID, "story_id": storyID})
	return dberr.Wrap(err, "Progress", "delete progress")
}

func (repository *mongoRepository) DeleteByStory(context context.Context, storyID string) error {
	_, err := repository.progress.DeleteMany(context, bson.M{"story_id": storyID})
	return dberr.Wrap(err, "Progress", "delete story progress")
}
