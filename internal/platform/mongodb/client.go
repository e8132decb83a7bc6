// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package mongodb provides a managed MongoDB client for the document storage driver.

The document driver stores the narrative graph in four collections (stories,
chapters, choices, readingprogresses) plus users, using string identifiers so
that records stay portable between the relational and document backends.
*/
package mongodb

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
)

// # Collections

const (
	CollectionStories  = "stories"
	CollectionChapters = "chapters"
	CollectionChoices  = "choices"
	CollectionProgress = "readingprogresses"
	CollectionUsers    = "users"
)

// Opinionated client timeouts.
const (
	serverSelectionTimeout = 5 * time.Second
	socketTimeout          = 45 * time.Second
	connectTimeout         = 10 * time.Second
	pingTimeout            = 2 * time.Second
)

// Connect dials uri, verifies connectivity and returns the named database handle.
//
// # Parameters
//   - ctx: Context for the initial connection attempt.
//   - uri: A mongodb:// or mongodb+srv:// URI.
//   - database: Database name.
//   - logger: Structured logger for connection events.
func Connect(ctx context.Context, uri, database string, logger *slog.Logger) (*mongo.Database, error) {
	clientOptions := options.Client().
		ApplyURI(uri).
		SetServerSelectionTimeout(serverSelectionTimeout).
		SetSocketTimeout(socketTimeout).
		SetConnectTimeout(connectTimeout)

	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("mongo: failed to connect: %w", err)
	}

	db := client.Database(database)

	// Validate that we can actually reach the server.
	if err := Ping(ctx, db); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, err
	}

	logger.Info("mongo client connected", slog.String("database", database))
	return db, nil
}

// Ping verifies that the MongoDB deployment is reachable.
func Ping(ctx context.Context, db *mongo.Database) error {
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()

	if err := db.Client().Ping(pingCtx, readpref.Primary()); err != nil {
		return fmt.Errorf("mongo: ping failed: %w", err)
	}

	return nil
}

// Disconnect closes the client behind db.
func Disconnect(ctx context.Context, db *mongo.Database) error {
	return db.Client().Disconnect(ctx)
}

// EnsureIndexes creates the indexes the document stores rely on.
// It is idempotent and safe to call on every startup.
func EnsureIndexes(ctx context.Context, db *mongo.Database) error {
	indexes := map[string][]mongo.IndexModel{
		CollectionChapters: {
			{Keys: bson.D{{Key: "story_id", Value: 1}, {Key: "chapter_number", Value: 1}, {Key: "_id", Value: 1}}},
		},
		CollectionChoices: {
			{Keys: bson.D{{Key: "chapter_id", Value: 1}, {Key: "order_number", Value: 1}, {Key: "_id", Value: 1}}},
			{Keys: bson.D{{Key: "next_chapter_id", Value: 1}}},
		},
		CollectionProgress: {
			{
				Keys:    bson.D{{Key: "session_id", Value: 1}, {Key: "story_id", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
			{Keys: bson.D{{Key: "story_id", Value: 1}}},
		},
		CollectionUsers: {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetUnique(true),
			},
		},
	}

	for collection, models := range indexes {
		if _, err := db.Collection(collection).Indexes().CreateMany(ctx, models); err != nil {
			return fmt.Errorf("mongo: failed to create indexes on %s: %w", collection, err)
		}
	}

	return nil
}
