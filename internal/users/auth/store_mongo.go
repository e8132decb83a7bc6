// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taibuivan/enredo/internal/platform/dberr"
	"github.com/taibuivan/enredo/internal/platform/mongodb"
)

// # MongoDB Repository

// The password field holds the bcrypt hash, as in the historical collection layout.
type userDocument struct {
	ID          string    `bson:"_id"`
	Username    string    `bson:"username"`
	Password    string    `bson:"password"`
	DateCreated time.Time `bson:"date_created"`
}

// MongoUserRepository implements the UserRepository interface on MongoDB.
type MongoUserRepository struct {
	users *mongo.Collection
}

// NewMongoUserRepository creates a MongoDB implementation of the UserRepository.
func NewMongoUserRepository(db *mongo.Database) *MongoUserRepository {
	return &MongoUserRepository{users: db.Collection(mongodb.CollectionUsers)}
}

func (repository *MongoUserRepository) Create(context context.Context, user *User) error {
	_, err := repository.users.InsertOne(context, userDocument{
		ID:          user.ID,
		Username:    user.Username,
		Password:    user.PasswordHash,
		DateCreated: user.CreatedAt,
	})
	return dberr.Wrap(err, "User", "insert user")
}

func (repository *MongoUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	var document userDocument
	if err := repository.users.FindOne(context, bson.M{"username": username}).Decode(&document); err != nil {
		return nil, dberr.Wrap(err, "User", "find user")
	}

	return &User{
		ID:           document.ID,
		Username:     document.Username,
		PasswordHash: document.Password,
		CreatedAt:    document.DateCreated,
	}, nil
}
