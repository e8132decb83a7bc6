// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/enredo/internal/platform/constants"
)

// # Redis Repository

// redisStore implements [Store] with one Redis hash per session.
type redisStore struct {
	client *redis.Client
}

// NewRedisStore constructs a Redis backed session store.
func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (store *redisStore) key(sessionID string) string {
	return constants.RedisPrefixSession + sessionID
}

/*
Load reads the session hash.

Returns:
  - Data: The bag (zero value when absent)
  - bool: Whether the session exists
  - error: Connection failures only
*/
func (store *redisStore) Load(context context.Context, sessionID string) (Data, bool, error) {
	values, err := store.client.HGetAll(context, store.key(sessionID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return Data{}, false, fmt.Errorf("redis: failed to load session: %w", err)
	}

	if len(values) == 0 {
		return Data{}, false, nil
	}

	return Data{
		UserID:   values[constants.SessionFieldUserID],
		Username: values[constants.SessionFieldUsername],
	}, true, nil
}

// Save replaces the session hash and sets its expiry in a single round-trip.
func (store *redisStore) Save(context context.Context, sessionID string, data Data, ttl time.Duration) error {
	key := store.key(sessionID)

	_, err := store.client.TxPipelined(context, func(pipe redis.Pipeliner) error {
		pipe.Del(context, key)
		pipe.HSet(context, key,
			constants.SessionFieldUserID, data.UserID,
			constants.SessionFieldUsername, data.Username,
		)
		pipe.Expire(context, key, ttl)
		return nil
	})
	if err != nil {
		return fmt.Errorf("redis: failed to save session: %w", err)
	}

	return nil
}

// Touch renews the expiry of an existing session. Missing sessions are ignored.
func (store *redisStore) Touch(context context.Context, sessionID string, ttl time.Duration) error {
	if err := store.client.Expire(context, store.key(sessionID), ttl).Err(); err != nil {
		return fmt.Errorf("redis: failed to renew session: %w", err)
	}
	return nil
}

// Delete destroys the session hash.
func (store *redisStore) Delete(context context.Context, sessionID string) error {
	if err := store.client.Del(context, store.key(sessionID)).Err(); err != nil {
		return fmt.Errorf("redis: failed to delete session: %w", err)
	}
	return nil
}

// Ping verifies the Redis connection for readiness checks.
func (store *redisStore) Ping(context context.Context) error {
	return store.client.Ping(context).Err()
}
