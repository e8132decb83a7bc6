// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"time"
)

// Data is the small key/value bag persisted for a browser session.
// An empty bag means an anonymous reader.
type Data struct {
	UserID   string
	Username string
}

// Authenticated reports whether the bag carries an administrator principal.
func (d Data) Authenticated() bool {
	return d.UserID != ""
}

// Store persists session bags keyed by session identifier.
//
// Implementations must treat a missing or expired session as (Data{}, false, nil).
type Store interface {
	Load(ctx context.Context, sessionID string) (Data, bool, error)
	Save(ctx context.Context, sessionID string, data Data, ttl time.Duration) error
	Touch(ctx context.Context, sessionID string, ttl time.Duration) error
	Delete(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}
