// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memory

import (
	"context"

	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/users/auth"
)

// # Users

type userRepository struct {
	store *Store
}

func (repository *userRepository) FindByUsername(_ context.Context, username string) (*auth.User, error) {
	store := repository.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	user, ok := store.users[username]
	if !ok {
		return nil, apperr.NotFound("User")
	}
	return &user, nil
}

func (repository *userRepository) Create(_ context.Context, user *auth.User) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	if _, taken := store.users[user.Username]; taken {
		return apperr.ValidationError("Username is already taken", apperr.FieldError{Field: auth.FieldUsername, Message: "Already taken"})
	}
	store.users[user.Username] = *user
	return nil
}
