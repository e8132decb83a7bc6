// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memory

import (
	"context"

	"github.com/taibuivan/enredo/internal/core/reading"
	"github.com/taibuivan/enredo/internal/platform/apperr"
)

// # Reading Progress

type progressRepository struct {
	store *Store
}

func (repository *progressRepository) Find(_ context.Context, sessionID, storyID string) (*reading.Progress, error) {
	store := repository.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	progress, ok := store.progress[progressKey{sessionID, storyID}]
	if !ok {
		return nil, apperr.NotFound("Progress")
	}
	return &progress, nil
}

func (repository *progressRepository) Upsert(_ context.Context, progress *reading.Progress) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	store.progress[progressKey{progress.SessionID, progress.StoryID}] = *progress
	return nil
}

func (repository *progressRepository) Delete(_ context.Context, sessionID, storyID string) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.progress, progressKey{sessionID, storyID})
	return nil
}

func (repository *progressRepository) DeleteByStory(_ context.Context, storyID string) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	for key := range store.progress {
		if key.storyID == storyID {
			delete(store.progress, key)
		}
	}
	return nil
}
