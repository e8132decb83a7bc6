// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package session

import (
	"context"
	"sync"
	"time"
)

type memoryEntry struct {
	data      Data
	expiresAt time.Time
}

// memoryStore implements [Store] in process memory.
// It backs the memory storage driver and tests; bags are lost on restart.
type memoryStore struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore constructs an in-process session store.
func NewMemoryStore() Store {
	return &memoryStore{
		entries: make(map[string]memoryEntry),
		now:     time.Now,
	}
}

func (store *memoryStore) Load(_ context.Context, sessionID string) (Data, bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()

	entry, ok := store.entries[sessionID]
	if !ok {
		return Data{}, false, nil
	}

	// Lazy expiry
	if store.now().After(entry.expiresAt) {
		delete(store.entries, sessionID)
		return Data{}, false, nil
	}

	return entry.data, true, nil
}

func (store *memoryStore) Save(_ context.Context, sessionID string, data Data, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	store.entries[sessionID] = memoryEntry{data: data, expiresAt: store.now().Add(ttl)}
	return nil
}

func (store *memoryStore) Touch(_ context.Context, sessionID string, ttl time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	if entry, ok := store.entries[sessionID]; ok {
		entry.expiresAt = store.now().Add(ttl)
		store.entries[sessionID] = entry
	}
	return nil
}

func (store *memoryStore) Delete(_ context.Context, sessionID string) error {
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.entries, sessionID)
	return nil
}

func (store *memoryStore) Ping(context.Context) error { return nil }
