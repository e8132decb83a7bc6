// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package memory keeps every repository in process memory.

It backs the "memory" store driver for local demos and is the store the domain
services are tested against. Ordering follows the SQL stores: ties on the sort
key are broken by insertion order. Values are copied in and out so callers
never share state with the store.
*/
package memory

import (
	"sync"

	"github.com/taibuivan/enredo/internal/core/chapter"
	"github.com/taibuivan/enredo/internal/core/reading"
	"github.com/taibuivan/enredo/internal/core/story"
	"github.com/taibuivan/enredo/internal/users/auth"
)

type storyRow struct {
	seq   uint64
	story story.Story
}

type chapterRow struct {
	seq     uint64
	chapter chapter.Chapter
}

type choiceRow struct {
	seq    uint64
	choice chapter.Choice
}

type progressKey struct {
	sessionID string
	storyID   string
}

// Store holds all tables behind one lock.
type Store struct {
	mu       sync.RWMutex
	seq      uint64
	stories  map[string]*storyRow
	chapters map[string]*chapterRow
	choices  map[string]*choiceRow
	progress map[progressKey]reading.Progress
	users    map[string]auth.User
}

// New returns an empty store.
func New() *Store {
	return &Store{
		stories:  make(map[string]*storyRow),
		chapters: make(map[string]*chapterRow),
		choices:  make(map[string]*choiceRow),
		progress: make(map[progressKey]reading.Progress),
		users:    make(map[string]auth.User),
	}
}

// Stories returns the story repository view of the store.
func (store *Store) Stories() story.StoryRepository { return &storyRepository{store} }

// Chapters returns the chapter repository view of the store.
func (store *Store) Chapters() chapter.ChapterRepository { return &chapterRepository{store} }

// Choices returns the choice repository view of the store.
func (store *Store) Choices() chapter.ChoiceRepository { return &choiceRepository{store} }

// Progress returns the reading progress repository view of the store.
func (store *Store) Progress() reading.ProgressRepository { return &progressRepository{store} }

// Users returns the user repository view of the store.
func (store *Store) Users() auth.UserRepository { return &userRepository{store} }

// next must be called with the write lock held.
func (store *Store) next() uint64 {
	store.seq++
	return store.seq
}
