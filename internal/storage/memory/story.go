// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memory

import (
	"context"
	"sort"

	"github.com/taibuivan/enredo/internal/core/story"
	"github.com/taibuivan/enredo/internal/platform/apperr"
)

type storyRepository struct {
	store *Store
}

func (repository *storyRepository) Create(_ context.Context, entity *story.Story) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	store.stories[entity.ID] = &storyRow{seq: store.next(), story: copyStory(entity)}
	return nil
}

func (repository *storyRepository) FindByID(_ context.Context, id string) (*story.Story, error) {
	store := repository.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	row, ok := store.stories[id]
	if !ok {
		return nil, apperr.NotFound("Story")
	}
	found := copyStory(&row.story)
	return &found, nil
}

func (repository *storyRepository) Update(_ context.Context, entity *story.Story) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	row, ok := store.stories[entity.ID]
	if !ok {
		return apperr.NotFound("Story")
	}
	row.story = copyStory(entity)
	return nil
}

func (repository *storyRepository) Delete(_ context.Context, id string) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.stories, id)
	return nil
}

func (repository *storyRepository) ListWithChapterCounts(_ context.Context) ([]*story.Summary, error) {
	store := repository.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	counts := make(map[string]int)
	for _, row := range store.chapters {
		counts[row.chapter.StoryID]++
	}

	rows := make([]*storyRow, 0, len(store.stories))
	for _, row := range store.stories {
		rows = append(rows, row)
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i], rows[j]
		if !a.story.CreatedAt.Equal(b.story.CreatedAt) {
			return a.story.CreatedAt.After(b.story.CreatedAt)
		}
		return a.seq > b.seq
	})

	summaries := make([]*story.Summary, 0, len(rows))
	for _, row := range rows {
		summaries = append(summaries, &story.Summary{Story: copyStory(&row.story), ChapterCount: counts[row.story.ID]})
	}
	return summaries, nil
}

func copyStory(source *story.Story) story.Story {
	copied := *source
	if source.CoverImage != nil {
		image := *source.CoverImage
		copied.CoverImage = &image
	}
	return copied
}
