// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package memory

import (
	"context"
	"sort"

	"github.com/taibuivan/enredo/internal/core/chapter"
	"github.com/taibuivan/enredo/internal/platform/apperr"
)

// # Chapters

type chapterRepository struct {
	store *Store
}

func (repository *chapterRepository) Create(_ context.Context, entity *chapter.Chapter) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	store.chapters[entity.ID] = &chapterRow{seq: store.next(), chapter: *entity}
	return nil
}

func (repository *chapterRepository) FindByID(_ context.Context, id string) (*chapter.Chapter, error) {
	store := repository.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	row, ok := store.chapters[id]
	if !ok {
		return nil, apperr.NotFound("Chapter")
	}
	found := row.chapter
	return &found, nil
}

func (repository *chapterRepository) Update(_ context.Context, entity *chapter.Chapter) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	row, ok := store.chapters[entity.ID]
	if !ok {
		return apperr.NotFound("Chapter")
	}
	row.chapter.Number = entity.Number
	row.chapter.Title = entity.Title
	row.chapter.Content = entity.Content
	row.chapter.IsEnding = entity.IsEnding
	return nil
}

func (repository *chapterRepository) Delete(_ context.Context, id string) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.chapters, id)
	return nil
}

func (repository *chapterRepository) ListByStory(_ context.Context, storyID string) ([]*chapter.Chapter, error) {
	store := repository.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	rows := store.storyChapters(storyID)
	chapters := make([]*chapter.Chapter, 0, len(rows))
	for _, row := range rows {
		found := row.chapter
		chapters = append(chapters, &found)
	}
	return chapters, nil
}

func (repository *chapterRepository) MaxNumber(_ context.Context, storyID string) (int, bool, error) {
	store := repository.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	rows := store.storyChapters(storyID)
	if len(rows) == 0 {
		return 0, false, nil
	}

	highest := rows[0].chapter.Number
	for _, row := range rows[1:] {
		highest = max(highest, row.chapter.Number)
	}
	return highest, true, nil
}

func (repository *chapterRepository) First(_ context.Context, storyID string) (*chapter.Chapter, error) {
	store := repository.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	rows := store.storyChapters(storyID)
	if len(rows) == 0 {
		return nil, apperr.NotFound("Chapter")
	}
	found := rows[0].chapter
	return &found, nil
}

func (repository *chapterRepository) DeleteByStory(_ context.Context, storyID string) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	for id, row := range store.chapters {
		if row.chapter.StoryID == storyID {
			delete(store.chapters, id)
		}
	}
	return nil
}

// storyChapters must be called with the lock held.
func (store *Store) storyChapters(storyID string) []*chapterRow {
	var rows []*chapterRow
	for _, row := range store.chapters {
		if row.chapter.StoryID == storyID {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		if rows[i].chapter.Number != rows[j].chapter.Number {
			return rows[i].chapter.Number < rows[j].chapter.Number
		}
		return rows[i].seq < rows[j].seq
	})
	return rows
}

// # Choices

type choiceRepository struct {
	store *Store
}

func (repository *choiceRepository) Create(_ context.Context, entity *chapter.Choice) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	store.choices[entity.ID] = &choiceRow{seq: store.next(), choice: copyChoice(entity)}
	return nil
}

func (repository *choiceRepository) FindByID(_ context.Context, id string) (*chapter.Choice, error) {
	store := repository.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	row, ok := store.choices[id]
	if !ok {
		return nil, apperr.NotFound("Choice")
	}
	found := copyChoice(&row.choice)
	return &found, nil
}

func (repository *choiceRepository) Delete(_ context.Context, id string) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	delete(store.choices, id)
	return nil
}

func (repository *choiceRepository) ListByChapter(_ context.Context, chapterID string) ([]*chapter.Choice, error) {
	return repository.list(map[string]bool{chapterID: true}), nil
}

func (repository *choiceRepository) ListByChapters(_ context.Context, chapterIDs []string) ([]*chapter.Choice, error) {
	if len(chapterIDs) == 0 {
		return nil, nil
	}
	return repository.list(set(chapterIDs)), nil
}

func (repository *choiceRepository) list(chapterIDs map[string]bool) []*chapter.Choice {
	store := repository.store
	store.mu.RLock()
	defer store.mu.RUnlock()

	var rows []*choiceRow
	for _, row := range store.choices {
		if chapterIDs[row.choice.ChapterID] {
			rows = append(rows, row)
		}
	}
	sort.Slice(rows, func(i, j int) bool {
		a, b := rows[i].choice, rows[j].choice
		if a.ChapterID != b.ChapterID {
			return a.ChapterID < b.ChapterID
		}
		if a.Order != b.Order {
			return a.Order < b.Order
		}
		return rows[i].seq < rows[j].seq
	})

	choices := make([]*chapter.Choice, 0, len(rows))
	for _, row := range rows {
		found := copyChoice(&row.choice)
		choices = append(choices, &found)
	}
	return choices
}

func (repository *choiceRepository) DeleteByChapter(_ context.Context, chapterID string) error {
	return repository.deleteWhere(map[string]bool{chapterID: true})
}

func (repository *choiceRepository) DeleteByChapters(_ context.Context, chapterIDs []string) error {
	return repository.deleteWhere(set(chapterIDs))
}

func (repository *choiceRepository) deleteWhere(chapterIDs map[string]bool) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	for id, row := range store.choices {
		if chapterIDs[row.choice.ChapterID] {
			delete(store.choices, id)
		}
	}
	return nil
}

func (repository *choiceRepository) ClearNextChapter(_ context.Context, chapterID string) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	for _, row := range store.choices {
		if row.choice.NextChapterID != nil && *row.choice.NextChapterID == chapterID {
			row.choice.NextChapterID = nil
		}
	}
	return nil
}

func (repository *choiceRepository) SetNextChapter(_ context.Context, choiceID, chapterID string) error {
	store := repository.store
	store.mu.Lock()
	defer store.mu.Unlock()

	row, ok := store.choices[choiceID]
	if !ok {
		return apperr.NotFound("Choice")
	}
	next := chapterID
	row.choice.NextChapterID = &next
	return nil
}

func copyChoice(source *chapter.Choice) chapter.Choice {
	copied := *source
	if source.NextChapterID != nil {
		next := *source.NextChapterID
		copied.NextChapterID = &next
	}
	return copied
}

func set(values []string) map[string]bool {
	members := make(map[string]bool, len(values))
	for _, value := range values {
		members[value] = true
	}
	return members
}
