// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/enredo/internal/core/chapter"
	"github.com/taibuivan/enredo/internal/core/reading"
	"github.com/taibuivan/enredo/internal/core/story"
	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/storage/memory"
	"github.com/taibuivan/enredo/pkg/uuid"
)

const session = "reader-session"

type harness struct {
	ctx      context.Context
	store    *memory.Store
	stories  *story.Service
	chapters *chapter.Service
	reader   *reading.Service
}

func newHarness() *harness {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	chapters := chapter.NewService(store.Chapters(), store.Choices(), store.Stories(), store.Progress(), nil, logger)

	return &harness{
		ctx:      context.Background(),
		store:    store,
		stories:  story.NewService(store.Stories(), chapters, logger),
		chapters: chapters,
		reader:   reading.NewService(store.Progress(), chapters, nil, logger),
	}
}

// branching builds a story with a start chapter offering two ways forward.
func (h *harness) branching(t *testing.T) (*story.Story, *chapter.Chapter, *chapter.Chapter, *chapter.Chapter) {
	t.Helper()

	s, err := h.stories.SaveStory(h.ctx, story.Input{Title: "Forest"})
	require.NoError(t, err)

	start := h.mustChapter(t, s.ID, 1, "Edge of the forest")
	left := h.mustChapter(t, s.ID, 2, "Left path")
	right := h.mustChapter(t, s.ID, 2, "Right path")

	for i, next := range []*chapter.Chapter{left, right} {
		order := i
		_, err := h.chapters.AddChoice(h.ctx, chapter.ChoiceInput{ChapterID: start.ID, Text: next.Title, NextChapterID: &next.ID, Order: &order})
		require.NoError(t, err)
	}
	return s, start, left, right
}

func (h *harness) mustChapter(t *testing.T, storyID string, number int, title string) *chapter.Chapter {
	t.Helper()
	created, err := h.chapters.CreateChapter(h.ctx, chapter.ChapterInput{StoryID: storyID, Number: number, Title: title, Content: title})
	require.NoError(t, err)
	return created
}

func TestOpen_StartsAtFirstChapterAndRecordsIt(t *testing.T) {
	h := newHarness()
	s, start, left, right := h.branching(t)

	page, err := h.reader.Open(h.ctx, session, s.ID)
	require.NoError(t, err)

	assert.Equal(t, s.ID, page.Story.ID)
	assert.Equal(t, start.ID, page.Chapter.ID)
	require.Len(t, page.Choices, 2)
	assert.Equal(t, left.ID, *page.Choices[0].NextChapterID)
	assert.Equal(t, right.ID, *page.Choices[1].NextChapterID)

	progress, err := h.store.Progress().Find(h.ctx, session, s.ID)
	require.NoError(t, err)
	assert.Equal(t, start.ID, progress.CurrentChapterID)
}

func TestAdvanceAndRestart(t *testing.T) {
	h := newHarness()
	s, start, _, right := h.branching(t)

	moved, err := h.reader.Advance(h.ctx, session, s.ID, right.ID)
	require.NoError(t, err)
	assert.True(t, moved)

	page, err := h.reader.Open(h.ctx, session, s.ID)
	require.NoError(t, err)
	assert.Equal(t, right.ID, page.Chapter.ID)
	assert.Empty(t, page.Choices)

	// Another session is unaffected
	other, err := h.reader.Open(h.ctx, "someone-else", s.ID)
	require.NoError(t, err)
	assert.Equal(t, start.ID, other.Chapter.ID)

	require.NoError(t, h.reader.Restart(h.ctx, session, s.ID))

	page, err = h.reader.Open(h.ctx, session, s.ID)
	require.NoError(t, err)
	assert.Equal(t, start.ID, page.Chapter.ID)
}

func TestAdvance_EmptyIsNoop(t *testing.T) {
	h := newHarness()
	s, _, _, _ := h.branching(t)

	moved, err := h.reader.Advance(h.ctx, session, s.ID, "")
	require.NoError(t, err)
	assert.False(t, moved)

	_, err = h.store.Progress().Find(h.ctx, session, s.ID)
	assert.True(t, apperr.IsNotFound(err), "no bookmark is written")
}

func TestAdvance_RejectsForeignAndMissingChapters(t *testing.T) {
	h := newHarness()
	s, _, _, _ := h.branching(t)

	other, err := h.stories.SaveStory(h.ctx, story.Input{Title: "Elsewhere"})
	require.NoError(t, err)
	foreign := h.mustChapter(t, other.ID, 1, "Foreign")

	_, err = h.reader.Advance(h.ctx, session, s.ID, foreign.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = h.reader.Advance(h.ctx, session, s.ID, uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}

func TestResolveCurrentChapter_StaleBookmarkFallsBack(t *testing.T) {
	h := newHarness()
	s, start, left, _ := h.branching(t)

	_, err := h.reader.Advance(h.ctx, session, s.ID, left.ID)
	require.NoError(t, err)
	require.NoError(t, h.chapters.DeleteChapter(h.ctx, left.ID))

	current, err := h.reader.ResolveCurrentChapter(h.ctx, session, s.ID)
	require.NoError(t, err)
	assert.Equal(t, start.ID, current.ID)
}

func TestResolveCurrentChapter_ForeignBookmarkFallsBack(t *testing.T) {
	h := newHarness()
	s, start, _, _ := h.branching(t)

	other, err := h.stories.SaveStory(h.ctx, story.Input{Title: "Elsewhere"})
	require.NoError(t, err)
	foreign := h.mustChapter(t, other.ID, 1, "Foreign")

	require.NoError(t, h.store.Progress().Upsert(h.ctx, &reading.Progress{SessionID: session, StoryID: s.ID, CurrentChapterID: foreign.ID}))

	current, err := h.reader.ResolveCurrentChapter(h.ctx, session, s.ID)
	require.NoError(t, err)
	assert.Equal(t, start.ID, current.ID)
}

func TestOpen_EmptyStory(t *testing.T) {
	h := newHarness()

	s, err := h.stories.SaveStory(h.ctx, story.Input{Title: "Blank"})
	require.NoError(t, err)

	_, err = h.reader.Open(h.ctx, session, s.ID)
	assert.True(t, errors.Is(err, reading.ErrNoChapters))
}

func TestOpen_MissingStory(t *testing.T) {
	h := newHarness()

	_, err := h.reader.Open(h.ctx, session, uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}
