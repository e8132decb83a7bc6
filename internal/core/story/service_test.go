// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story_test

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/enredo/internal/core/chapter"
	"github.com/taibuivan/enredo/internal/core/reading"
	"github.com/taibuivan/enredo/internal/core/story"
	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/constants"
	"github.com/taibuivan/enredo/internal/storage/memory"
	"github.com/taibuivan/enredo/pkg/uuid"
)

type harness struct {
	store    *memory.Store
	stories  *story.Service
	chapters *chapter.Service
}

func newHarness() *harness {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()
	chapters := chapter.NewService(store.Chapters(), store.Choices(), store.Stories(), store.Progress(), nil, logger)

	return &harness{
		store:    store,
		stories:  story.NewService(store.Stories(), chapters, logger),
		chapters: chapters,
	}
}

func TestSaveStory_AppliesDefaults(t *testing.T) {
	h := newHarness()

	created, err := h.stories.SaveStory(context.Background(), story.Input{Title: "  Night Train  "})
	require.NoError(t, err)

	assert.True(t, uuid.Valid(created.ID))
	assert.Equal(t, "Night Train", created.Title)
	assert.Equal(t, constants.DefaultCoverColor, created.CoverColor)
	assert.Equal(t, constants.DefaultGenre, created.Genre)
	assert.Equal(t, constants.DefaultStatus, created.Status)
	assert.Nil(t, created.CoverImage)
	assert.Equal(t, created.CreatedAt, created.UpdatedAt)
}

func TestSaveStory_Validation(t *testing.T) {
	h := newHarness()

	_, err := h.stories.SaveStory(context.Background(), story.Input{Title: "", CoverColor: "red"})
	require.True(t, apperr.IsValidation(err))

	appErr := apperr.As(err)
	assert.NotEmpty(t, appErr.FieldMessage(story.FieldTitle))
	assert.NotEmpty(t, appErr.FieldMessage(story.FieldCoverColor))
}

func TestSaveStory_UpdateKeepsCreationTime(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	created, err := h.stories.SaveStory(ctx, story.Input{Title: "Draft", CoverImage: "https://example.com/a.png"})
	require.NoError(t, err)
	require.NotNil(t, created.CoverImage)

	time.Sleep(2 * time.Millisecond)

	updated, err := h.stories.SaveStory(ctx, story.Input{ID: created.ID, Title: "Final", Genre: "Mystery"})
	require.NoError(t, err)

	assert.Equal(t, created.ID, updated.ID)
	assert.True(t, updated.CreatedAt.Equal(created.CreatedAt))
	assert.True(t, updated.UpdatedAt.After(created.UpdatedAt))
	assert.Nil(t, updated.CoverImage, "a blank cover image clears it")

	reloaded, err := h.stories.GetStory(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Final", reloaded.Title)
	assert.Equal(t, "Mystery", reloaded.Genre)
}

func TestSaveStory_UpdateMissing(t *testing.T) {
	h := newHarness()

	_, err := h.stories.SaveStory(context.Background(), story.Input{ID: uuid.New(), Title: "Ghost"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestListStories_NewestFirstWithCounts(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	older, err := h.stories.SaveStory(ctx, story.Input{Title: "Older"})
	require.NoError(t, err)
	newer, err := h.stories.SaveStory(ctx, story.Input{Title: "Newer"})
	require.NoError(t, err)

	for i := 1; i <= 2; i++ {
		_, err := h.chapters.CreateChapter(ctx, chapter.ChapterInput{StoryID: older.ID, Number: i, Title: "T", Content: "C"})
		require.NoError(t, err)
	}

	summaries, err := h.stories.ListStories(ctx)
	require.NoError(t, err)
	require.Len(t, summaries, 2)

	assert.Equal(t, newer.ID, summaries[0].ID)
	assert.Equal(t, 0, summaries[0].ChapterCount)
	assert.Equal(t, older.ID, summaries[1].ID)
	assert.Equal(t, 2, summaries[1].ChapterCount)
}

func TestDeleteStory_PurgesGraph(t *testing.T) {
	h := newHarness()
	ctx := context.Background()

	doomed, err := h.stories.SaveStory(ctx, story.Input{Title: "Doomed"})
	require.NoError(t, err)
	kept, err := h.stories.SaveStory(ctx, story.Input{Title: "Kept"})
	require.NoError(t, err)

	first, err := h.chapters.CreateChapter(ctx, chapter.ChapterInput{StoryID: doomed.ID, Number: 1, Title: "One", Content: "C"})
	require.NoError(t, err)
	second, err := h.chapters.CreateChapter(ctx, chapter.ChapterInput{StoryID: doomed.ID, Number: 2, Title: "Two", Content: "C"})
	require.NoError(t, err)
	survivor, err := h.chapters.CreateChapter(ctx, chapter.ChapterInput{StoryID: kept.ID, Number: 1, Title: "Alive", Content: "C"})
	require.NoError(t, err)

	var choiceIDs []string
	for _, input := range []chapter.ChoiceInput{
		{ChapterID: first.ID, Text: "a", NextChapterID: &second.ID},
		{ChapterID: first.ID, Text: "b"},
		{ChapterID: second.ID, Text: "c", NextChapterID: &first.ID},
	} {
		created, err := h.chapters.AddChoice(ctx, input)
		require.NoError(t, err)
		choiceIDs = append(choiceIDs, created.ID)
	}

	progress := h.store.Progress()
	require.NoError(t, progress.Upsert(ctx, &reading.Progress{SessionID: "s1", StoryID: doomed.ID, CurrentChapterID: second.ID}))
	require.NoError(t, progress.Upsert(ctx, &reading.Progress{SessionID: "s1", StoryID: kept.ID, CurrentChapterID: survivor.ID}))

	require.NoError(t, h.stories.DeleteStory(ctx, doomed.ID))

	_, err = h.stories.GetStory(ctx, doomed.ID)
	assert.True(t, apperr.IsNotFound(err))

	chapters, err := h.chapters.ListChaptersOrdered(ctx, doomed.ID)
	require.NoError(t, err)
	assert.Empty(t, chapters)

	for _, id := range choiceIDs {
		_, err := h.chapters.GetChoice(ctx, id)
		assert.True(t, apperr.IsNotFound(err))
	}

	_, err = progress.Find(ctx, "s1", doomed.ID)
	assert.True(t, apperr.IsNotFound(err))

	// The other story is untouched
	_, err = progress.Find(ctx, "s1", kept.ID)
	assert.NoError(t, err)
	_, err = h.chapters.GetChapter(ctx, survivor.ID)
	assert.NoError(t, err)
}

func TestDeleteStory_Missing(t *testing.T) {
	h := newHarness()

	err := h.stories.DeleteStory(context.Background(), uuid.New())
	assert.True(t, apperr.IsNotFound(err))
}
