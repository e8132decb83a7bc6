// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package authoring_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/enredo/internal/core/authoring"
	"github.com/taibuivan/enredo/internal/core/chapter"
)

var errStoreDown = errors.New("store unavailable")

// flakyGraph lets a fixed number of spawns and links through, then fails.
// A negative budget never runs out.
type flakyGraph struct {
	authoring.Graph
	spawnsLeft int
	linksLeft  int
}

func (graph *flakyGraph) SpawnChapter(context context.Context, input chapter.ChapterInput) (*chapter.Chapter, error) {
	if graph.spawnsLeft == 0 {
		return nil, errStoreDown
	}
	graph.spawnsLeft--
	return graph.Graph.SpawnChapter(context, input)
}

func (graph *flakyGraph) LinkChoice(context context.Context, choiceID, chapterID string) error {
	if graph.linksLeft == 0 {
		return errStoreDown
	}
	graph.linksLeft--
	return graph.Graph.LinkChoice(context, choiceID, chapterID)
}

func newFlaky(h *harness, spawns, links int) *authoring.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return authoring.NewService(&flakyGraph{Graph: h.chapters, spawnsLeft: spawns, linksLeft: links}, logger)
}

func TestSaveChapterWithChoices_InterruptedMidSpawn(t *testing.T) {
	h := newHarness()
	s := h.story(t, "Partial")
	other := h.chapter(t, s.ID, 1, "Prologue")
	_, err := h.chapters.AddChoice(h.ctx, chapter.ChoiceInput{ChapterID: other.ID, Text: "Begin"})
	require.NoError(t, err)

	_, err = newFlaky(h, 1, -1).SaveChapterWithChoices(h.ctx, s.ID, authoring.Submission{
		Chapter: chapter.ChapterInput{Number: 2, Title: "Hall", Content: "Doors."},
		Choices: []authoring.ChoiceDraft{
			{Key: 0, Text: "North", NextContent: "Cold."},
			{Key: 1, Text: "South", NextContent: "Warm."},
			{Key: 2, Text: "Wait"},
		},
	})
	require.ErrorIs(t, err, errStoreDown)

	chapters, err := h.chapters.ListChaptersOrdered(h.ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 3, "prologue, hall and the first continuation stay written")

	hall, north := chapters[1], chapters[2]
	assert.Equal(t, "Hall", hall.Title)
	assert.Equal(t, "Hall - North", north.Title)

	choices := h.choices(t, hall.ID)
	require.Len(t, choices, 1, "rows after the failure are never written")
	assert.Equal(t, "North", choices[0].Text)
	assert.Equal(t, north.ID, *choices[0].NextChapterID)

	assert.Len(t, h.choices(t, other.ID), 1, "unrelated chapters keep their choices")
}

func TestSaveChapterWithChoices_InterruptedBeforeLinkBack(t *testing.T) {
	h := newHarness()
	s := h.story(t, "Unlinked")
	start := h.chapter(t, s.ID, 1, "Start")
	origin, err := h.chapters.AddChoice(h.ctx, chapter.ChoiceInput{ChapterID: start.ID, Text: "Open the door"})
	require.NoError(t, err)

	_, err = newFlaky(h, -1, 0).SaveChapterWithChoices(h.ctx, s.ID, authoring.Submission{
		Chapter:             chapter.ChapterInput{Number: 2, Title: "Behind", Content: "Dark."},
		Choices:             []authoring.ChoiceDraft{{Key: 0, Text: "Light a match"}},
		OriginatingChoiceID: origin.ID,
	})
	require.ErrorIs(t, err, errStoreDown)

	chapters, err := h.chapters.ListChaptersOrdered(h.ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, chapters, 2, "the new chapter was saved before the link failed")
	assert.Empty(t, h.choices(t, chapters[1].ID))

	stillOpen, err := h.chapters.GetChoice(h.ctx, origin.ID)
	require.NoError(t, err)
	assert.True(t, stillOpen.Dangling(), "the originating choice stays dangling")
}
