// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/enredo/internal/core/chapter"
	"github.com/taibuivan/enredo/internal/core/story"
	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/storage/memory"
	"github.com/taibuivan/enredo/pkg/uuid"
)

type fixture struct {
	ctx      context.Context
	stories  *story.Service
	chapters *chapter.Service
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	store := memory.New()

	chapters := chapter.NewService(store.Chapters(), store.Choices(), store.Stories(), store.Progress(), nil, logger)
	return &fixture{
		ctx:      context.Background(),
		stories:  story.NewService(store.Stories(), chapters, logger),
		chapters: chapters,
	}
}

func (f *fixture) story(t *testing.T, title string) *story.Story {
	t.Helper()
	created, err := f.stories.SaveStory(f.ctx, story.Input{Title: title})
	require.NoError(t, err)
	return created
}

func (f *fixture) chapter(t *testing.T, storyID string, number int, title string) *chapter.Chapter {
	t.Helper()
	created, err := f.chapters.CreateChapter(f.ctx, chapter.ChapterInput{
		StoryID: storyID,
		Number:  number,
		Title:   title,
		Content: "Content of " + title,
	})
	require.NoError(t, err)
	return created
}

func (f *fixture) choice(t *testing.T, chapterID, text string, next *string, order int) *chapter.Choice {
	t.Helper()
	created, err := f.chapters.AddChoice(f.ctx, chapter.ChoiceInput{
		ChapterID:     chapterID,
		Text:          text,
		NextChapterID: next,
		Order:         &order,
	})
	require.NoError(t, err)
	return created
}

func titles(chapters []*chapter.Chapter) []string {
	out := make([]string, 0, len(chapters))
	for _, c := range chapters {
		out = append(out, c.Title)
	}
	return out
}

func texts(choices []*chapter.Choice) []string {
	out := make([]string, 0, len(choices))
	for _, c := range choices {
		out = append(out, c.Text)
	}
	return out
}

func TestNextChapterNumber(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Numbers")

	next, err := f.chapters.NextChapterNumber(f.ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next, "empty story starts at 1")

	f.chapter(t, s.ID, 1, "One")
	f.chapter(t, s.ID, 5, "Five")

	next, err = f.chapters.NextChapterNumber(f.ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 6, next, "gaps are not filled")
}

func TestNextChapterNumber_OnlyChapterZero(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Prologue")
	f.chapter(t, s.ID, 0, "Prologue")

	next, err := f.chapters.NextChapterNumber(f.ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, next)
}

func TestListChaptersOrdered_TiesKeepInsertionOrder(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Ties")

	f.chapter(t, s.ID, 2, "Second A")
	f.chapter(t, s.ID, 1, "First")
	f.chapter(t, s.ID, 2, "Second B")

	chapters, err := f.chapters.ListChaptersOrdered(f.ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"First", "Second A", "Second B"}, titles(chapters))

	first, err := f.chapters.FirstChapter(f.ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, "First", first.Title)
}

func TestFirstChapter_EmptyStory(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Empty")

	_, err := f.chapters.FirstChapter(f.ctx, s.ID)
	assert.True(t, apperr.IsNotFound(err))
}

func TestCreateChapter_Validation(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Validation")

	_, err := f.chapters.CreateChapter(f.ctx, chapter.ChapterInput{StoryID: s.ID, Number: -1, Title: "  ", Content: ""})
	require.Error(t, err)
	require.True(t, apperr.IsValidation(err))

	appErr := apperr.As(err)
	assert.NotEmpty(t, appErr.FieldMessage(chapter.FieldTitle))
	assert.NotEmpty(t, appErr.FieldMessage(chapter.FieldContent))
	assert.Equal(t, "Must not be negative", appErr.FieldMessage(chapter.FieldNumber))
}

func TestCreateChapter_MissingStory(t *testing.T) {
	f := newFixture(t)

	_, err := f.chapters.CreateChapter(f.ctx, chapter.ChapterInput{StoryID: uuid.New(), Number: 1, Title: "T", Content: "C"})
	assert.True(t, apperr.IsNotFound(err))
}

func TestUpdateChapter_ForeignStoryIsNotFound(t *testing.T) {
	f := newFixture(t)
	mine := f.story(t, "Mine")
	other := f.story(t, "Other")
	foreign := f.chapter(t, other.ID, 1, "Foreign")

	_, err := f.chapters.UpdateChapter(f.ctx, chapter.ChapterInput{
		ID: foreign.ID, StoryID: mine.ID, Number: 1, Title: "Hijack", Content: "x",
	})
	assert.True(t, apperr.IsNotFound(err))
}

func TestSaveChapter_UpdatesInPlace(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Edits")
	original := f.chapter(t, s.ID, 1, "Draft")

	saved, err := f.chapters.SaveChapter(f.ctx, chapter.ChapterInput{
		ID: original.ID, StoryID: s.ID, Number: 3, Title: "Final", Content: "Done", IsEnding: true,
	})
	require.NoError(t, err)
	assert.Equal(t, original.ID, saved.ID)

	reloaded, err := f.chapters.GetChapter(f.ctx, original.ID)
	require.NoError(t, err)
	assert.Equal(t, 3, reloaded.Number)
	assert.Equal(t, "Final", reloaded.Title)
	assert.True(t, reloaded.IsEnding)
}

func TestListChoicesOrdered_TiesKeepInsertionOrder(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Choices")
	c := f.chapter(t, s.ID, 1, "Crossroads")

	f.choice(t, c.ID, "Left", nil, 1)
	f.choice(t, c.ID, "Wait", nil, 0)
	f.choice(t, c.ID, "Right", nil, 1)

	choices, err := f.chapters.ListChoicesOrdered(f.ctx, c.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"Wait", "Left", "Right"}, texts(choices))
}

func TestAddChoice_DefaultsOrderToZero(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Defaults")
	c := f.chapter(t, s.ID, 1, "Start")

	created, err := f.chapters.AddChoice(f.ctx, chapter.ChoiceInput{ChapterID: c.ID, Text: "Go"})
	require.NoError(t, err)
	assert.Equal(t, 0, created.Order)
	assert.True(t, created.Dangling())
}

func TestAddChoice_DestinationChecks(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Here")
	other := f.story(t, "There")
	source := f.chapter(t, s.ID, 1, "Source")
	foreign := f.chapter(t, other.ID, 1, "Elsewhere")

	missing := uuid.New()
	malformed := "not-an-id"

	cases := []struct {
		name    string
		next    *string
		message string
	}{
		{"foreign story", &foreign.ID, "Must be a chapter of this story"},
		{"missing chapter", &missing, "Chapter does not exist"},
		{"malformed id", &malformed, "Must be a valid identifier"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := f.chapters.AddChoice(f.ctx, chapter.ChoiceInput{ChapterID: source.ID, Text: "Jump", NextChapterID: tc.next})
			require.True(t, apperr.IsValidation(err))
			assert.Equal(t, tc.message, apperr.As(err).FieldMessage(chapter.FieldNextChapterID))
		})
	}

	choices, err := f.chapters.ListChoicesOrdered(f.ctx, source.ID)
	require.NoError(t, err)
	assert.Empty(t, choices, "rejected choices are not stored")
}

func TestAddChoice_RequiresText(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Text")
	c := f.chapter(t, s.ID, 1, "Start")

	_, err := f.chapters.AddChoice(f.ctx, chapter.ChoiceInput{ChapterID: c.ID, Text: "   "})
	require.True(t, apperr.IsValidation(err))
	assert.NotEmpty(t, apperr.As(err).FieldMessage(chapter.FieldChoiceText))
}

func TestDeleteChapter_CascadesAndLeavesDanglingChoices(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Cascade")
	b := f.chapter(t, s.ID, 1, "B")
	c := f.chapter(t, s.ID, 2, "C")
	d := f.chapter(t, s.ID, 3, "D")

	incoming := f.choice(t, b.ID, "To C", &c.ID, 0)
	outgoing := f.choice(t, c.ID, "To D", &d.ID, 0)

	require.NoError(t, f.chapters.DeleteChapter(f.ctx, c.ID))

	_, err := f.chapters.GetChapter(f.ctx, c.ID)
	assert.True(t, apperr.IsNotFound(err))

	_, err = f.chapters.GetChoice(f.ctx, outgoing.ID)
	assert.True(t, apperr.IsNotFound(err), "choices presented on the deleted chapter go with it")

	survivor, err := f.chapters.GetChoice(f.ctx, incoming.ID)
	require.NoError(t, err)
	assert.True(t, survivor.Dangling(), "choices leading to the deleted chapter become dangling")

	links, err := f.chapters.ListChoiceLinks(f.ctx, b)
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Nil(t, links[0].Destination)
}

func TestDeleteChoice_NothingCascades(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Leaf")
	a := f.chapter(t, s.ID, 1, "A")
	b := f.chapter(t, s.ID, 2, "B")
	choice := f.choice(t, a.ID, "Onward", &b.ID, 0)

	require.NoError(t, f.chapters.DeleteChoice(f.ctx, choice.ID))

	_, err := f.chapters.GetChapter(f.ctx, b.ID)
	assert.NoError(t, err)
}

func TestLinkChoice(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Link")
	other := f.story(t, "Other")
	a := f.chapter(t, s.ID, 1, "A")
	b := f.chapter(t, s.ID, 2, "B")
	foreign := f.chapter(t, other.ID, 1, "Foreign")
	choice := f.choice(t, a.ID, "Onward", nil, 0)

	err := f.chapters.LinkChoice(f.ctx, choice.ID, foreign.ID)
	assert.True(t, apperr.IsValidation(err))

	require.NoError(t, f.chapters.LinkChoice(f.ctx, choice.ID, b.ID))

	links, err := f.chapters.ListChoiceLinks(f.ctx, a)
	require.NoError(t, err)
	require.Len(t, links, 1)
	require.NotNil(t, links[0].Destination)
	assert.Equal(t, b.ID, links[0].Destination.ID)
}

func TestOutline(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Outline")
	a := f.chapter(t, s.ID, 1, "A")
	b := f.chapter(t, s.ID, 2, "B")
	f.choice(t, a.ID, "Second", nil, 2)
	f.choice(t, a.ID, "First", &b.ID, 1)

	outline, err := f.chapters.Outline(f.ctx, s.ID)
	require.NoError(t, err)
	require.Len(t, outline, 2)

	assert.Equal(t, a.ID, outline[0].Chapter.ID)
	require.Len(t, outline[0].Choices, 2)
	assert.Equal(t, "First", outline[0].Choices[0].Text)
	assert.Equal(t, b.ID, outline[0].Choices[0].Destination.ID)
	assert.Nil(t, outline[0].Choices[1].Destination)

	assert.Empty(t, outline[1].Choices)
}

func TestGetStoryChoice(t *testing.T) {
	f := newFixture(t)
	s := f.story(t, "Owner")
	other := f.story(t, "Stranger")
	start := f.chapter(t, s.ID, 1, "Start")
	choice := f.choice(t, start.ID, "Onward", nil, 0)

	found, presentedOn, err := f.chapters.GetStoryChoice(f.ctx, s.ID, choice.ID)
	require.NoError(t, err)
	assert.Equal(t, choice.ID, found.ID)
	assert.Equal(t, start.ID, presentedOn.ID)

	_, _, err = f.chapters.GetStoryChoice(f.ctx, other.ID, choice.ID)
	assert.True(t, apperr.IsNotFound(err), "a choice of another story")

	_, _, err = f.chapters.GetStoryChoice(f.ctx, s.ID, uuid.New())
	assert.True(t, apperr.IsNotFound(err), "a missing choice")
}
