// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package authoring

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/taibuivan/enredo/internal/core/chapter"
	"github.com/taibuivan/enredo/internal/core/story"
	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/constants"
	"github.com/taibuivan/enredo/internal/platform/validate"
	"github.com/taibuivan/enredo/pkg/pointer"
	"github.com/taibuivan/enredo/pkg/textutil"
)

// Graph is the slice of the narrative graph the authoring workflow writes through.
type Graph interface {
	GetStory(context context.Context, storyID string) (*story.Story, error)
	GetStoryChapter(context context.Context, storyID, chapterID string) (*chapter.Chapter, error)
	GetStoryChoice(context context.Context, storyID, choiceID string) (*chapter.Choice, *chapter.Chapter, error)
	NextChapterNumber(context context.Context, storyID string) (int, error)
	ListChoicesOrdered(context context.Context, chapterID string) ([]*chapter.Choice, error)
	SaveChapter(context context.Context, input chapter.ChapterInput) (*chapter.Chapter, error)
	SpawnChapter(context context.Context, input chapter.ChapterInput) (*chapter.Chapter, error)
	AddChoice(context context.Context, input chapter.ChoiceInput) (*chapter.Choice, error)
	LinkChoice(context context.Context, choiceID, chapterID string) error
	ClearChoices(context context.Context, chapterID string) error
	CheckDestination(context context.Context, storyID, chapterID string) error
}

// # Service Layer

// Service runs the guided chapter authoring workflow.
type Service struct {
	graph  Graph
	logger *slog.Logger
}

// NewService constructs a new [Service].
func NewService(graph Graph, logger *slog.Logger) *Service {
	return &Service{graph: graph, logger: logger}
}

/*
Origin returns the choice a new chapter is being written for, and the chapter
that choice is presented on.

Returns:
  - error: apperr.NotFound when the choice is missing or belongs to another story
*/
func (service *Service) Origin(context context.Context, storyID, choiceID string) (*chapter.Choice, *chapter.Chapter, error) {
	return service.graph.GetStoryChoice(context, storyID, choiceID)
}

/*
SaveChapterWithChoices saves a chapter and its outgoing choices in one go.

Description:
 1. The chapter is created (no ID) or updated.
 2. An originating choice is pointed at the chapter.
 3. Unless the chapter is an ending or no rows were submitted, its choices are
    replaced by the submitted rows. When the chapter continues an originating
    choice the existing choices are kept and the rows are appended.
 4. A row with blank text is skipped. A row with inline content spawns a chapter
    numbered one past this one; otherwise the row keeps its existing destination,
    if any, or stays dangling.

Every reference is checked before the first write.

Returns:
  - *chapter.Chapter: The saved chapter
  - error: apperr.NotFound (story, chapter or originating choice), apperr.ValidationError
*/
func (service *Service) SaveChapterWithChoices(context context.Context, storyID string, submission Submission) (*chapter.Chapter, error) {
	if _, err := service.graph.GetStory(context, storyID); err != nil {
		return nil, err
	}

	input := submission.Chapter
	input.StoryID = storyID

	if submission.OriginatingChoiceID != "" {
		if _, _, err := service.Origin(context, storyID, submission.OriginatingChoiceID); err != nil {
			return nil, err
		}
	}

	drafts := sortedDrafts(submission.Choices)
	if err := service.checkDrafts(context, storyID, drafts); err != nil {
		return nil, err
	}

	saved, err := service.graph.SaveChapter(context, input)
	if err != nil {
		return nil, err
	}

	if submission.OriginatingChoiceID != "" {
		if err := service.graph.LinkChoice(context, submission.OriginatingChoiceID, saved.ID); err != nil {
			return nil, err
		}
	}

	if saved.IsEnding || len(drafts) == 0 {
		return saved, nil
	}

	if submission.OriginatingChoiceID == "" {
		if err := service.graph.ClearChoices(context, saved.ID); err != nil {
			return nil, err
		}
	}

	created := 0
	for _, draft := range drafts {
		text := textutil.Normalize(draft.Text)
		if text == "" {
			continue
		}

		var next *string
		switch {
		case !textutil.IsBlank(draft.NextContent):
			spawned, err := service.graph.SpawnChapter(context, chapter.ChapterInput{
				StoryID: storyID,
				Number:  saved.Number + 1,
				Title:   spawnedTitle(saved.Title, text),
				Content: draft.NextContent,
			})
			if err != nil {
				return nil, err
			}
			next = &spawned.ID
		case draft.NextChapterID != "":
			id := draft.NextChapterID
			next = &id
		}

		order := pointer.Fallback(draft.Order, draft.Key)

		if _, err := service.graph.AddChoice(context, chapter.ChoiceInput{
			ChapterID:     saved.ID,
			Text:          text,
			NextChapterID: next,
			Order:         &order,
		}); err != nil {
			return nil, err
		}
		created++
	}

	service.logger.Info("chapter_authored",
		slog.String("chapter_id", saved.ID),
		slog.String("story_id", storyID),
		slog.Int("choices", created),
		slog.Bool("continuation", submission.OriginatingChoiceID != ""),
	)

	return saved, nil
}

// checkDrafts validates the rows that will be written so that a bad row fails
// the save before anything is persisted.
func (service *Service) checkDrafts(context context.Context, storyID string, drafts []ChoiceDraft) error {
	validator := &validate.Validator{}

	for _, draft := range drafts {
		text := textutil.Normalize(draft.Text)
		if text == "" {
			continue
		}

		field := DraftField(draft.Key, "text")
		validator.MaxLen(field, text, constants.MaxChoiceTextLength)

		if !textutil.IsBlank(draft.NextContent) {
			validator.MaxLen(DraftField(draft.Key, "next_content"), textutil.Normalize(draft.NextContent), constants.MaxContentLength)
			continue
		}

		if draft.NextChapterID != "" {
			err := service.graph.CheckDestination(context, storyID, draft.NextChapterID)
			if apperr.IsValidation(err) {
				validator.Custom(DraftField(draft.Key, "next_chapter_id"), true, apperr.As(err).FieldMessage(chapter.FieldNextChapterID))
				continue
			}
			if err != nil {
				return err
			}
		}
	}

	return validator.Err()
}

// DraftField names a cell of the choices editor, e.g. "choices[2][text]".
func DraftField(key int, column string) string {
	return fmt.Sprintf("choices[%d][%s]", key, column)
}

// spawnedTitle is the parent title followed by the abbreviated choice text.
func spawnedTitle(parent, choiceText string) string {
	title := parent + " - " + textutil.Abbreviate(choiceText, constants.SpawnedTitleChoiceChars)
	return textutil.Truncate(title, constants.MaxTitleLength)
}

func sortedDrafts(drafts []ChoiceDraft) []ChoiceDraft {
	sorted := make([]ChoiceDraft, len(drafts))
	copy(sorted, drafts)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Key < sorted[j].Key })
	return sorted
}
