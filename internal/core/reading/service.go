// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/enredo/internal/core/chapter"
	"github.com/taibuivan/enredo/internal/core/story"
	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/metrics"
)

// Narrative is the read side of the story graph the reader walks.
type Narrative interface {
	GetStory(context context.Context, storyID string) (*story.Story, error)
	GetChapter(context context.Context, id string) (*chapter.Chapter, error)
	FirstChapter(context context.Context, storyID string) (*chapter.Chapter, error)
	ListChoicesOrdered(context context.Context, chapterID string) ([]*chapter.Choice, error)
}

// # Service Layer

// Service resolves and moves each reader's position within a story.
type Service struct {
	progress  ProgressRepository
	narrative Narrative
	metrics   *metrics.Metrics
	logger    *slog.Logger
	now       func() time.Time
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(progress ProgressRepository, narrative Narrative, metrics *metrics.Metrics, logger *slog.Logger) *Service {
	return &Service{
		progress:  progress,
		narrative: narrative,
		metrics:   metrics,
		logger:    logger,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

/*
ResolveCurrentChapter returns the chapter a session should be reading.

Description: The stored bookmark wins when it still points at a chapter of the
story. A missing bookmark, or one whose chapter has gone, falls back to the
first chapter.

Returns:
  - *chapter.Chapter: The chapter to display
  - error: ErrNoChapters when the story is empty
*/
func (service *Service) ResolveCurrentChapter(context context.Context, sessionID, storyID string) (*chapter.Chapter, error) {
	progress, err := service.progress.Find(context, sessionID, storyID)
	if err != nil && !apperr.IsNotFound(err) {
		return nil, err
	}

	if progress != nil {
		current, err := service.narrative.GetChapter(context, progress.CurrentChapterID)
		switch {
		case err == nil && current.StoryID == storyID:
			return current, nil
		case err != nil && !apperr.IsNotFound(err):
			return nil, err
		}

		service.logger.Debug("progress_stale",
			slog.String("story_id", storyID),
			slog.String("chapter_id", progress.CurrentChapterID),
		)
	}

	first, err := service.narrative.FirstChapter(context, storyID)
	if apperr.IsNotFound(err) {
		return nil, ErrNoChapters
	}
	return first, err
}

/*
Open loads the reader page for a session and records the displayed chapter.

Returns:
  - *Reading: Story, chapter and ordered choices
  - error: apperr.NotFound (story missing), ErrNoChapters
*/
func (service *Service) Open(context context.Context, sessionID, storyID string) (*Reading, error) {
	current, err := service.narrative.GetStory(context, storyID)
	if err != nil {
		return nil, err
	}

	displayed, err := service.ResolveCurrentChapter(context, sessionID, storyID)
	if err != nil {
		return nil, err
	}

	choices, err := service.narrative.ListChoicesOrdered(context, displayed.ID)
	if err != nil {
		return nil, err
	}

	if err := service.record(context, sessionID, storyID, displayed.ID); err != nil {
		return nil, err
	}

	return &Reading{Story: current, Chapter: displayed, Choices: choices}, nil
}

/*
Advance moves the session's bookmark to nextChapterID.

Description: An empty nextChapterID is a no-op. The destination must be a
chapter of the same story.

Returns:
  - bool: Whether the bookmark moved
  - error: apperr.NotFound when the chapter is missing or belongs to another story
*/
func (service *Service) Advance(context context.Context, sessionID, storyID, nextChapterID string) (bool, error) {
	if nextChapterID == "" {
		return false, nil
	}

	next, err := service.narrative.GetChapter(context, nextChapterID)
	if err != nil {
		return false, err
	}
	if next.StoryID != storyID {
		return false, apperr.NotFound("Chapter")
	}

	if err := service.record(context, sessionID, storyID, next.ID); err != nil {
		return false, err
	}

	service.metrics.ReaderAdvanced()
	service.logger.Info("progress_advanced",
		slog.String("story_id", storyID),
		slog.String("chapter_id", next.ID),
	)
	return true, nil
}

/*
Restart forgets the session's bookmark; the next visit opens the first chapter.
*/
func (service *Service) Restart(context context.Context, sessionID, storyID string) error {
	if err := service.progress.Delete(context, sessionID, storyID); err != nil {
		return err
	}

	service.metrics.ReaderRestarted()
	service.logger.Info("progress_restarted", slog.String("story_id", storyID))
	return nil
}

func (service *Service) record(context context.Context, sessionID, storyID, chapterID string) error {
	return service.progress.Upsert(context, &Progress{
		SessionID:        sessionID,
		StoryID:          storyID,
		CurrentChapterID: chapterID,
		LastReadAt:       service.now(),
	})
}
