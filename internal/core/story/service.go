// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/enredo/internal/platform/constants"
	"github.com/taibuivan/enredo/internal/platform/validate"
	"github.com/taibuivan/enredo/pkg/pointer"
	"github.com/taibuivan/enredo/pkg/textutil"
	"github.com/taibuivan/enredo/pkg/uuid"
)

const (
	FieldTitle       = "title"
	FieldDescription = "description"
	FieldCoverColor  = "cover_color"
	FieldGenre       = "genre"
	FieldStatus      = "status"
)

// GraphPurger removes everything a story owns: chapters, choices and reading progress.
type GraphPurger interface {
	DeleteStoryGraph(context context.Context, storyID string) error
}

// # Service Layer

// Service orchestrates the business logic for the story catalog.
type Service struct {
	repo   StoryRepository
	graph  GraphPurger
	logger *slog.Logger
	now    func() time.Time
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(repo StoryRepository, graph GraphPurger, logger *slog.Logger) *Service {
	return &Service{
		repo:   repo,
		graph:  graph,
		logger: logger,
		now:    func() time.Time { return time.Now().UTC() },
	}
}

// # Catalog Queries

/*
ListStories returns every story with its chapter count, newest first.
*/
func (service *Service) ListStories(context context.Context) ([]*Summary, error) {
	return service.repo.ListWithChapterCounts(context)
}

/*
GetStory returns a single story.

Returns:
  - error: apperr.NotFound if missing
*/
func (service *Service) GetStory(context context.Context, id string) (*Story, error) {
	return service.repo.FindByID(context, id)
}

// # Catalog Commands

/*
SaveStory creates or updates a story from the form input.

Description: Normalizes text, applies defaults for blank cover colour, genre
and status, validates, then creates (empty ID) or updates (ID present, with
UpdatedAt refreshed).

Returns:
  - *Story: The persisted story
  - error: apperr.ValidationError, apperr.NotFound (update of a missing story), storage failures
*/
func (service *Service) SaveStory(context context.Context, input Input) (*Story, error) {
	story := &Story{
		ID:          input.ID,
		Title:       textutil.Normalize(input.Title),
		Description: textutil.Normalize(input.Description),
		CoverColor:  fallback(input.CoverColor, constants.DefaultCoverColor),
		CoverImage:  pointer.NonEmpty(textutil.Normalize(input.CoverImage)),
		Genre:       fallback(input.Genre, constants.DefaultGenre),
		Status:      fallback(input.Status, constants.DefaultStatus),
	}

	validator := &validate.Validator{}
	validator.Required(FieldTitle, story.Title)
	validator.MaxLen(FieldTitle, story.Title, constants.MaxTitleLength)
	validator.MaxLen(FieldDescription, story.Description, constants.MaxDescriptionLength)
	validator.HexColor(FieldCoverColor, story.CoverColor)
	validator.MaxLen(FieldGenre, story.Genre, constants.MaxLabelLength)
	validator.MaxLen(FieldStatus, story.Status, constants.MaxLabelLength)

	if err := validator.Err(); err != nil {
		return nil, err
	}

	currentTime := service.now()

	// Update path keeps the original creation time
	if story.ID != "" {
		existing, err := service.repo.FindByID(context, story.ID)
		if err != nil {
			return nil, err
		}

		story.CreatedAt = existing.CreatedAt
		story.UpdatedAt = currentTime
		if err := service.repo.Update(context, story); err != nil {
			return nil, err
		}

		service.logger.Info("story_updated", slog.String("story_id", story.ID))
		return story, nil
	}

	story.ID = uuid.New()
	story.CreatedAt = currentTime
	story.UpdatedAt = currentTime

	if err := service.repo.Create(context, story); err != nil {
		return nil, err
	}

	service.logger.Info("story_created",
		slog.String("story_id", story.ID),
		slog.String("title", story.Title),
	)

	return story, nil
}

/*
DeleteStory removes a story and everything it owns.

Description: The narrative graph is purged first and the story record last,
so an interruption leaves at worst an empty story rather than orphaned chapters.
The steps are sequential and not rolled back.

Returns:
  - error: apperr.NotFound if the story does not exist, storage failures
*/
func (service *Service) DeleteStory(context context.Context, id string) error {
	if _, err := service.repo.FindByID(context, id); err != nil {
		return err
	}

	if err := service.graph.DeleteStoryGraph(context, id); err != nil {
		return err
	}

	if err := service.repo.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("story_deleted", slog.String("story_id", id))
	return nil
}

// fallback normalizes value and substitutes def when it is blank.
func fallback(value, def string) string {
	value = textutil.Normalize(value)
	if value == "" {
		return def
	}
	return value
}
