// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"context"
	"log/slog"
	"time"

	"github.com/taibuivan/enredo/internal/core/story"
	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/constants"
	"github.com/taibuivan/enredo/internal/platform/metrics"
	"github.com/taibuivan/enredo/internal/platform/validate"
	"github.com/taibuivan/enredo/pkg/slice"
	"github.com/taibuivan/enredo/pkg/textutil"
	"github.com/taibuivan/enredo/pkg/uuid"
)

const (
	FieldNumber        = "chapter_number"
	FieldTitle         = "title"
	FieldContent       = "content"
	FieldChoiceText    = "choice_text"
	FieldNextChapterID = "next_chapter_id"
	FieldOrder         = "order_number"
)

// StoryLookup resolves the owning story of a chapter.
type StoryLookup interface {
	FindByID(context context.Context, id string) (*story.Story, error)
}

// ProgressPurger removes the reading progress recorded against a story.
type ProgressPurger interface {
	DeleteByStory(context context.Context, storyID string) error
}

// # Service Layer

// Service orchestrates the narrative graph: chapters, choices and their links.
type Service struct {
	chapters ChapterRepository
	choices  ChoiceRepository
	stories  StoryLookup
	progress ProgressPurger
	metrics  *metrics.Metrics
	logger   *slog.Logger
	now      func() time.Time
}

// NewService constructs a new [Service] with its required collaborators.
func NewService(
	chapters ChapterRepository,
	choices ChoiceRepository,
	stories StoryLookup,
	progress ProgressPurger,
	metrics *metrics.Metrics,
	logger *slog.Logger,
) *Service {
	return &Service{
		chapters: chapters,
		choices:  choices,
		stories:  stories,
		progress: progress,
		metrics:  metrics,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// # Chapter Queries

/*
GetStory returns the story a chapter page is rendered for.
*/
func (service *Service) GetStory(context context.Context, storyID string) (*story.Story, error) {
	return service.stories.FindByID(context, storyID)
}

/*
GetChapter returns a single chapter.

Returns:
  - error: apperr.NotFound if missing
*/
func (service *Service) GetChapter(context context.Context, id string) (*Chapter, error) {
	return service.chapters.FindByID(context, id)
}

/*
GetStoryChapter returns a chapter only when it belongs to storyID.

Returns:
  - error: apperr.NotFound if missing or owned by another story
*/
func (service *Service) GetStoryChapter(context context.Context, storyID, chapterID string) (*Chapter, error) {
	chapter, err := service.chapters.FindByID(context, chapterID)
	if err != nil {
		return nil, err
	}
	if chapter.StoryID != storyID {
		return nil, apperr.NotFound("Chapter")
	}
	return chapter, nil
}

/*
GetStoryChoice returns a choice together with the chapter presenting it,
provided that chapter belongs to storyID.

Returns:
  - error: apperr.NotFound when the choice is missing or belongs to another story
*/
func (service *Service) GetStoryChoice(context context.Context, storyID, choiceID string) (*Choice, *Chapter, error) {
	choice, err := service.GetChoice(context, choiceID)
	if err != nil {
		return nil, nil, err
	}

	chapter, err := service.GetStoryChapter(context, storyID, choice.ChapterID)
	if apperr.IsNotFound(err) {
		return nil, nil, apperr.NotFound("Choice")
	}
	if err != nil {
		return nil, nil, err
	}
	return choice, chapter, nil
}

/*
FirstChapter returns the opening chapter of a story.

Returns:
  - error: apperr.NotFound when the story has no chapters
*/
func (service *Service) FirstChapter(context context.Context, storyID string) (*Chapter, error) {
	return service.chapters.First(context, storyID)
}

/*
NextChapterNumber suggests the number for a new chapter.

Description: 1 for an empty story, otherwise the highest existing number plus one.
The value is advisory; nothing prevents duplicates.
*/
func (service *Service) NextChapterNumber(context context.Context, storyID string) (int, error) {
	highest, found, err := service.chapters.MaxNumber(context, storyID)
	if err != nil {
		return 0, err
	}
	if !found {
		return 1, nil
	}
	return highest + 1, nil
}

/*
ListChaptersOrdered returns the chapters of a story ascending by number.
Equal numbers keep insertion order.
*/
func (service *Service) ListChaptersOrdered(context context.Context, storyID string) ([]*Chapter, error) {
	return service.chapters.ListByStory(context, storyID)
}

/*
Outline returns every chapter of a story with its ordered choices and their
resolved destinations. Destinations are looked up among the story's own chapters;
anything else resolves to nil.
*/
func (service *Service) Outline(context context.Context, storyID string) ([]*OutlineEntry, error) {
	chapters, err := service.chapters.ListByStory(context, storyID)
	if err != nil {
		return nil, err
	}

	ids := slice.Map(chapters, func(chapter *Chapter) string { return chapter.ID })
	choices, err := service.choices.ListByChapters(context, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[string]*Chapter, len(chapters))
	for _, chapter := range chapters {
		byID[chapter.ID] = chapter
	}
	grouped := slice.GroupBy(choices, func(choice *Choice) string { return choice.ChapterID })

	outline := make([]*OutlineEntry, 0, len(chapters))
	for _, chapter := range chapters {
		outline = append(outline, &OutlineEntry{
			Chapter: chapter,
			Choices: link(grouped[chapter.ID], byID),
		})
	}
	return outline, nil
}

// # Chapter Commands

/*
CreateChapter adds a chapter to an existing story.

Returns:
  - *Chapter: The persisted chapter
  - error: apperr.NotFound (story missing), apperr.ValidationError
*/
func (service *Service) CreateChapter(context context.Context, input ChapterInput) (*Chapter, error) {
	return service.create(context, input, metrics.OriginForm)
}

/*
SpawnChapter creates a chapter on behalf of the authoring workflow, for a choice
whose destination was written inline.
*/
func (service *Service) SpawnChapter(context context.Context, input ChapterInput) (*Chapter, error) {
	return service.create(context, input, metrics.OriginInline)
}

func (service *Service) create(context context.Context, input ChapterInput, origin string) (*Chapter, error) {
	if _, err := service.stories.FindByID(context, input.StoryID); err != nil {
		return nil, err
	}

	chapter := &Chapter{
		StoryID:  input.StoryID,
		Number:   input.Number,
		Title:    textutil.Normalize(input.Title),
		Content:  textutil.Normalize(input.Content),
		IsEnding: input.IsEnding,
	}
	if err := validateChapter(chapter); err != nil {
		return nil, err
	}

	chapter.ID = uuid.New()
	chapter.CreatedAt = service.now()

	if err := service.chapters.Create(context, chapter); err != nil {
		return nil, err
	}

	service.metrics.ChapterCreated(origin)
	service.logger.Info("chapter_created",
		slog.String("chapter_id", chapter.ID),
		slog.String("story_id", chapter.StoryID),
		slog.Int("chapter_number", chapter.Number),
		slog.String("origin", origin),
	)

	return chapter, nil
}

/*
UpdateChapter overwrites number, title, content and the ending flag.

Returns:
  - error: apperr.NotFound if the chapter is missing or owned by another story
*/
func (service *Service) UpdateChapter(context context.Context, input ChapterInput) (*Chapter, error) {
	chapter, err := service.GetStoryChapter(context, input.StoryID, input.ID)
	if err != nil {
		return nil, err
	}

	chapter.Number = input.Number
	chapter.Title = textutil.Normalize(input.Title)
	chapter.Content = textutil.Normalize(input.Content)
	chapter.IsEnding = input.IsEnding

	if err := validateChapter(chapter); err != nil {
		return nil, err
	}
	if err := service.chapters.Update(context, chapter); err != nil {
		return nil, err
	}

	service.logger.Info("chapter_updated", slog.String("chapter_id", chapter.ID))
	return chapter, nil
}

/*
SaveChapter creates (empty ID) or updates a chapter.
*/
func (service *Service) SaveChapter(context context.Context, input ChapterInput) (*Chapter, error) {
	if input.ID == "" {
		return service.CreateChapter(context, input)
	}
	return service.UpdateChapter(context, input)
}

/*
DeleteChapter removes a chapter.

Description: Its own choices are deleted, choices elsewhere that led to it
become dangling, then the chapter row goes. The steps are not rolled back; an
interruption leaves at worst dangling choices.
*/
func (service *Service) DeleteChapter(context context.Context, id string) error {
	if err := service.choices.DeleteByChapter(context, id); err != nil {
		return err
	}
	if err := service.choices.ClearNextChapter(context, id); err != nil {
		return err
	}
	if err := service.chapters.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("chapter_deleted", slog.String("chapter_id", id))
	return nil
}

/*
DeleteStoryGraph removes every choice, chapter and reading progress of a story.
The story record itself is left to the caller.
*/
func (service *Service) DeleteStoryGraph(context context.Context, storyID string) error {
	chapters, err := service.chapters.ListByStory(context, storyID)
	if err != nil {
		return err
	}

	ids := slice.Map(chapters, func(chapter *Chapter) string { return chapter.ID })
	if err := service.choices.DeleteByChapters(context, ids); err != nil {
		return err
	}
	if err := service.chapters.DeleteByStory(context, storyID); err != nil {
		return err
	}
	if err := service.progress.DeleteByStory(context, storyID); err != nil {
		return err
	}

	service.logger.Info("story_graph_deleted",
		slog.String("story_id", storyID),
		slog.Int("chapters", len(chapters)),
	)
	return nil
}

// # Choice Queries

/*
GetChoice returns a single choice.
*/
func (service *Service) GetChoice(context context.Context, id string) (*Choice, error) {
	return service.choices.FindByID(context, id)
}

/*
ListChoicesOrdered returns the choices of a chapter ascending by order number.
Equal orders keep insertion order.
*/
func (service *Service) ListChoicesOrdered(context context.Context, chapterID string) ([]*Choice, error) {
	return service.choices.ListByChapter(context, chapterID)
}

/*
ListChoiceLinks returns the ordered choices of a chapter with destinations
resolved. A destination that no longer exists, or belongs to another story,
resolves to nil.
*/
func (service *Service) ListChoiceLinks(context context.Context, chapter *Chapter) ([]ChoiceLink, error) {
	choices, err := service.choices.ListByChapter(context, chapter.ID)
	if err != nil {
		return nil, err
	}

	destinations := make(map[string]*Chapter)
	for _, choice := range choices {
		if choice.Dangling() {
			continue
		}
		id := *choice.NextChapterID
		if _, seen := destinations[id]; seen {
			continue
		}

		destination, err := service.chapters.FindByID(context, id)
		switch {
		case apperr.IsNotFound(err):
			destinations[id] = nil
		case err != nil:
			return nil, err
		case destination.StoryID != chapter.StoryID:
			destinations[id] = nil
		default:
			destinations[id] = destination
		}
	}

	return link(choices, destinations), nil
}

// # Choice Commands

/*
AddChoice presents a new choice on a chapter.

Description: Text is required. A destination, when given, must be a chapter of
the same story. Order defaults to 0.

Returns:
  - *Choice: The persisted choice
  - error: apperr.NotFound (chapter missing), apperr.ValidationError
*/
func (service *Service) AddChoice(context context.Context, input ChoiceInput) (*Choice, error) {
	chapter, err := service.chapters.FindByID(context, input.ChapterID)
	if err != nil {
		return nil, err
	}

	choice := &Choice{
		ChapterID: chapter.ID,
		Text:      textutil.Normalize(input.Text),
	}
	if input.Order != nil {
		choice.Order = *input.Order
	}

	validator := &validate.Validator{}
	validator.Required(FieldChoiceText, choice.Text)
	validator.MaxLen(FieldChoiceText, choice.Text, constants.MaxChoiceTextLength)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	if input.NextChapterID != nil && *input.NextChapterID != "" {
		if err := service.checkDestination(context, chapter.StoryID, *input.NextChapterID); err != nil {
			return nil, err
		}
		next := *input.NextChapterID
		choice.NextChapterID = &next
	}

	choice.ID = uuid.New()
	choice.CreatedAt = service.now()

	if err := service.choices.Create(context, choice); err != nil {
		return nil, err
	}

	service.metrics.ChoiceCreated()
	service.logger.Info("choice_created",
		slog.String("choice_id", choice.ID),
		slog.String("chapter_id", choice.ChapterID),
		slog.Bool("dangling", choice.Dangling()),
	)

	return choice, nil
}

/*
DeleteChoice removes a single choice. Choices are leaves; nothing cascades.
*/
func (service *Service) DeleteChoice(context context.Context, id string) error {
	if err := service.choices.Delete(context, id); err != nil {
		return err
	}

	service.logger.Info("choice_deleted", slog.String("choice_id", id))
	return nil
}

/*
LinkChoice points an existing choice at a chapter of the same story.

Returns:
  - error: apperr.NotFound (choice missing), apperr.ValidationError (foreign or missing chapter)
*/
func (service *Service) LinkChoice(context context.Context, choiceID, chapterID string) error {
	choice, err := service.choices.FindByID(context, choiceID)
	if err != nil {
		return err
	}

	source, err := service.chapters.FindByID(context, choice.ChapterID)
	if err != nil {
		return err
	}

	if err := service.checkDestination(context, source.StoryID, chapterID); err != nil {
		return err
	}
	if err := service.choices.SetNextChapter(context, choiceID, chapterID); err != nil {
		return err
	}

	service.logger.Info("choice_linked",
		slog.String("choice_id", choiceID),
		slog.String("next_chapter_id", chapterID),
	)
	return nil
}

/*
ClearChoices removes every choice presented on a chapter.
*/
func (service *Service) ClearChoices(context context.Context, chapterID string) error {
	return service.choices.DeleteByChapter(context, chapterID)
}

/*
CheckDestination reports whether chapterID may be the destination of a choice
presented in storyID.

Returns:
  - error: apperr.ValidationError on FieldNextChapterID
*/
func (service *Service) CheckDestination(context context.Context, storyID, chapterID string) error {
	return service.checkDestination(context, storyID, chapterID)
}

func (service *Service) checkDestination(context context.Context, storyID, chapterID string) error {
	if err := (&validate.Validator{}).ID(FieldNextChapterID, chapterID).Err(); err != nil {
		return err
	}

	destination, err := service.chapters.FindByID(context, chapterID)
	if apperr.IsNotFound(err) {
		return validate.FieldError(FieldNextChapterID, "Chapter does not exist")
	}
	if err != nil {
		return err
	}
	if destination.StoryID != storyID {
		return validate.FieldError(FieldNextChapterID, "Must be a chapter of this story")
	}
	return nil
}

// # Helpers

func validateChapter(chapter *Chapter) error {
	validator := &validate.Validator{}
	validator.Required(FieldTitle, chapter.Title)
	validator.MaxLen(FieldTitle, chapter.Title, constants.MaxTitleLength)
	validator.Required(FieldContent, chapter.Content)
	validator.MaxLen(FieldContent, chapter.Content, constants.MaxContentLength)
	validator.Custom(FieldNumber, chapter.Number < 0, "Must not be negative")
	return validator.Err()
}

func link(choices []*Choice, destinations map[string]*Chapter) []ChoiceLink {
	links := make([]ChoiceLink, 0, len(choices))
	for _, choice := range choices {
		entry := ChoiceLink{Choice: choice}
		if !choice.Dangling() {
			entry.Destination = destinations[*choice.NextChapterID]
		}
		links = append(links, entry)
	}
	return links
}
