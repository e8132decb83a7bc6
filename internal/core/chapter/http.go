// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/enredo/internal/core/story"
	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/constants"
	"github.com/taibuivan/enredo/internal/platform/middleware"
	requestutil "github.com/taibuivan/enredo/internal/platform/request"
	"github.com/taibuivan/enredo/internal/platform/respond"
	"github.com/taibuivan/enredo/internal/platform/view"
	"github.com/taibuivan/enredo/pkg/convert"
	"github.com/taibuivan/enredo/pkg/pointer"
	"github.com/taibuivan/enredo/pkg/uuid"
)

// # Page Data

type outlineData struct {
	Story    *story.Story
	Chapters []*OutlineEntry
}

// ChoiceForm echoes the add-choice form back on a validation failure.
type ChoiceForm struct {
	Text          string
	NextChapterID string
	Order         string
}

type choicesData struct {
	Story    *story.Story
	Chapter  *Chapter
	Choices  []ChoiceLink
	Chapters []*Chapter
	Form     ChoiceForm
	Error    *apperr.AppError
}

// # Handler Implementation

// Handler implements the HTTP layer for the chapter list and choice management.
type Handler struct {
	service *Service
	pages   respond.Pages
}

// NewHandler constructs a new chapter [Handler].
func NewHandler(service *Service, pages respond.Pages) *Handler {
	return &Handler{service: service, pages: pages}
}

// RegisterRoutes attaches the administrator graph pages.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Get("/admin/story/{storyID}/chapters", handler.List)
		admin.Get("/admin/story/{storyID}/chapter/{chapterID}/choices", handler.Choices)
		admin.Post("/admin/story/{storyID}/chapter/delete/{chapterID}", handler.DeleteChapter)
		admin.Post("/admin/story/{storyID}/choice/add", handler.AddChoice)
		admin.Post("/admin/story/{storyID}/choice/delete/{choiceID}", handler.DeleteChoice)
	})
}

/*
GET /admin/story/{storyID}/chapters.

Description: Ordered chapters, each with its ordered choices and their destinations.

Response:
  - 200: Outline page
  - 302: Back to /admin when the story no longer exists
*/
func (handler *Handler) List(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.loadStory(writer, request)
	if !ok {
		return
	}

	outline, err := handler.service.Outline(request.Context(), current.ID)
	if err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	page := view.NewPage(request, current.Title, outlineData{Story: current, Chapters: outline})
	respond.Page(writer, request, handler.pages, view.PageChapters, page)
}

/*
GET /admin/story/{storyID}/chapter/{chapterID}/choices.

Description: Choices of one chapter plus every chapter of the story for the
destination picker.
*/
func (handler *Handler) Choices(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.loadStory(writer, request)
	if !ok {
		return
	}

	chapterID, ok := requestutil.ID(request, "chapterID")
	if !ok {
		respond.Redirect(writer, request, chaptersPath(current.ID))
		return
	}
	handler.renderChoices(writer, request, http.StatusOK, current, chapterID, ChoiceForm{Order: "0"}, nil)
}

/*
POST /admin/story/{storyID}/choice/add.

Request (form):
  - chapter_id: string
  - choice_text: string
  - next_chapter_id: string (optional)
  - order_number: int (optional, default 0)

Response:
  - 302: Back to the choices page
  - 400: Choices page re-rendered with inline messages
*/
func (handler *Handler) AddChoice(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.loadStory(writer, request)
	if !ok {
		return
	}

	if err := requestutil.ParseForm(writer, request); err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	chapterID := requestutil.FormValue(request, "chapter_id")
	form := ChoiceForm{
		Text:          requestutil.FormValue(request, FieldChoiceText),
		NextChapterID: requestutil.FormValue(request, FieldNextChapterID),
		Order:         requestutil.FormValue(request, FieldOrder),
	}

	if !uuid.Valid(chapterID) {
		respond.Redirect(writer, request, chaptersPath(current.ID))
		return
	}
	if _, err := handler.service.GetStoryChapter(request.Context(), current.ID, chapterID); err != nil {
		handler.fail(writer, request, current.ID, err)
		return
	}

	_, err := handler.service.AddChoice(request.Context(), ChoiceInput{
		ChapterID:     chapterID,
		Text:          form.Text,
		NextChapterID: pointer.NonEmpty(form.NextChapterID),
		Order:         convert.ToIntPtr(form.Order),
	})
	if apperr.IsValidation(err) {
		handler.renderChoices(writer, request, http.StatusBadRequest, current, chapterID, form, apperr.As(err))
		return
	}
	if err != nil {
		handler.fail(writer, request, current.ID, err)
		return
	}

	respond.Redirect(writer, request, choicesPath(current.ID, chapterID))
}

/*
POST /admin/story/{storyID}/choice/delete/{choiceID}.

Description: Choices presented in another story are left alone.

Request (form):
  - chapter_id: string (where to return)
*/
func (handler *Handler) DeleteChoice(writer http.ResponseWriter, request *http.Request) {
	storyID, _ := requestutil.ID(request, "storyID")
	if err := requestutil.ParseForm(writer, request); err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	if choiceID, ok := requestutil.ID(request, "choiceID"); ok {
		_, _, err := handler.service.GetStoryChoice(request.Context(), storyID, choiceID)
		if err == nil {
			err = handler.service.DeleteChoice(request.Context(), choiceID)
		}
		if err != nil && !apperr.IsNotFound(err) {
			respond.Failure(writer, request, handler.pages, err)
			return
		}
	}

	chapterID := requestutil.FormValue(request, "chapter_id")
	if !uuid.Valid(chapterID) {
		respond.Redirect(writer, request, chaptersPath(storyID))
		return
	}
	respond.Redirect(writer, request, choicesPath(storyID, chapterID))
}

/*
POST /admin/story/{storyID}/chapter/delete/{chapterID}.

Description: Removes the chapter and its choices; choices elsewhere that led to
it become dangling.
*/
func (handler *Handler) DeleteChapter(writer http.ResponseWriter, request *http.Request) {
	storyID, _ := requestutil.ID(request, "storyID")
	chapterID, ok := requestutil.ID(request, "chapterID")
	if !ok {
		respond.Redirect(writer, request, chaptersPath(storyID))
		return
	}

	_, err := handler.service.GetStoryChapter(request.Context(), storyID, chapterID)
	if err == nil {
		err = handler.service.DeleteChapter(request.Context(), chapterID)
	}
	if err != nil && !apperr.IsNotFound(err) {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	respond.Redirect(writer, request, chaptersPath(storyID))
}

// # Helpers

// loadStory resolves {storyID}; a missing story sends the administrator back to the dashboard.
func (handler *Handler) loadStory(writer http.ResponseWriter, request *http.Request) (*story.Story, bool) {
	storyID, ok := requestutil.ID(request, "storyID")
	if !ok {
		respond.Redirect(writer, request, constants.RouteAdmin)
		return nil, false
	}

	current, err := handler.service.GetStory(request.Context(), storyID)
	if apperr.IsNotFound(err) {
		respond.Redirect(writer, request, constants.RouteAdmin)
		return nil, false
	}
	if err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return nil, false
	}
	return current, true
}

func (handler *Handler) renderChoices(writer http.ResponseWriter, request *http.Request, status int, current *story.Story, chapterID string, form ChoiceForm, formError *apperr.AppError) {
	chapter, err := handler.service.GetStoryChapter(request.Context(), current.ID, chapterID)
	if err != nil {
		handler.fail(writer, request, current.ID, err)
		return
	}

	links, err := handler.service.ListChoiceLinks(request.Context(), chapter)
	if err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	chapters, err := handler.service.ListChaptersOrdered(request.Context(), current.ID)
	if err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	data := choicesData{
		Story:    current,
		Chapter:  chapter,
		Choices:  links,
		Chapters: chapters,
		Form:     form,
		Error:    formError,
	}
	respond.PageStatus(writer, request, handler.pages, status, view.PageChoices, view.NewPage(request, "Escolhas", data))
}

// fail redirects to the chapter list on a missing chapter, otherwise renders the failure page.
func (handler *Handler) fail(writer http.ResponseWriter, request *http.Request, storyID string, err error) {
	if apperr.IsNotFound(err) {
		respond.Redirect(writer, request, chaptersPath(storyID))
		return
	}
	respond.Failure(writer, request, handler.pages, err)
}

func chaptersPath(storyID string) string {
	return "/admin/story/" + storyID + "/chapters"
}

func choicesPath(storyID, chapterID string) string {
	return "/admin/story/" + storyID + "/chapter/" + chapterID + "/choices"
}
