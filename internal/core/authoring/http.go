// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package authoring

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/enredo/internal/core/chapter"
	"github.com/taibuivan/enredo/internal/core/story"
	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/constants"
	"github.com/taibuivan/enredo/internal/platform/middleware"
	requestutil "github.com/taibuivan/enredo/internal/platform/request"
	"github.com/taibuivan/enredo/internal/platform/respond"
	"github.com/taibuivan/enredo/internal/platform/view"
	"github.com/taibuivan/enredo/pkg/convert"
	"github.com/taibuivan/enredo/pkg/uuid"
)

// # Page Data

type formData struct {
	Story         *story.Story
	Form          ChapterForm
	Originating   *chapter.Choice
	SourceChapter *chapter.Chapter
	Choices       []Row
	Error         *apperr.AppError
}

// # Handler Implementation

// Handler implements the HTTP layer for the chapter forms.
type Handler struct {
	service *Service
	pages   respond.Pages
}

// NewHandler constructs a new authoring [Handler].
func NewHandler(service *Service, pages respond.Pages) *Handler {
	return &Handler{service: service, pages: pages}
}

// RegisterRoutes attaches the chapter authoring pages.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Get("/admin/story/{storyID}/chapter/new", handler.New)
		admin.Get("/admin/story/{storyID}/chapter/new-from-choice/{choiceID}", handler.NewFromChoice)
		admin.Get("/admin/story/{storyID}/chapter/edit/{chapterID}", handler.Edit)
		admin.Post("/admin/story/{storyID}/chapter/save-with-choices", handler.SaveWithChoices)
		admin.Post("/admin/story/{storyID}/chapter/save", handler.Save)
	})
}

/*
GET /admin/story/{storyID}/chapter/new.

Description: Blank chapter numbered after the current highest one.

Response:
  - 200: Chapter form
  - 404: Story missing
*/
func (handler *Handler) New(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.requireStory(writer, request)
	if !ok {
		return
	}

	number, err := handler.service.graph.NextChapterNumber(request.Context(), current.ID)
	if err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	handler.render(writer, request, http.StatusOK, formData{
		Story:   current,
		Form:    NumberForm(number),
		Choices: appendBlank(nil),
	})
}

/*
GET /admin/story/{storyID}/chapter/new-from-choice/{choiceID}.

Description: Blank chapter that will become the destination of the given choice.

Response:
  - 200: Chapter form showing the originating choice
  - 404: Story or choice missing
*/
func (handler *Handler) NewFromChoice(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.requireStory(writer, request)
	if !ok {
		return
	}

	choiceID, ok := requestutil.ID(request, "choiceID")
	if !ok {
		respond.Failure(writer, request, handler.pages, apperr.NotFound("Choice"))
		return
	}

	originating, source, err := handler.service.Origin(request.Context(), current.ID, choiceID)
	if err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	number, err := handler.service.graph.NextChapterNumber(request.Context(), current.ID)
	if err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	handler.render(writer, request, http.StatusOK, formData{
		Story:         current,
		Form:          NumberForm(number),
		Originating:   originating,
		SourceChapter: source,
		Choices:       appendBlank(nil),
	})
}

/*
GET /admin/story/{storyID}/chapter/edit/{chapterID}.

Response:
  - 200: Chapter form with the existing choices prefilled
  - 302: /admin when the story is missing, the chapter list when the chapter is
*/
func (handler *Handler) Edit(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.loadStory(writer, request)
	if !ok {
		return
	}

	chapterID, ok := requestutil.ID(request, "chapterID")
	if !ok {
		respond.Redirect(writer, request, chaptersPath(current.ID))
		return
	}

	existing, err := handler.service.graph.GetStoryChapter(request.Context(), current.ID, chapterID)
	if apperr.IsNotFound(err) {
		respond.Redirect(writer, request, chaptersPath(current.ID))
		return
	}
	if err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	choices, err := handler.service.graph.ListChoicesOrdered(request.Context(), existing.ID)
	if err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	handler.render(writer, request, http.StatusOK, formData{
		Story:   current,
		Form:    FormFrom(existing),
		Choices: RowsFor(choices),
	})
}

/*
POST /admin/story/{storyID}/chapter/save-with-choices.

Request (form):
  - id: string (empty creates)
  - chapter_number, title, content, is_ending
  - originating_choice_id: string (optional)
  - choices[k][text|order|next_content|next_chapter_id]

Response:
  - 302: To the chapter list
  - 400: Form re-rendered with inline messages
*/
func (handler *Handler) SaveWithChoices(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.loadStory(writer, request)
	if !ok {
		return
	}

	if err := requestutil.ParseForm(writer, request); err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	form := chapterForm(request)
	rows := ParseChoiceRows(request.PostForm)
	originatingID := requestutil.FormValue(request, "originating_choice_id")
	if originatingID != "" && !uuid.Valid(originatingID) {
		respond.Failure(writer, request, handler.pages, apperr.NotFound("Choice"))
		return
	}

	input, err := form.Input()
	if err == nil {
		_, err = handler.service.SaveChapterWithChoices(request.Context(), current.ID, Submission{
			Chapter:             input,
			Choices:             Drafts(rows),
			OriginatingChoiceID: originatingID,
		})
	}
	if apperr.IsValidation(err) {
		data := formData{Story: current, Form: form, Choices: rows, Error: apperr.As(err)}
		if originatingID != "" {
			data.Originating, data.SourceChapter, _ = handler.service.Origin(request.Context(), current.ID, originatingID)
		}
		handler.render(writer, request, http.StatusBadRequest, data)
		return
	}
	if apperr.IsNotFound(err) {
		respond.Redirect(writer, request, chaptersPath(current.ID))
		return
	}
	if err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	respond.Redirect(writer, request, chaptersPath(current.ID))
}

/*
POST /admin/story/{storyID}/chapter/save.

Description: Saves the chapter fields only and continues on its choices page.
*/
func (handler *Handler) Save(writer http.ResponseWriter, request *http.Request) {
	current, ok := handler.loadStory(writer, request)
	if !ok {
		return
	}

	if err := requestutil.ParseForm(writer, request); err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	form := chapterForm(request)
	input, err := form.Input()
	var saved *chapter.Chapter
	if err == nil {
		input.StoryID = current.ID
		saved, err = handler.service.graph.SaveChapter(request.Context(), input)
	}
	if apperr.IsValidation(err) {
		handler.render(writer, request, http.StatusBadRequest, formData{
			Story:   current,
			Form:    form,
			Choices: appendBlank(nil),
			Error:   apperr.As(err),
		})
		return
	}
	if apperr.IsNotFound(err) {
		respond.Redirect(writer, request, chaptersPath(current.ID))
		return
	}
	if err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	respond.Redirect(writer, request, choicesPath(current.ID, saved.ID))
}

// # Helpers

// loadStory resolves {storyID}; a missing story sends the administrator back to the dashboard.
func (handler *Handler) loadStory(writer http.ResponseWriter, request *http.Request) (*story.Story, bool) {
	storyID, ok := requestutil.ID(request, "storyID")
	if !ok {
		respond.Redirect(writer, request, constants.RouteAdmin)
		return nil, false
	}

	current, err := handler.service.graph.GetStory(request.Context(), storyID)
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

// requireStory resolves {storyID}; a missing story renders the 404 page.
func (handler *Handler) requireStory(writer http.ResponseWriter, request *http.Request) (*story.Story, bool) {
	storyID, ok := requestutil.ID(request, "storyID")
	if !ok {
		respond.Failure(writer, request, handler.pages, apperr.NotFound("Story"))
		return nil, false
	}

	current, err := handler.service.graph.GetStory(request.Context(), storyID)
	if err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return nil, false
	}
	return current, true
}

func (handler *Handler) render(writer http.ResponseWriter, request *http.Request, status int, data formData) {
	title := "Novo capítulo"
	if data.Form.ID != "" {
		title = "Editar capítulo"
	}
	respond.PageStatus(writer, request, handler.pages, status, view.PageChapterForm, view.NewPage(request, title, data))
}

func chapterForm(request *http.Request) ChapterForm {
	return ChapterForm{
		ID:       requestutil.FormValue(request, "id"),
		Number:   requestutil.FormValue(request, chapter.FieldNumber),
		Title:    requestutil.FormValue(request, chapter.FieldTitle),
		Content:  requestutil.RawFormValue(request, chapter.FieldContent),
		IsEnding: convert.ToBool(requestutil.FormValue(request, "is_ending")),
	}
}

func chaptersPath(storyID string) string {
	return "/admin/story/" + storyID + "/chapters"
}

func choicesPath(storyID, chapterID string) string {
	return "/admin/story/" + storyID + "/chapter/" + chapterID + "/choices"
}
