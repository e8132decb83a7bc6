// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/constants"
	"github.com/taibuivan/enredo/internal/platform/ctxutil"
	"github.com/taibuivan/enredo/internal/platform/middleware"
	requestutil "github.com/taibuivan/enredo/internal/platform/request"
	"github.com/taibuivan/enredo/internal/platform/respond"
	"github.com/taibuivan/enredo/internal/platform/view"
)

// # Page Data

type catalogData struct {
	Stories []*Summary
}

type formData struct {
	Form  Input
	Error *apperr.AppError
}

// # Handler Implementation

// Handler implements the HTTP layer for the catalog and the story forms.
type Handler struct {
	service *Service
	pages   respond.Pages
}

// NewHandler constructs a new story [Handler].
func NewHandler(service *Service, pages respond.Pages) *Handler {
	return &Handler{service: service, pages: pages}
}

// RegisterRoutes attaches the public catalog and the story administration pages.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	// Public discovery
	router.Get("/", handler.Index)

	// Administrator only
	router.Group(func(admin chi.Router) {
		admin.Use(middleware.RequireAdmin)
		admin.Get("/admin", handler.Dashboard)
		admin.Get("/admin/story/new", handler.NewForm)
		admin.Get("/admin/story/edit/{id}", handler.EditForm)
		admin.Post("/admin/story/save", handler.Save)
		admin.Post("/admin/story/delete/{id}", handler.Delete)
	})
}

/*
GET /.

Description: Public catalog, newest first. A store failure degrades to an
empty catalog rather than an error page.
*/
func (handler *Handler) Index(writer http.ResponseWriter, request *http.Request) {
	stories, err := handler.service.ListStories(request.Context())
	if err != nil {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "catalog_load_failed", slog.Any("error", err))
		stories = nil
	}

	respond.Page(writer, request, handler.pages, view.PageIndex, view.NewPage(request, "", catalogData{Stories: stories}))
}

/*
GET /admin.

Description: Administrator dashboard listing every story with its chapter count.
*/
func (handler *Handler) Dashboard(writer http.ResponseWriter, request *http.Request) {
	stories, err := handler.service.ListStories(request.Context())
	if err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	respond.Page(writer, request, handler.pages, view.PageAdmin, view.NewPage(request, "Painel", catalogData{Stories: stories}))
}

/*
GET /admin/story/new.
*/
func (handler *Handler) NewForm(writer http.ResponseWriter, request *http.Request) {
	form := Input{
		CoverColor: constants.DefaultCoverColor,
		Genre:      constants.DefaultGenre,
		Status:     constants.DefaultStatus,
	}
	handler.renderForm(writer, request, http.StatusOK, form, nil)
}

/*
GET /admin/story/edit/{id}.

Response:
  - 200: Prefilled form
  - 302: Back to /admin when the story no longer exists
*/
func (handler *Handler) EditForm(writer http.ResponseWriter, request *http.Request) {
	id, ok := requestutil.ID(request, "id")
	if !ok {
		respond.Redirect(writer, request, constants.RouteAdmin)
		return
	}

	story, err := handler.service.GetStory(request.Context(), id)
	if apperr.IsNotFound(err) {
		respond.Redirect(writer, request, constants.RouteAdmin)
		return
	}
	if err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	handler.renderForm(writer, request, http.StatusOK, InputFrom(story), nil)
}

/*
POST /admin/story/save.

Request (form):
  - id: string (empty creates)
  - title, description, cover_color, cover_image, genre, status: string

Response:
  - 302: To the chapter list of the saved story
  - 400: Form re-rendered with inline messages
*/
func (handler *Handler) Save(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseForm(writer, request); err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	input := Input{
		ID:          requestutil.FormValue(request, "id"),
		Title:       requestutil.FormValue(request, FieldTitle),
		Description: requestutil.RawFormValue(request, FieldDescription),
		CoverColor:  requestutil.FormValue(request, FieldCoverColor),
		CoverImage:  requestutil.FormValue(request, "cover_image"),
		Genre:       requestutil.FormValue(request, FieldGenre),
		Status:      requestutil.FormValue(request, FieldStatus),
	}

	story, err := handler.service.SaveStory(request.Context(), input)
	switch {
	case apperr.IsValidation(err):
		handler.renderForm(writer, request, http.StatusBadRequest, input, apperr.As(err))
		return
	case apperr.IsNotFound(err):
		respond.Redirect(writer, request, constants.RouteAdmin)
		return
	case err != nil:
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	respond.Redirect(writer, request, "/admin/story/"+story.ID+"/chapters")
}

/*
POST /admin/story/delete/{id}.

Description: Cascades through chapters, choices and reading progress.
*/
func (handler *Handler) Delete(writer http.ResponseWriter, request *http.Request) {
	id, ok := requestutil.ID(request, "id")
	if !ok {
		respond.Redirect(writer, request, constants.RouteAdmin)
		return
	}

	err := handler.service.DeleteStory(request.Context(), id)
	if err != nil && !apperr.IsNotFound(err) {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	respond.Redirect(writer, request, constants.RouteAdmin)
}

func (handler *Handler) renderForm(writer http.ResponseWriter, request *http.Request, status int, form Input, formError *apperr.AppError) {
	title := "Nova história"
	if form.ID != "" {
		title = "Editar história"
	}

	page := view.NewPage(request, title, formData{Form: form, Error: formError})
	respond.PageStatus(writer, request, handler.pages, status, view.PageStoryForm, page)
}
