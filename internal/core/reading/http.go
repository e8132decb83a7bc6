// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/constants"
	requestutil "github.com/taibuivan/enredo/internal/platform/request"
	"github.com/taibuivan/enredo/internal/platform/respond"
	"github.com/taibuivan/enredo/internal/platform/view"
)

// # Handler Implementation

// Handler implements the HTTP layer for the public reader.
type Handler struct {
	service *Service
	pages   respond.Pages
}

// NewHandler constructs a new reading [Handler].
func NewHandler(service *Service, pages respond.Pages) *Handler {
	return &Handler{service: service, pages: pages}
}

// RegisterRoutes attaches the reader endpoints.
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get(constants.RouteReadPrefix+"{storyID}", handler.Read)
	router.Post(constants.RouteReadPrefix+"{storyID}/choice", handler.Choose)
	router.Post(constants.RouteReadPrefix+"{storyID}/restart", handler.Restart)
}

/*
GET /read/{storyID}.

Response:
  - 200: The current chapter and its choices
  - 200: Message page when the story has no chapters
  - 302: Home when the story does not exist
*/
func (handler *Handler) Read(writer http.ResponseWriter, request *http.Request) {
	storyID, ok := requestutil.ID(request, "storyID")
	if !ok {
		respond.Redirect(writer, request, constants.RouteHome)
		return
	}

	reading, err := handler.service.Open(request.Context(), requestutil.SessionID(request), storyID)
	switch {
	case errors.Is(err, ErrNoChapters):
		data := view.MessageData{Message: ErrNoChapters.Message, Link: constants.RouteHome, LinkLabel: "Voltar"}
		respond.Page(writer, request, handler.pages, view.PageMessage, view.NewPage(request, "", data))
		return
	case apperr.IsNotFound(err):
		respond.Redirect(writer, request, constants.RouteHome)
		return
	case err != nil:
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	page := view.NewPage(request, reading.Story.Title, reading)
	respond.Page(writer, request, handler.pages, view.PageReader, page)
}

/*
POST /read/{storyID}/choice.

Request (form):
  - nextChapterId: string (empty leaves the bookmark unchanged)

Response:
  - 302: Back to the reader
*/
func (handler *Handler) Choose(writer http.ResponseWriter, request *http.Request) {
	storyID, ok := requestutil.ID(request, "storyID")
	if !ok {
		respond.Redirect(writer, request, constants.RouteHome)
		return
	}

	if err := requestutil.ParseForm(writer, request); err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	nextChapterID := requestutil.FormValue(request, "nextChapterId")
	_, err := handler.service.Advance(request.Context(), requestutil.SessionID(request), storyID, nextChapterID)
	if err != nil && !apperr.IsNotFound(err) {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	respond.Redirect(writer, request, readerPath(storyID))
}

/*
POST /read/{storyID}/restart.
*/
func (handler *Handler) Restart(writer http.ResponseWriter, request *http.Request) {
	storyID, ok := requestutil.ID(request, "storyID")
	if !ok {
		respond.Redirect(writer, request, constants.RouteHome)
		return
	}

	if err := handler.service.Restart(request.Context(), requestutil.SessionID(request), storyID); err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	respond.Redirect(writer, request, readerPath(storyID))
}

func readerPath(storyID string) string {
	return constants.RouteReadPrefix + storyID
}
