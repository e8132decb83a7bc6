// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/constants"
	"github.com/taibuivan/enredo/internal/platform/sec"
	requestutil "github.com/taibuivan/enredo/internal/platform/request"
	"github.com/taibuivan/enredo/internal/platform/respond"
	"github.com/taibuivan/enredo/internal/platform/view"
)

// Sessions is the part of the session manager the login flow drives.
type Sessions interface {
	SignIn(ctx context.Context, principal sec.Principal) error
	SignOut(writer http.ResponseWriter, request *http.Request) error
}

// # Page Data

type loginData struct {
	Username string
	Error    string
}

// # Handler Implementation

// Handler implements the login and logout endpoints.
type Handler struct {
	service  *Service
	sessions Sessions
	limiter  func(http.Handler) http.Handler
	pages    respond.Pages
}

// NewHandler constructs a new auth [Handler]. limiter wraps POST /login.
func NewHandler(service *Service, sessions Sessions, limiter func(http.Handler) http.Handler, pages respond.Pages) *Handler {
	return &Handler{service: service, sessions: sessions, limiter: limiter, pages: pages}
}

// RegisterRoutes attaches the authentication endpoints.
//
// # Endpoints
//   - GET  /secret-admin-login : Login form
//   - POST /login              : Verifies credentials (rate limited per IP)
//   - GET  /logout             : Destroys the session
func (handler *Handler) RegisterRoutes(router chi.Router) {
	router.Get(constants.RouteLogin, handler.LoginForm)
	router.With(handler.limiter).Post("/login", handler.Login)
	router.Get("/logout", handler.Logout)
}

/*
GET /secret-admin-login.

Response:
  - 200: Login form
  - 302: /admin when already signed in
*/
func (handler *Handler) LoginForm(writer http.ResponseWriter, request *http.Request) {
	if requestutil.Principal(request) != nil {
		respond.Redirect(writer, request, constants.RouteAdmin)
		return
	}

	respond.Page(writer, request, handler.pages, view.PageLogin, view.NewPage(request, "Entrar", loginData{}))
}

/*
POST /login.

Request (form):
  - username: string
  - password: string

Response:
  - 302: /admin on success
  - 400: Form re-rendered when a field is blank
  - 401: Form re-rendered on bad credentials
*/
func (handler *Handler) Login(writer http.ResponseWriter, request *http.Request) {
	if err := requestutil.ParseForm(writer, request); err != nil {
		respond.Failure(writer, request, handler.pages, err)
		return
	}

	username := requestutil.RawFormValue(request, FieldUsername)
	password := requestutil.RawFormValue(request, FieldPassword)

	principal, err := handler.service.Login(request.Context(), username, password)
	if err != nil {
		appError := apperr.As(err)
		if appError == nil || appError.HTTPStatus >= http.StatusInternalServerError {
			respond.Failure(writer, request, handler.pages, err)
			return
		}

		page := view.NewPage(request, "Entrar", loginData{Username: username, Error: appError.Message})
		respond.PageStatus(writer, request, handler.pages, appError.HTTPStatus, view.PageLogin, page)
		return
	}

	if err := handler.sessions.SignIn(request.Context(), *principal); err != nil {
		respond.Failure(writer, request, handler.pages, apperr.Internal(err))
		return
	}

	respond.Redirect(writer, request, constants.RouteAdmin)
}

/*
GET /logout.
*/
func (handler *Handler) Logout(writer http.ResponseWriter, request *http.Request) {
	if err := handler.sessions.SignOut(writer, request); err != nil {
		respond.Failure(writer, request, handler.pages, apperr.Internal(err))
		return
	}

	respond.Redirect(writer, request, constants.RouteHome)
}
