// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package respond provides HTTP response helpers used by all handlers.
//
// # Architecture
//
// This package centralizes the presentation policy for HTTP responses: pages
// are rendered through the view layer, navigation ends in redirects, and every
// failure funnels through [Failure] so that logging and status mapping stay
// consistent. A tiny JSON surface remains for the health probes.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/ctxutil"
	"github.com/taibuivan/enredo/internal/platform/view"
)

// Pages is the subset of the view renderer the response helpers need.
type Pages interface {
	Render(writer http.ResponseWriter, status int, name string, page view.Page) error
	RenderError(writer http.ResponseWriter, status int, message, detail string)
}

// # HTML

// Page renders a full page with status 200.
func Page(writer http.ResponseWriter, request *http.Request, pages Pages, name string, page view.Page) {
	PageStatus(writer, request, pages, http.StatusOK, name, page)
}

// PageStatus renders a full page with an explicit status code.
func PageStatus(writer http.ResponseWriter, request *http.Request, pages Pages, status int, name string, page view.Page) {
	if err := pages.Render(writer, status, name, page); err != nil {
		Failure(writer, request, pages, apperr.Internal(err))
	}
}

// Redirect sends the browser to location after a form post or a missing resource.
func Redirect(writer http.ResponseWriter, request *http.Request, location string) {
	http.Redirect(writer, request, location, http.StatusFound)
}

// Failure converts any Go error into the generic failure page.
//
// Unknown errors are treated as internal. 5xx responses are logged once;
// the underlying cause is passed to the renderer, which shows it only in development.
func Failure(writer http.ResponseWriter, request *http.Request, pages Pages, err error) {
	var appError *apperr.AppError
	if !errors.As(err, &appError) {
		appError = apperr.Internal(err)
	}

	detail := ""
	if appError.Cause != nil {
		detail = appError.Cause.Error()
	}

	// Always log 5xx errors as they indicate server-side issues.
	if appError.HTTPStatus >= 500 {
		ctxutil.GetLogger(request.Context()).ErrorContext(request.Context(), "server_error",
			slog.String("code", appError.Code),
			slog.String("request_id", ctxutil.GetRequestID(request.Context())),
			slog.Any("cause", appError.Cause),
		)
	}

	pages.RenderError(writer, appError.HTTPStatus, appError.Message, detail)
}

// # JSON

// ErrorEnvelope is the JSON envelope for error responses.
type ErrorEnvelope struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// JSON writes a JSON response with the given status code.
func JSON(writer http.ResponseWriter, statusCode int, payload interface{}) {
	writer.Header().Set("Content-Type", "application/json; charset=utf-8")
	writer.WriteHeader(statusCode)
	_ = json.NewEncoder(writer).Encode(payload)
}

// Error writes an [apperr.AppError] as JSON; used by the probe endpoints.
func Error(writer http.ResponseWriter, err error) {
	appError := apperr.As(err)
	if appError == nil {
		appError = apperr.Internal(err)
	}

	JSON(writer, appError.HTTPStatus, ErrorEnvelope{
		Error: appError.Message,
		Code:  appError.Code,
	})
}
