// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package respond

import (
	"bytes"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/ctxutil"
	"github.com/taibuivan/enredo/internal/platform/view"
)

type recordedError struct {
	status  int
	message string
	detail  string
}

// errorPages records RenderError calls instead of writing HTML.
type errorPages struct {
	errors []recordedError
}

func (pages *errorPages) Render(writer http.ResponseWriter, status int, _ string, _ view.Page) error {
	writer.WriteHeader(status)
	return nil
}

func (pages *errorPages) RenderError(writer http.ResponseWriter, status int, message, detail string) {
	pages.errors = append(pages.errors, recordedError{status, message, detail})
	writer.WriteHeader(status)
}

func loggedRequest(buffer *bytes.Buffer) *http.Request {
	logger := slog.New(slog.NewJSONHandler(buffer, nil))
	request := httptest.NewRequest(http.MethodGet, "/admin", nil)
	ctx := ctxutil.WithRequestID(ctxutil.WithLogger(request.Context(), logger), "req-1")
	return request.WithContext(ctx)
}

func logLines(buffer *bytes.Buffer) []string {
	return strings.Split(strings.TrimSpace(buffer.String()), "\n")
}

func TestFailure_UnknownErrorLoggedOnce(t *testing.T) {
	var buffer bytes.Buffer
	pages := &errorPages{}
	recorder := httptest.NewRecorder()

	Failure(recorder, loggedRequest(&buffer), pages, errors.New("disk on fire"))

	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, []recordedError{{http.StatusInternalServerError, "An unexpected error occurred", "disk on fire"}}, pages.errors)

	lines := logLines(&buffer)
	if assert.Len(t, lines, 1) {
		assert.Contains(t, lines[0], `"msg":"server_error"`)
		assert.Contains(t, lines[0], `"request_id":"req-1"`)
		assert.Contains(t, lines[0], "disk on fire")
	}
}

func TestFailure_ClientErrorsAreNotLogged(t *testing.T) {
	var buffer bytes.Buffer
	pages := &errorPages{}
	recorder := httptest.NewRecorder()

	Failure(recorder, loggedRequest(&buffer), pages, apperr.NotFound("Story"))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Empty(t, buffer.String())
	if assert.Len(t, pages.errors, 1) {
		assert.Empty(t, pages.errors[0].detail)
	}
}
