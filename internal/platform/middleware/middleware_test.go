// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/time/rate"

	"github.com/taibuivan/enredo/internal/platform/constants"
	"github.com/taibuivan/enredo/internal/platform/ctxutil"
	"github.com/taibuivan/enredo/internal/platform/sec"
)

type fakePages struct {
	status  int
	message string
}

func (pages *fakePages) RenderError(writer http.ResponseWriter, status int, message, _ string) {
	pages.status = status
	pages.message = message
	writer.WriteHeader(status)
}

type countingObserver struct {
	calls  int
	status int
}

func (observer *countingObserver) ObserveRequest(_ string, status int) {
	observer.calls++
	observer.status = status
}

var ok = http.HandlerFunc(func(writer http.ResponseWriter, _ *http.Request) {
	writer.WriteHeader(http.StatusNoContent)
})

func TestRequestID_GeneratesAndPropagates(t *testing.T) {
	var seen string
	handler := RequestID()(http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		seen = ctxutil.GetRequestID(request.Context())
	}))

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.NotEmpty(t, seen)
	assert.Equal(t, seen, recorder.Header().Get(constants.HeaderXRequestID))

	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.Header.Set(constants.HeaderXRequestID, "given")
	handler.ServeHTTP(httptest.NewRecorder(), request)
	assert.Equal(t, "given", seen)
}

func TestStructuredLogger_ObservesStatus(t *testing.T) {
	observer := &countingObserver{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	handler := StructuredLogger(logger, observer)(ok)
	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))

	assert.Equal(t, 1, observer.calls)
	assert.Equal(t, http.StatusNoContent, observer.status)
}

func TestPanicRecovery_RendersFailure(t *testing.T) {
	pages := &fakePages{}
	handler := PanicRecovery(pages)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("boom")
	}))

	recorder := httptest.NewRecorder()
	assert.NotPanics(t, func() {
		handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/", nil))
	})
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Equal(t, http.StatusInternalServerError, pages.status)
}

func TestRateLimiter_PerIP(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pages := &fakePages{}
	limiter := NewRateLimiter(ctx, rate.Every(1e12), 2, pages)
	handler := limiter.Handler(ok)

	call := func(ip string) int {
		request := httptest.NewRequest(http.MethodPost, "/login", nil)
		request.Header.Set(constants.HeaderXRealIP, ip)
		recorder := httptest.NewRecorder()
		handler.ServeHTTP(recorder, request)
		return recorder.Code
	}

	assert.Equal(t, http.StatusNoContent, call("10.0.0.1"))
	assert.Equal(t, http.StatusNoContent, call("10.0.0.1"))
	assert.Equal(t, http.StatusTooManyRequests, call("10.0.0.1"))

	// Another client keeps its own bucket
	assert.Equal(t, http.StatusNoContent, call("10.0.0.2"))
}

func TestRequireAdmin(t *testing.T) {
	handler := RequireAdmin(ok)

	recorder := httptest.NewRecorder()
	handler.ServeHTTP(recorder, httptest.NewRequest(http.MethodGet, "/admin", nil))
	assert.Equal(t, http.StatusFound, recorder.Code)
	assert.Equal(t, constants.RouteLogin, recorder.Header().Get("Location"))

	request := httptest.NewRequest(http.MethodGet, "/admin", nil)
	request = request.WithContext(ctxutil.WithPrincipal(request.Context(), &sec.Principal{UserID: "u1", Username: "admin"}))
	recorder = httptest.NewRecorder()
	handler.ServeHTTP(recorder, request)
	assert.Equal(t, http.StatusNoContent, recorder.Code)
}

func TestRealIP(t *testing.T) {
	request := httptest.NewRequest(http.MethodGet, "/", nil)
	request.RemoteAddr = "192.0.2.1:1234"
	assert.Equal(t, "192.0.2.1", RealIP(request))

	request.Header.Set(constants.HeaderXForwardedFor, "203.0.113.5, 10.0.0.1")
	assert.Equal(t, "203.0.113.5", RealIP(request))

	request.Header.Set(constants.HeaderXRealIP, "198.51.100.7")
	assert.Equal(t, "198.51.100.7", RealIP(request))
}
