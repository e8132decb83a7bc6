// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type readiness struct {
	Status string        `json:"status"`
	Checks []checkResult `json:"checks"`
}

func callHealth(t *testing.T, handler http.HandlerFunc) (int, readiness) {
	t.Helper()

	recorder := httptest.NewRecorder()
	handler(recorder, httptest.NewRequest(http.MethodGet, "/ready", nil))

	var body readiness
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return recorder.Code, body
}

func TestLiveness(t *testing.T) {
	liveness, _ := NewHealthHandlers(nil, slog.New(slog.NewTextHandler(io.Discard, nil)))

	recorder := httptest.NewRecorder()
	liveness(recorder, httptest.NewRequest(http.MethodGet, "/health", nil))

	assert.Equal(t, http.StatusOK, recorder.Code)
	assert.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
}

func TestReadiness_AllHealthy(t *testing.T) {
	ok := func(context.Context) error { return nil }
	_, readinessHandler := NewHealthHandlers([]Check{{Name: "postgres", Ping: ok}, {Name: "sessions", Ping: ok}}, slog.New(slog.NewTextHandler(io.Discard, nil)))

	status, body := callHealth(t, readinessHandler)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ready", body.Status)
	require.Len(t, body.Checks, 2)
	assert.True(t, body.Checks[0].IsOK)
}

func TestReadiness_Degraded(t *testing.T) {
	checks := []Check{
		{Name: "postgres", Ping: func(context.Context) error { return nil }},
		{Name: "sessions", Ping: func(context.Context) error { return errors.New("connection refused") }},
	}
	_, readinessHandler := NewHealthHandlers(checks, slog.New(slog.NewTextHandler(io.Discard, nil)))

	status, body := callHealth(t, readinessHandler)
	assert.Equal(t, http.StatusServiceUnavailable, status)
	assert.Equal(t, "degraded", body.Status)
	require.Len(t, body.Checks, 2)
	assert.True(t, body.Checks[0].IsOK)
	assert.False(t, body.Checks[1].IsOK)
	assert.Equal(t, "connection refused", body.Checks[1].Error)
}
