// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth_test

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/metrics"
	"github.com/taibuivan/enredo/internal/storage/memory"
	"github.com/taibuivan/enredo/internal/users/auth"
)

func newService(t *testing.T) (*auth.Service, *prometheus.Registry) {
	t.Helper()
	registry := prometheus.NewRegistry()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return auth.NewService(memory.New().Users(), metrics.New(registry), logger), registry
}

func TestLogin(t *testing.T) {
	service, registry := newService(t)
	ctx := context.Background()

	created, err := service.EnsureAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)
	require.True(t, created)

	principal, err := service.Login(ctx, "admin", "admin123")
	require.NoError(t, err)
	assert.Equal(t, "admin", principal.Username)
	assert.NotEmpty(t, principal.UserID)

	_, err = service.Login(ctx, "admin", "wrong")
	require.Error(t, err)
	assert.Equal(t, apperr.CodeUnauthorized, apperr.As(err).Code)
	assert.Equal(t, auth.MessageInvalidCredentials, err.Error())

	_, err = service.Login(ctx, "nobody", "admin123")
	assert.Equal(t, auth.MessageInvalidCredentials, err.Error(), "unknown users get the same message")

	expected := `
# HELP enredo_login_attempts_total Total number of administrator login attempts by result.
# TYPE enredo_login_attempts_total counter
enredo_login_attempts_total{result="failure"} 2
enredo_login_attempts_total{result="success"} 1
`
	assert.NoError(t, testutil.GatherAndCompare(registry, strings.NewReader(expected), "enredo_login_attempts_total"))
}

func TestLogin_UsernameMatchesExactly(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	_, err := service.EnsureAdmin(ctx, "admin", "admin123")
	require.NoError(t, err)

	for _, username := range []string{"Admin", "ADMIN", " admin", "admin "} {
		_, err := service.Login(ctx, username, "admin123")
		require.Error(t, err, "username %q", username)
		assert.Equal(t, apperr.CodeUnauthorized, apperr.As(err).Code)
	}
}

func TestLogin_MissingCredentials(t *testing.T) {
	service, _ := newService(t)

	for _, tc := range []struct{ username, password string }{
		{"", "secret"},
		{"admin", ""},
		{"   ", ""},
	} {
		_, err := service.Login(context.Background(), tc.username, tc.password)
		require.True(t, apperr.IsValidation(err))
		assert.Equal(t, auth.MessageMissingCredentials, err.Error())
	}
}

func TestEnsureAdmin_Idempotent(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	created, err := service.EnsureAdmin(ctx, "admin", "first-pass")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = service.EnsureAdmin(ctx, "admin", "second-pass")
	require.NoError(t, err)
	assert.False(t, created)

	// The original password still works; the second call changed nothing
	_, err = service.Login(ctx, "admin", "first-pass")
	assert.NoError(t, err)
}

func TestEnsureAdmin_BlankPasswordSkips(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	created, err := service.EnsureAdmin(ctx, "admin", "")
	require.NoError(t, err)
	assert.False(t, created)

	_, err = service.Login(ctx, "admin", "anything")
	assert.Error(t, err)
}

func TestCreateUser_DuplicateUsername(t *testing.T) {
	service, _ := newService(t)
	ctx := context.Background()

	_, err := service.CreateUser(ctx, "editor", "password")
	require.NoError(t, err)

	_, err = service.CreateUser(ctx, "editor", "password")
	assert.True(t, apperr.IsValidation(err))
}

func TestCreateUser_ShortPassword(t *testing.T) {
	service, _ := newService(t)

	_, err := service.CreateUser(context.Background(), "editor", "abc")
	require.True(t, apperr.IsValidation(err))
	assert.NotEmpty(t, apperr.As(err).FieldMessage(auth.FieldPassword))
}
