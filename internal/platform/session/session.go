// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package session gives every browser a stable session identifier and an optional
administrator principal.

The cookie carries only a signed, expiring session identifier (HS256, see
[sec.TokenService]). The bag itself (userId, username) lives in a [Store],
Redis in production. Both the cookie and the stored bag are renewed on every
request, so a session stays alive for as long as the browser keeps using it.

Flow:

 1. Read and verify the cookie; mint a fresh identifier when it is absent or invalid.
 2. Load the bag and renew its TTL.
 3. Re-issue the cookie with a new expiry.
 4. Expose the identifier and principal through [ctxutil].
*/
package session

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/taibuivan/enredo/internal/platform/constants"
	"github.com/taibuivan/enredo/internal/platform/ctxutil"
	"github.com/taibuivan/enredo/internal/platform/sec"
	"github.com/taibuivan/enredo/pkg/uuid"
)

// Manager binds the cookie codec to a bag [Store].
type Manager struct {
	store  Store
	tokens *sec.TokenService
	ttl    time.Duration
	secure bool
}

// NewManager constructs a Manager. secure marks the cookie HTTPS-only.
func NewManager(store Store, tokens *sec.TokenService, ttl time.Duration, secure bool) *Manager {
	return &Manager{
		store:  store,
		tokens: tokens,
		ttl:    ttl,
		secure: secure,
	}
}

// Middleware resolves the session for every request. It never rejects a request.
func (manager *Manager) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		ctx := request.Context()
		logger := ctxutil.GetLogger(ctx)

		// 1. Identify the browser
		sessionID := manager.sessionIDFromCookie(request)
		if sessionID == "" {
			sessionID = uuid.New()
		}

		// 2. Load the bag; a store outage degrades to an anonymous session
		data, found, err := manager.store.Load(ctx, sessionID)
		if err != nil {
			logger.WarnContext(ctx, "session_load_failed", slog.Any("error", err))
		}
		if found {
			if err := manager.store.Touch(ctx, sessionID, manager.ttl); err != nil {
				logger.WarnContext(ctx, "session_touch_failed", slog.Any("error", err))
			}
		}

		// 3. Rolling cookie
		if err := manager.writeCookie(writer, sessionID); err != nil {
			logger.ErrorContext(ctx, "session_cookie_failed", slog.Any("error", err))
		}

		// 4. Context injection
		ctx = ctxutil.WithSessionID(ctx, sessionID)
		if data.Authenticated() {
			ctx = ctxutil.WithPrincipal(ctx, &sec.Principal{UserID: data.UserID, Username: data.Username})
		}

		next.ServeHTTP(writer, request.WithContext(ctx))
	})
}

// SignIn attaches principal to the current session.
func (manager *Manager) SignIn(ctx context.Context, principal sec.Principal) error {
	sessionID := ctxutil.GetSessionID(ctx)
	if sessionID == "" {
		return fmt.Errorf("session: no session in context")
	}

	return manager.store.Save(ctx, sessionID, Data{
		UserID:   principal.UserID,
		Username: principal.Username,
	}, manager.ttl)
}

// SignOut destroys the current session and expires its cookie.
func (manager *Manager) SignOut(writer http.ResponseWriter, request *http.Request) error {
	ctx := request.Context()

	if sessionID := ctxutil.GetSessionID(ctx); sessionID != "" {
		if err := manager.store.Delete(ctx, sessionID); err != nil {
			return err
		}
	}

	// Replace the renewed cookie written by the middleware
	writer.Header().Del("Set-Cookie")
	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   manager.secure,
		SameSite: http.SameSiteLaxMode,
	})

	return nil
}

// Ping checks the bag store for readiness probes.
func (manager *Manager) Ping(ctx context.Context) error {
	return manager.store.Ping(ctx)
}

func (manager *Manager) sessionIDFromCookie(request *http.Request) string {
	cookie, err := request.Cookie(constants.SessionCookieName)
	if err != nil || cookie.Value == "" {
		return ""
	}

	sessionID, err := manager.tokens.VerifySessionToken(cookie.Value)
	if err != nil {
		return ""
	}
	return sessionID
}

func (manager *Manager) writeCookie(writer http.ResponseWriter, sessionID string) error {
	token, err := manager.tokens.IssueSessionToken(sessionID, manager.ttl)
	if err != nil {
		return err
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     constants.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(manager.ttl.Seconds()),
		Expires:  time.Now().Add(manager.ttl),
		HttpOnly: true,
		Secure:   manager.secure,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}
