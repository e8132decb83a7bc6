// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package middleware

import (
	"log/slog"
	"net/http"

	"github.com/taibuivan/enredo/internal/platform/constants"
	"github.com/taibuivan/enredo/internal/platform/ctxutil"
)

// RequireAdmin redirects anonymous sessions to the login entry point.
//
// # Usage
//
// Must be registered AFTER the session middleware, which resolves the principal.
// There is a single role: any authenticated session may author.
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		if ctxutil.GetPrincipal(request.Context()) == nil {
			ctxutil.GetLogger(request.Context()).InfoContext(request.Context(), "admin_gate_redirect",
				slog.String("path", request.URL.Path),
			)
			http.Redirect(writer, request, constants.RouteLogin, http.StatusFound)
			return
		}
		next.ServeHTTP(writer, request)
	})
}
