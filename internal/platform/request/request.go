// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package requestutil provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and the HTML form
decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/ctxutil"
	"github.com/taibuivan/enredo/internal/platform/sec"
	"github.com/taibuivan/enredo/pkg/uuid"
)

// maxFormBytes bounds urlencoded bodies; chapter content is the largest field.
const maxFormBytes = 2 << 20

/*
ID retrieves a named URL parameter holding an entity identifier.

Returns:
  - string: The identifier
  - bool: false when the parameter is missing or malformed (treat as not found)
*/
func ID(request *http.Request, name string) (string, bool) {
	id := chi.URLParam(request, name)
	return id, uuid.Valid(id)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
ParseForm decodes an urlencoded body with a size cap.

Returns:
  - error: apperr.ValidationError if the body cannot be parsed
*/
func ParseForm(writer http.ResponseWriter, request *http.Request) error {
	request.Body = http.MaxBytesReader(writer, request.Body, maxFormBytes)
	if err := request.ParseForm(); err != nil {
		return apperr.ValidationError("Invalid form submission")
	}
	return nil
}

/*
FormValue returns a trimmed form value from the POST body.
*/
func FormValue(request *http.Request, name string) string {
	return strings.TrimSpace(request.PostFormValue(name))
}

/*
RawFormValue returns a form value untouched (long prose keeps its whitespace).
*/
func RawFormValue(request *http.Request, name string) string {
	return request.PostFormValue(name)
}

/*
SessionID returns the reader's session identifier.
*/
func SessionID(request *http.Request) string {
	return ctxutil.GetSessionID(request.Context())
}

/*
Principal extracts the authenticated administrator from the request context.

Returns nil if the request is anonymous.
*/
func Principal(request *http.Request) *sec.Principal {
	return ctxutil.GetPrincipal(request.Context())
}
