// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package requestutil

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/enredo/pkg/uuid"
)

func TestID(t *testing.T) {
	id := uuid.New()
	router := chi.NewRouter()

	var got string
	var valid bool
	router.Get("/read/{storyID}", func(writer http.ResponseWriter, request *http.Request) {
		got, valid = ID(request, "storyID")
	})

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/read/"+id, nil))
	assert.Equal(t, id, got)
	assert.True(t, valid)

	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/read/not-an-id", nil))
	assert.False(t, valid)
}

func TestFormValues(t *testing.T) {
	form := url.Values{"title": {"  Drama A  "}, "content": {"  line\n"}}
	request := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(form.Encode()))
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	require.NoError(t, ParseForm(httptest.NewRecorder(), request))
	assert.Equal(t, "Drama A", FormValue(request, "title"))
	assert.Equal(t, "  line\n", RawFormValue(request, "content"))
	assert.Empty(t, FormValue(request, "missing"))
}
