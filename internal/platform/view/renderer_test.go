// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package view

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_ParsesEveryPage(t *testing.T) {
	renderer, err := New(false)
	require.NoError(t, err)

	for _, name := range []string{
		PageIndex, PageReader, PageMessage, PageLogin, PageAdmin, PageStoryForm,
		PageChapters, PageChapterForm, PageChoices, PageError, PageNotFound,
	} {
		assert.Contains(t, renderer.pages, name)
	}
}

func TestRender_UnknownPage(t *testing.T) {
	renderer, err := New(false)
	require.NoError(t, err)

	err = renderer.Render(httptest.NewRecorder(), http.StatusOK, "missing", Page{})
	assert.Error(t, err)
}

func TestRenderError_DetailOnlyWhenExposed(t *testing.T) {
	hidden, err := New(false)
	require.NoError(t, err)
	exposed, err := New(true)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	hidden.RenderError(recorder, http.StatusInternalServerError, "Something went wrong", "pq: relation missing")
	assert.Equal(t, http.StatusInternalServerError, recorder.Code)
	assert.Contains(t, recorder.Body.String(), "Something went wrong")
	assert.NotContains(t, recorder.Body.String(), "relation missing")

	recorder = httptest.NewRecorder()
	exposed.RenderError(recorder, http.StatusInternalServerError, "Something went wrong", "pq: relation missing")
	assert.Contains(t, recorder.Body.String(), "relation missing")
}

func TestRenderNotFound(t *testing.T) {
	renderer, err := New(false)
	require.NoError(t, err)

	recorder := httptest.NewRecorder()
	renderer.RenderNotFound(recorder, httptest.NewRequest(http.MethodGet, "/nowhere", nil))

	assert.Equal(t, http.StatusNotFound, recorder.Code)
	assert.Equal(t, "text/html; charset=utf-8", recorder.Header().Get("Content-Type"))
}

func TestParagraphs(t *testing.T) {
	assert.Equal(t, []string{"One\nline two", "Three"}, paragraphs("One\r\nline two\r\n\r\n\r\nThree\n"))
}
