// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAs_TraversesWrapping(t *testing.T) {
	err := fmt.Errorf("loading chapter: %w", NotFound("Chapter"))

	ae := As(err)
	if assert.NotNil(t, ae) {
		assert.Equal(t, http.StatusNotFound, ae.HTTPStatus)
		assert.Equal(t, "Chapter not found", ae.Message)
	}
	assert.True(t, IsNotFound(err))
	assert.False(t, IsValidation(err))
	assert.Nil(t, As(errors.New("plain")))
}

func TestIs_MatchesByCode(t *testing.T) {
	sentinel := New(CodeNoChapters, "no chapters", http.StatusNotFound)
	err := fmt.Errorf("resolve: %w", New(CodeNoChapters, "other text", http.StatusNotFound))

	assert.True(t, errors.Is(err, sentinel))
	assert.False(t, errors.Is(err, NotFound("Story")))
}

func TestInternal_KeepsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Internal(cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "An unexpected error occurred", err.Error())
}

func TestFieldMessage(t *testing.T) {
	err := ValidationError("Invalid input",
		FieldError{Field: "title", Message: "title is required"},
	)

	assert.Equal(t, "title is required", err.FieldMessage("title"))
	assert.Empty(t, err.FieldMessage("content"))
}
