// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dberr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/taibuivan/enredo/internal/platform/apperr"
)

func TestWrap(t *testing.T) {
	assert.NoError(t, Wrap(nil, "Story", "find story"))

	assert.True(t, apperr.IsNotFound(Wrap(pgx.ErrNoRows, "Story", "find story")))
	assert.True(t, apperr.IsNotFound(Wrap(fmt.Errorf("decode: %w", mongo.ErrNoDocuments), "Chapter", "find chapter")))

	cause := errors.New("connection reset")
	err := Wrap(cause, "Story", "insert story")
	ae := apperr.As(err)
	if assert.NotNil(t, ae) {
		assert.Equal(t, apperr.CodeInternal, ae.Code)
		assert.ErrorIs(t, err, cause)
		assert.Contains(t, ae.Cause.Error(), "insert story")
	}

	// Pre-classified errors pass through untouched
	nf := apperr.NotFound("Choice")
	assert.Same(t, nf, Wrap(nf, "Story", "x"))
}
