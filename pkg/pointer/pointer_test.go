// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package pointer

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVal(t *testing.T) {
	var missing *string
	assert.Equal(t, "", Val(missing))

	id := "abc"
	assert.Equal(t, "abc", Val(&id))
}

func TestFallback(t *testing.T) {
	var unset *int
	assert.Equal(t, 7, Fallback(unset, 7))

	zero := 0
	assert.Equal(t, 0, Fallback(&zero, 7), "an explicit zero is kept")
}

func TestNonEmpty(t *testing.T) {
	assert.Nil(t, NonEmpty(""))
	assert.Equal(t, "x", *NonEmpty("x"))
}
