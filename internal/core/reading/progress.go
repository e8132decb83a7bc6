// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package reading tracks where each reader is inside each story.

Progress is keyed by (session, story) and holds a single pointer to the chapter
being read. The pointer may go stale when its chapter is deleted; resolution
then falls back to the story's first chapter instead of failing.
*/
package reading

import (
	"net/http"
	"time"

	"github.com/taibuivan/enredo/internal/core/chapter"
	"github.com/taibuivan/enredo/internal/core/story"
	"github.com/taibuivan/enredo/internal/platform/apperr"
)

// ErrNoChapters is returned when a story has nothing to read yet.
var ErrNoChapters = apperr.New(apperr.CodeNoChapters, "This story has no chapters yet.", http.StatusNotFound)

// Progress is the reader's bookmark inside one story.
type Progress struct {
	SessionID        string
	StoryID          string
	CurrentChapterID string
	LastReadAt       time.Time
}

// Reading is everything the reader page shows.
type Reading struct {
	Story   *story.Story
	Chapter *chapter.Chapter
	Choices []*chapter.Choice
}
