// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package chapter implements the narrative graph: the chapters of a story and the
choices that link them.

Graph shape:

	Story ──owns──▶ Chapter ──presents──▶ Choice ──leads to──▶ Chapter (optional)

A choice whose destination is absent, or whose destination was deleted, is
"dangling": it is still shown to readers but leads nowhere. Dangling is a valid
steady state, never an error. Chapter numbers are author-assigned and may
repeat or skip; ordering ties are broken by insertion order.
*/
package chapter

import (
	"time"

	"github.com/taibuivan/enredo/pkg/pointer"
)

// Chapter is a narrative unit within a story. IsEnding marks a terminal node.
type Chapter struct {
	ID        string
	StoryID   string
	Number    int
	Title     string
	Content   string
	IsEnding  bool
	CreatedAt time.Time
}

// Choice is a labelled edge presented on ChapterID.
// NextChapterID is nil for a dangling choice.
type Choice struct {
	ID            string
	ChapterID     string
	Text          string
	NextChapterID *string
	Order         int
	CreatedAt     time.Time
}

// Dangling reports whether the choice has no destination.
func (choice *Choice) Dangling() bool {
	return pointer.Val(choice.NextChapterID) == ""
}

// ChoiceLink is a choice with its destination resolved (nil when dangling).
type ChoiceLink struct {
	*Choice
	Destination *Chapter
}

// OutlineEntry is a chapter with its ordered, resolved choices.
type OutlineEntry struct {
	Chapter *Chapter
	Choices []ChoiceLink
}

// ChapterInput is the validated command for creating or updating a chapter.
// An empty ID creates.
type ChapterInput struct {
	ID       string
	StoryID  string
	Number   int
	Title    string
	Content  string
	IsEnding bool
}

// ChoiceInput is the validated command for adding a choice.
// A nil Order defaults to 0.
type ChoiceInput struct {
	ChapterID     string
	Text          string
	NextChapterID *string
	Order         *int
}
