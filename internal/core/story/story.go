// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package story implements the story catalog: the branching works readers browse
and administrators create, edit and delete.

A story owns its chapters. Deleting a story purges the whole narrative graph
(chapters, choices, reading progress) before the story record itself.
*/
package story

import "time"

// Story is a branching narrative work.
type Story struct {
	ID          string
	Title       string
	Description string
	CoverColor  string
	CoverImage  *string
	Genre       string
	Status      string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Summary is a catalog row: a story plus its derived chapter count.
type Summary struct {
	Story
	ChapterCount int
}

// Input is the validated command behind the story form.
// An empty ID creates a story; a non-empty ID updates it.
type Input struct {
	ID          string
	Title       string
	Description string
	CoverColor  string
	CoverImage  string
	Genre       string
	Status      string
}

// InputFrom pre-fills the form for an existing story.
func InputFrom(story *Story) Input {
	input := Input{
		ID:          story.ID,
		Title:       story.Title,
		Description: story.Description,
		CoverColor:  story.CoverColor,
		Genre:       story.Genre,
		Status:      story.Status,
	}
	if story.CoverImage != nil {
		input.CoverImage = *story.CoverImage
	}
	return input
}
