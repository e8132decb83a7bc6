// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading

import "context"

// # Progress Data Access

// ProgressRepository defines the data access contract for reading progress.
type ProgressRepository interface {

	/*
		Find returns the progress of a session in a story.

		Returns:
		  - error: apperr.NotFound when the session has not started the story
	*/
	Find(context context.Context, sessionID, storyID string) (*Progress, error)

	/*
		Upsert creates or replaces the progress for (SessionID, StoryID).
	*/
	Upsert(context context.Context, progress *Progress) error

	/*
		Delete removes the progress of a session in a story. Missing rows are not an error.
	*/
	Delete(context context.Context, sessionID, storyID string) error

	/*
		DeleteByStory removes the progress of every session in a story.
	*/
	DeleteByStory(context context.Context, storyID string) error
}
