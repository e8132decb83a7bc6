// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import "context"

// # Story Data Access

// StoryRepository defines the data access contract for stories.
type StoryRepository interface {

	/*
		Create persists a new story.

		Parameters:
		  - context: context.Context
		  - story: *Story (ID and timestamps already assigned)

		Returns:
		  - error: Storage failure
	*/
	Create(context context.Context, story *Story) error

	/*
		FindByID returns the story with the given ID.

		Returns:
		  - *Story: Hydrated story
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Story, error)

	/*
		Update overwrites the editable fields and UpdatedAt of an existing story.

		Returns:
		  - error: apperr.NotFound if missing
	*/
	Update(context context.Context, story *Story) error

	/*
		Delete removes the story record only; the caller purges its graph first.

		Returns:
		  - error: Removal failure (missing rows are not an error)
	*/
	Delete(context context.Context, id string) error

	/*
		ListWithChapterCounts joins chapters per story and counts them.

		Returns:
		  - []*Summary: Newest first (CreatedAt desc, then ID desc)
		  - error: Retrieval failure
	*/
	ListWithChapterCounts(context context.Context) ([]*Summary, error)
}
