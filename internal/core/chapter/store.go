// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

import "context"

// # Chapter Data Access

// ChapterRepository defines the data access contract for chapters.
type ChapterRepository interface {

	/*
		Create persists a new chapter.

		Parameters:
		  - context: context.Context
		  - chapter: *Chapter (ID and CreatedAt already assigned)

		Returns:
		  - error: Storage failure
	*/
	Create(context context.Context, chapter *Chapter) error

	/*
		FindByID returns the chapter with the given ID.

		Returns:
		  - *Chapter: Hydrated chapter
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Chapter, error)

	/*
		Update overwrites number, title, content and the ending flag.

		Returns:
		  - error: apperr.NotFound if missing
	*/
	Update(context context.Context, chapter *Chapter) error

	/*
		Delete removes a single chapter row. Missing rows are not an error.
	*/
	Delete(context context.Context, id string) error

	/*
		ListByStory returns the chapters of a story.

		Returns:
		  - []*Chapter: Ascending by Number; equal numbers in insertion order
		  - error: Retrieval failure
	*/
	ListByStory(context context.Context, storyID string) ([]*Chapter, error)

	/*
		MaxNumber returns the highest chapter number of a story.

		Returns:
		  - int: Highest number
		  - bool: false when the story has no chapters
		  - error: Retrieval failure
	*/
	MaxNumber(context context.Context, storyID string) (int, bool, error)

	/*
		First returns the chapter with the smallest number (insertion order on ties).

		Returns:
		  - error: apperr.NotFound when the story has no chapters
	*/
	First(context context.Context, storyID string) (*Chapter, error)

	/*
		DeleteByStory removes every chapter of a story.
	*/
	DeleteByStory(context context.Context, storyID string) error
}

// # Choice Data Access

// ChoiceRepository defines the data access contract for choices.
type ChoiceRepository interface {

	/*
		Create persists a new choice.
	*/
	Create(context context.Context, choice *Choice) error

	/*
		FindByID returns the choice with the given ID.

		Returns:
		  - error: apperr.NotFound if missing
	*/
	FindByID(context context.Context, id string) (*Choice, error)

	/*
		Delete removes a single choice. Missing rows are not an error.
	*/
	Delete(context context.Context, id string) error

	/*
		ListByChapter returns the choices presented on a chapter.

		Returns:
		  - []*Choice: Ascending by Order; equal orders in insertion order
	*/
	ListByChapter(context context.Context, chapterID string) ([]*Choice, error)

	/*
		ListByChapters returns the choices of several chapters in one round-trip,
		each chapter's choices in the same order as [ChoiceRepository.ListByChapter].
	*/
	ListByChapters(context context.Context, chapterIDs []string) ([]*Choice, error)

	/*
		DeleteByChapter removes every choice presented on a chapter.
	*/
	DeleteByChapter(context context.Context, chapterID string) error

	/*
		DeleteByChapters removes every choice presented on any of the chapters.
	*/
	DeleteByChapters(context context.Context, chapterIDs []string) error

	/*
		ClearNextChapter turns every choice leading to chapterID into a dangling choice.
	*/
	ClearNextChapter(context context.Context, chapterID string) error

	/*
		SetNextChapter points a choice at chapterID.

		Returns:
		  - error: apperr.NotFound if the choice is missing
	*/
	SetNextChapter(context context.Context, choiceID, chapterID string) error
}
