// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package authoring implements guided chapter writing: one submission saves a
chapter together with all of its outgoing choices.

Each choice may carry the text of its destination inline, in which case the
destination chapter is created on the spot. A chapter written in answer to a
dangling choice (the "originating" choice) is linked back to it.

None of this is transactional. A failure part-way leaves whatever was already
written; the worst outcome is a choice without a destination.
*/
package authoring

import "github.com/taibuivan/enredo/internal/core/chapter"

// ChoiceDraft is one row of the choices editor.
type ChoiceDraft struct {
	// Key is the row position; it doubles as the order when Order is nil.
	Key int

	Text string

	// NextContent, when not blank, becomes a new chapter the choice leads to.
	NextContent string

	// NextChapterID keeps an existing destination when NextContent is blank.
	NextChapterID string

	Order *int
}

// Submission is a full save of the chapter form.
type Submission struct {
	Chapter             chapter.ChapterInput
	Choices             []ChoiceDraft
	OriginatingChoiceID string
}
