// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package uuid provides the opaque identifiers used by every persisted entity.

Stories, chapters, choices, reading progress records and users are all keyed
by a Version 7 UUID rendered as a string.

Properties:

  - Sortable: Naturally ordered by creation time, so sorting by ID doubles as
    "insertion order" when two records share the same display key.
  - Portable: The same string form is stored in PostgreSQL and MongoDB.
*/
package uuid

import "github.com/google/uuid"

// # Generators

// New generates a new UUIDv7 string.
func New() string {

	// Create a new version 7 UUID (time-sortable, monotonic within the process)
	id, err := uuid.NewV7()

	// entropy failure is an unrecoverable system-level error
	if err != nil {
		panic("uuid: failed to generate UUIDv7: " + err.Error())
	}

	return id.String()
}

// # Parsing

// Valid reports whether s is a well-formed UUID string.
// Route parameters are checked with it before reaching a store.
func Valid(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil && len(s) == 36
}
