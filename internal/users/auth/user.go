// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth guards the authoring area.

There is a single role: any stored user who signs in may author. Users are
created by seeding (startup or the operator CLI), never through the web.
*/
package auth

import "time"

// # Domain Entities

// User is an administrator account.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	CreatedAt    time.Time
}

// # Field Identifiers

const (
	FieldUsername = "username"
	FieldPassword = "password"
)

// MinPasswordLength applies to accounts created from now on; existing hashes are not rechecked.
const MinPasswordLength = 6

// # Messages

const (
	MessageMissingCredentials = "Please fill in username and password"
	MessageInvalidCredentials = "Invalid username or password"
)
