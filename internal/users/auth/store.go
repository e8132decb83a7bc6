// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import "context"

// # User Data Access

// UserRepository defines the data access contract for user accounts.
type UserRepository interface {

	/*
		FindByUsername returns the account with the given username.

		Returns:
		  - *User: Hydrated entity
		  - error: apperr.NotFound if missing
	*/
	FindByUsername(context context.Context, username string) (*User, error)

	/*
		Create persists a new account.

		Returns:
		  - error: Persistence failures, including a taken username
	*/
	Create(context context.Context, user *User) error
}
