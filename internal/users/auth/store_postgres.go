// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/enredo/internal/platform/database/schema"
	"github.com/taibuivan/enredo/internal/platform/dberr"
)

// # PostgreSQL Repository

// PostgresUserRepository implements the UserRepository interface using pgx.
type PostgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewUserRepository creates a new PostgreSQL implementation of the UserRepository.
func NewUserRepository(pool *pgxpool.Pool) *PostgresUserRepository {
	return &PostgresUserRepository{pool: pool}
}

/*
Create persists a new user record into the users.account table.
*/
func (repository *PostgresUserRepository) Create(context context.Context, user *User) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4)`,
		schema.UsersAccount.Table,
		strings.Join(schema.UsersAccount.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query, user.ID, user.Username, user.PasswordHash, user.CreatedAt)
	return dberr.Wrap(err, "User", "insert user")
}

/*
FindByUsername retrieves a user record by its unique username.

Returns:
  - error: apperr.NotFound or database errors
*/
func (repository *PostgresUserRepository) FindByUsername(context context.Context, username string) (*User, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.UsersAccount.Columns(), ", "),
		schema.UsersAccount.Table,
		schema.UsersAccount.Username,
	)

	user := &User{}
	err := repository.pool.QueryRow(context, query, username).Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.CreatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "User", "find user")
	}
	return user, nil
}
