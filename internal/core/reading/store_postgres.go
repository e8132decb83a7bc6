// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package reading

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/enredo/internal/platform/database/schema"
	"github.com/taibuivan/enredo/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements the [ProgressRepository] interface using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed progress store.
func NewPostgresRepository(pool *pgxpool.Pool) ProgressRepository {
	return &postgresRepository{pool: pool}
}

/*
Find returns the progress row for (sessionID, storyID).
*/
func (repository *postgresRepository) Find(context context.Context, sessionID, storyID string) (*Progress, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2`,
		strings.Join(schema.LibraryReadingProgress.Columns(), ", "),
		schema.LibraryReadingProgress.Table,
		schema.LibraryReadingProgress.SessionID,
		schema.LibraryReadingProgress.StoryID,
	)

	var progress Progress
	err := repository.pool.QueryRow(context, query, sessionID, storyID).Scan(
		&progress.SessionID,
		&progress.StoryID,
		&progress.CurrentChapterID,
		&progress.LastReadAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "Progress", "find progress")
	}
	return &progress, nil
}

/*
Upsert writes the bookmark, relying on the (sessionid, storyid) primary key.
*/
func (repository *postgresRepository) Upsert(context context.Context, progress *Progress) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s) VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = EXCLUDED.%s`,
		schema.LibraryReadingProgress.Table,
		strings.Join(schema.LibraryReadingProgress.Columns(), ", "),
		schema.LibraryReadingProgress.SessionID,
		schema.LibraryReadingProgress.StoryID,
		schema.LibraryReadingProgress.CurrentChapterID,
		schema.LibraryReadingProgress.CurrentChapterID,
		schema.LibraryReadingProgress.LastReadAt,
		schema.LibraryReadingProgress.LastReadAt,
	)

	_, err := repository.pool.Exec(context, query,
		progress.SessionID, progress.StoryID, progress.CurrentChapterID, progress.LastReadAt,
	)
	return dberr.Wrap(err, "Progress", "upsert progress")
}

/*
Delete removes one bookmark.
*/
func (repository *postgresRepository) Delete(context context.Context, sessionID, storyID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.LibraryReadingProgress.Table,
		schema.LibraryReadingProgress.SessionID,
		schema.LibraryReadingProgress.StoryID,
	)

	_, err := repository.pool.Exec(context, query, sessionID, storyID)
	return dberr.Wrap(err, "Progress", "delete progress")
}

/*
DeleteByStory removes every bookmark of a story.
*/
func (repository *postgresRepository) DeleteByStory(context context.Context, storyID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.LibraryReadingProgress.Table,
		schema.LibraryReadingProgress.StoryID,
	)

	_, err := repository.pool.Exec(context, query, storyID)
	return dberr.Wrap(err, "Progress", "delete story progress")
}
