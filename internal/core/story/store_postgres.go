// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package story

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/taibuivan/enredo/internal/platform/apperr"
	"github.com/taibuivan/enredo/internal/platform/database/schema"
	"github.com/taibuivan/enredo/internal/platform/dberr"
)

// # PostgreSQL Repository

// postgresRepository implements [StoryRepository] using pgx.
type postgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository constructs a PostgreSQL backed story store.
func NewPostgresRepository(pool *pgxpool.Pool) StoryRepository {
	return &postgresRepository{pool: pool}
}

// storyColumns lists the selected columns in scan order, prefixed with alias.
func storyColumns(alias string) string {
	columns := schema.CoreStory.Columns()
	for i, column := range columns {
		columns[i] = alias + "." + column
	}
	return strings.Join(columns, ", ")
}

func scanStory(row pgx.Row, extra ...any) (*Story, error) {
	var story Story
	targets := []any{
		&story.ID,
		&story.Title,
		&story.Description,
		&story.CoverColor,
		&story.CoverImage,
		&story.Genre,
		&story.Status,
		&story.CreatedAt,
		&story.UpdatedAt,
	}

	if err := row.Scan(append(targets, extra...)...); err != nil {
		return nil, err
	}
	return &story, nil
}

/*
Create inserts a story row.
*/
func (repository *postgresRepository) Create(context context.Context, story *Story) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`,
		schema.CoreStory.Table,
		strings.Join(schema.CoreStory.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		story.ID, story.Title, story.Description, story.CoverColor, story.CoverImage,
		story.Genre, story.Status, story.CreatedAt, story.UpdatedAt,
	)
	return dberr.Wrap(err, "Story", "insert story")
}

/*
FindByID returns a single story.
*/
func (repository *postgresRepository) FindByID(context context.Context, id string) (*Story, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s s WHERE s.%s = $1`,
		storyColumns("s"),
		schema.CoreStory.Table,
		schema.CoreStory.ID,
	)

	story, err := scanStory(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Story", "find story")
	}
	return story, nil
}

/*
Update overwrites editable fields.
*/
func (repository *postgresRepository) Update(context context.Context, story *Story) error {
	query := fmt.Sprintf(`
		UPDATE %s
		SET %s = $2, %s = $3, %s = $4, %s = $5, %s = $6, %s = $7, %s = $8
		WHERE %s = $1
	`,
		schema.CoreStory.Table,
		schema.CoreStory.Title,
		schema.CoreStory.Description,
		schema.CoreStory.CoverColor,
		schema.CoreStory.CoverImage,
		schema.CoreStory.Genre,
		schema.CoreStory.Status,
		schema.CoreStory.UpdatedAt,
		schema.CoreStory.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		story.ID, story.Title, story.Description, story.CoverColor, story.CoverImage,
		story.Genre, story.Status, story.UpdatedAt,
	)
	if err != nil {
		return dberr.Wrap(err, "Story", "update story")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Story")
	}
	return nil
}

/*
Delete removes the story row.
*/
func (repository *postgresRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreStory.Table, schema.CoreStory.ID)

	_, err := repository.pool.Exec(context, query, id)
	return dberr.Wrap(err, "Story", "delete story")
}

/*
ListWithChapterCounts aggregates chapter counts with a grouped left join.
*/
func (repository *postgresRepository) ListWithChapterCounts(context context.Context) ([]*Summary, error) {
	query := fmt.Sprintf(`
		SELECT %s, COUNT(c.%s)
		FROM %s s
		LEFT JOIN %s c ON c.%s = s.%s
		GROUP BY s.%s
		ORDER BY s.%s DESC, s.%s DESC
	`,
		storyColumns("s"),
		schema.CoreChapter.ID,
		schema.CoreStory.Table,
		schema.CoreChapter.Table,
		schema.CoreChapter.StoryID,
		schema.CoreStory.ID,
		schema.CoreStory.ID,
		schema.CoreStory.CreatedAt,
		schema.CoreStory.ID,
	)

	rows, err := repository.pool.Query(context, query)
	if err != nil {
		return nil, dberr.Wrap(err, "Story", "list stories")
	}
	defer rows.Close()

	var summaries []*Summary
	for rows.Next() {
		var count int
		story, err := scanStory(rows, &count)
		if err != nil {
			return nil, dberr.Wrap(err, "Story", "scan story")
		}
		summaries = append(summaries, &Summary{Story: *story, ChapterCount: count})
	}

	if err := rows.Err(); err != nil {
		return nil, dberr.Wrap(err, "Story", "iterate stories")
	}

	return summaries, nil
}
