// Copyright (c) 2026 Enredo. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package chapter

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

// # PostgreSQL Repositories

// chapterRepository implements the [ChapterRepository] interface using pgx.
type chapterRepository struct {
	pool *pgxpool.Pool
}

// NewChapterRepository constructs a PostgreSQL backed chapter store.
func NewChapterRepository(pool *pgxpool.Pool) ChapterRepository {
	return &chapterRepository{pool: pool}
}

// choiceRepository implements the [ChoiceRepository] interface using pgx.
type choiceRepository struct {
	pool *pgxpool.Pool
}

// NewChoiceRepository constructs a PostgreSQL backed choice store.
func NewChoiceRepository(pool *pgxpool.Pool) ChoiceRepository {
	return &choiceRepository{pool: pool}
}

// chapterOrder is the canonical ordering: number, then insertion.
var chapterOrder = fmt.Sprintf("%s ASC, %s ASC, %s ASC",
	schema.CoreChapter.Number, schema.CoreChapter.CreatedAt, schema.CoreChapter.ID)

// choiceOrder is the canonical ordering: order number, then insertion.
var choiceOrder = fmt.Sprintf("%s ASC, %s ASC, %s ASC",
	schema.CoreChoice.OrderNumber, schema.CoreChoice.CreatedAt, schema.CoreChoice.ID)

func scanChapter(row pgx.Row) (*Chapter, error) {
	var chapter Chapter
	err := row.Scan(
		&chapter.ID,
		&chapter.StoryID,
		&chapter.Number,
		&chapter.Title,
		&chapter.Content,
		&chapter.IsEnding,
		&chapter.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

func scanChoice(row pgx.Row) (*Choice, error) {
	var choice Choice
	err := row.Scan(
		&choice.ID,
		&choice.ChapterID,
		&choice.Text,
		&choice.NextChapterID,
		&choice.Order,
		&choice.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &choice, nil
}

// # Chapter Repository Implementation

/*
Create inserts a chapter row.
*/
func (repository *chapterRepository) Create(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		schema.CoreChapter.Table,
		strings.Join(schema.CoreChapter.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		chapter.ID, chapter.StoryID, chapter.Number, chapter.Title,
		chapter.Content, chapter.IsEnding, chapter.CreatedAt,
	)
	return dberr.Wrap(err, "Chapter", "insert chapter")
}

/*
FindByID returns a single chapter.
*/
func (repository *chapterRepository) FindByID(context context.Context, id string) (*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.CoreChapter.Columns(), ", "),
		schema.CoreChapter.Table,
		schema.CoreChapter.ID,
	)

	chapter, err := scanChapter(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter", "find chapter")
	}
	return chapter, nil
}

/*
Update overwrites the editable chapter fields.
*/
func (repository *chapterRepository) Update(context context.Context, chapter *Chapter) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = $4, %s = $5 WHERE %s = $1`,
		schema.CoreChapter.Table,
		schema.CoreChapter.Number,
		schema.CoreChapter.Title,
		schema.CoreChapter.Content,
		schema.CoreChapter.IsEnding,
		schema.CoreChapter.ID,
	)

	tag, err := repository.pool.Exec(context, query,
		chapter.ID, chapter.Number, chapter.Title, chapter.Content, chapter.IsEnding,
	)
	if err != nil {
		return dberr.Wrap(err, "Chapter", "update chapter")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Chapter")
	}
	return nil
}

/*
Delete removes a chapter row.
*/
func (repository *chapterRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreChapter.Table, schema.CoreChapter.ID)

	_, err := repository.pool.Exec(context, query, id)
	return dberr.Wrap(err, "Chapter", "delete chapter")
}

/*
ListByStory returns all chapters of a story in reading order.
*/
func (repository *chapterRepository) ListByStory(context context.Context, storyID string) ([]*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		strings.Join(schema.CoreChapter.Columns(), ", "),
		schema.CoreChapter.Table,
		schema.CoreChapter.StoryID,
		chapterOrder,
	)

	rows, err := repository.pool.Query(context, query, storyID)
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter", "list chapters")
	}
	defer rows.Close()

	var chapters []*Chapter
	for rows.Next() {
		chapter, err := scanChapter(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Chapter", "scan chapter")
		}
		chapters = append(chapters, chapter)
	}

	return chapters, dberr.Wrap(rows.Err(), "Chapter", "iterate chapters")
}

/*
MaxNumber returns the highest chapter number, if any.
*/
func (repository *chapterRepository) MaxNumber(context context.Context, storyID string) (int, bool, error) {
	query := fmt.Sprintf(`SELECT MAX(%s) FROM %s WHERE %s = $1`,
		schema.CoreChapter.Number,
		schema.CoreChapter.Table,
		schema.CoreChapter.StoryID,
	)

	var highest *int
	if err := repository.pool.QueryRow(context, query, storyID).Scan(&highest); err != nil {
		return 0, false, dberr.Wrap(err, "Chapter", "max chapter number")
	}

	if highest == nil {
		return 0, false, nil
	}
	return *highest, true, nil
}

/*
First returns the opening chapter of a story.
*/
func (repository *chapterRepository) First(context context.Context, storyID string) (*Chapter, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s LIMIT 1`,
		strings.Join(schema.CoreChapter.Columns(), ", "),
		schema.CoreChapter.Table,
		schema.CoreChapter.StoryID,
		chapterOrder,
	)

	chapter, err := scanChapter(repository.pool.QueryRow(context, query, storyID))
	if err != nil {
		return nil, dberr.Wrap(err, "Chapter", "first chapter")
	}
	return chapter, nil
}

/*
DeleteByStory removes every chapter of a story.
*/
func (repository *chapterRepository) DeleteByStory(context context.Context, storyID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreChapter.Table, schema.CoreChapter.StoryID)

	_, err := repository.pool.Exec(context, query, storyID)
	return dberr.Wrap(err, "Chapter", "delete story chapters")
}

// # Choice Repository Implementation

/*
Create inserts a choice row.
*/
func (repository *choiceRepository) Create(context context.Context, choice *Choice) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6)`,
		schema.CoreChoice.Table,
		strings.Join(schema.CoreChoice.Columns(), ", "),
	)

	_, err := repository.pool.Exec(context, query,
		choice.ID, choice.ChapterID, choice.Text, choice.NextChapterID, choice.Order, choice.CreatedAt,
	)
	return dberr.Wrap(err, "Choice", "insert choice")
}

/*
FindByID returns a single choice.
*/
func (repository *choiceRepository) FindByID(context context.Context, id string) (*Choice, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		strings.Join(schema.CoreChoice.Columns(), ", "),
		schema.CoreChoice.Table,
		schema.CoreChoice.ID,
	)

	choice, err := scanChoice(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "Choice", "find choice")
	}
	return choice, nil
}

/*
Delete removes a choice row.
*/
func (repository *choiceRepository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreChoice.Table, schema.CoreChoice.ID)

	_, err := repository.pool.Exec(context, query, id)
	return dberr.Wrap(err, "Choice", "delete choice")
}

/*
ListByChapter returns the choices of one chapter in display order.
*/
func (repository *choiceRepository) ListByChapter(context context.Context, chapterID string) ([]*Choice, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s`,
		strings.Join(schema.CoreChoice.Columns(), ", "),
		schema.CoreChoice.Table,
		schema.CoreChoice.ChapterID,
		choiceOrder,
	)

	return repository.query(context, query, chapterID)
}

/*
ListByChapters returns the choices of many chapters in display order.
*/
func (repository *choiceRepository) ListByChapters(context context.Context, chapterIDs []string) ([]*Choice, error) {
	if len(chapterIDs) == 0 {
		return nil, nil
	}

	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = ANY($1) ORDER BY %s, %s`,
		strings.Join(schema.CoreChoice.Columns(), ", "),
		schema.CoreChoice.Table,
		schema.CoreChoice.ChapterID,
		schema.CoreChoice.ChapterID,
		choiceOrder,
	)

	return repository.query(context, query, chapterIDs)
}

func (repository *choiceRepository) query(context context.Context, query string, args ...any) ([]*Choice, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, dberr.Wrap(err, "Choice", "list choices")
	}
	defer rows.Close()

	var choices []*Choice
	for rows.Next() {
		choice, err := scanChoice(rows)
		if err != nil {
			return nil, dberr.Wrap(err, "Choice", "scan choice")
		}
		choices = append(choices, choice)
	}

	return choices, dberr.Wrap(rows.Err(), "Choice", "iterate choices")
}

/*
DeleteByChapter removes the choices presented on a chapter.
*/
func (repository *choiceRepository) DeleteByChapter(context context.Context, chapterID string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`, schema.CoreChoice.Table, schema.CoreChoice.ChapterID)

	_, err := repository.pool.Exec(context, query, chapterID)
	return dberr.Wrap(err, "Choice", "delete chapter choices")
}

/*
DeleteByChapters removes the choices presented on any of the chapters.
*/
func (repository *choiceRepository) DeleteByChapters(context context.Context, chapterIDs []string) error {
	if len(chapterIDs) == 0 {
		return nil
	}

	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = ANY($1)`, schema.CoreChoice.Table, schema.CoreChoice.ChapterID)

	_, err := repository.pool.Exec(context, query, chapterIDs)
	return dberr.Wrap(err, "Choice", "delete story choices")
}

/*
ClearNextChapter nulls every reference to chapterID.
*/
func (repository *choiceRepository) ClearNextChapter(context context.Context, chapterID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = NULL WHERE %s = $1`,
		schema.CoreChoice.Table,
		schema.CoreChoice.NextChapterID,
		schema.CoreChoice.NextChapterID,
	)

	_, err := repository.pool.Exec(context, query, chapterID)
	return dberr.Wrap(err, "Choice", "clear next chapter")
}

/*
SetNextChapter links a choice to a destination chapter.
*/
func (repository *choiceRepository) SetNextChapter(context context.Context, choiceID, chapterID string) error {
	query := fmt.Sprintf(`UPDATE %s SET %s = $2 WHERE %s = $1`,
		schema.CoreChoice.Table,
		schema.CoreChoice.NextChapterID,
		schema.CoreChoice.ID,
	)

	tag, err := repository.pool.Exec(context, query, choiceID, chapterID)
	if err != nil {
		return dberr.Wrap(err, "Choice", "link choice")
	}
	if tag.RowsAffected() == 0 {
		return apperr.NotFound("Choice")
	}
	return nil
}
