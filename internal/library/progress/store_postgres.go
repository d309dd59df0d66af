// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package progress

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/librohive/api/internal/platform/database/schema"
	"github.com/librohive/api/internal/platform/dberr"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed progress store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// FindChapterBook resolves the owning book of a chapter.
func (repository *repository) FindChapterBook(context context.Context, chapterID string) (string, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.CoreChapter.BookID, schema.CoreChapter.Table, schema.CoreChapter.ID)

	var bookID string
	if err := repository.pool.QueryRow(context, query, chapterID).Scan(&bookID); err != nil {
		return "", dberr.Wrap(err, "find chapter")
	}
	return bookID, nil
}

/*
Upsert writes a chapter progress value, monotonically.

Description: GREATEST on the conflict arm makes the write idempotent for
equal values and a no-op for lower ones, so replays and races between
tabs can only move progress forward.
*/
func (repository *repository) Upsert(context context.Context, row *Progress) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s) DO UPDATE SET
			%s = GREATEST(%s.%s, EXCLUDED.%s),
			%s = NOW()`,
		schema.LibraryReadingProgress.Table,
		schema.LibraryReadingProgress.UserID, schema.LibraryReadingProgress.BookID,
		schema.LibraryReadingProgress.ChapterID, schema.LibraryReadingProgress.Progress,
		schema.LibraryReadingProgress.UserID, schema.LibraryReadingProgress.ChapterID,
		schema.LibraryReadingProgress.Progress,
		schema.LibraryReadingProgress.Table, schema.LibraryReadingProgress.Progress,
		schema.LibraryReadingProgress.Progress,
		schema.LibraryReadingProgress.UpdatedAt,
	)

	if _, err := repository.pool.Exec(context, query, row.UserID, row.BookID, row.ChapterID, row.Progress); err != nil {
		return dberr.Wrap(err, "record progress")
	}

	return nil
}

// CountCompleted returns the user's fully-read chapter count for a book.
func (repository *repository) CountCompleted(context context.Context, userID, bookID string) (int, error) {
	query := fmt.Sprintf(`
		SELECT COUNT(*) FROM %s
		WHERE %s = $1 AND %s = $2 AND %s >= 100`,
		schema.LibraryReadingProgress.Table,
		schema.LibraryReadingProgress.UserID, schema.LibraryReadingProgress.BookID,
		schema.LibraryReadingProgress.Progress,
	)

	var count int
	if err := repository.pool.QueryRow(context, query, userID, bookID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count completed chapters")
	}
	return count, nil
}

// CountChapters returns a book's total chapter count.
func (repository *repository) CountChapters(context context.Context, bookID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.CoreChapter.Table, schema.CoreChapter.BookID)

	var count int
	if err := repository.pool.QueryRow(context, query, bookID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count chapters")
	}
	return count, nil
}
