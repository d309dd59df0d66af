// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package bookmark

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/librohive/api/internal/platform/database/schema"
	"github.com/librohive/api/internal/platform/dberr"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed bookmark store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// bookmarkColumns is the full column list in scan order.
func bookmarkColumns() string {
	return fmt.Sprintf("%s, %s, %s, %s, %s, %s, %s, %s, %s, %s",
		schema.LibraryBookmark.ID, schema.LibraryBookmark.UserID,
		schema.LibraryBookmark.BookID, schema.LibraryBookmark.ChapterID,
		schema.LibraryBookmark.SelectedText, schema.LibraryBookmark.Position,
		schema.LibraryBookmark.SelectionStart, schema.LibraryBookmark.SelectionEnd,
		schema.LibraryBookmark.Note, schema.LibraryBookmark.CreatedAt,
	)
}

// scanBookmark hydrates one row in bookmarkColumns order.
func scanBookmark(row pgx.Row) (*Bookmark, error) {
	bookmark := &Bookmark{}
	err := row.Scan(
		&bookmark.ID, &bookmark.UserID, &bookmark.BookID, &bookmark.ChapterID,
		&bookmark.SelectedText, &bookmark.Position,
		&bookmark.SelectionStart, &bookmark.SelectionEnd,
		&bookmark.Note, &bookmark.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return bookmark, nil
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

// Create persists a new bookmark row.
func (repository *repository) Create(context context.Context, bookmark *Bookmark) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING %s`,
		schema.LibraryBookmark.Table,
		schema.LibraryBookmark.ID, schema.LibraryBookmark.UserID,
		schema.LibraryBookmark.BookID, schema.LibraryBookmark.ChapterID,
		schema.LibraryBookmark.SelectedText, schema.LibraryBookmark.Position,
		schema.LibraryBookmark.SelectionStart, schema.LibraryBookmark.SelectionEnd,
		schema.LibraryBookmark.Note,
		schema.LibraryBookmark.CreatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		bookmark.ID, bookmark.UserID, bookmark.BookID, bookmark.ChapterID,
		bookmark.SelectedText, bookmark.Position,
		bookmark.SelectionStart, bookmark.SelectionEnd, bookmark.Note,
	).Scan(&bookmark.CreatedAt)
	if err != nil {
		return dberr.Wrap(err, "create bookmark")
	}

	return nil
}

// FindByID returns a single bookmark row.
func (repository *repository) FindByID(context context.Context, id string) (*Bookmark, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		bookmarkColumns(), schema.LibraryBookmark.Table, schema.LibraryBookmark.ID)

	bookmark, err := scanBookmark(repository.pool.QueryRow(context, query, id))
	if err != nil {
		return nil, dberr.Wrap(err, "find bookmark")
	}
	return bookmark, nil
}

// ListByUser returns all of a user's bookmarks, newest first.
func (repository *repository) ListByUser(context context.Context, userID string) ([]*Bookmark, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 ORDER BY %s DESC`,
		bookmarkColumns(), schema.LibraryBookmark.Table,
		schema.LibraryBookmark.UserID, schema.LibraryBookmark.CreatedAt)

	return repository.list(context, query, userID)
}

// ListByChapter returns a user's bookmarks in one chapter by position.
func (repository *repository) ListByChapter(context context.Context, userID, chapterID string) ([]*Bookmark, error) {
	query := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1 AND %s = $2 ORDER BY %s ASC`,
		bookmarkColumns(), schema.LibraryBookmark.Table,
		schema.LibraryBookmark.UserID, schema.LibraryBookmark.ChapterID,
		schema.LibraryBookmark.Position)

	return repository.list(context, query, userID, chapterID)
}

// list executes a bookmark query and hydrates all rows.
func (repository *repository) list(context context.Context, query string, args ...any) ([]*Bookmark, error) {
	rows, err := repository.pool.Query(context, query, args...)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list bookmarks: %w", err)
	}
	defer rows.Close()

	var bookmarks []*Bookmark
	for rows.Next() {
		bookmark, err := scanBookmark(rows)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan bookmark: %w", err)
		}
		bookmarks = append(bookmarks, bookmark)
	}

	return bookmarks, rows.Err()
}

// Delete removes a bookmark row.
func (repository *repository) Delete(context context.Context, id string) error {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.LibraryBookmark.Table, schema.LibraryBookmark.ID)

	tag, err := repository.pool.Exec(context, query, id)
	if err != nil {
		return dberr.Wrap(err, "delete bookmark")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete bookmark")
	}

	return nil
}
