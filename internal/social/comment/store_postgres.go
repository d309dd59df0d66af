// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package comment

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

// NewRepository constructs a PostgreSQL backed comment store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// listQuery builds the flat-list query keyed by one scoping column.
// $1 is the viewer, $2 the scope value.
func listQuery(scopeColumn string) string {
	return fmt.Sprintf(`
		SELECT
			c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s, c.%s,
			a.%s, COALESCE(a.%s, ''), a.%s,
			(SELECT COUNT(*) FROM %s cl WHERE cl.%s = c.%s),
			EXISTS(SELECT 1 FROM %s WHERE %s = c.%s AND %s = $1)
		FROM %s c
		JOIN %s a ON a.%s = c.%s
		WHERE c.%s = $2
		ORDER BY c.%s ASC`,
		schema.SocialComment.ID, schema.SocialComment.UserID, schema.SocialComment.BookID,
		schema.SocialComment.ChapterID, schema.SocialComment.ParentID, schema.SocialComment.Body,
		schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
		schema.UserAccount.ID, schema.UserAccount.DisplayName, schema.UserAccount.AvatarURL,
		schema.SocialCommentLike.Table, schema.SocialCommentLike.CommentID, schema.SocialComment.ID,
		schema.SocialCommentLike.Table, schema.SocialCommentLike.CommentID, schema.SocialComment.ID,
		schema.SocialCommentLike.UserID,
		schema.SocialComment.Table,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.SocialComment.UserID,
		scopeColumn,
		schema.SocialComment.CreatedAt,
	)
}

// nullableViewer converts an optional viewer identity into its SQL
// parameter. Anonymous readers pass a typed NULL, since an empty string
// is not valid input for the uuid column the viewer is compared against.
func nullableViewer(viewerID string) any {
	if viewerID == "" {
		return nil
	}
	return viewerID
}

// scanFlatRows hydrates a flat comment list from an executed query.
func scanFlatRows(rows pgx.Rows) ([]*Comment, error) {
	defer rows.Close()

	var comments []*Comment
	for rows.Next() {
		comment := &Comment{}
		err := rows.Scan(
			&comment.ID, &comment.UserID, &comment.BookID,
			&comment.ChapterID, &comment.ParentID, &comment.Body,
			&comment.CreatedAt, &comment.UpdatedAt,
			&comment.Author.ID, &comment.Author.Name, &comment.Author.AvatarURL,
			&comment.LikeCount, &comment.IsLiked,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan comment: %w", err)
		}
		if comment.Author.Name == "" {
			comment.Author.Name = "Unknown Author"
		}
		comments = append(comments, comment)
	}

	return comments, rows.Err()
}

/*
ListForBook returns every comment on a book as a flat chronological list.

Parameters:
  - context: context.Context
  - bookID: string (UUID)
  - viewerID: string

Returns:
  - []*Comment: Flat rows with author, like count, and viewer flag
  - error: Database execution errors
*/
func (repository *repository) ListForBook(context context.Context, bookID, viewerID string) ([]*Comment, error) {
	rows, err := repository.pool.Query(context, listQuery(schema.SocialComment.BookID), nullableViewer(viewerID), bookID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list comments: %w", err)
	}
	return scanFlatRows(rows)
}

/*
ListForChapter returns a chapter's comments as a flat chronological list.
*/
func (repository *repository) ListForChapter(context context.Context, chapterID, viewerID string) ([]*Comment, error) {
	rows, err := repository.pool.Query(context, listQuery(schema.SocialComment.ChapterID), nullableViewer(viewerID), chapterID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list chapter comments: %w", err)
	}
	return scanFlatRows(rows)
}

/*
FindByID returns a single comment row without relations.

Parameters:
  - context: context.Context
  - id: string (UUID)

Returns:
  - *Comment: The bare row
  - error: ErrNotFound if missing
*/
func (repository *repository) FindByID(context context.Context, id string) (*Comment, error) {
	query := fmt.Sprintf(`
		SELECT %s, %s, %s, %s, %s, %s, %s, %s
		FROM %s WHERE %s = $1`,
		schema.SocialComment.ID, schema.SocialComment.UserID, schema.SocialComment.BookID,
		schema.SocialComment.ChapterID, schema.SocialComment.ParentID, schema.SocialComment.Body,
		schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
		schema.SocialComment.Table, schema.SocialComment.ID,
	)

	comment := &Comment{}
	err := repository.pool.QueryRow(context, query, id).Scan(
		&comment.ID, &comment.UserID, &comment.BookID,
		&comment.ChapterID, &comment.ParentID, &comment.Body,
		&comment.CreatedAt, &comment.UpdatedAt,
	)
	if err != nil {
		return nil, dberr.Wrap(err, "find comment")
	}

	return comment, nil
}

/*
FindChapterBook resolves the owning book of a chapter.
*/
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
Create persists a new comment row.

Parameters:
  - context: context.Context
  - comment: *Comment

Returns:
  - error: Storage or constraint failures
*/
func (repository *repository) Create(context context.Context, comment *Comment) error {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s, %s, %s)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING %s, %s`,
		schema.SocialComment.Table,
		schema.SocialComment.ID, schema.SocialComment.UserID, schema.SocialComment.BookID,
		schema.SocialComment.ChapterID, schema.SocialComment.ParentID, schema.SocialComment.Body,
		schema.SocialComment.CreatedAt, schema.SocialComment.UpdatedAt,
	)

	err := repository.pool.QueryRow(context, query,
		comment.ID, comment.UserID, comment.BookID,
		comment.ChapterID, comment.ParentID, comment.Body,
	).Scan(&comment.CreatedAt, &comment.UpdatedAt)
	if err != nil {
		return dberr.Wrap(err, "create comment")
	}

	return nil
}

/*
Delete removes a comment, its direct replies, and their likes.

Description: One transaction, leaves first: likes referencing the comment
or any direct reply, then the direct replies, then the comment row.
*/
func (repository *repository) Delete(context context.Context, id string) error {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(context)

	deleteLikes := fmt.Sprintf(`
		DELETE FROM %s cl USING %s c
		WHERE cl.%s = c.%s AND (c.%s = $1 OR c.%s = $1)`,
		schema.SocialCommentLike.Table, schema.SocialComment.Table,
		schema.SocialCommentLike.CommentID, schema.SocialComment.ID,
		schema.SocialComment.ID, schema.SocialComment.ParentID,
	)
	if _, err := tx.Exec(context, deleteLikes, id); err != nil {
		return dberr.Wrap(err, "delete comment likes")
	}

	deleteReplies := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialComment.Table, schema.SocialComment.ParentID)
	if _, err := tx.Exec(context, deleteReplies, id); err != nil {
		return dberr.Wrap(err, "delete replies")
	}

	deleteComment := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1`,
		schema.SocialComment.Table, schema.SocialComment.ID)
	tag, err := tx.Exec(context, deleteComment, id)
	if err != nil {
		return dberr.Wrap(err, "delete comment")
	}
	if tag.RowsAffected() == 0 {
		return dberr.Wrap(pgx.ErrNoRows, "delete comment")
	}

	return tx.Commit(context)
}

// # Like Toggle Primitives

// InsertLike conditionally creates a comment-like row.
func (repository *repository) InsertLike(context context.Context, userID, commentID string) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s, %s) DO NOTHING`,
		schema.SocialCommentLike.Table,
		schema.SocialCommentLike.UserID, schema.SocialCommentLike.CommentID,
		schema.SocialCommentLike.UserID, schema.SocialCommentLike.CommentID,
	)

	tag, err := repository.pool.Exec(context, query, userID, commentID)
	if err != nil {
		return false, dberr.Wrap(err, "like comment")
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteLike removes a comment-like row if present.
func (repository *repository) DeleteLike(context context.Context, userID, commentID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialCommentLike.Table,
		schema.SocialCommentLike.UserID, schema.SocialCommentLike.CommentID,
	)

	tag, err := repository.pool.Exec(context, query, userID, commentID)
	if err != nil {
		return false, dberr.Wrap(err, "unlike comment")
	}
	return tag.RowsAffected() > 0, nil
}

// CountLikes returns the current like total for a comment.
func (repository *repository) CountLikes(context context.Context, commentID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.SocialCommentLike.Table, schema.SocialCommentLike.CommentID)

	var count int
	if err := repository.pool.QueryRow(context, query, commentID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count comment likes")
	}
	return count, nil
}
