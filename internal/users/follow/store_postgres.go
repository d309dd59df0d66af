// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package follow

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

// NewRepository constructs a PostgreSQL backed follow store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

// UserExists reports whether an active account row is present.
func (repository *repository) UserExists(context context.Context, userID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s IS NULL)`,
		schema.UserAccount.Table, schema.UserAccount.ID, schema.UserAccount.DeletedAt)

	var exists bool
	if err := repository.pool.QueryRow(context, query, userID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check user")
	}
	return exists, nil
}

// Insert conditionally creates a follow edge.
func (repository *repository) Insert(context context.Context, followerID, followingID string) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s, %s) DO NOTHING`,
		schema.UserFollow.Table,
		schema.UserFollow.FollowerID, schema.UserFollow.FollowingID,
		schema.UserFollow.FollowerID, schema.UserFollow.FollowingID,
	)

	tag, err := repository.pool.Exec(context, query, followerID, followingID)
	if err != nil {
		return false, dberr.Wrap(err, "follow user")
	}
	return tag.RowsAffected() > 0, nil
}

// Delete removes a follow edge if present.
func (repository *repository) Delete(context context.Context, followerID, followingID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.UserFollow.Table,
		schema.UserFollow.FollowerID, schema.UserFollow.FollowingID,
	)

	tag, err := repository.pool.Exec(context, query, followerID, followingID)
	if err != nil {
		return false, dberr.Wrap(err, "unfollow user")
	}
	return tag.RowsAffected() > 0, nil
}

// Exists reports whether the edge (follower -> following) is present.
func (repository *repository) Exists(context context.Context, followerID, followingID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1 AND %s = $2)`,
		schema.UserFollow.Table,
		schema.UserFollow.FollowerID, schema.UserFollow.FollowingID,
	)

	var exists bool
	if err := repository.pool.QueryRow(context, query, followerID, followingID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check follow")
	}
	return exists, nil
}

// CountFollowers returns how many users follow the target.
func (repository *repository) CountFollowers(context context.Context, userID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.UserFollow.Table, schema.UserFollow.FollowingID)

	var count int
	if err := repository.pool.QueryRow(context, query, userID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count followers")
	}
	return count, nil
}

// CountFollowing returns how many users the target follows.
func (repository *repository) CountFollowing(context context.Context, userID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.UserFollow.Table, schema.UserFollow.FollowerID)

	var count int
	if err := repository.pool.QueryRow(context, query, userID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count following")
	}
	return count, nil
}

/*
ListFeatured returns authors ranked by follower count.

Description: Aggregates the follow edges and published book counts per
account in one pass. Accounts without a published book never surface.
*/
func (repository *repository) ListFeatured(context context.Context, limit int) ([]*FeaturedAuthor, error) {
	query := fmt.Sprintf(`
		SELECT
			a.%s, COALESCE(a.%s, ''), a.%s, a.%s,
			(SELECT COUNT(*) FROM %s f WHERE f.%s = a.%s) AS follower_count,
			COUNT(b.%s) AS book_count
		FROM %s a
		JOIN %s b ON b.%s = a.%s AND b.%s = TRUE
		WHERE a.%s IS NULL
		GROUP BY a.%s, a.%s, a.%s, a.%s, a.%s
		ORDER BY follower_count DESC, a.%s DESC
		LIMIT $1`,
		schema.UserAccount.ID, schema.UserAccount.DisplayName, schema.UserAccount.AvatarURL, schema.UserAccount.Bio,
		schema.UserFollow.Table, schema.UserFollow.FollowingID, schema.UserAccount.ID,
		schema.CoreBook.ID,
		schema.UserAccount.Table,
		schema.CoreBook.Table, schema.CoreBook.AuthorID, schema.UserAccount.ID, schema.CoreBook.IsPublished,
		schema.UserAccount.DeletedAt,
		schema.UserAccount.ID, schema.UserAccount.DisplayName, schema.UserAccount.AvatarURL, schema.UserAccount.Bio, schema.UserAccount.CreatedAt,
		schema.UserAccount.CreatedAt,
	)

	rows, err := repository.pool.Query(context, query, limit)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to list featured authors: %w", err)
	}
	defer rows.Close()

	var authors []*FeaturedAuthor
	for rows.Next() {
		author := &FeaturedAuthor{}
		err := rows.Scan(
			&author.ID, &author.Name, &author.AvatarURL, &author.Bio,
			&author.FollowerCount, &author.BookCount,
		)
		if err != nil {
			return nil, fmt.Errorf("postgres: failed to scan featured author: %w", err)
		}
		if author.Name == "" {
			author.Name = "Unknown Author"
		}
		authors = append(authors, author)
	}

	return authors, rows.Err()
}
