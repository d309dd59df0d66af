// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package engagement

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/librohive/api/internal/platform/database/schema"
	"github.com/librohive/api/internal/platform/dberr"
	"github.com/librohive/api/pkg/uuid"
)

// # PostgreSQL Repository

// repository implements the [Repository] interface using pgx.
type repository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL backed engagement store.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{pool: pool}
}

/*
BookExists reports whether the target book row is present.

Parameters:
  - context: context.Context
  - bookID: string (UUID)

Returns:
  - bool: Row presence
  - error: Database retrieval failures
*/
func (repository *repository) BookExists(context context.Context, bookID string) (bool, error) {
	query := fmt.Sprintf(`SELECT EXISTS(SELECT 1 FROM %s WHERE %s = $1)`,
		schema.CoreBook.Table, schema.CoreBook.ID)

	var exists bool
	if err := repository.pool.QueryRow(context, query, bookID).Scan(&exists); err != nil {
		return false, dberr.Wrap(err, "check book")
	}
	return exists, nil
}

// # Like Toggle Primitives

/*
InsertLike conditionally creates a like row.

Description: ON CONFLICT DO NOTHING turns the uniqueness constraint into
the arbiter for racing requests: exactly one writer inserts, the rest
observe zero affected rows.
*/
func (repository *repository) InsertLike(context context.Context, userID, bookID string) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s, %s) DO NOTHING`,
		schema.SocialBookLike.Table,
		schema.SocialBookLike.UserID, schema.SocialBookLike.BookID,
		schema.SocialBookLike.UserID, schema.SocialBookLike.BookID,
	)

	tag, err := repository.pool.Exec(context, query, userID, bookID)
	if err != nil {
		return false, dberr.Wrap(err, "like book")
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteLike removes a like row if present.
func (repository *repository) DeleteLike(context context.Context, userID, bookID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialBookLike.Table,
		schema.SocialBookLike.UserID, schema.SocialBookLike.BookID,
	)

	tag, err := repository.pool.Exec(context, query, userID, bookID)
	if err != nil {
		return false, dberr.Wrap(err, "unlike book")
	}
	return tag.RowsAffected() > 0, nil
}

// CountLikes returns the current like total for a book.
func (repository *repository) CountLikes(context context.Context, bookID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.SocialBookLike.Table, schema.SocialBookLike.BookID)

	var count int
	if err := repository.pool.QueryRow(context, query, bookID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count likes")
	}
	return count, nil
}

// # Save Toggle Primitives

// InsertSave conditionally creates a save row. Same contract as InsertLike.
func (repository *repository) InsertSave(context context.Context, userID, bookID string) (bool, error) {
	query := fmt.Sprintf(`
		INSERT INTO %s (%s, %s) VALUES ($1, $2)
		ON CONFLICT (%s, %s) DO NOTHING`,
		schema.SocialBookSave.Table,
		schema.SocialBookSave.UserID, schema.SocialBookSave.BookID,
		schema.SocialBookSave.UserID, schema.SocialBookSave.BookID,
	)

	tag, err := repository.pool.Exec(context, query, userID, bookID)
	if err != nil {
		return false, dberr.Wrap(err, "save book")
	}
	return tag.RowsAffected() > 0, nil
}

// DeleteSave removes a save row if present.
func (repository *repository) DeleteSave(context context.Context, userID, bookID string) (bool, error) {
	query := fmt.Sprintf(`DELETE FROM %s WHERE %s = $1 AND %s = $2`,
		schema.SocialBookSave.Table,
		schema.SocialBookSave.UserID, schema.SocialBookSave.BookID,
	)

	tag, err := repository.pool.Exec(context, query, userID, bookID)
	if err != nil {
		return false, dberr.Wrap(err, "unsave book")
	}
	return tag.RowsAffected() > 0, nil
}

// CountSaves returns the current save total for a book.
func (repository *repository) CountSaves(context context.Context, bookID string) (int, error) {
	query := fmt.Sprintf(`SELECT COUNT(*) FROM %s WHERE %s = $1`,
		schema.SocialBookSave.Table, schema.SocialBookSave.BookID)

	var count int
	if err := repository.pool.QueryRow(context, query, bookID).Scan(&count); err != nil {
		return 0, dberr.Wrap(err, "count saves")
	}
	return count, nil
}

// # Ratings

/*
UpsertRating writes a user's score and recomputes the book cache.

Description: The whole sequence runs in one transaction:

 1. Upsert the rating row on its (user, book) uniqueness key.
 2. Re-read every score for the book.
 3. Persist the recomputed mean and count onto the book row.

Recomputing from all rows (instead of adjusting incrementally) keeps the
cache drift-free regardless of interleaved writers.
*/
func (repository *repository) UpsertRating(context context.Context, userID, bookID string, score int) ([]int, error) {
	tx, err := repository.pool.Begin(context)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to begin transaction: %w", err)
	}
	defer tx.Rollback(context)

	upsert := fmt.Sprintf(`
		INSERT INTO %s (%s, %s, %s, %s) VALUES ($1, $2, $3, $4)
		ON CONFLICT (%s, %s) DO UPDATE SET %s = EXCLUDED.%s, %s = NOW()`,
		schema.SocialRating.Table,
		schema.SocialRating.ID, schema.SocialRating.UserID, schema.SocialRating.BookID, schema.SocialRating.Score,
		schema.SocialRating.UserID, schema.SocialRating.BookID,
		schema.SocialRating.Score, schema.SocialRating.Score, schema.SocialRating.UpdatedAt,
	)

	if _, err := tx.Exec(context, upsert, uuid.New(), userID, bookID, score); err != nil {
		return nil, dberr.Wrap(err, "rate book")
	}

	// Full re-read of all scores for the recomputation.
	selectScores := fmt.Sprintf(`SELECT %s FROM %s WHERE %s = $1`,
		schema.SocialRating.Score, schema.SocialRating.Table, schema.SocialRating.BookID)

	rows, err := tx.Query(context, selectScores, bookID)
	if err != nil {
		return nil, fmt.Errorf("postgres: failed to read rating scores: %w", err)
	}

	var scores []int
	for rows.Next() {
		var s int
		if err := rows.Scan(&s); err != nil {
			rows.Close()
			return nil, fmt.Errorf("postgres: failed to scan rating score: %w", err)
		}
		scores = append(scores, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("postgres: failed to read rating scores: %w", err)
	}

	// Persist the recomputed cache onto the book row.
	var sum int
	for _, s := range scores {
		sum += s
	}
	mean := float64(sum) / float64(len(scores))

	updateCache := fmt.Sprintf(`UPDATE %s SET %s = $2, %s = $3, %s = NOW() WHERE %s = $1`,
		schema.CoreBook.Table,
		schema.CoreBook.RatingAvg, schema.CoreBook.RatingCount,
		schema.CoreBook.UpdatedAt, schema.CoreBook.ID,
	)

	if _, err := tx.Exec(context, updateCache, bookID, mean, len(scores)); err != nil {
		return nil, dberr.Wrap(err, "update rating cache")
	}

	if err := tx.Commit(context); err != nil {
		return nil, fmt.Errorf("postgres: failed to commit rating: %w", err)
	}

	return scores, nil
}
