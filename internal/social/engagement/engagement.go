// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

/*
Package engagement implements the social toggle and rating mutations.

A like or save is a single join row between a user and a book, guarded by
a composite uniqueness constraint. Toggling alternates the row between
present and absent; a rating is an upsert-by-value that is never removed
by the same action that created it.

Core Responsibility:

  - Toggles: like and save, written as constraint-guarded conditional
    inserts so concurrent duplicate requests cannot double-write.
  - Ratings: per-user star scores with a full recomputation of the
    book's cached average on every change.

Counts returned to clients are always recomputed by a fresh query after
the write, never adjusted in memory.
*/
package engagement

// ToggleResult reports the state after a toggle mutation.
type ToggleResult struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

// RatingSummary reports the rating state after an upsert.
type RatingSummary struct {
	UserRating    int      `json:"user_rating"`
	AverageRating *float64 `json:"average_rating"` // nil when the book has no ratings
	TotalRatings  int      `json:"total_ratings"`
}

// # Field Identifiers

const (
	FieldBookID = "book_id"
	FieldScore  = "score"
)
