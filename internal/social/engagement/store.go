// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package engagement

import "context"

// # Engagement Data Access

// Repository defines the data access contract for likes, saves, and ratings.
type Repository interface {

	/*
		BookExists reports whether the target book row is present.

		Parameters:
		  - context: context.Context
		  - bookID: string (UUID)

		Returns:
		  - bool: Row presence
		  - error: Database retrieval failures
	*/
	BookExists(context context.Context, bookID string) (bool, error)

	/*
		InsertLike conditionally creates a like row.

		Description: Written as INSERT ... ON CONFLICT DO NOTHING so a
		concurrent duplicate request observes "already present" instead of
		failing on the uniqueness constraint.

		Parameters:
		  - context: context.Context
		  - userID: string (Actor)
		  - bookID: string (Target)

		Returns:
		  - bool: True if a row was created, false if one already existed
		  - error: Storage failures
	*/
	InsertLike(context context.Context, userID, bookID string) (bool, error)

	/*
		DeleteLike removes a like row if present.

		Parameters:
		  - context: context.Context
		  - userID: string (Actor)
		  - bookID: string (Target)

		Returns:
		  - bool: True if a row was removed
		  - error: Storage failures
	*/
	DeleteLike(context context.Context, userID, bookID string) (bool, error)

	/*
		CountLikes returns the current like total for a book.

		Parameters:
		  - context: context.Context
		  - bookID: string (Target)

		Returns:
		  - int: Fresh row count
		  - error: Storage failures
	*/
	CountLikes(context context.Context, bookID string) (int, error)

	/*
		InsertSave conditionally creates a save (reading list) row.
		Same conditional-write contract as [Repository.InsertLike].
	*/
	InsertSave(context context.Context, userID, bookID string) (bool, error)

	/*
		DeleteSave removes a save row if present.
	*/
	DeleteSave(context context.Context, userID, bookID string) (bool, error)

	/*
		CountSaves returns the current save total for a book.
	*/
	CountSaves(context context.Context, bookID string) (int, error)

	/*
		UpsertRating writes a user's score and recomputes the book cache.

		Description: Runs in a single transaction: the rating row is
		upserted on its (user, book) uniqueness key, every score for the
		book is re-read, and the mean plus count are persisted onto the
		book row. Full recomputation avoids incremental drift.

		Parameters:
		  - context: context.Context
		  - userID: string (Actor)
		  - bookID: string (Target)
		  - score: int (Validated [1,5])

		Returns:
		  - []int: All scores for the book after the write
		  - error: Storage failures
	*/
	UpsertRating(context context.Context, userID, bookID string, score int) ([]int, error)
}
