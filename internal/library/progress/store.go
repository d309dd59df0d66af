// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package progress

import "context"

// # Progress Data Access

// Repository defines the data access contract for reading progress.
type Repository interface {

	/*
		FindChapterBook resolves the owning book of a chapter.

		Parameters:
		  - context: context.Context
		  - chapterID: string (UUID)

		Returns:
		  - string: Book UUID
		  - error: ErrNotFound if the chapter is missing
	*/
	FindChapterBook(context context.Context, chapterID string) (string, error)

	/*
		Upsert writes a chapter progress value, monotonically.

		Description: Keyed on the (user, chapter) uniqueness constraint;
		an existing row only ever moves upward (GREATEST of old and new),
		so a stale or replayed observation can never regress completion.

		Parameters:
		  - context: context.Context
		  - row: *Progress (All references plus the percentage)

		Returns:
		  - error: Storage failures
	*/
	Upsert(context context.Context, row *Progress) error

	/*
		CountCompleted returns how many of a book's chapters the user has
		fully read.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - bookID: string

		Returns:
		  - int: Chapters with stored progress >= 100
		  - error: Storage failures
	*/
	CountCompleted(context context.Context, userID, bookID string) (int, error)

	/*
		CountChapters returns a book's total chapter count.

		Parameters:
		  - context: context.Context
		  - bookID: string

		Returns:
		  - int: Chapter rows for the book
		  - error: Storage failures
	*/
	CountChapters(context context.Context, bookID string) (int, error)
}
