// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package bookmark

import "context"

// # Bookmark Data Access

// Repository defines the data access contract for passage bookmarks.
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
		Create persists a new bookmark row.

		Parameters:
		  - context: context.Context
		  - bookmark: *Bookmark (ID and references set by the service)

		Returns:
		  - error: Storage failures
	*/
	Create(context context.Context, bookmark *Bookmark) error

	/*
		FindByID returns a single bookmark row.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Bookmark: The row
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Bookmark, error)

	/*
		ListByUser returns all of a user's bookmarks, newest first.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []*Bookmark: The user's rows
		  - error: Storage failures
	*/
	ListByUser(context context.Context, userID string) ([]*Bookmark, error)

	/*
		ListByChapter returns a user's bookmarks within one chapter,
		ordered by position.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - chapterID: string (UUID)

		Returns:
		  - []*Bookmark: Position-ordered rows
		  - error: Storage failures
	*/
	ListByChapter(context context.Context, userID, chapterID string) ([]*Bookmark, error)

	/*
		Delete removes a bookmark row.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: ErrNotFound if missing
	*/
	Delete(context context.Context, id string) error
}
