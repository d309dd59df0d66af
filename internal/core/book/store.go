// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package book

import "context"

// # Book Data Access

// BookRepository defines the data access contract for the book domain.
type BookRepository interface {

	/*
		List returns a filtered, paginated slice of view models and the total count.

		Parameters:
		  - context: context.Context
		  - filter: Filter (Criteria for tags, search, author, sorting)
		  - viewerID: string (Empty for anonymous browsing)
		  - limit: int
		  - offset: int

		Returns:
		  - []*BookWithDetails: Slice of presentation-ready records
		  - int: Total count of records matching the filter
		  - error: Database retrieval failures
	*/
	List(context context.Context, filter Filter, viewerID string, limit, offset int) ([]*BookWithDetails, int, error)

	/*
		FindDetails returns the raw detail rows for a book by primary key.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - viewerID: string (Empty for anonymous browsing)

		Returns:
		  - *RawDetails: Entity plus unreduced engagement rows
		  - error: ErrNotFound if missing
	*/
	FindDetails(context context.Context, id, viewerID string) (*RawDetails, error)

	/*
		FindDetailsBySlug resolves a book through its unique SEO identifier.

		Parameters:
		  - context: context.Context
		  - slug: string
		  - viewerID: string

		Returns:
		  - *RawDetails: Entity plus unreduced engagement rows
		  - error: ErrNotFound if missing
	*/
	FindDetailsBySlug(context context.Context, slug, viewerID string) (*RawDetails, error)

	/*
		FindByID returns the bare book row without engagement joins.
		Used for ownership checks before mutations.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Book: The core entity
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Book, error)

	/*
		Create persists a new book and its initial chapters in one transaction.

		Parameters:
		  - context: context.Context
		  - book: *Book (Metadata and initial state)
		  - chapters: []ChapterInput (Ordered content)

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, book *Book, chapters []ChapterInput) error

	/*
		Update persists metadata changes and reconciles chapters in place.

		Description: Incoming chapters are matched to stored rows by ordinal.
		Matched rows are patched, new ordinals inserted, and removed ordinals
		deleted together with their dependent progress and bookmark rows, all
		inside a single transaction. Chapter IDs survive edits.

		Parameters:
		  - context: context.Context
		  - book: *Book (Target ID and modified attributes)
		  - chapters: []ChapterInput (Full desired chapter set)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, book *Book, chapters []ChapterInput) error

	/*
		SetPublished flips the public visibility of a book.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)
		  - published: bool

		Returns:
		  - error: ErrNotFound if missing
	*/
	SetPublished(context context.Context, id string, published bool) error

	/*
		Delete removes a book and every dependent row in one transaction.

		Description: Progress, bookmarks, likes, saves, ratings, comment
		likes, comments, and chapters are deleted in foreign-key order
		before the book row. A mid-sequence failure rolls everything back.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: Transaction failures
	*/
	Delete(context context.Context, id string) error

	/*
		IncrementViewCount atomically bumps the view counter on a book.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: Atomic update failure
	*/
	IncrementViewCount(context context.Context, id string) error

	/*
		ListTrending returns published books ranked by view count.

		Parameters:
		  - context: context.Context
		  - viewerID: string
		  - limit: int

		Returns:
		  - []*BookWithDetails: Ranked view models
		  - error: Retrieval failures
	*/
	ListTrending(context context.Context, viewerID string, limit int) ([]*BookWithDetails, error)

	/*
		ListFeed returns recent published books from authors the viewer follows.

		Parameters:
		  - context: context.Context
		  - viewerID: string (Required)
		  - limit: int
		  - offset: int

		Returns:
		  - []*BookWithDetails: Chronological view models
		  - int: Total matching books
		  - error: Retrieval failures
	*/
	ListFeed(context context.Context, viewerID string, limit, offset int) ([]*BookWithDetails, int, error)

	/*
		FindChapter returns a single chapter row by primary key.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Chapter: The content row
		  - error: ErrNotFound if missing
	*/
	FindChapter(context context.Context, id string) (*Chapter, error)
}
