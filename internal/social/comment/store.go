// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package comment

import "context"

// # Comment Data Access

// Repository defines the data access contract for discussion threads.
type Repository interface {

	/*
		ListForBook returns every comment on a book as a flat list.

		Description: Rows are ordered oldest-first and carry the author
		projection, like count, and the viewer's like flag. Tree assembly
		happens in memory via [BuildTree].

		Parameters:
		  - context: context.Context
		  - bookID: string (UUID)
		  - viewerID: string (Empty for anonymous browsing)

		Returns:
		  - []*Comment: Flat chronological rows
		  - error: Database retrieval failures
	*/
	ListForBook(context context.Context, bookID, viewerID string) ([]*Comment, error)

	/*
		ListForChapter returns a chapter's comments as a flat list.
		Same row shape and ordering as [Repository.ListForBook].
	*/
	ListForChapter(context context.Context, chapterID, viewerID string) ([]*Comment, error)

	/*
		FindByID returns a single comment row without relations.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *Comment: The bare row
		  - error: ErrNotFound if missing
	*/
	FindByID(context context.Context, id string) (*Comment, error)

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
		Create persists a new comment row.

		Parameters:
		  - context: context.Context
		  - comment: *Comment (ID, references, and body set by the service)

		Returns:
		  - error: Storage or constraint failures
	*/
	Create(context context.Context, comment *Comment) error

	/*
		Delete removes a comment, its direct replies, and their likes.

		Description: Runs in one transaction: likes on the comment and on
		its direct replies go first, then the replies, then the comment
		itself. Grandchild replies are not cascaded.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - error: Transaction failures
	*/
	Delete(context context.Context, id string) error

	/*
		InsertLike conditionally creates a comment-like row.
		Constraint-guarded; false means the row already existed.
	*/
	InsertLike(context context.Context, userID, commentID string) (bool, error)

	/*
		DeleteLike removes a comment-like row if present.
	*/
	DeleteLike(context context.Context, userID, commentID string) (bool, error)

	/*
		CountLikes returns the current like total for a comment.
	*/
	CountLikes(context context.Context, commentID string) (int, error)
}
