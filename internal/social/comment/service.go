// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package comment

import (
	"context"
	"log/slog"

	"github.com/librohive/api/internal/platform/apperr"
	"github.com/librohive/api/internal/platform/validate"
	"github.com/librohive/api/pkg/uuid"
)

// # Service Layer

// Service orchestrates discussion threads and comment reactions.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateInput carries the references and body for a new comment.
// Exactly one of BookID or ChapterID anchors a top-level comment; a
// reply only needs ParentID and inherits its thread's references.
type CreateInput struct {
	BookID    string
	ChapterID string
	ParentID  string
	Body      string
}

/*
ListForBook returns a book's discussion as a nested reply tree.

Description: The store returns one flat chronological list; the tree is
assembled in memory by parent ID, so nesting depth is unbounded and the
query cost does not grow with thread depth.

Parameters:
  - context: context.Context
  - bookID: string (UUID)
  - viewerID: string (Empty for anonymous browsing)

Returns:
  - []*Comment: Top-level comments with nested replies
  - error: Repository errors
*/
func (service *Service) ListForBook(context context.Context, bookID, viewerID string) ([]*Comment, error) {
	flat, err := service.repo.ListForBook(context, bookID, viewerID)
	if err != nil {
		return nil, err
	}
	return BuildTree(flat), nil
}

/*
ListForChapter returns a chapter's discussion as a nested reply tree.
Same contract as [Service.ListForBook].
*/
func (service *Service) ListForChapter(context context.Context, chapterID, viewerID string) ([]*Comment, error) {
	flat, err := service.repo.ListForChapter(context, chapterID, viewerID)
	if err != nil {
		return nil, err
	}
	return BuildTree(flat), nil
}

/*
Create posts a comment or a reply.

Description: Replies inherit their book and chapter references from the
parent so a reply can never cross threads. Chapter comments have the book
reference denormalized from the chapter at creation time, which keeps
book-level listing a single-table scan.

Parameters:
  - context: context.Context
  - userID: string (Authenticated actor)
  - input: CreateInput

Returns:
  - *Comment: The persisted comment
  - error: Validation, reference, or persistence errors
*/
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Comment, error) {
	validator := &validate.Validator{}
	validator.Required(FieldBody, input.Body).MaxLen(FieldBody, input.Body, 5000)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	comment := &Comment{
		ID:     uuid.New(),
		UserID: userID,
		Body:   input.Body,
	}

	switch {
	case input.ParentID != "":
		parent, err := service.repo.FindByID(context, input.ParentID)
		if err != nil {
			return nil, err
		}
		comment.ParentID = &parent.ID
		comment.BookID = parent.BookID
		comment.ChapterID = parent.ChapterID

	case input.ChapterID != "":
		bookID, err := service.repo.FindChapterBook(context, input.ChapterID)
		if err != nil {
			return nil, err
		}
		chapterID := input.ChapterID
		comment.ChapterID = &chapterID
		comment.BookID = bookID

	case input.BookID != "":
		comment.BookID = input.BookID

	default:
		return nil, apperr.ValidationError("comment requires a book, chapter, or parent reference")
	}

	if err := service.repo.Create(context, comment); err != nil {
		return nil, err
	}

	service.logger.Info("comment_created",
		slog.String("comment_id", comment.ID),
		slog.String("book_id", comment.BookID),
		slog.Bool("is_reply", comment.ParentID != nil),
	)

	return comment, nil
}

/*
Delete removes the actor's own comment and its direct replies.

Parameters:
  - context: context.Context
  - userID: string (Authenticated actor)
  - commentID: string (UUID)

Returns:
  - error: Ownership or persistence errors
*/
func (service *Service) Delete(context context.Context, userID, commentID string) error {
	existing, err := service.repo.FindByID(context, commentID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return apperr.Forbidden("only the author can delete this comment")
	}

	if err := service.repo.Delete(context, commentID); err != nil {
		return err
	}

	service.logger.Info("comment_deleted", slog.String("comment_id", commentID))

	return nil
}

/*
ToggleLike alternates the actor's like on a comment.

Description: Conditional insert first; an existing row flips the call to
the delete half. The count is a fresh query after the write.

Parameters:
  - context: context.Context
  - userID: string (Authenticated actor)
  - commentID: string (UUID)

Returns:
  - *LikeResult: New state and fresh count
  - error: ErrNotFound if the comment is missing
*/
func (service *Service) ToggleLike(context context.Context, userID, commentID string) (*LikeResult, error) {
	if _, err := service.repo.FindByID(context, commentID); err != nil {
		return nil, err
	}

	inserted, err := service.repo.InsertLike(context, userID, commentID)
	if err != nil {
		return nil, err
	}

	active := true
	if !inserted {
		if _, err := service.repo.DeleteLike(context, userID, commentID); err != nil {
			return nil, err
		}
		active = false
	}

	count, err := service.repo.CountLikes(context, commentID)
	if err != nil {
		return nil, err
	}

	return &LikeResult{Active: active, Count: count}, nil
}
