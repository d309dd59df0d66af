// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package bookmark

import (
	"context"
	"log/slog"

	"github.com/librohive/api/internal/platform/apperr"
	"github.com/librohive/api/internal/platform/validate"
	"github.com/librohive/api/pkg/uuid"
)

// # Service Layer

// Service orchestrates passage bookmark management.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// CreateInput carries the selection details for a new bookmark.
type CreateInput struct {
	ChapterID      string
	SelectedText   string
	Position       int
	SelectionStart int
	SelectionEnd   int
	Note           *string
}

/*
Create pins a passage selection in a chapter.

Description: The chapter reference is resolved to its owning book before
the write, which both validates the chapter's existence and denormalizes
the book reference onto the row for cheap per-book cleanup.

Parameters:
  - context: context.Context
  - userID: string (Authenticated actor)
  - input: CreateInput

Returns:
  - *Bookmark: The persisted bookmark
  - error: Validation, reference, or persistence errors
*/
func (service *Service) Create(context context.Context, userID string, input CreateInput) (*Bookmark, error) {
	validator := &validate.Validator{}
	validator.Required(FieldChapterID, input.ChapterID)
	validator.Required(FieldSelectedText, input.SelectedText).MaxLen(FieldSelectedText, input.SelectedText, 1000)
	validator.Custom(FieldPosition, input.Position < 0, "must not be negative")
	validator.Custom(FieldSelectedText, input.SelectionEnd < input.SelectionStart, "selection end precedes start")
	if err := validator.Err(); err != nil {
		return nil, err
	}

	bookID, err := service.repo.FindChapterBook(context, input.ChapterID)
	if err != nil {
		return nil, err
	}

	bookmark := &Bookmark{
		ID:             uuid.New(),
		UserID:         userID,
		BookID:         bookID,
		ChapterID:      input.ChapterID,
		SelectedText:   input.SelectedText,
		Position:       input.Position,
		SelectionStart: input.SelectionStart,
		SelectionEnd:   input.SelectionEnd,
		Note:           input.Note,
	}

	if err := service.repo.Create(context, bookmark); err != nil {
		return nil, err
	}

	service.logger.Info("bookmark_created",
		slog.String("bookmark_id", bookmark.ID),
		slog.String("chapter_id", bookmark.ChapterID),
	)

	return bookmark, nil
}

/*
ListOwn returns all of the actor's bookmarks, newest first.

Description: This read is best-effort: a storage failure degrades to an
empty list rather than failing the surrounding page, since bookmarks are
decoration on the library view, not its substance.

Parameters:
  - context: context.Context
  - userID: string

Returns:
  - []*Bookmark: The actor's rows, possibly empty
*/
func (service *Service) ListOwn(context context.Context, userID string) []*Bookmark {
	bookmarks, err := service.repo.ListByUser(context, userID)
	if err != nil {
		service.logger.Warn("bookmark_list_failed", slog.Any("error", err))
		return []*Bookmark{}
	}
	if bookmarks == nil {
		bookmarks = []*Bookmark{}
	}
	return bookmarks
}

/*
ListForChapter returns the actor's bookmarks within one chapter, ordered
by position. Same best-effort contract as [Service.ListOwn].
*/
func (service *Service) ListForChapter(context context.Context, userID, chapterID string) []*Bookmark {
	bookmarks, err := service.repo.ListByChapter(context, userID, chapterID)
	if err != nil {
		service.logger.Warn("bookmark_list_failed", slog.Any("error", err))
		return []*Bookmark{}
	}
	if bookmarks == nil {
		bookmarks = []*Bookmark{}
	}
	return bookmarks
}

/*
Delete removes the actor's own bookmark.

Parameters:
  - context: context.Context
  - userID: string (Authenticated actor)
  - bookmarkID: string (UUID)

Returns:
  - error: Ownership or persistence errors
*/
func (service *Service) Delete(context context.Context, userID, bookmarkID string) error {
	existing, err := service.repo.FindByID(context, bookmarkID)
	if err != nil {
		return err
	}
	if existing.UserID != userID {
		return apperr.Forbidden("only the owner can delete this bookmark")
	}

	if err := service.repo.Delete(context, bookmarkID); err != nil {
		return err
	}

	service.logger.Info("bookmark_deleted", slog.String("bookmark_id", bookmarkID))

	return nil
}
