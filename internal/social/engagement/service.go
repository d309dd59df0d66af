// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package engagement

import (
	"context"
	"log/slog"

	"github.com/librohive/api/internal/core/book"
	"github.com/librohive/api/internal/platform/apperr"
	"github.com/librohive/api/internal/platform/constants"
	"github.com/librohive/api/internal/platform/validate"
)

// # Service Layer

// Service orchestrates the like, save, and rating mutations.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

// togglePrimitives bundles the three store calls a toggle needs, so like
// and save share one state machine.
type togglePrimitives struct {
	insert func(context.Context, string, string) (bool, error)
	delete func(context.Context, string, string) (bool, error)
	count  func(context.Context, string) (int, error)
}

/*
ToggleLike alternates the actor's like state on a book.

Description: The mutation is a conditional insert first: if the
constraint reports the row already present, it is deleted instead. The
returned count is recomputed by a fresh query after the write, so it
stays correct under concurrent writers. Two sequential calls always
return to the original state.

Parameters:
  - context: context.Context
  - userID: string (Authenticated actor)
  - bookID: string (Target)

Returns:
  - *ToggleResult: New state and fresh count
  - error: ErrNotFound if the book is missing
*/
func (service *Service) ToggleLike(context context.Context, userID, bookID string) (*ToggleResult, error) {
	result, err := service.toggle(context, userID, bookID, togglePrimitives{
		insert: service.repo.InsertLike,
		delete: service.repo.DeleteLike,
		count:  service.repo.CountLikes,
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_like_toggled",
		slog.String("book_id", bookID),
		slog.Bool("active", result.Active),
	)

	return result, nil
}

/*
ToggleSave alternates the actor's reading-list state on a book.
Same contract as [Service.ToggleLike].
*/
func (service *Service) ToggleSave(context context.Context, userID, bookID string) (*ToggleResult, error) {
	result, err := service.toggle(context, userID, bookID, togglePrimitives{
		insert: service.repo.InsertSave,
		delete: service.repo.DeleteSave,
		count:  service.repo.CountSaves,
	})
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_save_toggled",
		slog.String("book_id", bookID),
		slog.Bool("active", result.Active),
	)

	return result, nil
}

// toggle runs the shared ABSENT <-> PRESENT state machine.
func (service *Service) toggle(context context.Context, userID, bookID string, prim togglePrimitives) (*ToggleResult, error) {
	exists, err := service.repo.BookExists(context, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("book")
	}

	inserted, err := prim.insert(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	active := true
	if !inserted {
		// Row was already present: this call is the "off" half of the toggle.
		if _, err := prim.delete(context, userID, bookID); err != nil {
			return nil, err
		}
		active = false
	}

	count, err := prim.count(context, bookID)
	if err != nil {
		return nil, err
	}

	return &ToggleResult{Active: active, Count: count}, nil
}

/*
RateBook upserts the actor's star score for a book.

Description: The score is validated against the accepted range before
any write. The repository recomputes the book's cached average from all
rating rows in the same transaction; the summary returned here buckets
that mean to the display half-star the same way the view model does.

Parameters:
  - context: context.Context
  - userID: string (Authenticated actor)
  - bookID: string (Target)
  - score: int (Must be within [1,5])

Returns:
  - *RatingSummary: The actor's score plus the recomputed aggregate
  - error: Validation or persistence errors
*/
func (service *Service) RateBook(context context.Context, userID, bookID string, score int) (*RatingSummary, error) {
	validator := &validate.Validator{}
	validator.Range(FieldScore, score, constants.RatingMin, constants.RatingMax)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	exists, err := service.repo.BookExists(context, bookID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("book")
	}

	scores, err := service.repo.UpsertRating(context, userID, bookID, score)
	if err != nil {
		return nil, err
	}

	service.logger.Info("book_rated",
		slog.String("book_id", bookID),
		slog.Int("score", score),
	)

	return &RatingSummary{
		UserRating:    score,
		AverageRating: book.AverageRating(scores),
		TotalRatings:  len(scores),
	}, nil
}
