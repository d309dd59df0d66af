// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package progress

import (
	"context"
	"log/slog"

	"github.com/librohive/api/internal/core/book"
	"github.com/librohive/api/internal/platform/constants"
	"github.com/librohive/api/internal/platform/validate"
)

// # Service Layer

// Service orchestrates reading-progress tracking.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Record maps an observed scroll percentage to persisted chapter state.

Description: The observation is validated to [0,100]. Below the
completion threshold nothing is written; granular positions live only in
the client. At or past the threshold the chapter is persisted as fully
read (100) through a monotone upsert, so a later lower observation can
never undo completion. The response carries the recomputed book summary
so on-screen progress bars update without a second request.

Parameters:
  - context: context.Context
  - userID: string (Authenticated actor)
  - chapterID: string (UUID)
  - observedPct: int (Scroll-derived percentage)

Returns:
  - *RecordResult: Persistence outcome plus the fresh book summary
  - error: Validation or persistence errors
*/
func (service *Service) Record(context context.Context, userID, chapterID string, observedPct int) (*RecordResult, error) {
	validator := &validate.Validator{}
	validator.Range(FieldProgress, observedPct, 0, 100)
	if err := validator.Err(); err != nil {
		return nil, err
	}

	bookID, err := service.repo.FindChapterBook(context, chapterID)
	if err != nil {
		return nil, err
	}

	persisted := false
	if observedPct >= constants.ProgressCompletionThreshold {
		row := &Progress{
			UserID:    userID,
			BookID:    bookID,
			ChapterID: chapterID,
			Progress:  constants.ProgressComplete,
		}
		if err := service.repo.Upsert(context, row); err != nil {
			return nil, err
		}
		persisted = true

		service.logger.Info("chapter_completed",
			slog.String("chapter_id", chapterID),
			slog.String("book_id", bookID),
		)
	}

	summary, err := service.BookSummary(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	return &RecordResult{Persisted: persisted, Book: *summary}, nil
}

/*
BookSummary derives a user's book-level completion.

Description: Never stored, always recomputed: completed chapters over
total chapters with truncating division, matching the view model's rule.

Parameters:
  - context: context.Context
  - userID: string
  - bookID: string (UUID)

Returns:
  - *BookSummary: Counts plus the derived percentage
  - error: Repository errors
*/
func (service *Service) BookSummary(context context.Context, userID, bookID string) (*BookSummary, error) {
	total, err := service.repo.CountChapters(context, bookID)
	if err != nil {
		return nil, err
	}

	completed, err := service.repo.CountCompleted(context, userID, bookID)
	if err != nil {
		return nil, err
	}

	return &BookSummary{
		BookID:            bookID,
		CompletedChapters: completed,
		TotalChapters:     total,
		Percent:           book.BookProgressCounts(completed, total),
	}, nil
}
