// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package progress_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librohive/api/internal/library/progress"
	"github.com/librohive/api/internal/platform/apperr"
)

// fakeRepository is an in-memory [progress.Repository] with the same
// monotone-upsert semantics as the Postgres store.
type fakeRepository struct {
	chapterBooks map[string]string // chapterID -> bookID
	rows         map[string]int    // userID|chapterID -> progress
}

func newFakeRepository() *fakeRepository {
	return &fakeRepository{
		chapterBooks: map[string]string{},
		rows:         map[string]int{},
	}
}

func (f *fakeRepository) addChapters(bookID string, chapterIDs ...string) {
	for _, id := range chapterIDs {
		f.chapterBooks[id] = bookID
	}
}

func (f *fakeRepository) FindChapterBook(_ context.Context, chapterID string) (string, error) {
	bookID, ok := f.chapterBooks[chapterID]
	if !ok {
		return "", apperr.NotFound("chapter")
	}
	return bookID, nil
}

func (f *fakeRepository) Upsert(_ context.Context, row *progress.Progress) error {
	key := row.UserID + "|" + row.ChapterID
	if existing, ok := f.rows[key]; ok && existing > row.Progress {
		return nil
	}
	f.rows[key] = row.Progress
	return nil
}

func (f *fakeRepository) CountCompleted(_ context.Context, userID, bookID string) (int, error) {
	count := 0
	for chapterID, owner := range f.chapterBooks {
		if owner == bookID && f.rows[userID+"|"+chapterID] >= 100 {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) CountChapters(_ context.Context, bookID string) (int, error) {
	count := 0
	for _, owner := range f.chapterBooks {
		if owner == bookID {
			count++
		}
	}
	return count, nil
}

func newService(repo progress.Repository) *progress.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return progress.NewService(repo, logger)
}

/*
TestService_Record_ThresholdTransition verifies the 80% completion rule:
below it nothing is persisted, at or past it the chapter stores 100.
*/
func TestService_Record_ThresholdTransition(t *testing.T) {
	repo := newFakeRepository()
	repo.addChapters("book-1", "ch-1")
	service := newService(repo)
	ctx := context.Background()

	t.Run("below_threshold_not_persisted", func(t *testing.T) {
		result, err := service.Record(ctx, "user-1", "ch-1", 79)
		require.NoError(t, err)
		assert.False(t, result.Persisted)
		assert.Empty(t, repo.rows)
		assert.Equal(t, 0, result.Book.Percent)
	})

	t.Run("at_threshold_stores_complete", func(t *testing.T) {
		result, err := service.Record(ctx, "user-1", "ch-1", 80)
		require.NoError(t, err)
		assert.True(t, result.Persisted)
		assert.Equal(t, 100, repo.rows["user-1|ch-1"], "threshold crossing stores 100, not the raw observation")
		assert.Equal(t, 100, result.Book.Percent)
	})

	t.Run("out_of_range_rejected", func(t *testing.T) {
		for _, pct := range []int{-1, 101} {
			_, err := service.Record(ctx, "user-1", "ch-1", pct)
			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		}
	})

	t.Run("unknown_chapter", func(t *testing.T) {
		_, err := service.Record(ctx, "user-1", "missing", 90)
		require.Error(t, err)
		assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	})
}

/*
TestService_BookSummary_TruncatingDivision pins the derived percentage to
truncating division: 2 of 3 completed chapters reads as 66.
*/
func TestService_BookSummary_TruncatingDivision(t *testing.T) {
	repo := newFakeRepository()
	repo.addChapters("book-1", "ch-1", "ch-2", "ch-3")
	service := newService(repo)
	ctx := context.Background()

	for _, chapterID := range []string{"ch-1", "ch-2"} {
		_, err := service.Record(ctx, "user-1", chapterID, 95)
		require.NoError(t, err)
	}

	summary, err := service.BookSummary(ctx, "user-1", "book-1")
	require.NoError(t, err)

	assert.Equal(t, 3, summary.TotalChapters)
	assert.Equal(t, 2, summary.CompletedChapters)
	assert.Equal(t, 66, summary.Percent)
}

/*
TestService_BookSummary_ZeroChapters covers the divide-by-zero guard.
*/
func TestService_BookSummary_ZeroChapters(t *testing.T) {
	repo := newFakeRepository()
	service := newService(repo)

	summary, err := service.BookSummary(context.Background(), "user-1", "empty-book")
	require.NoError(t, err)
	assert.Equal(t, 0, summary.Percent)
}
