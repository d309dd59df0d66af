// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package engagement_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librohive/api/internal/platform/apperr"
	"github.com/librohive/api/internal/social/engagement"
)

// fakeRepository is an in-memory [engagement.Repository] keyed the same
// way the Postgres uniqueness constraints are.
type fakeRepository struct {
	books   map[string]bool
	likes   map[string]bool // userID|bookID
	saves   map[string]bool
	ratings map[string]int // userID|bookID -> score

	ratingWrites int
}

func newFakeRepository(bookIDs ...string) *fakeRepository {
	repo := &fakeRepository{
		books:   map[string]bool{},
		likes:   map[string]bool{},
		saves:   map[string]bool{},
		ratings: map[string]int{},
	}
	for _, id := range bookIDs {
		repo.books[id] = true
	}
	return repo
}

func pairKey(userID, bookID string) string { return userID + "|" + bookID }

func (f *fakeRepository) BookExists(_ context.Context, bookID string) (bool, error) {
	return f.books[bookID], nil
}

func (f *fakeRepository) InsertLike(_ context.Context, userID, bookID string) (bool, error) {
	key := pairKey(userID, bookID)
	if f.likes[key] {
		return false, nil
	}
	f.likes[key] = true
	return true, nil
}

func (f *fakeRepository) DeleteLike(_ context.Context, userID, bookID string) (bool, error) {
	key := pairKey(userID, bookID)
	if !f.likes[key] {
		return false, nil
	}
	delete(f.likes, key)
	return true, nil
}

func (f *fakeRepository) CountLikes(_ context.Context, bookID string) (int, error) {
	return countForBook(f.likes, bookID), nil
}

func (f *fakeRepository) InsertSave(_ context.Context, userID, bookID string) (bool, error) {
	key := pairKey(userID, bookID)
	if f.saves[key] {
		return false, nil
	}
	f.saves[key] = true
	return true, nil
}

func (f *fakeRepository) DeleteSave(_ context.Context, userID, bookID string) (bool, error) {
	key := pairKey(userID, bookID)
	if !f.saves[key] {
		return false, nil
	}
	delete(f.saves, key)
	return true, nil
}

func (f *fakeRepository) CountSaves(_ context.Context, bookID string) (int, error) {
	return countForBook(f.saves, bookID), nil
}

func (f *fakeRepository) UpsertRating(_ context.Context, userID, bookID string, score int) ([]int, error) {
	f.ratingWrites++
	f.ratings[pairKey(userID, bookID)] = score

	var scores []int
	for key, s := range f.ratings {
		if key[len(key)-len(bookID):] == bookID {
			scores = append(scores, s)
		}
	}
	return scores, nil
}

func countForBook(rows map[string]bool, bookID string) int {
	count := 0
	for key := range rows {
		if key[len(key)-len(bookID):] == bookID {
			count++
		}
	}
	return count
}

func newService(repo engagement.Repository) *engagement.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return engagement.NewService(repo, logger)
}

/*
TestService_ToggleLike_PairReturnsToOriginal verifies that two sequential
toggle calls alternate state and restore the original count.
*/
func TestService_ToggleLike_PairReturnsToOriginal(t *testing.T) {
	repo := newFakeRepository("book-1")
	service := newService(repo)
	ctx := context.Background()

	// Seed a like from another reader so base count is 1.
	_, err := repo.InsertLike(ctx, "other-user", "book-1")
	require.NoError(t, err)

	first, err := service.ToggleLike(ctx, "user-1", "book-1")
	require.NoError(t, err)
	assert.True(t, first.Active)
	assert.Equal(t, 2, first.Count)

	second, err := service.ToggleLike(ctx, "user-1", "book-1")
	require.NoError(t, err)
	assert.False(t, second.Active)
	assert.Equal(t, 1, second.Count)
}

/*
TestService_ToggleSave covers the save toggle path and the missing-book guard.
*/
func TestService_ToggleSave(t *testing.T) {
	repo := newFakeRepository("book-1")
	service := newService(repo)
	ctx := context.Background()

	result, err := service.ToggleSave(ctx, "user-1", "book-1")
	require.NoError(t, err)
	assert.True(t, result.Active)
	assert.Equal(t, 1, result.Count)

	_, err = service.ToggleSave(ctx, "user-1", "missing-book")
	require.Error(t, err)
	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "NOT_FOUND", ae.Code)
}

/*
TestService_RateBook verifies range validation happens before any write
and that the returned aggregate buckets to the half-star.
*/
func TestService_RateBook(t *testing.T) {
	repo := newFakeRepository("book-1")
	service := newService(repo)
	ctx := context.Background()

	t.Run("out_of_range_rejected_before_write", func(t *testing.T) {
		for _, score := range []int{0, 6, -1} {
			_, err := service.RateBook(ctx, "user-1", "book-1", score)
			require.Error(t, err)
			ae := apperr.As(err)
			require.NotNil(t, ae)
			assert.Equal(t, "VALIDATION_ERROR", ae.Code)
		}
		assert.Zero(t, repo.ratingWrites, "invalid scores must not reach the store")
	})

	t.Run("upsert_returns_bucketed_aggregate", func(t *testing.T) {
		_, err := service.RateBook(ctx, "user-2", "book-1", 5)
		require.NoError(t, err)

		summary, err := service.RateBook(ctx, "user-1", "book-1", 4)
		require.NoError(t, err)

		assert.Equal(t, 4, summary.UserRating)
		assert.Equal(t, 2, summary.TotalRatings)
		require.NotNil(t, summary.AverageRating)
		assert.InDelta(t, 4.5, *summary.AverageRating, 0.001)
	})

	t.Run("re_rating_replaces_not_appends", func(t *testing.T) {
		summary, err := service.RateBook(ctx, "user-1", "book-1", 5)
		require.NoError(t, err)
		assert.Equal(t, 2, summary.TotalRatings)
		require.NotNil(t, summary.AverageRating)
		assert.InDelta(t, 5.0, *summary.AverageRating, 0.001)
	})
}
