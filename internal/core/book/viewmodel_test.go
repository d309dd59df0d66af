// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package book_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librohive/api/internal/core/book"
	"github.com/librohive/api/pkg/pointer"
)

/*
TestAverageRating verifies the half-star bucketing rule and the
nil-on-empty contract.
*/
func TestAverageRating(t *testing.T) {
	tests := []struct {
		name   string
		scores []int
		want   float64
		isNil  bool
	}{
		{"no_ratings", nil, 0, true},
		{"empty_slice", []int{}, 0, true},
		{"single_rating", []int{4}, 4.0, false},
		{"exact_mean", []int{4, 5}, 4.5, false},
		{"rounds_up_to_half", []int{4, 4, 5}, 4.5, false}, // mean 4.33 -> 4.5
		{"rounds_down_to_half", []int{1, 2}, 1.5, false},
		{"rounds_to_whole", []int{5, 5, 4, 5}, 5.0, false}, // mean 4.75 -> 5.0
		{"all_minimum", []int{1, 1, 1}, 1.0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := book.AverageRating(tt.scores)

			if tt.isNil {
				assert.Nil(t, got, "empty rating sets must yield nil, not zero")
				return
			}
			require.NotNil(t, got)
			assert.InDelta(t, tt.want, *got, 0.001)
		})
	}
}

/*
TestBookProgress verifies book-level completion derivation, including the
truncating division and the zero-chapter guard.
*/
func TestBookProgress(t *testing.T) {
	chapters := []book.Chapter{
		{ID: "ch-1", Ordinal: 1},
		{ID: "ch-2", Ordinal: 2},
		{ID: "ch-3", Ordinal: 3},
	}

	tests := []struct {
		name     string
		chapters []book.Chapter
		progress map[string]int
		want     int
	}{
		{"no_chapters", nil, nil, 0},
		{"no_progress", chapters, nil, 0},
		{"partial_chapter_does_not_count", chapters, map[string]int{"ch-1": 99}, 0},
		{"two_of_three_truncates", chapters, map[string]int{"ch-1": 100, "ch-2": 100, "ch-3": 0}, 66},
		{"all_complete", chapters, map[string]int{"ch-1": 100, "ch-2": 100, "ch-3": 100}, 100},
		{"one_of_three", chapters, map[string]int{"ch-2": 100}, 33},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, book.BookProgress(tt.chapters, tt.progress))
		})
	}
}

/*
TestBookProgressCounts covers the counting form used by list queries.
*/
func TestBookProgressCounts(t *testing.T) {
	assert.Equal(t, 0, book.BookProgressCounts(0, 0), "zero chapters must not divide by zero")
	assert.Equal(t, 66, book.BookProgressCounts(2, 3))
	assert.Equal(t, 100, book.BookProgressCounts(3, 3))
	assert.Equal(t, 50, book.BookProgressCounts(1, 2))
}

/*
TestBuildDetails checks the canonical view model assembly: field
defaulting, referential independence, and engagement reduction.
*/
func TestBuildDetails(t *testing.T) {
	t.Run("defaults_and_reduction", func(t *testing.T) {
		rating := 4
		raw := book.RawDetails{
			Book: book.Book{
				ID:    "book-1",
				Title: "The Hive",
				Tags:  nil, // must come out as an empty array
			},
			Author: book.AuthorSummary{ID: "user-1", Name: ""},
			Chapters: []book.Chapter{
				{ID: "ch-1", Ordinal: 1},
				{ID: "ch-2", Ordinal: 2},
			},
			LikeCount:      7,
			CommentCount:   3,
			RatingScores:   []int{5, 4},
			ViewerLiked:    true,
			ViewerRating:   &rating,
			ViewerProgress: map[string]int{"ch-1": 100},
		}

		details := book.BuildDetails(raw)

		assert.NotNil(t, details.Tags, "tags must always be present as an array")
		assert.Empty(t, details.Tags)
		assert.Equal(t, "Unknown Author", details.Author.Name)

		assert.True(t, details.IsLiked)
		assert.False(t, details.IsSaved)
		assert.Equal(t, 7, details.LikeCount)
		assert.Equal(t, 3, details.CommentCount)
		assert.Equal(t, 2, details.TotalRatings)
		require.NotNil(t, details.AverageRating)
		assert.InDelta(t, 4.5, *details.AverageRating, 0.001)
		require.NotNil(t, details.UserRating)
		assert.Equal(t, 4, *details.UserRating)
		assert.Equal(t, 50, details.ProgressPct)
	})

	t.Run("referential_independence", func(t *testing.T) {
		raw := book.RawDetails{
			Book: book.Book{
				ID:   "book-2",
				Tags: []string{"fantasy"},
			},
			Chapters:     []book.Chapter{{ID: "ch-1", Title: "One", Ordinal: 1}},
			ViewerRating: pointer.To(3),
		}

		details := book.BuildDetails(raw)

		// Mutating the view model must not leak back into the raw rows.
		details.Tags[0] = "horror"
		details.Chapters[0].Title = "changed"
		*details.UserRating = 1

		assert.Equal(t, "fantasy", raw.Book.Tags[0])
		assert.Equal(t, "One", raw.Chapters[0].Title)
		assert.Equal(t, 3, *raw.ViewerRating)
	})

	t.Run("list_shape_uses_counts", func(t *testing.T) {
		raw := book.RawDetails{
			Book:            book.Book{ID: "book-3"},
			ChapterCount:    3,
			ViewerCompleted: 2,
		}

		details := book.BuildDetails(raw)
		assert.Equal(t, 66, details.ProgressPct)
	})
}

