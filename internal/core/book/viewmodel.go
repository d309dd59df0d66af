// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package book

import "math"

// # Engagement View Model

// Engagement holds the derived social scalars for a book relative to an
// optional viewer. Every rendering surface consumes these fields through
// [BookWithDetails] instead of re-deriving them per page.
type Engagement struct {
	IsLiked       bool     `json:"is_liked"`
	IsSaved       bool     `json:"is_saved"`
	IsBookmarked  bool     `json:"is_bookmarked"`
	UserRating    *int     `json:"user_rating"`
	AverageRating *float64 `json:"average_rating"` // nil when the book has no ratings
	TotalRatings  int      `json:"total_ratings"`
	LikeCount     int      `json:"like_count"`
	CommentCount  int      `json:"comment_count"`
	ProgressPct   int      `json:"progress_percent"` // viewer's book-level completion
}

// BookWithDetails is the canonical denormalized shape for a book.
//
// Every surface (feed, search, author profile, trending, detail page,
// chapter reader) renders from this one contract. The struct is built by
// [BuildDetails] and is referentially independent of the raw rows it was
// derived from.
type BookWithDetails struct {
	Book
	Author   AuthorSummary `json:"author"`
	Chapters []Chapter     `json:"chapters"`
	Engagement
}

// RawDetails carries the unreduced rows a detail query returns. The store
// pre-filters viewer-scoped rows (liked/saved/rating/progress) to the
// requesting user; counts and scores cover all users.
type RawDetails struct {
	Book     Book
	Author   AuthorSummary
	Chapters []Chapter

	// List queries skip chapter hydration and carry counts instead;
	// detail queries fill Chapters and ViewerProgress.
	ChapterCount    int
	ViewerCompleted int

	LikeCount    int
	CommentCount int
	RatingScores []int // every rating row's score, all users

	ViewerLiked      bool
	ViewerSaved      bool
	ViewerBookmarked bool
	ViewerRating     *int
	ViewerProgress   map[string]int // chapter ID -> persisted percentage
}

// placeholderAuthorName is shown when an account has no display name.
const placeholderAuthorName = "Unknown Author"

// # Aggregation Rules

// AverageRating buckets the mean of the given scores to the nearest
// half-star. An empty score set yields nil, which consumers must keep
// distinct from a literal zero rating.
func AverageRating(scores []int) *float64 {
	if len(scores) == 0 {
		return nil
	}
	var sum int
	for _, score := range scores {
		sum += score
	}
	mean := float64(sum) / float64(len(scores))
	bucketed := math.Round(mean*2) / 2
	return &bucketed
}

// BookProgress derives a viewer's book-level completion from per-chapter
// progress rows. Only fully-read chapters count.
func BookProgress(chapters []Chapter, progressByChapter map[string]int) int {
	completed := 0
	for _, chapter := range chapters {
		if progressByChapter[chapter.ID] >= 100 {
			completed++
		}
	}
	return BookProgressCounts(completed, len(chapters))
}

// BookProgressCounts is the counting form of [BookProgress]. The division
// truncates (2 of 3 chapters reads as 66, not 67). A book with zero
// chapters is 0, never a divide-by-zero.
func BookProgressCounts(completed, total int) int {
	if total == 0 {
		return 0
	}
	return completed * 100 / total
}

// # View Model Assembly

/*
BuildDetails assembles the canonical [BookWithDetails] from raw query rows.

Description: This is the single funnel every query path (list, detail,
feed, trending) passes through. It never fails: absent relations degrade
to empty or default values so a malformed row cannot take down a page.

Guarantees:
  - Tags is always a non-nil slice, never omitted.
  - Author.Name is defaulted when the account has no display name.
  - The result shares no slices or maps with the input rows.

Parameters:
  - raw: RawDetails (Entity fields plus unreduced engagement rows)

Returns:
  - *BookWithDetails: The presentation-ready view model
*/
func BuildDetails(raw RawDetails) *BookWithDetails {
	progress := BookProgressCounts(raw.ViewerCompleted, raw.ChapterCount)
	if len(raw.Chapters) > 0 {
		progress = BookProgress(raw.Chapters, raw.ViewerProgress)
	}

	details := &BookWithDetails{
		Book:   raw.Book,
		Author: raw.Author,
		Engagement: Engagement{
			IsLiked:       raw.ViewerLiked,
			IsSaved:       raw.ViewerSaved,
			IsBookmarked:  raw.ViewerBookmarked,
			UserRating:    copyIntPtr(raw.ViewerRating),
			AverageRating: AverageRating(raw.RatingScores),
			TotalRatings:  len(raw.RatingScores),
			LikeCount:     raw.LikeCount,
			CommentCount:  raw.CommentCount,
			ProgressPct:   progress,
		},
	}

	// Detach slices so downstream mutation cannot corrupt cached rows.
	details.Tags = append([]string{}, raw.Book.Tags...)
	details.Chapters = append([]Chapter{}, raw.Chapters...)

	if details.Author.Name == "" {
		details.Author.Name = placeholderAuthorName
	}

	return details
}

// copyIntPtr clones an optional integer so the view model owns its value.
func copyIntPtr(p *int) *int {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
