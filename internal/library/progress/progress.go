// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

/*
Package progress implements per-chapter reading completion tracking.

The reader surface reports a continuous scroll percentage; the tracker
maps it to a discrete persisted state. Only the completion transition is
stored: an observed percentage at or past the threshold writes 100 for
that chapter, anything below it is never persisted. Writes are monotone
upserts, so a chapter's stored progress can only grow.

Book-level completion is always derived at read time from the chapter
rows, never stored.
*/
package progress

import "time"

// Progress is one user's persisted state for one chapter.
type Progress struct {
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	ChapterID string    `json:"chapter_id"`
	Progress  int       `json:"progress"` // percentage in [0,100]
	UpdatedAt time.Time `json:"updated_at"`
}

// RecordResult reports the outcome of a progress observation.
type RecordResult struct {
	// Persisted is false when the observation was below the completion
	// threshold and therefore discarded.
	Persisted bool `json:"persisted"`

	Book BookSummary `json:"book"`
}

// BookSummary is the derived book-level completion for one user.
type BookSummary struct {
	BookID            string `json:"book_id"`
	CompletedChapters int    `json:"completed_chapters"`
	TotalChapters     int    `json:"total_chapters"`
	Percent           int    `json:"percent"`
}

// # Field Identifiers

const (
	FieldProgress  = "progress"
	FieldChapterID = "chapter_id"
)
