// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

/*
Package bookmark implements passage bookmarks inside chapters.

A bookmark pins a selected text span at a character position within a
chapter, optionally annotated with a private note. Bookmarks are personal
state: only the owner can list or delete them.
*/
package bookmark

import "time"

// Bookmark is a saved passage selection within a chapter.
type Bookmark struct {
	ID        string  `json:"id"`
	UserID    string  `json:"user_id"`
	BookID    string  `json:"book_id"`
	ChapterID string  `json:"chapter_id"`

	SelectedText   string  `json:"selected_text"`
	Position       int     `json:"position"` // character offset of the selection anchor
	SelectionStart int     `json:"selection_start"`
	SelectionEnd   int     `json:"selection_end"`
	Note           *string `json:"note"`

	CreatedAt time.Time `json:"created_at"`
}

// # Field Identifiers

const (
	FieldSelectedText = "selected_text"
	FieldChapterID    = "chapter_id"
	FieldPosition     = "position"
)
