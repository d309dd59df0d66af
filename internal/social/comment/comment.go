// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

/*
Package comment implements discussion threads on books and chapters.

Replies form a self-referential tree of unbounded depth. The store only
ever returns a flat, chronologically-ordered list; the tree is
materialized in memory by matching parent IDs, so there is no fixed
nesting ceiling baked into the query shape.

Core Responsibility:

  - Threads: creation of top-level comments and replies, with the book
    reference denormalized from the chapter at creation time.
  - Moderation: owners delete their own comments; a delete removes the
    comment and its direct replies in one transaction.
  - Reactions: per-comment like toggles with constraint-guarded writes.
*/
package comment

import (
	"time"

	"github.com/librohive/api/internal/core/book"
)

// Comment is a single discussion entry, optionally parented to another
// comment in the same thread.
type Comment struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	BookID    string    `json:"book_id"`
	ChapterID *string   `json:"chapter_id"`
	ParentID  *string   `json:"parent_id"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Author    book.AuthorSummary `json:"author"`
	LikeCount int                `json:"like_count"`
	IsLiked   bool               `json:"is_liked"`

	// Replies is filled by [BuildTree]; it is empty on flat rows.
	Replies []*Comment `json:"replies"`
}

// LikeResult reports the state after a comment-like toggle.
type LikeResult struct {
	Active bool `json:"active"`
	Count  int  `json:"count"`
}

// # Tree Assembly

/*
BuildTree materializes the reply tree from a flat, ordered comment list.

Description: Rows arrive oldest-first from the store. Each comment is
indexed by ID, then every row with a parent is attached to that parent's
reply list; rows whose parent is missing (deleted mid-pagination) degrade
to top-level rather than disappearing. Input order is preserved at every
level, and depth is unbounded.

Parameters:
  - flat: []*Comment (Chronological rows, replies included)

Returns:
  - []*Comment: Top-level comments with nested Replies
*/
func BuildTree(flat []*Comment) []*Comment {
	byID := make(map[string]*Comment, len(flat))
	for _, comment := range flat {
		comment.Replies = []*Comment{}
		byID[comment.ID] = comment
	}

	roots := []*Comment{}
	for _, comment := range flat {
		if comment.ParentID != nil {
			if parent, ok := byID[*comment.ParentID]; ok {
				parent.Replies = append(parent.Replies, comment)
				continue
			}
		}
		roots = append(roots, comment)
	}

	return roots
}

// # Field Identifiers

const (
	FieldBody      = "body"
	FieldBookID    = "book_id"
	FieldChapterID = "chapter_id"
	FieldParentID  = "parent_id"
)
