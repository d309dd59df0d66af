// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

/*
Package book defines the core domain entities for the LibroHive library.

It manages the lifecycle of multi-chapter books written on the platform,
including metadata, chapter organization, and reading metrics.

Core Responsibility:

  - Publishing: Drafting, publishing, and retiring books and their chapters.
  - Discovery: Manages tags, search, trending, and the follow feed.
  - Analytics: Tracks view counts and the denormalized rating cache.

This package acts as the source of truth for all content-related data models.
*/
package book

import "time"

// # Core Entities

// Book is the central aggregate of the LibroHive domain.
// It represents a single multi-chapter work written by an author.
type Book struct {
	ID          string   `json:"id"`
	AuthorID    string   `json:"author_id"`
	Title       string   `json:"title"`
	Slug        string   `json:"slug"` // URL-safe identifier
	Description string   `json:"description"`
	CoverURL    *string  `json:"cover_image"` // nil when the author never uploaded one
	Tags        []string `json:"tags"`
	IsPublished bool     `json:"is_published"`

	// # Computed Metrics
	// ViewCount is bumped by the view-dedup pipeline; the rating cache is
	// recomputed in full whenever a rating row changes.
	ViewCount   int64    `json:"view_count"`
	RatingAvg   *float64 `json:"rating_avg"`
	RatingCount int      `json:"rating_count"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Chapter is a single ordered unit of content within a [Book].
//
// Chapter identity is stable across edits: updates diff incoming chapters
// against existing rows by ordinal and patch in place, so progress and
// bookmark rows keep their foreign keys.
type Chapter struct {
	ID        string    `json:"id"`
	BookID    string    `json:"book_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"` // rich text, opaque to the server
	Ordinal   int       `json:"ordinal"` // 1-based position within the book
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AuthorSummary is the slim author projection embedded in view models.
type AuthorSummary struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	AvatarURL *string `json:"image"`
}

// ChapterInput carries chapter content for create/update operations.
// Ordinal is the stable key used to match incoming chapters to stored rows.
type ChapterInput struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Ordinal int    `json:"ordinal"`
}

// # Search & Filtering

// Filter holds the parameters for a filtered book list query.
type Filter struct {
	Query         string   `json:"q,omitempty"` // Full-text search term
	Tags          []string `json:"tags,omitempty"`
	AuthorID      string   `json:"author_id,omitempty"`
	PublishedOnly bool     `json:"published_only,omitempty"`
	Sort          string   `json:"sort,omitempty"`     // latest, popular, rating
	SortDir       string   `json:"sort_dir,omitempty"` // "asc" or "desc"
}

// # Field Identifiers

// Global field names for validation and dynamic query mapping.
const (
	FieldID          = "id"
	FieldAuthorID    = "author_id"
	FieldTitle       = "title"
	FieldSlug        = "slug"
	FieldDescription = "description"
	FieldCoverURL    = "cover_image"
	FieldTags        = "tags"
	FieldIsPublished = "is_published"
)

// Field identifiers for the [Chapter] domain.
const (
	FieldChapterTitle   = "title"
	FieldChapterContent = "content"
	FieldChapterOrdinal = "ordinal"
	FieldChapters       = "chapters"
)
