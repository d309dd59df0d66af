// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package book

import (
	"context"
	"log/slog"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/librohive/api/internal/platform/apperr"
	"github.com/librohive/api/internal/platform/constants"
	"github.com/librohive/api/internal/platform/validate"
	"github.com/librohive/api/pkg/slug"
	"github.com/librohive/api/pkg/uuid"
)

// # Service Layer

// Service orchestrates the business logic for the book library.
// It acts as the primary entry point for publishing and discovery.
type Service struct {
	bookRepo BookRepository
	cache    *redis.Client
	logger   *slog.Logger
}

// NewService constructs a new [Service] with its required dependencies.
func NewService(bookRepo BookRepository, cache *redis.Client, logger *slog.Logger) *Service {
	return &Service{
		bookRepo: bookRepo,
		cache:    cache,
		logger:   logger,
	}
}

// # Discovery

/*
ListBooks retrieves a paginated and filtered collection of view models.

Description: This method orchestrates the discovery phase of the library.
Filter criteria are passed to the repository for database-level filtering;
per-row engagement scalars are already reduced relative to the viewer.

Parameters:
  - context: context.Context
  - filter: Filter (Criteria for tags, search, author, sorting)
  - viewerID: string (Empty for anonymous browsing)
  - limit: int (Max records to return)
  - offset: int (Pagination cursor)

Returns:
  - []*BookWithDetails: Slice of presentation-ready records
  - int: Total count of records matching the filter
  - error: System or repository level errors
*/
func (service *Service) ListBooks(context context.Context, filter Filter, viewerID string, limit, offset int) ([]*BookWithDetails, int, error) {

	// Search terms shorter than two characters match nearly everything
	// and are treated as no search at all.
	filter.Query = strings.TrimSpace(filter.Query)
	if len(filter.Query) < 2 {
		filter.Query = ""
	}

	return service.bookRepo.List(context, filter, viewerID, limit, offset)
}

/*
GetBook fetches a single book view model by UUID or SEO slug.

Description: The lookup strategy is determined by the identifier format.
Drafts are only visible to their author; everyone else gets NotFound so
unpublished work cannot be probed for.

Parameters:
  - context: context.Context
  - identifier: string (UUID or Slug)
  - viewerID: string (Empty for anonymous browsing)

Returns:
  - *BookWithDetails: The presentation-ready view model
  - error: ErrNotFound if no visible match is found
*/
func (service *Service) GetBook(context context.Context, identifier, viewerID string) (*BookWithDetails, error) {
	var raw *RawDetails
	var err error

	// Identity format detection
	if uuid.IsValid(identifier) {
		raw, err = service.bookRepo.FindDetails(context, identifier, viewerID)
	} else {
		raw, err = service.bookRepo.FindDetailsBySlug(context, identifier, viewerID)
	}
	if err != nil {
		return nil, err
	}

	// Draft visibility is restricted to the owning author.
	if !raw.Book.IsPublished && raw.Book.AuthorID != viewerID {
		return nil, apperr.NotFound("book")
	}

	return BuildDetails(*raw), nil
}

/*
ListTrending returns the most-viewed published books.

Parameters:
  - context: context.Context
  - viewerID: string
  - limit: int

Returns:
  - []*BookWithDetails: Ranked view models
  - error: Repository errors
*/
func (service *Service) ListTrending(context context.Context, viewerID string, limit int) ([]*BookWithDetails, error) {
	return service.bookRepo.ListTrending(context, viewerID, limit)
}

/*
ListFeed returns recent books from authors the viewer follows.

Parameters:
  - context: context.Context
  - viewerID: string (Required, authenticated)
  - limit: int
  - offset: int

Returns:
  - []*BookWithDetails: Chronological view models
  - int: Total matching books
  - error: Repository errors
*/
func (service *Service) ListFeed(context context.Context, viewerID string, limit, offset int) ([]*BookWithDetails, int, error) {
	return service.bookRepo.ListFeed(context, viewerID, limit, offset)
}

// # Publishing

/*
CreateBook initialises a new book with its chapters.

Description: Performs business validation on the metadata, generates a
stable UUID v7 identity and an SEO slug, normalises chapter ordinals to a
contiguous 1-based sequence, and persists everything in one transaction.

Parameters:
  - context: context.Context
  - book: *Book (The entity to be persisted; AuthorID must be set)
  - chapters: []ChapterInput (Ordered content)

Returns:
  - error: Validation or persistence errors
*/
func (service *Service) CreateBook(context context.Context, book *Book, chapters []ChapterInput) error {

	// Business attribute validation
	validator := &validate.Validator{}
	validator.Required(FieldTitle, book.Title).MaxLen(FieldTitle, book.Title, 300)
	validator.MaxLen(FieldDescription, book.Description, 5000)
	validateChapters(validator, chapters)

	if err := validator.Err(); err != nil {
		return err
	}

	// Identity & Slug generation
	if book.ID == "" {
		book.ID = uuid.New()
	}
	if book.Slug == "" {
		book.Slug = slug.From(book.Title)
	}
	if book.Tags == nil {
		book.Tags = []string{}
	}

	normalizeOrdinals(chapters)

	if err := service.bookRepo.Create(context, book, chapters); err != nil {
		return err
	}

	service.logger.Info("book_created",
		slog.String("book_id", book.ID),
		slog.String("author_id", book.AuthorID),
		slog.Int("chapters", len(chapters)),
	)

	return nil
}

/*
UpdateBook applies modifications to an existing book and its chapters.

Description: Only the owning author may edit. Chapters are reconciled by
ordinal so rows keep their identity across edits; progress and bookmarks
tied to surviving chapters are preserved, rows for removed ordinals are
purged with them.

Parameters:
  - context: context.Context
  - actorID: string (Authenticated user)
  - book: *Book (Target ID and modified attributes)
  - chapters: []ChapterInput (Full desired chapter set)

Returns:
  - error: Ownership, validation, or persistence errors
*/
func (service *Service) UpdateBook(context context.Context, actorID string, book *Book, chapters []ChapterInput) error {
	existing, err := service.bookRepo.FindByID(context, book.ID)
	if err != nil {
		return err
	}
	if existing.AuthorID != actorID {
		return apperr.Forbidden("only the author can edit this book")
	}

	validator := &validate.Validator{}
	if book.Title != "" {
		validator.MaxLen(FieldTitle, book.Title, 300)
	}
	if book.Slug != "" {
		validator.Slug(FieldSlug, book.Slug)
	}
	validateChapters(validator, chapters)

	if err := validator.Err(); err != nil {
		return err
	}

	if book.Tags == nil {
		book.Tags = []string{}
	}

	normalizeOrdinals(chapters)

	if err := service.bookRepo.Update(context, book, chapters); err != nil {
		return err
	}

	service.logger.Info("book_updated", slog.String("book_id", book.ID))

	return nil
}

/*
SetPublished flips a book between draft and published state.

Parameters:
  - context: context.Context
  - actorID: string (Authenticated user)
  - bookID: string (UUID)
  - published: bool

Returns:
  - error: Ownership or persistence errors
*/
func (service *Service) SetPublished(context context.Context, actorID, bookID string, published bool) error {
	existing, err := service.bookRepo.FindByID(context, bookID)
	if err != nil {
		return err
	}
	if existing.AuthorID != actorID {
		return apperr.Forbidden("only the author can change publication state")
	}

	if err := service.bookRepo.SetPublished(context, bookID, published); err != nil {
		return err
	}

	service.logger.Info("book_publication_changed",
		slog.String("book_id", bookID),
		slog.Bool("published", published),
	)

	return nil
}

/*
DeleteBook removes a book and all dependent engagement rows.

Description: The repository runs the whole cascade in a single
transaction, so a mid-sequence failure leaves the book intact.

Parameters:
  - context: context.Context
  - actorID: string (Authenticated user)
  - bookID: string (UUID)

Returns:
  - error: Ownership or persistence errors
*/
func (service *Service) DeleteBook(context context.Context, actorID, bookID string) error {
	existing, err := service.bookRepo.FindByID(context, bookID)
	if err != nil {
		return err
	}
	if existing.AuthorID != actorID {
		return apperr.Forbidden("only the author can delete this book")
	}

	if err := service.bookRepo.Delete(context, bookID); err != nil {
		return err
	}

	service.logger.Warn("book_deleted", slog.String("book_id", bookID))

	return nil
}

// # View Counting

/*
RegisterView counts a book view at most once per viewer per day.

Description: Deduplication is two-layered and best-effort. The handler
suppresses repeat views carrying the marker cookie; this method adds a
server-side Redis SETNX keyed by the viewer identity (user ID, or client
IP for anonymous visitors) with a 24h TTL, so clearing cookies does not
inflate the counter. A Redis outage degrades to counting the view rather
than failing the page.

Parameters:
  - context: context.Context
  - bookID: string (UUID)
  - viewerKey: string (User ID or client IP)

Returns:
  - bool: Whether the view was counted
  - error: ErrNotFound for unknown books, or counter update failure
*/
func (service *Service) RegisterView(context context.Context, bookID, viewerKey string) (bool, error) {

	// Unknown books must 404, not silently count or set a marker.
	if _, err := service.bookRepo.FindByID(context, bookID); err != nil {
		return false, err
	}

	markerKey := constants.RedisPrefixViewMarker + bookID + ":" + viewerKey

	fresh, err := service.cache.SetNX(context, markerKey, 1, constants.ViewDedupTTL).Result()
	if err != nil {
		// Dedup is best-effort; count the view and move on.
		service.logger.Warn("view_dedup_unavailable", slog.Any("error", err))
		fresh = true
	}
	if !fresh {
		return false, nil
	}

	if err := service.bookRepo.IncrementViewCount(context, bookID); err != nil {
		return false, err
	}

	return true, nil
}

// # Chapter Access

/*
GetChapter returns a chapter's content for the reader surface.

Parameters:
  - context: context.Context
  - chapterID: string (UUID)

Returns:
  - *Chapter: The content row
  - error: ErrNotFound if missing
*/
func (service *Service) GetChapter(context context.Context, chapterID string) (*Chapter, error) {
	return service.bookRepo.FindChapter(context, chapterID)
}

// # Internal Helpers

// validateChapters enforces per-chapter constraints for create and update.
func validateChapters(validator *validate.Validator, chapters []ChapterInput) {
	for _, chapter := range chapters {
		validator.Required(FieldChapterTitle, chapter.Title).MaxLen(FieldChapterTitle, chapter.Title, 300)
		validator.Required(FieldChapterContent, chapter.Content)
	}
}

// normalizeOrdinals rewrites chapter ordinals to a contiguous 1-based
// sequence in input order, so client gaps never reach the store.
func normalizeOrdinals(chapters []ChapterInput) {
	for i := range chapters {
		chapters[i].Ordinal = i + 1
	}
}
