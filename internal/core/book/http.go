// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

/*
Package book provides the HTTP interface for discovery and publishing.

It exposes endpoints for browsing books, reading chapters, and managing a
book's lifecycle by its owning author.

# Routing Strategy

  - Public (v1): Discovery endpoints accessible to all visitors (GET /books).
  - Restricted (v1): Mutative endpoints requiring the owning author (POST, PATCH, DELETE).

The handler translates between the web/JSON layer and the internal domain [Service].
*/
package book

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/librohive/api/internal/platform/constants"
	"github.com/librohive/api/internal/platform/middleware"
	requestutil "github.com/librohive/api/internal/platform/request"
	"github.com/librohive/api/internal/platform/respond"
	"github.com/librohive/api/internal/platform/validate"
	"github.com/librohive/api/pkg/pagination"
	"github.com/librohive/api/pkg/query"
	"github.com/librohive/api/pkg/slice"
)

// # Handler Implementation

// Handler implements the HTTP layer for book publishing and discovery.
// It translates web requests into domain service calls.
type Handler struct {
	service *Service
}

// NewHandler constructs a new book [Handler] with its service dependency.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register attaches the book domain's endpoints to an existing router.
//
// The engagement handler shares the /books subtree, so the composition root
// passes the same router to both.
//
// # Routing Strategy
//
//   - Discovery (Public): Accessible by all visitors for browsing.
//   - Publishing (Restricted): Requires authentication; ownership is
//     enforced in the service layer.
func (handler *Handler) Register(router chi.Router) {

	// ## Public Discovery Endpoints
	router.Get("/", handler.listBooks)
	router.Get("/trending", handler.listTrending)
	router.Get("/{identifier}", handler.getBook)
	router.Post("/{id}/views", handler.registerView)

	// ## Publishing (Authenticated)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Get("/feed", handler.listFeed)
		authed.Post("/", handler.createBook)
		authed.Patch("/{id}", handler.updateBook)
		authed.Post("/{id}/publish", handler.setPublished(true))
		authed.Post("/{id}/unpublish", handler.setPublished(false))
		authed.Delete("/{id}", handler.deleteBook)
	})
}

// ChapterRoutes returns the reader-facing chapter endpoints, mounted
// separately so chapter URLs stay flat (/chapters/{id}).
func (handler *Handler) ChapterRoutes() chi.Router {
	router := chi.NewRouter()
	router.Get("/{id}", handler.getChapter)
	return router
}

// # Discovery Endpoints

/*
GET /api/v1/books.

Description: Retrieves a paginated list of books from the library.
Supports filtering by tags, author, and full-text search. Engagement
scalars are resolved relative to the authenticated viewer when present.

Request:
  - q: string (Full-text search)
  - tags: []string (Any-match tag filter)
  - author: string (Author UUID)
  - sort: string (latest, popular, rating, az, za)
  - dir: string (asc, desc)
  - limit: int
  - page: int

Response:
  - 200: []BookWithDetails: Paginated list of view models
*/
func (handler *Handler) listBooks(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)
	queryParams := request.URL.Query()

	filter := Filter{
		Query:         queryParams.Get("q"),
		Tags:          query.StringSlice(queryParams.Get("tags")),
		AuthorID:      queryParams.Get("author"),
		Sort:          queryParams.Get("sort"),
		SortDir:       queryParams.Get("dir"),
		PublishedOnly: false,
	}

	books, total, err := handler.service.ListBooks(request.Context(), filter, viewerID(request), paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/books/trending.

Description: Retrieves the most-viewed published books for the home page.

Request:
  - limit: int

Response:
  - 200: []BookWithDetails: Ranked list
*/
func (handler *Handler) listTrending(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	books, err := handler.service.ListTrending(request.Context(), viewerID(request), paginationParams.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, books)
}

/*
GET /api/v1/books/feed.

Description: Retrieves recent books from authors the viewer follows.

Response:
  - 200: []BookWithDetails: Chronological list
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) listFeed(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	paginationParams := pagination.FromRequest(request)

	books, total, err := handler.service.ListFeed(request.Context(), userID, paginationParams.Limit, paginationParams.Offset())
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Paginated(writer, books, pagination.NewMeta(paginationParams.Page, paginationParams.Limit, total))
}

/*
GET /api/v1/books/{identifier}.

Description: Retrieves the full view model for a book using either its
UUID or unique title slug. Drafts are only visible to their author.

Request:
  - identifier: string (UUID or Slug)

Response:
  - 200: BookWithDetails: Success
  - 404: ErrNotFound: Book not found or not visible
*/
func (handler *Handler) getBook(writer http.ResponseWriter, request *http.Request) {
	identifier := requestutil.ID(request, "identifier")

	details, err := handler.service.GetBook(request.Context(), identifier, viewerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, details)
}

/*
GET /api/v1/chapters/{id}.

Description: Retrieves a single chapter's content for the reader surface.

Request:
  - id: string (UUID)

Response:
  - 200: Chapter: Success
  - 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) getChapter(writer http.ResponseWriter, request *http.Request) {
	chapterID := requestutil.ID(request, "id")

	chapter, err := handler.service.GetChapter(request.Context(), chapterID)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, chapter)
}

// # View Counting

// viewCountResponse reports whether a view-registration call was counted.
type viewCountResponse struct {
	Counted bool `json:"counted"`
}

/*
POST /api/v1/books/{id}/views.

Description: Registers a view for the book. Deduplication is layered:
a 24h marker cookie short-circuits repeat visits from the same browser,
and a server-side marker keyed by user ID (or client IP for anonymous
visitors) suppresses repeats even when cookies were cleared.

Request:
  - id: string (UUID)

Response:
  - 200: viewCountResponse: Whether the view incremented the counter
*/
func (handler *Handler) registerView(writer http.ResponseWriter, request *http.Request) {
	bookID := requestutil.ID(request, "id")

	// Cookie layer: the marker alone suppresses the increment.
	cookieName := constants.ViewCookiePrefix + bookID
	if _, err := request.Cookie(cookieName); err == nil {
		respond.OK(writer, viewCountResponse{Counted: false})
		return
	}

	viewerKey := viewerID(request)
	if viewerKey == "" {
		viewerKey = middleware.RealIP(request)
	}

	counted, err := handler.service.RegisterView(request.Context(), bookID, viewerKey)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	http.SetCookie(writer, &http.Cookie{
		Name:     cookieName,
		Value:    "1",
		Path:     "/",
		MaxAge:   int(constants.ViewDedupTTL / time.Second),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})

	respond.OK(writer, viewCountResponse{Counted: counted})
}

// # Request Payloads

// chapterPayload defines the inbound JSON schema for one chapter.
type chapterPayload struct {
	Title   string `json:"title"`
	Content string `json:"content"`
	Ordinal int    `json:"ordinal"`
}

// bookPayload defines the inbound JSON schema for book create/update.
type bookPayload struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	CoverURL    *string          `json:"cover_image"`
	Tags        []string         `json:"tags"`
	IsPublished bool             `json:"is_published"`
	Chapters    []chapterPayload `json:"chapters"`
}

// chapterInputs converts the wire payload to domain chapter inputs.
func (payload bookPayload) chapterInputs() []ChapterInput {
	return slice.Map(payload.Chapters, func(chapter chapterPayload) ChapterInput {
		return ChapterInput{
			Title:   chapter.Title,
			Content: chapter.Content,
			Ordinal: chapter.Ordinal,
		}
	})
}

// # Publishing Endpoints

/*
POST /api/v1/books.

Description: Creates a new book owned by the authenticated user, together
with its initial chapters. Slugs are auto-generated from the title.

Request (Body):
  - bookPayload: JSON object

Response:
  - 201: Book: Created book object
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) createBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input bookPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	v := &validate.Validator{}
	v.Required("title", input.Title).MaxLen("title", input.Title, 300)
	if err := v.Err(); err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookDto := &Book{
		AuthorID:    userID,
		Title:       input.Title,
		Description: input.Description,
		CoverURL:    input.CoverURL,
		Tags:        input.Tags,
		IsPublished: input.IsPublished,
	}

	if err := handler.service.CreateBook(request.Context(), bookDto, input.chapterInputs()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, bookDto)
}

/*
PATCH /api/v1/books/{id}.

Description: Applies updates to a book owned by the authenticated user.
The chapter set in the body is the full desired state; stored chapters
are reconciled against it by ordinal, in place.

Request:
  - id: string (UUID)
  - body: bookPayload

Response:
  - 200: Book: Updated book object
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Missing or invalid token
  - 403: ErrForbidden: Not the owning author
  - 404: ErrNotFound: Book not found
*/
func (handler *Handler) updateBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID := requestutil.ID(request, "id")

	var input bookPayload
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookDto := &Book{
		ID:          bookID,
		Title:       input.Title,
		Description: input.Description,
		CoverURL:    input.CoverURL,
		Tags:        input.Tags,
	}

	if err := handler.service.UpdateBook(request.Context(), userID, bookDto, input.chapterInputs()); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, bookDto)
}

/*
POST /api/v1/books/{id}/publish and /unpublish.

Description: Flips a book between draft and published state.

Request:
  - id: string (UUID)

Response:
  - 204: No Content: Success
  - 401: ErrUnauthorized: Missing or invalid token
  - 403: ErrForbidden: Not the owning author
  - 404: ErrNotFound: Book not found
*/
func (handler *Handler) setPublished(published bool) http.HandlerFunc {
	return func(writer http.ResponseWriter, request *http.Request) {
		userID, err := requestutil.RequiredUserID(request)
		if err != nil {
			respond.Error(writer, request, err)
			return
		}

		bookID := requestutil.ID(request, "id")

		if err := handler.service.SetPublished(request.Context(), userID, bookID, published); err != nil {
			respond.Error(writer, request, err)
			return
		}

		respond.NoContent(writer)
	}
}

/*
DELETE /api/v1/books/{id}.

Description: Deletes a book and all dependent engagement rows atomically.

Request:
  - id: string (UUID)

Response:
  - 204: No Content: Success
  - 401: ErrUnauthorized: Missing or invalid token
  - 403: ErrForbidden: Not the owning author
  - 404: ErrNotFound: Book not found
*/
func (handler *Handler) deleteBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	bookID := requestutil.ID(request, "id")

	if err := handler.service.DeleteBook(request.Context(), userID, bookID); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

// # Helpers

// viewerID returns the authenticated user's ID, or "" for anonymous visits.
func viewerID(request *http.Request) string {
	if claims := requestutil.Claims(request); claims != nil {
		return claims.UserID
	}
	return ""
}
