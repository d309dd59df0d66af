// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package comment

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/librohive/api/internal/platform/middleware"
	requestutil "github.com/librohive/api/internal/platform/request"
	"github.com/librohive/api/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for discussion threads.
type Handler struct {
	service *Service
}

// NewHandler constructs a new comment [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the comment endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Thread Reads
	router.Get("/book/{id}", handler.listForBook)
	router.Get("/chapter/{id}", handler.listForChapter)

	// ## Mutations (Authenticated)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/", handler.create)
		authed.Delete("/{id}", handler.delete)
		authed.Post("/{id}/like", handler.toggleLike)
	})

	return router
}

/*
GET /api/v1/comments/book/{id}.

Description: Retrieves a book's discussion as a nested reply tree. The
viewer's own like flags are resolved when authenticated.

Request:
  - id: string (Book UUID)

Response:
  - 200: []Comment: Top-level comments with nested replies
*/
func (handler *Handler) listForBook(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.ListForBook(request.Context(), requestutil.ID(request, "id"), viewerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

/*
GET /api/v1/comments/chapter/{id}.

Description: Retrieves a chapter's discussion as a nested reply tree.

Request:
  - id: string (Chapter UUID)

Response:
  - 200: []Comment: Top-level comments with nested replies
*/
func (handler *Handler) listForChapter(writer http.ResponseWriter, request *http.Request) {
	comments, err := handler.service.ListForChapter(request.Context(), requestutil.ID(request, "id"), viewerID(request))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, comments)
}

// createRequest defines the inbound JSON schema for posting a comment.
type createRequest struct {
	BookID    string `json:"book_id"`
	ChapterID string `json:"chapter_id"`
	ParentID  string `json:"parent_id"`
	Body      string `json:"body"`
}

/*
POST /api/v1/comments.

Description: Posts a top-level comment on a book or chapter, or a reply
when parent_id is given. Replies inherit their thread's references.

Request (Body):
  - createRequest: JSON object

Response:
  - 201: Comment: The persisted comment
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: Referenced parent or chapter missing
*/
func (handler *Handler) create(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input createRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	comment, err := handler.service.Create(request.Context(), userID, CreateInput{
		BookID:    input.BookID,
		ChapterID: input.ChapterID,
		ParentID:  input.ParentID,
		Body:      input.Body,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, comment)
}

/*
DELETE /api/v1/comments/{id}.

Description: Deletes the caller's own comment together with its direct
replies and their likes, atomically.

Request:
  - id: string (UUID)

Response:
  - 204: No Content: Success
  - 401: ErrUnauthorized: Missing or invalid token
  - 403: ErrForbidden: Not the comment's author
  - 404: ErrNotFound: Comment not found
*/
func (handler *Handler) delete(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	if err := handler.service.Delete(request.Context(), userID, requestutil.ID(request, "id")); err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.NoContent(writer)
}

/*
POST /api/v1/comments/{id}/like.

Description: Toggles the caller's like on a comment.

Request:
  - id: string (UUID)

Response:
  - 200: LikeResult: New state and fresh count
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: Comment not found
*/
func (handler *Handler) toggleLike(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ToggleLike(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// viewerID returns the authenticated user's ID, or "" for anonymous visits.
func viewerID(request *http.Request) string {
	if claims := requestutil.Claims(request); claims != nil {
		return claims.UserID
	}
	return ""
}
