// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package bookmark

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/librohive/api/internal/platform/middleware"
	requestutil "github.com/librohive/api/internal/platform/request"
	"github.com/librohive/api/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for passage bookmarks.
type Handler struct {
	service *Service
}

// NewHandler constructs a new bookmark [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the bookmark endpoints. Bookmarks
// are personal state, so the whole group requires auth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Post("/", handler.create)
	router.Get("/", handler.listOwn)
	router.Get("/chapter/{id}", handler.listForChapter)
	router.Delete("/{id}", handler.delete)

	return router
}

// createRequest defines the inbound JSON schema for a new bookmark.
type createRequest struct {
	ChapterID      string  `json:"chapter_id"`
	SelectedText   string  `json:"selected_text"`
	Position       int     `json:"position"`
	SelectionStart int     `json:"selection_start"`
	SelectionEnd   int     `json:"selection_end"`
	Note           *string `json:"note"`
}

/*
POST /api/v1/bookmarks.

Description: Pins a passage selection in a chapter for the caller.

Request (Body):
  - createRequest: JSON object

Response:
  - 201: Bookmark: The persisted bookmark
  - 400: ErrInvalidJSON/Validation: Invalid input data
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: Chapter not found
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

	bookmark, err := handler.service.Create(request.Context(), userID, CreateInput{
		ChapterID:      input.ChapterID,
		SelectedText:   input.SelectedText,
		Position:       input.Position,
		SelectionStart: input.SelectionStart,
		SelectionEnd:   input.SelectionEnd,
		Note:           input.Note,
	})
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.Created(writer, bookmark)
}

/*
GET /api/v1/bookmarks.

Description: Lists all of the caller's bookmarks, newest first. This
read is best-effort and degrades to an empty list on storage failure.

Response:
  - 200: []Bookmark: The caller's bookmarks
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) listOwn(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.service.ListOwn(request.Context(), userID))
}

/*
GET /api/v1/bookmarks/chapter/{id}.

Description: Lists the caller's bookmarks within one chapter, ordered by
position, for inline rendering in the reader.

Request:
  - id: string (Chapter UUID)

Response:
  - 200: []Bookmark: Position-ordered bookmarks
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) listForChapter(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, handler.service.ListForChapter(request.Context(), userID, requestutil.ID(request, "id")))
}

/*
DELETE /api/v1/bookmarks/{id}.

Description: Removes the caller's own bookmark.

Request:
  - id: string (UUID)

Response:
  - 204: No Content: Success
  - 401: ErrUnauthorized: Missing or invalid token
  - 403: ErrForbidden: Not the bookmark's owner
  - 404: ErrNotFound: Bookmark not found
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
