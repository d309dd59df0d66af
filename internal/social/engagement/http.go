// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package engagement

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/librohive/api/internal/platform/middleware"
	requestutil "github.com/librohive/api/internal/platform/request"
	"github.com/librohive/api/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for likes, saves, and ratings.
type Handler struct {
	service *Service
}

// NewHandler constructs a new engagement [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register attaches the engagement endpoints to the shared /books router.
// Every route mutates per-user state, so the whole group requires auth.
func (handler *Handler) Register(router chi.Router) {
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)

		authed.Post("/{id}/like", handler.toggleLike)
		authed.Post("/{id}/save", handler.toggleSave)
		authed.Put("/{id}/rating", handler.rateBook)
	})
}

/*
POST /api/v1/books/{id}/like.

Description: Toggles the caller's like on a book. Repeating the call
alternates the state; the response always carries the fresh count.

Request:
  - id: string (Book UUID)

Response:
  - 200: ToggleResult: New state and count
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: Book not found
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

/*
POST /api/v1/books/{id}/save.

Description: Toggles the caller's reading-list entry for a book.

Request:
  - id: string (Book UUID)

Response:
  - 200: ToggleResult: New state and count
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: Book not found
*/
func (handler *Handler) toggleSave(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.ToggleSave(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

// rateRequest defines the inbound JSON schema for a rating upsert.
type rateRequest struct {
	Score int `json:"score"`
}

/*
PUT /api/v1/books/{id}/rating.

Description: Upserts the caller's star score for a book and returns the
recomputed aggregate. Scores outside [1,5] are rejected before any write.

Request:
  - id: string (Book UUID)
  - body: rateRequest

Response:
  - 200: RatingSummary: The caller's score plus the fresh aggregate
  - 400: Validation: Score out of range
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: Book not found
*/
func (handler *Handler) rateBook(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input rateRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.RateBook(request.Context(), userID, requestutil.ID(request, "id"), input.Score)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}
