// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package progress

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/librohive/api/internal/platform/middleware"
	requestutil "github.com/librohive/api/internal/platform/request"
	"github.com/librohive/api/internal/platform/respond"
)

// # Handler Implementation

// Handler implements the HTTP layer for reading progress.
type Handler struct {
	service *Service
}

// NewHandler constructs a new progress [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] with the progress endpoints. Progress is
// always per-user state, so the whole group requires auth.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()
	router.Use(middleware.RequireAuth)

	router.Put("/chapter/{id}", handler.record)
	router.Get("/book/{id}", handler.bookSummary)

	return router
}

// recordRequest defines the inbound JSON schema for a progress observation.
type recordRequest struct {
	Progress int `json:"progress"`
}

/*
PUT /api/v1/progress/chapter/{id}.

Description: Reports an observed scroll percentage for a chapter.
Observations below the completion threshold are acknowledged but not
persisted; at or past it the chapter is stored as fully read.

Request:
  - id: string (Chapter UUID)
  - body: recordRequest

Response:
  - 200: RecordResult: Persistence outcome plus the fresh book summary
  - 400: Validation: Percentage outside [0,100]
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: Chapter not found
*/
func (handler *Handler) record(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	var input recordRequest
	if err := requestutil.DecodeJSON(request, &input); err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Record(request.Context(), userID, requestutil.ID(request, "id"), input.Progress)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
GET /api/v1/progress/book/{id}.

Description: Returns the caller's derived completion for a book.

Request:
  - id: string (Book UUID)

Response:
  - 200: BookSummary: Counts plus the derived percentage
  - 401: ErrUnauthorized: Missing or invalid token
*/
func (handler *Handler) bookSummary(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	summary, err := handler.service.BookSummary(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, summary)
}
