// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package follow

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/librohive/api/internal/platform/middleware"
	requestutil "github.com/librohive/api/internal/platform/request"
	"github.com/librohive/api/internal/platform/respond"
	"github.com/librohive/api/pkg/pagination"
)

// # Handler Implementation

// Handler implements the HTTP layer for the follow graph.
type Handler struct {
	service *Service
}

// NewHandler constructs a new follow [Handler].
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Routes returns a [chi.Router] configured with the follow endpoints.
func (handler *Handler) Routes() chi.Router {
	router := chi.NewRouter()

	// ## Public Reads
	router.Get("/featured", handler.listFeatured)
	router.Get("/{id}/status", handler.status)

	// ## Mutations (Authenticated)
	router.Group(func(authed chi.Router) {
		authed.Use(middleware.RequireAuth)
		authed.Post("/{id}", handler.toggle)
	})

	return router
}

/*
POST /api/v1/follows/{id}.

Description: Toggles the caller's follow edge toward another user.
Self-follow attempts are rejected with a validation error.

Request:
  - id: string (Target user UUID)

Response:
  - 200: Result: New state and fresh follower count
  - 400: Validation: Self-follow attempt
  - 401: ErrUnauthorized: Missing or invalid token
  - 404: ErrNotFound: Target user not found
*/
func (handler *Handler) toggle(writer http.ResponseWriter, request *http.Request) {
	userID, err := requestutil.RequiredUserID(request)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	result, err := handler.service.Toggle(request.Context(), userID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, result)
}

/*
GET /api/v1/follows/{id}/status.

Description: Returns the viewer's relationship with a user plus that
user's follower and followee counts.

Request:
  - id: string (Target user UUID)

Response:
  - 200: Status: Relationship and counts
  - 404: ErrNotFound: Target user not found
*/
func (handler *Handler) status(writer http.ResponseWriter, request *http.Request) {
	viewerID := ""
	if claims := requestutil.Claims(request); claims != nil {
		viewerID = claims.UserID
	}

	status, err := handler.service.StatusFor(request.Context(), viewerID, requestutil.ID(request, "id"))
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, status)
}

/*
GET /api/v1/follows/featured.

Description: Returns the most-followed authors for the discovery shelf.

Request:
  - limit: int

Response:
  - 200: []FeaturedAuthor: Ranked authors
*/
func (handler *Handler) listFeatured(writer http.ResponseWriter, request *http.Request) {
	paginationParams := pagination.FromRequest(request)

	authors, err := handler.service.ListFeatured(request.Context(), paginationParams.Limit)
	if err != nil {
		respond.Error(writer, request, err)
		return
	}

	respond.OK(writer, authors)
}
