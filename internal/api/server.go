// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/librohive/api/internal/core/book"
	"github.com/librohive/api/internal/library/bookmark"
	"github.com/librohive/api/internal/library/progress"
	"github.com/librohive/api/internal/platform/config"
	"github.com/librohive/api/internal/platform/constants"
	"github.com/librohive/api/internal/platform/middleware"
	"github.com/librohive/api/internal/social/comment"
	"github.com/librohive/api/internal/social/engagement"
	"github.com/librohive/api/internal/users/account"
	"github.com/librohive/api/internal/users/auth"
	"github.com/librohive/api/internal/users/follow"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
//
// # Usage
//
// New domains add a field here — no other change to server.go is required.
type Handlers struct {
	// Liveness is the /health handler — always returns 200 if process is alive.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler — returns 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Auth handles authentication routes (register, login, refresh, logout).
	Auth *auth.Handler

	// Book handles the catalog: discovery, publishing, chapters, views.
	Book *book.Handler

	// Engagement handles likes, saves, and ratings on books.
	Engagement *engagement.Handler

	// Comment handles threaded discussion on books and chapters.
	Comment *comment.Handler

	// Progress handles per-chapter reading progress tracking.
	Progress *progress.Handler

	// Bookmark handles passage bookmarks inside chapters.
	Bookmark *bookmark.Handler

	// Follow handles the author follow graph and featured authors.
	Follow *follow.Handler

	// Account handles profiles, reading preferences, and sessions.
	Account *account.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := chi.NewRouter()

	// # Middleware Chain
	// Global middleware applied in order of execution.
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	// Unauthenticated health probes for container orchestration.
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	// Domain-specific route groups mounted under versioned prefix.
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())

		// Books and per-book engagement share one subtree.
		api.Route("/books", func(books chi.Router) {
			h.Book.Register(books)
			h.Engagement.Register(books)
		})
		api.Mount("/chapters", h.Book.ChapterRoutes())

		api.Mount("/comments", h.Comment.Routes())
		api.Mount("/progress", h.Progress.Routes())
		api.Mount("/bookmarks", h.Bookmark.Routes())
		api.Mount("/follows", h.Follow.Routes())
		api.Mount("/users", h.Account.Routes())
	})

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
