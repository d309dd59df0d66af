// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

/*
Package account handles user profile management, reading preferences, and
security settings.

It provides functionalities for users to view and update their private identity
data, configure their reading experience, and manage their active device
sessions. It also exposes the public author profile that readers see when
browsing a writer's catalog.

# Architecture

  - Entities: Preferences, PublicProfile, SessionInfo (DTO).
  - Domain: This package depends on the auth package for the User entity.
  - Security: Provides session transparency and revocation mechanisms.
*/
package account

import (
	"context"
	"time"

	"github.com/librohive/api/internal/users/auth"
)

// # Domain Entities

// Preferences represents the customizable reading and UI settings for a user.
type Preferences struct {
	UserID      string    `json:"user_id"`
	Theme       string    `json:"theme"`        // 'light', 'dark', 'sepia'
	FontFamily  string    `json:"font_family"`  // 'serif', 'sans', 'mono'
	FontSize    int       `json:"font_size"`    // Reader body size in px: 12-32
	LineSpacing string    `json:"line_spacing"` // 'compact', 'normal', 'relaxed'
	PageWidth   string    `json:"page_width"`   // 'narrow', 'normal', 'wide'
	UpdatedAt   time.Time `json:"updated_at"`
}

// PublicProfile is the reader-facing view of an author's account.
// It omits private identity fields and carries the catalog counters shown
// on the author page.
type PublicProfile struct {
	ID            string    `json:"id"`
	Username      string    `json:"username"`
	DisplayName   string    `json:"display_name"`
	AvatarURL     string    `json:"avatar_url,omitempty"`
	Bio           string    `json:"bio,omitempty"`
	Website       string    `json:"website,omitempty"`
	BookCount     int64     `json:"book_count"` // Published books only
	FollowerCount int64     `json:"follower_count"`
	JoinedAt      time.Time `json:"joined_at"`
}

// SessionInfo provides a safety-mapped view of an active user session.
// It omits sensitive token hashes for transport.
type SessionInfo struct {
	ID         string    `json:"id"`
	DeviceName string    `json:"device_name"` // e.g. "Chrome on Windows"
	IPAddress  string    `json:"ip_address"`
	CreatedAt  time.Time `json:"created_at"`
	ExpiresAt  time.Time `json:"expires_at"`
	IsCurrent  bool      `json:"is_current"` // True if this session belongs to the current request
}

// # Repository Contracts

// AccountRepository defines the persistence contract for user accounts.
type AccountRepository interface {
	/*
		FindByID retrieves a user record by their unique ID.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *User: Loaded account entity
		  - error: apperr.NotFound or storage failures
	*/
	FindByID(context context.Context, id string) (*auth.User, error)

	/*
		FindPublicProfile retrieves the public author view of a user, with
		published-book and follower counters resolved.

		Parameters:
		  - context: context.Context
		  - id: string (UUID)

		Returns:
		  - *PublicProfile: Reader-facing profile
		  - error: apperr.NotFound or storage failures
	*/
	FindPublicProfile(context context.Context, id string) (*PublicProfile, error)

	/*
		Update modifies the mutable profile fields of an existing user.

		Parameters:
		  - context: context.Context
		  - user: *User (Hydrated entity with changes)

		Returns:
		  - error: Storage or constraint failures
	*/
	Update(context context.Context, user *auth.User) error

	/*
		SoftDelete flags an account as logically deleted.

		Parameters:
		  - context: context.Context
		  - id: string

		Returns:
		  - error: Execution failures
	*/
	SoftDelete(context context.Context, id string) error
}

// PreferencesRepository defines the persistence contract for reading settings.
type PreferencesRepository interface {
	/*
		FindByUserID retrieves reading preferences for a specific user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - *Preferences: Hydrated settings
		  - error: apperr.NotFound if not present
	*/
	FindByUserID(context context.Context, userID string) (*Preferences, error)

	/*
		Upsert saves or updates preferences for a user using an idempotent strategy.

		Parameters:
		  - context: context.Context
		  - prefs: *Preferences

		Returns:
		  - error: Storage failure errors
	*/
	Upsert(context context.Context, prefs *Preferences) error
}

// SessionRepository defines the visibility and revocation contract for user sessions.
type SessionRepository interface {
	/*
		FindActiveByUserID lists all valid, non-expired sessions for a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - []SessionInfo: List of active devices
		  - error: Retrieval errors
	*/
	FindActiveByUserID(context context.Context, userID string) ([]SessionInfo, error)

	/*
		Revoke marks a specific session as revoked.

		Parameters:
		  - context: context.Context
		  - userID: string (Security constraint: owner validation)
		  - sessionID: string

		Returns:
		  - error: Revocation failures
	*/
	Revoke(context context.Context, userID, sessionID string) error

	/*
		RevokeOthers revokes all active sessions except for a target session.

		Parameters:
		  - context: context.Context
		  - userID: string
		  - currentSessionID: string (The whitelist target)

		Returns:
		  - error: Revocation failures
	*/
	RevokeOthers(context context.Context, userID, currentSessionID string) error

	/*
		RevokeAll terminates every session for a user.

		Parameters:
		  - context: context.Context
		  - userID: string

		Returns:
		  - error: Revocation failures
	*/
	RevokeAll(context context.Context, userID string) error
}
