// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package follow

import (
	"context"
	"log/slog"

	"github.com/librohive/api/internal/platform/apperr"
)

// # Service Layer

// Service orchestrates the follow graph mutations and reads.
type Service struct {
	repo   Repository
	logger *slog.Logger
}

// NewService constructs a new [Service] with its repository.
func NewService(repo Repository, logger *slog.Logger) *Service {
	return &Service{repo: repo, logger: logger}
}

/*
Toggle alternates the actor's follow edge toward another user.

Description: Self-follows are rejected before any store access. The
mutation is a conditional insert first; an existing edge flips the call
to the delete half. The returned follower count is a fresh query after
the write.

Parameters:
  - context: context.Context
  - followerID: string (Authenticated actor)
  - followingID: string (Target user)

Returns:
  - *Result: New state and fresh follower count
  - error: Validation or persistence errors
*/
func (service *Service) Toggle(context context.Context, followerID, followingID string) (*Result, error) {
	if followerID == followingID {
		return nil, apperr.ValidationError("users cannot follow themselves")
	}

	exists, err := service.repo.UserExists(context, followingID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("user")
	}

	inserted, err := service.repo.Insert(context, followerID, followingID)
	if err != nil {
		return nil, err
	}

	active := true
	if !inserted {
		if _, err := service.repo.Delete(context, followerID, followingID); err != nil {
			return nil, err
		}
		active = false
	}

	count, err := service.repo.CountFollowers(context, followingID)
	if err != nil {
		return nil, err
	}

	service.logger.Info("follow_toggled",
		slog.String("following_id", followingID),
		slog.Bool("active", active),
	)

	return &Result{Active: active, FollowerCount: count}, nil
}

/*
StatusFor returns the viewer's relationship with a target user plus the
target's follower and followee counts.

Parameters:
  - context: context.Context
  - viewerID: string (Empty for anonymous; Following is then false)
  - targetID: string (UUID)

Returns:
  - *Status: Relationship and counts
  - error: ErrNotFound if the target is missing
*/
func (service *Service) StatusFor(context context.Context, viewerID, targetID string) (*Status, error) {
	exists, err := service.repo.UserExists(context, targetID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, apperr.NotFound("user")
	}

	status := &Status{}

	if viewerID != "" && viewerID != targetID {
		status.Following, err = service.repo.Exists(context, viewerID, targetID)
		if err != nil {
			return nil, err
		}
	}

	status.FollowerCount, err = service.repo.CountFollowers(context, targetID)
	if err != nil {
		return nil, err
	}

	status.FolloweeCount, err = service.repo.CountFollowing(context, targetID)
	if err != nil {
		return nil, err
	}

	return status, nil
}

/*
ListFeatured returns the discovery shelf of most-followed authors.

Parameters:
  - context: context.Context
  - limit: int

Returns:
  - []*FeaturedAuthor: Ranked author projections
  - error: Repository errors
*/
func (service *Service) ListFeatured(context context.Context, limit int) ([]*FeaturedAuthor, error) {
	return service.repo.ListFeatured(context, limit)
}
