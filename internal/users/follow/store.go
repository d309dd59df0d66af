// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package follow

import "context"

// # Follow Data Access

// Repository defines the data access contract for the follow graph.
type Repository interface {

	/*
		UserExists reports whether an active account row is present.

		Parameters:
		  - context: context.Context
		  - userID: string (UUID)

		Returns:
		  - bool: Row presence (soft-deleted accounts excluded)
		  - error: Database retrieval failures
	*/
	UserExists(context context.Context, userID string) (bool, error)

	/*
		Insert conditionally creates a follow edge.

		Description: INSERT ... ON CONFLICT DO NOTHING on the composite
		primary key, so racing duplicate requests observe "already
		present" instead of a constraint failure.

		Parameters:
		  - context: context.Context
		  - followerID: string (Actor)
		  - followingID: string (Target)

		Returns:
		  - bool: True if an edge was created
		  - error: Storage failures
	*/
	Insert(context context.Context, followerID, followingID string) (bool, error)

	/*
		Delete removes a follow edge if present.

		Returns:
		  - bool: True if an edge was removed
		  - error: Storage failures
	*/
	Delete(context context.Context, followerID, followingID string) (bool, error)

	/*
		Exists reports whether the edge (follower -> following) is present.
	*/
	Exists(context context.Context, followerID, followingID string) (bool, error)

	/*
		CountFollowers returns how many users follow the target.
	*/
	CountFollowers(context context.Context, userID string) (int, error)

	/*
		CountFollowing returns how many users the target follows.
	*/
	CountFollowing(context context.Context, userID string) (int, error)

	/*
		ListFeatured returns authors ranked by follower count.

		Description: Only accounts owning at least one published book
		qualify; ties break toward the newer account.

		Parameters:
		  - context: context.Context
		  - limit: int

		Returns:
		  - []*FeaturedAuthor: Ranked author projections
		  - error: Storage failures
	*/
	ListFeatured(context context.Context, limit int) ([]*FeaturedAuthor, error)
}
