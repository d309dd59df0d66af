// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

/*
Package follow implements the author-follow graph.

A follow is a single directed edge between two users, guarded by a
composite uniqueness constraint. Toggling alternates the edge between
present and absent; self-follows are rejected outright. The edge set
feeds the home feed and the featured-author shelf.
*/
package follow

// Result reports the state after a follow toggle.
type Result struct {
	Active        bool `json:"active"`
	FollowerCount int  `json:"follower_count"`
}

// Status is the read-only follow relationship between viewer and target.
type Status struct {
	Following     bool `json:"following"`
	FollowerCount int  `json:"follower_count"`
	FolloweeCount int  `json:"followee_count"`
}

// FeaturedAuthor is an author ranked for the discovery shelf.
type FeaturedAuthor struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	AvatarURL     *string `json:"image"`
	Bio           *string `json:"bio"`
	FollowerCount int     `json:"follower_count"`
	BookCount     int     `json:"book_count"`
}
