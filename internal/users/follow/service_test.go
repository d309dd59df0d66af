// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package follow_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librohive/api/internal/platform/apperr"
	"github.com/librohive/api/internal/users/follow"
)

// fakeRepository is an in-memory [follow.Repository] keyed the same way
// as the composite primary key.
type fakeRepository struct {
	users map[string]bool
	edges map[string]bool // followerID|followingID

	writes int
}

func newFakeRepository(userIDs ...string) *fakeRepository {
	repo := &fakeRepository{users: map[string]bool{}, edges: map[string]bool{}}
	for _, id := range userIDs {
		repo.users[id] = true
	}
	return repo
}

func edgeKey(followerID, followingID string) string { return followerID + "|" + followingID }

func (f *fakeRepository) UserExists(_ context.Context, userID string) (bool, error) {
	return f.users[userID], nil
}

func (f *fakeRepository) Insert(_ context.Context, followerID, followingID string) (bool, error) {
	f.writes++
	key := edgeKey(followerID, followingID)
	if f.edges[key] {
		return false, nil
	}
	f.edges[key] = true
	return true, nil
}

func (f *fakeRepository) Delete(_ context.Context, followerID, followingID string) (bool, error) {
	f.writes++
	key := edgeKey(followerID, followingID)
	if !f.edges[key] {
		return false, nil
	}
	delete(f.edges, key)
	return true, nil
}

func (f *fakeRepository) Exists(_ context.Context, followerID, followingID string) (bool, error) {
	return f.edges[edgeKey(followerID, followingID)], nil
}

func (f *fakeRepository) CountFollowers(_ context.Context, userID string) (int, error) {
	count := 0
	for key := range f.edges {
		if key[len(key)-len(userID):] == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) CountFollowing(_ context.Context, userID string) (int, error) {
	count := 0
	for key := range f.edges {
		if key[:len(userID)] == userID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepository) ListFeatured(_ context.Context, _ int) ([]*follow.FeaturedAuthor, error) {
	return nil, nil
}

func newService(repo follow.Repository) *follow.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return follow.NewService(repo, logger)
}

/*
TestService_Toggle_PairReturnsToOriginal verifies toggle alternation and
fresh counts.
*/
func TestService_Toggle_PairReturnsToOriginal(t *testing.T) {
	repo := newFakeRepository("alice", "bob")
	service := newService(repo)
	ctx := context.Background()

	first, err := service.Toggle(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.True(t, first.Active)
	assert.Equal(t, 1, first.FollowerCount)

	second, err := service.Toggle(ctx, "alice", "bob")
	require.NoError(t, err)
	assert.False(t, second.Active)
	assert.Equal(t, 0, second.FollowerCount)
}

/*
TestService_Toggle_SelfFollowRejected pins the self-follow guard: no row
is written and no count changes.
*/
func TestService_Toggle_SelfFollowRejected(t *testing.T) {
	repo := newFakeRepository("alice")
	service := newService(repo)

	_, err := service.Toggle(context.Background(), "alice", "alice")
	require.Error(t, err)

	ae := apperr.As(err)
	require.NotNil(t, ae)
	assert.Equal(t, "VALIDATION_ERROR", ae.Code)
	assert.Zero(t, repo.writes, "self-follow must not reach the store")
	assert.Empty(t, repo.edges)
}

/*
TestService_Toggle_UnknownTarget covers the missing-user guard.
*/
func TestService_Toggle_UnknownTarget(t *testing.T) {
	repo := newFakeRepository("alice")
	service := newService(repo)

	_, err := service.Toggle(context.Background(), "alice", "ghost")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}

/*
TestService_StatusFor verifies relationship reads for both anonymous and
authenticated viewers.
*/
func TestService_StatusFor(t *testing.T) {
	repo := newFakeRepository("alice", "bob", "carol")
	service := newService(repo)
	ctx := context.Background()

	_, err := service.Toggle(ctx, "alice", "bob")
	require.NoError(t, err)
	_, err = service.Toggle(ctx, "carol", "bob")
	require.NoError(t, err)
	_, err = service.Toggle(ctx, "bob", "alice")
	require.NoError(t, err)

	t.Run("authenticated_viewer", func(t *testing.T) {
		status, err := service.StatusFor(ctx, "alice", "bob")
		require.NoError(t, err)
		assert.True(t, status.Following)
		assert.Equal(t, 2, status.FollowerCount)
		assert.Equal(t, 1, status.FolloweeCount)
	})

	t.Run("anonymous_viewer", func(t *testing.T) {
		status, err := service.StatusFor(ctx, "", "bob")
		require.NoError(t, err)
		assert.False(t, status.Following)
		assert.Equal(t, 2, status.FollowerCount)
	})
}
