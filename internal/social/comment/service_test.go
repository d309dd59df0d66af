// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package comment_test

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librohive/api/internal/platform/apperr"
	"github.com/librohive/api/internal/social/comment"
	"github.com/librohive/api/pkg/pointer"
)

// fakeRepository is an in-memory [comment.Repository] that mirrors the
// store's delete contract: a delete removes the comment and its direct
// replies, and the parent reference of any deeper reply is cleared the
// way the schema's SET NULL foreign key would.
type fakeRepository struct {
	comments map[string]*comment.Comment
	order    []string

	deletes int
}

func newFakeRepository(comments ...*comment.Comment) *fakeRepository {
	repo := &fakeRepository{comments: map[string]*comment.Comment{}}
	for _, c := range comments {
		repo.comments[c.ID] = c
		repo.order = append(repo.order, c.ID)
	}
	return repo
}

func (f *fakeRepository) ListForBook(_ context.Context, bookID, _ string) ([]*comment.Comment, error) {
	var flat []*comment.Comment
	for _, id := range f.order {
		if c, ok := f.comments[id]; ok && c.BookID == bookID {
			flat = append(flat, c)
		}
	}
	return flat, nil
}

func (f *fakeRepository) ListForChapter(_ context.Context, _, _ string) ([]*comment.Comment, error) {
	return nil, nil
}

func (f *fakeRepository) FindByID(_ context.Context, id string) (*comment.Comment, error) {
	c, ok := f.comments[id]
	if !ok {
		return nil, apperr.NotFound("Comment")
	}
	return c, nil
}

func (f *fakeRepository) FindChapterBook(_ context.Context, _ string) (string, error) {
	return "", apperr.NotFound("Chapter")
}

func (f *fakeRepository) Create(_ context.Context, c *comment.Comment) error {
	f.comments[c.ID] = c
	f.order = append(f.order, c.ID)
	return nil
}

func (f *fakeRepository) Delete(_ context.Context, id string) error {
	f.deletes++
	if _, ok := f.comments[id]; !ok {
		return apperr.NotFound("Comment")
	}

	// Direct replies go with the comment.
	removed := map[string]bool{id: true}
	for replyID, c := range f.comments {
		if c.ParentID != nil && *c.ParentID == id {
			removed[replyID] = true
		}
	}
	for removedID := range removed {
		delete(f.comments, removedID)
	}

	// Survivors pointing at a removed row are orphaned, not deleted.
	for _, c := range f.comments {
		if c.ParentID != nil && removed[*c.ParentID] {
			c.ParentID = nil
		}
	}
	return nil
}

func (f *fakeRepository) InsertLike(_ context.Context, _, _ string) (bool, error) {
	return true, nil
}

func (f *fakeRepository) DeleteLike(_ context.Context, _, _ string) (bool, error) {
	return false, nil
}

func (f *fakeRepository) CountLikes(_ context.Context, _ string) (int, error) {
	return 0, nil
}

func newService(repo comment.Repository) *comment.Service {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return comment.NewService(repo, logger)
}

func bookComment(id, userID string, parentID *string) *comment.Comment {
	return &comment.Comment{
		ID:       id,
		UserID:   userID,
		BookID:   "book-1",
		ParentID: parentID,
		Body:     "body " + id,
	}
}

/*
TestService_Delete_RemovesDirectReplies verifies that deleting a
top-level comment takes its direct replies with it, while deeper replies
survive as orphans and resurface at the top of the tree.
*/
func TestService_Delete_RemovesDirectReplies(t *testing.T) {
	repo := newFakeRepository(
		bookComment("c1", "alice", nil),
		bookComment("r1", "bob", pointer.To("c1")),
		bookComment("rr1", "carol", pointer.To("r1")), // reply-to-reply
		bookComment("c2", "bob", nil),
	)
	service := newService(repo)
	ctx := context.Background()

	require.NoError(t, service.Delete(ctx, "alice", "c1"))

	_, err := repo.FindByID(ctx, "c1")
	require.Error(t, err)

	_, err = repo.FindByID(ctx, "r1")
	require.Error(t, err, "direct reply must be deleted with its parent")

	tree, err := service.ListForBook(ctx, "book-1", "")
	require.NoError(t, err)
	require.Len(t, tree, 2)
	assert.Equal(t, "rr1", tree[0].ID, "orphaned reply surfaces at top level")
	assert.Equal(t, "c2", tree[1].ID)
}

/*
TestService_Delete_RequiresOwnership pins the ownership guard: a
non-author delete is forbidden and removes nothing.
*/
func TestService_Delete_RequiresOwnership(t *testing.T) {
	repo := newFakeRepository(
		bookComment("c1", "alice", nil),
		bookComment("r1", "bob", pointer.To("c1")),
	)
	service := newService(repo)

	err := service.Delete(context.Background(), "mallory", "c1")
	require.Error(t, err)
	assert.Equal(t, "FORBIDDEN", apperr.As(err).Code)
	assert.Zero(t, repo.deletes, "forbidden delete must not reach the store")
	assert.Len(t, repo.comments, 2)
}

/*
TestService_Delete_UnknownComment covers the missing-row guard.
*/
func TestService_Delete_UnknownComment(t *testing.T) {
	service := newService(newFakeRepository())

	err := service.Delete(context.Background(), "alice", "ghost")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
}
