// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package comment_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librohive/api/internal/social/comment"
	"github.com/librohive/api/pkg/pointer"
)

func flatComment(id string, parentID *string, minute int) *comment.Comment {
	return &comment.Comment{
		ID:        id,
		ParentID:  parentID,
		Body:      "body " + id,
		CreatedAt: time.Date(2026, 8, 1, 12, minute, 0, 0, time.UTC),
	}
}

/*
TestBuildTree_NestsRepliesByParent checks multi-level assembly from one
flat chronological list.
*/
func TestBuildTree_NestsRepliesByParent(t *testing.T) {
	flat := []*comment.Comment{
		flatComment("c1", nil, 0),
		flatComment("c2", nil, 1),
		flatComment("r1", pointer.To("c1"), 2),
		flatComment("r2", pointer.To("c1"), 3),
		flatComment("rr1", pointer.To("r1"), 4), // grandchild: depth is unbounded
	}

	roots := comment.BuildTree(flat)

	require.Len(t, roots, 2)
	assert.Equal(t, "c1", roots[0].ID)
	assert.Equal(t, "c2", roots[1].ID)

	require.Len(t, roots[0].Replies, 2)
	assert.Equal(t, "r1", roots[0].Replies[0].ID)
	assert.Equal(t, "r2", roots[0].Replies[1].ID)

	require.Len(t, roots[0].Replies[0].Replies, 1)
	assert.Equal(t, "rr1", roots[0].Replies[0].Replies[0].ID)

	assert.Empty(t, roots[1].Replies)
}

/*
TestBuildTree_OrphanedReplyDegradesToRoot verifies a reply whose parent
is missing surfaces at top level instead of vanishing.
*/
func TestBuildTree_OrphanedReplyDegradesToRoot(t *testing.T) {
	flat := []*comment.Comment{
		flatComment("c1", nil, 0),
		flatComment("orphan", pointer.To("deleted-parent"), 1),
	}

	roots := comment.BuildTree(flat)

	require.Len(t, roots, 2)
	assert.Equal(t, "orphan", roots[1].ID)
}

/*
TestBuildTree_Empty confirms the empty input contract.
*/
func TestBuildTree_Empty(t *testing.T) {
	assert.Empty(t, comment.BuildTree(nil))
	assert.Empty(t, comment.BuildTree([]*comment.Comment{}))
}
