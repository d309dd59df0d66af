// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package book

import (
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librohive/api/internal/platform/apperr"
)

// fakeBookRepository records which lookup path the service chose and
// which mutations it attempted.
type fakeBookRepository struct {
	details *RawDetails

	idLookups   int
	slugLookups int
	increments  int
}

func (f *fakeBookRepository) List(_ context.Context, _ Filter, _ string, _, _ int) ([]*BookWithDetails, int, error) {
	return nil, 0, nil
}

func (f *fakeBookRepository) ListTrending(_ context.Context, _ string, _ int) ([]*BookWithDetails, error) {
	return nil, nil
}

func (f *fakeBookRepository) ListFeed(_ context.Context, _ string, _, _ int) ([]*BookWithDetails, int, error) {
	return nil, 0, nil
}

func (f *fakeBookRepository) FindDetails(_ context.Context, id, _ string) (*RawDetails, error) {
	f.idLookups++
	if f.details == nil || f.details.Book.ID != id {
		return nil, apperr.NotFound("book")
	}
	return f.details, nil
}

func (f *fakeBookRepository) FindDetailsBySlug(_ context.Context, slug, _ string) (*RawDetails, error) {
	f.slugLookups++
	if f.details == nil || f.details.Book.Slug != slug {
		return nil, apperr.NotFound("book")
	}
	return f.details, nil
}

func (f *fakeBookRepository) FindByID(_ context.Context, id string) (*Book, error) {
	if f.details == nil || f.details.Book.ID != id {
		return nil, apperr.NotFound("book")
	}
	book := f.details.Book
	return &book, nil
}

func (f *fakeBookRepository) FindChapter(_ context.Context, _ string) (*Chapter, error) {
	return nil, apperr.NotFound("chapter")
}

func (f *fakeBookRepository) Create(_ context.Context, _ *Book, _ []ChapterInput) error { return nil }

func (f *fakeBookRepository) Update(_ context.Context, _ *Book, _ []ChapterInput) error { return nil }

func (f *fakeBookRepository) SetPublished(_ context.Context, _ string, _ bool) error { return nil }

func (f *fakeBookRepository) Delete(_ context.Context, _ string) error { return nil }

func (f *fakeBookRepository) IncrementViewCount(_ context.Context, _ string) error {
	f.increments++
	return nil
}

func newTestService(repo BookRepository) *Service {
	return &Service{
		bookRepo: repo,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
}

/*
TestGetBook_IdentifierRouting verifies the UUID-or-slug dispatch: only a
string that actually parses as a UUID takes the primary-key path, so a
36-character slug still resolves through the slug lookup.
*/
func TestGetBook_IdentifierRouting(t *testing.T) {
	const bookID = "018f3a2e-1111-7000-8000-000000000001"
	const longSlug = "a-book-title-that-is-36-characters-x" // same length as a UUID

	repo := &fakeBookRepository{details: &RawDetails{
		Book: Book{ID: bookID, Slug: longSlug, IsPublished: true},
	}}
	service := newTestService(repo)
	ctx := context.Background()

	byID, err := service.GetBook(ctx, bookID, "")
	require.NoError(t, err)
	assert.Equal(t, bookID, byID.ID)
	assert.Equal(t, 1, repo.idLookups)

	bySlug, err := service.GetBook(ctx, longSlug, "")
	require.NoError(t, err)
	assert.Equal(t, bookID, bySlug.ID)
	assert.Equal(t, 1, repo.slugLookups, "uuid-length slug must take the slug path")
	assert.Equal(t, 1, repo.idLookups)
}

/*
TestRegisterView_UnknownBook pins the missing-book contract: the view is
not counted and nothing is incremented.
*/
func TestRegisterView_UnknownBook(t *testing.T) {
	repo := &fakeBookRepository{}
	service := newTestService(repo)

	counted, err := service.RegisterView(context.Background(), "ghost", "viewer-1")
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", apperr.As(err).Code)
	assert.False(t, counted)
	assert.Zero(t, repo.increments)
}

/*
TestNullableViewer covers the anonymous-viewer parameter: empty input
must become a typed NULL, never an empty string a uuid column would
reject.
*/
func TestNullableViewer(t *testing.T) {
	assert.Nil(t, nullableViewer(""))
	assert.Equal(t, "user-1", nullableViewer("user-1"))
}

/*
TestDeleteCascadeStatements_ForeignKeyOrder asserts the book-delete
cascade covers every dependent table exactly once and clears comment
likes before the comments they reference.
*/
func TestDeleteCascadeStatements_ForeignKeyOrder(t *testing.T) {
	statements := deleteCascadeStatements()

	dependents := []string{
		"social.commentlike",
		"social.comment",
		"library.readingprogress",
		"library.bookmark",
		"social.booklike",
		"social.booksave",
		"social.rating",
		"core.chapter",
	}
	require.Len(t, statements, len(dependents))

	position := func(table string) int {
		for i, statement := range statements {
			if strings.HasPrefix(statement, "DELETE FROM "+table+" ") {
				return i
			}
		}
		return -1
	}

	seen := map[int]bool{}
	for _, table := range dependents {
		i := position(table)
		require.NotEqual(t, -1, i, "cascade must delete from %s", table)
		assert.False(t, seen[i], "one statement per dependent table")
		seen[i] = true
	}

	assert.Less(t, position("social.commentlike"), position("social.comment"),
		"comment likes must be removed before the comments they reference")

	for _, statement := range statements {
		assert.NotContains(t, statement, "DELETE FROM core.book ",
			"the book row is deleted after the cascade, not inside it")
	}
}
