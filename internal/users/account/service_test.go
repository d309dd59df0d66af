// Copyright (c) 2026 LibroHive. All rights reserved.
// Author: dev@librohive.app

package account

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/librohive/api/internal/platform/apperr"
	"github.com/librohive/api/internal/users/auth"
)

// # Test Fakes

type fakeAccountRepository struct {
	users    map[string]*auth.User
	profiles map[string]*PublicProfile
	updates  int
}

func newFakeAccountRepository() *fakeAccountRepository {
	return &fakeAccountRepository{
		users:    map[string]*auth.User{},
		profiles: map[string]*PublicProfile{},
	}
}

func (f *fakeAccountRepository) FindByID(_ context.Context, id string) (*auth.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperr.NotFound("Account")
	}
	clone := *user
	return &clone, nil
}

func (f *fakeAccountRepository) FindPublicProfile(_ context.Context, id string) (*PublicProfile, error) {
	profile, ok := f.profiles[id]
	if !ok {
		return nil, apperr.NotFound("Author")
	}
	clone := *profile
	return &clone, nil
}

func (f *fakeAccountRepository) Update(_ context.Context, user *auth.User) error {
	f.updates++
	clone := *user
	f.users[user.ID] = &clone
	return nil
}

func (f *fakeAccountRepository) SoftDelete(_ context.Context, id string) error {
	delete(f.users, id)
	return nil
}

type fakePreferencesRepository struct {
	prefs map[string]*Preferences
}

func (f *fakePreferencesRepository) FindByUserID(_ context.Context, userID string) (*Preferences, error) {
	p, ok := f.prefs[userID]
	if !ok {
		return nil, apperr.NotFound("Preferences")
	}
	return p, nil
}

func (f *fakePreferencesRepository) Upsert(_ context.Context, prefs *Preferences) error {
	if f.prefs == nil {
		f.prefs = map[string]*Preferences{}
	}
	f.prefs[prefs.UserID] = prefs
	return nil
}

type fakeSessionRepository struct {
	revokedAllFor []string
}

func (f *fakeSessionRepository) FindActiveByUserID(_ context.Context, _ string) ([]SessionInfo, error) {
	return nil, nil
}

func (f *fakeSessionRepository) Revoke(_ context.Context, _, _ string) error { return nil }

func (f *fakeSessionRepository) RevokeOthers(_ context.Context, _, _ string) error { return nil }

func (f *fakeSessionRepository) RevokeAll(_ context.Context, userID string) error {
	f.revokedAllFor = append(f.revokedAllFor, userID)
	return nil
}

func newTestService(accounts *fakeAccountRepository, sessions *fakeSessionRepository) (*Service, *fakePreferencesRepository) {
	prefs := &fakePreferencesRepository{prefs: map[string]*Preferences{}}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	return NewService(accounts, prefs, sessions, logger), prefs
}

// # Tests

func TestService_UpdateProfile_PartialDelta(t *testing.T) {
	accounts := newFakeAccountRepository()
	accounts.users["user-1"] = &auth.User{
		ID:          "user-1",
		Username:    "amara",
		DisplayName: "Amara O.",
		Bio:         "Writes mysteries.",
		Website:     "https://amara.example",
	}
	service, _ := newTestService(accounts, &fakeSessionRepository{})

	newBio := "Writes cozy mysteries."
	updated, err := service.UpdateProfile(context.Background(), "user-1", UpdateProfileInput{
		Bio: &newBio,
	})
	require.NoError(t, err)

	// Only the provided field changes; everything else is preserved.
	assert.Equal(t, "Writes cozy mysteries.", updated.Bio)
	assert.Equal(t, "Amara O.", updated.DisplayName)
	assert.Equal(t, "https://amara.example", updated.Website)
	assert.Equal(t, 1, accounts.updates)
}

func TestService_UpdateProfile_UnknownUser(t *testing.T) {
	accounts := newFakeAccountRepository()
	service, _ := newTestService(accounts, &fakeSessionRepository{})

	name := "Ghost"
	_, err := service.UpdateProfile(context.Background(), "missing", UpdateProfileInput{DisplayName: &name})
	require.Error(t, err)
	assert.True(t, apperr.IsNotFound(err))
	assert.Zero(t, accounts.updates)
}

func TestService_GetPublicProfile_DisplayNameFallback(t *testing.T) {
	accounts := newFakeAccountRepository()
	accounts.profiles["author-1"] = &PublicProfile{
		ID:            "author-1",
		Username:      "kenji",
		DisplayName:   "",
		BookCount:     4,
		FollowerCount: 120,
	}
	service, _ := newTestService(accounts, &fakeSessionRepository{})

	profile, err := service.GetPublicProfile(context.Background(), "author-1")
	require.NoError(t, err)
	assert.Equal(t, "kenji", profile.DisplayName)
	assert.EqualValues(t, 4, profile.BookCount)
	assert.EqualValues(t, 120, profile.FollowerCount)
}

func TestService_GetPreferences_DefaultsWhenUnset(t *testing.T) {
	service, _ := newTestService(newFakeAccountRepository(), &fakeSessionRepository{})

	prefs, err := service.GetPreferences(context.Background(), "user-1")
	require.NoError(t, err)
	assert.Equal(t, "light", prefs.Theme)
	assert.Equal(t, "serif", prefs.FontFamily)
	assert.Equal(t, 18, prefs.FontSize)
	assert.Equal(t, "normal", prefs.LineSpacing)
}

func TestService_DeleteAccount_RevokesAllSessions(t *testing.T) {
	accounts := newFakeAccountRepository()
	accounts.users["user-1"] = &auth.User{ID: "user-1"}
	sessions := &fakeSessionRepository{}
	service, _ := newTestService(accounts, sessions)

	require.NoError(t, service.DeleteAccount(context.Background(), "user-1"))
	assert.Equal(t, []string{"user-1"}, sessions.revokedAllFor)
	assert.Empty(t, accounts.users)
}
