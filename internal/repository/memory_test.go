package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jobreach/jobreach/internal/model"
)

func TestMemoryProfileStoreRoundTrip(t *testing.T) {
	store := NewMemoryProfileStore()
	ctx := context.Background()

	profile := &model.UserProfile{
		UserID:   "user-1",
		Name:     "Jess Doe",
		Email:    "jess@example.com",
		LinkedIn: "linkedin.com/in/jess",
		Authorization: &model.GoogleAuthorization{
			AccessToken:  "token-1",
			RefreshToken: "refresh-1",
			TokenType:    "Bearer",
			Expiry:       time.Now().Add(time.Hour).Truncate(time.Second),
			Scopes:       []string{"https://www.googleapis.com/auth/gmail.send"},
		},
	}
	require.NoError(t, store.Put(ctx, profile))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, profile.UserID, got.UserID)
	assert.Equal(t, profile.Name, got.Name)
	assert.Equal(t, profile.Email, got.Email)
	assert.Equal(t, profile.Authorization, got.Authorization)
	assert.False(t, got.CreatedAt.IsZero())
	assert.False(t, got.UpdatedAt.IsZero())
}

func TestMemoryProfileStoreNotFound(t *testing.T) {
	store := NewMemoryProfileStore()

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryProfileStorePutOverwrites(t *testing.T) {
	store := NewMemoryProfileStore()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, &model.UserProfile{UserID: "user-1", Name: "Old"}))
	require.NoError(t, store.Put(ctx, &model.UserProfile{UserID: "user-1", Name: "New"}))

	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "New", got.Name)
}

func TestMemoryProfileStoreIsolatesCallers(t *testing.T) {
	store := NewMemoryProfileStore()
	ctx := context.Background()

	profile := &model.UserProfile{
		UserID:        "user-1",
		Authorization: &model.GoogleAuthorization{AccessToken: "token-1"},
	}
	require.NoError(t, store.Put(ctx, profile))

	// Mutating what the caller handed in or got back must not leak into the store
	profile.Authorization.AccessToken = "mutated-input"
	got, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", got.Authorization.AccessToken)

	got.Authorization.AccessToken = "mutated-output"
	again, err := store.Get(ctx, "user-1")
	require.NoError(t, err)
	assert.Equal(t, "token-1", again.Authorization.AccessToken)
}

func TestMemoryProfileStoreRejectsInvalidInput(t *testing.T) {
	store := NewMemoryProfileStore()

	assert.ErrorIs(t, store.Put(context.Background(), nil), ErrInvalidInput)
	assert.ErrorIs(t, store.Put(context.Background(), &model.UserProfile{}), ErrInvalidInput)
}
