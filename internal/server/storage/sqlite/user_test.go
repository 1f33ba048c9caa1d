package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ivankor/gotasker/internal/models"
	"github.com/ivankor/gotasker/internal/server/storage"
)

func setupTestStorage(t *testing.T) (*Storage, func()) {
	t.Helper()

	ctx := context.Background()
	s, err := New(ctx, ":memory:")
	require.NoError(t, err)

	cleanup := func() {
		require.NoError(t, s.Close())
	}

	return s, cleanup
}

func newTestUser(username, email string) *models.User {
	return &models.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: "$2a$10$fakehashfakehashfakehash",
		CreatedAt:    time.Now().UTC(),
	}
}

func TestUserStorage_CreateUser(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := newTestUser("alice", "alice@example.com")
	err := s.CreateUser(ctx, user)
	require.NoError(t, err)

	// Verify user was created
	retrieved, err := s.GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.ID, retrieved.ID)
	assert.Equal(t, user.Username, retrieved.Username)
	assert.Equal(t, user.Email, retrieved.Email)
	assert.Equal(t, user.PasswordHash, retrieved.PasswordHash)
}

func TestUserStorage_CreateUser_DuplicateUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.CreateUser(ctx, newTestUser("duplicate", "first@example.com"))
	require.NoError(t, err)

	err = s.CreateUser(ctx, newTestUser("duplicate", "second@example.com"))
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_CreateUser_DuplicateEmail(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	err := s.CreateUser(ctx, newTestUser("first", "same@example.com"))
	require.NoError(t, err)

	err = s.CreateUser(ctx, newTestUser("second", "same@example.com"))
	assert.ErrorIs(t, err, storage.ErrUserAlreadyExists)
}

func TestUserStorage_GetUserByUsername(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := newTestUser("findme", "findme@example.com")
	require.NoError(t, s.CreateUser(ctx, user))

	tests := []struct {
		wantError error
		name      string
		username  string
	}{
		{
			name:      "existing user",
			username:  "findme",
			wantError: nil,
		},
		{
			name:      "unknown user",
			username:  "nobody",
			wantError: storage.ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			retrieved, err := s.GetUserByUsername(ctx, tt.username)
			if tt.wantError != nil {
				assert.ErrorIs(t, err, tt.wantError)
			} else {
				require.NoError(t, err)
				assert.Equal(t, user.ID, retrieved.ID)
			}
		})
	}
}

func TestUserStorage_GetUserByID_NotFound(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	_, err := s.GetUserByID(ctx, uuid.New().String())
	assert.ErrorIs(t, err, storage.ErrUserNotFound)
}

func TestUserStorage_UserExists(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	require.NoError(t, s.CreateUser(ctx, newTestUser("alice", "alice@example.com")))

	tests := []struct {
		name     string
		username string
		email    string
		want     bool
	}{
		{
			name:     "both match",
			username: "alice",
			email:    "alice@example.com",
			want:     true,
		},
		{
			name:     "username matches",
			username: "alice",
			email:    "other@example.com",
			want:     true,
		},
		{
			name:     "email matches",
			username: "bob",
			email:    "alice@example.com",
			want:     true,
		},
		{
			name:     "neither matches",
			username: "bob",
			email:    "bob@example.com",
			want:     false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exists, err := s.UserExists(ctx, tt.username, tt.email)
			require.NoError(t, err)
			assert.Equal(t, tt.want, exists)
		})
	}
}
