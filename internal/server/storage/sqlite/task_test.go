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

// createTestUser inserts a user row so task FKs resolve
func createTestUser(t *testing.T, s *Storage, username string) *models.User {
	t.Helper()

	user := newTestUser(username, username+"@example.com")
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func newTestTask(userID, title string, createdAt time.Time) *models.Task {
	return &models.Task{
		ID:        uuid.New().String(),
		Title:     title,
		UserID:    userID,
		CreatedAt: createdAt,
	}
}

func TestTaskStorage_CreateAndGetTask(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	user := createTestUser(t, s, "alice")

	task := &models.Task{
		ID:          uuid.New().String(),
		Title:       "buy milk",
		Description: "2 liters",
		Completed:   false,
		UserID:      user.ID,
		CreatedAt:   time.Now().UTC(),
	}
	require.NoError(t, s.CreateTask(ctx, task))

	retrieved, err := s.GetTask(ctx, task.ID, user.ID)
	require.NoError(t, err)
	assert.Equal(t, task.ID, retrieved.ID)
	assert.Equal(t, "buy milk", retrieved.Title)
	assert.Equal(t, "2 liters", retrieved.Description)
	assert.False(t, retrieved.Completed)
	assert.Equal(t, user.ID, retrieved.UserID)
}

func TestTaskStorage_GetTask_OtherOwner(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	task := newTestTask(alice.ID, "private", time.Now().UTC())
	require.NoError(t, s.CreateTask(ctx, task))

	// Bob cannot see Alice's task; same error as a missing one
	_, err := s.GetTask(ctx, task.ID, bob.ID)
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)
}

func TestTaskStorage_ListTasks(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	base := time.Now().UTC().Truncate(time.Second)
	oldest := newTestTask(alice.ID, "oldest", base.Add(-2*time.Hour))
	middle := newTestTask(alice.ID, "middle", base.Add(-1*time.Hour))
	newest := newTestTask(alice.ID, "newest", base)
	other := newTestTask(bob.ID, "bobs task", base)

	for _, task := range []*models.Task{oldest, newest, middle, other} {
		require.NoError(t, s.CreateTask(ctx, task))
	}

	tasks, err := s.ListTasks(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, tasks, 3)

	// Newest first
	assert.Equal(t, "newest", tasks[0].Title)
	assert.Equal(t, "middle", tasks[1].Title)
	assert.Equal(t, "oldest", tasks[2].Title)
}

func TestTaskStorage_ListTasks_Empty(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, s, "alice")

	tasks, err := s.ListTasks(ctx, alice.ID)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskStorage_UpdateTask(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	task := newTestTask(alice.ID, "original", time.Now().UTC())
	require.NoError(t, s.CreateTask(ctx, task))

	task.Title = "updated"
	task.Description = "now with details"
	task.Completed = true
	require.NoError(t, s.UpdateTask(ctx, task))

	retrieved, err := s.GetTask(ctx, task.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, "updated", retrieved.Title)
	assert.Equal(t, "now with details", retrieved.Description)
	assert.True(t, retrieved.Completed)

	// Update scoped to the wrong owner affects zero rows
	foreign := *task
	foreign.UserID = bob.ID
	err = s.UpdateTask(ctx, &foreign)
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)
}

func TestTaskStorage_DeleteTask(t *testing.T) {
	ctx := context.Background()
	s, cleanup := setupTestStorage(t)
	defer cleanup()

	alice := createTestUser(t, s, "alice")
	bob := createTestUser(t, s, "bob")

	task := newTestTask(alice.ID, "doomed", time.Now().UTC())
	require.NoError(t, s.CreateTask(ctx, task))

	// Bob cannot delete Alice's task
	err := s.DeleteTask(ctx, task.ID, bob.ID)
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)

	require.NoError(t, s.DeleteTask(ctx, task.ID, alice.ID))

	// Repeated delete is not idempotent success
	err = s.DeleteTask(ctx, task.ID, alice.ID)
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)

	_, err = s.GetTask(ctx, task.ID, alice.ID)
	assert.ErrorIs(t, err, storage.ErrTaskNotFound)
}
