package storage

import (
	"context"

	"github.com/ivankor/gotasker/internal/models"
)

// TaskStorage defines interface for task persistence.
// Every read and write is scoped by the owning user ID; a task owned by
// another user is reported as ErrTaskNotFound, never as a permission error.
type TaskStorage interface {
	// CreateTask persists a new task
	CreateTask(ctx context.Context, task *models.Task) error

	// GetTask retrieves a task by ID for the given owner
	// Returns ErrTaskNotFound if absent or owned by someone else
	GetTask(ctx context.Context, taskID, userID string) (*models.Task, error)

	// ListTasks returns all tasks owned by the user, newest first.
	// Returns an empty slice when the user owns none.
	ListTasks(ctx context.Context, userID string) ([]*models.Task, error)

	// UpdateTask overwrites title, description and completed of the task
	// identified by task.ID and task.UserID
	// Returns ErrTaskNotFound if absent or owned by someone else
	UpdateTask(ctx context.Context, task *models.Task) error

	// DeleteTask permanently removes a task for the given owner
	// Returns ErrTaskNotFound if absent or owned by someone else
	DeleteTask(ctx context.Context, taskID, userID string) error
}
