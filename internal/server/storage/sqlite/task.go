package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/ivankor/gotasker/internal/models"
	"github.com/ivankor/gotasker/internal/server/storage"
)

// CreateTask persists a new task
func (s *Storage) CreateTask(ctx context.Context, task *models.Task) error {
	query := `
		INSERT INTO tasks (id, title, description, completed, user_id, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	_, err := s.db.ExecContext(ctx, query,
		task.ID,
		task.Title,
		task.Description,
		boolToInt(task.Completed),
		task.UserID,
		task.CreatedAt,
	)

	if err != nil {
		return fmt.Errorf("failed to insert task: %w", err)
	}

	return nil
}

// GetTask retrieves a task by ID scoped to its owner.
// A task owned by another user is indistinguishable from a missing one.
func (s *Storage) GetTask(ctx context.Context, taskID, userID string) (*models.Task, error) {
	query := `
		SELECT id, title, description, completed, user_id, created_at
		FROM tasks
		WHERE id = ? AND user_id = ?
	`

	task := &models.Task{}
	var completed int

	err := s.db.QueryRowContext(ctx, query, taskID, userID).Scan(
		&task.ID,
		&task.Title,
		&task.Description,
		&completed,
		&task.UserID,
		&task.CreatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, storage.ErrTaskNotFound
		}
		return nil, fmt.Errorf("failed to get task: %w", err)
	}

	task.Completed = intToBool(completed)

	return task, nil
}

// ListTasks returns all tasks owned by the user, newest first
func (s *Storage) ListTasks(ctx context.Context, userID string) ([]*models.Task, error) {
	query := `
		SELECT id, title, description, completed, user_id, created_at
		FROM tasks
		WHERE user_id = ?
		ORDER BY created_at DESC
	`

	rows, err := s.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks: %w", err)
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			err = cerr
		}
	}()

	return scanTasks(rows)
}

// UpdateTask overwrites the mutable fields of a task scoped to its owner
func (s *Storage) UpdateTask(ctx context.Context, task *models.Task) error {
	query := `
		UPDATE tasks
		SET title = ?, description = ?, completed = ?
		WHERE id = ? AND user_id = ?
	`

	result, err := s.db.ExecContext(ctx, query,
		task.Title,
		task.Description,
		boolToInt(task.Completed),
		task.ID,
		task.UserID,
	)

	if err != nil {
		return fmt.Errorf("failed to update task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrTaskNotFound
	}

	return nil
}

// DeleteTask permanently removes a task scoped to its owner
func (s *Storage) DeleteTask(ctx context.Context, taskID, userID string) error {
	query := `DELETE FROM tasks WHERE id = ? AND user_id = ?`

	result, err := s.db.ExecContext(ctx, query, taskID, userID)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return storage.ErrTaskNotFound
	}

	return nil
}

// scanTasks is a helper function to scan multiple tasks from rows
func scanTasks(rows *sql.Rows) ([]*models.Task, error) {
	tasks := []*models.Task{}

	for rows.Next() {
		task := &models.Task{}
		var completed int

		err := rows.Scan(
			&task.ID,
			&task.Title,
			&task.Description,
			&completed,
			&task.UserID,
			&task.CreatedAt,
		)

		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}

		task.Completed = intToBool(completed)

		tasks = append(tasks, task)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration error: %w", err)
	}

	return tasks, nil
}

// Helper functions for bool/int conversion
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func intToBool(i int) bool {
	return i != 0
}
