package api

import "time"

// Task is the wire representation of a task
type Task struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Completed   bool      `json:"completed"`
	UserID      string    `json:"user_id"`
	CreatedAt   time.Time `json:"created_at"`
}

// CreateTaskRequest is the body of POST /api/tasks
type CreateTaskRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

// UpdateTaskRequest is the body of PUT /api/tasks/{id}.
// Pointer fields distinguish "not supplied" from zero values so that
// omitted fields keep their current value.
type UpdateTaskRequest struct {
	Title       *string `json:"title"`
	Description *string `json:"description"`
	Completed   *bool   `json:"completed"`
}

// TaskResponse is returned by create and update
type TaskResponse struct {
	Message string `json:"message"`
	Task    Task   `json:"task"`
}

// TasksResponse is returned by the task list endpoint
type TasksResponse struct {
	Message string `json:"message"`
	Tasks   []Task `json:"tasks"`
}

// MessageResponse is returned by endpoints with no payload, e.g. delete
type MessageResponse struct {
	Message string `json:"message"`
}

// HealthResponse is returned by GET /api/health
type HealthResponse struct {
	Message   string    `json:"message"`
	Timestamp time.Time `json:"timestamp"`
}
