package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/ivankor/gotasker/internal/models"
	"github.com/ivankor/gotasker/internal/server/storage"
	"github.com/ivankor/gotasker/pkg/api"
)

// TaskHandler handles task CRUD requests.
// Every operation is scoped by the user ID injected by the auth
// middleware; the owner never comes from the request body.
type TaskHandler struct {
	logger      *slog.Logger
	taskStorage storage.TaskStorage
}

// NewTaskHandler creates a new task handler
func NewTaskHandler(logger *slog.Logger, taskStorage storage.TaskStorage) *TaskHandler {
	return &TaskHandler{
		logger:      logger,
		taskStorage: taskStorage,
	}
}

// List handles GET /api/tasks
func (h *TaskHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user ID not found in context")
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	tasks, err := h.taskStorage.ListTasks(ctx, userID)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list tasks", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "tasks retrieved",
		slog.String("user_id", userID),
		slog.Int("count", len(tasks)))

	resp := api.TasksResponse{
		Message: "tasks retrieved successfully",
		Tasks:   toAPITasks(tasks),
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Create handles POST /api/tasks
func (h *TaskHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user ID not found in context")
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	var req api.CreateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode create task request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if strings.TrimSpace(req.Title) == "" {
		h.logger.WarnContext(ctx, "create task without title", slog.String("user_id", userID))
		sendError(h.logger, w, "title is required", http.StatusBadRequest)
		return
	}

	task := &models.Task{
		ID:          uuid.New().String(),
		Title:       req.Title,
		Description: req.Description,
		Completed:   false,
		UserID:      userID,
		CreatedAt:   time.Now().UTC(),
	}

	if err := h.taskStorage.CreateTask(ctx, task); err != nil {
		h.logger.ErrorContext(ctx, "failed to create task", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "task created",
		slog.String("user_id", userID),
		slog.String("task_id", task.ID))

	resp := api.TaskResponse{
		Message: "task created successfully",
		Task:    toAPITask(task),
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Update handles PUT /api/tasks/{id}.
// Partial update: fields absent from the body keep their current value.
func (h *TaskHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user ID not found in context")
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	taskID := r.PathValue("id")
	if taskID == "" {
		sendError(h.logger, w, "task id is required", http.StatusBadRequest)
		return
	}

	var req api.UpdateTaskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode update task request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Title != nil && strings.TrimSpace(*req.Title) == "" {
		h.logger.WarnContext(ctx, "update task with empty title",
			slog.String("user_id", userID), slog.String("task_id", taskID))
		sendError(h.logger, w, "title cannot be empty", http.StatusBadRequest)
		return
	}

	// The ownership check and the merge source are the same read
	task, err := h.taskStorage.GetTask(ctx, taskID, userID)
	if err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			h.logger.WarnContext(ctx, "update of missing or foreign task",
				slog.String("user_id", userID), slog.String("task_id", taskID))
			sendError(h.logger, w, "task not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get task", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if req.Title != nil {
		task.Title = *req.Title
	}
	if req.Description != nil {
		task.Description = *req.Description
	}
	if req.Completed != nil {
		task.Completed = *req.Completed
	}

	if err := h.taskStorage.UpdateTask(ctx, task); err != nil {
		// A concurrent delete between the read and this write surfaces here
		if errors.Is(err, storage.ErrTaskNotFound) {
			sendError(h.logger, w, "task not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to update task", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "task updated",
		slog.String("user_id", userID),
		slog.String("task_id", task.ID))

	resp := api.TaskResponse{
		Message: "task updated successfully",
		Task:    toAPITask(task),
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}

// Delete handles DELETE /api/tasks/{id}
func (h *TaskHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	userID, ok := GetUserID(ctx)
	if !ok {
		h.logger.ErrorContext(ctx, "user ID not found in context")
		sendError(h.logger, w, "unauthorized", http.StatusUnauthorized)
		return
	}

	taskID := r.PathValue("id")
	if taskID == "" {
		sendError(h.logger, w, "task id is required", http.StatusBadRequest)
		return
	}

	if err := h.taskStorage.DeleteTask(ctx, taskID, userID); err != nil {
		if errors.Is(err, storage.ErrTaskNotFound) {
			h.logger.WarnContext(ctx, "delete of missing or foreign task",
				slog.String("user_id", userID), slog.String("task_id", taskID))
			sendError(h.logger, w, "task not found", http.StatusNotFound)
			return
		}
		h.logger.ErrorContext(ctx, "failed to delete task", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "task deleted",
		slog.String("user_id", userID),
		slog.String("task_id", taskID))

	sendJSON(h.logger, w, api.MessageResponse{Message: "task deleted successfully"}, http.StatusOK)
}

func toAPITask(task *models.Task) api.Task {
	return api.Task{
		ID:          task.ID,
		Title:       task.Title,
		Description: task.Description,
		Completed:   task.Completed,
		UserID:      task.UserID,
		CreatedAt:   task.CreatedAt,
	}
}

func toAPITasks(tasks []*models.Task) []api.Task {
	result := make([]api.Task, 0, len(tasks))
	for _, task := range tasks {
		result = append(result, toAPITask(task))
	}
	return result
}
