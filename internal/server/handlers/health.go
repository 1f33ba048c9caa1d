package handlers

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/ivankor/gotasker/pkg/api"
)

// HealthHandler handles health check requests
type HealthHandler struct {
	logger *slog.Logger
}

// NewHealthHandler creates a new health check handler
func NewHealthHandler(logger *slog.Logger) *HealthHandler {
	return &HealthHandler{logger: logger}
}

// Health handles GET /api/health
func (h *HealthHandler) Health(w http.ResponseWriter, r *http.Request) {
	resp := api.HealthResponse{
		Message:   "service is up and running",
		Timestamp: time.Now().UTC(),
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
