// Package server wires handlers, middleware and storage into an HTTP server.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/ivankor/gotasker/internal/auth"
	"github.com/ivankor/gotasker/internal/config"
	"github.com/ivankor/gotasker/internal/server/handlers"
	"github.com/ivankor/gotasker/internal/server/middleware"
	"github.com/ivankor/gotasker/internal/server/storage"
)

// Server is the HTTP server for the task service
type Server struct {
	logger     *slog.Logger
	httpServer *http.Server
	cfg        config.Config
}

// New creates a fully wired server.
// All dependencies are passed in explicitly; nothing is global.
func New(cfg config.Config, logger *slog.Logger, userStorage storage.UserStorage, taskStorage storage.TaskStorage) *Server {
	s := &Server{
		logger: logger,
		cfg:    cfg,
	}

	s.httpServer = &http.Server{
		Addr:    cfg.Addr,
		Handler: s.routes(userStorage, taskStorage),
	}

	return s
}

// routes builds the route table and the middleware chain
func (s *Server) routes(userStorage storage.UserStorage, taskStorage storage.TaskStorage) http.Handler {
	jwtConfig := handlers.JWTConfig{
		Secret:         []byte(s.cfg.JWTSecret),
		AccessTokenTTL: s.cfg.AccessTokenTTL,
	}

	authHandler := handlers.NewAuthHandler(s.logger, userStorage, auth.NewPasswordHasher(), jwtConfig)
	taskHandler := handlers.NewTaskHandler(s.logger, taskStorage)
	healthHandler := handlers.NewHealthHandler(s.logger)

	protect := middleware.AuthMiddleware(s.logger, jwtConfig)

	mux := http.NewServeMux()

	// Public routes
	mux.HandleFunc("POST /api/auth/register", authHandler.Register)
	mux.HandleFunc("POST /api/auth/login", authHandler.Login)
	mux.HandleFunc("GET /api/health", healthHandler.Health)

	// Protected routes
	mux.Handle("GET /api/tasks", protect(http.HandlerFunc(taskHandler.List)))
	mux.Handle("POST /api/tasks", protect(http.HandlerFunc(taskHandler.Create)))
	mux.Handle("PUT /api/tasks/{id}", protect(http.HandlerFunc(taskHandler.Update)))
	mux.Handle("DELETE /api/tasks/{id}", protect(http.HandlerFunc(taskHandler.Delete)))

	// Everything else is a JSON 404
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		s.logger.Warn("route not found", "method", r.Method, "path", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"route not found"}`))
	})

	// Outermost first: recovery, rate limiting, request logging
	var handler http.Handler = mux
	handler = middleware.LoggingWithSkip(s.logger, []string{"/api/health"})(handler)
	handler = middleware.RateLimitMiddleware(s.cfg.RateLimitRequests, s.cfg.RateLimitWindow, s.logger)(handler)
	handler = middleware.RecoveryMiddleware(s.logger)(handler)

	return handler
}

// Handler returns the root handler, used by tests
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Run starts the server and blocks until ctx is canceled or the
// listener fails. On cancellation in-flight requests get
// cfg.ShutdownTimeout to finish.
func (s *Server) Run(ctx context.Context) error {
	errC := make(chan error, 1)

	go func() {
		s.logger.Info("server listening", "addr", s.cfg.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errC <- err
		}
	}()

	select {
	case err := <-errC:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.cfg.ShutdownTimeout)
	defer cancel()

	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
