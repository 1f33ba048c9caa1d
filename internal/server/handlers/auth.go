package handlers

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/ivankor/gotasker/internal/auth"
	"github.com/ivankor/gotasker/internal/models"
	"github.com/ivankor/gotasker/internal/server/storage"
	"github.com/ivankor/gotasker/internal/validation"
	"github.com/ivankor/gotasker/pkg/api"
)

// AuthHandler handles registration and login requests
type AuthHandler struct {
	logger      *slog.Logger
	userStorage storage.UserStorage
	hasher      *auth.PasswordHasher
	jwtConfig   JWTConfig
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(logger *slog.Logger, userStorage storage.UserStorage, hasher *auth.PasswordHasher, jwtConfig JWTConfig) *AuthHandler {
	return &AuthHandler{
		logger:      logger,
		userStorage: userStorage,
		hasher:      hasher,
		jwtConfig:   jwtConfig,
	}
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode register request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		h.logger.WarnContext(ctx, "register request with missing fields", slog.String("username", req.Username))
		sendError(h.logger, w, "username, email and password are required", http.StatusBadRequest)
		return
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		h.logger.WarnContext(ctx, "invalid username", slog.String("username", req.Username), slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.ValidateEmail(req.Email); err != nil {
		h.logger.WarnContext(ctx, "invalid email", slog.String("username", req.Username), slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := validation.ValidatePassword(req.Password); err != nil {
		h.logger.WarnContext(ctx, "invalid password", slog.String("username", req.Username), slog.Any("error", err))
		sendError(h.logger, w, err.Error(), http.StatusBadRequest)
		return
	}

	// One combined lookup for both uniqueness constraints
	exists, err := h.userStorage.UserExists(ctx, req.Username, req.Email)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to check user existence", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}
	if exists {
		h.logger.WarnContext(ctx, "register attempt with existing username or email",
			slog.String("username", req.Username))
		sendError(h.logger, w, "username or email already exists", http.StatusBadRequest)
		return
	}

	passwordHash, err := h.hasher.Hash(req.Password)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to hash password", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		Email:        req.Email,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := h.userStorage.CreateUser(ctx, user); err != nil {
		// UNIQUE constraints backstop the existence check under concurrency
		if errors.Is(err, storage.ErrUserAlreadyExists) {
			h.logger.WarnContext(ctx, "user already exists", slog.String("username", req.Username))
			sendError(h.logger, w, "username or email already exists", http.StatusBadRequest)
			return
		}
		h.logger.ErrorContext(ctx, "failed to create user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	token, err := GenerateAccessToken(h.jwtConfig, user.ID, user.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user registered successfully",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))

	resp := api.AuthResponse{
		Message: "user registered successfully",
		Token:   token,
		User: api.User{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}

	sendJSON(h.logger, w, resp, http.StatusCreated)
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req api.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.logger.ErrorContext(ctx, "failed to decode login request", slog.Any("error", err))
		sendError(h.logger, w, "invalid request body", http.StatusBadRequest)
		return
	}

	if req.Username == "" || req.Password == "" {
		h.logger.WarnContext(ctx, "login request with missing fields", slog.String("username", req.Username))
		sendError(h.logger, w, "username and password are required", http.StatusBadRequest)
		return
	}

	// Unknown user and wrong password produce identical responses so the
	// client cannot tell which part of the credentials failed
	user, err := h.userStorage.GetUserByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, storage.ErrUserNotFound) {
			h.logger.WarnContext(ctx, "login failed: user not found", slog.String("username", req.Username))
			sendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
			return
		}
		h.logger.ErrorContext(ctx, "failed to get user", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	if !h.hasher.Verify(req.Password, user.PasswordHash) {
		h.logger.WarnContext(ctx, "login failed: invalid password", slog.String("username", req.Username))
		sendError(h.logger, w, "invalid credentials", http.StatusUnauthorized)
		return
	}

	token, err := GenerateAccessToken(h.jwtConfig, user.ID, user.Username)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to generate access token", slog.Any("error", err))
		sendError(h.logger, w, "internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.InfoContext(ctx, "user logged in successfully",
		slog.String("user_id", user.ID),
		slog.String("username", user.Username))

	resp := api.AuthResponse{
		Message: "login successful",
		Token:   token,
		User: api.User{
			ID:       user.ID,
			Username: user.Username,
			Email:    user.Email,
		},
	}

	sendJSON(h.logger, w, resp, http.StatusOK)
}
