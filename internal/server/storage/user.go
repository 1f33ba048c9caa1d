// Package storage defines persistence interfaces consumed by the handlers.
package storage

import (
	"context"

	"github.com/ivankor/gotasker/internal/models"
)

// UserStorage defines interface for user persistence
type UserStorage interface {
	// CreateUser creates a new user in the storage
	// Returns ErrUserAlreadyExists if the username or email is taken
	CreateUser(ctx context.Context, user *models.User) error

	// GetUserByUsername retrieves user by username
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)

	// GetUserByID retrieves user by ID
	// Returns ErrUserNotFound if user doesn't exist
	GetUserByID(ctx context.Context, userID string) (*models.User, error)

	// UserExists reports whether any user holds the given username or email.
	// A single combined lookup, matching the register uniqueness check.
	UserExists(ctx context.Context, username, email string) (bool, error)
}
