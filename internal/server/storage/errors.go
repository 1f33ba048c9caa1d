package storage

import "errors"

// Common storage errors
var (
	// ErrUserNotFound indicates that user was not found in storage
	ErrUserNotFound = errors.New("user not found")

	// ErrUserAlreadyExists indicates that a user with this username or email already exists
	ErrUserAlreadyExists = errors.New("user already exists")

	// ErrTaskNotFound indicates that the task does not exist or is owned by another user
	ErrTaskNotFound = errors.New("task not found")
)
