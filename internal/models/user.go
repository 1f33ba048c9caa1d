package models

import "time"

// User represents a registered account.
// PasswordHash is a bcrypt digest and must never be serialized to clients.
type User struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
