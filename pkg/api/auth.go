// Package api defines the JSON types exchanged with clients.
package api

// RegisterRequest is the body of POST /api/auth/register
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest is the body of POST /api/auth/login
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// User is the public view of an account.
// The password hash is deliberately not part of this type.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// AuthResponse is returned by register and login on success
type AuthResponse struct {
	Message string `json:"message"`
	Token   string `json:"token"`
	User    User   `json:"user"`
}

// ErrorResponse is returned for any failed request
type ErrorResponse struct {
	Error string `json:"error"`
}
