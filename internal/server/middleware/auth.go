// Package middleware provides the HTTP middleware chain for the server.
package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/ivankor/gotasker/internal/server/handlers"
)

// AuthMiddleware creates middleware that guards protected routes.
// It extracts the bearer token, verifies signature and expiry, and
// injects the authenticated identity into the request context.
//
// Verification is a pure function of (token, clock, secret): there is no
// database lookup, so a user deleted after issuance stays authenticated
// until the token expires.
//
// A missing header yields 401, an invalid or expired token 403; the
// bodies stay generic, the distinction lives in the logs only.
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("missing Authorization header",
					"method", r.Method,
					"path", r.URL.Path)
				writeError(w, "access denied: no token provided", http.StatusUnauthorized)
				return
			}

			// Expected format: "Bearer <token>"
			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				logger.Warn("invalid Authorization header format",
					"method", r.Method,
					"path", r.URL.Path)
				writeError(w, "access denied: no token provided", http.StatusUnauthorized)
				return
			}

			tokenString := parts[1]

			claims, err := handlers.ValidateAccessToken(jwtConfig, tokenString)
			if err != nil {
				logger.Warn("invalid access token",
					"method", r.Method,
					"path", r.URL.Path,
					"error", err)
				writeError(w, "invalid token", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.UserIDKey, claims.UserID)
			ctx = context.WithValue(ctx, handlers.UsernameKey, claims.Username)

			logger.Debug("user authenticated",
				"user_id", claims.UserID,
				"username", claims.Username)

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// writeError writes a JSON error body, matching the handlers' format
func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_, _ = fmt.Fprintf(w, `{"error":%q}`, message)
}
