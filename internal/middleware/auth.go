// Package middleware provides HTTP middleware for the API router.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gorilla/mux"

	"github.com/mmzou/contactbook/internal/auth"
	"github.com/mmzou/contactbook/internal/httputil"
	"github.com/mmzou/contactbook/internal/models"
)

// contextKey is a custom type for context keys to avoid collisions.
type contextKey string

const (
	// userIDKey is the context key for storing the authenticated user id.
	userIDKey contextKey = "user_id"
	// usernameKey is the context key for storing the authenticated username.
	usernameKey contextKey = "username"
)

// GetUserID extracts the authenticated user id from the context.
// Returns 0 if not set.
func GetUserID(ctx context.Context) int64 {
	id, _ := ctx.Value(userIDKey).(int64)
	return id
}

// GetUsername extracts the authenticated username from the context.
// Returns empty string if not set.
func GetUsername(ctx context.Context) string {
	name, _ := ctx.Value(usernameKey).(string)
	return name
}

// UserFinder looks up users during identity resolution.
type UserFinder interface {
	GetUserByID(ctx context.Context, id int64) (*models.User, error)
}

// RequireAuth returns middleware that resolves the caller's identity on every
// protected request. It validates the Bearer token from the Authorization
// header and then confirms the user row still exists, so a token for a
// deleted account stops working immediately.
func RequireAuth(tokens *auth.JWTManager, users UserFinder) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				httputil.Unauthorized(w, "not logged in")
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || parts[0] != "Bearer" {
				httputil.Unauthorized(w, "invalid authorization header")
				return
			}

			claims, err := tokens.Validate(parts[1])
			if err != nil {
				httputil.Unauthorized(w, "invalid or expired token")
				return
			}

			user, err := users.GetUserByID(r.Context(), claims.UserID)
			if err != nil {
				httputil.InternalError(w, "failed to resolve user")
				return
			}
			if user == nil {
				httputil.Unauthorized(w, "user not found")
				return
			}

			ctx := context.WithValue(r.Context(), userIDKey, user.ID)
			ctx = context.WithValue(ctx, usernameKey, user.Username)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
