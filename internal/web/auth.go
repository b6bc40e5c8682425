package web

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/perbu/adsvideo/internal/config"
)

// AuthUser represents an authenticated user
type AuthUser struct {
	Email string
}

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

const authUserKey contextKey = "authUser"

// AuthMiddleware reads the operator identity from a trusted proxy header
type AuthMiddleware struct {
	headerName string
	devMode    bool
	devUser    string
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{
		headerName: cfg.GetAuthHeader(),
		devMode:    cfg.Web.DevMode,
		devUser:    cfg.GetDevUser(),
	}
}

// Middleware wraps an http.Handler and injects user info into the request context
func (m *AuthMiddleware) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var user *AuthUser

		if m.devMode {
			user = &AuthUser{Email: m.devUser}
		} else if email := r.Header.Get(m.headerName); email != "" {
			user = &AuthUser{Email: email}
		}

		// Store user in context (can be nil for anonymous users)
		ctx := context.WithValue(r.Context(), authUserKey, user)

		if user != nil {
			slog.Info("request", "method", r.Method, "path", r.URL.Path, "user", user.Email)
		} else {
			slog.Info("request", "method", r.Method, "path", r.URL.Path, "user", "anonymous")
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetUser retrieves the AuthUser from the request context
func GetUser(r *http.Request) *AuthUser {
	user, ok := r.Context().Value(authUserKey).(*AuthUser)
	if !ok {
		return nil
	}
	return user
}
