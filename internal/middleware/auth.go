// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package middleware provides HTTP middleware for authentication,
// authorization, and request protection.
package middleware

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/alexedwards/scs/v2"

	"github.com/automindlabs/site-go/internal/model"
	"github.com/automindlabs/site-go/internal/store"
)

// ContextKey is a type for context keys to avoid collisions.
type ContextKey string

// Context keys for request-scoped data.
const (
	ContextKeyUser        ContextKey = "user"
	ContextKeyRequestPath ContextKey = "request_path"
)

// SessionKeyUserID is the scs key holding the signed-in user's ID.
const SessionKeyUserID = "user_id"

// APIError is the JSON error envelope.
type APIError struct {
	Error struct {
		Code    string            `json:"code"`
		Message string            `json:"message"`
		Details map[string]string `json:"details,omitempty"`
	} `json:"error"`
}

// WriteAPIError writes a JSON error response.
func WriteAPIError(w http.ResponseWriter, statusCode int, code, message string, details map[string]string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	apiErr := APIError{}
	apiErr.Error.Code = code
	apiErr.Error.Message = message
	apiErr.Error.Details = details

	_ = json.NewEncoder(w).Encode(apiErr)
}

// RequireAuth creates middleware that requires a signed-in session and
// loads the user with their roles into the request context. API
// clients get a JSON 401, never a redirect.
func RequireAuth(sm *scs.SessionManager, queries *store.Queries) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID := sm.GetInt64(r.Context(), SessionKeyUserID)
			if userID == 0 {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
				return
			}

			user, err := queries.GetUserByID(r.Context(), userID)
			if err != nil {
				// Deleted user with a live cookie. Kill the session.
				_ = sm.Destroy(r.Context())
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
				return
			}

			roles, err := queries.ListUserRoles(r.Context(), user.ID)
			if err != nil {
				slog.Error("loading user roles", "user_id", user.ID, "error", err)
				WriteAPIError(w, http.StatusInternalServerError, "internal_error", "Failed to resolve permissions", nil)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyUser, AuthedUser{User: user, Roles: roles})
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// AuthedUser is the signed-in user with resolved roles.
type AuthedUser struct {
	User  store.User
	Roles []string
}

// HasRole reports whether the user holds the exact role.
func (u AuthedUser) HasRole(role string) bool {
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// MaxLevel returns the highest role level the user holds.
func (u AuthedUser) MaxLevel() int {
	level := 0
	for _, r := range u.Roles {
		if l := roleLevel(r); l > level {
			level = l
		}
	}
	return level
}

// GetUser retrieves the authed user from the request context. Returns
// nil outside RequireAuth.
func GetUser(r *http.Request) *AuthedUser {
	user, ok := r.Context().Value(ContextKeyUser).(AuthedUser)
	if !ok {
		return nil
	}
	return &user
}

// GetUserIDPtr returns the signed-in user's ID for event logging, or
// nil when unauthenticated.
func GetUserIDPtr(r *http.Request) *int64 {
	if user := GetUser(r); user != nil {
		id := user.User.ID
		return &id
	}
	return nil
}

// roleLevel returns a numeric level for role hierarchy. Higher level
// means more permissions; unknown roles have none.
func roleLevel(role string) int {
	switch role {
	case model.RoleAdmin:
		return 2
	case model.RoleEditor:
		return 1
	default:
		return 0
	}
}

// RequireRole creates middleware that requires a minimum role. Roles
// are hierarchical: admin > editor, so RequireRole(editor) admits
// admins too. Must run after RequireAuth.
func RequireRole(minRole string) func(http.Handler) http.Handler {
	minLevel := roleLevel(minRole)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := GetUser(r)
			if user == nil {
				WriteAPIError(w, http.StatusUnauthorized, "unauthorized", "Authentication required", nil)
				return
			}

			if user.MaxLevel() < minLevel {
				slog.Warn("access denied",
					"status", http.StatusForbidden,
					"method", r.Method,
					"path", r.URL.Path,
					"user_id", user.User.ID,
					"required_role", minRole,
				)
				WriteAPIError(w, http.StatusForbidden, "forbidden", "Insufficient permissions", nil)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequireAdmin is shorthand for RequireRole(admin).
func RequireAdmin() func(http.Handler) http.Handler {
	return RequireRole(model.RoleAdmin)
}

// RequireEditor admits both editors and admins.
func RequireEditor() func(http.Handler) http.Handler {
	return RequireRole(model.RoleEditor)
}

// RequestPath stores the request path in the context for the logging
// handler to pick up on WARN+ records.
func RequestPath(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := context.WithValue(r.Context(), ContextKeyRequestPath, r.URL.Path)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetRequestPath retrieves the request path from the context.
func GetRequestPath(ctx context.Context) string {
	path, ok := ctx.Value(ContextKeyRequestPath).(string)
	if !ok {
		return ""
	}
	return path
}

// ClearStaleSession destroys the session when its user no longer
// exists, without requiring authentication. Used on the session probe
// endpoint.
func ClearStaleSession(sm *scs.SessionManager, queries *store.Queries) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if userID := sm.GetInt64(r.Context(), SessionKeyUserID); userID != 0 {
				if _, err := queries.GetUserByID(r.Context(), userID); errors.Is(err, sql.ErrNoRows) {
					_ = sm.Destroy(r.Context())
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}
