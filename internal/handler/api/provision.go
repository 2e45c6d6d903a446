// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"net/mail"
	"strings"
	"time"

	"github.com/automindlabs/site-go/internal/auth"
	"github.com/automindlabs/site-go/internal/middleware"
	"github.com/automindlabs/site-go/internal/model"
	"github.com/automindlabs/site-go/internal/store"
)

// ProvisionUserRequest is the body for POST /api/v1/admin/users.
type ProvisionUserRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name,omitempty"`
}

// ProvisionUserResponse confirms a provisioned account.
type ProvisionUserResponse struct {
	ID    int64  `json:"id"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// ProvisionUser handles POST /api/v1/admin/users. The caller
// authenticates with a bearer session token rather than a cookie so
// server-side tooling can drive it; only admins may provision accounts.
func (h *Handler) ProvisionUser(w http.ResponseWriter, r *http.Request) {
	callerID, ok := h.bearerUserID(r)
	if !ok {
		WriteUnauthorized(w, "Missing or invalid bearer token")
		return
	}

	ctx := r.Context()
	isAdmin, err := h.queries.HasRole(ctx, store.HasRoleParams{UserID: callerID, Role: model.RoleAdmin})
	if err != nil || !isAdmin {
		// Role lookup failures deny rather than grant.
		if err != nil {
			slog.Error("checking provisioner role", "user_id", callerID, "error", err)
		}
		WriteForbidden(w, "Admin role required")
		return
	}

	var req ProvisionUserRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if _, err := h.queries.GetUserByEmail(ctx, email); err == nil {
		WriteValidationError(w, map[string]string{"email": "Email is already registered"})
		return
	} else if !errors.Is(err, sql.ErrNoRows) {
		slog.Error("checking email", "error", err)
		WriteInternalError(w, "Failed to provision user")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		slog.Error("hashing password", "error", err)
		WriteInternalError(w, "Failed to provision user")
		return
	}

	now := time.Now()
	user, err := h.queries.CreateUser(ctx, store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         req.Name,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		slog.Error("creating user", "error", err)
		WriteInternalError(w, "Failed to provision user")
		return
	}

	if err := h.queries.AddUserRole(ctx, store.AddUserRoleParams{
		UserID: user.ID, Role: model.RoleAdmin, CreatedAt: now,
	}); err != nil {
		slog.Error("granting role", "user_id", user.ID, "error", err)
		WriteInternalError(w, "Failed to provision user")
		return
	}

	displayName := req.Name
	if displayName == "" {
		displayName = email
	}
	if err := h.queries.CreateProfile(ctx, store.CreateProfileParams{
		UserID: user.ID, DisplayName: displayName, CreatedAt: now, UpdatedAt: now,
	}); err != nil {
		slog.Error("creating profile", "user_id", user.ID, "error", err)
		WriteInternalError(w, "Failed to provision user")
		return
	}

	_ = h.events.LogUserEvent(ctx, model.EventLevelInfo, "admin user provisioned",
		&callerID, map[string]any{"new_user_id": user.ID, "email": email})

	WriteSuccess(w, ProvisionUserResponse{ID: user.ID, Email: user.Email, Role: model.RoleAdmin}, nil)
}

func (req *ProvisionUserRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if _, err := mail.ParseAddress(strings.TrimSpace(req.Email)); err != nil {
		fieldErrors["email"] = "Must be a valid email address"
	}
	if len(req.Password) < model.MinPasswordLength {
		fieldErrors["password"] = "Password is too short"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// bearerUserID resolves the Authorization bearer token to a signed-in
// user ID. The token is an scs session token, looked up directly in the
// session store since the request carries no cookie.
func (h *Handler) bearerUserID(r *http.Request) (int64, bool) {
	header := r.Header.Get("Authorization")
	scheme, token, found := strings.Cut(header, " ")
	if !found || !strings.EqualFold(scheme, "Bearer") || token == "" {
		return 0, false
	}

	b, found, err := h.sessions.Store.Find(token)
	if err != nil || !found {
		return 0, false
	}

	deadline, values, err := h.sessions.Codec.Decode(b)
	if err != nil || time.Now().After(deadline) {
		return 0, false
	}

	userID, ok := values[middleware.SessionKeyUserID].(int64)
	if !ok || userID == 0 {
		return 0, false
	}
	return userID, true
}
