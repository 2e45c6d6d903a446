// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/automindlabs/site-go/internal/authgate"
	"github.com/automindlabs/site-go/internal/middleware"
	"github.com/automindlabs/site-go/internal/model"
)

// LoginRequest is the body for POST /api/v1/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SessionResponse is the payload the admin SPA's auth gate consumes.
// Phase is always "ready" on the wire: the server resolves the role
// before answering, the client-side phases cover the in-flight window.
type SessionResponse struct {
	IsAuthenticated bool   `json:"is_authenticated"`
	UserID          int64  `json:"user_id,omitempty"`
	Email           string `json:"email,omitempty"`
	IsAdmin         bool   `json:"is_admin"`
	Phase           string `json:"phase"`
}

// Login handles POST /api/v1/auth/login.
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))
	if email == "" || req.Password == "" {
		WriteBadRequest(w, "Email and password are required", nil)
		return
	}

	ctx := r.Context()
	info, err := h.auth.SignInWithPassword(ctx, email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authgate.ErrRateLimited):
			WriteError(w, http.StatusTooManyRequests, "rate_limited", "Too many attempts. Try again later.", nil)
		case errors.Is(err, authgate.ErrInvalidCredentials):
			if h.loginProtect != nil {
				h.loginProtect.RecordFailedAttempt(email)
			}
			_ = h.events.LogAuthEvent(ctx, model.EventLevelWarning, "failed sign-in", nil,
				map[string]any{"email": email})
			WriteUnauthorized(w, "Invalid email or password")
		default:
			slog.Error("sign-in", "error", err)
			WriteInternalError(w, "Sign-in failed")
		}
		return
	}

	if h.loginProtect != nil {
		h.loginProtect.RecordSuccessfulLogin(email)
	}
	_ = h.events.LogAuthEvent(ctx, model.EventLevelInfo, "signed in", &info.UserID, nil)

	WriteSuccess(w, h.sessionPayload(r, info), nil)
}

// Logout handles POST /api/v1/auth/logout.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserIDPtr(r)
	if err := h.auth.SignOut(r.Context()); err != nil {
		slog.Error("sign-out", "error", err)
		WriteInternalError(w, "Sign-out failed")
		return
	}
	_ = h.events.LogAuthEvent(r.Context(), model.EventLevelInfo, "signed out", userID, nil)
	w.WriteHeader(http.StatusNoContent)
}

// GetSession handles GET /api/v1/auth/session. The SPA probes this on
// startup to bootstrap its auth gate.
func (h *Handler) GetSession(w http.ResponseWriter, r *http.Request) {
	info, err := h.auth.CurrentSession(r.Context())
	if err != nil {
		slog.Error("resolving session", "error", err)
		// Unresolvable sessions answer as signed out rather than
		// blocking the SPA.
		WriteSuccess(w, SessionResponse{Phase: authgate.PhaseReady.String()}, nil)
		return
	}
	WriteSuccess(w, h.sessionPayload(r, info), nil)
}

// sessionPayload resolves the admin flag for a session. Role lookup
// errors answer as non-admin with the cause logged.
func (h *Handler) sessionPayload(r *http.Request, info authgate.SessionInfo) SessionResponse {
	resp := SessionResponse{
		IsAuthenticated: info.Authenticated,
		UserID:          info.UserID,
		Email:           info.Email,
		Phase:           authgate.PhaseReady.String(),
	}
	if !info.Authenticated {
		return resp
	}

	isAdmin, err := h.auth.HasRole(r.Context(), info.UserID, model.RoleAdmin)
	if err != nil {
		slog.Error("resolving admin role", "user_id", info.UserID, "error", err)
		return resp
	}
	resp.IsAdmin = isAdmin
	return resp
}
