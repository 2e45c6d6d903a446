// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/automindlabs/site-go/internal/orderable"
)

// visibilityRequest is the body for PATCH .../{id}/visibility.
type visibilityRequest struct {
	IsVisible *bool `json:"is_visible"`
}

// updateVisibility handles the single-record visibility toggle shared
// by every orderable collection. It writes only the visibility flag,
// so a pending client-side reorder cannot revert it.
func (h *Handler) updateVisibility(w http.ResponseWriter, r *http.Request, entityName string, apply func(ctx context.Context, id int64, visible bool, now time.Time) error) {
	id, err := ParseIDParam(r)
	if err != nil {
		WriteBadRequest(w, "Invalid "+entityName+" ID", nil)
		return
	}

	var req visibilityRequest
	if err := decodeJSON(r, &req); err != nil || req.IsVisible == nil {
		WriteBadRequest(w, "Request body must include is_visible", nil)
		return
	}

	if err := apply(r.Context(), id, *req.IsVisible, time.Now()); err != nil {
		slog.Error("updating visibility", "entity", entityName, "id", id, "error", err)
		WriteInternalError(w, "Failed to update visibility")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// orderRequest is the body for PUT .../order.
type orderRequest struct {
	IDs []int64 `json:"ids"`
}

// commitOrder handles the bulk position write for a collection. Each
// id gets position = its index in the submitted list. Failures on
// individual records do not stop the rest; the caller re-fetches to
// reconcile.
func (h *Handler) commitOrder(w http.ResponseWriter, r *http.Request, entityName string, update func(ctx context.Context, id, position int64) error) {
	var req orderRequest
	if err := decodeJSON(r, &req); err != nil || len(req.IDs) == 0 {
		WriteBadRequest(w, "Request body must include ids", nil)
		return
	}

	if err := orderable.CommitOrder(r.Context(), orderable.CommitterFunc(update), req.IDs); err != nil {
		slog.Error("committing order", "entity", entityName, "error", err)
		WriteInternalError(w, "Failed to persist order")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
