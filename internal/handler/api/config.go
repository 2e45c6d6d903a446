// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/automindlabs/site-go/internal/middleware"
	"github.com/automindlabs/site-go/internal/model"
	"github.com/automindlabs/site-go/internal/store"
)

// publicConfigGroups are the site_config groups the public site may
// read: the header, footer, contact block, and social links. Settings
// stay admin-only.
var publicConfigGroups = map[string]bool{
	model.ConfigGroupHeader:  true,
	model.ConfigGroupFooter:  true,
	model.ConfigGroupContact: true,
	model.ConfigGroupSocial:  true,
}

// GetPublicConfigGroup handles GET /api/v1/config/{group}. Served from
// the process-wide config cache.
func (h *Handler) GetPublicConfigGroup(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")
	if !publicConfigGroups[group] {
		WriteNotFound(w, "Unknown config group")
		return
	}

	values, err := h.cache.Config.Group(r.Context(), group)
	if err != nil {
		slog.Error("reading config group", "group", group, "error", err)
		WriteInternalError(w, "Failed to read configuration")
		return
	}
	WriteSuccess(w, values, nil)
}

// GetConfigGroup handles GET /api/v1/admin/config/{group}. Admin reads
// bypass the cache so edits round-trip predictably.
func (h *Handler) GetConfigGroup(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")
	if !model.IsValidConfigGroup(group) {
		WriteNotFound(w, "Unknown config group")
		return
	}

	rows, err := h.queries.ListConfigByGroup(r.Context(), group)
	if err != nil {
		slog.Error("listing config group", "group", group, "error", err)
		WriteInternalError(w, "Failed to read configuration")
		return
	}

	values := make(map[string]string, len(rows))
	for _, row := range rows {
		values[row.Key] = row.Value
	}
	WriteSuccess(w, values, nil)
}

// UpdateConfigGroup handles PUT /api/v1/admin/config/{group}. The body
// is a flat string map; every pair is upserted and the cache is
// invalidated afterwards.
func (h *Handler) UpdateConfigGroup(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")
	if !model.IsValidConfigGroup(group) {
		WriteNotFound(w, "Unknown config group")
		return
	}

	var values map[string]string
	if err := decodeJSON(r, &values); err != nil {
		WriteBadRequest(w, "Request body must be a string map", nil)
		return
	}
	if len(values) == 0 {
		WriteBadRequest(w, "No configuration values provided", nil)
		return
	}

	ctx := r.Context()
	now := time.Now()
	for key, value := range values {
		if key == "" {
			WriteValidationError(w, map[string]string{"key": "Keys must not be empty"})
			return
		}
		if err := h.queries.UpsertConfig(ctx, store.UpsertConfigParams{
			Group:     group,
			Key:       key,
			Value:     value,
			UpdatedAt: now,
		}); err != nil {
			slog.Error("upserting config", "group", group, "key", key, "error", err)
			WriteInternalError(w, "Failed to update configuration")
			return
		}
	}

	h.cache.InvalidateConfig()
	_ = h.events.LogConfigEvent(ctx, model.EventLevelInfo, "site config updated",
		middleware.GetUserIDPtr(r), map[string]any{"group": group, "keys": len(values)})

	updated, err := h.cache.Config.Group(ctx, group)
	if err != nil {
		WriteInternalError(w, "Failed to read configuration")
		return
	}
	WriteSuccess(w, updated, nil)
}

// DeleteConfigKey handles DELETE /api/v1/admin/config/{group}/{key}.
func (h *Handler) DeleteConfigKey(w http.ResponseWriter, r *http.Request) {
	group := chi.URLParam(r, "group")
	key := chi.URLParam(r, "key")
	if !model.IsValidConfigGroup(group) {
		WriteNotFound(w, "Unknown config group")
		return
	}

	if err := h.queries.DeleteConfigKey(r.Context(), store.DeleteConfigKeyParams{
		Group: group, Key: key,
	}); err != nil {
		slog.Error("deleting config key", "group", group, "key", key, "error", err)
		WriteInternalError(w, "Failed to delete configuration key")
		return
	}

	h.cache.InvalidateConfig()
	w.WriteHeader(http.StatusNoContent)
}
