// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/automindlabs/site-go/internal/model"
	"github.com/automindlabs/site-go/internal/orderable"
	"github.com/automindlabs/site-go/internal/store"
	"github.com/automindlabs/site-go/internal/util"
)

// SectionResponse represents a page section in API responses.
type SectionResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	DisplayName string    `json:"display_name"`
	Page        string    `json:"page"`
	IsVisible   bool      `json:"is_visible"`
	Position    int64     `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func sectionToResponse(s store.Section) SectionResponse {
	return SectionResponse{
		ID:          s.ID,
		Name:        s.Name,
		DisplayName: s.DisplayName,
		Page:        s.Page,
		IsVisible:   s.IsVisible,
		Position:    s.Position,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func sectionsToResponse(sections []store.Section) []SectionResponse {
	out := make([]SectionResponse, 0, len(sections))
	for _, s := range sections {
		out = append(out, sectionToResponse(s))
	}
	return out
}

// ListPublicSections handles GET /api/v1/sections?page=. The public
// site gets every registered section with its visibility flag; an
// unregistered section name simply has no row and renders by default.
func (h *Handler) ListPublicSections(w http.ResponseWriter, r *http.Request) {
	page := r.URL.Query().Get("page")
	if page == "" {
		page = model.PageHome
	}
	if !model.IsValidPage(page) {
		WriteBadRequest(w, "Unknown page", nil)
		return
	}

	registry, err := h.cache.Sections.Registry(r.Context())
	if err != nil {
		slog.Error("loading section registry", "error", err)
		WriteInternalError(w, "Failed to list sections")
		return
	}
	WriteSuccess(w, sectionsToResponse(registry.Page(page)), nil)
}

// ListSections handles GET /api/v1/admin/sections. All pages, straight
// from the store so the admin always sees committed state.
func (h *Handler) ListSections(w http.ResponseWriter, r *http.Request) {
	sections, err := h.queries.ListSections(r.Context())
	if err != nil {
		slog.Error("listing sections", "error", err)
		WriteInternalError(w, "Failed to list sections")
		return
	}
	WriteSuccess(w, sectionsToResponse(sections), nil)
}

// CreateSectionRequest is the body for registering a section.
type CreateSectionRequest struct {
	Name        string `json:"name"`
	DisplayName string `json:"display_name"`
	Page        string `json:"page"`
}

// CreateSection handles POST /api/v1/admin/sections. Name and page are
// fixed at creation; only the display name can change later.
func (h *Handler) CreateSection(w http.ResponseWriter, r *http.Request) {
	var req CreateSectionRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}

	fieldErrors := make(map[string]string)
	name := strings.TrimSpace(req.Name)
	if name == "" || !util.IsValidSlug(name) {
		fieldErrors["name"] = "Name must be a lowercase slug"
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		fieldErrors["display_name"] = "Display name is required"
	}
	if !model.IsValidPage(req.Page) {
		fieldErrors["page"] = "Page must be one of: " + strings.Join(model.ValidPages, ", ")
	}
	if len(fieldErrors) > 0 {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	if _, err := h.queries.GetSectionByName(ctx, name); err == nil {
		WriteValidationError(w, map[string]string{"name": "Section name already registered"})
		return
	}

	count, err := h.queries.CountSectionsByPage(ctx, req.Page)
	if err != nil {
		WriteInternalError(w, "Failed to create section")
		return
	}

	now := time.Now()
	section, err := h.queries.CreateSection(ctx, store.CreateSectionParams{
		Name:        name,
		DisplayName: req.DisplayName,
		Page:        req.Page,
		IsVisible:   true,
		Position:    orderable.NextPosition(count),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("creating section", "name", name, "error", err)
		WriteInternalError(w, "Failed to create section")
		return
	}

	h.cache.InvalidateSections(ctx)
	WriteCreated(w, sectionToResponse(section))
}

// UpdateSectionRequest is the body for renaming a section's label.
type UpdateSectionRequest struct {
	DisplayName string `json:"display_name"`
}

// UpdateSection handles PATCH /api/v1/admin/sections/{id}.
func (h *Handler) UpdateSection(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "section", func(id int64) (store.Section, error) {
		return h.queries.GetSectionByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req UpdateSectionRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if strings.TrimSpace(req.DisplayName) == "" {
		WriteValidationError(w, map[string]string{"display_name": "Display name is required"})
		return
	}

	section, err := h.queries.UpdateSection(r.Context(), store.UpdateSectionParams{
		ID:          existing.ID,
		DisplayName: req.DisplayName,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("updating section", "id", existing.ID, "error", err)
		WriteInternalError(w, "Failed to update section")
		return
	}

	h.cache.InvalidateSections(r.Context())
	WriteSuccess(w, sectionToResponse(section), nil)
}

// UpdateSectionVisibility handles PATCH /api/v1/admin/sections/{id}/visibility.
func (h *Handler) UpdateSectionVisibility(w http.ResponseWriter, r *http.Request) {
	h.updateVisibility(w, r, "section", func(ctx context.Context, id int64, visible bool, now time.Time) error {
		err := h.queries.UpdateSectionVisibility(ctx, store.UpdateSectionVisibilityParams{
			ID: id, IsVisible: visible, UpdatedAt: now,
		})
		if err == nil {
			h.cache.InvalidateSections(ctx)
		}
		return err
	})
}

// CommitSectionOrder handles PUT /api/v1/admin/sections/order.
func (h *Handler) CommitSectionOrder(w http.ResponseWriter, r *http.Request) {
	h.commitOrder(w, r, "section", h.queries.UpdateSectionPosition)
	h.cache.InvalidateSections(r.Context())
}

// DeleteSection handles DELETE /api/v1/admin/sections/{id}. Removing a
// row makes the section unmanaged, which renders by default.
func (h *Handler) DeleteSection(w http.ResponseWriter, r *http.Request) {
	section, ok := requireEntityByID(w, r, "section", func(id int64) (store.Section, error) {
		return h.queries.GetSectionByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteSection(r.Context(), section.ID); err != nil {
		slog.Error("deleting section", "id", section.ID, "error", err)
		WriteInternalError(w, "Failed to delete section")
		return
	}

	h.cache.InvalidateSections(r.Context())
	w.WriteHeader(http.StatusNoContent)
}
