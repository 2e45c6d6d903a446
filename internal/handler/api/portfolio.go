// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/automindlabs/site-go/internal/orderable"
	"github.com/automindlabs/site-go/internal/store"
	"github.com/automindlabs/site-go/internal/util"
)

// PortfolioResponse represents a portfolio item in API responses.
type PortfolioResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"image_url,omitempty"`
	ProjectURL  string    `json:"project_url,omitempty"`
	IsVisible   bool      `json:"is_visible"`
	Position    int64     `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func portfolioToResponse(p store.PortfolioItem) PortfolioResponse {
	return PortfolioResponse{
		ID:          p.ID,
		Title:       p.Title,
		Slug:        p.Slug,
		Description: p.Description,
		ImageURL:    util.StringFromNull(p.ImageURL),
		ProjectURL:  util.StringFromNull(p.ProjectURL),
		IsVisible:   p.IsVisible,
		Position:    p.Position,
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func portfolioItemsToResponse(items []store.PortfolioItem) []PortfolioResponse {
	out := make([]PortfolioResponse, 0, len(items))
	for _, p := range items {
		out = append(out, portfolioToResponse(p))
	}
	return out
}

// ListPublicPortfolio handles GET /api/v1/portfolio.
func (h *Handler) ListPublicPortfolio(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListVisiblePortfolioItems(r.Context())
	if err != nil {
		slog.Error("listing visible portfolio", "error", err)
		WriteInternalError(w, "Failed to list portfolio")
		return
	}
	WriteSuccess(w, portfolioItemsToResponse(items), nil)
}

// GetPublicPortfolioItem handles GET /api/v1/portfolio/{slug}.
func (h *Handler) GetPublicPortfolioItem(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	item, err := h.queries.GetPortfolioItemBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Portfolio item not found")
		} else {
			WriteInternalError(w, "Failed to retrieve portfolio item")
		}
		return
	}
	if !item.IsVisible {
		WriteNotFound(w, "Portfolio item not found")
		return
	}
	WriteSuccess(w, portfolioToResponse(item), nil)
}

// ListPortfolio handles GET /api/v1/admin/portfolio.
func (h *Handler) ListPortfolio(w http.ResponseWriter, r *http.Request) {
	items, err := h.queries.ListPortfolioItems(r.Context())
	if err != nil {
		slog.Error("listing portfolio", "error", err)
		WriteInternalError(w, "Failed to list portfolio")
		return
	}
	WriteSuccess(w, portfolioItemsToResponse(items), nil)
}

// PortfolioRequest is the body for creating or updating a portfolio
// item. An empty slug is derived from the title.
type PortfolioRequest struct {
	Title       string `json:"title"`
	Slug        string `json:"slug,omitempty"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url,omitempty"`
	ProjectURL  string `json:"project_url,omitempty"`
}

func (req *PortfolioRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "Title is required"
	}
	if req.Slug != "" && !util.IsValidSlug(req.Slug) {
		fieldErrors["slug"] = "Slug may contain lowercase letters, digits, and hyphens"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

func (req *PortfolioRequest) resolveSlug() string {
	if req.Slug != "" {
		return req.Slug
	}
	return util.Slugify(req.Title)
}

// CreatePortfolioItem handles POST /api/v1/admin/portfolio.
func (h *Handler) CreatePortfolioItem(w http.ResponseWriter, r *http.Request) {
	var req PortfolioRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	slug := req.resolveSlug()
	exists, err := h.queries.PortfolioSlugExists(ctx, slug)
	if err != nil {
		WriteInternalError(w, "Failed to check slug")
		return
	}
	if exists {
		WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
		return
	}

	count, err := h.queries.CountPortfolioItems(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to create portfolio item")
		return
	}

	now := time.Now()
	item, err := h.queries.CreatePortfolioItem(ctx, store.CreatePortfolioItemParams{
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ProjectURL:  req.ProjectURL,
		IsVisible:   true,
		Position:    orderable.NextPosition(count),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("creating portfolio item", "error", err)
		WriteInternalError(w, "Failed to create portfolio item")
		return
	}
	WriteCreated(w, portfolioToResponse(item))
}

// UpdatePortfolioItem handles PATCH /api/v1/admin/portfolio/{id}.
func (h *Handler) UpdatePortfolioItem(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "portfolio item", func(id int64) (store.PortfolioItem, error) {
		return h.queries.GetPortfolioItemByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req PortfolioRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	slug := req.resolveSlug()
	exists, err := h.queries.PortfolioSlugExistsExcluding(ctx, store.PortfolioSlugExistsExcludingParams{
		Slug: slug, ID: existing.ID,
	})
	if err != nil {
		WriteInternalError(w, "Failed to check slug")
		return
	}
	if exists {
		WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
		return
	}

	item, err := h.queries.UpdatePortfolioItem(ctx, store.UpdatePortfolioItemParams{
		ID:          existing.ID,
		Title:       req.Title,
		Slug:        slug,
		Description: req.Description,
		ImageURL:    req.ImageURL,
		ProjectURL:  req.ProjectURL,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("updating portfolio item", "id", existing.ID, "error", err)
		WriteInternalError(w, "Failed to update portfolio item")
		return
	}
	WriteSuccess(w, portfolioToResponse(item), nil)
}

// UpdatePortfolioItemVisibility handles PATCH /api/v1/admin/portfolio/{id}/visibility.
func (h *Handler) UpdatePortfolioItemVisibility(w http.ResponseWriter, r *http.Request) {
	h.updateVisibility(w, r, "portfolio item", func(ctx context.Context, id int64, visible bool, now time.Time) error {
		return h.queries.UpdatePortfolioItemVisibility(ctx, store.UpdatePortfolioItemVisibilityParams{
			ID: id, IsVisible: visible, UpdatedAt: now,
		})
	})
}

// CommitPortfolioOrder handles PUT /api/v1/admin/portfolio/order.
func (h *Handler) CommitPortfolioOrder(w http.ResponseWriter, r *http.Request) {
	h.commitOrder(w, r, "portfolio item", h.queries.UpdatePortfolioItemPosition)
}

// DeletePortfolioItem handles DELETE /api/v1/admin/portfolio/{id}.
func (h *Handler) DeletePortfolioItem(w http.ResponseWriter, r *http.Request) {
	item, ok := requireEntityByID(w, r, "portfolio item", func(id int64) (store.PortfolioItem, error) {
		return h.queries.GetPortfolioItemByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeletePortfolioItem(r.Context(), item.ID); err != nil {
		slog.Error("deleting portfolio item", "id", item.ID, "error", err)
		WriteInternalError(w, "Failed to delete portfolio item")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
