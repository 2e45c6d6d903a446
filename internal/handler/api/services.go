// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/automindlabs/site-go/internal/orderable"
	"github.com/automindlabs/site-go/internal/store"
	"github.com/automindlabs/site-go/internal/util"
)

// ServiceResponse represents an offered service in API responses.
type ServiceResponse struct {
	ID          int64     `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Icon        string    `json:"icon,omitempty"`
	IsVisible   bool      `json:"is_visible"`
	Position    int64     `json:"position"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func serviceToResponse(s store.Service) ServiceResponse {
	return ServiceResponse{
		ID:          s.ID,
		Title:       s.Title,
		Description: s.Description,
		Icon:        util.StringFromNull(s.Icon),
		IsVisible:   s.IsVisible,
		Position:    s.Position,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}

func servicesToResponse(services []store.Service) []ServiceResponse {
	out := make([]ServiceResponse, 0, len(services))
	for _, s := range services {
		out = append(out, serviceToResponse(s))
	}
	return out
}

// ListPublicServices handles GET /api/v1/services.
func (h *Handler) ListPublicServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.queries.ListVisibleServices(r.Context())
	if err != nil {
		slog.Error("listing visible services", "error", err)
		WriteInternalError(w, "Failed to list services")
		return
	}
	WriteSuccess(w, servicesToResponse(services), nil)
}

// ListServices handles GET /api/v1/admin/services.
func (h *Handler) ListServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.queries.ListServices(r.Context())
	if err != nil {
		slog.Error("listing services", "error", err)
		WriteInternalError(w, "Failed to list services")
		return
	}
	WriteSuccess(w, servicesToResponse(services), nil)
}

// ServiceRequest is the body for creating or updating a service.
type ServiceRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Icon        string `json:"icon,omitempty"`
}

func (req *ServiceRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "Title is required"
	}
	if strings.TrimSpace(req.Description) == "" {
		fieldErrors["description"] = "Description is required"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// CreateService handles POST /api/v1/admin/services.
func (h *Handler) CreateService(w http.ResponseWriter, r *http.Request) {
	var req ServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	count, err := h.queries.CountServices(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to create service")
		return
	}

	now := time.Now()
	svc, err := h.queries.CreateService(ctx, store.CreateServiceParams{
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		IsVisible:   true,
		Position:    orderable.NextPosition(count),
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("creating service", "error", err)
		WriteInternalError(w, "Failed to create service")
		return
	}
	WriteCreated(w, serviceToResponse(svc))
}

// UpdateService handles PATCH /api/v1/admin/services/{id}.
func (h *Handler) UpdateService(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "service", func(id int64) (store.Service, error) {
		return h.queries.GetServiceByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req ServiceRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	svc, err := h.queries.UpdateService(r.Context(), store.UpdateServiceParams{
		ID:          existing.ID,
		Title:       req.Title,
		Description: req.Description,
		Icon:        req.Icon,
		UpdatedAt:   time.Now(),
	})
	if err != nil {
		slog.Error("updating service", "id", existing.ID, "error", err)
		WriteInternalError(w, "Failed to update service")
		return
	}
	WriteSuccess(w, serviceToResponse(svc), nil)
}

// UpdateServiceVisibility handles PATCH /api/v1/admin/services/{id}/visibility.
func (h *Handler) UpdateServiceVisibility(w http.ResponseWriter, r *http.Request) {
	h.updateVisibility(w, r, "service", func(ctx context.Context, id int64, visible bool, now time.Time) error {
		return h.queries.UpdateServiceVisibility(ctx, store.UpdateServiceVisibilityParams{
			ID: id, IsVisible: visible, UpdatedAt: now,
		})
	})
}

// CommitServiceOrder handles PUT /api/v1/admin/services/order.
func (h *Handler) CommitServiceOrder(w http.ResponseWriter, r *http.Request) {
	h.commitOrder(w, r, "service", h.queries.UpdateServicePosition)
}

// DeleteService handles DELETE /api/v1/admin/services/{id}.
func (h *Handler) DeleteService(w http.ResponseWriter, r *http.Request) {
	svc, ok := requireEntityByID(w, r, "service", func(id int64) (store.Service, error) {
		return h.queries.GetServiceByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteService(r.Context(), svc.ID); err != nil {
		slog.Error("deleting service", "id", svc.ID, "error", err)
		WriteInternalError(w, "Failed to delete service")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
