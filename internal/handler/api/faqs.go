// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/automindlabs/site-go/internal/middleware"
	"github.com/automindlabs/site-go/internal/model"
	"github.com/automindlabs/site-go/internal/orderable"
	"github.com/automindlabs/site-go/internal/store"
)

// FaqResponse represents a FAQ in API responses.
type FaqResponse struct {
	ID        int64     `json:"id"`
	Question  string    `json:"question"`
	Answer    string    `json:"answer"`
	IsVisible bool      `json:"is_visible"`
	Position  int64     `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func faqToResponse(f store.Faq) FaqResponse {
	return FaqResponse{
		ID:        f.ID,
		Question:  f.Question,
		Answer:    f.Answer,
		IsVisible: f.IsVisible,
		Position:  f.Position,
		CreatedAt: f.CreatedAt,
		UpdatedAt: f.UpdatedAt,
	}
}

func faqsToResponse(faqs []store.Faq) []FaqResponse {
	out := make([]FaqResponse, 0, len(faqs))
	for _, f := range faqs {
		out = append(out, faqToResponse(f))
	}
	return out
}

// ListPublicFaqs handles GET /api/v1/faqs. Only visible entries, in
// display order.
func (h *Handler) ListPublicFaqs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.queries.ListVisibleFaqs(r.Context())
	if err != nil {
		slog.Error("listing visible faqs", "error", err)
		WriteInternalError(w, "Failed to list FAQs")
		return
	}
	WriteSuccess(w, faqsToResponse(faqs), nil)
}

// ListFaqs handles GET /api/v1/admin/faqs. Hidden entries included.
func (h *Handler) ListFaqs(w http.ResponseWriter, r *http.Request) {
	faqs, err := h.queries.ListFaqs(r.Context())
	if err != nil {
		slog.Error("listing faqs", "error", err)
		WriteInternalError(w, "Failed to list FAQs")
		return
	}
	WriteSuccess(w, faqsToResponse(faqs), nil)
}

// FaqRequest is the body for creating or updating a FAQ.
type FaqRequest struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

func (req *FaqRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Question) == "" {
		fieldErrors["question"] = "Question is required"
	}
	if strings.TrimSpace(req.Answer) == "" {
		fieldErrors["answer"] = "Answer is required"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// CreateFaq handles POST /api/v1/admin/faqs. New entries append after
// the existing ones.
func (h *Handler) CreateFaq(w http.ResponseWriter, r *http.Request) {
	var req FaqRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	count, err := h.queries.CountFaqs(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to create FAQ")
		return
	}

	now := time.Now()
	faq, err := h.queries.CreateFaq(ctx, store.CreateFaqParams{
		Question:  req.Question,
		Answer:    req.Answer,
		IsVisible: true,
		Position:  orderable.NextPosition(count),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("creating faq", "error", err)
		WriteInternalError(w, "Failed to create FAQ")
		return
	}

	_ = h.events.LogContentEvent(ctx, model.EventLevelInfo, "FAQ created",
		middleware.GetUserIDPtr(r), map[string]any{"faq_id": faq.ID})
	WriteCreated(w, faqToResponse(faq))
}

// UpdateFaq handles PATCH /api/v1/admin/faqs/{id}. Only payload
// fields; visibility and position have their own endpoints.
func (h *Handler) UpdateFaq(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "FAQ", func(id int64) (store.Faq, error) {
		return h.queries.GetFaqByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req FaqRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	faq, err := h.queries.UpdateFaq(r.Context(), store.UpdateFaqParams{
		ID:        existing.ID,
		Question:  req.Question,
		Answer:    req.Answer,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("updating faq", "id", existing.ID, "error", err)
		WriteInternalError(w, "Failed to update FAQ")
		return
	}
	WriteSuccess(w, faqToResponse(faq), nil)
}

// UpdateFaqVisibility handles PATCH /api/v1/admin/faqs/{id}/visibility.
func (h *Handler) UpdateFaqVisibility(w http.ResponseWriter, r *http.Request) {
	h.updateVisibility(w, r, "FAQ", func(ctx context.Context, id int64, visible bool, now time.Time) error {
		return h.queries.UpdateFaqVisibility(ctx, store.UpdateFaqVisibilityParams{
			ID: id, IsVisible: visible, UpdatedAt: now,
		})
	})
}

// CommitFaqOrder handles PUT /api/v1/admin/faqs/order.
func (h *Handler) CommitFaqOrder(w http.ResponseWriter, r *http.Request) {
	h.commitOrder(w, r, "FAQ", h.queries.UpdateFaqPosition)
}

// DeleteFaq handles DELETE /api/v1/admin/faqs/{id}.
func (h *Handler) DeleteFaq(w http.ResponseWriter, r *http.Request) {
	faq, ok := requireEntityByID(w, r, "FAQ", func(id int64) (store.Faq, error) {
		return h.queries.GetFaqByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteFaq(r.Context(), faq.ID); err != nil {
		slog.Error("deleting faq", "id", faq.ID, "error", err)
		WriteInternalError(w, "Failed to delete FAQ")
		return
	}

	_ = h.events.LogContentEvent(r.Context(), model.EventLevelInfo, "FAQ deleted",
		middleware.GetUserIDPtr(r), map[string]any{"faq_id": faq.ID})
	w.WriteHeader(http.StatusNoContent)
}
