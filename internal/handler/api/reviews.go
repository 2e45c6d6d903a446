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
)

// ReviewResponse represents a review in API responses.
type ReviewResponse struct {
	ID        int64     `json:"id"`
	Author    string    `json:"author"`
	Content   string    `json:"content"`
	Rating    int64     `json:"rating"`
	IsVisible bool      `json:"is_visible"`
	Position  int64     `json:"position"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func reviewToResponse(rv store.Review) ReviewResponse {
	return ReviewResponse{
		ID:        rv.ID,
		Author:    rv.Author,
		Content:   rv.Content,
		Rating:    rv.Rating,
		IsVisible: rv.IsVisible,
		Position:  rv.Position,
		CreatedAt: rv.CreatedAt,
		UpdatedAt: rv.UpdatedAt,
	}
}

func reviewsToResponse(reviews []store.Review) []ReviewResponse {
	out := make([]ReviewResponse, 0, len(reviews))
	for _, rv := range reviews {
		out = append(out, reviewToResponse(rv))
	}
	return out
}

// ListPublicReviews handles GET /api/v1/reviews.
func (h *Handler) ListPublicReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.queries.ListVisibleReviews(r.Context())
	if err != nil {
		slog.Error("listing visible reviews", "error", err)
		WriteInternalError(w, "Failed to list reviews")
		return
	}
	WriteSuccess(w, reviewsToResponse(reviews), nil)
}

// ListReviews handles GET /api/v1/admin/reviews.
func (h *Handler) ListReviews(w http.ResponseWriter, r *http.Request) {
	reviews, err := h.queries.ListReviews(r.Context())
	if err != nil {
		slog.Error("listing reviews", "error", err)
		WriteInternalError(w, "Failed to list reviews")
		return
	}
	WriteSuccess(w, reviewsToResponse(reviews), nil)
}

// ReviewRequest is the body for creating or updating a review.
type ReviewRequest struct {
	Author  string `json:"author"`
	Content string `json:"content"`
	Rating  int64  `json:"rating"`
}

func (req *ReviewRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Author) == "" {
		fieldErrors["author"] = "Author is required"
	}
	if strings.TrimSpace(req.Content) == "" {
		fieldErrors["content"] = "Content is required"
	}
	if req.Rating < model.MinRating || req.Rating > model.MaxRating {
		fieldErrors["rating"] = "Rating must be between 1 and 5"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// CreateReview handles POST /api/v1/admin/reviews.
func (h *Handler) CreateReview(w http.ResponseWriter, r *http.Request) {
	var req ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	count, err := h.queries.CountReviews(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to create review")
		return
	}

	now := time.Now()
	review, err := h.queries.CreateReview(ctx, store.CreateReviewParams{
		Author:    req.Author,
		Content:   req.Content,
		Rating:    req.Rating,
		IsVisible: true,
		Position:  orderable.NextPosition(count),
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		slog.Error("creating review", "error", err)
		WriteInternalError(w, "Failed to create review")
		return
	}
	WriteCreated(w, reviewToResponse(review))
}

// UpdateReview handles PATCH /api/v1/admin/reviews/{id}.
func (h *Handler) UpdateReview(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "review", func(id int64) (store.Review, error) {
		return h.queries.GetReviewByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req ReviewRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	review, err := h.queries.UpdateReview(r.Context(), store.UpdateReviewParams{
		ID:        existing.ID,
		Author:    req.Author,
		Content:   req.Content,
		Rating:    req.Rating,
		UpdatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("updating review", "id", existing.ID, "error", err)
		WriteInternalError(w, "Failed to update review")
		return
	}
	WriteSuccess(w, reviewToResponse(review), nil)
}

// UpdateReviewVisibility handles PATCH /api/v1/admin/reviews/{id}/visibility.
func (h *Handler) UpdateReviewVisibility(w http.ResponseWriter, r *http.Request) {
	h.updateVisibility(w, r, "review", func(ctx context.Context, id int64, visible bool, now time.Time) error {
		return h.queries.UpdateReviewVisibility(ctx, store.UpdateReviewVisibilityParams{
			ID: id, IsVisible: visible, UpdatedAt: now,
		})
	})
}

// CommitReviewOrder handles PUT /api/v1/admin/reviews/order.
func (h *Handler) CommitReviewOrder(w http.ResponseWriter, r *http.Request) {
	h.commitOrder(w, r, "review", h.queries.UpdateReviewPosition)
}

// DeleteReview handles DELETE /api/v1/admin/reviews/{id}.
func (h *Handler) DeleteReview(w http.ResponseWriter, r *http.Request) {
	review, ok := requireEntityByID(w, r, "review", func(id int64) (store.Review, error) {
		return h.queries.GetReviewByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteReview(r.Context(), review.ID); err != nil {
		slog.Error("deleting review", "id", review.ID, "error", err)
		WriteInternalError(w, "Failed to delete review")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
