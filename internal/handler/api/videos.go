// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/automindlabs/site-go/internal/model"
	"github.com/automindlabs/site-go/internal/orderable"
	"github.com/automindlabs/site-go/internal/store"
	"github.com/automindlabs/site-go/internal/util"
)

// VideoResponse represents an embedded video in API responses.
type VideoResponse struct {
	ID           int64     `json:"id"`
	Title        string    `json:"title"`
	Platform     string    `json:"platform"`
	VideoURL     string    `json:"video_url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	IsVisible    bool      `json:"is_visible"`
	Position     int64     `json:"position"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func videoToResponse(v store.Video) VideoResponse {
	return VideoResponse{
		ID:           v.ID,
		Title:        v.Title,
		Platform:     v.Platform,
		VideoURL:     v.VideoURL,
		ThumbnailURL: util.StringFromNull(v.ThumbnailURL),
		IsVisible:    v.IsVisible,
		Position:     v.Position,
		CreatedAt:    v.CreatedAt,
		UpdatedAt:    v.UpdatedAt,
	}
}

func videosToResponse(videos []store.Video) []VideoResponse {
	out := make([]VideoResponse, 0, len(videos))
	for _, v := range videos {
		out = append(out, videoToResponse(v))
	}
	return out
}

// ListPublicVideos handles GET /api/v1/videos. An optional ?platform=
// query narrows the result.
func (h *Handler) ListPublicVideos(w http.ResponseWriter, r *http.Request) {
	var videos []store.Video
	var err error

	if platform := r.URL.Query().Get("platform"); platform != "" {
		if !model.IsValidPlatform(platform) {
			WriteBadRequest(w, "Unknown platform", nil)
			return
		}
		videos, err = h.queries.ListVisibleVideosByPlatform(r.Context(), platform)
	} else {
		videos, err = h.queries.ListVisibleVideos(r.Context())
	}
	if err != nil {
		slog.Error("listing visible videos", "error", err)
		WriteInternalError(w, "Failed to list videos")
		return
	}
	WriteSuccess(w, videosToResponse(videos), nil)
}

// ListVideos handles GET /api/v1/admin/videos.
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	videos, err := h.queries.ListVideos(r.Context())
	if err != nil {
		slog.Error("listing videos", "error", err)
		WriteInternalError(w, "Failed to list videos")
		return
	}
	WriteSuccess(w, videosToResponse(videos), nil)
}

// VideoRequest is the body for creating or updating a video.
type VideoRequest struct {
	Title        string `json:"title"`
	Platform     string `json:"platform"`
	VideoURL     string `json:"video_url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
}

func (req *VideoRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "Title is required"
	}
	if !model.IsValidPlatform(req.Platform) {
		fieldErrors["platform"] = "Platform must be one of: " + strings.Join(model.ValidPlatforms, ", ")
	}
	if u, err := url.Parse(req.VideoURL); err != nil || u.Scheme == "" || u.Host == "" {
		fieldErrors["video_url"] = "A valid video URL is required"
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// CreateVideo handles POST /api/v1/admin/videos.
func (h *Handler) CreateVideo(w http.ResponseWriter, r *http.Request) {
	var req VideoRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	ctx := r.Context()
	count, err := h.queries.CountVideos(ctx)
	if err != nil {
		WriteInternalError(w, "Failed to create video")
		return
	}

	now := time.Now()
	video, err := h.queries.CreateVideo(ctx, store.CreateVideoParams{
		Title:        req.Title,
		Platform:     req.Platform,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		IsVisible:    true,
		Position:     orderable.NextPosition(count),
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		slog.Error("creating video", "error", err)
		WriteInternalError(w, "Failed to create video")
		return
	}
	WriteCreated(w, videoToResponse(video))
}

// UpdateVideo handles PATCH /api/v1/admin/videos/{id}.
func (h *Handler) UpdateVideo(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "video", func(id int64) (store.Video, error) {
		return h.queries.GetVideoByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req VideoRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteBadRequest(w, "Invalid request body", nil)
		return
	}
	if fieldErrors := req.validate(); fieldErrors != nil {
		WriteValidationError(w, fieldErrors)
		return
	}

	video, err := h.queries.UpdateVideo(r.Context(), store.UpdateVideoParams{
		ID:           existing.ID,
		Title:        req.Title,
		Platform:     req.Platform,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
		UpdatedAt:    time.Now(),
	})
	if err != nil {
		slog.Error("updating video", "id", existing.ID, "error", err)
		WriteInternalError(w, "Failed to update video")
		return
	}
	WriteSuccess(w, videoToResponse(video), nil)
}

// UpdateVideoVisibility handles PATCH /api/v1/admin/videos/{id}/visibility.
func (h *Handler) UpdateVideoVisibility(w http.ResponseWriter, r *http.Request) {
	h.updateVisibility(w, r, "video", func(ctx context.Context, id int64, visible bool, now time.Time) error {
		return h.queries.UpdateVideoVisibility(ctx, store.UpdateVideoVisibilityParams{
			ID: id, IsVisible: visible, UpdatedAt: now,
		})
	})
}

// CommitVideoOrder handles PUT /api/v1/admin/videos/order.
func (h *Handler) CommitVideoOrder(w http.ResponseWriter, r *http.Request) {
	h.commitOrder(w, r, "video", h.queries.UpdateVideoPosition)
}

// DeleteVideo handles DELETE /api/v1/admin/videos/{id}.
func (h *Handler) DeleteVideo(w http.ResponseWriter, r *http.Request) {
	video, ok := requireEntityByID(w, r, "video", func(id int64) (store.Video, error) {
		return h.queries.GetVideoByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteVideo(r.Context(), video.ID); err != nil {
		slog.Error("deleting video", "id", video.ID, "error", err)
		WriteInternalError(w, "Failed to delete video")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
