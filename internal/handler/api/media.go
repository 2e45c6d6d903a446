// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/automindlabs/site-go/internal/middleware"
	"github.com/automindlabs/site-go/internal/model"
	"github.com/automindlabs/site-go/internal/store"
	"github.com/automindlabs/site-go/internal/util"
)

// MediaResponse represents an uploaded file in API responses.
type MediaResponse struct {
	ID           int64     `json:"id"`
	UUID         string    `json:"uuid"`
	Filename     string    `json:"filename"`
	OriginalName string    `json:"original_name"`
	MimeType     string    `json:"mime_type"`
	Size         int64     `json:"size"`
	Width        *int64    `json:"width,omitempty"`
	Height       *int64    `json:"height,omitempty"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnail_url,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

func mediaToResponse(m store.Media) MediaResponse {
	return MediaResponse{
		ID:           m.ID,
		UUID:         m.UUID,
		Filename:     m.Filename,
		OriginalName: m.OriginalName,
		MimeType:     m.MimeType,
		Size:         m.Size,
		Width:        util.Int64PtrFromNull(m.Width),
		Height:       util.Int64PtrFromNull(m.Height),
		URL:          m.URL,
		ThumbnailURL: util.StringFromNull(m.ThumbnailURL),
		CreatedAt:    m.CreatedAt,
	}
}

// ListMedia handles GET /api/v1/admin/media.
func (h *Handler) ListMedia(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r, 50, 200)

	items, err := h.queries.ListMedia(r.Context(), store.ListMediaParams{
		Limit:  int64(perPage),
		Offset: int64((page - 1) * perPage),
	})
	if err != nil {
		slog.Error("listing media", "error", err)
		WriteInternalError(w, "Failed to list media")
		return
	}

	total, err := h.queries.CountMedia(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list media")
		return
	}

	out := make([]MediaResponse, 0, len(items))
	for _, m := range items {
		out = append(out, mediaToResponse(m))
	}
	WriteSuccess(w, out, &Meta{Total: total, Page: page, PerPage: perPage})
}

// UploadMedia handles POST /api/v1/media. Multipart upload with the
// file under the "file" field; returns the stored record with its
// public URL.
func (h *Handler) UploadMedia(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, model.MaxUploadSize)
	if err := r.ParseMultipartForm(model.MaxUploadSize); err != nil {
		WriteBadRequest(w, "Upload too large or malformed", nil)
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		WriteBadRequest(w, "Missing file field", nil)
		return
	}
	defer func() { _ = file.Close() }()

	var userID int64
	if user := middleware.GetUser(r); user != nil {
		userID = user.User.ID
	}

	media, err := h.media.Upload(r.Context(), file, header, userID)
	if err != nil {
		slog.Warn("media upload rejected", "filename", header.Filename, "error", err)
		WriteBadRequest(w, err.Error(), nil)
		return
	}

	_ = h.events.LogMediaEvent(r.Context(), model.EventLevelInfo, "media uploaded",
		middleware.GetUserIDPtr(r), map[string]any{"media_id": media.ID, "filename": media.Filename})
	WriteCreated(w, mediaToResponse(media))
}

// DeleteMedia handles DELETE /api/v1/admin/media/{id}.
func (h *Handler) DeleteMedia(w http.ResponseWriter, r *http.Request) {
	media, ok := requireEntityByID(w, r, "media", func(id int64) (store.Media, error) {
		return h.queries.GetMediaByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.media.Delete(r.Context(), media.ID); err != nil {
		slog.Error("deleting media", "id", media.ID, "error", err)
		WriteInternalError(w, "Failed to delete media")
		return
	}

	_ = h.events.LogMediaEvent(r.Context(), model.EventLevelInfo, "media deleted",
		middleware.GetUserIDPtr(r), map[string]any{"media_id": media.ID})
	w.WriteHeader(http.StatusNoContent)
}
