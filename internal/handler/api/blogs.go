// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/automindlabs/site-go/internal/store"
	"github.com/automindlabs/site-go/internal/util"
)

// BlogResponse represents a blog post in API responses. Public reads
// get the rendered HTML; the Markdown source is only meaningful in the
// admin editor.
type BlogResponse struct {
	ID          int64      `json:"id"`
	Title       string     `json:"title"`
	Slug        string     `json:"slug"`
	ContentMd   string     `json:"content_md,omitempty"`
	ContentHTML string     `json:"content_html"`
	Excerpt     string     `json:"excerpt,omitempty"`
	CoverURL    string     `json:"cover_url,omitempty"`
	IsPublished bool       `json:"is_published"`
	PublishedAt *time.Time `json:"published_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func blogToResponse(b store.Blog, includeSource bool) BlogResponse {
	resp := BlogResponse{
		ID:          b.ID,
		Title:       b.Title,
		Slug:        b.Slug,
		ContentHTML: b.ContentHTML,
		Excerpt:     util.StringFromNull(b.Excerpt),
		CoverURL:    util.StringFromNull(b.CoverURL),
		IsPublished: b.IsPublished,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
	if includeSource {
		resp.ContentMd = b.ContentMd
	}
	if b.PublishedAt.Valid {
		resp.PublishedAt = &b.PublishedAt.Time
	}
	return resp
}

func blogsToResponse(blogs []store.Blog, includeSource bool) []BlogResponse {
	out := make([]BlogResponse, 0, len(blogs))
	for _, b := range blogs {
		out = append(out, blogToResponse(b, includeSource))
	}
	return out
}

// ListPublicBlogs handles GET /api/v1/blogs. Published posts only,
// newest first.
func (h *Handler) ListPublicBlogs(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r, 10, 50)
	now := time.Now()

	blogs, err := h.queries.ListPublishedBlogs(r.Context(), store.ListPublishedBlogsParams{
		Now:    now,
		Limit:  int64(perPage),
		Offset: int64((page - 1) * perPage),
	})
	if err != nil {
		slog.Error("listing published blogs", "error", err)
		WriteInternalError(w, "Failed to list blog posts")
		return
	}

	total, err := h.queries.CountPublishedBlogs(r.Context(), now)
	if err != nil {
		WriteInternalError(w, "Failed to list blog posts")
		return
	}

	WriteSuccess(w, blogsToResponse(blogs, false), &Meta{Total: total, Page: page, PerPage: perPage})
}

// GetPublicBlog handles GET /api/v1/blogs/{slug}.
func (h *Handler) GetPublicBlog(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")
	blog, err := h.queries.GetBlogBySlug(r.Context(), slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			WriteNotFound(w, "Blog post not found")
		} else {
			WriteInternalError(w, "Failed to retrieve blog post")
		}
		return
	}
	// Drafts and scheduled posts are invisible to the public site.
	if !blog.IsPublished || !blog.PublishedAt.Valid || blog.PublishedAt.Time.After(time.Now()) {
		WriteNotFound(w, "Blog post not found")
		return
	}
	WriteSuccess(w, blogToResponse(blog, false), nil)
}

// ListBlogs handles GET /api/v1/admin/blogs. Drafts included.
func (h *Handler) ListBlogs(w http.ResponseWriter, r *http.Request) {
	page, perPage := parsePagination(r, 20, 100)

	blogs, err := h.queries.ListBlogs(r.Context(), store.ListBlogsParams{
		Limit:  int64(perPage),
		Offset: int64((page - 1) * perPage),
	})
	if err != nil {
		slog.Error("listing blogs", "error", err)
		WriteInternalError(w, "Failed to list blog posts")
		return
	}

	total, err := h.queries.CountBlogs(r.Context())
	if err != nil {
		WriteInternalError(w, "Failed to list blog posts")
		return
	}

	WriteSuccess(w, blogsToResponse(blogs, true), &Meta{Total: total, Page: page, PerPage: perPage})
}

// GetBlog handles GET /api/v1/admin/blogs/{id}.
func (h *Handler) GetBlog(w http.ResponseWriter, r *http.Request) {
	blog, ok := requireEntityByID(w, r, "blog post", func(id int64) (store.Blog, error) {
		return h.queries.GetBlogByID(r.Context(), id)
	})
	if !ok {
		return
	}
	WriteSuccess(w, blogToResponse(blog, true), nil)
}

// BlogRequest is the body for creating or updating a blog post. A
// future published_at with published=true schedules the post.
type BlogRequest struct {
	Title       string  `json:"title"`
	Slug        string  `json:"slug,omitempty"`
	ContentMd   string  `json:"content_md"`
	Excerpt     string  `json:"excerpt,omitempty"`
	CoverURL    string  `json:"cover_url,omitempty"`
	Published   bool    `json:"published"`
	PublishedAt *string `json:"published_at,omitempty"`
}

func (req *BlogRequest) validate() map[string]string {
	fieldErrors := make(map[string]string)
	if strings.TrimSpace(req.Title) == "" {
		fieldErrors["title"] = "Title is required"
	}
	if strings.TrimSpace(req.ContentMd) == "" {
		fieldErrors["content_md"] = "Content is required"
	}
	if req.Slug != "" && !util.IsValidSlug(req.Slug) {
		fieldErrors["slug"] = "Slug may contain lowercase letters, digits, and hyphens"
	}
	if req.PublishedAt != nil {
		if _, err := time.Parse(time.RFC3339, *req.PublishedAt); err != nil {
			fieldErrors["published_at"] = "Must be an RFC 3339 timestamp"
		}
	}
	if len(fieldErrors) == 0 {
		return nil
	}
	return fieldErrors
}

// publication resolves the is_published flag and published_at column
// from the request. A future timestamp stays unpublished until the
// scheduler flips it.
func (req *BlogRequest) publication(now time.Time) (bool, sql.NullTime) {
	if req.PublishedAt != nil {
		t, _ := time.Parse(time.RFC3339, *req.PublishedAt)
		return req.Published && !t.After(now), sql.NullTime{Time: t, Valid: true}
	}
	if req.Published {
		return true, sql.NullTime{Time: now, Valid: true}
	}
	return false, sql.NullTime{}
}

func (req *BlogRequest) resolveSlug() string {
	if req.Slug != "" {
		return req.Slug
	}
	return util.Slugify(req.Title)
}

// CreateBlog handles POST /api/v1/admin/blogs.
func (h *Handler) CreateBlog(w http.ResponseWriter, r *http.Request) {
	var req BlogRequest
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
	exists, err := h.queries.BlogSlugExists(ctx, slug)
	if err != nil {
		WriteInternalError(w, "Failed to check slug")
		return
	}
	if exists {
		WriteValidationError(w, map[string]string{"slug": "Slug already exists"})
		return
	}

	html, err := renderMarkdown(req.ContentMd)
	if err != nil {
		slog.Error("rendering blog markdown", "error", err)
		WriteInternalError(w, "Failed to render content")
		return
	}

	now := time.Now()
	isPublished, publishedAt := req.publication(now)
	blog, err := h.queries.CreateBlog(ctx, store.CreateBlogParams{
		Title:       req.Title,
		Slug:        slug,
		ContentMd:   req.ContentMd,
		ContentHTML: html,
		Excerpt:     req.Excerpt,
		CoverURL:    req.CoverURL,
		IsPublished: isPublished,
		PublishedAt: publishedAt,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("creating blog post", "error", err)
		WriteInternalError(w, "Failed to create blog post")
		return
	}
	WriteCreated(w, blogToResponse(blog, true))
}

// UpdateBlog handles PATCH /api/v1/admin/blogs/{id}.
func (h *Handler) UpdateBlog(w http.ResponseWriter, r *http.Request) {
	existing, ok := requireEntityByID(w, r, "blog post", func(id int64) (store.Blog, error) {
		return h.queries.GetBlogByID(r.Context(), id)
	})
	if !ok {
		return
	}

	var req BlogRequest
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
	exists, err := h.queries.BlogSlugExistsExcluding(ctx, store.BlogSlugExistsExcludingParams{
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

	html, err := renderMarkdown(req.ContentMd)
	if err != nil {
		slog.Error("rendering blog markdown", "error", err)
		WriteInternalError(w, "Failed to render content")
		return
	}

	now := time.Now()
	isPublished, publishedAt := req.publication(now)
	blog, err := h.queries.UpdateBlog(ctx, store.UpdateBlogParams{
		ID:          existing.ID,
		Title:       req.Title,
		Slug:        slug,
		ContentMd:   req.ContentMd,
		ContentHTML: html,
		Excerpt:     req.Excerpt,
		CoverURL:    req.CoverURL,
		IsPublished: isPublished,
		PublishedAt: publishedAt,
		UpdatedAt:   now,
	})
	if err != nil {
		slog.Error("updating blog post", "id", existing.ID, "error", err)
		WriteInternalError(w, "Failed to update blog post")
		return
	}
	WriteSuccess(w, blogToResponse(blog, true), nil)
}

// DeleteBlog handles DELETE /api/v1/admin/blogs/{id}.
func (h *Handler) DeleteBlog(w http.ResponseWriter, r *http.Request) {
	blog, ok := requireEntityByID(w, r, "blog post", func(id int64) (store.Blog, error) {
		return h.queries.GetBlogByID(r.Context(), id)
	})
	if !ok {
		return
	}

	if err := h.queries.DeleteBlog(r.Context(), blog.ID); err != nil {
		slog.Error("deleting blog post", "id", blog.ID, "error", err)
		WriteInternalError(w, "Failed to delete blog post")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
