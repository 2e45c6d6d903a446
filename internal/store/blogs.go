// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const listBlogs = `
SELECT id, title, slug, content_md, content_html, excerpt, cover_url, is_published, published_at, created_at, updated_at
FROM blogs ORDER BY created_at DESC LIMIT ? OFFSET ?`

// ListBlogsParams holds the fields for ListBlogs.
type ListBlogsParams struct {
	Limit  int64
	Offset int64
}

// ListBlogs returns all blog posts, drafts included, newest first.
func (q *Queries) ListBlogs(ctx context.Context, arg ListBlogsParams) ([]Blog, error) {
	return q.queryBlogs(ctx, listBlogs, arg.Limit, arg.Offset)
}

const listPublishedBlogs = `
SELECT id, title, slug, content_md, content_html, excerpt, cover_url, is_published, published_at, created_at, updated_at
FROM blogs
WHERE is_published = 1 AND published_at IS NOT NULL AND published_at <= ?
ORDER BY published_at DESC LIMIT ? OFFSET ?`

// ListPublishedBlogsParams holds the fields for ListPublishedBlogs.
type ListPublishedBlogsParams struct {
	Now    time.Time
	Limit  int64
	Offset int64
}

// ListPublishedBlogs returns published posts whose publish time has
// passed, newest first.
func (q *Queries) ListPublishedBlogs(ctx context.Context, arg ListPublishedBlogsParams) ([]Blog, error) {
	return q.queryBlogs(ctx, listPublishedBlogs, arg.Now, arg.Limit, arg.Offset)
}

const listDueScheduledBlogs = `
SELECT id, title, slug, content_md, content_html, excerpt, cover_url, is_published, published_at, created_at, updated_at
FROM blogs
WHERE is_published = 0 AND published_at IS NOT NULL AND published_at <= ?
ORDER BY published_at`

// ListDueScheduledBlogs returns draft posts whose scheduled publish time
// has arrived. The scheduler flips them to published.
func (q *Queries) ListDueScheduledBlogs(ctx context.Context, now time.Time) ([]Blog, error) {
	return q.queryBlogs(ctx, listDueScheduledBlogs, now)
}

func (q *Queries) queryBlogs(ctx context.Context, query string, args ...any) ([]Blog, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var blogs []Blog
	for rows.Next() {
		var b Blog
		if err := scanBlog(rows, &b); err != nil {
			return nil, err
		}
		blogs = append(blogs, b)
	}
	return blogs, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanBlog(row rowScanner, b *Blog) error {
	return row.Scan(&b.ID, &b.Title, &b.Slug, &b.ContentMd, &b.ContentHTML,
		&b.Excerpt, &b.CoverURL, &b.IsPublished, &b.PublishedAt, &b.CreatedAt, &b.UpdatedAt)
}

const getBlogByID = `
SELECT id, title, slug, content_md, content_html, excerpt, cover_url, is_published, published_at, created_at, updated_at
FROM blogs WHERE id = ?`

// GetBlogByID fetches a blog post by primary key.
func (q *Queries) GetBlogByID(ctx context.Context, id int64) (Blog, error) {
	var b Blog
	err := scanBlog(q.db.QueryRowContext(ctx, getBlogByID, id), &b)
	return b, err
}

const getBlogBySlug = `
SELECT id, title, slug, content_md, content_html, excerpt, cover_url, is_published, published_at, created_at, updated_at
FROM blogs WHERE slug = ?`

// GetBlogBySlug fetches a blog post by its URL slug.
func (q *Queries) GetBlogBySlug(ctx context.Context, slug string) (Blog, error) {
	var b Blog
	err := scanBlog(q.db.QueryRowContext(ctx, getBlogBySlug, slug), &b)
	return b, err
}

const countBlogs = `SELECT COUNT(*) FROM blogs`

// CountBlogs returns the total number of blog posts.
func (q *Queries) CountBlogs(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countBlogs).Scan(&count)
	return count, err
}

const countPublishedBlogs = `
SELECT COUNT(*) FROM blogs
WHERE is_published = 1 AND published_at IS NOT NULL AND published_at <= ?`

// CountPublishedBlogs returns the number of live blog posts.
func (q *Queries) CountPublishedBlogs(ctx context.Context, now time.Time) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPublishedBlogs, now).Scan(&count)
	return count, err
}

const blogSlugExists = `SELECT COUNT(*) FROM blogs WHERE slug = ?`

// BlogSlugExists reports whether a slug is already taken.
func (q *Queries) BlogSlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, blogSlugExists, slug).Scan(&count)
	return count > 0, err
}

const blogSlugExistsExcluding = `SELECT COUNT(*) FROM blogs WHERE slug = ? AND id != ?`

// BlogSlugExistsExcludingParams holds the fields for BlogSlugExistsExcluding.
type BlogSlugExistsExcludingParams struct {
	Slug string
	ID   int64
}

// BlogSlugExistsExcluding reports whether a slug is taken by a different post.
func (q *Queries) BlogSlugExistsExcluding(ctx context.Context, arg BlogSlugExistsExcludingParams) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, blogSlugExistsExcluding, arg.Slug, arg.ID).Scan(&count)
	return count > 0, err
}

const createBlog = `
INSERT INTO blogs (title, slug, content_md, content_html, excerpt, cover_url, is_published, published_at, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, slug, content_md, content_html, excerpt, cover_url, is_published, published_at, created_at, updated_at`

// CreateBlogParams holds the fields for CreateBlog.
type CreateBlogParams struct {
	Title       string
	Slug        string
	ContentMd   string
	ContentHTML string
	Excerpt     string
	CoverURL    string
	IsPublished bool
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateBlog inserts a new blog post.
func (q *Queries) CreateBlog(ctx context.Context, arg CreateBlogParams) (Blog, error) {
	var b Blog
	err := scanBlog(q.db.QueryRowContext(ctx, createBlog,
		arg.Title, arg.Slug, arg.ContentMd, arg.ContentHTML,
		nullIfEmpty(arg.Excerpt), nullIfEmpty(arg.CoverURL),
		arg.IsPublished, arg.PublishedAt, arg.CreatedAt, arg.UpdatedAt), &b)
	return b, err
}

const updateBlog = `
UPDATE blogs SET title = ?, slug = ?, content_md = ?, content_html = ?, excerpt = ?, cover_url = ?, is_published = ?, published_at = ?, updated_at = ?
WHERE id = ?
RETURNING id, title, slug, content_md, content_html, excerpt, cover_url, is_published, published_at, created_at, updated_at`

// UpdateBlogParams holds the fields for UpdateBlog.
type UpdateBlogParams struct {
	ID          int64
	Title       string
	Slug        string
	ContentMd   string
	ContentHTML string
	Excerpt     string
	CoverURL    string
	IsPublished bool
	PublishedAt sql.NullTime
	UpdatedAt   time.Time
}

// UpdateBlog updates a blog post.
func (q *Queries) UpdateBlog(ctx context.Context, arg UpdateBlogParams) (Blog, error) {
	var b Blog
	err := scanBlog(q.db.QueryRowContext(ctx, updateBlog,
		arg.Title, arg.Slug, arg.ContentMd, arg.ContentHTML,
		nullIfEmpty(arg.Excerpt), nullIfEmpty(arg.CoverURL),
		arg.IsPublished, arg.PublishedAt, arg.UpdatedAt, arg.ID), &b)
	return b, err
}

const markBlogPublished = `
UPDATE blogs SET is_published = 1, updated_at = ? WHERE id = ? AND is_published = 0`

// MarkBlogPublished flips a scheduled draft to published. Already
// published posts are untouched.
func (q *Queries) MarkBlogPublished(ctx context.Context, id int64, now time.Time) error {
	_, err := q.db.ExecContext(ctx, markBlogPublished, now, id)
	return err
}

const deleteBlog = `DELETE FROM blogs WHERE id = ?`

// DeleteBlog removes a blog post.
func (q *Queries) DeleteBlog(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteBlog, id)
	return err
}
