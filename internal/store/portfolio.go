// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const listPortfolioItems = `
SELECT id, title, slug, description, image_url, project_url, is_visible, position, created_at, updated_at
FROM portfolio ORDER BY position, id`

// ListPortfolioItems returns all portfolio items in display order.
func (q *Queries) ListPortfolioItems(ctx context.Context) ([]PortfolioItem, error) {
	return q.queryPortfolioItems(ctx, listPortfolioItems)
}

const listVisiblePortfolioItems = `
SELECT id, title, slug, description, image_url, project_url, is_visible, position, created_at, updated_at
FROM portfolio WHERE is_visible = 1 ORDER BY position, id`

// ListVisiblePortfolioItems returns only publicly visible portfolio items.
func (q *Queries) ListVisiblePortfolioItems(ctx context.Context) ([]PortfolioItem, error) {
	return q.queryPortfolioItems(ctx, listVisiblePortfolioItems)
}

func (q *Queries) queryPortfolioItems(ctx context.Context, query string) ([]PortfolioItem, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []PortfolioItem
	for rows.Next() {
		var p PortfolioItem
		if err := rows.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.ImageURL, &p.ProjectURL, &p.IsVisible, &p.Position, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, p)
	}
	return items, rows.Err()
}

const getPortfolioItemByID = `
SELECT id, title, slug, description, image_url, project_url, is_visible, position, created_at, updated_at
FROM portfolio WHERE id = ?`

// GetPortfolioItemByID fetches a portfolio item by primary key.
func (q *Queries) GetPortfolioItemByID(ctx context.Context, id int64) (PortfolioItem, error) {
	row := q.db.QueryRowContext(ctx, getPortfolioItemByID, id)
	var p PortfolioItem
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.ImageURL, &p.ProjectURL, &p.IsVisible, &p.Position, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const getPortfolioItemBySlug = `
SELECT id, title, slug, description, image_url, project_url, is_visible, position, created_at, updated_at
FROM portfolio WHERE slug = ?`

// GetPortfolioItemBySlug fetches a portfolio item by its URL slug.
func (q *Queries) GetPortfolioItemBySlug(ctx context.Context, slug string) (PortfolioItem, error) {
	row := q.db.QueryRowContext(ctx, getPortfolioItemBySlug, slug)
	var p PortfolioItem
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.ImageURL, &p.ProjectURL, &p.IsVisible, &p.Position, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const countPortfolioItems = `SELECT COUNT(*) FROM portfolio`

// CountPortfolioItems returns the total number of portfolio items.
func (q *Queries) CountPortfolioItems(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countPortfolioItems).Scan(&count)
	return count, err
}

const portfolioSlugExists = `
SELECT COUNT(*) FROM portfolio WHERE slug = ?`

// PortfolioSlugExists reports whether a slug is already taken.
func (q *Queries) PortfolioSlugExists(ctx context.Context, slug string) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, portfolioSlugExists, slug).Scan(&count)
	return count > 0, err
}

const portfolioSlugExistsExcluding = `
SELECT COUNT(*) FROM portfolio WHERE slug = ? AND id != ?`

// PortfolioSlugExistsExcludingParams holds the fields for PortfolioSlugExistsExcluding.
type PortfolioSlugExistsExcludingParams struct {
	Slug string
	ID   int64
}

// PortfolioSlugExistsExcluding reports whether a slug is taken by a
// different item, for uniqueness checks on update.
func (q *Queries) PortfolioSlugExistsExcluding(ctx context.Context, arg PortfolioSlugExistsExcludingParams) (bool, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, portfolioSlugExistsExcluding, arg.Slug, arg.ID).Scan(&count)
	return count > 0, err
}

const createPortfolioItem = `
INSERT INTO portfolio (title, slug, description, image_url, project_url, is_visible, position, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, slug, description, image_url, project_url, is_visible, position, created_at, updated_at`

// CreatePortfolioItemParams holds the fields for CreatePortfolioItem.
type CreatePortfolioItemParams struct {
	Title       string
	Slug        string
	Description string
	ImageURL    string
	ProjectURL  string
	IsVisible   bool
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreatePortfolioItem inserts a new portfolio item.
func (q *Queries) CreatePortfolioItem(ctx context.Context, arg CreatePortfolioItemParams) (PortfolioItem, error) {
	row := q.db.QueryRowContext(ctx, createPortfolioItem,
		arg.Title, arg.Slug, arg.Description, nullIfEmpty(arg.ImageURL), nullIfEmpty(arg.ProjectURL),
		arg.IsVisible, arg.Position, arg.CreatedAt, arg.UpdatedAt)
	var p PortfolioItem
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.ImageURL, &p.ProjectURL, &p.IsVisible, &p.Position, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const updatePortfolioItem = `
UPDATE portfolio SET title = ?, slug = ?, description = ?, image_url = ?, project_url = ?, updated_at = ? WHERE id = ?
RETURNING id, title, slug, description, image_url, project_url, is_visible, position, created_at, updated_at`

// UpdatePortfolioItemParams holds the fields for UpdatePortfolioItem.
type UpdatePortfolioItemParams struct {
	ID          int64
	Title       string
	Slug        string
	Description string
	ImageURL    string
	ProjectURL  string
	UpdatedAt   time.Time
}

// UpdatePortfolioItem updates a portfolio item's payload fields.
func (q *Queries) UpdatePortfolioItem(ctx context.Context, arg UpdatePortfolioItemParams) (PortfolioItem, error) {
	row := q.db.QueryRowContext(ctx, updatePortfolioItem,
		arg.Title, arg.Slug, arg.Description, nullIfEmpty(arg.ImageURL), nullIfEmpty(arg.ProjectURL),
		arg.UpdatedAt, arg.ID)
	var p PortfolioItem
	err := row.Scan(&p.ID, &p.Title, &p.Slug, &p.Description, &p.ImageURL, &p.ProjectURL, &p.IsVisible, &p.Position, &p.CreatedAt, &p.UpdatedAt)
	return p, err
}

const updatePortfolioItemVisibility = `
UPDATE portfolio SET is_visible = ?, updated_at = ? WHERE id = ?`

// UpdatePortfolioItemVisibilityParams holds the fields for UpdatePortfolioItemVisibility.
type UpdatePortfolioItemVisibilityParams struct {
	ID        int64
	IsVisible bool
	UpdatedAt time.Time
}

// UpdatePortfolioItemVisibility flips a single portfolio item's visibility flag.
func (q *Queries) UpdatePortfolioItemVisibility(ctx context.Context, arg UpdatePortfolioItemVisibilityParams) error {
	_, err := q.db.ExecContext(ctx, updatePortfolioItemVisibility, arg.IsVisible, arg.UpdatedAt, arg.ID)
	return err
}

const updatePortfolioItemPosition = `
UPDATE portfolio SET position = ?, updated_at = ? WHERE id = ?`

// UpdatePortfolioItemPosition writes a single portfolio item's display position.
func (q *Queries) UpdatePortfolioItemPosition(ctx context.Context, id, position int64) error {
	_, err := q.db.ExecContext(ctx, updatePortfolioItemPosition, position, time.Now(), id)
	return err
}

const deletePortfolioItem = `DELETE FROM portfolio WHERE id = ?`

// DeletePortfolioItem removes a portfolio item.
func (q *Queries) DeletePortfolioItem(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deletePortfolioItem, id)
	return err
}
