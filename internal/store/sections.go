// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const listSections = `
SELECT id, name, display_name, page, is_visible, position, created_at, updated_at
FROM sections ORDER BY position, id`

// ListSections returns all sections across all pages in display order.
func (q *Queries) ListSections(ctx context.Context) ([]Section, error) {
	return q.querySections(ctx, listSections)
}

const listSectionsByPage = `
SELECT id, name, display_name, page, is_visible, position, created_at, updated_at
FROM sections WHERE page = ? ORDER BY position, id`

// ListSectionsByPage returns every section registered for a page, hidden
// ones included. Callers that render the public site read is_visible per
// row; an absent row means the section is unmanaged and renders anyway.
func (q *Queries) ListSectionsByPage(ctx context.Context, page string) ([]Section, error) {
	return q.querySections(ctx, listSectionsByPage, page)
}

func (q *Queries) querySections(ctx context.Context, query string, args ...any) ([]Section, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sections []Section
	for rows.Next() {
		var s Section
		if err := rows.Scan(&s.ID, &s.Name, &s.DisplayName, &s.Page, &s.IsVisible, &s.Position, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		sections = append(sections, s)
	}
	return sections, rows.Err()
}

const getSectionByID = `
SELECT id, name, display_name, page, is_visible, position, created_at, updated_at
FROM sections WHERE id = ?`

// GetSectionByID fetches a section by primary key.
func (q *Queries) GetSectionByID(ctx context.Context, id int64) (Section, error) {
	row := q.db.QueryRowContext(ctx, getSectionByID, id)
	var s Section
	err := row.Scan(&s.ID, &s.Name, &s.DisplayName, &s.Page, &s.IsVisible, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const getSectionByName = `
SELECT id, name, display_name, page, is_visible, position, created_at, updated_at
FROM sections WHERE name = ?`

// GetSectionByName fetches a section by its unique registry name.
func (q *Queries) GetSectionByName(ctx context.Context, name string) (Section, error) {
	row := q.db.QueryRowContext(ctx, getSectionByName, name)
	var s Section
	err := row.Scan(&s.ID, &s.Name, &s.DisplayName, &s.Page, &s.IsVisible, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const countSectionsByPage = `SELECT COUNT(*) FROM sections WHERE page = ?`

// CountSectionsByPage returns the number of sections registered for a page.
func (q *Queries) CountSectionsByPage(ctx context.Context, page string) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countSectionsByPage, page).Scan(&count)
	return count, err
}

const createSection = `
INSERT INTO sections (name, display_name, page, is_visible, position, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, name, display_name, page, is_visible, position, created_at, updated_at`

// CreateSectionParams holds the fields for CreateSection.
type CreateSectionParams struct {
	Name        string
	DisplayName string
	Page        string
	IsVisible   bool
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateSection registers a new section.
func (q *Queries) CreateSection(ctx context.Context, arg CreateSectionParams) (Section, error) {
	row := q.db.QueryRowContext(ctx, createSection,
		arg.Name, arg.DisplayName, arg.Page, arg.IsVisible, arg.Position, arg.CreatedAt, arg.UpdatedAt)
	var s Section
	err := row.Scan(&s.ID, &s.Name, &s.DisplayName, &s.Page, &s.IsVisible, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const updateSection = `
UPDATE sections SET display_name = ?, updated_at = ? WHERE id = ?
RETURNING id, name, display_name, page, is_visible, position, created_at, updated_at`

// UpdateSectionParams holds the fields for UpdateSection. The registry
// name and page are fixed at creation.
type UpdateSectionParams struct {
	ID          int64
	DisplayName string
	UpdatedAt   time.Time
}

// UpdateSection updates a section's display name.
func (q *Queries) UpdateSection(ctx context.Context, arg UpdateSectionParams) (Section, error) {
	row := q.db.QueryRowContext(ctx, updateSection, arg.DisplayName, arg.UpdatedAt, arg.ID)
	var s Section
	err := row.Scan(&s.ID, &s.Name, &s.DisplayName, &s.Page, &s.IsVisible, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const updateSectionVisibility = `
UPDATE sections SET is_visible = ?, updated_at = ? WHERE id = ?`

// UpdateSectionVisibilityParams holds the fields for UpdateSectionVisibility.
type UpdateSectionVisibilityParams struct {
	ID        int64
	IsVisible bool
	UpdatedAt time.Time
}

// UpdateSectionVisibility flips a single section's visibility flag without
// touching its position.
func (q *Queries) UpdateSectionVisibility(ctx context.Context, arg UpdateSectionVisibilityParams) error {
	_, err := q.db.ExecContext(ctx, updateSectionVisibility, arg.IsVisible, arg.UpdatedAt, arg.ID)
	return err
}

const updateSectionPosition = `
UPDATE sections SET position = ?, updated_at = ? WHERE id = ?`

// UpdateSectionPosition writes a single section's display position.
func (q *Queries) UpdateSectionPosition(ctx context.Context, id, position int64) error {
	_, err := q.db.ExecContext(ctx, updateSectionPosition, position, time.Now(), id)
	return err
}

const deleteSection = `DELETE FROM sections WHERE id = ?`

// DeleteSection removes a section from the registry. The public site
// treats the missing row as visible.
func (q *Queries) DeleteSection(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteSection, id)
	return err
}
