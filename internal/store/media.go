// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"time"
)

const createMedia = `
INSERT INTO media (uuid, filename, original_name, mime_type, size, width, height, url, thumbnail_url, uploaded_by, created_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, uuid, filename, original_name, mime_type, size, width, height, url, thumbnail_url, uploaded_by, created_at`

// CreateMediaParams holds the fields for CreateMedia.
type CreateMediaParams struct {
	UUID         string
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Width        sql.NullInt64
	Height       sql.NullInt64
	URL          string
	ThumbnailURL string
	UploadedBy   sql.NullInt64
	CreatedAt    time.Time
}

// CreateMedia records an uploaded file.
func (q *Queries) CreateMedia(ctx context.Context, arg CreateMediaParams) (Media, error) {
	row := q.db.QueryRowContext(ctx, createMedia,
		arg.UUID, arg.Filename, arg.OriginalName, arg.MimeType, arg.Size,
		arg.Width, arg.Height, arg.URL, nullIfEmpty(arg.ThumbnailURL), arg.UploadedBy, arg.CreatedAt)
	var m Media
	err := scanMedia(row, &m)
	return m, err
}

func scanMedia(row rowScanner, m *Media) error {
	return row.Scan(&m.ID, &m.UUID, &m.Filename, &m.OriginalName, &m.MimeType, &m.Size,
		&m.Width, &m.Height, &m.URL, &m.ThumbnailURL, &m.UploadedBy, &m.CreatedAt)
}

const getMediaByID = `
SELECT id, uuid, filename, original_name, mime_type, size, width, height, url, thumbnail_url, uploaded_by, created_at
FROM media WHERE id = ?`

// GetMediaByID fetches a media record by primary key.
func (q *Queries) GetMediaByID(ctx context.Context, id int64) (Media, error) {
	var m Media
	err := scanMedia(q.db.QueryRowContext(ctx, getMediaByID, id), &m)
	return m, err
}

const getMediaByUUID = `
SELECT id, uuid, filename, original_name, mime_type, size, width, height, url, thumbnail_url, uploaded_by, created_at
FROM media WHERE uuid = ?`

// GetMediaByUUID fetches a media record by its public identifier.
func (q *Queries) GetMediaByUUID(ctx context.Context, uuid string) (Media, error) {
	var m Media
	err := scanMedia(q.db.QueryRowContext(ctx, getMediaByUUID, uuid), &m)
	return m, err
}

const listMedia = `
SELECT id, uuid, filename, original_name, mime_type, size, width, height, url, thumbnail_url, uploaded_by, created_at
FROM media ORDER BY created_at DESC LIMIT ? OFFSET ?`

// ListMediaParams holds the fields for ListMedia.
type ListMediaParams struct {
	Limit  int64
	Offset int64
}

// ListMedia returns uploaded files, newest first.
func (q *Queries) ListMedia(ctx context.Context, arg ListMediaParams) ([]Media, error) {
	rows, err := q.db.QueryContext(ctx, listMedia, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []Media
	for rows.Next() {
		var m Media
		if err := scanMedia(rows, &m); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

const countMedia = `SELECT COUNT(*) FROM media`

// CountMedia returns the total number of media records.
func (q *Queries) CountMedia(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countMedia).Scan(&count)
	return count, err
}

const deleteMedia = `DELETE FROM media WHERE id = ?`

// DeleteMedia removes a media record. The caller is responsible for
// removing the files on disk.
func (q *Queries) DeleteMedia(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteMedia, id)
	return err
}
