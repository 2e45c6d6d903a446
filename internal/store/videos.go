package store

import (
	"context"
	"time"
)

const listVideos = `
SELECT id, title, platform, video_url, thumbnail_url, is_visible, position, created_at, updated_at
FROM videos ORDER BY position, id`

// ListVideos returns all videos in display order, hidden entries included.
func (q *Queries) ListVideos(ctx context.Context) ([]Video, error) {
	return q.queryVideos(ctx, listVideos)
}

const listVisibleVideos = `
SELECT id, title, platform, video_url, thumbnail_url, is_visible, position, created_at, updated_at
FROM videos WHERE is_visible = 1 ORDER BY position, id`

// ListVisibleVideos returns only publicly visible videos in display order.
func (q *Queries) ListVisibleVideos(ctx context.Context) ([]Video, error) {
	return q.queryVideos(ctx, listVisibleVideos)
}

const listVisibleVideosByPlatform = `
SELECT id, title, platform, video_url, thumbnail_url, is_visible, position, created_at, updated_at
FROM videos WHERE is_visible = 1 AND platform = ? ORDER BY position, id`

// ListVisibleVideosByPlatform returns visible videos for one platform.
func (q *Queries) ListVisibleVideosByPlatform(ctx context.Context, platform string) ([]Video, error) {
	return q.queryVideos(ctx, listVisibleVideosByPlatform, platform)
}

func (q *Queries) queryVideos(ctx context.Context, query string, args ...any) ([]Video, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var videos []Video
	for rows.Next() {
		var v Video
		if err := rows.Scan(&v.ID, &v.Title, &v.Platform, &v.VideoURL, &v.ThumbnailURL, &v.IsVisible, &v.Position, &v.CreatedAt, &v.UpdatedAt); err != nil {
			return nil, err
		}
		videos = append(videos, v)
	}
	return videos, rows.Err()
}

const getVideoByID = `
SELECT id, title, platform, video_url, thumbnail_url, is_visible, position, created_at, updated_at
FROM videos WHERE id = ?`

// GetVideoByID fetches a video by primary key.
func (q *Queries) GetVideoByID(ctx context.Context, id int64) (Video, error) {
	row := q.db.QueryRowContext(ctx, getVideoByID, id)
	var v Video
	err := row.Scan(&v.ID, &v.Title, &v.Platform, &v.VideoURL, &v.ThumbnailURL, &v.IsVisible, &v.Position, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

const countVideos = `SELECT COUNT(*) FROM videos`

// CountVideos returns the total number of videos.
func (q *Queries) CountVideos(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countVideos).Scan(&count)
	return count, err
}

const createVideo = `
INSERT INTO videos (title, platform, video_url, thumbnail_url, is_visible, position, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, platform, video_url, thumbnail_url, is_visible, position, created_at, updated_at`

// CreateVideoParams holds the fields for CreateVideo.
type CreateVideoParams struct {
	Title        string
	Platform     string
	VideoURL     string
	ThumbnailURL string
	IsVisible    bool
	Position     int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// CreateVideo inserts a new video.
func (q *Queries) CreateVideo(ctx context.Context, arg CreateVideoParams) (Video, error) {
	row := q.db.QueryRowContext(ctx, createVideo,
		arg.Title, arg.Platform, arg.VideoURL, nullIfEmpty(arg.ThumbnailURL),
		arg.IsVisible, arg.Position, arg.CreatedAt, arg.UpdatedAt)
	var v Video
	err := row.Scan(&v.ID, &v.Title, &v.Platform, &v.VideoURL, &v.ThumbnailURL, &v.IsVisible, &v.Position, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

const updateVideo = `
UPDATE videos SET title = ?, platform = ?, video_url = ?, thumbnail_url = ?, updated_at = ? WHERE id = ?
RETURNING id, title, platform, video_url, thumbnail_url, is_visible, position, created_at, updated_at`

// UpdateVideoParams holds the fields for UpdateVideo.
type UpdateVideoParams struct {
	ID           int64
	Title        string
	Platform     string
	VideoURL     string
	ThumbnailURL string
	UpdatedAt    time.Time
}

// UpdateVideo updates a video's payload fields.
func (q *Queries) UpdateVideo(ctx context.Context, arg UpdateVideoParams) (Video, error) {
	row := q.db.QueryRowContext(ctx, updateVideo,
		arg.Title, arg.Platform, arg.VideoURL, nullIfEmpty(arg.ThumbnailURL), arg.UpdatedAt, arg.ID)
	var v Video
	err := row.Scan(&v.ID, &v.Title, &v.Platform, &v.VideoURL, &v.ThumbnailURL, &v.IsVisible, &v.Position, &v.CreatedAt, &v.UpdatedAt)
	return v, err
}

const updateVideoVisibility = `
UPDATE videos SET is_visible = ?, updated_at = ? WHERE id = ?`

// UpdateVideoVisibilityParams holds the fields for UpdateVideoVisibility.
type UpdateVideoVisibilityParams struct {
	ID        int64
	IsVisible bool
	UpdatedAt time.Time
}

// UpdateVideoVisibility flips a single video's visibility flag.
func (q *Queries) UpdateVideoVisibility(ctx context.Context, arg UpdateVideoVisibilityParams) error {
	_, err := q.db.ExecContext(ctx, updateVideoVisibility, arg.IsVisible, arg.UpdatedAt, arg.ID)
	return err
}

const updateVideoPosition = `
UPDATE videos SET position = ?, updated_at = ? WHERE id = ?`

// UpdateVideoPosition writes a single video's display position.
func (q *Queries) UpdateVideoPosition(ctx context.Context, id, position int64) error {
	_, err := q.db.ExecContext(ctx, updateVideoPosition, position, time.Now(), id)
	return err
}

const deleteVideo = `DELETE FROM videos WHERE id = ?`

// DeleteVideo removes a video.
func (q *Queries) DeleteVideo(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteVideo, id)
	return err
}
