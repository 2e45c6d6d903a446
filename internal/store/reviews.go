package store

import (
	"context"
	"time"
)

const listReviews = `
SELECT id, author, content, rating, is_visible, position, created_at, updated_at
FROM reviews ORDER BY position, id`

// ListReviews returns all reviews in display order, hidden entries included.
func (q *Queries) ListReviews(ctx context.Context) ([]Review, error) {
	return q.queryReviews(ctx, listReviews)
}

const listVisibleReviews = `
SELECT id, author, content, rating, is_visible, position, created_at, updated_at
FROM reviews WHERE is_visible = 1 ORDER BY position, id`

// ListVisibleReviews returns only publicly visible reviews in display order.
func (q *Queries) ListVisibleReviews(ctx context.Context) ([]Review, error) {
	return q.queryReviews(ctx, listVisibleReviews)
}

func (q *Queries) queryReviews(ctx context.Context, query string) ([]Review, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var reviews []Review
	for rows.Next() {
		var r Review
		if err := rows.Scan(&r.ID, &r.Author, &r.Content, &r.Rating, &r.IsVisible, &r.Position, &r.CreatedAt, &r.UpdatedAt); err != nil {
			return nil, err
		}
		reviews = append(reviews, r)
	}
	return reviews, rows.Err()
}

const getReviewByID = `
SELECT id, author, content, rating, is_visible, position, created_at, updated_at
FROM reviews WHERE id = ?`

// GetReviewByID fetches a review by primary key.
func (q *Queries) GetReviewByID(ctx context.Context, id int64) (Review, error) {
	row := q.db.QueryRowContext(ctx, getReviewByID, id)
	var r Review
	err := row.Scan(&r.ID, &r.Author, &r.Content, &r.Rating, &r.IsVisible, &r.Position, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

const countReviews = `SELECT COUNT(*) FROM reviews`

// CountReviews returns the total number of reviews.
func (q *Queries) CountReviews(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countReviews).Scan(&count)
	return count, err
}

const createReview = `
INSERT INTO reviews (author, content, rating, is_visible, position, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, author, content, rating, is_visible, position, created_at, updated_at`

// CreateReviewParams holds the fields for CreateReview.
type CreateReviewParams struct {
	Author    string
	Content   string
	Rating    int64
	IsVisible bool
	Position  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateReview inserts a new review.
func (q *Queries) CreateReview(ctx context.Context, arg CreateReviewParams) (Review, error) {
	row := q.db.QueryRowContext(ctx, createReview,
		arg.Author, arg.Content, arg.Rating, arg.IsVisible, arg.Position, arg.CreatedAt, arg.UpdatedAt)
	var r Review
	err := row.Scan(&r.ID, &r.Author, &r.Content, &r.Rating, &r.IsVisible, &r.Position, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

const updateReview = `
UPDATE reviews SET author = ?, content = ?, rating = ?, updated_at = ? WHERE id = ?
RETURNING id, author, content, rating, is_visible, position, created_at, updated_at`

// UpdateReviewParams holds the fields for UpdateReview.
type UpdateReviewParams struct {
	ID        int64
	Author    string
	Content   string
	Rating    int64
	UpdatedAt time.Time
}

// UpdateReview updates a review's payload fields.
func (q *Queries) UpdateReview(ctx context.Context, arg UpdateReviewParams) (Review, error) {
	row := q.db.QueryRowContext(ctx, updateReview, arg.Author, arg.Content, arg.Rating, arg.UpdatedAt, arg.ID)
	var r Review
	err := row.Scan(&r.ID, &r.Author, &r.Content, &r.Rating, &r.IsVisible, &r.Position, &r.CreatedAt, &r.UpdatedAt)
	return r, err
}

const updateReviewVisibility = `
UPDATE reviews SET is_visible = ?, updated_at = ? WHERE id = ?`

// UpdateReviewVisibilityParams holds the fields for UpdateReviewVisibility.
type UpdateReviewVisibilityParams struct {
	ID        int64
	IsVisible bool
	UpdatedAt time.Time
}

// UpdateReviewVisibility flips a single review's visibility flag.
func (q *Queries) UpdateReviewVisibility(ctx context.Context, arg UpdateReviewVisibilityParams) error {
	_, err := q.db.ExecContext(ctx, updateReviewVisibility, arg.IsVisible, arg.UpdatedAt, arg.ID)
	return err
}

const updateReviewPosition = `
UPDATE reviews SET position = ?, updated_at = ? WHERE id = ?`

// UpdateReviewPosition writes a single review's display position.
func (q *Queries) UpdateReviewPosition(ctx context.Context, id, position int64) error {
	_, err := q.db.ExecContext(ctx, updateReviewPosition, position, time.Now(), id)
	return err
}

const deleteReview = `DELETE FROM reviews WHERE id = ?`

// DeleteReview removes a review.
func (q *Queries) DeleteReview(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteReview, id)
	return err
}
