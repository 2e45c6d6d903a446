package store

import (
	"context"
	"time"
)

const listFaqs = `
SELECT id, question, answer, is_visible, position, created_at, updated_at
FROM faqs ORDER BY position, id`

// ListFaqs returns all FAQs in display order, hidden entries included.
func (q *Queries) ListFaqs(ctx context.Context) ([]Faq, error) {
	return q.queryFaqs(ctx, listFaqs)
}

const listVisibleFaqs = `
SELECT id, question, answer, is_visible, position, created_at, updated_at
FROM faqs WHERE is_visible = 1 ORDER BY position, id`

// ListVisibleFaqs returns only publicly visible FAQs in display order.
func (q *Queries) ListVisibleFaqs(ctx context.Context) ([]Faq, error) {
	return q.queryFaqs(ctx, listVisibleFaqs)
}

func (q *Queries) queryFaqs(ctx context.Context, query string) ([]Faq, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var faqs []Faq
	for rows.Next() {
		var f Faq
		if err := rows.Scan(&f.ID, &f.Question, &f.Answer, &f.IsVisible, &f.Position, &f.CreatedAt, &f.UpdatedAt); err != nil {
			return nil, err
		}
		faqs = append(faqs, f)
	}
	return faqs, rows.Err()
}

const getFaqByID = `
SELECT id, question, answer, is_visible, position, created_at, updated_at
FROM faqs WHERE id = ?`

// GetFaqByID fetches a FAQ by primary key.
func (q *Queries) GetFaqByID(ctx context.Context, id int64) (Faq, error) {
	row := q.db.QueryRowContext(ctx, getFaqByID, id)
	var f Faq
	err := row.Scan(&f.ID, &f.Question, &f.Answer, &f.IsVisible, &f.Position, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

const countFaqs = `SELECT COUNT(*) FROM faqs`

// CountFaqs returns the total number of FAQs.
func (q *Queries) CountFaqs(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countFaqs).Scan(&count)
	return count, err
}

const createFaq = `
INSERT INTO faqs (question, answer, is_visible, position, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?)
RETURNING id, question, answer, is_visible, position, created_at, updated_at`

// CreateFaqParams holds the fields for CreateFaq.
type CreateFaqParams struct {
	Question  string
	Answer    string
	IsVisible bool
	Position  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// CreateFaq inserts a new FAQ.
func (q *Queries) CreateFaq(ctx context.Context, arg CreateFaqParams) (Faq, error) {
	row := q.db.QueryRowContext(ctx, createFaq,
		arg.Question, arg.Answer, arg.IsVisible, arg.Position, arg.CreatedAt, arg.UpdatedAt)
	var f Faq
	err := row.Scan(&f.ID, &f.Question, &f.Answer, &f.IsVisible, &f.Position, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

const updateFaq = `
UPDATE faqs SET question = ?, answer = ?, updated_at = ? WHERE id = ?
RETURNING id, question, answer, is_visible, position, created_at, updated_at`

// UpdateFaqParams holds the fields for UpdateFaq. Visibility and position
// are mutated through their dedicated statements only.
type UpdateFaqParams struct {
	ID        int64
	Question  string
	Answer    string
	UpdatedAt time.Time
}

// UpdateFaq updates a FAQ's payload fields.
func (q *Queries) UpdateFaq(ctx context.Context, arg UpdateFaqParams) (Faq, error) {
	row := q.db.QueryRowContext(ctx, updateFaq, arg.Question, arg.Answer, arg.UpdatedAt, arg.ID)
	var f Faq
	err := row.Scan(&f.ID, &f.Question, &f.Answer, &f.IsVisible, &f.Position, &f.CreatedAt, &f.UpdatedAt)
	return f, err
}

const updateFaqVisibility = `
UPDATE faqs SET is_visible = ?, updated_at = ? WHERE id = ?`

// UpdateFaqVisibilityParams holds the fields for UpdateFaqVisibility.
type UpdateFaqVisibilityParams struct {
	ID        int64
	IsVisible bool
	UpdatedAt time.Time
}

// UpdateFaqVisibility flips a single FAQ's visibility flag.
func (q *Queries) UpdateFaqVisibility(ctx context.Context, arg UpdateFaqVisibilityParams) error {
	_, err := q.db.ExecContext(ctx, updateFaqVisibility, arg.IsVisible, arg.UpdatedAt, arg.ID)
	return err
}

const updateFaqPosition = `
UPDATE faqs SET position = ?, updated_at = ? WHERE id = ?`

// UpdateFaqPosition writes a single FAQ's display position.
func (q *Queries) UpdateFaqPosition(ctx context.Context, id, position int64) error {
	_, err := q.db.ExecContext(ctx, updateFaqPosition, position, time.Now(), id)
	return err
}

const deleteFaq = `DELETE FROM faqs WHERE id = ?`

// DeleteFaq removes a FAQ. Surviving rows keep their positions; gaps are fine.
func (q *Queries) DeleteFaq(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteFaq, id)
	return err
}
