package store

import (
	"context"
	"time"
)

const listServices = `
SELECT id, title, description, icon, is_visible, position, created_at, updated_at
FROM services ORDER BY position, id`

// ListServices returns all services in display order, hidden entries included.
func (q *Queries) ListServices(ctx context.Context) ([]Service, error) {
	return q.queryServices(ctx, listServices)
}

const listVisibleServices = `
SELECT id, title, description, icon, is_visible, position, created_at, updated_at
FROM services WHERE is_visible = 1 ORDER BY position, id`

// ListVisibleServices returns only publicly visible services in display order.
func (q *Queries) ListVisibleServices(ctx context.Context) ([]Service, error) {
	return q.queryServices(ctx, listVisibleServices)
}

func (q *Queries) queryServices(ctx context.Context, query string) ([]Service, error) {
	rows, err := q.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []Service
	for rows.Next() {
		var s Service
		if err := rows.Scan(&s.ID, &s.Title, &s.Description, &s.Icon, &s.IsVisible, &s.Position, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

const getServiceByID = `
SELECT id, title, description, icon, is_visible, position, created_at, updated_at
FROM services WHERE id = ?`

// GetServiceByID fetches a service by primary key.
func (q *Queries) GetServiceByID(ctx context.Context, id int64) (Service, error) {
	row := q.db.QueryRowContext(ctx, getServiceByID, id)
	var s Service
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Icon, &s.IsVisible, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const countServices = `SELECT COUNT(*) FROM services`

// CountServices returns the total number of services.
func (q *Queries) CountServices(ctx context.Context) (int64, error) {
	var count int64
	err := q.db.QueryRowContext(ctx, countServices).Scan(&count)
	return count, err
}

const createService = `
INSERT INTO services (title, description, icon, is_visible, position, created_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?)
RETURNING id, title, description, icon, is_visible, position, created_at, updated_at`

// CreateServiceParams holds the fields for CreateService.
type CreateServiceParams struct {
	Title       string
	Description string
	Icon        string
	IsVisible   bool
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// CreateService inserts a new service.
func (q *Queries) CreateService(ctx context.Context, arg CreateServiceParams) (Service, error) {
	row := q.db.QueryRowContext(ctx, createService,
		arg.Title, arg.Description, nullIfEmpty(arg.Icon), arg.IsVisible, arg.Position, arg.CreatedAt, arg.UpdatedAt)
	var s Service
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Icon, &s.IsVisible, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const updateService = `
UPDATE services SET title = ?, description = ?, icon = ?, updated_at = ? WHERE id = ?
RETURNING id, title, description, icon, is_visible, position, created_at, updated_at`

// UpdateServiceParams holds the fields for UpdateService.
type UpdateServiceParams struct {
	ID          int64
	Title       string
	Description string
	Icon        string
	UpdatedAt   time.Time
}

// UpdateService updates a service's payload fields.
func (q *Queries) UpdateService(ctx context.Context, arg UpdateServiceParams) (Service, error) {
	row := q.db.QueryRowContext(ctx, updateService,
		arg.Title, arg.Description, nullIfEmpty(arg.Icon), arg.UpdatedAt, arg.ID)
	var s Service
	err := row.Scan(&s.ID, &s.Title, &s.Description, &s.Icon, &s.IsVisible, &s.Position, &s.CreatedAt, &s.UpdatedAt)
	return s, err
}

const updateServiceVisibility = `
UPDATE services SET is_visible = ?, updated_at = ? WHERE id = ?`

// UpdateServiceVisibilityParams holds the fields for UpdateServiceVisibility.
type UpdateServiceVisibilityParams struct {
	ID        int64
	IsVisible bool
	UpdatedAt time.Time
}

// UpdateServiceVisibility flips a single service's visibility flag.
func (q *Queries) UpdateServiceVisibility(ctx context.Context, arg UpdateServiceVisibilityParams) error {
	_, err := q.db.ExecContext(ctx, updateServiceVisibility, arg.IsVisible, arg.UpdatedAt, arg.ID)
	return err
}

const updateServicePosition = `
UPDATE services SET position = ?, updated_at = ? WHERE id = ?`

// UpdateServicePosition writes a single service's display position.
func (q *Queries) UpdateServicePosition(ctx context.Context, id, position int64) error {
	_, err := q.db.ExecContext(ctx, updateServicePosition, position, time.Now(), id)
	return err
}

const deleteService = `DELETE FROM services WHERE id = ?`

// DeleteService removes a service.
func (q *Queries) DeleteService(ctx context.Context, id int64) error {
	_, err := q.db.ExecContext(ctx, deleteService, id)
	return err
}
