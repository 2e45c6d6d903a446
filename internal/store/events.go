package store

import (
	"context"
	"database/sql"
	"time"
)

const createEvent = `
INSERT INTO events (level, category, message, user_id, metadata, created_at)
VALUES (?, ?, ?, ?, ?, ?)`

// CreateEventParams holds the fields for CreateEvent.
type CreateEventParams struct {
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string
	CreatedAt time.Time
}

// CreateEvent records a system event.
func (q *Queries) CreateEvent(ctx context.Context, arg CreateEventParams) error {
	_, err := q.db.ExecContext(ctx, createEvent,
		arg.Level, arg.Category, arg.Message, arg.UserID, arg.Metadata, arg.CreatedAt)
	return err
}

const listEvents = `
SELECT id, level, category, message, user_id, metadata, created_at
FROM events ORDER BY created_at DESC, id DESC LIMIT ? OFFSET ?`

// ListEventsParams holds the fields for ListEvents.
type ListEventsParams struct {
	Limit  int64
	Offset int64
}

// ListEvents returns recorded events, newest first.
func (q *Queries) ListEvents(ctx context.Context, arg ListEventsParams) ([]Event, error) {
	rows, err := q.db.QueryContext(ctx, listEvents, arg.Limit, arg.Offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []Event
	for rows.Next() {
		var e Event
		if err := rows.Scan(&e.ID, &e.Level, &e.Category, &e.Message, &e.UserID, &e.Metadata, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}

const deleteEventsBefore = `DELETE FROM events WHERE created_at < ?`

// DeleteEventsBefore prunes events older than the cutoff and reports how
// many rows were removed.
func (q *Queries) DeleteEventsBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	res, err := q.db.ExecContext(ctx, deleteEventsBefore, cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}
