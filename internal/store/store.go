// Package store provides database access for all persisted content types.
// Queries follow the sqlc convention: one method per statement, with Params
// structs for multi-argument writes.
package store

import (
	"context"
	"database/sql"
)

// DBTX is the interface shared by *sql.DB and *sql.Tx.
type DBTX interface {
	ExecContext(context.Context, string, ...any) (sql.Result, error)
	QueryContext(context.Context, string, ...any) (*sql.Rows, error)
	QueryRowContext(context.Context, string, ...any) *sql.Row
}

// Queries provides access to all database queries.
type Queries struct {
	db DBTX
}

// New creates a Queries instance backed by the given database or transaction.
func New(db DBTX) *Queries {
	return &Queries{db: db}
}

// WithTx returns a Queries instance that runs against the given transaction.
func (q *Queries) WithTx(tx *sql.Tx) *Queries {
	return &Queries{db: tx}
}

func nullIfEmpty(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}
