// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package orderable implements position-based ordering for content
// collections. Records carry an explicit position column; reordering is
// an array move followed by a per-record commit of the new positions.
package orderable

import (
	"context"
	"errors"
	"fmt"
)

// Committer persists a single record's display position.
type Committer interface {
	UpdatePosition(ctx context.Context, id, position int64) error
}

// CommitterFunc adapts a function to the Committer interface.
type CommitterFunc func(ctx context.Context, id, position int64) error

// UpdatePosition calls f.
func (f CommitterFunc) UpdatePosition(ctx context.Context, id, position int64) error {
	return f(ctx, id, position)
}

// Move returns seq with the element at from removed and reinserted at to.
// Elements between the two indexes shift by one; nothing is swapped.
// Out-of-range indexes return seq unchanged.
func Move[T any](seq []T, from, to int) []T {
	if from < 0 || from >= len(seq) || to < 0 || to >= len(seq) || from == to {
		return seq
	}
	out := make([]T, 0, len(seq))
	out = append(out, seq[:from]...)
	out = append(out, seq[from+1:]...)
	out = append(out[:to], append([]T{seq[from]}, out[to:]...)...)
	return out
}

// CommitOrder writes position=index for every id in the given order.
// Each record is updated independently: a failed write does not roll
// back or stop the rest, so the surviving updates still land. All
// failures are joined into the returned error and the caller should
// re-fetch to observe the stored order. Committing the same order twice
// is a no-op.
func CommitOrder(ctx context.Context, c Committer, ids []int64) error {
	var errs []error
	for i, id := range ids {
		if err := c.UpdatePosition(ctx, id, int64(i)); err != nil {
			errs = append(errs, fmt.Errorf("position %d id %d: %w", i, id, err))
		}
	}
	return errors.Join(errs...)
}

// NextPosition returns the position for a newly created record, which
// is appended after the existing count records.
func NextPosition(count int64) int64 {
	return count
}
