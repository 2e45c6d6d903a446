// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "database/sql"

// NullInt64FromPtr converts a pointer to int64 into sql.NullInt64.
// Returns a valid NullInt64 if the pointer is non-nil, otherwise returns an invalid one.
func NullInt64FromPtr(ptr *int64) sql.NullInt64 {
	if ptr != nil {
		return sql.NullInt64{Int64: *ptr, Valid: true}
	}
	return sql.NullInt64{}
}

// StringFromNull returns the string value of a sql.NullString, or "" when invalid.
func StringFromNull(ns sql.NullString) string {
	if ns.Valid {
		return ns.String
	}
	return ""
}

// Int64PtrFromNull returns a pointer to the value of a sql.NullInt64, or nil when invalid.
func Int64PtrFromNull(ni sql.NullInt64) *int64 {
	if ni.Valid {
		v := ni.Int64
		return &v
	}
	return nil
}
