// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package cache provides caching infrastructure backed by memory or Redis.
package cache

import (
	"context"
	"time"
)

// Cacher is the interface shared by cache backends. Implementations
// must be safe for concurrent use. Values are []byte so the same
// interface serves both the in-memory and the Redis backend.
type Cacher interface {
	// Get returns the value for key, or ErrCacheMiss if the key is
	// absent or expired.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the given TTL. A zero TTL uses the
	// backend's default.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// Delete removes a key.
	Delete(ctx context.Context, key string) error

	// Clear removes all entries.
	Clear(ctx context.Context) error

	// Has reports whether a key exists and is not expired.
	Has(ctx context.Context, key string) (bool, error)

	// Close releases backend resources.
	Close() error
}

// Stats holds cache hit/miss counters.
type Stats struct {
	Hits    int64
	Misses  int64
	Sets    int64
	Items   int
	HitRate float64
}

// StatsProvider is implemented by backends that track statistics.
type StatsProvider interface {
	Stats() Stats
	ResetStats()
}

// Error is a sentinel cache error.
type Error string

func (e Error) Error() string { return string(e) }

const (
	// ErrCacheMiss indicates the key was not found or has expired.
	ErrCacheMiss Error = "cache miss"

	// ErrCacheClosed indicates the cache has been closed.
	ErrCacheClosed Error = "cache closed"
)
