// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"time"

	"github.com/automindlabs/site-go/internal/orderable"
	"github.com/automindlabs/site-go/internal/store"
)

const sectionsKey = "sections:all"

// SectionsCache caches the section registry snapshot. Any section
// mutation must call Invalidate so the next read rebuilds the registry.
type SectionsCache struct {
	typed   *TypedCache[[]store.Section]
	queries *store.Queries
}

// NewSectionsCache creates a sections cache over the given backend.
func NewSectionsCache(backend Cacher, queries *store.Queries, ttl time.Duration) *SectionsCache {
	return &SectionsCache{
		typed:   NewTypedCache[[]store.Section](backend, ttl),
		queries: queries,
	}
}

// Registry returns a SectionRegistry built from the cached snapshot,
// fetching from the database on a miss.
func (c *SectionsCache) Registry(ctx context.Context) (*orderable.SectionRegistry, error) {
	sections, err := c.typed.GetOrSet(ctx, sectionsKey, func() (*[]store.Section, error) {
		rows, err := c.queries.ListSections(ctx)
		if err != nil {
			return nil, err
		}
		return &rows, nil
	})
	if err != nil {
		return nil, err
	}
	return orderable.NewSectionRegistry(*sections), nil
}

// Invalidate drops the cached snapshot.
func (c *SectionsCache) Invalidate(ctx context.Context) {
	_ = c.typed.Delete(ctx, sectionsKey)
}
