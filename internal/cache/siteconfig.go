// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"sync"
	"sync/atomic"

	"github.com/automindlabs/site-go/internal/store"
)

// ConfigCache serves site configuration from memory, populated from the
// database on first access and invalidated explicitly on any config
// write. Values are grouped by surface (header, footer, contact,
// social, settings).
type ConfigCache struct {
	queries *store.Queries
	mu      sync.RWMutex
	loaded  bool
	groups  map[string]map[string]string

	hits   atomic.Int64
	misses atomic.Int64
}

// NewConfigCache creates a config cache over the given queries.
func NewConfigCache(queries *store.Queries) *ConfigCache {
	return &ConfigCache{
		queries: queries,
		groups:  make(map[string]map[string]string),
	}
}

// Group returns all key/value pairs for one configuration group,
// loading from the database if the cache is cold. An unknown group
// returns an empty map.
func (c *ConfigCache) Group(ctx context.Context, group string) (map[string]string, error) {
	c.mu.RLock()
	if c.loaded {
		values := c.copyGroup(group)
		c.mu.RUnlock()
		return values, nil
	}
	c.mu.RUnlock()

	if err := c.loadAll(ctx); err != nil {
		return nil, err
	}

	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.copyGroup(group), nil
}

// Get returns one configuration value. Missing keys return "".
func (c *ConfigCache) Get(ctx context.Context, group, key string) (string, error) {
	values, err := c.Group(ctx, group)
	if err != nil {
		return "", err
	}
	return values[key], nil
}

// All returns every group's key/value pairs.
func (c *ConfigCache) All(ctx context.Context) (map[string]map[string]string, error) {
	c.mu.RLock()
	if !c.loaded {
		c.mu.RUnlock()
		if err := c.loadAll(ctx); err != nil {
			return nil, err
		}
		c.mu.RLock()
	}
	defer c.mu.RUnlock()

	result := make(map[string]map[string]string, len(c.groups))
	for group := range c.groups {
		result[group] = c.copyGroup(group)
	}
	return result, nil
}

// copyGroup returns a copy of one group's map. Callers hold c.mu.
func (c *ConfigCache) copyGroup(group string) map[string]string {
	values, ok := c.groups[group]
	if !ok {
		c.misses.Add(1)
		return map[string]string{}
	}
	c.hits.Add(1)
	out := make(map[string]string, len(values))
	for k, v := range values {
		out[k] = v
	}
	return out
}

func (c *ConfigCache) loadAll(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Another goroutine may have loaded while we waited for the lock.
	if c.loaded {
		return nil
	}

	rows, err := c.queries.ListConfig(ctx)
	if err != nil {
		return err
	}

	c.groups = make(map[string]map[string]string)
	for _, row := range rows {
		g, ok := c.groups[row.Group]
		if !ok {
			g = make(map[string]string)
			c.groups[row.Group] = g
		}
		g[row.Key] = row.Value
	}
	c.loaded = true
	return nil
}

// Invalidate clears the cache, forcing a reload on next access.
func (c *ConfigCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.loaded = false
	c.groups = make(map[string]map[string]string)
}

// Preload loads all config into the cache. Useful on startup.
func (c *ConfigCache) Preload(ctx context.Context) error {
	return c.loadAll(ctx)
}

// Stats returns cache statistics.
func (c *ConfigCache) Stats() Stats {
	c.mu.RLock()
	defer c.mu.RUnlock()

	items := 0
	for _, g := range c.groups {
		items += len(g)
	}
	hits := c.hits.Load()
	misses := c.misses.Load()
	total := hits + misses
	var hitRate float64
	if total > 0 {
		hitRate = float64(hits) / float64(total) * 100
	}
	return Stats{Hits: hits, Misses: misses, Items: items, HitRate: hitRate}
}

// ResetStats resets the cache statistics.
func (c *ConfigCache) ResetStats() {
	c.hits.Store(0)
	c.misses.Store(0)
}
