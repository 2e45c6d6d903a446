// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package cache

import (
	"context"
	"log/slog"
	"time"

	"github.com/automindlabs/site-go/internal/store"
)

// Manager bundles the cache instances used across the application.
type Manager struct {
	Config   *ConfigCache
	Sections *SectionsCache
	General  Cacher
}

// NewManager creates a cache manager over the given backend.
func NewManager(backend Cacher, queries *store.Queries) *Manager {
	return &Manager{
		Config:   NewConfigCache(queries),
		Sections: NewSectionsCache(backend, queries, time.Hour),
		General:  backend,
	}
}

// Preload warms the config cache on startup.
func (m *Manager) Preload(ctx context.Context) error {
	return m.Config.Preload(ctx)
}

// InvalidateConfig invalidates the config cache. Call after any
// site_config write.
func (m *Manager) InvalidateConfig() {
	m.Config.Invalidate()
}

// InvalidateSections invalidates the section registry snapshot. Call
// after any section mutation, reorder included.
func (m *Manager) InvalidateSections(ctx context.Context) {
	m.Sections.Invalidate(ctx)
}

// ClearAll clears every cache and resets statistics.
func (m *Manager) ClearAll(ctx context.Context) {
	m.Config.Invalidate()
	m.Sections.Invalidate(ctx)
	if err := m.General.Clear(ctx); err != nil {
		slog.Warn("clearing general cache", "error", err)
	}
	m.Config.ResetStats()
	if sp, ok := m.General.(StatsProvider); ok {
		sp.ResetStats()
	}
}

// Close releases the backend.
func (m *Manager) Close() error {
	return m.General.Close()
}
