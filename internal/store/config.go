// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"time"
)

const listConfig = `
SELECT id, cfg_group, cfg_key, value, updated_at
FROM site_config ORDER BY cfg_group, cfg_key`

// ListConfig returns every configuration row across all groups.
func (q *Queries) ListConfig(ctx context.Context) ([]SiteConfig, error) {
	return q.queryConfig(ctx, listConfig)
}

const listConfigByGroup = `
SELECT id, cfg_group, cfg_key, value, updated_at
FROM site_config WHERE cfg_group = ? ORDER BY cfg_key`

// ListConfigByGroup returns all key/value rows for one configuration group.
func (q *Queries) ListConfigByGroup(ctx context.Context, group string) ([]SiteConfig, error) {
	return q.queryConfig(ctx, listConfigByGroup, group)
}

func (q *Queries) queryConfig(ctx context.Context, query string, args ...any) ([]SiteConfig, error) {
	rows, err := q.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []SiteConfig
	for rows.Next() {
		var c SiteConfig
		if err := rows.Scan(&c.ID, &c.Group, &c.Key, &c.Value, &c.UpdatedAt); err != nil {
			return nil, err
		}
		entries = append(entries, c)
	}
	return entries, rows.Err()
}

const getConfigValue = `
SELECT id, cfg_group, cfg_key, value, updated_at
FROM site_config WHERE cfg_group = ? AND cfg_key = ?`

// GetConfigValueParams holds the fields for GetConfigValue.
type GetConfigValueParams struct {
	Group string
	Key   string
}

// GetConfigValue fetches a single configuration row.
func (q *Queries) GetConfigValue(ctx context.Context, arg GetConfigValueParams) (SiteConfig, error) {
	row := q.db.QueryRowContext(ctx, getConfigValue, arg.Group, arg.Key)
	var c SiteConfig
	err := row.Scan(&c.ID, &c.Group, &c.Key, &c.Value, &c.UpdatedAt)
	return c, err
}

const upsertConfig = `
INSERT INTO site_config (cfg_group, cfg_key, value, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT (cfg_group, cfg_key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`

// UpsertConfigParams holds the fields for UpsertConfig.
type UpsertConfigParams struct {
	Group     string
	Key       string
	Value     string
	UpdatedAt time.Time
}

// UpsertConfig writes a configuration value, inserting or overwriting.
func (q *Queries) UpsertConfig(ctx context.Context, arg UpsertConfigParams) error {
	_, err := q.db.ExecContext(ctx, upsertConfig, arg.Group, arg.Key, arg.Value, arg.UpdatedAt)
	return err
}

const deleteConfigKey = `
DELETE FROM site_config WHERE cfg_group = ? AND cfg_key = ?`

// DeleteConfigKeyParams holds the fields for DeleteConfigKey.
type DeleteConfigKeyParams struct {
	Group string
	Key   string
}

// DeleteConfigKey removes a single configuration row.
func (q *Queries) DeleteConfigKey(ctx context.Context, arg DeleteConfigKeyParams) error {
	_, err := q.db.ExecContext(ctx, deleteConfigKey, arg.Group, arg.Key)
	return err
}
