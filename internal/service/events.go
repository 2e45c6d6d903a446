// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package service provides business logic shared across handlers,
// including the audit event log.
package service

import (
	"context"
	"database/sql"
	"encoding/json"
	"log/slog"
	"time"

	"github.com/automindlabs/site-go/internal/model"
	"github.com/automindlabs/site-go/internal/store"
	"github.com/automindlabs/site-go/internal/util"
)

// EventService records audit events for admin actions.
type EventService struct {
	queries *store.Queries
}

// NewEventService creates a new EventService.
func NewEventService(db *sql.DB) *EventService {
	return &EventService{queries: store.New(db)}
}

// LogEvent creates an event log entry.
func (s *EventService) LogEvent(ctx context.Context, level, category, message string, userID *int64, metadata map[string]any) error {
	metadataJSON := "{}"
	if metadata != nil {
		if b, err := json.Marshal(metadata); err == nil {
			metadataJSON = string(b)
		}
	}

	err := s.queries.CreateEvent(ctx, store.CreateEventParams{
		Level:     level,
		Category:  category,
		Message:   message,
		UserID:    util.NullInt64FromPtr(userID),
		Metadata:  metadataJSON,
		CreatedAt: time.Now(),
	})
	if err != nil {
		slog.Error("recording event", "category", category, "error", err)
	}
	return err
}

// LogInfo logs an info-level event.
func (s *EventService) LogInfo(ctx context.Context, category, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelInfo, category, message, userID, metadata)
}

// LogWarning logs a warning-level event.
func (s *EventService) LogWarning(ctx context.Context, category, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelWarning, category, message, userID, metadata)
}

// LogError logs an error-level event.
func (s *EventService) LogError(ctx context.Context, category, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, model.EventLevelError, category, message, userID, metadata)
}

// LogAuthEvent logs a sign-in, sign-out, or provisioning event.
func (s *EventService) LogAuthEvent(ctx context.Context, level, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryAuth, message, userID, metadata)
}

// LogContentEvent logs a content change (blogs, faqs, reviews,
// services, videos, sections, portfolio).
func (s *EventService) LogContentEvent(ctx context.Context, level, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryContent, message, userID, metadata)
}

// LogMediaEvent logs an upload or media deletion.
func (s *EventService) LogMediaEvent(ctx context.Context, level, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryMedia, message, userID, metadata)
}

// LogConfigEvent logs a site configuration change.
func (s *EventService) LogConfigEvent(ctx context.Context, level, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryConfig, message, userID, metadata)
}

// LogUserEvent logs a user account change.
func (s *EventService) LogUserEvent(ctx context.Context, level, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategoryUser, message, userID, metadata)
}

// LogSystemEvent logs a system-level event.
func (s *EventService) LogSystemEvent(ctx context.Context, level, message string, userID *int64, metadata map[string]any) error {
	return s.LogEvent(ctx, level, model.EventCategorySystem, message, userID, metadata)
}

// DeleteOldEvents prunes events older than the given age.
func (s *EventService) DeleteOldEvents(ctx context.Context, olderThan time.Duration) (int64, error) {
	cutoff := time.Now().Add(-olderThan)
	return s.queries.DeleteEventsBefore(ctx, cutoff)
}
