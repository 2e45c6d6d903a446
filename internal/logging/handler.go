// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package logging provides a slog handler that mirrors WARN and ERROR
// records into the database-backed event log for auditing.
package logging

import (
	"context"
	"database/sql"
	"log/slog"
	"strings"

	"github.com/automindlabs/site-go/internal/middleware"
	"github.com/automindlabs/site-go/internal/model"
	"github.com/automindlabs/site-go/internal/store"
)

// EventLogHandler wraps another slog.Handler and additionally writes
// records at or above its threshold to the events table.
type EventLogHandler struct {
	inner   slog.Handler
	queries *store.Queries
	level   slog.Level
}

// NewEventLogHandler wraps inner; records at WARN and above are also
// persisted.
func NewEventLogHandler(inner slog.Handler, db *sql.DB) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   slog.LevelWarn,
	}
}

// NewEventLogHandlerWithLevel wraps inner with a custom persistence
// threshold.
func NewEventLogHandlerWithLevel(inner slog.Handler, db *sql.DB, level slog.Level) *EventLogHandler {
	return &EventLogHandler{
		inner:   inner,
		queries: store.New(db),
		level:   level,
	}
}

// Enabled implements slog.Handler.
func (h *EventLogHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.inner.Enabled(ctx, level)
}

// Handle implements slog.Handler.
func (h *EventLogHandler) Handle(ctx context.Context, r slog.Record) error {
	if err := h.inner.Handle(ctx, r); err != nil {
		return err
	}
	if r.Level >= h.level {
		h.writeEvent(ctx, r)
	}
	return nil
}

// WithAttrs implements slog.Handler.
func (h *EventLogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithAttrs(attrs),
		queries: h.queries,
		level:   h.level,
	}
}

// WithGroup implements slog.Handler.
func (h *EventLogHandler) WithGroup(name string) slog.Handler {
	return &EventLogHandler{
		inner:   h.inner.WithGroup(name),
		queries: h.queries,
		level:   h.level,
	}
}

func (h *EventLogHandler) writeEvent(ctx context.Context, r slog.Record) {
	metadata := h.extractMetadata(ctx, r)

	// Persist on a background context so the event survives request
	// cancellation.
	_ = h.queries.CreateEvent(context.Background(), store.CreateEventParams{
		Level:     eventLevel(r.Level),
		Category:  h.extractCategory(r),
		Message:   r.Message,
		UserID:    sql.NullInt64{},
		Metadata:  metadata,
		CreatedAt: r.Time,
	})
}

func eventLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return model.EventLevelError
	case level >= slog.LevelWarn:
		return model.EventLevelWarning
	default:
		return model.EventLevelInfo
	}
}

// extractCategory uses an explicit "category" attribute when present,
// otherwise infers one from the message.
func (h *EventLogHandler) extractCategory(r slog.Record) string {
	var category string
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			category = a.Value.String()
			return false
		}
		return true
	})
	if category != "" {
		return category
	}

	msg := strings.ToLower(r.Message)
	switch {
	case strings.Contains(msg, "auth") || strings.Contains(msg, "sign-in") || strings.Contains(msg, "login") || strings.Contains(msg, "session"):
		return model.EventCategoryAuth
	case strings.Contains(msg, "blog") || strings.Contains(msg, "faq") || strings.Contains(msg, "review") ||
		strings.Contains(msg, "section") || strings.Contains(msg, "portfolio") || strings.Contains(msg, "video"):
		return model.EventCategoryContent
	case strings.Contains(msg, "media") || strings.Contains(msg, "upload") || strings.Contains(msg, "image"):
		return model.EventCategoryMedia
	case strings.Contains(msg, "user") || strings.Contains(msg, "account"):
		return model.EventCategoryUser
	case strings.Contains(msg, "config") || strings.Contains(msg, "setting"):
		return model.EventCategoryConfig
	case strings.Contains(msg, "cache"):
		return model.EventCategoryCache
	default:
		return model.EventCategorySystem
	}
}

// extractMetadata serializes attributes to a flat JSON object, adding
// the request path when one is in the context.
func (h *EventLogHandler) extractMetadata(ctx context.Context, r slog.Record) string {
	path := middleware.GetRequestPath(ctx)
	if r.NumAttrs() == 0 && path == "" {
		return "{}"
	}

	var sb strings.Builder
	sb.WriteString("{")
	first := true

	writePair := func(key, value string) {
		if !first {
			sb.WriteString(",")
		}
		first = false
		sb.WriteString(`"`)
		sb.WriteString(escapeJSON(key))
		sb.WriteString(`":"`)
		sb.WriteString(escapeJSON(value))
		sb.WriteString(`"`)
	}

	if path != "" {
		writePair("path", path)
	}
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == "category" {
			return true
		}
		writePair(a.Key, a.Value.String())
		return true
	})

	sb.WriteString("}")
	return sb.String()
}

func escapeJSON(s string) string {
	var sb strings.Builder
	for _, r := range s {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		default:
			sb.WriteRune(r)
		}
	}
	return sb.String()
}
