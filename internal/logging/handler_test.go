package logging

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"

	"github.com/automindlabs/site-go/internal/middleware"
	"github.com/automindlabs/site-go/internal/model"
	"github.com/automindlabs/site-go/internal/store"
	"github.com/automindlabs/site-go/internal/testutil"
)

func newTestLogger(t *testing.T) (*slog.Logger, *store.Queries, func()) {
	t.Helper()
	db, cleanup := testutil.TestDB(t)
	inner := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelDebug})
	return slog.New(NewEventLogHandler(inner, db)), store.New(db), cleanup
}

func listAll(t *testing.T, q *store.Queries) []store.Event {
	t.Helper()
	events, err := q.ListEvents(context.Background(), store.ListEventsParams{Limit: 100})
	if err != nil {
		t.Fatalf("ListEvents: %v", err)
	}
	return events
}

func TestWarnPersistedInfoNot(t *testing.T) {
	log, q, cleanup := newTestLogger(t)
	defer cleanup()

	log.Info("routine chatter")
	log.Warn("section update failed", "section_id", 3)

	events := listAll(t, q)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	e := events[0]
	if e.Level != model.EventLevelWarning {
		t.Errorf("level = %q", e.Level)
	}
	if e.Category != model.EventCategoryContent {
		t.Errorf("category = %q, want content", e.Category)
	}

	var meta map[string]string
	if err := json.Unmarshal([]byte(e.Metadata), &meta); err != nil {
		t.Fatalf("metadata is not JSON: %v", err)
	}
	if meta["section_id"] != "3" {
		t.Errorf("metadata = %v", meta)
	}
}

func TestExplicitCategoryWins(t *testing.T) {
	log, q, cleanup := newTestLogger(t)
	defer cleanup()

	log.Error("something about a blog", "category", model.EventCategorySystem)

	events := listAll(t, q)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	if events[0].Category != model.EventCategorySystem {
		t.Errorf("category = %q, want explicit system", events[0].Category)
	}
	if events[0].Level != model.EventLevelError {
		t.Errorf("level = %q", events[0].Level)
	}
}

func TestRequestPathInMetadata(t *testing.T) {
	log, q, cleanup := newTestLogger(t)
	defer cleanup()

	ctx := context.WithValue(context.Background(), middleware.ContextKeyRequestPath, "/api/v1/admin/faqs")
	log.WarnContext(ctx, "upload rejected")

	events := listAll(t, q)
	if len(events) != 1 {
		t.Fatalf("events = %d, want 1", len(events))
	}
	var meta map[string]string
	if err := json.Unmarshal([]byte(events[0].Metadata), &meta); err != nil {
		t.Fatalf("metadata is not JSON: %v", err)
	}
	if meta["path"] != "/api/v1/admin/faqs" {
		t.Errorf("path = %q", meta["path"])
	}
}
