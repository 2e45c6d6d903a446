// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package session

import (
	"database/sql"
	"net/http"
	"testing"
	"time"

	_ "modernc.org/sqlite"
)

func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", ":memory:")
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	// Create sessions table required by sqlite3store
	_, err = db.Exec(`
		CREATE TABLE sessions (
			token TEXT PRIMARY KEY,
			data BLOB NOT NULL,
			expiry REAL NOT NULL
		);
		CREATE INDEX sessions_expiry_idx ON sessions(expiry);
	`)
	if err != nil {
		t.Fatalf("failed to create sessions table: %v", err)
	}

	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_DevMode(t *testing.T) {
	db := setupTestDB(t)

	sm := New(db, true)

	if sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = false in dev mode")
	}
	if sm.Cookie.Name != CookieName {
		t.Errorf("cookie name = %q, want %q", sm.Cookie.Name, CookieName)
	}
}

func TestNew_ProductionMode(t *testing.T) {
	db := setupTestDB(t)

	sm := New(db, false)

	if !sm.Cookie.Secure {
		t.Error("expected Cookie.Secure = true in production mode")
	}
	if sm.Cookie.Name != "__Host-"+CookieName {
		t.Errorf("cookie name = %q, want __Host- prefixed", sm.Cookie.Name)
	}
	if sm.Cookie.Path != "/" {
		t.Errorf("expected Cookie.Path = '/', got %q", sm.Cookie.Path)
	}
}

func TestNew_SessionSettings(t *testing.T) {
	db := setupTestDB(t)

	sm := New(db, true)

	if sm.Lifetime != 7*24*time.Hour {
		t.Errorf("Lifetime = %v, want 168h", sm.Lifetime)
	}
	if sm.IdleTimeout != 24*time.Hour {
		t.Errorf("IdleTimeout = %v, want 24h", sm.IdleTimeout)
	}
	if !sm.Cookie.HttpOnly {
		t.Error("expected Cookie.HttpOnly = true")
	}
	if sm.Cookie.SameSite != http.SameSiteLaxMode {
		t.Errorf("expected SameSite = Lax, got %v", sm.Cookie.SameSite)
	}
}

func TestNew_StoreInitialized(t *testing.T) {
	db := setupTestDB(t)

	sm := New(db, true)

	if sm.Store == nil {
		t.Error("expected Store to be initialized")
	}
}
