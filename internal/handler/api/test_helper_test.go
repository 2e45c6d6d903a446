// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/go-chi/chi/v5"

	"github.com/automindlabs/site-go/internal/auth"
	"github.com/automindlabs/site-go/internal/authgate"
	"github.com/automindlabs/site-go/internal/cache"
	"github.com/automindlabs/site-go/internal/middleware"
	"github.com/automindlabs/site-go/internal/service"
	"github.com/automindlabs/site-go/internal/store"
	"github.com/automindlabs/site-go/internal/testutil"
)

// newTestHandler builds a Handler over a fresh migrated database with
// an in-memory cache and session store.
func newTestHandler(t *testing.T) (*Handler, *store.Queries, func()) {
	t.Helper()

	db, cleanup := testutil.TestDB(t)
	queries := store.New(db)
	sessions := scs.New()
	backend := cache.NewSimpleMemoryCache(time.Hour)
	mgr := cache.NewManager(backend, queries)

	h := NewHandler(Config{
		DB:       db,
		Cache:    mgr,
		Sessions: sessions,
		Auth:     authgate.NewLocalService(queries, sessions, nil),
		Media:    service.NewMediaService(db, t.TempDir()),
		Events:   service.NewEventService(db),
	})

	return h, queries, func() {
		_ = mgr.Close()
		cleanup()
	}
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// requestWithURLParams builds a request carrying chi URL parameters, for
// calling handlers directly without a router.
func requestWithURLParams(method, target string, body io.Reader, params map[string]string) *http.Request {
	r := httptest.NewRequest(method, target, body)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	rctx := chi.NewRouteContext()
	for k, v := range params {
		rctx.URLParams.Add(k, v)
	}
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

// newJSONRequest marshals v as the request body.
func newJSONRequest(t *testing.T, method, target string, v any, params map[string]string) *http.Request {
	t.Helper()
	b, err := json.Marshal(v)
	if err != nil {
		t.Fatalf("marshaling request body: %v", err)
	}
	return requestWithURLParams(method, target, bytes.NewReader(b), params)
}

// asUser attaches an authed user to the request context, standing in
// for the RequireAuth middleware.
func asUser(r *http.Request, user store.User, roles ...string) *http.Request {
	ctx := context.WithValue(r.Context(), middleware.ContextKeyUser,
		middleware.AuthedUser{User: user, Roles: roles})
	return r.WithContext(ctx)
}

// unmarshalData decodes the data field of a success envelope.
func unmarshalData[T any](t *testing.T, body *bytes.Buffer) T {
	t.Helper()
	var envelope struct {
		Data T     `json:"data"`
		Meta *Meta `json:"meta"`
	}
	if err := json.Unmarshal(body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshaling response %q: %v", body.String(), err)
	}
	return envelope.Data
}

// unmarshalError decodes the error envelope.
func unmarshalError(t *testing.T, body *bytes.Buffer) ErrorDetail {
	t.Helper()
	var envelope ErrorResponse
	if err := json.Unmarshal(body.Bytes(), &envelope); err != nil {
		t.Fatalf("unmarshaling error response %q: %v", body.String(), err)
	}
	return envelope.Error
}

// createTestUser inserts a user with the given roles and returns it.
func createTestUser(t *testing.T, queries *store.Queries, email, password string, roles ...string) store.User {
	t.Helper()

	hash, err := auth.HashPassword(password)
	if err != nil {
		t.Fatalf("hashing password: %v", err)
	}
	now := time.Now()
	user, err := queries.CreateUser(context.Background(), store.CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         "Test User",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		t.Fatalf("creating user: %v", err)
	}
	for _, role := range roles {
		if err := queries.AddUserRole(context.Background(), store.AddUserRoleParams{
			UserID: user.ID, Role: role, CreatedAt: now,
		}); err != nil {
			t.Fatalf("adding role %s: %v", role, err)
		}
	}
	return user
}

// sessionTokenFor commits a session for the user directly into the
// store and returns its token, for bearer-token requests.
func sessionTokenFor(t *testing.T, h *Handler, userID int64) string {
	t.Helper()

	deadline := time.Now().Add(time.Hour)
	b, err := h.sessions.Codec.Encode(deadline, map[string]any{
		middleware.SessionKeyUserID: userID,
	})
	if err != nil {
		t.Fatalf("encoding session: %v", err)
	}
	token := "test-token-" + time.Now().Format("150405.000000000")
	if err := h.sessions.Store.Commit(token, b, deadline); err != nil {
		t.Fatalf("committing session: %v", err)
	}
	return token
}

// seedFaq inserts a FAQ row with explicit visibility and position.
func seedFaq(t *testing.T, queries *store.Queries, question string, visible bool, position int64) store.Faq {
	t.Helper()

	now := time.Now()
	faq, err := queries.CreateFaq(context.Background(), store.CreateFaqParams{
		Question:  question,
		Answer:    "answer for " + question,
		IsVisible: visible,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("seeding faq: %v", err)
	}
	return faq
}

// seedSection inserts a section row.
func seedSection(t *testing.T, queries *store.Queries, name, page string, visible bool, position int64) store.Section {
	t.Helper()

	now := time.Now()
	section, err := queries.CreateSection(context.Background(), store.CreateSectionParams{
		Name:        name,
		DisplayName: name,
		Page:        page,
		IsVisible:   visible,
		Position:    position,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
	if err != nil {
		t.Fatalf("seeding section: %v", err)
	}
	return section
}
