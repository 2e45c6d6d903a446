// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/automindlabs/site-go/internal/model"
)

// newAuthServer serves the full router behind session middleware, so
// cookies round-trip the way they do in production.
func newAuthServer(t *testing.T, h *Handler) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h.sessions.LoadAndSave(h.Routes()))
	t.Cleanup(srv.Close)
	return srv
}

func postLogin(t *testing.T, srv *httptest.Server, email, password string) *http.Response {
	t.Helper()
	body, _ := json.Marshal(LoginRequest{Email: email, Password: password})
	resp, err := http.Post(srv.URL+"/auth/login", "application/json", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("POST /auth/login: %v", err)
	}
	t.Cleanup(func() { _ = resp.Body.Close() })
	return resp
}

func TestLoginSuccessSetsSessionCookie(t *testing.T) {
	h, queries, cleanup := newTestHandler(t)
	defer cleanup()
	createTestUser(t, queries, "admin@example.com", "hunter22", model.RoleAdmin)

	srv := newAuthServer(t, h)
	resp := postLogin(t, srv, "admin@example.com", "hunter22")

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if len(resp.Cookies()) == 0 {
		t.Error("expected a session cookie")
	}

	var envelope struct {
		Data SessionResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if !envelope.Data.IsAuthenticated || !envelope.Data.IsAdmin {
		t.Errorf("session = %+v, want authenticated admin", envelope.Data)
	}
	if envelope.Data.Phase != "ready" {
		t.Errorf("phase = %q, want ready", envelope.Data.Phase)
	}
}

func TestLoginWrongPassword(t *testing.T) {
	h, queries, cleanup := newTestHandler(t)
	defer cleanup()
	createTestUser(t, queries, "user@example.com", "correct-horse", model.RoleEditor)

	srv := newAuthServer(t, h)
	resp := postLogin(t, srv, "user@example.com", "wrong")

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestLoginUnknownEmailSameAnswerAsWrongPassword(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	srv := newAuthServer(t, h)
	resp := postLogin(t, srv, "nobody@example.com", "whatever")

	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", resp.StatusCode)
	}
}

func TestSessionProbeSignedOut(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	srv := newAuthServer(t, h)
	resp, err := http.Get(srv.URL + "/auth/session")
	if err != nil {
		t.Fatalf("GET /auth/session: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	var envelope struct {
		Data SessionResponse `json:"data"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if envelope.Data.IsAuthenticated || envelope.Data.IsAdmin {
		t.Errorf("session = %+v, want signed out", envelope.Data)
	}
	if envelope.Data.Phase != "ready" {
		t.Errorf("phase = %q, want ready", envelope.Data.Phase)
	}
}

func TestSessionProbeAfterLoginAndLogout(t *testing.T) {
	h, queries, cleanup := newTestHandler(t)
	defer cleanup()
	user := createTestUser(t, queries, "editor@example.com", "sekret-pass", model.RoleEditor)

	srv := newAuthServer(t, h)
	resp := postLogin(t, srv, "editor@example.com", "sekret-pass")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status = %d", resp.StatusCode)
	}
	cookies := resp.Cookies()

	probe := func() SessionResponse {
		req, _ := http.NewRequest(http.MethodGet, srv.URL+"/auth/session", nil)
		for _, c := range cookies {
			req.AddCookie(c)
		}
		r, err := http.DefaultClient.Do(req)
		if err != nil {
			t.Fatalf("GET /auth/session: %v", err)
		}
		defer r.Body.Close()
		var envelope struct {
			Data SessionResponse `json:"data"`
		}
		if err := json.NewDecoder(r.Body).Decode(&envelope); err != nil {
			t.Fatalf("decoding response: %v", err)
		}
		return envelope.Data
	}

	got := probe()
	if !got.IsAuthenticated || got.UserID != user.ID {
		t.Fatalf("session after login = %+v", got)
	}
	if got.IsAdmin {
		t.Error("editor must not be admin")
	}

	req, _ := http.NewRequest(http.MethodPost, srv.URL+"/auth/logout", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("POST /auth/logout: %v", err)
	}
	_ = r.Body.Close()
	if r.StatusCode != http.StatusNoContent {
		t.Fatalf("logout status = %d, want 204", r.StatusCode)
	}

	got = probe()
	if got.IsAuthenticated {
		t.Errorf("session after logout = %+v, want signed out", got)
	}
}

func TestAdminRoutesRequireSession(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	srv := newAuthServer(t, h)
	resp, err := http.Get(srv.URL + "/admin/faqs")
	if err != nil {
		t.Fatalf("GET /admin/faqs: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", resp.StatusCode)
	}
}

func TestAdminOnlyRoutesRejectEditors(t *testing.T) {
	h, queries, cleanup := newTestHandler(t)
	defer cleanup()
	createTestUser(t, queries, "editor@example.com", "sekret-pass", model.RoleEditor)

	srv := newAuthServer(t, h)
	resp := postLogin(t, srv, "editor@example.com", "sekret-pass")
	cookies := resp.Cookies()

	body, _ := json.Marshal(map[string]string{"tagline": "x"})
	req, _ := http.NewRequest(http.MethodPut, srv.URL+"/admin/config/header", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("PUT /admin/config/header: %v", err)
	}
	defer r.Body.Close()

	if r.StatusCode != http.StatusForbidden {
		t.Errorf("status = %d, want 403", r.StatusCode)
	}

	// Content routes stay open to editors.
	req, _ = http.NewRequest(http.MethodGet, srv.URL+"/admin/faqs", nil)
	for _, c := range cookies {
		req.AddCookie(c)
	}
	r2, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatalf("GET /admin/faqs: %v", err)
	}
	defer r2.Body.Close()
	if r2.StatusCode != http.StatusOK {
		t.Errorf("editor faq list status = %d, want 200", r2.StatusCode)
	}
}
