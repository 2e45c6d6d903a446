// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

func corsResponse(t *testing.T, handler func(http.Handler) http.Handler, origin string) *httptest.ResponseRecorder {
	t.Helper()

	next := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/api/v1/status", nil)
	req.Header.Set("Origin", origin)
	rec := httptest.NewRecorder()
	handler(next).ServeHTTP(rec, req)
	return rec
}

func TestCORSReflectsAnyOriginInDevelopment(t *testing.T) {
	handler := CORS(nil, true)

	rec := corsResponse(t, handler, "http://localhost:5173")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "http://localhost:5173" {
		t.Errorf("Access-Control-Allow-Origin = %q, want request origin reflected", got)
	}
}

func TestCORSDefaultsToSameOriginInProduction(t *testing.T) {
	handler := CORS(nil, false)

	rec := corsResponse(t, handler, "https://evil.example")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want no CORS grant without configured origins", got)
	}
}

func TestCORSAllowsOnlyConfiguredOriginsInProduction(t *testing.T) {
	handler := CORS([]string{"https://automindlabs.com"}, false)

	rec := corsResponse(t, handler, "https://automindlabs.com")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "https://automindlabs.com" {
		t.Errorf("Access-Control-Allow-Origin = %q, want configured origin", got)
	}

	rec = corsResponse(t, handler, "https://evil.example")
	if got := rec.Header().Get("Access-Control-Allow-Origin"); got != "" {
		t.Errorf("Access-Control-Allow-Origin = %q, want unlisted origin rejected", got)
	}
}
