// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/automindlabs/site-go/internal/model"
)

func TestUpdateConfigGroupRoundTrips(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	body := map[string]string{"phone": "+1 555 0100", "email": "hello@example.com"}
	rec := httptest.NewRecorder()
	h.UpdateConfigGroup(rec, newJSONRequest(t, http.MethodPut, "/x", body,
		map[string]string{"group": model.ConfigGroupContact}))
	if rec.Code != http.StatusOK {
		t.Fatalf("update status = %d, want 200: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.GetPublicConfigGroup(rec, requestWithURLParams(http.MethodGet, "/x", nil,
		map[string]string{"group": model.ConfigGroupContact}))
	if rec.Code != http.StatusOK {
		t.Fatalf("read status = %d, want 200", rec.Code)
	}
	values := unmarshalData[map[string]string](t, rec.Body)
	if values["phone"] != "+1 555 0100" || values["email"] != "hello@example.com" {
		t.Errorf("values = %v", values)
	}
}

// A write must show up on the cached public read.
func TestUpdateConfigGroupInvalidatesCache(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	put := func(value string) {
		rec := httptest.NewRecorder()
		h.UpdateConfigGroup(rec, newJSONRequest(t, http.MethodPut, "/x",
			map[string]string{"tagline": value}, map[string]string{"group": model.ConfigGroupHeader}))
		if rec.Code != http.StatusOK {
			t.Fatalf("update status = %d: %s", rec.Code, rec.Body.String())
		}
	}
	read := func() map[string]string {
		rec := httptest.NewRecorder()
		h.GetPublicConfigGroup(rec, requestWithURLParams(http.MethodGet, "/x", nil,
			map[string]string{"group": model.ConfigGroupHeader}))
		return unmarshalData[map[string]string](t, rec.Body)
	}

	put("first")
	if got := read()["tagline"]; got != "first" {
		t.Fatalf("tagline = %q, want first", got)
	}
	put("second")
	if got := read()["tagline"]; got != "second" {
		t.Errorf("tagline = %q, cached read not invalidated", got)
	}
}

func TestPublicConfigHidesSettingsGroup(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	rec := httptest.NewRecorder()
	h.GetPublicConfigGroup(rec, requestWithURLParams(http.MethodGet, "/x", nil,
		map[string]string{"group": model.ConfigGroupSettings}))
	if rec.Code != http.StatusNotFound {
		t.Errorf("settings group status = %d, want 404", rec.Code)
	}

	// Admin reads can see it.
	rec = httptest.NewRecorder()
	h.GetConfigGroup(rec, requestWithURLParams(http.MethodGet, "/x", nil,
		map[string]string{"group": model.ConfigGroupSettings}))
	if rec.Code != http.StatusOK {
		t.Errorf("admin settings status = %d, want 200", rec.Code)
	}
}

func TestUpdateConfigGroupRejectsBadInput(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	rec := httptest.NewRecorder()
	h.UpdateConfigGroup(rec, newJSONRequest(t, http.MethodPut, "/x",
		map[string]string{}, map[string]string{"group": model.ConfigGroupHeader}))
	if rec.Code != http.StatusBadRequest {
		t.Errorf("empty map status = %d, want 400", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.UpdateConfigGroup(rec, newJSONRequest(t, http.MethodPut, "/x",
		map[string]string{"x": "y"}, map[string]string{"group": "nope"}))
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown group status = %d, want 404", rec.Code)
	}
}

func TestDeleteConfigKey(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	rec := httptest.NewRecorder()
	h.UpdateConfigGroup(rec, newJSONRequest(t, http.MethodPut, "/x",
		map[string]string{"twitter": "@automind", "github": "automind"},
		map[string]string{"group": model.ConfigGroupSocial}))
	if rec.Code != http.StatusOK {
		t.Fatalf("seed status = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.DeleteConfigKey(rec, requestWithURLParams(http.MethodDelete, "/x", nil,
		map[string]string{"group": model.ConfigGroupSocial, "key": "twitter"}))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.GetPublicConfigGroup(rec, requestWithURLParams(http.MethodGet, "/x", nil,
		map[string]string{"group": model.ConfigGroupSocial}))
	values := unmarshalData[map[string]string](t, rec.Body)
	if _, ok := values["twitter"]; ok {
		t.Error("deleted key still present")
	}
	if values["github"] != "automind" {
		t.Errorf("values = %v, github should survive", values)
	}
}
