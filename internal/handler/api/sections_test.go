// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/automindlabs/site-go/internal/model"
)

func TestListPublicSectionsFiltersByPage(t *testing.T) {
	h, queries, cleanup := newTestHandler(t)
	defer cleanup()

	seedSection(t, queries, model.SectionHero, model.PageHome, true, 0)
	seedSection(t, queries, model.SectionServices, model.PageHome, false, 1)
	seedSection(t, queries, "team", model.PageAbout, true, 0)

	rec := httptest.NewRecorder()
	h.ListPublicSections(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sections?page=home", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	sections := unmarshalData[[]SectionResponse](t, rec.Body)
	if len(sections) != 2 {
		t.Fatalf("got %d sections, want 2", len(sections))
	}
	// Hidden sections are included with their flag; the client decides
	// what to render.
	if sections[0].Name != model.SectionHero || !sections[0].IsVisible {
		t.Errorf("sections[0] = %+v", sections[0])
	}
	if sections[1].Name != model.SectionServices || sections[1].IsVisible {
		t.Errorf("sections[1] = %+v", sections[1])
	}
}

func TestListPublicSectionsDefaultsToHome(t *testing.T) {
	h, queries, cleanup := newTestHandler(t)
	defer cleanup()

	seedSection(t, queries, model.SectionHero, model.PageHome, true, 0)
	seedSection(t, queries, "team", model.PageAbout, true, 0)

	rec := httptest.NewRecorder()
	h.ListPublicSections(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sections", nil))

	sections := unmarshalData[[]SectionResponse](t, rec.Body)
	if len(sections) != 1 || sections[0].Page != model.PageHome {
		t.Errorf("sections = %+v, want only home", sections)
	}
}

func TestListPublicSectionsRejectsUnknownPage(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	rec := httptest.NewRecorder()
	h.ListPublicSections(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sections?page=nope", nil))

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
}

func TestCreateSectionRejectsDuplicateName(t *testing.T) {
	h, queries, cleanup := newTestHandler(t)
	defer cleanup()

	seedSection(t, queries, model.SectionHero, model.PageHome, true, 0)

	req := newJSONRequest(t, http.MethodPost, "/x", CreateSectionRequest{
		Name: model.SectionHero, DisplayName: "Hero", Page: model.PageHome,
	}, nil)
	rec := httptest.NewRecorder()
	h.CreateSection(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rec.Code)
	}
	errDetail := unmarshalError(t, rec.Body)
	if _, ok := errDetail.Details["name"]; !ok {
		t.Errorf("details = %v, want a name error", errDetail.Details)
	}
}

func TestCreateSectionValidation(t *testing.T) {
	h, _, cleanup := newTestHandler(t)
	defer cleanup()

	tests := []struct {
		name  string
		req   CreateSectionRequest
		field string
	}{
		{"uppercase name", CreateSectionRequest{Name: "Hero", DisplayName: "x", Page: model.PageHome}, "name"},
		{"empty display name", CreateSectionRequest{Name: "hero", DisplayName: " ", Page: model.PageHome}, "display_name"},
		{"unknown page", CreateSectionRequest{Name: "hero", DisplayName: "x", Page: "landing"}, "page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			h.CreateSection(rec, newJSONRequest(t, http.MethodPost, "/x", tt.req, nil))
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rec.Code)
			}
			if _, ok := unmarshalError(t, rec.Body).Details[tt.field]; !ok {
				t.Errorf("expected a %s field error", tt.field)
			}
		})
	}
}

// A section visibility change must show up on the public read even
// though the public read is served from cache.
func TestSectionVisibilityInvalidatesCache(t *testing.T) {
	h, queries, cleanup := newTestHandler(t)
	defer cleanup()

	section := seedSection(t, queries, model.SectionHero, model.PageHome, true, 0)

	// Warm the cache.
	rec := httptest.NewRecorder()
	h.ListPublicSections(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sections", nil))
	if got := unmarshalData[[]SectionResponse](t, rec.Body); !got[0].IsVisible {
		t.Fatal("expected visible section before toggle")
	}

	visible := false
	req := newJSONRequest(t, http.MethodPatch, "/x", visibilityRequest{IsVisible: &visible},
		map[string]string{"id": formatID(section.ID)})
	rec = httptest.NewRecorder()
	h.UpdateSectionVisibility(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("toggle status = %d, want 204", rec.Code)
	}

	rec = httptest.NewRecorder()
	h.ListPublicSections(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sections", nil))
	if got := unmarshalData[[]SectionResponse](t, rec.Body); got[0].IsVisible {
		t.Error("public read still serves the stale visibility")
	}
}

func TestCommitSectionOrderReordersPublicRead(t *testing.T) {
	h, queries, cleanup := newTestHandler(t)
	defer cleanup()

	hero := seedSection(t, queries, model.SectionHero, model.PageHome, true, 0)
	services := seedSection(t, queries, model.SectionServices, model.PageHome, true, 1)

	// Warm the cache with the original order.
	rec := httptest.NewRecorder()
	h.ListPublicSections(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sections", nil))

	req := newJSONRequest(t, http.MethodPut, "/x", orderRequest{IDs: []int64{services.ID, hero.ID}}, nil)
	rec = httptest.NewRecorder()
	h.CommitSectionOrder(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("order status = %d, want 204: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	h.ListPublicSections(rec, httptest.NewRequest(http.MethodGet, "/api/v1/sections", nil))
	sections := unmarshalData[[]SectionResponse](t, rec.Body)
	if sections[0].ID != services.ID || sections[1].ID != hero.ID {
		t.Errorf("order after commit = [%d %d], want [%d %d]",
			sections[0].ID, sections[1].ID, services.ID, hero.ID)
	}
}

func TestDeleteSectionLeavesItUnmanaged(t *testing.T) {
	h, queries, cleanup := newTestHandler(t)
	defer cleanup()

	section := seedSection(t, queries, model.SectionHero, model.PageHome, false, 0)

	req := requestWithURLParams(http.MethodDelete, "/x", nil, map[string]string{"id": formatID(section.ID)})
	rec := httptest.NewRecorder()
	h.DeleteSection(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d, want 204", rec.Code)
	}

	// The registry now has no row for the name, which renders by
	// default.
	registry, err := h.cache.Sections.Registry(context.Background())
	if err != nil {
		t.Fatalf("Registry: %v", err)
	}
	if !registry.IsVisible(model.SectionHero) {
		t.Error("unmanaged section should be visible by default")
	}
}
