// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package orderable

import (
	"sort"

	"github.com/automindlabs/site-go/internal/store"
)

// SectionRegistry answers visibility questions for named page sections.
// It is built from a snapshot of the sections table and fails open: a
// name with no row is reported visible, so an unregistered section is
// never blanked out by a stale or incomplete registry.
type SectionRegistry struct {
	byName map[string]store.Section
}

// NewSectionRegistry builds a registry from fetched section rows.
func NewSectionRegistry(sections []store.Section) *SectionRegistry {
	byName := make(map[string]store.Section, len(sections))
	for _, s := range sections {
		byName[s.Name] = s
	}
	return &SectionRegistry{byName: byName}
}

// IsVisible reports whether the named section should render. Unknown
// names are visible.
func (r *SectionRegistry) IsVisible(name string) bool {
	s, ok := r.byName[name]
	if !ok {
		return true
	}
	return s.IsVisible
}

// Lookup returns the section row for a name, if registered.
func (r *SectionRegistry) Lookup(name string) (store.Section, bool) {
	s, ok := r.byName[name]
	return s, ok
}

// Page returns the registered sections for one page in display order.
func (r *SectionRegistry) Page(page string) []store.Section {
	var out []store.Section
	for _, s := range r.byName {
		if s.Page == page {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Position != out[j].Position {
			return out[i].Position < out[j].Position
		}
		return out[i].ID < out[j].ID
	})
	return out
}
