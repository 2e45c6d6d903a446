// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import "testing"

func TestSlugify(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Hello World", "hello-world"},
		{"Automind Labs — AI Automation", "automind-labs-ai-automation"},
		{"Café au lait", "cafe-au-lait"},
		{"  leading and trailing  ", "leading-and-trailing"},
		{"Multiple---Hyphens", "multiple-hyphens"},
		{"Ünïcödé Tëst", "unicode-test"},
		{"Привет мир", "privet-mir"},
		{"", ""},
		{"---", ""},
		{"Already-valid-slug", "already-valid-slug"},
	}

	for _, tt := range tests {
		if got := Slugify(tt.input); got != tt.want {
			t.Errorf("Slugify(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestIsValidSlug(t *testing.T) {
	tests := []struct {
		slug string
		want bool
	}{
		{"valid-slug", true},
		{"valid123", true},
		{"", false},
		{"-leading", false},
		{"trailing-", false},
		{"double--hyphen", false},
		{"UPPER", false},
		{"with space", false},
		{"with_underscore", false},
	}

	for _, tt := range tests {
		if got := IsValidSlug(tt.slug); got != tt.want {
			t.Errorf("IsValidSlug(%q) = %v, want %v", tt.slug, got, tt.want)
		}
	}
}
