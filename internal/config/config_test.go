// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"strings"
	"testing"
)

const testSecret = "Xk9#mP2$vL5@qR8!wT3^yU6&zA1*bC4%"

func setRequiredEnv(t *testing.T) {
	t.Helper()
	t.Setenv("AUTOMIND_SESSION_SECRET", testSecret)
}

func TestLoad_Defaults(t *testing.T) {
	setRequiredEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.ServerPort != 8080 {
		t.Errorf("ServerPort = %d, want 8080", cfg.ServerPort)
	}
	if cfg.DBPath != "./data/automind.db" {
		t.Errorf("DBPath = %q, want ./data/automind.db", cfg.DBPath)
	}
	if cfg.Env != "development" {
		t.Errorf("Env = %q, want development", cfg.Env)
	}
	if !cfg.IsDevelopment() {
		t.Error("IsDevelopment() = false, want true")
	}
	if cfg.UseRedisCache() {
		t.Error("UseRedisCache() = true with no AUTOMIND_REDIS_URL set")
	}
}

func TestLoad_MissingSecret(t *testing.T) {
	t.Setenv("AUTOMIND_SESSION_SECRET", "")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing session secret")
	}
}

func TestLoad_ShortSecret(t *testing.T) {
	t.Setenv("AUTOMIND_SESSION_SECRET", "too-short")

	_, err := Load()
	if err == nil {
		t.Fatal("expected error for short session secret")
	}
	if !strings.Contains(err.Error(), "at least") {
		t.Errorf("unexpected error message: %v", err)
	}
}

func TestLoad_WeakSecret(t *testing.T) {
	t.Setenv("AUTOMIND_SESSION_SECRET", "change-me-to-32-byte-secret-key!")

	if _, err := Load(); err == nil {
		t.Fatal("expected error for known weak secret")
	}
}

func TestLoad_AllowOrigins(t *testing.T) {
	setRequiredEnv(t)
	t.Setenv("AUTOMIND_ALLOW_ORIGINS", "https://automindlabs.com,https://admin.automindlabs.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if len(cfg.AllowOrigins) != 2 {
		t.Fatalf("AllowOrigins = %v, want 2 entries", cfg.AllowOrigins)
	}
	if cfg.AllowOrigins[1] != "https://admin.automindlabs.com" {
		t.Errorf("AllowOrigins[1] = %q", cfg.AllowOrigins[1])
	}
}

func TestServerAddr(t *testing.T) {
	cfg := Config{ServerHost: "0.0.0.0", ServerPort: 9000}
	if got := cfg.ServerAddr(); got != "0.0.0.0:9000" {
		t.Errorf("ServerAddr() = %q, want 0.0.0.0:9000", got)
	}
}

func TestHasMinimumEntropy(t *testing.T) {
	tests := []struct {
		secret string
		want   bool
	}{
		{"abcdefgh", false},
		{"abcDEF123", true},
		{"abc123!@#", true},
		{"ABCDEF123456", false},
		{testSecret, true},
	}

	for _, tt := range tests {
		if got := hasMinimumEntropy(tt.secret); got != tt.want {
			t.Errorf("hasMinimumEntropy(%q) = %v, want %v", tt.secret, got, tt.want)
		}
	}
}
