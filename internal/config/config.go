// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
)

// knownWeakSecrets contains default/example secrets that must be rejected in production.
var knownWeakSecrets = []string{
	"change-me-to-32-byte-secret-key!",
	"REPLACE_WITH_YOUR_OWN_SECRET_KEY!",
}

// Config holds the application configuration loaded from environment variables.
type Config struct {
	DBPath        string `env:"AUTOMIND_DB_PATH" envDefault:"./data/automind.db"`
	SessionSecret string `env:"AUTOMIND_SESSION_SECRET,required"`
	ServerHost    string `env:"AUTOMIND_SERVER_HOST" envDefault:"localhost"`
	ServerPort    int    `env:"AUTOMIND_SERVER_PORT" envDefault:"8080"`
	Env           string `env:"AUTOMIND_ENV" envDefault:"development"`
	LogLevel      string `env:"AUTOMIND_LOG_LEVEL" envDefault:"info"`
	UploadsDir    string `env:"AUTOMIND_UPLOADS_DIR" envDefault:"./uploads"`
	PublicBaseURL string `env:"AUTOMIND_PUBLIC_BASE_URL" envDefault:"http://localhost:8080"`

	// CORS configuration for the admin SPA and public site
	AllowOrigins []string `env:"AUTOMIND_ALLOW_ORIGINS" envSeparator:","`

	// Cache configuration
	RedisURL     string `env:"AUTOMIND_REDIS_URL"`                           // Optional Redis URL for distributed caching
	CachePrefix  string `env:"AUTOMIND_CACHE_PREFIX" envDefault:"automind:"` // Redis key prefix
	CacheTTL     int    `env:"AUTOMIND_CACHE_TTL" envDefault:"3600"`         // Default cache TTL in seconds
	CacheMaxSize int    `env:"AUTOMIND_CACHE_MAX_SIZE" envDefault:"10000"`   // Max memory cache entries

	// Seeding configuration
	DoSeed        bool   `env:"AUTOMIND_DO_SEED" envDefault:"false"` // Enable database seeding
	AdminEmail    string `env:"AUTOMIND_ADMIN_EMAIL" envDefault:"admin@automindlabs.com"`
	AdminPassword string `env:"AUTOMIND_ADMIN_PASSWORD"` // Required when seeding
}

// IsDevelopment returns true if the application is running in development mode.
func (c Config) IsDevelopment() bool {
	return c.Env == "development"
}

// ServerAddr returns the full server address in host:port format.
func (c Config) ServerAddr() string {
	return fmt.Sprintf("%s:%d", c.ServerHost, c.ServerPort)
}

// UseRedisCache returns true if Redis caching is configured.
func (c Config) UseRedisCache() bool {
	return c.RedisURL != ""
}

// MinSessionSecretLength is the minimum required length for the session secret.
const MinSessionSecretLength = 32

// Load parses environment variables and returns a Config struct.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	// Validate session secret length
	if len(cfg.SessionSecret) < MinSessionSecretLength {
		return nil, fmt.Errorf("AUTOMIND_SESSION_SECRET must be at least %d bytes long, got %d bytes; "+
			"generate a secure secret with: openssl rand -base64 32",
			MinSessionSecretLength, len(cfg.SessionSecret))
	}

	// Reject known weak/default secrets
	for _, weak := range knownWeakSecrets {
		if cfg.SessionSecret == weak {
			return nil, fmt.Errorf("AUTOMIND_SESSION_SECRET is a known default value and must not be used; " +
				"generate a secure secret with: openssl rand -base64 32")
		}
	}

	// Warn about low-entropy secrets
	if !hasMinimumEntropy(cfg.SessionSecret) {
		slog.Warn("AUTOMIND_SESSION_SECRET has low character diversity; " +
			"consider generating a random secret with: openssl rand -base64 32")
	}

	return cfg, nil
}

// hasMinimumEntropy checks that a secret contains at least 3 character classes
// (lowercase, uppercase, digits, special characters).
func hasMinimumEntropy(s string) bool {
	charTypes := 0
	if strings.ContainsAny(s, "abcdefghijklmnopqrstuvwxyz") {
		charTypes++
	}
	if strings.ContainsAny(s, "ABCDEFGHIJKLMNOPQRSTUVWXYZ") {
		charTypes++
	}
	if strings.ContainsAny(s, "0123456789") {
		charTypes++
	}
	if strings.ContainsAny(s, "!@#$%^&*()-_=+[]{}|;:,.<>?/~`'\"\\") {
		charTypes++
	}
	return charTypes >= 3
}
