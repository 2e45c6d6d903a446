// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"

	"github.com/automindlabs/site-go/internal/authgate"
	"github.com/automindlabs/site-go/internal/cache"
	"github.com/automindlabs/site-go/internal/config"
	"github.com/automindlabs/site-go/internal/handler/api"
	"github.com/automindlabs/site-go/internal/logging"
	"github.com/automindlabs/site-go/internal/middleware"
	"github.com/automindlabs/site-go/internal/scheduler"
	"github.com/automindlabs/site-go/internal/service"
	"github.com/automindlabs/site-go/internal/session"
	"github.com/automindlabs/site-go/internal/store"
	"github.com/automindlabs/site-go/internal/version"
)

// Version information - injected at build time via ldflags
var (
	appVersion   = "dev"
	appGitCommit = "unknown"
	appBuildTime = "unknown"
)

func main() {
	showVersion := flag.Bool("version", false, "Show version information")
	flag.BoolVar(showVersion, "v", false, "Show version information (shorthand)")
	showHelp := flag.Bool("help", false, "Show help information")
	flag.BoolVar(showHelp, "h", false, "Show help information (shorthand)")

	flag.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "Automind Labs site backend\n\n")
		_, _ = fmt.Fprintf(os.Stderr, "Usage: %s [options]\n\n", os.Args[0])
		_, _ = fmt.Fprintf(os.Stderr, "Options:\n")
		flag.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\nEnvironment Variables:\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUTOMIND_SESSION_SECRET   Session encryption key (required, min 32 bytes)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUTOMIND_DB_PATH          SQLite database path (default: ./data/automind.db)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUTOMIND_SERVER_PORT      Server port (default: 8080)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUTOMIND_ENV              Environment: development|production (default: development)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUTOMIND_UPLOADS_DIR      Media upload directory (default: ./uploads)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUTOMIND_ALLOW_ORIGINS    Comma-separated CORS origins for the SPA\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUTOMIND_REDIS_URL        Redis URL for distributed caching (optional)\n")
		_, _ = fmt.Fprintf(os.Stderr, "  AUTOMIND_DO_SEED          Seed admin account and default data on startup\n")
	}

	flag.Parse()

	if *showHelp {
		flag.Usage()
		os.Exit(0)
	}
	if *showVersion {
		_, _ = fmt.Println(version.Info{
			Version:   appVersion,
			GitCommit: appGitCommit,
			BuildTime: appBuildTime,
		})
		os.Exit(0)
	}

	if err := run(); err != nil {
		slog.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if present (development)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	versionInfo := version.Info{
		Version:   appVersion,
		GitCommit: appGitCommit,
		BuildTime: appBuildTime,
	}

	logLevel := slog.LevelInfo
	switch cfg.LogLevel {
	case "debug":
		logLevel = slog.LevelDebug
	case "warn":
		logLevel = slog.LevelWarn
	case "error":
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel}))
	slog.SetDefault(logger)

	// Ensure data and upload directories exist
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0755); err != nil {
		return fmt.Errorf("creating data directory: %w", err)
	}
	if err := os.MkdirAll(cfg.UploadsDir, 0755); err != nil {
		return fmt.Errorf("creating uploads directory: %w", err)
	}

	slog.Info("initializing database", "path", cfg.DBPath)
	db, err := store.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("initializing database: %w", err)
	}
	defer func(db *sql.DB) {
		if err := db.Close(); err != nil {
			slog.Error("closing database connection", "error", err)
		}
	}(db)

	slog.Info("running database migrations")
	if err := store.Migrate(db); err != nil {
		return fmt.Errorf("running migrations: %w", err)
	}
	slog.Info("database ready")

	// Upgrade logger so WARN and ERROR records also land in the event log
	textHandler := slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: logLevel})
	logger = slog.New(logging.NewEventLogHandler(textHandler, db))
	slog.SetDefault(logger)

	ctx := context.Background()
	if cfg.DoSeed {
		if cfg.AdminPassword == "" {
			return errors.New("AUTOMIND_DO_SEED requires AUTOMIND_ADMIN_PASSWORD")
		}
		if err := store.Seed(ctx, db, cfg.AdminEmail, cfg.AdminPassword); err != nil {
			return fmt.Errorf("seeding database: %w", err)
		}
	}

	queries := store.New(db)

	sessionManager := session.New(db, cfg.IsDevelopment())
	slog.Info("session manager initialized")

	backend, err := cache.New(cache.Options{
		RedisURL:   cfg.RedisURL,
		Prefix:     cfg.CachePrefix,
		DefaultTTL: time.Duration(cfg.CacheTTL) * time.Second,
		MaxSize:    cfg.CacheMaxSize,
	})
	if err != nil {
		return fmt.Errorf("initializing cache: %w", err)
	}
	cacheManager := cache.NewManager(backend, queries)
	defer func() {
		if err := cacheManager.Close(); err != nil {
			slog.Warn("closing cache", "error", err)
		}
	}()
	if err := cacheManager.Preload(ctx); err != nil {
		slog.Warn("preloading caches", "error", err)
	}
	if cfg.UseRedisCache() {
		slog.Info("cache manager initialized", "backend", "redis", "url", cfg.RedisURL)
	} else {
		slog.Info("cache manager initialized", "backend", "memory")
	}

	loginProtect := middleware.NewLoginProtection(middleware.LoginProtectionConfig{})
	authService := authgate.NewLocalService(queries, sessionManager, loginProtect)

	apiHandler := api.NewHandler(api.Config{
		DB:              db,
		Cache:           cacheManager,
		Sessions:        sessionManager,
		Auth:            authService,
		Media:           service.NewMediaService(db, cfg.UploadsDir),
		Events:          service.NewEventService(db),
		LoginProtection: loginProtect,
	})

	sched := scheduler.New(db, logger, 0)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("starting scheduler: %w", err)
	}
	defer sched.Stop()

	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Compress(5))
	r.Use(chimw.GetHead)
	r.Use(middleware.CORS(cfg.AllowOrigins, cfg.IsDevelopment()))
	r.Use(middleware.RequestPath)
	r.Use(sessionManager.LoadAndSave)

	// The provisioning endpoint authenticates with a bearer token, not a
	// cookie, so it sits outside CSRF protection.
	r.Use(middleware.SkipCSRF("/api/v1/admin/users"))
	r.Use(middleware.CSRF(middleware.CSRFConfig{
		AuthKey:        []byte(cfg.SessionSecret)[:32],
		TrustedOrigins: originHosts(cfg.AllowOrigins),
	}))

	r.Mount("/api/v1", apiHandler.Routes())

	// Serve processed uploads. The imaging pipeline controls every path
	// under this directory.
	uploadsDir, err := filepath.Abs(cfg.UploadsDir)
	if err != nil {
		return fmt.Errorf("resolving uploads directory: %w", err)
	}
	r.Handle("/uploads/*", http.StripPrefix("/uploads/", http.FileServer(http.Dir(uploadsDir))))

	srv := &http.Server{
		Addr:              cfg.ServerAddr(),
		Handler:           r,
		ReadTimeout:       15 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
		MaxHeaderBytes:    1 << 20,
	}

	go func() {
		slog.Info("starting server",
			"addr", cfg.ServerAddr(), "env", cfg.Env, "version", versionInfo.Version)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("server error", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	slog.Info("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	slog.Info("server stopped")
	return nil
}

// originHosts extracts host-only values from configured CORS origins
// for CSRF trusted-origin checks.
func originHosts(origins []string) []string {
	var hosts []string
	for _, origin := range origins {
		u, err := url.Parse(strings.TrimSpace(origin))
		if err != nil || u.Host == "" {
			continue
		}
		hosts = append(hosts, u.Host)
	}
	return hosts
}
