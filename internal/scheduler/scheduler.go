// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package scheduler runs the background jobs: publishing scheduled blog
// posts and pruning old event log entries.
package scheduler

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/automindlabs/site-go/internal/model"
	"github.com/automindlabs/site-go/internal/service"
	"github.com/automindlabs/site-go/internal/store"
)

// DefaultEventRetention is how long event log entries are kept.
const DefaultEventRetention = 90 * 24 * time.Hour

// Scheduler owns the cron instance and the job implementations.
type Scheduler struct {
	queries        *store.Queries
	events         *service.EventService
	cron           *cron.Cron
	logger         *slog.Logger
	eventRetention time.Duration
}

// New creates a scheduler. retention <= 0 uses DefaultEventRetention.
func New(db *sql.DB, logger *slog.Logger, retention time.Duration) *Scheduler {
	if retention <= 0 {
		retention = DefaultEventRetention
	}
	return &Scheduler{
		queries:        store.New(db),
		events:         service.NewEventService(db),
		cron:           cron.New(),
		logger:         logger,
		eventRetention: retention,
	}
}

// Start registers the jobs and begins the cron loop. Scheduled posts
// are checked every minute; events are pruned nightly.
func (s *Scheduler) Start() error {
	if _, err := s.cron.AddFunc("* * * * *", func() {
		if _, err := s.PublishDueBlogs(context.Background()); err != nil {
			s.logger.Error("publishing scheduled blog posts", "error", err)
		}
	}); err != nil {
		return err
	}

	if _, err := s.cron.AddFunc("20 3 * * *", func() {
		if err := s.PruneEvents(context.Background()); err != nil {
			s.logger.Error("pruning events", "error", err)
		}
	}); err != nil {
		return err
	}

	s.cron.Start()
	s.logger.Info("scheduler started", "jobs", len(s.cron.Entries()))
	return nil
}

// Stop gracefully stops the scheduler, waiting for running jobs.
func (s *Scheduler) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	s.logger.Info("scheduler stopped")
}

// PublishDueBlogs flips scheduled drafts whose publish time has arrived
// to published, and reports how many were flipped. A failure on one
// post does not stop the rest.
func (s *Scheduler) PublishDueBlogs(ctx context.Context) (int, error) {
	now := time.Now()
	due, err := s.queries.ListDueScheduledBlogs(ctx, now)
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	published := 0
	for _, blog := range due {
		if err := s.queries.MarkBlogPublished(ctx, blog.ID, now); err != nil {
			s.logger.Error("publishing scheduled blog post",
				"blog_id", blog.ID, "slug", blog.Slug, "error", err)
			continue
		}
		published++

		_ = s.events.LogContentEvent(ctx, model.EventLevelInfo,
			"blog post published on schedule", nil, map[string]any{
				"blog_id":      blog.ID,
				"slug":         blog.Slug,
				"scheduled_at": blog.PublishedAt.Time.Format(time.RFC3339),
			})
		s.logger.Info("published scheduled blog post", "blog_id", blog.ID, "slug", blog.Slug)
	}
	return published, nil
}

// PruneEvents deletes event log entries older than the retention window.
func (s *Scheduler) PruneEvents(ctx context.Context) error {
	deleted, err := s.events.DeleteOldEvents(ctx, s.eventRetention)
	if err != nil {
		return err
	}
	if deleted > 0 {
		s.logger.Info("pruned old events", "deleted", deleted, "retention", s.eventRetention)
	}
	return nil
}
