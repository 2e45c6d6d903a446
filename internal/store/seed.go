// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/automindlabs/site-go/internal/auth"
	"github.com/automindlabs/site-go/internal/model"
)

// Seed populates an empty database with the default admin account, the
// section registry for every public page, and baseline site configuration.
// It is idempotent: rows that already exist are left alone.
func Seed(ctx context.Context, db *sql.DB, adminEmail, adminPassword string) error {
	q := New(db)
	now := time.Now()

	if err := seedAdmin(ctx, q, adminEmail, adminPassword, now); err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	if err := seedSections(ctx, q, now); err != nil {
		return fmt.Errorf("seed sections: %w", err)
	}
	if err := seedConfig(ctx, q, now); err != nil {
		return fmt.Errorf("seed config: %w", err)
	}
	return nil
}

func seedAdmin(ctx context.Context, q *Queries, email, password string, now time.Time) error {
	_, err := q.GetUserByEmail(ctx, email)
	if err == nil {
		slog.Info("seed: admin user already exists", "email", email)
		return nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return err
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return err
	}
	user, err := q.CreateUser(ctx, CreateUserParams{
		Email:        email,
		PasswordHash: hash,
		Name:         "Administrator",
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return err
	}
	if err := q.AddUserRole(ctx, AddUserRoleParams{UserID: user.ID, Role: model.RoleAdmin, CreatedAt: now}); err != nil {
		return err
	}
	if err := q.CreateProfile(ctx, CreateProfileParams{UserID: user.ID, DisplayName: user.Name, CreatedAt: now, UpdatedAt: now}); err != nil {
		return err
	}
	slog.Info("seed: created admin user", "email", email, "id", user.ID)
	return nil
}

// defaultSections maps registry names to their page and display name.
// Positions follow declaration order per page.
var defaultSections = []struct {
	name        string
	displayName string
	page        string
}{
	{model.SectionHero, "Hero", model.PageHome},
	{model.SectionServices, "Services", model.PageHome},
	{model.SectionPortfolio, "Portfolio", model.PageHome},
	{model.SectionReviews, "Reviews", model.PageHome},
	{model.SectionVideos, "Videos", model.PageHome},
	{model.SectionFAQ, "FAQ", model.PageHome},
	{model.SectionContact, "Contact", model.PageHome},
	{model.SectionBooking, "Booking", model.PageBooking},
}

func seedSections(ctx context.Context, q *Queries, now time.Time) error {
	positions := map[string]int64{}
	for _, s := range defaultSections {
		pos := positions[s.page]
		positions[s.page] = pos + 1

		if _, err := q.GetSectionByName(ctx, s.name); err == nil {
			continue
		} else if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if _, err := q.CreateSection(ctx, CreateSectionParams{
			Name:        s.name,
			DisplayName: s.displayName,
			Page:        s.page,
			IsVisible:   true,
			Position:    pos,
			CreatedAt:   now,
			UpdatedAt:   now,
		}); err != nil {
			return err
		}
	}
	return nil
}

var defaultConfig = []struct {
	group string
	key   string
	value string
}{
	{model.ConfigGroupHeader, "site_name", "Automind Labs"},
	{model.ConfigGroupHeader, "tagline", "AI automation for growing businesses"},
	{model.ConfigGroupFooter, "copyright", "Automind Labs"},
	{model.ConfigGroupContact, "email", "hello@automindlabs.example"},
	{model.ConfigGroupContact, "phone", ""},
	{model.ConfigGroupSocial, "instagram", ""},
	{model.ConfigGroupSocial, "youtube", ""},
	{model.ConfigGroupSocial, "tiktok", ""},
	{model.ConfigGroupSettings, "blog_page_size", "10"},
}

func seedConfig(ctx context.Context, q *Queries, now time.Time) error {
	for _, c := range defaultConfig {
		_, err := q.GetConfigValue(ctx, GetConfigValueParams{Group: c.group, Key: c.key})
		if err == nil {
			continue
		}
		if !errors.Is(err, sql.ErrNoRows) {
			return err
		}
		if err := q.UpsertConfig(ctx, UpsertConfigParams{
			Group: c.group, Key: c.key, Value: c.value, UpdatedAt: now,
		}); err != nil {
			return err
		}
	}
	return nil
}
