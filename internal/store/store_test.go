package store_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/automindlabs/site-go/internal/model"
	"github.com/automindlabs/site-go/internal/store"
	"github.com/automindlabs/site-go/internal/testutil"
)

func createFaq(t *testing.T, q *store.Queries, question string, position int64) store.Faq {
	t.Helper()
	now := time.Now()
	f, err := q.CreateFaq(context.Background(), store.CreateFaqParams{
		Question:  question,
		Answer:    "answer",
		IsVisible: true,
		Position:  position,
		CreatedAt: now,
		UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateFaq: %v", err)
	}
	return f
}

func TestFaqListOrder(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	// Insert out of order; listing must follow position, not id.
	createFaq(t, q, "third", 2)
	createFaq(t, q, "first", 0)
	createFaq(t, q, "second", 1)

	faqs, err := q.ListFaqs(ctx)
	if err != nil {
		t.Fatalf("ListFaqs: %v", err)
	}
	if len(faqs) != 3 {
		t.Fatalf("got %d faqs, want 3", len(faqs))
	}
	want := []string{"first", "second", "third"}
	for i, w := range want {
		if faqs[i].Question != w {
			t.Errorf("faqs[%d].Question = %q, want %q", i, faqs[i].Question, w)
		}
	}
}

func TestFaqVisibilityDoesNotTouchPosition(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	f := createFaq(t, q, "q", 5)

	err := q.UpdateFaqVisibility(ctx, store.UpdateFaqVisibilityParams{
		ID: f.ID, IsVisible: false, UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("UpdateFaqVisibility: %v", err)
	}

	got, err := q.GetFaqByID(ctx, f.ID)
	if err != nil {
		t.Fatalf("GetFaqByID: %v", err)
	}
	if got.IsVisible {
		t.Error("faq still visible after hide")
	}
	if got.Position != 5 {
		t.Errorf("position changed to %d on visibility update", got.Position)
	}

	visible, err := q.ListVisibleFaqs(ctx)
	if err != nil {
		t.Fatalf("ListVisibleFaqs: %v", err)
	}
	if len(visible) != 0 {
		t.Errorf("hidden faq returned by ListVisibleFaqs")
	}
	all, err := q.ListFaqs(ctx)
	if err != nil {
		t.Fatalf("ListFaqs: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("hidden faq missing from ListFaqs")
	}
}

func TestFaqPayloadUpdatePreservesEnvelope(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	f := createFaq(t, q, "old question", 3)
	if err := q.UpdateFaqVisibility(ctx, store.UpdateFaqVisibilityParams{ID: f.ID, IsVisible: false, UpdatedAt: time.Now()}); err != nil {
		t.Fatalf("UpdateFaqVisibility: %v", err)
	}

	updated, err := q.UpdateFaq(ctx, store.UpdateFaqParams{
		ID: f.ID, Question: "new question", Answer: "new answer", UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("UpdateFaq: %v", err)
	}
	if updated.Question != "new question" {
		t.Errorf("Question = %q", updated.Question)
	}
	if updated.Position != 3 {
		t.Errorf("payload update changed position to %d", updated.Position)
	}
	if updated.IsVisible {
		t.Error("payload update changed visibility")
	}
}

func TestSectionByNameMissing(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)

	_, err := q.GetSectionByName(context.Background(), "no-such-section")
	if !errors.Is(err, sql.ErrNoRows) {
		t.Fatalf("err = %v, want sql.ErrNoRows", err)
	}
}

func TestPortfolioSlugUniqueness(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()
	now := time.Now()

	item, err := q.CreatePortfolioItem(ctx, store.CreatePortfolioItemParams{
		Title: "Site Redesign", Slug: "site-redesign", Description: "d",
		IsVisible: true, Position: 0, CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreatePortfolioItem: %v", err)
	}

	exists, err := q.PortfolioSlugExists(ctx, "site-redesign")
	if err != nil {
		t.Fatalf("PortfolioSlugExists: %v", err)
	}
	if !exists {
		t.Error("slug should exist")
	}

	// The item itself is excluded when checking on update.
	exists, err = q.PortfolioSlugExistsExcluding(ctx, store.PortfolioSlugExistsExcludingParams{
		Slug: "site-redesign", ID: item.ID,
	})
	if err != nil {
		t.Fatalf("PortfolioSlugExistsExcluding: %v", err)
	}
	if exists {
		t.Error("slug check should exclude the item itself")
	}
}

func TestConfigUpsert(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()

	err := q.UpsertConfig(ctx, store.UpsertConfigParams{
		Group: model.ConfigGroupHeader, Key: "site_name", Value: "First", UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("UpsertConfig insert: %v", err)
	}
	err = q.UpsertConfig(ctx, store.UpsertConfigParams{
		Group: model.ConfigGroupHeader, Key: "site_name", Value: "Second", UpdatedAt: time.Now(),
	})
	if err != nil {
		t.Fatalf("UpsertConfig overwrite: %v", err)
	}

	rows, err := q.ListConfigByGroup(ctx, model.ConfigGroupHeader)
	if err != nil {
		t.Fatalf("ListConfigByGroup: %v", err)
	}
	if len(rows) != 1 {
		t.Fatalf("got %d rows, want 1", len(rows))
	}
	if rows[0].Value != "Second" {
		t.Errorf("Value = %q, want Second", rows[0].Value)
	}
}

func TestScheduledBlogQueries(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()
	now := time.Now()

	// One past-due draft, one future draft, one already live.
	due, err := q.CreateBlog(ctx, store.CreateBlogParams{
		Title: "Due", Slug: "due", ContentMd: "x", ContentHTML: "<p>x</p>",
		IsPublished: false,
		PublishedAt: sql.NullTime{Time: now.Add(-time.Hour), Valid: true},
		CreatedAt:   now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBlog due: %v", err)
	}
	_, err = q.CreateBlog(ctx, store.CreateBlogParams{
		Title: "Future", Slug: "future", ContentMd: "x", ContentHTML: "<p>x</p>",
		IsPublished: false,
		PublishedAt: sql.NullTime{Time: now.Add(time.Hour), Valid: true},
		CreatedAt:   now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBlog future: %v", err)
	}
	_, err = q.CreateBlog(ctx, store.CreateBlogParams{
		Title: "Live", Slug: "live", ContentMd: "x", ContentHTML: "<p>x</p>",
		IsPublished: true,
		PublishedAt: sql.NullTime{Time: now.Add(-2 * time.Hour), Valid: true},
		CreatedAt:   now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateBlog live: %v", err)
	}

	pending, err := q.ListDueScheduledBlogs(ctx, now)
	if err != nil {
		t.Fatalf("ListDueScheduledBlogs: %v", err)
	}
	if len(pending) != 1 || pending[0].Slug != "due" {
		t.Fatalf("pending = %+v, want single 'due' post", pending)
	}

	if err := q.MarkBlogPublished(ctx, due.ID, now); err != nil {
		t.Fatalf("MarkBlogPublished: %v", err)
	}

	live, err := q.ListPublishedBlogs(ctx, store.ListPublishedBlogsParams{Now: now, Limit: 10, Offset: 0})
	if err != nil {
		t.Fatalf("ListPublishedBlogs: %v", err)
	}
	if len(live) != 2 {
		t.Fatalf("got %d published posts, want 2", len(live))
	}
	for _, b := range live {
		if b.Slug == "future" {
			t.Error("future post listed as published")
		}
	}
}

func TestUserRoles(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	q := store.New(db)
	ctx := context.Background()
	now := time.Now()

	u, err := q.CreateUser(ctx, store.CreateUserParams{
		Email: "admin@example.com", PasswordHash: "hash", Name: "Admin",
		CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	ok, err := q.HasRole(ctx, store.HasRoleParams{UserID: u.ID, Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("HasRole: %v", err)
	}
	if ok {
		t.Error("user should have no roles yet")
	}

	if err := q.AddUserRole(ctx, store.AddUserRoleParams{UserID: u.ID, Role: model.RoleAdmin, CreatedAt: now}); err != nil {
		t.Fatalf("AddUserRole: %v", err)
	}
	// Granting twice is a no-op.
	if err := q.AddUserRole(ctx, store.AddUserRoleParams{UserID: u.ID, Role: model.RoleAdmin, CreatedAt: now}); err != nil {
		t.Fatalf("AddUserRole repeat: %v", err)
	}

	ok, err = q.HasRole(ctx, store.HasRoleParams{UserID: u.ID, Role: model.RoleAdmin})
	if err != nil {
		t.Fatalf("HasRole: %v", err)
	}
	if !ok {
		t.Error("user should have admin role")
	}

	roles, err := q.ListUserRoles(ctx, u.ID)
	if err != nil {
		t.Fatalf("ListUserRoles: %v", err)
	}
	if len(roles) != 1 {
		t.Errorf("got %d roles, want 1", len(roles))
	}
}

func TestSeedIdempotent(t *testing.T) {
	db, cleanup := testutil.TestDB(t)
	defer cleanup()
	ctx := context.Background()

	if err := store.Seed(ctx, db, "admin@example.com", "changeme-now"); err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if err := store.Seed(ctx, db, "admin@example.com", "changeme-now"); err != nil {
		t.Fatalf("Seed repeat: %v", err)
	}

	q := store.New(db)
	users, err := q.ListUsers(ctx)
	if err != nil {
		t.Fatalf("ListUsers: %v", err)
	}
	if len(users) != 1 {
		t.Fatalf("got %d users after double seed, want 1", len(users))
	}

	sections, err := q.ListSectionsByPage(ctx, model.PageHome)
	if err != nil {
		t.Fatalf("ListSectionsByPage: %v", err)
	}
	if len(sections) != 7 {
		t.Fatalf("got %d home sections, want 7", len(sections))
	}
	for i, s := range sections {
		if s.Position != int64(i) {
			t.Errorf("section %q position = %d, want %d", s.Name, s.Position, i)
		}
	}
}
