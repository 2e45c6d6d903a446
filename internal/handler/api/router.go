// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"github.com/go-chi/chi/v5"

	"github.com/automindlabs/site-go/internal/middleware"
)

// Routes builds the /api/v1 router. Public content reads need no
// session; everything under /admin runs behind the session cookie and
// the role gates. Provisioning sits outside /admin because it
// authenticates with a bearer token instead of a cookie.
func (h *Handler) Routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestPath)

	r.Get("/status", h.Status)

	// Public site reads.
	r.Get("/sections", h.ListPublicSections)
	r.Get("/faqs", h.ListPublicFaqs)
	r.Get("/reviews", h.ListPublicReviews)
	r.Get("/services", h.ListPublicServices)
	r.Get("/videos", h.ListPublicVideos)
	r.Get("/portfolio", h.ListPublicPortfolio)
	r.Get("/portfolio/{slug}", h.GetPublicPortfolioItem)
	r.Get("/blogs", h.ListPublicBlogs)
	r.Get("/blogs/{slug}", h.GetPublicBlog)
	r.Get("/config/{group}", h.GetPublicConfigGroup)

	// Auth.
	r.Route("/auth", func(r chi.Router) {
		if h.loginProtect != nil {
			r.With(h.loginProtect.Middleware()).Post("/login", h.Login)
		} else {
			r.Post("/login", h.Login)
		}
		r.Post("/logout", h.Logout)
		r.With(middleware.ClearStaleSession(h.sessions, h.queries)).Get("/session", h.GetSession)
	})

	// Bearer-token provisioning for server-side tooling.
	r.Post("/admin/users", h.ProvisionUser)

	// Cookie-authenticated admin surface. Editors manage content;
	// site config and media deletion stay admin-only.
	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAuth(h.sessions, h.queries))
		r.Use(middleware.RequireEditor())

		r.Route("/sections", func(r chi.Router) {
			r.Get("/", h.ListSections)
			r.Post("/", h.CreateSection)
			r.Put("/order", h.CommitSectionOrder)
			r.Patch("/{id}", h.UpdateSection)
			r.Patch("/{id}/visibility", h.UpdateSectionVisibility)
			r.Delete("/{id}", h.DeleteSection)
		})

		r.Route("/faqs", func(r chi.Router) {
			r.Get("/", h.ListFaqs)
			r.Post("/", h.CreateFaq)
			r.Put("/order", h.CommitFaqOrder)
			r.Patch("/{id}", h.UpdateFaq)
			r.Patch("/{id}/visibility", h.UpdateFaqVisibility)
			r.Delete("/{id}", h.DeleteFaq)
		})

		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", h.ListReviews)
			r.Post("/", h.CreateReview)
			r.Put("/order", h.CommitReviewOrder)
			r.Patch("/{id}", h.UpdateReview)
			r.Patch("/{id}/visibility", h.UpdateReviewVisibility)
			r.Delete("/{id}", h.DeleteReview)
		})

		r.Route("/services", func(r chi.Router) {
			r.Get("/", h.ListServices)
			r.Post("/", h.CreateService)
			r.Put("/order", h.CommitServiceOrder)
			r.Patch("/{id}", h.UpdateService)
			r.Patch("/{id}/visibility", h.UpdateServiceVisibility)
			r.Delete("/{id}", h.DeleteService)
		})

		r.Route("/videos", func(r chi.Router) {
			r.Get("/", h.ListVideos)
			r.Post("/", h.CreateVideo)
			r.Put("/order", h.CommitVideoOrder)
			r.Patch("/{id}", h.UpdateVideo)
			r.Patch("/{id}/visibility", h.UpdateVideoVisibility)
			r.Delete("/{id}", h.DeleteVideo)
		})

		r.Route("/portfolio", func(r chi.Router) {
			r.Get("/", h.ListPortfolio)
			r.Post("/", h.CreatePortfolioItem)
			r.Put("/order", h.CommitPortfolioOrder)
			r.Patch("/{id}", h.UpdatePortfolioItem)
			r.Patch("/{id}/visibility", h.UpdatePortfolioItemVisibility)
			r.Delete("/{id}", h.DeletePortfolioItem)
		})

		r.Route("/blogs", func(r chi.Router) {
			r.Get("/", h.ListBlogs)
			r.Post("/", h.CreateBlog)
			r.Get("/{id}", h.GetBlog)
			r.Patch("/{id}", h.UpdateBlog)
			r.Delete("/{id}", h.DeleteBlog)
		})

		r.Route("/media", func(r chi.Router) {
			r.Get("/", h.ListMedia)
			r.Post("/", h.UploadMedia)
			r.With(middleware.RequireAdmin()).Delete("/{id}", h.DeleteMedia)
		})

		r.Route("/config", func(r chi.Router) {
			r.Get("/{group}", h.GetConfigGroup)
			r.With(middleware.RequireAdmin()).Put("/{group}", h.UpdateConfigGroup)
			r.With(middleware.RequireAdmin()).Delete("/{group}/{key}", h.DeleteConfigKey)
		})
	})

	return r
}
