// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Well-known section names referenced by the public site. The section
// registry fails open: a name missing from the sections table renders
// as visible, so this list is informational rather than exhaustive.
const (
	SectionHero      = "hero"
	SectionServices  = "services"
	SectionPortfolio = "portfolio"
	SectionReviews   = "reviews"
	SectionVideos    = "videos"
	SectionFAQ       = "faq"
	SectionContact   = "contact"
	SectionBooking   = "booking"
)

// Pages a section can belong to.
const (
	PageHome      = "home"
	PageAbout     = "about"
	PagePortfolio = "portfolio"
	PageBlog      = "blog"
	PageContact   = "contact"
	PageBooking   = "booking"
)

// ValidPages contains all pages sections can be attached to.
var ValidPages = []string{PageHome, PageAbout, PagePortfolio, PageBlog, PageContact, PageBooking}

// IsValidPage checks if a page value is known.
func IsValidPage(page string) bool {
	for _, p := range ValidPages {
		if p == page {
			return true
		}
	}
	return false
}

// Video platforms accepted by the videos collection.
const (
	PlatformYouTube   = "youtube"
	PlatformInstagram = "instagram"
	PlatformTikTok    = "tiktok"
)

// ValidPlatforms contains all accepted video platforms.
var ValidPlatforms = []string{PlatformYouTube, PlatformInstagram, PlatformTikTok}

// IsValidPlatform checks if a platform value is accepted.
func IsValidPlatform(platform string) bool {
	for _, p := range ValidPlatforms {
		if p == platform {
			return true
		}
	}
	return false
}

// Review rating bounds.
const (
	MinRating = 1
	MaxRating = 5
)
