package store

import (
	"database/sql"
	"time"
)

// User represents an account that can sign in to the admin panel.
type User struct {
	ID           int64
	Email        string
	PasswordHash string
	Name         string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// UserRole assigns a role to a user. A user may hold multiple roles.
type UserRole struct {
	UserID    int64
	Role      string
	CreatedAt time.Time
}

// Profile holds public-facing details for a user.
type Profile struct {
	UserID      int64
	DisplayName string
	AvatarURL   sql.NullString
	Bio         sql.NullString
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Faq is a question/answer pair shown on the public site.
type Faq struct {
	ID        int64
	Question  string
	Answer    string
	IsVisible bool
	Position  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Review is a customer testimonial.
type Review struct {
	ID        int64
	Author    string
	Content   string
	Rating    int64
	IsVisible bool
	Position  int64
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Service is an offered service shown on the public site.
type Service struct {
	ID          int64
	Title       string
	Description string
	Icon        sql.NullString
	IsVisible   bool
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Video is an embedded social-media video.
type Video struct {
	ID           int64
	Title        string
	Platform     string
	VideoURL     string
	ThumbnailURL sql.NullString
	IsVisible    bool
	Position     int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Section is a named, independently toggleable region of a page.
type Section struct {
	ID          int64
	Name        string
	DisplayName string
	Page        string
	IsVisible   bool
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PortfolioItem is a showcased project.
type PortfolioItem struct {
	ID          int64
	Title       string
	Slug        string
	Description string
	ImageURL    sql.NullString
	ProjectURL  sql.NullString
	IsVisible   bool
	Position    int64
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Blog is a blog post. Content is authored in Markdown and rendered to
// sanitized HTML at save time.
type Blog struct {
	ID          int64
	Title       string
	Slug        string
	ContentMd   string
	ContentHTML string
	Excerpt     sql.NullString
	CoverURL    sql.NullString
	IsPublished bool
	PublishedAt sql.NullTime
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Media represents an uploaded file in the media library.
type Media struct {
	ID           int64
	UUID         string
	Filename     string
	OriginalName string
	MimeType     string
	Size         int64
	Width        sql.NullInt64
	Height       sql.NullInt64
	URL          string
	ThumbnailURL sql.NullString
	UploadedBy   sql.NullInt64
	CreatedAt    time.Time
}

// SiteConfig is a key/value configuration row, grouped by surface
// (header, footer, contact, social, settings).
type SiteConfig struct {
	ID        int64
	Group     string
	Key       string
	Value     string
	UpdatedAt time.Time
}

// Event is a system event log entry.
type Event struct {
	ID        int64
	Level     string
	Category  string
	Message   string
	UserID    sql.NullInt64
	Metadata  string // JSON string
	CreatedAt time.Time
}
