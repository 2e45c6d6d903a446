package model

// Event levels
const (
	EventLevelInfo    = "info"
	EventLevelWarning = "warning"
	EventLevelError   = "error"
)

// Event categories
const (
	EventCategoryAuth    = "auth"
	EventCategoryContent = "content"
	EventCategoryUser    = "user"
	EventCategoryConfig  = "config"
	EventCategoryMedia   = "media"
	EventCategorySystem  = "system"
	EventCategoryCache   = "cache"
)
