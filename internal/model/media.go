// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package model

// Supported image variant types
const (
	VariantThumbnail = "thumbnail"
	VariantLarge     = "large"
)

// Supported MIME types
const (
	MimeTypeJPEG = "image/jpeg"
	MimeTypePNG  = "image/png"
	MimeTypeGIF  = "image/gif"
	MimeTypeWebP = "image/webp"
	MimeTypeSVG  = "image/svg+xml"
	MimeTypePDF  = "application/pdf"
	MimeTypeMP4  = "video/mp4"
)

// ImageVariantConfig defines settings for generating image variants.
type ImageVariantConfig struct {
	Width   int
	Height  int
	Quality int
	Crop    bool // true = crop to exact size, false = fit within bounds
}

// ImageVariants defines the default image variant configurations.
var ImageVariants = map[string]ImageVariantConfig{
	VariantThumbnail: {Width: 300, Height: 300, Quality: 80, Crop: true},
	VariantLarge:     {Width: 1920, Height: 1080, Quality: 90, Crop: false},
}

// MaxUploadSize is the maximum accepted upload size in bytes (20 MB).
const MaxUploadSize = 20 << 20

// IsSupportedMimeType reports whether a MIME type can be uploaded.
func IsSupportedMimeType(mimeType string) bool {
	switch mimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP,
		MimeTypeSVG, MimeTypePDF, MimeTypeMP4:
		return true
	default:
		return false
	}
}

// IsImageMimeType reports whether a MIME type is a raster image that
// gets resized variants. SVG is excluded, it is served as uploaded.
func IsImageMimeType(mimeType string) bool {
	switch mimeType {
	case MimeTypeJPEG, MimeTypePNG, MimeTypeGIF, MimeTypeWebP:
		return true
	default:
		return false
	}
}
