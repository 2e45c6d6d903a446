// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

// Package imaging processes uploaded images: EXIF orientation fixup,
// metadata extraction, and resized variants for the site frontend.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/rwcarlsen/goexif/exif"
	_ "golang.org/x/image/webp" // WebP decoder

	"github.com/automindlabs/site-go/internal/model"
)

// Result describes a processed original image.
type Result struct {
	Width    int
	Height   int
	MimeType string
	Size     int64
	FilePath string
}

// Variant describes one resized rendition of an image.
type Variant struct {
	Type     string
	Width    int
	Height   int
	Size     int64
	FilePath string
}

// Processor writes originals and variants under an upload directory.
type Processor struct {
	uploadDir string
}

// NewProcessor creates an image processor rooted at uploadDir.
func NewProcessor(uploadDir string) *Processor {
	return &Processor{uploadDir: uploadDir}
}

// Process decodes an uploaded image, applies its EXIF orientation,
// re-encodes it without metadata, and saves the result under
// originals/<uuid>/.
func (p *Processor) Process(r io.Reader, fileUUID, filename string) (*Result, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image data: %w", err)
	}

	format := detectFormat(data)
	if format == "" {
		return nil, fmt.Errorf("unsupported image format")
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("decoding image: %w", err)
	}

	img = applyOrientation(img, exifOrientation(bytes.NewReader(data)))

	bounds := img.Bounds()
	encoded, err := encode(img, format, 95)
	if err != nil {
		return nil, fmt.Errorf("encoding image: %w", err)
	}

	filePath, err := p.save(filepath.Join("originals", fileUUID), filename, encoded)
	if err != nil {
		return nil, fmt.Errorf("saving original: %w", err)
	}

	return &Result{
		Width:    bounds.Dx(),
		Height:   bounds.Dy(),
		MimeType: formatMimeType(format),
		Size:     int64(len(encoded)),
		FilePath: filePath,
	}, nil
}

// CreateVariant renders one resized rendition. Returns nil when the
// source is already smaller than the target and no crop is requested.
func (p *Processor) CreateVariant(sourcePath, fileUUID, filename, variantType string, cfg model.ImageVariantConfig) (*Variant, error) {
	img, err := imaging.Open(sourcePath)
	if err != nil {
		return nil, fmt.Errorf("opening source image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() <= cfg.Width && bounds.Dy() <= cfg.Height && !cfg.Crop {
		return nil, nil
	}

	var resized image.Image
	if cfg.Crop {
		resized = imaging.Fill(img, cfg.Width, cfg.Height, imaging.Center, imaging.Lanczos)
	} else {
		resized = imaging.Fit(img, cfg.Width, cfg.Height, imaging.Lanczos)
	}

	encoded, err := encode(resized, formatFromFilename(filename), cfg.Quality)
	if err != nil {
		return nil, fmt.Errorf("encoding %s variant: %w", variantType, err)
	}

	filePath, err := p.save(filepath.Join(variantType, fileUUID), filename, encoded)
	if err != nil {
		return nil, fmt.Errorf("saving %s variant: %w", variantType, err)
	}

	resBounds := resized.Bounds()
	return &Variant{
		Type:     variantType,
		Width:    resBounds.Dx(),
		Height:   resBounds.Dy(),
		Size:     int64(len(encoded)),
		FilePath: filePath,
	}, nil
}

// CreateAllVariants renders every configured variant, continuing past
// individual failures. An error is returned only when nothing could be
// produced.
func (p *Processor) CreateAllVariants(sourcePath, fileUUID, filename string) ([]*Variant, error) {
	var variants []*Variant
	var errs []string

	for variantType, cfg := range model.ImageVariants {
		v, err := p.CreateVariant(sourcePath, fileUUID, filename, variantType, cfg)
		if err != nil {
			errs = append(errs, fmt.Sprintf("%s: %v", variantType, err))
			continue
		}
		if v != nil {
			variants = append(variants, v)
		}
	}

	if len(errs) > 0 && len(variants) == 0 {
		return nil, fmt.Errorf("all variants failed: %s", strings.Join(errs, "; "))
	}
	return variants, nil
}

// DetectMimeType sniffs the MIME type of uploaded bytes.
func (p *Processor) DetectMimeType(data []byte) string {
	contentType := http.DetectContentType(data)
	if idx := strings.Index(contentType, ";"); idx != -1 {
		contentType = contentType[:idx]
	}
	return strings.TrimSpace(contentType)
}

// DeleteFiles removes the original and every variant for an upload.
func (p *Processor) DeleteFiles(fileUUID string) error {
	dirs := []string{filepath.Join(p.uploadDir, "originals", fileUUID)}
	for variantType := range model.ImageVariants {
		dirs = append(dirs, filepath.Join(p.uploadDir, variantType, fileUUID))
	}
	for _, dir := range dirs {
		if err := os.RemoveAll(dir); err != nil && !os.IsNotExist(err) {
			return fmt.Errorf("removing %s: %w", dir, err)
		}
	}
	return nil
}

// exifOrientation reads the EXIF orientation tag, defaulting to 1.
func exifOrientation(r io.Reader) int {
	x, err := exif.Decode(r)
	if err != nil {
		return 1
	}
	tag, err := x.Get(exif.Orientation)
	if err != nil {
		return 1
	}
	orientation, err := tag.Int(0)
	if err != nil {
		return 1
	}
	return orientation
}

func applyOrientation(img image.Image, orientation int) image.Image {
	switch orientation {
	case 2:
		return imaging.FlipH(img)
	case 3:
		return imaging.Rotate180(img)
	case 4:
		return imaging.FlipV(img)
	case 5:
		return imaging.FlipH(imaging.Rotate270(img))
	case 6:
		return imaging.Rotate270(img)
	case 7:
		return imaging.FlipH(imaging.Rotate90(img))
	case 8:
		return imaging.Rotate90(img)
	default:
		return img
	}
}

func encode(img image.Image, format string, quality int) ([]byte, error) {
	var buf bytes.Buffer
	var err error
	switch format {
	case "png":
		err = png.Encode(&buf, img)
	case "gif":
		err = gif.Encode(&buf, img, nil)
	default:
		// WebP has no pure-Go encoder, it re-encodes as JPEG.
		err = jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality})
	}
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func detectFormat(data []byte) string {
	contentType := http.DetectContentType(data)
	// TIFF is rejected outright (CVE-2023-36308 in the resize library).
	if strings.Contains(contentType, "tiff") {
		return ""
	}
	switch {
	case strings.Contains(contentType, "jpeg"):
		return "jpeg"
	case strings.Contains(contentType, "png"):
		return "png"
	case strings.Contains(contentType, "gif"):
		return "gif"
	case strings.Contains(contentType, "webp"):
		return "webp"
	default:
		return ""
	}
}

func formatFromFilename(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".png":
		return "png"
	case ".gif":
		return "gif"
	default:
		return "jpeg"
	}
}

func formatMimeType(format string) string {
	switch format {
	case "jpeg":
		return model.MimeTypeJPEG
	case "png":
		return model.MimeTypePNG
	case "gif":
		return model.MimeTypeGIF
	case "webp":
		return model.MimeTypeWebP
	default:
		return "application/octet-stream"
	}
}

// save writes data to uploadDir/subDir/filename, refusing any path
// that escapes the upload directory.
func (p *Processor) save(subDir, filename string, data []byte) (string, error) {
	safeFilename := filepath.Base(filename)
	if safeFilename == "." || safeFilename == ".." || safeFilename == "" {
		return "", fmt.Errorf("invalid filename")
	}

	cleanSubDir := filepath.Clean(subDir)
	if strings.Contains(cleanSubDir, "..") || filepath.IsAbs(cleanSubDir) {
		return "", fmt.Errorf("invalid subdirectory")
	}

	absBase, err := filepath.Abs(p.uploadDir)
	if err != nil {
		return "", fmt.Errorf("resolving upload dir: %w", err)
	}
	absTarget := filepath.Join(absBase, cleanSubDir)

	rel, err := filepath.Rel(absBase, absTarget)
	if err != nil || strings.HasPrefix(rel, "..") || filepath.IsAbs(rel) {
		return "", fmt.Errorf("path escapes upload dir")
	}

	if err := os.MkdirAll(absTarget, 0o755); err != nil {
		return "", fmt.Errorf("creating directory: %w", err)
	}

	filePath := filepath.Join(absTarget, safeFilename)
	if err := os.WriteFile(filePath, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file: %w", err)
	}
	return filePath, nil
}
