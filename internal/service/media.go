// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package service

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/automindlabs/site-go/internal/imaging"
	"github.com/automindlabs/site-go/internal/model"
	"github.com/automindlabs/site-go/internal/store"
	"github.com/automindlabs/site-go/internal/util"
)

// DefaultUploadDir is used when no upload directory is configured.
const DefaultUploadDir = "./uploads"

// MediaService handles uploads: raster images get processed variants,
// everything else is stored as-is.
type MediaService struct {
	queries   *store.Queries
	processor *imaging.Processor
	uploadDir string
}

// NewMediaService creates a media service rooted at uploadDir.
func NewMediaService(db *sql.DB, uploadDir string) *MediaService {
	if uploadDir == "" {
		uploadDir = DefaultUploadDir
	}
	return &MediaService{
		queries:   store.New(db),
		processor: imaging.NewProcessor(uploadDir),
		uploadDir: uploadDir,
	}
}

// Upload validates, stores, and records an uploaded file. Images are
// re-encoded and get a thumbnail; other supported types are saved
// untouched.
func (s *MediaService) Upload(ctx context.Context, file multipart.File, header *multipart.FileHeader, userID int64) (store.Media, error) {
	if header.Size > model.MaxUploadSize {
		return store.Media{}, fmt.Errorf("file exceeds the %d byte upload limit", model.MaxUploadSize)
	}

	mimeType := header.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = mimeTypeFromExtension(header.Filename)
	}
	if !model.IsSupportedMimeType(mimeType) {
		return store.Media{}, fmt.Errorf("file type %s is not allowed", mimeType)
	}

	fileUUID := uuid.New().String()
	filename := sanitizeFilename(header.Filename)
	now := time.Now()

	uploadedBy := sql.NullInt64{Int64: userID, Valid: userID != 0}

	if model.IsImageMimeType(mimeType) {
		res, err := s.processor.Process(file, fileUUID, filename)
		if err != nil {
			return store.Media{}, fmt.Errorf("processing image: %w", err)
		}

		thumbnailURL := ""
		variants, err := s.processor.CreateAllVariants(res.FilePath, fileUUID, filename)
		if err != nil {
			slog.Warn("creating image variants", "uuid", fileUUID, "error", err)
		}
		for _, v := range variants {
			if v.Type == model.VariantThumbnail {
				thumbnailURL = s.publicURL(v.Type, fileUUID, filename)
			}
		}

		media, err := s.queries.CreateMedia(ctx, store.CreateMediaParams{
			UUID:         fileUUID,
			Filename:     filename,
			OriginalName: header.Filename,
			MimeType:     res.MimeType,
			Size:         res.Size,
			Width:        sql.NullInt64{Int64: int64(res.Width), Valid: true},
			Height:       sql.NullInt64{Int64: int64(res.Height), Valid: true},
			URL:          s.publicURL("originals", fileUUID, filename),
			ThumbnailURL: thumbnailURL,
			UploadedBy:   uploadedBy,
			CreatedAt:    now,
		})
		if err != nil {
			_ = s.processor.DeleteFiles(fileUUID)
			return store.Media{}, fmt.Errorf("recording media: %w", err)
		}
		return media, nil
	}

	filePath, size, err := s.saveRaw(file, fileUUID, filename)
	if err != nil {
		return store.Media{}, fmt.Errorf("saving file: %w", err)
	}

	media, err := s.queries.CreateMedia(ctx, store.CreateMediaParams{
		UUID:         fileUUID,
		Filename:     filename,
		OriginalName: header.Filename,
		MimeType:     mimeType,
		Size:         size,
		URL:          s.publicURL("originals", fileUUID, filename),
		UploadedBy:   uploadedBy,
		CreatedAt:    now,
	})
	if err != nil {
		_ = os.Remove(filePath)
		return store.Media{}, fmt.Errorf("recording media: %w", err)
	}
	return media, nil
}

// Delete removes a media record and its files on disk.
func (s *MediaService) Delete(ctx context.Context, mediaID int64) error {
	media, err := s.queries.GetMediaByID(ctx, mediaID)
	if err != nil {
		return fmt.Errorf("loading media: %w", err)
	}

	if err := s.queries.DeleteMedia(ctx, mediaID); err != nil {
		return fmt.Errorf("deleting media record: %w", err)
	}

	// The record is gone; a leftover file is only noise.
	if err := s.processor.DeleteFiles(media.UUID); err != nil {
		slog.Warn("removing media files", "media_id", mediaID, "error", err)
	}
	return nil
}

func (s *MediaService) publicURL(kind, fileUUID, filename string) string {
	return fmt.Sprintf("/uploads/%s/%s/%s", kind, fileUUID, filename)
}

func (s *MediaService) saveRaw(file io.Reader, fileUUID, filename string) (string, int64, error) {
	dir := filepath.Join(s.uploadDir, "originals", fileUUID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", 0, fmt.Errorf("creating directory: %w", err)
	}

	filePath, err := util.SafeJoinPath(dir, filename)
	if err != nil {
		return "", 0, err
	}
	out, err := os.Create(filePath)
	if err != nil {
		return "", 0, fmt.Errorf("creating file: %w", err)
	}
	defer func() { _ = out.Close() }()

	size, err := io.Copy(out, file)
	if err != nil {
		_ = os.Remove(filePath)
		return "", 0, fmt.Errorf("writing file: %w", err)
	}
	return filePath, size, nil
}

func sanitizeFilename(filename string) string {
	filename = filepath.Base(filename)
	replacer := strings.NewReplacer(
		" ", "-",
		"'", "",
		"\"", "",
		"<", "",
		">", "",
		"&", "",
		"#", "",
		"?", "",
		"%", "",
	)
	filename = replacer.Replace(filename)
	if filepath.Ext(filename) == "" {
		filename += ".bin"
	}
	return filename
}

func mimeTypeFromExtension(filename string) string {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".jpg", ".jpeg":
		return model.MimeTypeJPEG
	case ".png":
		return model.MimeTypePNG
	case ".gif":
		return model.MimeTypeGIF
	case ".webp":
		return model.MimeTypeWebP
	case ".svg":
		return model.MimeTypeSVG
	case ".pdf":
		return model.MimeTypePDF
	case ".mp4":
		return model.MimeTypeMP4
	default:
		return "application/octet-stream"
	}
}
