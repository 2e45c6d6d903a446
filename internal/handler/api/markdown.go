// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package api

import (
	"bytes"
	"fmt"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
)

// htmlSanitizer strips anything bluemonday's UGC policy does not allow
// from rendered Markdown before it is stored.
var htmlSanitizer = bluemonday.UGCPolicy()

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
)

// renderMarkdown converts Markdown to sanitized HTML. Rendering
// happens at save time so public reads serve stored HTML directly.
func renderMarkdown(src string) (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering markdown: %w", err)
	}
	return htmlSanitizer.Sanitize(buf.String()), nil
}
