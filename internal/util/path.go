// Copyright (c) 2025-2026 Oleg Ivanchenko
// SPDX-License-Identifier: GPL-3.0-or-later

package util

import (
	"fmt"
	"path/filepath"
	"strings"
)

// SafeJoinPath joins path components under a base directory and verifies the
// result stays within it.
func SafeJoinPath(basePath string, components ...string) (string, error) {
	parts := append([]string{basePath}, components...)
	joined := filepath.Clean(filepath.Join(parts...))

	base := filepath.Clean(basePath)
	if joined != base && !strings.HasPrefix(joined, base+string(filepath.Separator)) {
		return "", fmt.Errorf("path escapes base directory: %q", filepath.Join(components...))
	}
	return joined, nil
}
