// SPDX-License-Identifier: GPL-3.0-only

package render

import (
	"fmt"
	"os"
	"path/filepath"
)

// WriteFile writes text to the base name of name inside dir and returns the
// path written. Directory components in name are ignored.
func WriteFile(dir, name, text string) (string, error) {
	path := filepath.Join(dir, filepath.Base(name))
	// #nosec G306 -- the artifact is meant to be shared with the firmware sources
	if err := os.WriteFile(path, []byte(text), 0o644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}
