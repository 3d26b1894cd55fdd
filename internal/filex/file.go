// Package filex resolves on-disk locations used by the client.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// userConfigDir is a test seam for os.UserConfigDir.
var userConfigDir = os.UserConfigDir

// EnsureDir creates dir (and parents) if needed and returns it unchanged.
func EnsureDir(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return dir, nil
}

// DataDir returns the per-user data directory for app, creating it. When the
// platform has no user config dir it falls back to ./.<app> under the
// working directory.
func DataDir(app string) (string, error) {
	base, err := userConfigDir()
	if err == nil && base != "" {
		return EnsureDir(filepath.Join(base, app))
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("getwd: %w", err)
	}
	return EnsureDir(filepath.Join(cwd, "."+app))
}
