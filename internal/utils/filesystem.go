package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// ProjectMarkers are the entries that identify a project root, in order of
// precedence within a single directory.
var ProjectMarkers = []string{".gitops-secrets.toml", ".git", "package.json"}

// FindProjectRoot walks up from start looking for a directory containing one
// of ProjectMarkers. If none is found, start itself is returned.
func FindProjectRoot(start string) (string, error) {
	if start == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("failed to get working directory: %w", err)
		}
		start = wd
	}

	start, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", start, err)
	}

	currentDir := start
	for {
		for _, marker := range ProjectMarkers {
			_, err := os.Stat(filepath.Join(currentDir, marker))
			if err == nil {
				return currentDir, nil
			}
			if !os.IsNotExist(err) {
				// Return any error that's not "file not found" (like permission issues)
				return "", fmt.Errorf("error checking for %s at %s: %w", marker, currentDir, err)
			}
		}

		parentDir := filepath.Dir(currentDir)
		// Reached the filesystem root without finding a marker.
		if parentDir == currentDir {
			return start, nil
		}
		currentDir = parentDir
	}
}

// RelativeTo returns path relative to base when possible, else path unchanged.
func RelativeTo(base, path string) string {
	rel, err := filepath.Rel(base, path)
	if err != nil {
		return path
	}
	return rel
}
