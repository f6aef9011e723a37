package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandPath expands a leading "~/" to the user's home directory.
//
// Usage example:
//
//	expanded := fileops.ExpandPath("~/games/platformer")
//	// Returns something like "/home/user/games/platformer"
func ExpandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		if home, err := os.UserHomeDir(); err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}

// ResolveWithin joins the relative path elements onto baseDir and returns the
// cleaned absolute result. It fails if the result would leave baseDir.
// Absolute elements are treated as relative to baseDir.
//
// Usage example:
//
//	full, err := fileops.ResolveWithin("/games/platformer", "scenes", "main.tscn")
//	// full == "/games/platformer/scenes/main.tscn"
//
//	_, err = fileops.ResolveWithin("/games/platformer", "../../etc/passwd")
//	// err != nil
func ResolveWithin(baseDir string, elem ...string) (string, error) {
	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return "", fmt.Errorf("cannot resolve base directory: %w", err)
	}

	target := filepath.Join(append([]string{absBaseDir}, elem...)...)
	if err := ValidateWithinDirectory(target, absBaseDir); err != nil {
		return "", err
	}
	return target, nil
}

// ValidateWithinDirectory checks lexically that path is baseDir or lies below it.
// It does not touch the filesystem.
func ValidateWithinDirectory(path, baseDir string) error {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("cannot resolve path: %w", err)
	}
	absBaseDir, err := filepath.Abs(baseDir)
	if err != nil {
		return fmt.Errorf("cannot resolve base directory: %w", err)
	}

	rel, err := filepath.Rel(absBaseDir, absPath)
	if err != nil {
		return fmt.Errorf("cannot determine relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return fmt.Errorf("path escapes base directory: %s", path)
	}
	return nil
}
