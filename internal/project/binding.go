// Package project holds the single Godot project the gateway operates on.
package project

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"godotmcp/internal/apperr"
	"godotmcp/pkg/fileops"
)

// Binding is the process-wide project root. The zero value is unbound and
// ready to use. All access goes through one lock.
type Binding struct {
	mu   sync.RWMutex
	path string
}

// Set validates path and makes it the current binding. The path must name an
// existing directory; a leading "~/" is expanded and the result stored
// absolute. On failure the previous binding is kept.
func (b *Binding) Set(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return "", apperr.New(apperr.InvalidPath, "project path cannot be empty")
	}

	absPath, err := filepath.Abs(fileops.ExpandPath(path))
	if err != nil {
		return "", apperr.Wrap(apperr.InvalidPath, err, "cannot resolve project path %s", path)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return "", apperr.Wrap(apperr.InvalidPath, err, "invalid project path %s", path)
	}
	if !info.IsDir() {
		return "", apperr.New(apperr.InvalidPath, "project path is not a directory: %s", path)
	}

	b.mu.Lock()
	b.path = absPath
	b.mu.Unlock()

	return absPath, nil
}

// Current returns the bound path, or "" when nothing is bound.
func (b *Binding) Current() string {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return b.path
}

// Require returns the bound path or a NoProjectBound error. The directory is
// not re-checked; callers see staleness when they touch it.
func (b *Binding) Require() (string, error) {
	if p := b.Current(); p != "" {
		return p, nil
	}
	return "", apperr.New(apperr.NoProjectBound, "no project path set, use set_project first")
}
