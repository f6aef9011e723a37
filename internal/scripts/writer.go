// Package scripts creates GDScript files inside a bound project.
package scripts

import (
	"path/filepath"
	"strings"

	"godotmcp/internal/apperr"
	"godotmcp/internal/logging"
	"godotmcp/internal/validation"
	"godotmcp/pkg/fileops"
)

// FileMode is the permission used for written scripts.
const FileMode = 0644

// Create writes content to root/relDir/filename, adding the script extension
// when missing and creating intermediate directories. An existing file is
// overwritten. The absolute path written is returned.
func Create(root, relDir, filename, content string) (string, error) {
	if strings.TrimSpace(root) == "" {
		return "", apperr.New(apperr.NoProjectBound, "no project path set, use set_project first")
	}

	name, err := validation.ScriptFilename(filename)
	if err != nil {
		return "", apperr.Wrap(apperr.MalformedInput, err, "invalid script filename")
	}

	target, err := fileops.ResolveWithin(root, validation.ProjectRelative(relDir), name)
	if err != nil {
		return "", apperr.Wrap(apperr.InvalidPath, err, "script path outside project")
	}

	if err := fileops.EnsureDirectoryExists(filepath.Dir(target)); err != nil {
		return "", apperr.Wrap(apperr.IOError, err, "failed to create script directory")
	}

	if err := fileops.AtomicWriteFile(target, []byte(content), FileMode); err != nil {
		return "", apperr.Wrap(apperr.IOError, err, "failed to write script %s", name)
	}

	logging.Debug("Created script", "path", target, "bytes", len(content))
	return target, nil
}
