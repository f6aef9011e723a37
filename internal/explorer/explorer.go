// Package explorer walks a bound Godot project to describe its layout and to
// enumerate scene and script files.
//
// It is the integration point between the generic fileops scanner and the
// gateway: scanner results are converted into DirectoryListing and FileEntry
// values and every failure is reported as an apperr.IOError.
package explorer

import (
	"path/filepath"
	"strings"

	"godotmcp/internal/apperr"
	"godotmcp/internal/logging"
	"godotmcp/pkg/fileops"
)

// RootKey is the DirectoryListing key used for the project root itself.
const RootKey = "root"

// CacheDirName is never descended into by ListStructure.
const CacheDirName = "__pycache__"

const (
	SceneSuffix  = ".tscn"
	ScriptSuffix = ".gd"
)

// DirectoryContents lists one directory's immediate children in name order.
type DirectoryContents struct {
	Directories []string `json:"directories"`
	Files       []string `json:"files"`
}

// DirectoryListing maps a slash-separated path relative to the project root
// to its contents. The root is keyed RootKey.
type DirectoryListing map[string]DirectoryContents

// FileEntry is a file discovered below the project root.
type FileEntry struct {
	Name         string `json:"name"`
	RelativePath string `json:"relative_path"`
	AbsolutePath string `json:"absolute_path"`
}

// ListStructure walks root and records every visible directory. Hidden
// entries and CacheDirName are skipped. Any unreadable directory fails the
// whole call and no partial listing is returned.
func ListStructure(root string) (DirectoryListing, error) {
	scanner, err := fileops.NewDirectoryScanner(root, &fileops.DirectoryScanOptions{
		SkipUnreadableDirs: false,
		IncludeHidden:      false,
		SkipPatterns:       []string{CacheDirName},
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.IOError, err, "failed to open project %s", root)
	}
	defer scanner.Close()

	listing := make(DirectoryListing)
	err = scanner.Walk(func(v fileops.DirectoryVisit) error {
		key := v.Path
		if key == "." {
			key = RootKey
		}
		files := v.Files
		if files == nil {
			files = []string{}
		}
		listing[key] = DirectoryContents{Directories: v.Directories, Files: files}
		return nil
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.IOError, err, "failed to read project structure")
	}

	logging.Debug("Listed project structure", "root", root, "directories", len(listing))
	return listing, nil
}

// FindBySuffix returns every file below root whose name ends with suffix,
// in depth-first name order. Hidden and cache directories are included;
// unreadable subdirectories are skipped.
func FindBySuffix(root, suffix string) ([]FileEntry, error) {
	scanner, err := fileops.NewDirectoryScanner(root, &fileops.DirectoryScanOptions{
		SkipUnreadableDirs: true,
		IncludeHidden:      true,
		FileFilter: func(name string) bool {
			return strings.HasSuffix(name, suffix)
		},
	})
	if err != nil {
		return nil, apperr.Wrap(apperr.IOError, err, "failed to open project %s", root)
	}
	defer scanner.Close()

	files, err := scanner.ScanDirectory()
	if err != nil {
		return nil, apperr.Wrap(apperr.IOError, err, "failed to scan for %s files", suffix)
	}

	entries := make([]FileEntry, 0, len(files))
	for _, f := range files {
		entries = append(entries, FileEntry{
			Name:         f.Name,
			RelativePath: f.Path,
			AbsolutePath: filepath.Join(scanner.Root(), filepath.FromSlash(f.Path)),
		})
	}

	logging.Debug("Found files by suffix", "suffix", suffix, "count", len(entries))
	return entries, nil
}
