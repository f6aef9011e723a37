package fileops

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"
)

// DirectoryScanOptions configures the behavior of directory scanning operations.
type DirectoryScanOptions struct {
	// SkipUnreadableDirs determines whether to skip directories that cannot be read
	// or to fail the whole scan. Setting to false makes the scan all-or-nothing.
	SkipUnreadableDirs bool

	// MaxDepth limits the recursion depth; the scan root is depth 1.
	// Zero or negative means no limit.
	MaxDepth int

	// IncludeHidden determines whether to include files and directories that start with '.'
	IncludeHidden bool

	// SkipPatterns contains directory names that are never descended into.
	// These are exact matches against directory names (not full paths).
	SkipPatterns []string

	// FileFilter is an optional function that determines whether a file should be included.
	FileFilter func(filename string) bool
}

// FileInfo represents a file discovered during directory scanning.
type FileInfo struct {
	// Name is the base filename without path components
	Name string

	// Path is the slash-separated path from the scan root to this file
	Path string

	Size    int64
	ModTime time.Time
}

// DirectoryVisit describes one directory reached by Walk.
type DirectoryVisit struct {
	// Path is the slash-separated path relative to the scan root; "." for the root.
	Path string

	// Directories lists the subdirectories in name order. A symbolic link to a
	// directory is listed here but never descended into.
	Directories []string

	// Files lists the files that passed the hidden and FileFilter checks, in name order.
	Files []string
}

// WalkFunc is called once per visited directory, parents before children.
// Returning an error stops the walk.
type WalkFunc func(visit DirectoryVisit) error

// SecureDirectoryScanner provides configurable directory scanning confined to
// an os.Root, so no entry outside the scan root can be opened.
//
// Symbolic links are never followed: a link to a directory is reported as a
// directory without being walked, any other link as a file.
type SecureDirectoryScanner struct {
	// root defines the security boundary for scanning operations
	root *os.Root

	opts *DirectoryScanOptions

	// scanRoot stores the absolute path of the scan root
	scanRoot string
}

// NewDirectoryScanner creates a new secure directory scanner for the given path.
//
// Usage example:
//
//	opts := &fileops.DirectoryScanOptions{
//	    IncludeHidden: true,
//	    FileFilter: func(name string) bool {
//	        return strings.HasSuffix(name, ".tscn")
//	    },
//	}
//	scanner, err := fileops.NewDirectoryScanner("/games/platformer", opts)
//	if err != nil {
//	    return fmt.Errorf("failed to create scanner: %w", err)
//	}
//	defer scanner.Close()
func NewDirectoryScanner(scanPath string, opts *DirectoryScanOptions) (*SecureDirectoryScanner, error) {
	if opts == nil {
		opts = getDefaultScanOptions()
	}

	if strings.TrimSpace(scanPath) == "" {
		return nil, fmt.Errorf("scan path cannot be empty")
	}

	absPath, err := filepath.Abs(ExpandPath(scanPath))
	if err != nil {
		return nil, fmt.Errorf("cannot resolve scan path: %w", err)
	}

	info, err := os.Stat(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot access scan path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("scan path is not a directory: %s", absPath)
	}

	root, err := os.OpenRoot(absPath)
	if err != nil {
		return nil, fmt.Errorf("cannot create secure scan root: %w", err)
	}

	return &SecureDirectoryScanner{
		root:     root,
		opts:     opts,
		scanRoot: absPath,
	}, nil
}

// getDefaultScanOptions returns sensible default scanning options.
func getDefaultScanOptions() *DirectoryScanOptions {
	return &DirectoryScanOptions{
		SkipUnreadableDirs: true,
		IncludeHidden:      true,
	}
}

// Root returns the absolute path the scanner is confined to.
func (s *SecureDirectoryScanner) Root() string {
	return s.scanRoot
}

// Close releases resources associated with the scanner.
func (s *SecureDirectoryScanner) Close() error {
	if s.root != nil {
		err := s.root.Close()
		s.root = nil
		return err
	}
	return nil
}

// Walk visits every reachable directory depth-first in name order.
func (s *SecureDirectoryScanner) Walk(fn WalkFunc) error {
	if s.root == nil {
		return fmt.Errorf("scanner has been closed")
	}

	return s.walk(".", 1, func(rel string, dirs []string, files []os.DirEntry) error {
		names := make([]string, 0, len(files))
		for _, f := range files {
			names = append(names, f.Name())
		}
		return fn(DirectoryVisit{
			Path:        filepath.ToSlash(rel),
			Directories: dirs,
			Files:       names,
		})
	})
}

// ScanDirectory returns every file accepted by the configured filters.
func (s *SecureDirectoryScanner) ScanDirectory() ([]FileInfo, error) {
	if s.root == nil {
		return nil, fmt.Errorf("scanner has been closed")
	}

	results := []FileInfo{}
	err := s.walk(".", 1, func(rel string, _ []string, files []os.DirEntry) error {
		for _, entry := range files {
			entryPath := filepath.Join(rel, entry.Name())
			info, err := entry.Info()
			if err != nil {
				if s.opts.SkipUnreadableDirs {
					continue
				}
				return fmt.Errorf("failed to get file info for %s: %w", entryPath, err)
			}
			results = append(results, FileInfo{
				Name:    entry.Name(),
				Path:    filepath.ToSlash(entryPath),
				Size:    info.Size(),
				ModTime: info.ModTime(),
			})
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("directory scan failed: %w", err)
	}

	return results, nil
}

type visitFunc func(rel string, dirs []string, files []os.DirEntry) error

func (s *SecureDirectoryScanner) walk(relativePath string, depth int, visit visitFunc) error {
	if s.opts.MaxDepth > 0 && depth > s.opts.MaxDepth {
		return nil
	}

	dir, err := s.root.Open(relativePath)
	if err != nil {
		if s.opts.SkipUnreadableDirs {
			return nil
		}
		return fmt.Errorf("failed to open directory %s: %w", relativePath, err)
	}
	entries, err := dir.ReadDir(-1)
	dir.Close()
	if err != nil {
		if s.opts.SkipUnreadableDirs {
			return nil
		}
		return fmt.Errorf("failed to read directory %s: %w", relativePath, err)
	}

	// ReadDir on *os.File does not sort.
	slices.SortFunc(entries, func(a, b os.DirEntry) int {
		return strings.Compare(a.Name(), b.Name())
	})

	dirs := []string{}
	var descend []string
	var files []os.DirEntry
	for _, entry := range entries {
		switch {
		case entry.IsDir():
			if !s.shouldSkipDirectory(entry.Name()) {
				dirs = append(dirs, entry.Name())
				descend = append(descend, entry.Name())
			}
		case s.isDirectoryLink(relativePath, entry):
			if !s.shouldSkipDirectory(entry.Name()) {
				dirs = append(dirs, entry.Name())
			}
		case s.shouldIncludeFile(entry.Name()):
			files = append(files, entry)
		}
	}

	if err := visit(relativePath, dirs, files); err != nil {
		return err
	}

	for _, name := range descend {
		if err := s.walk(filepath.Join(relativePath, name), depth+1, visit); err != nil {
			return err
		}
	}
	return nil
}

// isDirectoryLink reports whether entry is a symbolic link whose target is a
// directory. The target is only stat'ed, never opened, so it may lie outside
// the scan root. Broken links are files.
func (s *SecureDirectoryScanner) isDirectoryLink(relativePath string, entry os.DirEntry) bool {
	if entry.Type()&os.ModeSymlink == 0 {
		return false
	}
	info, err := os.Stat(filepath.Join(s.scanRoot, relativePath, entry.Name()))
	return err == nil && info.IsDir()
}

// shouldSkipDirectory determines if a directory should be skipped based on configured rules.
func (s *SecureDirectoryScanner) shouldSkipDirectory(dirName string) bool {
	if !s.opts.IncludeHidden && strings.HasPrefix(dirName, ".") {
		return true
	}
	return slices.Contains(s.opts.SkipPatterns, dirName)
}

// shouldIncludeFile determines if a file should be included based on configured rules.
func (s *SecureDirectoryScanner) shouldIncludeFile(fileName string) bool {
	if !s.opts.IncludeHidden && strings.HasPrefix(fileName, ".") {
		return false
	}
	if s.opts.FileFilter != nil {
		return s.opts.FileFilter(fileName)
	}
	return true
}
