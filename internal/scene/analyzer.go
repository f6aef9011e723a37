// Package scene summarizes Godot .tscn files by their section headers.
package scene

import (
	"bufio"
	"errors"
	"io"
	"io/fs"
	"os"
	"strings"

	"godotmcp/internal/apperr"
	"godotmcp/internal/validation"
	"godotmcp/pkg/fileops"
)

// Section header prefixes recognized by Analyze.
const (
	NodePrefix       = "[node"
	ResourcePrefix   = "[resource"
	ConnectionPrefix = "[connection"
)

// maxLineSize bounds a single scene line. Inline resources can be long.
const maxLineSize = 16 * 1024 * 1024

// Analysis is a flat classification of a scene file's section headers.
// Lines are kept trimmed but otherwise raw.
type Analysis struct {
	File        string   `json:"file"`
	Nodes       []string `json:"nodes"`
	Resources   []string `json:"resources"`
	Connections []string `json:"connections"`
}

// Analyze reads root/scenePath and classifies every line. Lines that are not
// node, resource or connection headers are dropped.
func Analyze(root, scenePath string) (*Analysis, error) {
	if strings.TrimSpace(root) == "" {
		return nil, apperr.New(apperr.NoProjectBound, "no project path set, use set_project first")
	}

	rel := validation.ProjectRelative(scenePath)
	if rel == "" {
		return nil, apperr.New(apperr.MalformedInput, "scene_path cannot be empty")
	}

	full, err := fileops.ResolveWithin(root, rel)
	if err != nil {
		return nil, apperr.Wrap(apperr.InvalidPath, err, "scene path outside project")
	}

	f, err := os.Open(full)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, apperr.New(apperr.NotFound, "scene file not found: %s", scenePath)
		}
		return nil, apperr.Wrap(apperr.IOError, err, "failed to open scene %s", scenePath)
	}
	defer f.Close()

	analysis, err := classify(f)
	if err != nil {
		return nil, apperr.Wrap(apperr.IOError, err, "failed to read scene %s", scenePath)
	}
	analysis.File = scenePath
	return analysis, nil
}

func classify(r io.Reader) (*Analysis, error) {
	a := &Analysis{
		Nodes:       []string{},
		Resources:   []string{},
		Connections: []string{},
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, NodePrefix):
			a.Nodes = append(a.Nodes, line)
		case strings.HasPrefix(line, ResourcePrefix):
			a.Resources = append(a.Resources, line)
		case strings.HasPrefix(line, ConnectionPrefix):
			a.Connections = append(a.Connections, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return a, nil
}
