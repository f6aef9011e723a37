// Package vcs reports the git state of a bound project.
package vcs

import (
	"errors"
	"fmt"

	"github.com/go-git/go-git/v6"
	"github.com/go-git/go-git/v6/plumbing"
)

// Info describes the checked-out revision of a project's repository.
type Info struct {
	// Branch is the short branch name, empty for a detached HEAD.
	Branch string `json:"branch,omitempty"`
	// Head is the abbreviated commit hash, empty before the first commit.
	Head string `json:"head,omitempty"`
}

// Describe inspects the repository containing path. Parent directories are
// searched for .git, so a project nested in a larger repository is found.
// It returns nil, nil when path is not inside a git repository.
func Describe(path string) (*Info, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, nil
		}
		return nil, fmt.Errorf("cannot open git repository: %w", err)
	}

	head, err := repo.Head()
	if err != nil {
		if errors.Is(err, plumbing.ErrReferenceNotFound) {
			// Fresh repository without commits.
			return &Info{}, nil
		}
		return nil, fmt.Errorf("cannot resolve HEAD: %w", err)
	}

	info := &Info{Head: head.Hash().String()[:7]}
	if head.Name().IsBranch() {
		info.Branch = head.Name().Short()
	}
	return info, nil
}
