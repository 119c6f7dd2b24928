// Package vcs supplies checked-in file content from an external version
// control system. The diff view treats the VCS as a pluggable collaborator:
// anything that can produce "the most recent committed copy" of a path
// satisfies Source.
package vcs

import (
	"bytes"
	"fmt"
	"os/exec"
	"path/filepath"
	"strings"
)

// Source provides the head (most recently committed) content of a file.
type Source interface {
	Head(path string) (string, error)
}

// Git reads head content via the git CLI.
type Git struct{}

// Head returns the committed content of path at HEAD.
func (Git) Head(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}
	dir := filepath.Dir(abs)

	// Resolve the path relative to the repository root; git show addresses
	// files by repo-relative path.
	rel, err := gitOutput(dir, "ls-files", "--full-name", "--error-unmatch", abs)
	if err != nil {
		return "", fmt.Errorf("%s is not tracked: %w", path, err)
	}

	content, err := gitOutput(dir, "show", "HEAD:"+strings.TrimSpace(rel))
	if err != nil {
		return "", fmt.Errorf("fetching HEAD copy of %s: %w", path, err)
	}
	return content, nil
}

func gitOutput(dir string, args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = dir
	var out, errb bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errb
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(errb.String())
		if msg != "" {
			return "", fmt.Errorf("git %s: %s", args[0], msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return out.String(), nil
}
