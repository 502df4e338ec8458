// Package locator finds the widget source files the linter scans.
package locator

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// Patterns lists the globs (relative to the work dir) that make up the scan set.
// They're fixed on purpose: nothing user-supplied ever reaches the filesystem.
var Patterns = []string{
	"topics/*/interactive.*",
	"topics/*/widgets/*.js",
}

// ErrWorkDirNotFound is returned when the work dir doesn't exist or isn't a directory.
var ErrWorkDirNotFound = errors.New("work dir not found")

// File is one candidate source file.
type File struct {
	Path    string // absolute
	RelPath string // slash-separated, relative to the work dir
}

// Workspace is a work dir plus the filesystem rooted at it.
type Workspace struct {
	Root string
	FS   billy.Filesystem
}

// OpenWorkspace resolves dir to an absolute path and roots an OS filesystem there.
func OpenWorkspace(dir string) (*Workspace, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve %s: %w", dir, err)
	}

	info, err := os.Stat(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrWorkDirNotFound, abs)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrWorkDirNotFound, abs)
	}

	return NewWorkspace(abs, osfs.New(abs)), nil
}

// NewWorkspace wraps an existing filesystem. root is only used to build absolute paths.
func NewWorkspace(root string, fsys billy.Filesystem) *Workspace {
	return &Workspace{Root: root, FS: fsys}
}

// Locate expands patterns and returns the matching regular files, sorted by
// absolute path with duplicates removed.
func (w *Workspace) Locate(patterns []string) ([]File, error) {
	seen := make(map[string]bool)
	var files []File

	for _, pattern := range patterns {
		matches, err := util.Glob(w.FS, pattern)
		if err != nil {
			return nil, fmt.Errorf("failed to expand %s: %w", pattern, err)
		}

		for _, rel := range matches {
			info, err := w.FS.Stat(rel)
			if err != nil {
				return nil, fmt.Errorf("failed to stat %s: %w", rel, err)
			}
			if info.IsDir() {
				continue
			}

			abs := filepath.Join(w.Root, rel)
			if seen[abs] {
				continue
			}
			seen[abs] = true
			files = append(files, File{Path: abs, RelPath: filepath.ToSlash(rel)})
		}
	}

	sort.Slice(files, func(i, j int) bool {
		return files[i].Path < files[j].Path
	})

	return files, nil
}
