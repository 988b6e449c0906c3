// Package scanner discovers the source files an mcsfix run operates on.
//
// The walker traverses a project root, skips build and cache directories
// by name, keeps files with the configured extension and returns them in
// lexicographic order so that reports are reproducible.
package scanner

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fisty/mcsfix/internal/errors"
	"github.com/fisty/mcsfix/internal/logging"
)

// Walker finds candidate files under a root.
type Walker struct {
	// Extension is the file suffix to keep, e.g. ".zig"
	Extension string
	// ExcludeDirs are directory names that are never descended into
	ExcludeDirs []string

	logger logging.Logger
}

// NewWalker creates a walker. A nil logger discards warnings.
func NewWalker(extension string, excludeDirs []string, logger logging.Logger) *Walker {
	if logger == nil {
		logger = logging.NewNopLogger()
	}
	return &Walker{
		Extension:   extension,
		ExcludeDirs: excludeDirs,
		logger:      logger.WithComponent("scanner"),
	}
}

// Walk returns the sorted candidate files under root. A root that is
// missing or unreadable is an error; unreadable subdirectories are logged
// and skipped.
func (w *Walker) Walk(ctx context.Context, root string) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		return nil, errors.ErrRootUnreadable(root, err)
	}
	if !info.IsDir() {
		return nil, errors.ErrInvalidPath(root, "project root is not a directory")
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			if path == root {
				return walkErr
			}
			w.logger.Warn(ctx, walkErr, "Skipping unreadable path", "path", path)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if d.IsDir() {
			if path != root && w.excluded(d.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		if w.Matches(path) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, errors.ErrRootUnreadable(root, err)
	}

	sort.Strings(files)
	return files, nil
}

// Matches reports whether path has the walker's extension and does not
// sit inside an excluded directory.
func (w *Walker) Matches(path string) bool {
	if !strings.HasSuffix(path, w.Extension) {
		return false
	}
	for _, part := range strings.Split(filepath.ToSlash(filepath.Dir(path)), "/") {
		if w.excluded(part) {
			return false
		}
	}
	return true
}

func (w *Walker) excluded(name string) bool {
	for _, ex := range w.ExcludeDirs {
		if name == ex {
			return true
		}
	}
	return false
}
