// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"github.com/bmatcuk/doublestar/v4"
)

// FindFiles returns the regular files below rootPath matching any of the
// given doublestar patterns, such as "**/*.{yml,yaml}". Patterns are
// relative to rootPath. The result is sorted and free of duplicates.
func FindFiles(rootPath string, patterns ...string) ([]string, error) {
	if len(patterns) == 0 {
		panic("at least one pattern is required")
	}

	fsys := os.DirFS(rootPath)
	seen := make(map[string]struct{})
	var files []string
	for _, pattern := range patterns {
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("invalid glob pattern '%s'", pattern)
		}
		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("glob '%s' in %s: %w", pattern, rootPath, err)
		}
		for _, m := range matches {
			if _, dup := seen[m]; dup {
				continue
			}
			seen[m] = struct{}{}
			files = append(files, filepath.Join(rootPath, filepath.FromSlash(m)))
		}
	}
	sort.Strings(files)
	return files, nil
}

// Exists reports whether path exists. Errors other than fs.ErrNotExist are
// returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}
