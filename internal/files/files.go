// Package files discovers stylesheet and document files with doublestar
// globs.
package files

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"bennypowers.dev/csstree/internal/collections"
	"bennypowers.dev/csstree/internal/log"
	"github.com/bmatcuk/doublestar/v4"
)

// skipDirs are never descended into by recursive patterns
var skipDirs = []string{"node_modules", "dist", "build"}

// skipped reports whether a path matched through ** passes through a hidden
// or dependency directory
func skipped(rel string) bool {
	dirs := strings.Split(path.Dir(rel), "/")
	for _, dir := range dirs {
		if dir == "." {
			continue
		}
		if strings.HasPrefix(dir, ".") || slices.Contains(skipDirs, dir) {
			return true
		}
	}
	return false
}

// Expand resolves patterns relative to root and returns the matching files
// in pattern order, without duplicates and without paths matching any of
// exclude. A pattern naming an existing file is taken as is; absolute
// patterns are resolved from their own base directory. Files reached
// through "**" inside hidden, node_modules, dist or build directories are
// skipped.
func Expand(root string, patterns, exclude []string) ([]string, error) {
	for _, pattern := range exclude {
		if !doublestar.ValidatePattern(filepath.ToSlash(pattern)) {
			return nil, fmt.Errorf("bad exclude pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}
	}

	found := collections.NewOrderedSet[string]()
	for _, pattern := range patterns {
		base := root
		pattern = filepath.ToSlash(pattern)
		if path.IsAbs(pattern) || filepath.IsAbs(pattern) {
			base, pattern = doublestar.SplitPattern(pattern)
		}
		if !doublestar.ValidatePattern(pattern) {
			return nil, fmt.Errorf("bad glob pattern %q: %w", pattern, doublestar.ErrBadPattern)
		}

		fsys := os.DirFS(base)
		if info, err := fs.Stat(fsys, pattern); err == nil && !info.IsDir() {
			found.Add(filepath.Join(base, filepath.FromSlash(pattern)))
			continue
		}

		matches, err := doublestar.Glob(fsys, pattern, doublestar.WithFilesOnly())
		if err != nil {
			return nil, fmt.Errorf("failed to expand %q: %w", pattern, err)
		}
		if len(matches) == 0 {
			log.Debug("No files match %s", pattern)
		}
		recursive := strings.Contains(pattern, "**")
		for _, match := range matches {
			if recursive && skipped(match) {
				continue
			}
			found.Add(filepath.Join(base, filepath.FromSlash(match)))
		}
	}

	var paths []string
	for p := range found.All() {
		rel, err := filepath.Rel(root, p)
		if err != nil {
			rel = p
		}
		excluded, err := matchesAny(exclude, filepath.ToSlash(rel))
		if err != nil {
			return nil, err
		}
		if !excluded {
			paths = append(paths, p)
		}
	}
	return paths, nil
}

func matchesAny(patterns []string, rel string) (bool, error) {
	for _, pattern := range patterns {
		matched, err := doublestar.Match(filepath.ToSlash(pattern), rel)
		if err != nil {
			return false, fmt.Errorf("bad exclude pattern %q: %w", pattern, err)
		}
		if matched {
			return true, nil
		}
	}
	return false, nil
}

// ErrNoFiles is returned by Require when nothing matched
var ErrNoFiles = errors.New("no files matched")

// Require is Expand that fails when no file matches
func Require(root string, patterns, exclude []string) ([]string, error) {
	paths, err := Expand(root, patterns, exclude)
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoFiles, strings.Join(patterns, " "))
	}
	return paths, nil
}
