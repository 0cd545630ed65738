package app

import (
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"pydoclint/internal/core/errors"
	"pydoclint/internal/shared/util"

	"github.com/bmatcuk/doublestar/v4"
)

// Discover expands paths into the sorted list of files to check. Files are
// taken as given; directories are walked, entering only subdirectories whose
// name matches match_dir and keeping files whose name matches match. Exclude
// globs are matched against paths relative to the project root.
func (a *App) Discover(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		clean := filepath.Clean(path)
		if !seen[clean] {
			seen[clean] = true
			files = append(files, clean)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "cannot access path"), errors.CtxPath, root)
		}
		if !info.IsDir() {
			if !a.excluded(root) {
				add(root)
			}
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path == root {
					return nil
				}
				if !a.matchDir.Match(d.Name()) || a.excluded(path) {
					slog.Debug("skipping directory", "path", path)
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() || !a.match.Match(d.Name()) || a.excluded(path) {
				return nil
			}
			add(path)
			return nil
		})
		if err != nil {
			return nil, errors.AddContext(errors.Wrap(err, errors.CodeInternal, "walk failed"), errors.CtxPath, root)
		}
	}

	slices.Sort(files)
	return files, nil
}

// InScope reports whether a changed file would have been discovered: its
// name matches match, every directory below the project root matches
// match_dir and no exclude glob applies.
func (a *App) InScope(path string) bool {
	if !a.match.Match(filepath.Base(path)) || a.excluded(path) {
		return false
	}
	rel := util.RelSlash(a.root, filepath.Dir(absPath(path)))
	if rel == "." || strings.HasPrefix(rel, "/") {
		return true
	}
	for _, dir := range strings.Split(rel, "/") {
		if !a.matchDir.Match(dir) {
			return false
		}
	}
	return true
}

func (a *App) excluded(path string) bool {
	if len(a.Config.Exclude) == 0 {
		return false
	}
	rel := util.RelSlash(a.root, absPath(path))
	for _, pattern := range a.Config.Exclude {
		if ok, _ := doublestar.Match(pattern, rel); ok {
			return true
		}
	}
	return false
}

func absPath(path string) string {
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}
