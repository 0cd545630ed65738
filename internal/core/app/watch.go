package app

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"time"

	"pydoclint/internal/core/watcher"
	"pydoclint/internal/shared/observability"
	"pydoclint/internal/shared/util"
)

// StartWatcher re-checks changed files under paths until Close is called.
// Each batch of changes produces one Update.
func (a *App) StartWatcher(paths []string) error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Watch.ExcludeDirs,
		a.Config.Watch.ExcludeFiles,
		a.HandleChanges,
	)
	if err != nil {
		return err
	}
	w.SetFileFilter(func(name string) bool {
		a.rulesMu.RLock()
		defer a.rulesMu.RUnlock()
		return a.match.Match(name)
	})
	if a.Config.Watch.RateLimit > 0 {
		w.SetLimiter(util.NewLimiter(a.Config.Watch.RateLimit, max(a.Config.Watch.Burst, 1)))
	}
	a.watcher = w
	if a.history != nil && a.recorder == nil {
		a.recorder = newRunRecorder(a.writeRun)
	}
	return w.Watch(watchRoots(paths))
}

// HandleChanges re-checks the changed files that are in scope, drops the
// ones that were deleted and publishes the merged result.
func (a *App) HandleChanges(paths []string) {
	slog.Info("detected changes", "count", len(paths))
	started := time.Now()
	ctx := context.Background()

	a.rulesMu.RLock()
	defer a.rulesMu.RUnlock()

	var changed []string
	for _, path := range paths {
		path = filepath.Clean(path)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			a.reportsMu.Lock()
			if _, ok := a.reports[path]; ok {
				delete(a.reports, path)
				changed = append(changed, path)
			}
			a.reportsMu.Unlock()
			continue
		}
		if !a.InScope(path) {
			continue
		}
		report := a.CheckFile(ctx, path)
		a.reportsMu.Lock()
		a.reports[path] = report
		a.reportsMu.Unlock()
		changed = append(changed, path)
	}
	if len(changed) == 0 {
		return
	}
	slices.Sort(changed)

	a.reportsMu.Lock()
	reports := make([]FileReport, 0, len(a.reports))
	for _, report := range a.reports {
		reports = append(reports, report)
	}
	result := newResult(a.Config.Convention, started, reports)
	a.last = result
	a.reportsMu.Unlock()

	observability.RunDuration.WithLabelValues("incremental").Observe(result.Duration.Seconds())
	observability.LastRunViolations.Set(float64(len(result.Violations)))
	a.enqueueRun(ctx, result)
	a.emitUpdate(Update{Result: result, Changed: changed})
}

// watchRoots maps every path to the directory to watch, without duplicates.
func watchRoots(paths []string) []string {
	seen := make(map[string]bool)
	var roots []string
	for _, p := range paths {
		dir := filepath.Clean(p)
		if info, err := os.Stat(dir); err == nil && !info.IsDir() {
			dir = filepath.Dir(dir)
		}
		if !seen[dir] {
			seen[dir] = true
			roots = append(roots, dir)
		}
	}
	slices.Sort(roots)
	return roots
}
