package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
)

// Watcher reloads one configuration file when its content changes and hands
// every configuration that loads and validates to onReload. A file that
// fails to load, disappears, or is rewritten with identical bytes produces
// no callback, so the caller keeps its current rules.
type Watcher struct {
	path     string
	debounce time.Duration
	onReload func(*Config)

	mu      sync.Mutex
	last    []byte
	timer   *time.Timer
	stopped bool

	reloadMu sync.Mutex
	stop     chan struct{}
	stopOnce sync.Once
	wg       sync.WaitGroup
}

// NewWatcher watches path. A non-positive debounce uses 100ms.
func NewWatcher(path string, debounce time.Duration, onReload func(*Config)) *Watcher {
	if debounce <= 0 {
		debounce = 100 * time.Millisecond
	}
	return &Watcher{
		path:     filepath.Clean(path),
		debounce: debounce,
		onReload: onReload,
		stop:     make(chan struct{}),
	}
}

func (w *Watcher) Start(ctx context.Context) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	// The parent directory is watched so editors that save by rename are seen.
	if err := fsw.Add(filepath.Dir(w.path)); err != nil {
		_ = fsw.Close()
		return err
	}
	if data, err := os.ReadFile(w.path); err == nil {
		w.last = data
	}

	w.wg.Add(1)
	go w.loop(ctx, fsw)
	slog.Debug("watching configuration", "path", w.path)
	return nil
}

func (w *Watcher) loop(ctx context.Context, fsw *fsnotify.Watcher) {
	defer w.wg.Done()
	defer fsw.Close()

	for {
		select {
		case event, ok := <-fsw.Events:
			if !ok {
				return
			}
			if filepath.Clean(event.Name) != w.path {
				continue
			}
			switch {
			case event.Op&(fsnotify.Write|fsnotify.Create) != 0:
				w.schedule()
			case event.Op&(fsnotify.Remove|fsnotify.Rename) != 0:
				slog.Warn("configuration file removed, keeping current rules", "path", w.path)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return
			}
			slog.Warn("config watcher error", "error", err)
		case <-w.stop:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (w *Watcher) schedule() {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stopped {
		return
	}
	if w.timer != nil {
		w.timer.Stop()
	}
	w.timer = time.AfterFunc(w.debounce, w.reload)
}

// Stop ends the watch and cancels a pending reload. It is safe to call more
// than once.
func (w *Watcher) Stop() {
	w.stopOnce.Do(func() {
		w.mu.Lock()
		w.stopped = true
		if w.timer != nil {
			w.timer.Stop()
		}
		w.mu.Unlock()
		close(w.stop)
	})
	w.wg.Wait()
}

func (w *Watcher) reload() {
	w.reloadMu.Lock()
	defer w.reloadMu.Unlock()

	data, err := os.ReadFile(w.path)
	if err != nil {
		slog.Warn("configuration unreadable, keeping current rules", "path", w.path, "error", err)
		return
	}
	w.mu.Lock()
	unchanged := w.last != nil && bytes.Equal(data, w.last)
	stopped := w.stopped
	w.mu.Unlock()
	if unchanged || stopped {
		return
	}

	cfg, err := Load(w.path)
	if err != nil {
		slog.Error("invalid configuration, keeping current rules", "path", w.path, "error", err)
		return
	}
	w.mu.Lock()
	w.last = data
	w.mu.Unlock()

	slog.Info("configuration reloaded", "path", w.path, "convention", cfg.Convention)
	if w.onReload != nil {
		w.onReload(cfg)
	}
}
