package app

import (
	"fmt"
	"path/filepath"
	"runtime"
	"sync"
	"sync/atomic"

	"pydoclint/internal/core/config"
	"pydoclint/internal/core/errors"
	"pydoclint/internal/core/watcher"
	"pydoclint/internal/data/history"
	"pydoclint/internal/engine/checker"
	"pydoclint/internal/engine/parser"
)

// Update is delivered to the update handler after every watch re-check.
type Update struct {
	Result  *Result
	Changed []string
}

// App discovers Python files and checks them with a shared engine.
type App struct {
	Config *config.Config
	Parser *parser.Parser
	Engine *checker.Engine

	root     string
	workers  int
	match    *config.Pattern
	matchDir *config.Pattern

	history  *history.Store
	commit   string
	recorder *runRecorder
	// keep mirrors Config.History.Keep for the recorder goroutine.
	keep atomic.Int64

	watcher *watcher.Watcher

	// rulesMu guards Config, Engine and the name patterns. Checks hold it
	// for reading; Reconfigure swaps them under the write lock.
	rulesMu sync.RWMutex

	// reports holds the latest report per file; watch mode patches it.
	reportsMu sync.RWMutex
	reports   map[string]FileReport
	last      *Result

	updateMu sync.RWMutex
	onUpdate func(Update)
}

// New builds an App for cfg. root anchors exclude globs and the history
// project key; it defaults to the configuration's directory.
func New(cfg *config.Config, root string) (*App, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	engine, match, matchDir, err := compileRules(cfg)
	if err != nil {
		return nil, err
	}

	if root == "" {
		root = config.ProjectRoot(cfg, nil)
	}
	if abs, err := filepath.Abs(root); err == nil {
		root = abs
	}

	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	a := &App{
		Config:   cfg,
		Parser:   parser.NewParser(),
		Engine:   engine,
		root:     root,
		workers:  workers,
		match:    match,
		matchDir: matchDir,
		reports:  make(map[string]FileReport),
	}
	a.keep.Store(int64(cfg.History.Keep))
	return a, nil
}

func (a *App) historyKeep() int {
	return int(a.keep.Load())
}

func compileRules(cfg *config.Config) (*checker.Engine, *config.Pattern, *config.Pattern, error) {
	engineCfg, err := cfg.Checker()
	if err != nil {
		return nil, nil, nil, err
	}
	engine, err := checker.NewEngine(engineCfg)
	if err != nil {
		return nil, nil, nil, err
	}
	match, err := config.CompilePattern(cfg.Match)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, errors.CodeConfiguration, "invalid match pattern")
	}
	matchDir, err := config.CompilePattern(cfg.MatchDir)
	if err != nil {
		return nil, nil, nil, errors.Wrap(err, errors.CodeConfiguration, "invalid match_dir pattern")
	}
	return engine, match, matchDir, nil
}

// Root is the project root used for excludes and history.
func (a *App) Root() string {
	return a.root
}

// AttachHistory records every run in store. The HEAD commit of the project
// is resolved once and stored alongside the runs.
func (a *App) AttachHistory(store *history.Store) {
	a.history = store
	if store != nil {
		a.commit = history.ResolveCommit(a.root)
	}
}

func (a *App) SetUpdateHandler(handler func(Update)) {
	a.updateMu.Lock()
	defer a.updateMu.Unlock()
	a.onUpdate = handler
}

func (a *App) emitUpdate(update Update) {
	a.updateMu.RLock()
	handler := a.onUpdate
	a.updateMu.RUnlock()
	if handler != nil {
		handler(update)
	}
}

// LastResult returns the most recent result, or nil before the first run.
func (a *App) LastResult() *Result {
	a.reportsMu.RLock()
	defer a.reportsMu.RUnlock()
	return a.last
}

// Close stops the watcher, flushes queued history writes and releases the
// history store.
func (a *App) Close() error {
	var firstErr error
	if a.watcher != nil {
		if err := a.watcher.Close(); err != nil {
			firstErr = err
		}
		a.watcher = nil
	}
	if a.recorder != nil {
		a.recorder.Close()
		a.recorder = nil
	}
	if a.history != nil {
		if err := a.history.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close history: %w", err)
		}
		a.history = nil
	}
	return firstErr
}
