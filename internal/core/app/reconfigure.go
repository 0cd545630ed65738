package app

import (
	"context"
	"log/slog"
	"runtime"

	"pydoclint/internal/core/config"
)

// Reconfigure replaces the configuration and re-checks paths with it. The
// new rules only take effect when cfg compiles; on error the previous
// configuration stays in place. The result is published as an Update with
// no changed files.
func (a *App) Reconfigure(ctx context.Context, cfg *config.Config, paths []string) (*Result, error) {
	engine, match, matchDir, err := compileRules(cfg)
	if err != nil {
		return nil, err
	}

	a.rulesMu.Lock()
	a.Config = cfg
	a.Engine = engine
	a.match = match
	a.matchDir = matchDir
	a.workers = cfg.Workers
	if a.workers <= 0 {
		a.workers = runtime.GOMAXPROCS(0)
	}
	a.keep.Store(int64(cfg.History.Keep))
	a.rulesMu.Unlock()
	slog.Info("configuration applied", "convention", cfg.Convention, "codes", len(engine.Codes()))

	result, err := a.Check(ctx, paths)
	if err != nil {
		return nil, err
	}
	a.emitUpdate(Update{Result: result})
	return result, nil
}
