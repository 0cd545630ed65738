package cli

import (
	"context"
	"log/slog"

	"pydoclint/internal/core/app"
	"pydoclint/internal/data/history"

	tea "github.com/charmbracelet/bubbletea"
)

// runUI browses the latest result and follows watch updates until the user
// quits. When store is set the trend overlay is refreshed after every run.
func runUI(ctx context.Context, application *app.App, opts cliOptions, paths []string, store *history.Store) error {
	root := application.Root()
	limit := application.Config.History.Keep

	trendFor := func() *history.TrendReport {
		if store == nil {
			return nil
		}
		trend, err := loadTrend(ctx, store, root, limit)
		if err != nil {
			slog.Warn("failed to load trend", "error", err)
			return nil
		}
		return trend
	}

	m := initialModel(root, nil)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))

	application.SetUpdateHandler(func(update app.Update) {
		p.Send(updateMsg{result: update.Result, changed: update.Changed, trend: trendFor()})
	})
	stopWatch, err := startWatching(ctx, application, opts, paths)
	if err != nil {
		return err
	}
	defer stopWatch()

	go func() {
		p.Send(updateMsg{result: application.LastResult(), trend: trendFor()})
	}()

	_, err = p.Run()
	if err != nil && ctx.Err() != nil {
		return nil
	}
	return err
}
