package cli

import (
	"context"
	stderrors "errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	"pydoclint/internal/core/app"
	"pydoclint/internal/core/config"
	"pydoclint/internal/data/history"
	"pydoclint/internal/shared/observability"
	"pydoclint/internal/shared/util"
	"pydoclint/internal/shared/version"
	"pydoclint/internal/ui/report"
)

// Run executes the command line and returns the process exit code: 0 when
// every file is clean, 1 for violations, unchecked files or configuration
// errors and 2 for invalid flags.
func Run(args []string) int {
	return run(args, os.Stdout, os.Stderr)
}

func run(args []string, stdout, stderr io.Writer) int {
	opts, err := parseOptions(args, stderr)
	if err != nil {
		if stderrors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 2
	}

	if opts.version {
		fmt.Fprintf(stdout, "%s %s\n", toolName, version.String())
		return 0
	}

	format, err := report.ParseFormat(opts.format)
	if err != nil {
		fmt.Fprintln(stderr, err.Error())
		return 2
	}

	level := new(slog.LevelVar)
	cleanupLogs := configureLogging(opts.ui, opts.verbose, level, stderr)
	defer cleanupLogs()

	paths := opts.paths()
	cfg, err := loadConfig(opts, paths)
	if err != nil {
		slog.Error("failed to load config", "error", err)
		return 1
	}
	if cfg.Verbose {
		level.Set(slog.LevelDebug)
	}
	if cfg.Source != "" {
		slog.Debug("using configuration", "path", cfg.Source)
	}

	if opts.listCodes {
		if err := listCodes(stdout, cfg); err != nil {
			slog.Error("failed to list codes", "error", err)
			return 1
		}
		return 0
	}

	root := config.ProjectRoot(cfg, paths)
	application, err := app.New(cfg, root)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		return 1
	}
	defer func() {
		if err := application.Close(); err != nil {
			slog.Warn("failed to close app", "error", err)
		}
	}()

	store, err := openHistoryStoreIfEnabled(opts.history, cfg, application.Root())
	if err != nil {
		slog.Error("history setup failed", "error", err)
		return 1
	}
	if store != nil {
		application.AttachHistory(store)
	}

	if opts.history {
		if err := printTrend(stdout, store, application.Root(), cfg.History.Keep); err != nil {
			slog.Error("history mode failed", "error", err)
			return 1
		}
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := observability.InitTracing(ctx, cfg.Observability.OTLPEndpoint, cfg.Observability.ServiceName)
	if err != nil {
		slog.Warn("tracing disabled", "error", err)
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := shutdownTracing(shutdownCtx); err != nil {
				slog.Warn("failed to flush traces", "error", err)
			}
		}()
	}

	if addr := cfg.Observability.MetricsAddr; addr != "" {
		server := NewObservabilityServer(addr, app.NewHealthService(application))
		if err := server.Start(ctx); err != nil {
			slog.Error("failed to start observability server", "error", err)
			return 1
		}
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			_ = server.Stop(shutdownCtx)
		}()
	}

	result, err := application.Check(ctx, paths)
	if err != nil {
		slog.Error("check failed", "error", err)
		return 1
	}

	out := newReportWriter(stdout, opts.output, format, application.Root())
	if opts.ui {
		if opts.output != "" {
			if err := out.write(result); err != nil {
				slog.Error("failed to write report", "error", err)
			}
		}
		if err := runUI(ctx, application, opts, paths, store); err != nil {
			slog.Error("failed to run UI", "error", err)
			return 1
		}
		return application.LastResult().ExitCode()
	}

	if err := out.write(result); err != nil {
		slog.Error("failed to write report", "error", err)
		return 1
	}
	if !opts.watch {
		return result.ExitCode()
	}

	application.SetUpdateHandler(out.handleUpdate)
	stopWatch, err := startWatching(ctx, application, opts, paths)
	if err != nil {
		slog.Error("failed to start watcher", "error", err)
		return 1
	}
	defer stopWatch()

	slog.Info("watching for changes", "paths", paths)
	<-ctx.Done()
	return application.LastResult().ExitCode()
}

// startWatching re-checks changed sources and reloads the configuration
// file when it changes. The returned func stops the configuration watcher;
// the source watcher is closed with the app.
func startWatching(ctx context.Context, application *app.App, opts cliOptions, paths []string) (func(), error) {
	if err := application.StartWatcher(paths); err != nil {
		return nil, err
	}
	source := application.Config.Source
	if source == "" {
		return func() {}, nil
	}

	cfgWatcher := config.NewWatcher(source, application.Config.Watch.Debounce, func(reloaded *config.Config) {
		cfg, err := overrideConfig(opts, reloaded)
		if err != nil {
			slog.Error("ignoring reloaded configuration", "path", source, "error", err)
			return
		}
		if _, err := application.Reconfigure(ctx, cfg, paths); err != nil {
			slog.Error("failed to apply reloaded configuration", "path", source, "error", err)
		}
	})
	if err := cfgWatcher.Start(ctx); err != nil {
		slog.Warn("configuration reload disabled", "path", source, "error", err)
		return func() {}, nil
	}
	return cfgWatcher.Stop, nil
}

// reportWriter renders results to stdout or, when path is set, to a file
// that is replaced on every write. Watch updates arrive from the source
// watcher and from configuration reloads, so writes are serialized.
type reportWriter struct {
	stdout io.Writer
	path   string
	format string
	root   string
	mu     *sync.Mutex
}

func newReportWriter(stdout io.Writer, path, format, root string) reportWriter {
	return reportWriter{stdout: stdout, path: path, format: format, root: root, mu: new(sync.Mutex)}
}

func (w reportWriter) handleUpdate(update app.Update) {
	if err := w.write(update.Result); err != nil {
		slog.Error("failed to write report", "error", err)
	}
}

func (w reportWriter) write(result *app.Result) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	data, err := report.Render(w.format, report.FromResult(result, w.root))
	if err != nil {
		return fmt.Errorf("render %s report: %w", w.format, err)
	}
	if w.path == "" {
		_, err = w.stdout.Write(data)
		return err
	}
	if err := util.WriteFileWithDirs(w.path, data, 0o644); err != nil {
		return fmt.Errorf("write report %q: %w", w.path, err)
	}
	return nil
}

func openHistoryStoreIfEnabled(queryMode bool, cfg *config.Config, root string) (*history.Store, error) {
	if !queryMode && !cfg.History.Enabled {
		return nil, nil
	}

	store, err := history.Open(config.HistoryPath(cfg, root), cfg.History.BusyTimeout)
	if err != nil {
		return nil, fmt.Errorf("open history store: %w", err)
	}
	return store, nil
}

func printTrend(w io.Writer, store *history.Store, projectKey string, limit int) error {
	if store == nil {
		return fmt.Errorf("history store unavailable")
	}
	trend, err := loadTrend(context.Background(), store, projectKey, limit)
	if err != nil {
		return err
	}
	if trend == nil {
		fmt.Fprintln(w, "History: no runs recorded for this project.")
		return nil
	}

	fmt.Fprintf(w, "History: %d runs from %s to %s\n",
		trend.RunCount,
		trend.Since.Local().Format("2006-01-02 15:04:05"),
		trend.Until.Local().Format("2006-01-02 15:04:05"),
	)
	tsv, err := report.RenderTrendTSV(*trend)
	if err != nil {
		return fmt.Errorf("render trend TSV: %w", err)
	}
	_, err = w.Write(tsv)
	return err
}

// loadTrend returns nil when the project has no recorded runs.
func loadTrend(ctx context.Context, store *history.Store, projectKey string, limit int) (*history.TrendReport, error) {
	runs, err := store.Recent(ctx, projectKey, limit)
	if err != nil {
		return nil, fmt.Errorf("load runs: %w", err)
	}
	if len(runs) == 0 {
		return nil, nil
	}
	trend, err := history.BuildTrendReport(projectKey, runs)
	if err != nil {
		return nil, err
	}
	return &trend, nil
}

func configureLogging(uiMode, verbose bool, level *slog.LevelVar, stderr io.Writer) func() {
	level.Set(slog.LevelInfo)
	if verbose {
		level.Set(slog.LevelDebug)
	}

	output := stderr
	var closeFn func() = func() {}
	if uiMode {
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0o700); err != nil {
			fmt.Fprintf(stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
				fmt.Fprintf(stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			} else {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
				if err == nil {
					output = f
					closeFn = func() { _ = f.Close() }
				} else {
					fmt.Fprintf(stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				}
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return closeFn
}

func resolveLogPath() string {
	return filepath.Join(config.StateDir(), toolName+".log")
}
