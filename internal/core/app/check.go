package app

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"slices"
	"time"

	"pydoclint/internal/data/history"
	"pydoclint/internal/shared/observability"
	"pydoclint/internal/shared/util"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Check discovers and checks every file under paths. Files are checked in
// parallel; the returned result does not depend on scheduling. Read and
// parse failures are part of the result, not errors.
func (a *App) Check(ctx context.Context, paths []string) (*Result, error) {
	ctx, span := observability.Tracer().Start(ctx, "app.Check", trace.WithAttributes(
		attribute.StringSlice("pydoclint.paths", paths),
	))
	defer span.End()

	a.rulesMu.RLock()
	defer a.rulesMu.RUnlock()

	started := time.Now()
	files, err := a.Discover(paths)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "discovery failed")
		return nil, err
	}
	slog.Debug("discovered files", "count", len(files))

	reports, err := a.checkFiles(ctx, files)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "check cancelled")
		return nil, err
	}

	a.reportsMu.Lock()
	a.reports = make(map[string]FileReport, len(reports))
	for _, report := range reports {
		a.reports[report.Path] = report
	}
	result := newResult(a.Config.Convention, started, reports)
	a.last = result
	a.reportsMu.Unlock()

	observability.RunDuration.WithLabelValues("full").Observe(result.Duration.Seconds())
	observability.LastRunViolations.Set(float64(len(result.Violations)))
	span.SetAttributes(
		attribute.Int("pydoclint.files", result.FileCount()),
		attribute.Int("pydoclint.violations", len(result.Violations)),
	)
	a.recordRun(ctx, result)
	return result, nil
}

func (a *App) checkFiles(ctx context.Context, files []string) ([]FileReport, error) {
	reports := make([]FileReport, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.workers)
	for i, path := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			reports[i] = a.CheckFile(gctx, path)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return reports, nil
}

// CheckFile reads, parses and checks a single file.
func (a *App) CheckFile(ctx context.Context, path string) FileReport {
	_, span := observability.Tracer().Start(ctx, "app.CheckFile", trace.WithAttributes(
		attribute.String("pydoclint.file", path),
	))
	defer span.End()

	start := time.Now()
	defer func() {
		observability.FileCheckDuration.Observe(time.Since(start).Seconds())
		observability.FilesCheckedTotal.Inc()
	}()

	report := FileReport{Path: path}
	content, err := os.ReadFile(path)
	if err != nil {
		report.Err = fmt.Errorf("read %s: %w", path, err)
	} else if root, parseErr := a.Parser.ParseFile(path, content); parseErr != nil {
		report.Err = parseErr
	} else {
		report.Violations = slices.Collect(a.Engine.Check(root))
	}

	if report.Err != nil {
		observability.ParseFailuresTotal.Inc()
		span.RecordError(report.Err)
		span.SetStatus(codes.Error, "parse failed")
		slog.Error("cannot check file", "path", path, "error", report.Err)
		return report
	}

	for _, v := range report.Violations {
		observability.ViolationsTotal.WithLabelValues(v.Code).Inc()
	}
	span.SetAttributes(attribute.Int("pydoclint.violations", len(report.Violations)))
	slog.Debug("checked file", "path", path, "violations", len(report.Violations))
	return report
}

func (a *App) recordRun(ctx context.Context, result *Result) {
	if a.history == nil {
		return
	}
	a.writeRun(ctx, a.runFor(result))
}

// enqueueRun hands the run to the background recorder when one is running.
func (a *App) enqueueRun(ctx context.Context, result *Result) {
	if a.history == nil {
		return
	}
	if a.recorder == nil {
		a.writeRun(ctx, a.runFor(result))
		return
	}
	a.recorder.Record(a.runFor(result))
}

func (a *App) runFor(result *Result) history.Run {
	return history.Run{
		ProjectKey:    a.root,
		StartedAt:     result.StartedAt,
		Duration:      result.Duration,
		Convention:    result.Convention,
		CommitHash:    a.commit,
		FileCount:     result.FileCount(),
		ParseFailures: len(result.Failures),
		Violations:    len(result.Violations),
		Codes:         result.CountByCode(),
	}
}

func (a *App) writeRun(ctx context.Context, run history.Run) {
	run, err := a.history.Record(ctx, run)
	if err != nil {
		observability.HistoryWriteErrorsTotal.Inc()
		slog.Warn("failed to record run", "error", err)
		return
	}
	if removed, err := a.history.Prune(ctx, a.root, a.historyKeep()); err != nil {
		slog.Warn("failed to prune history", "error", err)
	} else if removed > 0 {
		slog.Debug("pruned history", "removed", removed)
	}
	slog.Debug("recorded run", "id", run.ID, "codes", util.SortedStringKeys(run.Codes))
}
