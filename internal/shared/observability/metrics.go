package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	FileCheckDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "pydoclint_file_check_seconds",
		Help:    "Time spent parsing and checking a single source file.",
		Buckets: prometheus.DefBuckets,
	})

	RunDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "pydoclint_run_seconds",
		Help:    "Time spent on a complete check run.",
		Buckets: prometheus.DefBuckets,
	}, []string{"mode"})

	FilesCheckedTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pydoclint_files_checked_total",
		Help: "Total number of source files checked.",
	})

	ParseFailuresTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pydoclint_parse_failures_total",
		Help: "Total number of files that could not be parsed.",
	})

	ViolationsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "pydoclint_violations_total",
		Help: "Total number of reported violations by error code.",
	}, []string{"code"})

	LastRunViolations = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "pydoclint_last_run_violations",
		Help: "Number of violations reported by the most recent run.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pydoclint_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	HistoryWriteErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pydoclint_history_write_errors_total",
		Help: "Total number of runs that could not be recorded in the history store.",
	})

	HTTPThrottledTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "pydoclint_http_throttled_total",
		Help: "Total number of observability requests rejected by the rate limiter.",
	})
)
