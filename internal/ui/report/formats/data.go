package formats

import (
	"path/filepath"
	"time"

	"pydoclint/internal/engine/checker"
	"pydoclint/internal/shared/util"
)

// Failure is a file that could not be checked.
type Failure struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// ReportData is the format independent view of one run.
type ReportData struct {
	ProjectRoot string
	Convention  string
	Version     string
	GeneratedAt time.Time
	Duration    time.Duration
	FileCount   int
	Violations  []checker.Violation
	Failures    []Failure
}

// displayPath shows absolute paths relative to the project root.
func (d ReportData) displayPath(path string) string {
	if d.ProjectRoot == "" || !filepath.IsAbs(path) {
		return filepath.ToSlash(path)
	}
	return util.RelSlash(d.ProjectRoot, path)
}

func (d ReportData) generatedAt() time.Time {
	if d.GeneratedAt.IsZero() {
		return time.Now().UTC()
	}
	return d.GeneratedAt.UTC()
}

func nonEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
