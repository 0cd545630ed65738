package app

import (
	"cmp"
	"slices"
	"time"

	"pydoclint/internal/core/errors"
	"pydoclint/internal/engine/checker"
)

// FileReport is the outcome of checking one file. Err is set when the file
// could not be read or parsed; Violations is empty in that case.
type FileReport struct {
	Path       string
	Violations []checker.Violation
	Err        error
}

// ParseFailure names a file that produced no definition tree.
type ParseFailure struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// Result aggregates a run. Violations are ordered by file, line and code.
type Result struct {
	Convention string
	StartedAt  time.Time
	Duration   time.Duration
	Files      []string
	Violations []checker.Violation
	Failures   []ParseFailure
}

func newResult(convention string, started time.Time, reports []FileReport) *Result {
	r := &Result{
		Convention: convention,
		StartedAt:  started,
		Duration:   time.Since(started),
		Files:      make([]string, 0, len(reports)),
	}
	for _, report := range reports {
		r.Files = append(r.Files, report.Path)
		if report.Err != nil {
			r.Failures = append(r.Failures, ParseFailure{Path: report.Path, Message: errors.Describe(report.Err)})
			continue
		}
		r.Violations = append(r.Violations, report.Violations...)
	}
	slices.Sort(r.Files)
	slices.SortFunc(r.Failures, func(a, b ParseFailure) int { return cmp.Compare(a.Path, b.Path) })
	slices.SortStableFunc(r.Violations, compareViolations)
	return r
}

func compareViolations(a, b checker.Violation) int {
	return cmp.Or(
		cmp.Compare(a.File, b.File),
		cmp.Compare(a.Line, b.Line),
		cmp.Compare(a.Code, b.Code),
	)
}

func (r *Result) FileCount() int {
	return len(r.Files)
}

// ExitCode is 0 for a clean run and 1 when anything was reported.
func (r *Result) ExitCode() int {
	if len(r.Violations) > 0 || len(r.Failures) > 0 {
		return 1
	}
	return 0
}

// CountByCode returns the number of violations per error code.
func (r *Result) CountByCode() map[string]int {
	counts := make(map[string]int)
	for _, v := range r.Violations {
		counts[v.Code]++
	}
	return counts
}
