package formats

import (
	"encoding/json"
	"time"

	"pydoclint/internal/shared/util"
)

type jsonReport struct {
	Tool        string          `json:"tool"`
	Version     string          `json:"version"`
	Convention  string          `json:"convention"`
	GeneratedAt time.Time       `json:"generated_at"`
	DurationMS  int64           `json:"duration_ms"`
	Files       int             `json:"files"`
	Summary     []jsonCodeCount `json:"summary"`
	Violations  []jsonViolation `json:"violations"`
	Failures    []Failure       `json:"failures"`
}

type jsonCodeCount struct {
	Code  string `json:"code"`
	Count int    `json:"count"`
}

type jsonViolation struct {
	File     string `json:"file"`
	Line     int    `json:"line"`
	Kind     string `json:"kind"`
	Name     string `json:"name"`
	Code     string `json:"code"`
	Message  string `json:"message"`
	Rendered string `json:"rendered"`
}

// GenerateJSON renders the run as an indented JSON document.
func GenerateJSON(data ReportData) ([]byte, error) {
	counts := make(map[string]int)
	violations := make([]jsonViolation, 0, len(data.Violations))
	for _, v := range data.Violations {
		counts[v.Code]++
		v.File = data.displayPath(v.File)
		violations = append(violations, jsonViolation{
			File:     v.File,
			Line:     v.Line,
			Kind:     v.NodeKind.String(),
			Name:     v.NodeName,
			Code:     v.Code,
			Message:  v.Message,
			Rendered: v.String(),
		})
	}
	summary := make([]jsonCodeCount, 0, len(counts))
	for _, code := range util.SortedStringKeys(counts) {
		summary = append(summary, jsonCodeCount{Code: code, Count: counts[code]})
	}
	failures := make([]Failure, 0, len(data.Failures))
	for _, f := range data.Failures {
		failures = append(failures, Failure{Path: data.displayPath(f.Path), Message: f.Message})
	}

	return json.MarshalIndent(jsonReport{
		Tool:        "pydoclint",
		Version:     nonEmpty(data.Version, "dev"),
		Convention:  data.Convention,
		GeneratedAt: data.generatedAt(),
		DurationMS:  data.Duration.Milliseconds(),
		Files:       data.FileCount,
		Summary:     summary,
		Violations:  violations,
		Failures:    failures,
	}, "", "  ")
}
