package history

import (
	"fmt"
	"sort"
)

// BuildTrendReport derives per-run deltas from runs ordered oldest first.
func BuildTrendReport(projectKey string, runs []Run) (TrendReport, error) {
	if len(runs) == 0 {
		return TrendReport{}, fmt.Errorf("no runs recorded for project %q", projectKeyOrDefault(projectKey))
	}

	seen := make(map[string]bool)
	for _, run := range runs {
		for code := range run.Codes {
			seen[code] = true
		}
	}
	codes := make([]string, 0, len(seen))
	for code := range seen {
		codes = append(codes, code)
	}
	sort.Strings(codes)

	points := make([]TrendPoint, 0, len(runs))
	for i, current := range runs {
		point := TrendPoint{
			RunID:      current.ID,
			StartedAt:  current.StartedAt,
			CommitHash: current.CommitHash,
			FileCount:  current.FileCount,
			Violations: current.Violations,
			Codes:      make(map[string]int, len(codes)),
			DeltaCodes: make(map[string]int),
		}
		for _, code := range codes {
			point.Codes[code] = current.Codes[code]
		}
		if i > 0 {
			prev := runs[i-1]
			point.DeltaViolations = current.Violations - prev.Violations
			for _, code := range codes {
				if d := current.Codes[code] - prev.Codes[code]; d != 0 {
					point.DeltaCodes[code] = d
				}
			}
		}
		points = append(points, point)
	}

	return TrendReport{
		ProjectKey: projectKeyOrDefault(projectKey),
		Since:      runs[0].StartedAt,
		Until:      runs[len(runs)-1].StartedAt,
		RunCount:   len(points),
		Codes:      codes,
		Points:     points,
	}, nil
}
