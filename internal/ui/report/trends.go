package report

import (
	"encoding/json"
	"fmt"
	"strings"

	"pydoclint/internal/data/history"
)

// RenderTrendTSV writes one row per run with a column per code. Deltas
// against the previous run follow each count in parentheses.
func RenderTrendTSV(report history.TrendReport) ([]byte, error) {
	var buf strings.Builder

	buf.WriteString("Started\tCommit\tFiles\tViolations\tDelta")
	for _, code := range report.Codes {
		buf.WriteString("\t" + code)
	}
	buf.WriteString("\n")

	for _, point := range report.Points {
		buf.WriteString(fmt.Sprintf("%s\t%s\t%d\t%d\t%+d",
			point.StartedAt.Format("2006-01-02T15:04:05Z07:00"),
			point.CommitHash,
			point.FileCount,
			point.Violations,
			point.DeltaViolations,
		))
		for _, code := range report.Codes {
			cell := fmt.Sprintf("%d", point.Codes[code])
			if d := point.DeltaCodes[code]; d != 0 {
				cell += fmt.Sprintf(" (%+d)", d)
			}
			buf.WriteString("\t" + cell)
		}
		buf.WriteString("\n")
	}

	return []byte(buf.String()), nil
}

func RenderTrendJSON(report history.TrendReport) ([]byte, error) {
	return json.MarshalIndent(report, "", "  ")
}
