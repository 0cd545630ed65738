package cli

import (
	"fmt"
	"strings"

	"pydoclint/internal/data/history"
	"pydoclint/internal/engine/checker"
)

func renderHelp(m model) string {
	keys := "Keys: tab panel | / filter | enter/o open source | t trend overlay | q quit"
	if m.mode == panelCodes {
		keys = "Keys: tab panel | / filter | t trend overlay | q quit"
	}
	return statusStyle.Render(keys)
}

func renderCodePanel(m model) string {
	return m.codeList.View() + "\n\n" + renderCodeSummary(m)
}

func renderCodeSummary(m model) string {
	if len(m.codes) == 0 {
		return statusStyle.Render("No violations.")
	}
	idx := m.codeList.Index()
	if idx < 0 || idx >= len(m.codes) {
		idx = 0
	}
	selected := m.codes[idx]
	msg, _ := checker.MessageFor(selected.code)
	group, _ := checker.GroupFor(selected.code)

	files := make(map[string]bool)
	for _, v := range m.violations {
		if v.Code == selected.code {
			files[v.File] = true
		}
	}
	return strings.Join([]string{
		"Selected Code",
		fmt.Sprintf("  Code: %s", selected.code),
		fmt.Sprintf("  Group: %s", group.Name),
		fmt.Sprintf("  Description: %s", msg.Short),
		fmt.Sprintf("  Occurrences: %d in %d files", selected.count, len(files)),
	}, "\n")
}

func renderChanged(m model) string {
	names := make([]string, 0, len(m.changed))
	for _, path := range m.changed {
		names = append(names, m.displayPath(path))
	}
	return statusStyle.Render("Re-checked: " + strings.Join(names, ", "))
}

func renderTrendOverlay(report *history.TrendReport) string {
	if report == nil || len(report.Points) == 0 {
		return statusStyle.Render("Trend overlay unavailable (enable history to record runs).")
	}
	last := report.Points[len(report.Points)-1]
	lines := []string{
		"Trend Overlay",
		fmt.Sprintf("  Runs: %d since %s", report.RunCount, report.Since.Local().Format("2006-01-02 15:04")),
		fmt.Sprintf("  Violations: %d (%+d)", last.Violations, last.DeltaViolations),
	}
	for _, code := range report.Codes {
		delta, ok := last.DeltaCodes[code]
		if !ok {
			continue
		}
		lines = append(lines, fmt.Sprintf("  %s: %d (%+d)", code, last.Codes[code], delta))
	}
	return strings.Join(lines, "\n")
}
