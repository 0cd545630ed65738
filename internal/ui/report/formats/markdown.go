package formats

import (
	"fmt"
	"strings"
	"time"

	"pydoclint/internal/engine/checker"
	"pydoclint/internal/shared/util"
)

type MarkdownReportOptions struct {
	ProjectName     string
	TableOfContents bool
	// Verbosity "summary" omits the per-file sections.
	Verbosity string
}

type MarkdownGenerator struct{}

func NewMarkdownGenerator() *MarkdownGenerator {
	return &MarkdownGenerator{}
}

// Generate renders a front-mattered summary followed by violations grouped
// by file.
func (m *MarkdownGenerator) Generate(data ReportData, opts MarkdownReportOptions) (string, error) {
	verbosity := normalizeReportVerbosity(opts.Verbosity)

	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("title: Docstring Report\n")
	b.WriteString("project: " + nonEmpty(opts.ProjectName, "unknown") + "\n")
	b.WriteString("generated_at: " + data.generatedAt().Format(time.RFC3339) + "\n")
	b.WriteString("version: " + nonEmpty(data.Version, "dev") + "\n")
	b.WriteString("convention: " + nonEmpty(data.Convention, "unknown") + "\n")
	b.WriteString("---\n\n")

	b.WriteString("# Docstring Report\n\n")
	if opts.TableOfContents {
		b.WriteString("## Table of Contents\n")
		b.WriteString("- [Summary](#summary)\n")
		b.WriteString("- [Codes](#codes)\n")
		if verbosity == "full" {
			b.WriteString("- [Files](#files)\n")
		}
		if len(data.Failures) > 0 {
			b.WriteString("- [Unchecked Files](#unchecked-files)\n")
		}
		b.WriteString("\n")
	}

	byFile := make(map[string][]checker.Violation)
	counts := make(map[string]int)
	for _, v := range data.Violations {
		path := data.displayPath(v.File)
		byFile[path] = append(byFile[path], v)
		counts[v.Code]++
	}

	b.WriteString("## Summary\n")
	b.WriteString("| Metric | Value |\n")
	b.WriteString("| --- | --- |\n")
	b.WriteString(fmt.Sprintf("| Files Checked | %d |\n", data.FileCount))
	b.WriteString(fmt.Sprintf("| Files With Violations | %d |\n", len(byFile)))
	b.WriteString(fmt.Sprintf("| Violations | %d |\n", len(data.Violations)))
	b.WriteString(fmt.Sprintf("| Unchecked Files | %d |\n\n", len(data.Failures)))

	b.WriteString("## Codes\n")
	if len(counts) == 0 {
		b.WriteString("No violations.\n\n")
	} else {
		b.WriteString("| Code | Count | Description |\n")
		b.WriteString("| --- | --- | --- |\n")
		for _, code := range util.SortedStringKeys(counts) {
			description := ""
			if msg, ok := checker.MessageFor(code); ok {
				description = msg.Short
			}
			b.WriteString(fmt.Sprintf("| %s | %d | %s |\n", code, counts[code], escapeCell(description)))
		}
		b.WriteString("\n")
	}

	if verbosity == "full" && len(byFile) > 0 {
		b.WriteString("## Files\n\n")
		for _, path := range util.SortedStringKeys(byFile) {
			b.WriteString(fmt.Sprintf("### `%s`\n", path))
			b.WriteString("| Line | Definition | Code | Message |\n")
			b.WriteString("| --- | --- | --- | --- |\n")
			for _, v := range byFile[path] {
				b.WriteString(fmt.Sprintf("| %d | %s `%s` | %s | %s |\n",
					v.Line, v.NodeKind, v.NodeName, v.Code, escapeCell(v.Message)))
			}
			b.WriteString("\n")
		}
	}

	if len(data.Failures) > 0 {
		b.WriteString("## Unchecked Files\n")
		for _, f := range data.Failures {
			b.WriteString(fmt.Sprintf("- `%s`: %s\n", data.displayPath(f.Path), f.Message))
		}
		b.WriteString("\n")
	}

	return b.String(), nil
}

func normalizeReportVerbosity(v string) string {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "summary":
		return "summary"
	default:
		return "full"
	}
}

func escapeCell(value string) string {
	return strings.ReplaceAll(strings.ReplaceAll(value, "|", `\|`), "\n", " ")
}
