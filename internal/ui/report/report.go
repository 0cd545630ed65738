package report

import (
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"pydoclint/internal/core/app"
	"pydoclint/internal/core/errors"
	"pydoclint/internal/shared/version"
	"pydoclint/internal/ui/report/formats"
)

// Format names accepted by Render.
const (
	FormatText     = "text"
	FormatJSON     = "json"
	FormatSARIF    = "sarif"
	FormatMarkdown = "markdown"
	FormatTSV      = "tsv"
)

// Formats lists the supported report formats.
func Formats() []string {
	return []string{FormatText, FormatJSON, FormatSARIF, FormatMarkdown, FormatTSV}
}

// ParseFormat validates a format name, case-insensitively.
func ParseFormat(name string) (string, error) {
	format := strings.ToLower(strings.TrimSpace(name))
	if format == "" {
		return FormatText, nil
	}
	if !slices.Contains(Formats(), format) {
		return "", errors.Newf(errors.CodeValidationError, "unknown format %q (expected one of %s)", name, strings.Join(Formats(), ", "))
	}
	return format, nil
}

// FromResult converts a run into report data anchored at projectRoot.
func FromResult(result *app.Result, projectRoot string) formats.ReportData {
	data := formats.ReportData{
		ProjectRoot: projectRoot,
		Version:     version.String(),
	}
	if result == nil {
		return data
	}
	data.Convention = result.Convention
	data.GeneratedAt = result.StartedAt
	data.Duration = result.Duration
	data.FileCount = result.FileCount()
	data.Violations = result.Violations
	for _, f := range result.Failures {
		data.Failures = append(data.Failures, formats.Failure{Path: f.Path, Message: f.Message})
	}
	return data
}

// Render produces the report in the requested format.
func Render(format string, data formats.ReportData) ([]byte, error) {
	switch format {
	case FormatText, "":
		return []byte(formats.GenerateText(data)), nil
	case FormatJSON:
		return formats.GenerateJSON(data)
	case FormatSARIF:
		return formats.GenerateSARIF(data)
	case FormatMarkdown:
		out, err := formats.NewMarkdownGenerator().Generate(data, formats.MarkdownReportOptions{
			ProjectName:     filepath.Base(data.ProjectRoot),
			TableOfContents: true,
		})
		return []byte(out), err
	case FormatTSV:
		gen := formats.NewTSVGenerator()
		out, err := gen.Generate(data)
		if err != nil {
			return nil, err
		}
		if len(data.Failures) > 0 {
			failures, err := gen.GenerateFailures(data)
			if err != nil {
				return nil, err
			}
			out += "\n" + failures
		}
		return []byte(out), nil
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}
}
