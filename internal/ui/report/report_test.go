package report

import (
	"encoding/json"
	"strings"
	"testing"
	"time"

	"pydoclint/internal/core/app"
	"pydoclint/internal/core/errors"
	"pydoclint/internal/data/history"
	"pydoclint/internal/engine/checker"
)

func sampleResult() *app.Result {
	return &app.Result{
		Convention: "google",
		StartedAt:  time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC),
		Duration:   time.Second,
		Files:      []string{"/repo/a.py", "/repo/b.py"},
		Violations: []checker.Violation{
			{Code: "D417", Message: "Missing argument descriptions in the docstring", File: "/repo/a.py", Line: 4, NodeKind: checker.KindFunction, NodeName: "f"},
		},
		Failures: []app.ParseFailure{{Path: "/repo/b.py", Message: "invalid syntax at line 2"}},
	}
}

func TestParseFormat(t *testing.T) {
	cases := map[string]string{"": FormatText, "JSON": FormatJSON, " sarif ": FormatSARIF, "tsv": FormatTSV}
	for in, want := range cases {
		got, err := ParseFormat(in)
		if err != nil {
			t.Fatalf("ParseFormat(%q): %v", in, err)
		}
		if got != want {
			t.Errorf("ParseFormat(%q) = %q, want %q", in, got, want)
		}
	}
	_, err := ParseFormat("xml")
	if !errors.IsCode(err, errors.CodeValidationError) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestFromResult(t *testing.T) {
	data := FromResult(sampleResult(), "/repo")
	if data.FileCount != 2 || data.Convention != "google" || len(data.Failures) != 1 {
		t.Fatalf("unexpected report data %+v", data)
	}
	if data.Version == "" {
		t.Fatal("expected a version")
	}

	empty := FromResult(nil, "/repo")
	if empty.FileCount != 0 || empty.ProjectRoot != "/repo" {
		t.Fatalf("unexpected data for nil result %+v", empty)
	}
}

func TestRender_AllFormats(t *testing.T) {
	data := FromResult(sampleResult(), "/repo")
	for _, format := range Formats() {
		t.Run(format, func(t *testing.T) {
			out, err := Render(format, data)
			if err != nil {
				t.Fatalf("render %s: %v", format, err)
			}
			if !strings.Contains(string(out), "a.py") {
				t.Errorf("%s output does not mention the file:\n%s", format, out)
			}
			if strings.Contains(string(out), "/repo/a.py") {
				t.Errorf("%s output leaks the absolute path", format)
			}
			if format == FormatJSON || format == FormatSARIF {
				if !json.Valid(out) {
					t.Errorf("%s output is not valid JSON", format)
				}
			}
		})
	}

	if _, err := Render("xml", data); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestRenderTrendTSV(t *testing.T) {
	report := history.TrendReport{
		Codes: []string{"D100", "D401"},
		Points: []history.TrendPoint{
			{
				StartedAt:  time.Date(2026, 2, 13, 0, 0, 0, 0, time.UTC),
				CommitHash: "abc123",
				FileCount:  15,
				Violations: 3,
				Codes:      map[string]int{"D100": 1, "D401": 2},
			},
			{
				StartedAt:       time.Date(2026, 2, 14, 0, 0, 0, 0, time.UTC),
				FileCount:       15,
				Violations:      1,
				DeltaViolations: -2,
				Codes:           map[string]int{"D100": 1, "D401": 0},
				DeltaCodes:      map[string]int{"D401": -2},
			},
		},
	}

	out, err := RenderTrendTSV(report)
	if err != nil {
		t.Fatalf("render tsv: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(string(out)), "\n")
	if lines[0] != "Started\tCommit\tFiles\tViolations\tDelta\tD100\tD401" {
		t.Errorf("unexpected header %q", lines[0])
	}
	if lines[1] != "2026-02-13T00:00:00Z\tabc123\t15\t3\t+0\t1\t2" {
		t.Errorf("unexpected first row %q", lines[1])
	}
	if lines[2] != "2026-02-14T00:00:00Z\t\t15\t1\t-2\t1\t0 (-2)" {
		t.Errorf("unexpected second row %q", lines[2])
	}

	raw, err := RenderTrendJSON(report)
	if err != nil || !json.Valid(raw) {
		t.Fatalf("render json: %v", err)
	}
}
