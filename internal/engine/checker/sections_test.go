package checker

import (
	"strings"
	"testing"
)

func codesOf(findings []Finding) []string {
	out := make([]string, 0, len(findings))
	for _, f := range findings {
		out = append(out, f.Code)
	}
	return out
}

func hasCode(findings []Finding, code string) (Finding, bool) {
	for _, f := range findings {
		if f.Code == code {
			return f, true
		}
	}
	return Finding{}, false
}

func TestFindSections_RequiresParagraphBreak(t *testing.T) {
	lines := []string{
		"Summary.",
		"",
		"Some text about",
		"Returns",
		"-------",
		"",
	}
	if got := FindSections(lines, NumpySectionNames); len(got) != 0 {
		t.Fatalf("prose line should not be a section, got %+v", got)
	}

	lines[2] = "Some text about it."
	got := FindSections(lines, NumpySectionNames)
	if len(got) != 1 || got[0].Name != "Returns" || !got[0].IsLast {
		t.Fatalf("expected one last Returns section, got %+v", got)
	}
	if len(got[0].FollowingLines) != 1 || got[0].FollowingLines[0] != "-------" {
		t.Errorf("body should stop before the closing line, got %q", got[0].FollowingLines)
	}
}

func TestFindSections_RejectsSuffix(t *testing.T) {
	lines := []string{"Summary.", "", "Returns: the value.", ""}
	if got := FindSections(lines, GoogleSectionNames); len(got) != 0 {
		t.Fatalf("expected no sections, got %+v", got)
	}
}

func TestAnalyzeSections_NumpyMissingArgs(t *testing.T) {
	params := []Parameter{{Name: "self"}, {Name: "a"}, {Name: "b"}, {Name: "_c"}, {Name: "args", Variadic: true}}
	fn, d := newFunction(t, "f", params, "Compute something.\n\n    Parameters\n    ----------\n    a : int\n        First value.\n    ")

	report := analyzeSections(fn, d)
	if report.Style != StyleNumpy {
		t.Fatalf("Style = %v, want numpy", report.Style)
	}
	f, ok := hasCode(report.Findings, "D417")
	if !ok {
		t.Fatalf("expected D417, got %v", codesOf(report.Findings))
	}
	want := "Missing argument descriptions in the docstring (argument(s) b are missing descriptions in 'f' docstring)"
	if f.Text != want {
		t.Errorf("D417 text = %q, want %q", f.Text, want)
	}
	if !report.Documented["a"] {
		t.Errorf("a should be documented: %v", report.Documented)
	}
}

func TestAnalyzeSections_GroupedNumpyParameters(t *testing.T) {
	params := []Parameter{{Name: "x"}, {Name: "y"}}
	fn, d := newFunction(t, "f", params, "Summary.\n\n    Parameters\n    ----------\n    x, y : float\n        Coordinates.\n\n    ")

	report := analyzeSections(fn, d)
	if _, ok := hasCode(report.Findings, "D417"); ok {
		t.Fatalf("grouped parameters should be documented, got %v", codesOf(report.Findings))
	}
}

func TestAnalyzeSections_StyleExclusivity(t *testing.T) {
	params := []Parameter{{Name: "a"}, {Name: "b"}}
	fn, d := newFunction(t, "f", params, "Summary.\n\n    Parameters\n    ----------\n    a : int\n        A.\n\n    Args:\n        b: B.\n    ")

	report := analyzeSections(fn, d)
	if report.Style != StyleNumpy {
		t.Fatalf("Style = %v, want numpy", report.Style)
	}
	if _, ok := hasCode(report.Findings, "D416"); ok {
		t.Error("google checks must not run on a numpy docstring")
	}
	f, ok := hasCode(report.Findings, "D417")
	if !ok || !strings.Contains(f.Text, "argument(s) b are") {
		t.Fatalf("expected b to be reported missing, got %v", report.Findings)
	}
}

func TestAnalyzeSections_UnderlineLength(t *testing.T) {
	fn, d := newFunction(t, "f", nil, "Summary.\n\n    Returns\n    ---\n    int\n        Value.\n    ")

	report := analyzeSections(fn, d)
	f, ok := hasCode(report.Findings, "D409")
	if !ok {
		t.Fatalf("expected D409, got %v", codesOf(report.Findings))
	}
	want := "Section underline should match the length of its name (Expected 7 dashes in section 'Returns', got 3)"
	if f.Text != want {
		t.Errorf("D409 text = %q, want %q", f.Text, want)
	}
	if _, ok := hasCode(report.Findings, "D413"); !ok {
		t.Errorf("expected D413 for the last section, got %v", codesOf(report.Findings))
	}
}

func TestAnalyzeSections_NumpyHeaderChecks(t *testing.T) {
	fn, d := newFunction(t, "f", nil, "Summary.\n\n    returns:\n\n    -------\n    int\n\n    ")

	report := analyzeSections(fn, d)
	for _, code := range []string{"D405", "D406", "D408"} {
		if _, ok := hasCode(report.Findings, code); !ok {
			t.Errorf("expected %s, got %v", code, codesOf(report.Findings))
		}
	}
	f, _ := hasCode(report.Findings, "D405")
	if f.Text != "Section name should be properly capitalized ('Returns', not 'returns')" {
		t.Errorf("D405 text = %q", f.Text)
	}
}

func TestAnalyzeSections_BlankLines(t *testing.T) {
	cases := []struct {
		name string
		doc  string
		want []string
	}{
		{
			name: "no blank between sections",
			doc:  "Summary.\n\n    Parameters\n    ----------\n    x : int\n        X.\n    Returns\n    -------\n    int\n        Value.\n\n    ",
			want: []string{"D410", "D411"},
		},
		{
			name: "prose directly above header",
			doc:  "Summary.\n\n    Some prose.\n    Returns\n    -------\n    int\n        Value.\n\n    ",
			want: []string{"D411"},
		},
		{
			name: "blank after underline",
			doc:  "Summary.\n\n    Returns\n    -------\n\n    int\n        Value.\n\n    ",
			want: []string{"D412"},
		},
		{
			name: "well formed",
			doc:  "Summary.\n\n    Returns\n    -------\n    int\n        Value.\n\n    ",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fn, d := newFunction(t, "f", []Parameter{{Name: "x"}}, tc.doc)

			var got []string
			for _, code := range codesOf(analyzeSections(fn, d).Findings) {
				if code == "D410" || code == "D411" || code == "D412" {
					got = append(got, code)
				}
			}
			if strings.Join(got, ",") != strings.Join(tc.want, ",") {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestGoogleArgs_BlankFirstLine(t *testing.T) {
	ctx := SectionContext{FollowingLines: []string{"    ", "a: The a.", "b: The b."}}

	got := googleArgs(ctx)
	if !got["a"] || !got["b"] {
		t.Errorf("expected a and b documented, got %v", got)
	}
}

func TestAnalyzeSections_EmptySection(t *testing.T) {
	fn, d := newFunction(t, "f", nil, "Summary.\n\n    Returns\n    -------\n\n    Raises\n    ------\n    ValueError\n        Bad.\n\n    ")

	report := analyzeSections(fn, d)
	f, ok := hasCode(report.Findings, "D414")
	if !ok || f.Text != "Section has no content ('Returns')" {
		t.Fatalf("expected D414 for Returns, got %v", report.Findings)
	}
}

func TestAnalyzeSections_GoogleArgs(t *testing.T) {
	params := []Parameter{{Name: "a"}, {Name: "b"}, {Name: "c"}}
	fn, d := newFunction(t, "f", params, "Summary.\n\n    Args:\n        a (int): The a.\n        b: The b\n            continued.\n\n    Note:\n        Stuff.\n    ")

	report := analyzeSections(fn, d)
	if report.Style != StyleGoogle {
		t.Fatalf("Style = %v, want google", report.Style)
	}
	if !report.Documented["a"] || !report.Documented["b"] {
		t.Errorf("expected a and b documented, got %v", report.Documented)
	}
	f, ok := hasCode(report.Findings, "D417")
	if !ok || !strings.Contains(f.Text, "argument(s) c are") {
		t.Fatalf("expected c missing, got %v", report.Findings)
	}
	if _, ok := hasCode(report.Findings, "D416"); ok {
		t.Errorf("headers end with a colon, got %v", codesOf(report.Findings))
	}
}

func TestAnalyzeSections_GoogleColon(t *testing.T) {
	fn, d := newFunction(t, "f", nil, "Summary.\n\n    Note\n        Stuff.\n\n    ")

	report := analyzeSections(fn, d)
	f, ok := hasCode(report.Findings, "D416")
	if !ok || f.Text != "Section name should end with a colon ('Note:', not 'Note')" {
		t.Fatalf("expected D416, got %v", report.Findings)
	}
}

// A Returns: header is a valid NumPy header too, so the docstring is
// classified NumPy and its Args section is not parsed.
func TestAnalyzeSections_SharedNameWinsForNumpy(t *testing.T) {
	fn, d := newFunction(t, "f", []Parameter{{Name: "a"}}, "Summary.\n\n    Args:\n        a: The a.\n\n    Returns:\n        Stuff.\n\n    ")

	report := analyzeSections(fn, d)
	if report.Style != StyleNumpy {
		t.Fatalf("Style = %v, want numpy", report.Style)
	}
	if _, ok := hasCode(report.Findings, "D406"); !ok {
		t.Errorf("expected D406 for the colon suffix, got %v", codesOf(report.Findings))
	}
}

func TestAnalyzeSections_OneLiner(t *testing.T) {
	fn, d := newFunction(t, "f", nil, "Returns")
	if report := analyzeSections(fn, d); report.Style != StyleNone || len(report.Findings) != 0 {
		t.Fatalf("one line docstrings have no sections, got %+v", report)
	}
}

func TestDedent(t *testing.T) {
	got := dedent("    a\n      b\n  \n    c")
	if got != "a\n  b\n\nc" {
		t.Errorf("dedent = %q", got)
	}
}
