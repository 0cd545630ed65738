package cli

import (
	"strings"
	"testing"
	"time"

	"pydoclint/internal/core/app"
	"pydoclint/internal/data/history"
	"pydoclint/internal/engine/checker"

	tea "github.com/charmbracelet/bubbletea"
)

func sampleResult() *app.Result {
	return &app.Result{
		Convention: "pep257",
		Files:      []string{"/repo/pkg/a.py", "/repo/pkg/b.py"},
		Violations: []checker.Violation{
			{Code: "D100", Message: "Missing docstring in public module", File: "/repo/pkg/a.py", Line: 1, NodeKind: checker.KindModule, NodeName: "a"},
			{Code: "D401", Message: "First line should be in imperative mood", File: "/repo/pkg/a.py", Line: 4, NodeKind: checker.KindFunction, NodeName: "run"},
			{Code: "D401", Message: "First line should be in imperative mood", File: "/repo/pkg/b.py", Line: 9, NodeKind: checker.KindFunction, NodeName: "stop"},
		},
		Failures: []app.ParseFailure{{Path: "/repo/pkg/c.py", Message: "invalid syntax"}},
	}
}

func TestModel_UpdateAndPanelFlow(t *testing.T) {
	m := initialModel("/repo", nil)

	updated, _ := m.Update(updateMsg{result: sampleResult()})
	state, ok := updated.(model)
	if !ok {
		t.Fatalf("expected model type, got %T", updated)
	}
	if len(state.violationList.Items()) != 4 {
		t.Fatalf("expected 4 violation items, got %d", len(state.violationList.Items()))
	}
	if len(state.codeList.Items()) != 2 {
		t.Fatalf("expected 2 code items, got %d", len(state.codeList.Items()))
	}
	first := state.violationList.Items()[0].(item)
	if first.title != "D100 pkg/a.py:1" {
		t.Fatalf("unexpected first item title %q", first.title)
	}

	updated, _ = state.Update(tea.KeyMsg{Type: tea.KeyTab})
	state = updated.(model)
	if state.mode != panelCodes {
		t.Fatalf("expected code panel after tab, got %v", state.mode)
	}

	updated, _ = state.Update(tea.KeyMsg{Type: tea.KeyTab})
	state = updated.(model)
	if state.mode != panelViolations {
		t.Fatalf("expected violations panel after second tab, got %v", state.mode)
	}
}

func TestModel_TrendToggleAndChangedFiles(t *testing.T) {
	trend := &history.TrendReport{
		RunCount: 2,
		Since:    time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC),
		Codes:    []string{"D100", "D401"},
		Points: []history.TrendPoint{
			{Violations: 1, Codes: map[string]int{"D100": 1}},
			{Violations: 3, DeltaViolations: 2, Codes: map[string]int{"D100": 1, "D401": 2}, DeltaCodes: map[string]int{"D401": 2}},
		},
	}
	m := initialModel("/repo", nil)
	updated, _ := m.Update(updateMsg{result: sampleResult(), changed: []string{"/repo/pkg/b.py"}, trend: trend})
	state := updated.(model)
	if state.trendReport != trend {
		t.Fatal("expected trend report from update")
	}

	updated, _ = state.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'t'}})
	state = updated.(model)
	if !state.showTrend {
		t.Fatal("expected trend overlay toggled on")
	}

	overlay := renderTrendOverlay(state.trendReport)
	for _, want := range []string{"Violations: 3 (+2)", "D401: 2 (+2)"} {
		if !strings.Contains(overlay, want) {
			t.Fatalf("expected %q in overlay:\n%s", want, overlay)
		}
	}
	if got := renderChanged(state); !strings.Contains(got, "pkg/b.py") {
		t.Fatalf("expected changed file in %q", got)
	}
}

func TestModel_CodeSummary(t *testing.T) {
	m := initialModel("/repo", nil)
	updated, _ := m.Update(updateMsg{result: sampleResult()})
	state := updated.(model)

	summary := renderCodeSummary(state)
	if !strings.Contains(summary, "Code: D100") || !strings.Contains(summary, "Occurrences: 1 in 1 files") {
		t.Fatalf("unexpected summary:\n%s", summary)
	}
}

func TestSelectedSourceTarget(t *testing.T) {
	m := initialModel("/repo", nil)
	if _, ok := selectedSourceTarget(m); ok {
		t.Fatal("expected no target on an empty list")
	}

	updated, _ := m.Update(updateMsg{result: sampleResult()})
	state := updated.(model)
	target, ok := selectedSourceTarget(state)
	if !ok {
		t.Fatal("expected a source target")
	}
	if target.file != "/repo/pkg/a.py" || target.line != 1 {
		t.Fatalf("unexpected target %+v", target)
	}
}

func TestModel_QuitKeys(t *testing.T) {
	m := initialModel("/repo", nil)
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune{'q'}},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		if cmd == nil {
			t.Fatalf("expected quit command for %q", key.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Fatalf("expected tea.QuitMsg for %q", key.String())
		}
	}
}
