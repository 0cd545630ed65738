package history

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), 0)
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_RecordAndRecent(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC)

	first, err := store.Record(ctx, Run{
		StartedAt:  base,
		Duration:   1500 * time.Millisecond,
		Convention: "pep257",
		FileCount:  8,
		Violations: 3,
		Codes:      map[string]int{"D100": 1, "D401": 2},
	})
	if err != nil {
		t.Fatalf("record first run: %v", err)
	}
	if first.ID == "" {
		t.Fatal("expected a generated run id")
	}
	if first.ProjectKey != "default" {
		t.Fatalf("expected default project key, got %q", first.ProjectKey)
	}

	if _, err := store.Record(ctx, Run{
		StartedAt:     base.Add(time.Hour),
		Convention:    "pep257",
		CommitHash:    "abc123",
		FileCount:     9,
		ParseFailures: 1,
		Violations:    1,
		Codes:         map[string]int{"D401": 1},
	}); err != nil {
		t.Fatalf("record second run: %v", err)
	}

	runs, err := store.Recent(ctx, "", 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("expected 2 runs, got %d", len(runs))
	}
	if runs[0].ID != first.ID {
		t.Fatalf("expected oldest run first, got %+v", runs[0])
	}
	if runs[0].Duration != 1500*time.Millisecond {
		t.Fatalf("expected duration to roundtrip, got %v", runs[0].Duration)
	}
	if runs[0].Codes["D401"] != 2 || runs[0].Codes["D100"] != 1 {
		t.Fatalf("unexpected codes for first run: %v", runs[0].Codes)
	}
	if runs[1].CommitHash != "abc123" || runs[1].ParseFailures != 1 {
		t.Fatalf("unexpected second run: %+v", runs[1])
	}

	limited, err := store.Recent(ctx, "", 1)
	if err != nil {
		t.Fatalf("recent limited: %v", err)
	}
	if len(limited) != 1 || limited[0].FileCount != 9 {
		t.Fatalf("expected only the newest run, got %+v", limited)
	}
}

func TestStore_Prune(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 5; i++ {
		if _, err := store.Record(ctx, Run{
			StartedAt:  base.Add(time.Duration(i) * time.Minute),
			Violations: i,
			Codes:      map[string]int{"D200": i + 1},
		}); err != nil {
			t.Fatal(err)
		}
	}

	removed, err := store.Prune(ctx, "", 2)
	if err != nil {
		t.Fatalf("prune: %v", err)
	}
	if removed != 3 {
		t.Fatalf("expected 3 removed runs, got %d", removed)
	}

	runs, err := store.Recent(ctx, "", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 2 || runs[0].Violations != 3 || runs[1].Violations != 4 {
		t.Fatalf("unexpected remaining runs: %+v", runs)
	}

	var orphans int
	if err := store.db.QueryRow(`SELECT COUNT(*) FROM run_codes WHERE run_id NOT IN (SELECT id FROM runs)`).Scan(&orphans); err != nil {
		t.Fatal(err)
	}
	if orphans != 0 {
		t.Fatalf("expected code rows to be deleted with their runs, found %d", orphans)
	}

	if _, err := store.Prune(ctx, "", 0); err == nil {
		t.Fatal("expected error for keep=0")
	}
}

func TestStore_ProjectIsolation(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()

	if _, err := store.Record(ctx, Run{ProjectKey: "project-a", Violations: 1}); err != nil {
		t.Fatal(err)
	}
	if _, err := store.Record(ctx, Run{ProjectKey: "project-b", Violations: 2}); err != nil {
		t.Fatal(err)
	}

	aRuns, err := store.Recent(ctx, "project-a", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(aRuns) != 1 || aRuns[0].Violations != 1 {
		t.Fatalf("unexpected project-a runs: %+v", aRuns)
	}
}

func TestStore_OpenRejectsDirectoryPath(t *testing.T) {
	_, err := Open(t.TempDir(), 0)
	if err == nil {
		t.Fatal("expected open error for directory path")
	}
	if !strings.Contains(err.Error(), "is a directory") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStore_OpenCorruptDBPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	if err := os.WriteFile(path, []byte("this is not sqlite"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err := Open(path, 0)
	if err == nil {
		t.Fatal("expected sqlite open error")
	}
	lower := strings.ToLower(err.Error())
	if !strings.Contains(lower, "not a database") && !strings.Contains(lower, "schema") {
		t.Fatalf("expected schema/open error, got: %v", err)
	}
}

func TestEnsureSchema_DetectsNewerVersionDrift(t *testing.T) {
	path := filepath.Join(t.TempDir(), "history.db")
	store, err := Open(path, 0)
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	if _, err := store.db.Exec(`INSERT OR REPLACE INTO schema_migrations(version) VALUES (?)`, SchemaVersion+1); err != nil {
		t.Fatal(err)
	}

	db, err := sql.Open(driverName, "file:"+path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	err = EnsureSchema(db)
	if err == nil {
		t.Fatal("expected drift error")
	}
	if !strings.Contains(err.Error(), "newer than supported") {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestBuildTrendReport(t *testing.T) {
	base := time.Date(2026, 2, 13, 10, 0, 0, 0, time.UTC)
	runs := []Run{
		{ID: "a", StartedAt: base, Violations: 3, Codes: map[string]int{"D100": 1, "D401": 2}},
		{ID: "b", StartedAt: base.Add(time.Hour), Violations: 2, Codes: map[string]int{"D401": 1, "D205": 1}},
	}

	report, err := BuildTrendReport("", runs)
	if err != nil {
		t.Fatalf("build report: %v", err)
	}
	if report.RunCount != 2 || report.ProjectKey != "default" {
		t.Fatalf("unexpected report header: %+v", report)
	}
	if got := strings.Join(report.Codes, ","); got != "D100,D205,D401" {
		t.Fatalf("unexpected code union %q", got)
	}
	second := report.Points[1]
	if second.DeltaViolations != -1 {
		t.Fatalf("expected delta_violations=-1, got %d", second.DeltaViolations)
	}
	if second.DeltaCodes["D100"] != -1 || second.DeltaCodes["D205"] != 1 || second.DeltaCodes["D401"] != -1 {
		t.Fatalf("unexpected code deltas: %v", second.DeltaCodes)
	}
	if second.Codes["D100"] != 0 {
		t.Fatalf("expected missing code to count as zero, got %v", second.Codes)
	}
	if len(report.Points[0].DeltaCodes) != 0 {
		t.Fatalf("first point has no deltas, got %v", report.Points[0].DeltaCodes)
	}

	if _, err := BuildTrendReport("p", nil); err == nil {
		t.Fatal("expected error for empty history")
	}
}

func TestResolveCommit_NotARepository(t *testing.T) {
	if got := ResolveCommit(t.TempDir()); got != "" {
		t.Fatalf("expected no commit outside a repository, got %q", got)
	}
}

func TestIsCorruptError(t *testing.T) {
	if !IsCorruptError(errors.New("database disk image is malformed")) {
		t.Fatal("expected malformed sqlite message to be treated as corrupt")
	}
	if IsCorruptError(nil) {
		t.Fatal("nil is not corrupt")
	}
}
