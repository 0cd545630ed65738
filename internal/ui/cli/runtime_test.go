package cli

import (
	"bytes"
	"encoding/json"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"pydoclint/internal/core/app"
	"pydoclint/internal/core/config"
	"pydoclint/internal/core/errors"
	"pydoclint/internal/ui/report"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cleanModule = `"""Module docstring."""


def run():
    """Run the thing."""
`

const dirtyModule = `def run():
    """Returns the thing"""
`

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// runCLI runs the command line and restores the default logger afterwards.
func runCLI(t *testing.T, args ...string) (int, string, string) {
	t.Helper()
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestParseOptions(t *testing.T) {
	opts, err := parseOptions([]string{"-select", "D100,D101", "-format", "json", "-workers", "3", "src", "lib"}, io.Discard)
	require.NoError(t, err)

	assert.Equal(t, "D100,D101", opts.selectCodes)
	assert.Equal(t, "json", opts.format)
	assert.Equal(t, 3, opts.workers)
	assert.Equal(t, []string{"src", "lib"}, opts.paths())
	assert.True(t, opts.isSet("select"))
	assert.False(t, opts.isSet("ignore"))

	opts, err = parseOptions(nil, io.Discard)
	require.NoError(t, err)
	assert.Equal(t, []string{"."}, opts.paths())
}

func TestApplyFlagOverrides(t *testing.T) {
	cfg := config.Default()
	cfg.Ignore = config.List{"D203"}
	opts, err := parseOptions([]string{"-select", "D100", "-add-ignore", "D100", "-match-dir", "src", "-ignore-inline-noqa"}, io.Discard)
	require.NoError(t, err)

	require.NoError(t, applyFlagOverrides(opts, cfg))
	assert.Equal(t, config.List{"D100"}, cfg.Select)
	assert.Nil(t, cfg.Ignore, "a command line code option replaces the file settings")
	assert.Equal(t, config.List{"D100"}, cfg.AddIgnore)
	assert.Equal(t, "src", cfg.MatchDir)
	assert.True(t, cfg.IgnoreInlineNoqa)
}

func TestApplyFlagOverrides_ExclusiveCodeOptions(t *testing.T) {
	opts, err := parseOptions([]string{"-select", "D100", "-convention", "numpy"}, io.Discard)
	require.NoError(t, err)

	err = applyFlagOverrides(opts, config.Default())
	assert.True(t, errors.IsCode(err, errors.CodeConfiguration), "unexpected error: %v", err)
}

func TestApplyFlagOverrides_HistoryDBEnablesHistory(t *testing.T) {
	cfg := config.Default()
	opts, err := parseOptions([]string{"-history-db", "runs.db"}, io.Discard)
	require.NoError(t, err)

	require.NoError(t, applyFlagOverrides(opts, cfg))
	assert.True(t, cfg.History.Enabled)
	assert.True(t, filepath.IsAbs(cfg.History.Path))
}

func TestRun_ExitCodes(t *testing.T) {
	clean := t.TempDir()
	writeFile(t, filepath.Join(clean, "mod.py"), cleanModule)
	dirty := t.TempDir()
	writeFile(t, filepath.Join(dirty, "mod.py"), dirtyModule)
	broken := t.TempDir()
	writeFile(t, filepath.Join(broken, "mod.py"), "def broken(:\n    pass\n")

	tests := []struct {
		name string
		args []string
		want int
	}{
		{name: "unknown flag", args: []string{"-bogus"}, want: 2},
		{name: "unknown format", args: []string{"-format", "xml", clean}, want: 2},
		{name: "clean", args: []string{clean}, want: 0},
		{name: "violations", args: []string{dirty}, want: 1},
		{name: "parse failure", args: []string{broken}, want: 1},
		{name: "bad convention", args: []string{"-convention", "bogus", clean}, want: 1},
		{name: "select and ignore", args: []string{"-select", "D100", "-ignore", "D101", clean}, want: 1},
		{name: "missing path", args: []string{filepath.Join(clean, "nope")}, want: 1},
		{name: "selected away", args: []string{"-select", "D103", dirty}, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			code, _, _ := runCLI(t, tt.args...)
			assert.Equal(t, tt.want, code)
		})
	}
}

func TestRun_Version(t *testing.T) {
	code, stdout, _ := runCLI(t, "-version")
	assert.Equal(t, 0, code)
	assert.True(t, strings.HasPrefix(stdout, "pydoclint "), stdout)
}

func TestRun_TextReport(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mod.py"), dirtyModule)

	code, stdout, _ := runCLI(t, root)
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "mod.py:1 in module 'mod' -> D100")
	assert.Contains(t, stdout, "D401: First line should be in imperative mood")
}

func TestRun_ConfigFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "pydoclint.toml"), "select = \"D100\"\n")
	writeFile(t, filepath.Join(root, "pkg", "mod.py"), dirtyModule)

	code, stdout, _ := runCLI(t, filepath.Join(root, "pkg"))
	assert.Equal(t, 1, code)
	assert.Contains(t, stdout, "D100")
	assert.NotContains(t, stdout, "D401")

	code, _, _ = runCLI(t, "-config", filepath.Join(root, "missing.toml"), root)
	assert.Equal(t, 1, code)
}

func TestRun_JSONOutputFile(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "mod.py"), dirtyModule)
	out := filepath.Join(t.TempDir(), "reports", "pydoclint.json")

	code, stdout, _ := runCLI(t, "-format", "json", "-output", out, root)
	assert.Equal(t, 1, code)
	assert.Empty(t, stdout)

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	var decoded struct {
		Violations []struct {
			File string `json:"file"`
			Code string `json:"code"`
		} `json:"violations"`
	}
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded.Violations, 3)
	assert.Equal(t, "mod.py", decoded.Violations[0].File)
}

func TestRun_ListCodes(t *testing.T) {
	code, stdout, _ := runCLI(t, "-list-codes", "-select", "D100", t.TempDir())
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "Missing Docstrings (D1xx)")
	assert.Contains(t, stdout, "* D100  Missing docstring in public module")
	assert.Contains(t, stdout, "  D401  First line should be in imperative mood")
	assert.Contains(t, stdout, "1 of ")
}

func TestRun_History(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "mod.py")
	writeFile(t, path, dirtyModule)
	db := filepath.Join(t.TempDir(), "history.db")

	code, _, _ := runCLI(t, "-history-db", db, root)
	require.Equal(t, 1, code)
	writeFile(t, path, cleanModule)
	code, _, _ = runCLI(t, "-history-db", db, root)
	require.Equal(t, 0, code)

	code, stdout, _ := runCLI(t, "-history", "-history-db", db, root)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "History: 2 runs")
	assert.Contains(t, stdout, "D401")
}

func TestRun_HistoryEmpty(t *testing.T) {
	root := t.TempDir()
	db := filepath.Join(t.TempDir(), "history.db")

	code, stdout, _ := runCLI(t, "-history", "-history-db", db, root)
	assert.Equal(t, 0, code)
	assert.Contains(t, stdout, "no runs recorded")
}

func TestConfigureLogging_UIModeWritesStateFile(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	var stderr bytes.Buffer
	cleanup := configureLogging(true, false, new(slog.LevelVar), &stderr)
	slog.Info("hello from the ui")
	slog.Debug("hidden")
	cleanup()

	raw, err := os.ReadFile(filepath.Join(state, "pydoclint", "pydoclint.log"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "hello from the ui")
	assert.NotContains(t, string(raw), "hidden")
	assert.Empty(t, stderr.String())

	info, err := os.Stat(filepath.Join(state, "pydoclint", "pydoclint.log"))
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), info.Mode().Perm())
}

func TestConfigureLogging_RefusesSymlink(t *testing.T) {
	state := t.TempDir()
	t.Setenv("XDG_STATE_HOME", state)
	previous := slog.Default()
	t.Cleanup(func() { slog.SetDefault(previous) })

	require.NoError(t, os.MkdirAll(filepath.Join(state, "pydoclint"), 0o700))
	target := filepath.Join(t.TempDir(), "elsewhere.log")
	require.NoError(t, os.Symlink(target, filepath.Join(state, "pydoclint", "pydoclint.log")))

	var stderr bytes.Buffer
	cleanup := configureLogging(true, false, new(slog.LevelVar), &stderr)
	defer cleanup()

	assert.Contains(t, stderr.String(), "refusing to write logs to symlink")
	_, err := os.Stat(target)
	assert.True(t, os.IsNotExist(err))
}

// overlapWriter records whether two writes were ever in flight at once.
type overlapWriter struct {
	active  atomic.Int32
	overlap atomic.Bool
	writes  atomic.Int32
}

func (w *overlapWriter) Write(p []byte) (int, error) {
	if w.active.Add(1) > 1 {
		w.overlap.Store(true)
	}
	time.Sleep(2 * time.Millisecond)
	w.active.Add(-1)
	w.writes.Add(1)
	return len(p), nil
}

func TestReportWriter_SerializesConcurrentUpdates(t *testing.T) {
	sink := &overlapWriter{}
	out := newReportWriter(sink, "", report.FormatJSON, t.TempDir())
	result := &app.Result{Convention: "pep257"}

	var wg sync.WaitGroup
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			out.handleUpdate(app.Update{Result: result})
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(8), sink.writes.Load())
	assert.False(t, sink.overlap.Load(), "report writes overlapped")
}
