package config

import (
	"os"
	"path/filepath"
	"strings"
)

// ProjectRoot is the directory holding the configuration file, or the first
// checked path when the defaults are in use.
func ProjectRoot(cfg *Config, paths []string) string {
	if cfg.Source != "" {
		return filepath.Dir(cfg.Source)
	}
	for _, p := range paths {
		if strings.TrimSpace(p) == "" {
			continue
		}
		abs, err := filepath.Abs(p)
		if err != nil {
			continue
		}
		if info, err := os.Stat(abs); err == nil && !info.IsDir() {
			return filepath.Dir(abs)
		}
		return abs
	}
	cwd, err := os.Getwd()
	if err != nil {
		return "."
	}
	return cwd
}

func ResolveRelative(base, value string) string {
	raw := strings.TrimSpace(value)
	if raw == "" {
		return filepath.Clean(base)
	}
	if filepath.IsAbs(raw) {
		return filepath.Clean(raw)
	}
	return filepath.Clean(filepath.Join(base, raw))
}

// HistoryPath resolves the history database against the project root.
func HistoryPath(cfg *Config, root string) string {
	return ResolveRelative(root, cfg.History.Path)
}

// StateDir is $XDG_STATE_HOME/pydoclint, falling back to ~/.local/state.
func StateDir() string {
	if dir := strings.TrimSpace(os.Getenv("XDG_STATE_HOME")); dir != "" {
		return filepath.Join(dir, "pydoclint")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), "pydoclint")
	}
	return filepath.Join(home, ".local", "state", "pydoclint")
}
