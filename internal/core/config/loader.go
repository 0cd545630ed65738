package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"pydoclint/internal/core/errors"

	"github.com/BurntSushi/toml"
)

// ErrNoSection is returned when a project file exists but carries no
// pydocstyle section.
var ErrNoSection = stderrors.New("no pydocstyle section")

// ProjectFiles are the file names looked for in each directory, in order.
var ProjectFiles = []string{ConfigFileName, "setup.cfg", "tox.ini", "pyproject.toml"}

// Load reads a single configuration file. The format follows the file name:
// pyproject.toml uses [tool.pydocstyle], .cfg and .ini files use [pydocstyle]
// and anything else is read as a pydoclint.toml document.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeNotFound, "read configuration"), errors.CtxPath, path)
	}

	var cfg *Config
	switch ext := strings.ToLower(filepath.Ext(path)); {
	case filepath.Base(path) == "pyproject.toml":
		cfg, err = decodePyproject(data)
	case ext == ".cfg" || ext == ".ini":
		cfg, err = decodeINI(data)
	default:
		cfg, err = decodeTOML(data)
	}
	if err != nil {
		code := errors.CodeConfiguration
		if stderrors.Is(err, ErrNoSection) {
			code = errors.CodeNotFound
		}
		return nil, errors.AddContext(errors.Wrap(err, code, "invalid configuration"), errors.CtxPath, path)
	}
	cfg.Source = path

	applyDefaults(cfg)
	normalize(cfg)
	if err := Validate(cfg); err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeConfiguration, "invalid configuration"), errors.CtxPath, path)
	}
	return cfg, nil
}

// Discover walks up from start and loads the first project file that
// contains a pydocstyle section. Defaults are returned when none does.
func Discover(start string) (*Config, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "resolve start directory")
	}
	if info, err := os.Stat(dir); err == nil && !info.IsDir() {
		dir = filepath.Dir(dir)
	}

	for {
		for _, name := range ProjectFiles {
			candidate := filepath.Join(dir, name)
			if _, err := os.Stat(candidate); err != nil {
				continue
			}
			cfg, err := Load(candidate)
			if errors.IsCode(err, errors.CodeNotFound) {
				continue
			}
			return cfg, err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return Default(), nil
}

func decodeTOML(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, err
	}
	if err := rejectUndecoded(md, 0); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type pyproject struct {
	Tool struct {
		Pydocstyle *Config `toml:"pydocstyle"`
	} `toml:"tool"`
}

func decodePyproject(data []byte) (*Config, error) {
	var doc pyproject
	md, err := toml.Decode(string(data), &doc)
	if err != nil {
		return nil, err
	}
	if doc.Tool.Pydocstyle == nil {
		return nil, ErrNoSection
	}
	if err := rejectUndecoded(md, 2); err != nil {
		return nil, err
	}
	return doc.Tool.Pydocstyle, nil
}

// rejectUndecoded fails on keys that map to no field. With depth 2 only keys
// under tool.pydocstyle are considered, other tools own the rest.
func rejectUndecoded(md toml.MetaData, depth int) error {
	var unknown []string
	for _, key := range md.Undecoded() {
		if depth == 2 && (len(key) < 3 || key[0] != "tool" || key[1] != "pydocstyle") {
			continue
		}
		unknown = append(unknown, strings.Join(key[depth:], "."))
	}
	if len(unknown) > 0 {
		return errors.Newf(errors.CodeConfiguration, "unknown configuration keys: %s", strings.Join(unknown, ", "))
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if strings.TrimSpace(cfg.Convention) == "" {
		cfg.Convention = "pep257"
	}
	if strings.TrimSpace(cfg.Match) == "" {
		cfg.Match = DefaultMatch
	}
	if strings.TrimSpace(cfg.MatchDir) == "" {
		cfg.MatchDir = DefaultMatchDir
	}
	if cfg.PropertyDecorators == nil {
		cfg.PropertyDecorators = List{"property", "cached_property", "functools.cached_property"}
	}

	if strings.TrimSpace(cfg.History.Path) == "" {
		cfg.History.Path = filepath.Join(".pydoclint", "history.db")
	}
	if cfg.History.BusyTimeout <= 0 {
		cfg.History.BusyTimeout = 5 * time.Second
	}
	if cfg.History.Keep == 0 {
		cfg.History.Keep = 10
	}

	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = 500 * time.Millisecond
	}
	if cfg.Watch.RateLimit == 0 {
		cfg.Watch.RateLimit = 2
	}
	if cfg.Watch.Burst == 0 {
		cfg.Watch.Burst = 1
	}
	if len(cfg.Watch.ExcludeDirs) == 0 {
		cfg.Watch.ExcludeDirs = []string{".git", ".venv", "__pycache__", ".tox", "node_modules"}
	}

	if strings.TrimSpace(cfg.Observability.ServiceName) == "" {
		cfg.Observability.ServiceName = "pydoclint"
	}
}

func normalize(cfg *Config) {
	cfg.Convention = strings.ToLower(strings.TrimSpace(cfg.Convention))
	cfg.IgnoreDecorators = strings.TrimSpace(cfg.IgnoreDecorators)
	cfg.Observability.MetricsAddr = strings.TrimSpace(cfg.Observability.MetricsAddr)
	cfg.Observability.OTLPEndpoint = strings.TrimSpace(cfg.Observability.OTLPEndpoint)
	for _, list := range []List{cfg.Select, cfg.Ignore, cfg.AddSelect, cfg.AddIgnore} {
		for i, code := range list {
			list[i] = strings.ToUpper(strings.TrimSpace(code))
		}
	}
}
