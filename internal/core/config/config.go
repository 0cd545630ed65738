package config

import (
	"fmt"
	"strings"
	"time"
)

const (
	DefaultMatch    = `(?!test_).*\.py`
	DefaultMatchDir = `[^\.].*`
	ConfigFileName  = "pydoclint.toml"
)

// Config is the merged pydoclint configuration. The flat keys are shared by
// every supported file format; the nested tables only exist in pydoclint.toml.
type Config struct {
	Convention         string `toml:"convention"`
	Select             List   `toml:"select"`
	Ignore             List   `toml:"ignore"`
	AddSelect          List   `toml:"add_select"`
	AddIgnore          List   `toml:"add_ignore"`
	Match              string `toml:"match"`
	MatchDir           string `toml:"match_dir"`
	Exclude            List   `toml:"exclude"`
	IgnoreDecorators   string `toml:"ignore_decorators"`
	PropertyDecorators List   `toml:"property_decorators"`
	IgnoreInlineNoqa   bool   `toml:"ignore_inline_noqa"`
	Verbose            bool   `toml:"verbose"`
	Workers            int    `toml:"workers"`

	History       History       `toml:"history"`
	Watch         Watch         `toml:"watch"`
	Observability Observability `toml:"observability"`

	// Source is the file the configuration was read from, empty for defaults.
	Source string `toml:"-"`
}

type History struct {
	Enabled     bool          `toml:"enabled"`
	Path        string        `toml:"path"`
	BusyTimeout time.Duration `toml:"busy_timeout"`
	Keep        int           `toml:"keep"`
}

type Watch struct {
	Debounce     time.Duration `toml:"debounce"`
	RateLimit    float64       `toml:"rate_limit"`
	Burst        int           `toml:"burst"`
	ExcludeDirs  []string      `toml:"exclude_dirs"`
	ExcludeFiles []string      `toml:"exclude_files"`
}

type Observability struct {
	MetricsAddr  string `toml:"metrics_addr"`
	OTLPEndpoint string `toml:"otlp_endpoint"`
	ServiceName  string `toml:"service_name"`
}

// List is a set of names written either as a TOML array or as a comma
// separated string. A nil List means the key was absent.
type List []string

// UnmarshalTOML accepts "D100,D101" as well as ["D100", "D101"].
func (l *List) UnmarshalTOML(v any) error {
	switch value := v.(type) {
	case string:
		*l = SplitList(value)
	case []any:
		out := make(List, 0, len(value))
		for _, item := range value {
			s, ok := item.(string)
			if !ok {
				return fmt.Errorf("expected string list item, got %T", item)
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
		*l = out
	default:
		return fmt.Errorf("expected a string or an array of strings, got %T", v)
	}
	return nil
}

// SplitList splits a comma separated value, dropping empty items. The result
// is never nil.
func SplitList(value string) List {
	out := List{}
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}
