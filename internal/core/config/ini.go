package config

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/ini.v1"
)

const iniSection = "pydocstyle"

func decodeINI(data []byte) (*Config, error) {
	file, err := ini.LoadSources(ini.LoadOptions{
		AllowPythonMultilineValues: true,
		SpaceBeforeInlineComment:   true,
	}, data)
	if err != nil {
		return nil, err
	}
	if !file.HasSection(iniSection) {
		return nil, ErrNoSection
	}

	cfg := &Config{}
	for _, key := range file.Section(iniSection).Keys() {
		if err := setINIKey(cfg, key); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// setINIKey maps one key of the [pydocstyle] section. Dashes and
// underscores are interchangeable in key names.
func setINIKey(cfg *Config, key *ini.Key) error {
	value := strings.TrimSpace(key.String())
	switch name := strings.ReplaceAll(strings.ToLower(key.Name()), "-", "_"); name {
	case "convention":
		cfg.Convention = value
	case "select":
		cfg.Select = SplitList(value)
	case "ignore":
		cfg.Ignore = SplitList(value)
	case "add_select":
		cfg.AddSelect = SplitList(value)
	case "add_ignore":
		cfg.AddIgnore = SplitList(value)
	case "match":
		cfg.Match = value
	case "match_dir":
		cfg.MatchDir = value
	case "exclude":
		cfg.Exclude = SplitList(value)
	case "ignore_decorators":
		cfg.IgnoreDecorators = value
	case "property_decorators":
		cfg.PropertyDecorators = SplitList(value)
	case "ignore_inline_noqa":
		b, err := key.Bool()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		cfg.IgnoreInlineNoqa = b
	case "verbose":
		b, err := key.Bool()
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		cfg.Verbose = b
	case "workers":
		n, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("%s: %w", name, err)
		}
		cfg.Workers = n
	default:
		return fmt.Errorf("unknown configuration keys: %s", key.Name())
	}
	return nil
}
