package cli

import (
	"path/filepath"

	"pydoclint/internal/core/config"
	"pydoclint/internal/core/errors"
)

// loadConfig reads -config when given, otherwise the project file found
// above the first path, then applies environment and flag overrides.
func loadConfig(opts cliOptions, paths []string) (*config.Config, error) {
	var (
		cfg *config.Config
		err error
	)
	if opts.configPath != "" {
		cfg, err = config.Load(opts.configPath)
	} else {
		cfg, err = config.Discover(paths[0])
	}
	if err != nil {
		return nil, err
	}
	return overrideConfig(opts, cfg)
}

// overrideConfig layers environment variables and then command line flags
// on top of cfg and validates the result.
func overrideConfig(opts cliOptions, cfg *config.Config) (*config.Config, error) {
	config.ApplyEnvOverrides(cfg)
	if err := applyFlagOverrides(opts, cfg); err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, errors.AddContext(errors.Wrap(err, errors.CodeConfiguration, "invalid configuration"), errors.CtxPath, cfg.Source)
	}
	return cfg, nil
}

// applyFlagOverrides copies the flags given on the command line into cfg.
// Any of -select, -ignore and -convention replaces all three file settings.
func applyFlagOverrides(opts cliOptions, cfg *config.Config) error {
	exclusive := 0
	for _, name := range []string{"select", "ignore", "convention"} {
		if opts.isSet(name) {
			exclusive++
		}
	}
	if exclusive > 1 {
		return errors.New(errors.CodeConfiguration, "-select, -ignore and -convention are mutually exclusive")
	}
	if exclusive == 1 {
		cfg.Select, cfg.Ignore = nil, nil
		switch {
		case opts.isSet("select"):
			cfg.Select = config.SplitList(opts.selectCodes)
		case opts.isSet("ignore"):
			cfg.Ignore = config.SplitList(opts.ignoreCodes)
		default:
			cfg.Convention = opts.convention
		}
	}

	if opts.isSet("add-select") {
		cfg.AddSelect = config.SplitList(opts.addSelect)
	}
	if opts.isSet("add-ignore") {
		cfg.AddIgnore = config.SplitList(opts.addIgnore)
	}
	if opts.isSet("match") {
		cfg.Match = opts.match
	}
	if opts.isSet("match-dir") {
		cfg.MatchDir = opts.matchDir
	}
	if opts.isSet("ignore-decorators") {
		cfg.IgnoreDecorators = opts.ignoreDecorators
	}
	if opts.isSet("property-decorators") {
		cfg.PropertyDecorators = config.SplitList(opts.propertyDecorators)
	}
	if opts.isSet("ignore-inline-noqa") {
		cfg.IgnoreInlineNoqa = opts.ignoreInlineNoqa
	}
	if opts.isSet("workers") {
		cfg.Workers = opts.workers
	}
	if opts.isSet("verbose") {
		cfg.Verbose = opts.verbose
	}
	if opts.isSet("history-db") {
		cfg.History.Enabled = true
		cfg.History.Path = opts.historyDB
		if abs, err := filepath.Abs(opts.historyDB); err == nil {
			cfg.History.Path = abs
		}
	}
	if opts.isSet("metrics-addr") {
		cfg.Observability.MetricsAddr = opts.metricsAddr
	}
	return nil
}
