package config

import (
	"fmt"
	"regexp"
	"strings"

	"pydoclint/internal/engine/checker"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/gobwas/glob"
)

var codeRe = regexp.MustCompile(`^D\d{1,3}$`)

// Validate runs every validator and returns the first failure.
func Validate(cfg *Config) error {
	validators := []func(*Config) error{
		validateConvention,
		validateCodes,
		validatePatterns,
		validateExclude,
		validateWorkers,
		validateHistory,
		validateWatch,
	}
	for _, validate := range validators {
		if err := validate(cfg); err != nil {
			return err
		}
	}
	return nil
}

func validateConvention(cfg *Config) error {
	if _, err := checker.ParseConvention(cfg.Convention); err != nil {
		return fmt.Errorf("convention: %w", err)
	}
	return nil
}

func validateCodes(cfg *Config) error {
	if cfg.Select != nil && cfg.Ignore != nil {
		return fmt.Errorf("select and ignore are mutually exclusive")
	}
	lists := map[string]List{
		"select":     cfg.Select,
		"ignore":     cfg.Ignore,
		"add_select": cfg.AddSelect,
		"add_ignore": cfg.AddIgnore,
	}
	for name, list := range lists {
		for _, code := range list {
			if !codeRe.MatchString(code) {
				return fmt.Errorf("%s: invalid error code %q", name, code)
			}
		}
	}
	return nil
}

func validatePatterns(cfg *Config) error {
	if _, err := CompilePattern(cfg.Match); err != nil {
		return fmt.Errorf("match: %w", err)
	}
	if _, err := CompilePattern(cfg.MatchDir); err != nil {
		return fmt.Errorf("match_dir: %w", err)
	}
	if cfg.IgnoreDecorators != "" {
		if _, err := regexp.Compile(cfg.IgnoreDecorators); err != nil {
			return fmt.Errorf("ignore_decorators: %w", err)
		}
	}
	return nil
}

func validateExclude(cfg *Config) error {
	for _, pattern := range cfg.Exclude {
		if !doublestar.ValidatePattern(pattern) {
			return fmt.Errorf("exclude: invalid glob %q", pattern)
		}
	}
	return nil
}

func validateWorkers(cfg *Config) error {
	if cfg.Workers < 0 {
		return fmt.Errorf("workers must be >= 0, got %d", cfg.Workers)
	}
	return nil
}

func validateHistory(cfg *Config) error {
	if strings.TrimSpace(cfg.History.Path) == "" {
		return fmt.Errorf("history.path must not be empty")
	}
	if cfg.History.Keep < 1 {
		return fmt.Errorf("history.keep must be >= 1, got %d", cfg.History.Keep)
	}
	return nil
}

func validateWatch(cfg *Config) error {
	if cfg.Watch.Debounce < 0 {
		return fmt.Errorf("watch.debounce must not be negative")
	}
	if cfg.Watch.RateLimit <= 0 {
		return fmt.Errorf("watch.rate_limit must be > 0")
	}
	if cfg.Watch.Burst < 1 {
		return fmt.Errorf("watch.burst must be >= 1")
	}
	for _, pattern := range append(append([]string(nil), cfg.Watch.ExcludeDirs...), cfg.Watch.ExcludeFiles...) {
		if _, err := glob.Compile(pattern); err != nil {
			return fmt.Errorf("watch: invalid glob %q: %w", pattern, err)
		}
	}
	return nil
}
