package checker

import (
	"regexp"

	"pydoclint/internal/core/errors"
)

// DefaultPropertyDecorators are the decorators that make a method a property.
var DefaultPropertyDecorators = []string{"property", "cached_property", "functools.cached_property"}

// Configuration controls which codes are checked. A nil Select or Ignore
// means the option was not given; Select and Ignore are mutually exclusive.
type Configuration struct {
	Convention Convention
	Select     []string
	Ignore     []string
	AddSelect  []string
	AddIgnore  []string

	// IgnoreDecorators skips every definition with a decorator name it matches.
	IgnoreDecorators   *regexp.Regexp
	PropertyDecorators []string
	// IgnoreInlineNoqa disables "# noqa" comments on definition lines.
	IgnoreInlineNoqa bool
}

// DefaultConfiguration checks the default convention.
func DefaultConfiguration() *Configuration {
	return &Configuration{
		Convention:         DefaultConvention,
		PropertyDecorators: append([]string(nil), DefaultPropertyDecorators...),
	}
}

func (c *Configuration) Validate() error {
	if c.Select != nil && c.Ignore != nil {
		return errors.New(errors.CodeConfiguration, "Cannot pass both select and ignore. They are mutually exclusive.")
	}
	if c.Convention != "" {
		if _, err := ParseConvention(string(c.Convention)); err != nil {
			return errors.Wrap(err, errors.CodeConfiguration, "invalid convention")
		}
	}
	return nil
}

// EffectiveCodes resolves the codes to check: select when given, otherwise
// every code minus ignore when given, otherwise the convention defaults.
// AddSelect is then added and AddIgnore removed.
func (c *Configuration) EffectiveCodes(rules *RuleSet) (map[string]bool, error) {
	if err := c.Validate(); err != nil {
		return nil, err
	}

	codes := make(map[string]bool)
	switch {
	case c.Select != nil:
		for _, code := range c.Select {
			codes[code] = true
		}
	case c.Ignore != nil:
		codes = ConventionAll.Codes(rules)
		for _, code := range c.Ignore {
			delete(codes, code)
		}
	default:
		convention := c.Convention
		if convention == "" {
			convention = DefaultConvention
		}
		codes = convention.Codes(rules)
	}

	for _, code := range c.AddSelect {
		codes[code] = true
	}
	for _, code := range c.AddIgnore {
		delete(codes, code)
	}
	return codes, nil
}

// IsPropertyDecorator reports whether name is a configured property decorator.
// A nil PropertyDecorators falls back to DefaultPropertyDecorators.
func (c *Configuration) IsPropertyDecorator(name string) bool {
	decorators := c.PropertyDecorators
	if decorators == nil {
		decorators = DefaultPropertyDecorators
	}
	for _, d := range decorators {
		if d == name {
			return true
		}
	}
	return false
}
