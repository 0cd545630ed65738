package config

import (
	"regexp"

	"pydoclint/internal/core/errors"
	"pydoclint/internal/engine/checker"
)

// Checker converts the file level settings into an engine configuration.
func (c *Config) Checker() (*checker.Configuration, error) {
	convention, err := checker.ParseConvention(c.Convention)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfiguration, "invalid convention")
	}

	out := &checker.Configuration{
		Convention:         convention,
		Select:             clone(c.Select),
		Ignore:             clone(c.Ignore),
		AddSelect:          clone(c.AddSelect),
		AddIgnore:          clone(c.AddIgnore),
		PropertyDecorators: clone(c.PropertyDecorators),
		IgnoreInlineNoqa:   c.IgnoreInlineNoqa,
	}
	if c.IgnoreDecorators != "" {
		re, err := regexp.Compile(c.IgnoreDecorators)
		if err != nil {
			return nil, errors.Wrap(err, errors.CodeConfiguration, "invalid ignore_decorators")
		}
		out.IgnoreDecorators = re
	}
	if err := out.Validate(); err != nil {
		return nil, err
	}
	return out, nil
}

func clone(l List) []string {
	if l == nil {
		return nil
	}
	return append([]string{}, l...)
}
