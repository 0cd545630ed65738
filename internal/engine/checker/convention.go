package checker

import (
	"fmt"
	"sort"
	"strings"
)

// Convention names a default set of codes.
type Convention string

const (
	ConventionPEP257 Convention = "pep257"
	ConventionNumpy  Convention = "numpy"
	ConventionGoogle Convention = "google"
	ConventionAll    Convention = "all"
	ConventionNone   Convention = "none"
)

// DefaultConvention is used when no convention is configured.
const DefaultConvention = ConventionPEP257

var conventionIgnores = map[Convention][]string{
	ConventionPEP257: {
		"D203", "D212", "D213", "D214", "D215", "D404", "D405", "D406", "D407",
		"D408", "D409", "D410", "D411", "D413", "D415", "D416", "D417", "D418",
	},
	ConventionNumpy: {
		"D107", "D203", "D212", "D213", "D402", "D413", "D415", "D416", "D417",
	},
	ConventionGoogle: {
		"D203", "D204", "D213", "D215", "D400", "D401", "D404", "D406", "D407",
		"D408", "D409", "D413",
	},
}

// Conventions lists the accepted convention names.
func Conventions() []Convention {
	return []Convention{ConventionPEP257, ConventionNumpy, ConventionGoogle, ConventionAll, ConventionNone}
}

// ParseConvention accepts a convention name case-insensitively. The empty
// string gives DefaultConvention.
func ParseConvention(name string) (Convention, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return DefaultConvention, nil
	}
	for _, c := range Conventions() {
		if string(c) == name {
			return c, nil
		}
	}
	return "", fmt.Errorf("unknown convention %q", name)
}

// IgnoreList returns the codes excluded from the convention.
func (c Convention) IgnoreList() []string {
	out := append([]string(nil), conventionIgnores[c]...)
	sort.Strings(out)
	return out
}

// Codes returns the default code set of the convention within rules.
func (c Convention) Codes(rules *RuleSet) map[string]bool {
	out := make(map[string]bool)
	if c == ConventionNone {
		return out
	}
	ignored := make(map[string]bool)
	for _, code := range conventionIgnores[c] {
		ignored[code] = true
	}
	for _, code := range rules.Codes() {
		if !ignored[code] {
			out[code] = true
		}
	}
	return out
}
