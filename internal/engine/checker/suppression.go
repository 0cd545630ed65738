package checker

import (
	"regexp"
	"strings"
)

// AllCodes is the suppression marker meaning every code is suppressed.
const AllCodes = "all"

var (
	moduleSkipAllRe   = regexp.MustCompile(`^\s*#\s*pydoclint\s*:\s*noqa\s*$`)
	moduleSkipCodesRe = regexp.MustCompile(`^\s*#\s*noqa\s*:[\sA-Z\d,]*D\d+`)
	inlineSkipAllRe   = regexp.MustCompile(`.*#\s*noqa(\s*$|\s*#)`)
	inlineSkipCodesRe = regexp.MustCompile(`.*#\s*noqa\s*:\s*([\sA-Z\d,]*D\d+)`)
	suppressedCodeRe  = regexp.MustCompile(`D\d{0,3}\b`)
)

// Suppressions is a set of rule codes, possibly containing AllCodes.
type Suppressions map[string]bool

func (s Suppressions) All() bool {
	return s[AllCodes]
}

func (s Suppressions) Union(other Suppressions) Suppressions {
	out := make(Suppressions, len(s)+len(other))
	for code := range s {
		out[code] = true
	}
	for code := range other {
		out[code] = true
	}
	return out
}

// ModuleSuppressions scans every line of a module for a file-wide
// "# pydoclint: noqa" marker or a "# noqa: D1,D2" comment line.
func ModuleSuppressions(text string) Suppressions {
	out := Suppressions{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if moduleSkipAllRe.MatchString(line) {
			return Suppressions{AllCodes: true}
		}
		for _, match := range moduleSkipCodesRe.FindAllString(line, -1) {
			for _, code := range suppressedCodeRe.FindAllString(match, -1) {
				out[code] = true
			}
		}
	}
	return out
}

// LineSuppressions parses a trailing noqa comment on a single line.
func LineSuppressions(line string) Suppressions {
	if inlineSkipAllRe.MatchString(line) {
		return Suppressions{AllCodes: true}
	}
	out := Suppressions{}
	for _, match := range inlineSkipCodesRe.FindAllStringSubmatch(line, -1) {
		for _, code := range suppressedCodeRe.FindAllString(match[1], -1) {
			out[code] = true
		}
	}
	return out
}

// NodeSuppressions reads the noqa comment on the def or class line of n.
// Modules carry no inline suppressions.
func NodeSuppressions(n *DefinitionNode) Suppressions {
	line, ok := n.DefinitionLine()
	if !ok {
		return Suppressions{}
	}
	return LineSuppressions(line)
}
