package config

import (
	"fmt"
	"regexp"
	"strings"
)

// Pattern is a regular expression that must match a whole file or directory
// name. Leading negative lookaheads such as "(?!test_)" are supported by
// rejecting names that start with the lookahead body.
type Pattern struct {
	source  string
	rejects []*regexp.Regexp
	accept  *regexp.Regexp
}

func CompilePattern(expr string) (*Pattern, error) {
	p := &Pattern{source: expr}
	rest := expr
	for strings.HasPrefix(rest, "(?!") {
		end := closingParen(rest)
		if end < 0 {
			return nil, fmt.Errorf("unbalanced lookahead in %q", expr)
		}
		reject, err := regexp.Compile(`^(?:` + rest[3:end] + `)`)
		if err != nil {
			return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
		}
		p.rejects = append(p.rejects, reject)
		rest = rest[end+1:]
	}

	accept, err := regexp.Compile(`^(?:` + rest + `)$`)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", expr, err)
	}
	p.accept = accept
	return p, nil
}

// closingParen returns the index of the parenthesis closing the group that
// opens s, or -1.
func closingParen(s string) int {
	depth := 0
	inClass := false
	for i := 0; i < len(s); i++ {
		switch c := s[i]; {
		case c == '\\':
			i++
		case inClass:
			if c == ']' {
				inClass = false
			}
		case c == '[':
			inClass = true
		case c == '(':
			depth++
		case c == ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func (p *Pattern) Match(name string) bool {
	for _, reject := range p.rejects {
		if reject.MatchString(name) {
			return false
		}
	}
	return p.accept.MatchString(name)
}

func (p *Pattern) String() string { return p.source }
