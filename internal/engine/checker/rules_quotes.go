package checker

import (
	"regexp"
	"strings"
)

var (
	tripleSingleRe = regexp.MustCompile(`^[uU]?[rR]?'''[^']`)
	tripleDoubleRe = regexp.MustCompile(`^[uU]?[rR]?"""[^"]`)
	quoteRunRe     = regexp.MustCompile(`^[uU]?[rR]?("+|'+)`)
	backslashRe    = regexp.MustCompile(`\\[^\nuN]`)
)

func quoteRules() []Rule {
	return []Rule{
		{
			Code:           "D300",
			Kinds:          allKinds,
			NeedsDocstring: true,
			NeedsContent:   true,
			Evaluate: func(c *Context) []Finding {
				literal := c.Doc.Literal()
				// A docstring holding """ may only be quoted with '''.
				if strings.Contains(c.Doc.Content(), `"""`) {
					if tripleSingleRe.MatchString(literal) {
						return nil
					}
				} else if tripleDoubleRe.MatchString(literal) {
					return nil
				}
				found := ""
				if m := quoteRunRe.FindStringSubmatch(literal); m != nil {
					found = m[1]
				}
				return []Finding{finding("D300", found)}
			},
		},
		{
			Code:           "D301",
			Kinds:          allKinds,
			NeedsDocstring: true,
			NeedsContent:   true,
			Evaluate: func(c *Context) []Finding {
				literal := strings.TrimSpace(c.Doc.Literal())
				if !backslashRe.MatchString(literal) {
					return nil
				}
				lower := strings.ToLower(literal)
				if strings.HasPrefix(lower, "r") || strings.HasPrefix(lower, "ur") {
					return nil
				}
				return []Finding{finding("D301")}
			},
		},
	}
}
