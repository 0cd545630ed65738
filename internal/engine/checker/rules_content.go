package checker

import (
	"slices"
	"strings"
	"unicode/utf8"
)

func isTestFunction(n *DefinitionNode) bool {
	return strings.HasPrefix(n.Name, "test") || n.Name == "runTest"
}

func endsWith(code string, terminators string) Rule {
	return Rule{
		Code:           code,
		Kinds:          allKinds,
		NeedsDocstring: true,
		NeedsContent:   true,
		Evaluate: func(c *Context) []Finding {
			summary := strings.TrimSpace(c.Doc.Summary())
			last, _ := utf8.DecodeLastRuneInString(summary)
			if strings.ContainsRune(terminators, last) {
				return nil
			}
			return []Finding{finding(code, string(last))}
		},
	}
}

// imperativeMood compares the first word against the verb forms sharing
// its stem and suggests the closest imperative form.
func imperativeMood(c *Context) []Finding {
	n := c.Node
	if isTestFunction(n) {
		return nil
	}
	if c.Config != nil && n.HasDecorator(c.Config.IsPropertyDecorator) {
		return nil
	}

	fields := strings.Fields(c.Doc.Content())
	if len(fields) == 0 {
		return nil
	}
	firstWord := stripNonAlphanumeric(fields[0])
	check := strings.ToLower(firstWord)
	if check == "" {
		return nil
	}

	if imperativeBlacklistSet[check] {
		return []Finding{{Code: "D401", Text: moodRephrase.Render(firstWord)}}
	}

	forms := imperativeVerbs[stem(check)]
	if len(forms) == 0 || slices.Contains(forms, check) {
		return nil
	}
	best := forms[0]
	bestLen := commonPrefixLength(check, best)
	for _, form := range forms[1:] {
		if l := commonPrefixLength(check, form); l > bestLen {
			best, bestLen = form, l
		}
	}
	return []Finding{finding("D401", capitalize(best), firstWord)}
}

func isASCIIWord(word string) bool {
	for _, r := range word {
		if !(r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z' || r == '\'') {
			return false
		}
	}
	return true
}

func contentRules() []Rule {
	return []Rule{
		endsWith("D400", "."),
		{
			Code:           "D401",
			Kinds:          kinds(KindFunction),
			NeedsDocstring: true,
			NeedsContent:   true,
			Evaluate:       imperativeMood,
		},
		{
			Code:           "D402",
			Kinds:          kinds(KindFunction),
			NeedsDocstring: true,
			NeedsContent:   true,
			Evaluate: func(c *Context) []Finding {
				first := strings.ReplaceAll(c.Doc.Summary(), " ", "")
				if strings.Contains(first, c.Node.Name+"(") {
					return []Finding{finding("D402")}
				}
				return nil
			},
		},
		{
			Code:           "D403",
			Kinds:          kinds(KindFunction),
			NeedsDocstring: true,
			NeedsContent:   true,
			Evaluate: func(c *Context) []Finding {
				word := c.Doc.FirstWord()
				if word == "" || word == strings.ToUpper(word) || word == capitalize(word) {
					return nil
				}
				if strings.HasPrefix(word, "'") || !isASCIIWord(word) {
					return nil
				}
				return []Finding{finding("D403", capitalize(word), word)}
			},
		},
		{
			Code:           "D404",
			Kinds:          allKinds,
			NeedsDocstring: true,
			NeedsContent:   true,
			Evaluate: func(c *Context) []Finding {
				fields := strings.Fields(c.Doc.Content())
				if len(fields) > 0 && strings.ToLower(fields[0]) == "this" {
					return []Finding{finding("D404")}
				}
				return nil
			},
		},
		endsWith("D415", ".!?"),
		{
			Code:           "D418",
			Kinds:          kinds(KindFunction),
			NeedsDocstring: true,
			Evaluate: func(c *Context) []Finding {
				if c.Node.IsOverloaded() {
					return []Finding{finding("D418")}
				}
				return nil
			},
		},
		{
			Code:           "D419",
			Kinds:          allKinds,
			NeedsDocstring: true,
			Terminal:       true,
			Evaluate: func(c *Context) []Finding {
				if c.Doc.IsEmpty() {
					return []Finding{finding("D419")}
				}
				return nil
			},
		},
	}
}
