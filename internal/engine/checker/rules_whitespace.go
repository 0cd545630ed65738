package checker

import (
	"strings"
)

// blankLinesBefore counts the blank lines directly above the docstring,
// stopping at the definition header.
func blankLinesBefore(n *DefinitionNode) int {
	count := 0
	for line := n.Doc.StartLine - 1; line > 0 && line >= n.StartLine; line-- {
		if !isBlank(n.Source.Line(line)) {
			break
		}
		count++
	}
	return count
}

// linesAfter returns the source lines between the end of the docstring and
// the line following the definition.
func linesAfter(n *DefinitionNode) []string {
	var out []string
	for line := n.Doc.EndLine + 1; line <= n.EndLine+1; line++ {
		out = append(out, n.Source.Line(line))
	}
	return out
}

// onlyDocstring reports whether the definition body is the docstring plus a
// single blank line.
func onlyDocstring(after []string, blanks int) bool {
	return blanks == 1 && len(after) == 1
}

func startsInnerDefinition(line string) bool {
	trimmed := strings.TrimLeft(line, " \t")
	for _, prefix := range []string{"class", "def", "async def", "@"} {
		if strings.HasPrefix(trimmed, prefix) {
			return true
		}
	}
	return false
}

func minString(values []string) string {
	m := values[0]
	for _, v := range values[1:] {
		if v < m {
			m = v
		}
	}
	return m
}

func whitespaceRules() []Rule {
	content := func(code string, ks KindSet, eval func(*Context) []Finding) Rule {
		return Rule{Code: code, Kinds: ks, NeedsDocstring: true, NeedsContent: true, Evaluate: eval}
	}

	return []Rule{
		content("D200", allKinds, func(c *Context) []Finding {
			lines := strings.Split(c.Doc.Content(), "\n")
			nonEmpty := 0
			for _, line := range lines {
				if hasContent(line) {
					nonEmpty++
				}
			}
			if nonEmpty == 1 && len(lines) > 1 {
				return []Finding{finding("D200", len(lines))}
			}
			return nil
		}),
		content("D201", kinds(KindFunction), func(c *Context) []Finding {
			if before := blankLinesBefore(c.Node); before > 0 {
				return []Finding{finding("D201", before)}
			}
			return nil
		}),
		content("D202", kinds(KindFunction), func(c *Context) []Finding {
			after := linesAfter(c.Node)
			blanks := takeBlank(after)
			if blanks == 0 || onlyDocstring(after, blanks) {
				return nil
			}
			if blanks == 1 && len(after) > 1 && startsInnerDefinition(after[1]) {
				return nil
			}
			return []Finding{finding("D202", blanks)}
		}),
		content("D203", kinds(KindClass), func(c *Context) []Finding {
			if before := blankLinesBefore(c.Node); before != 1 {
				return []Finding{finding("D203", before)}
			}
			return nil
		}),
		content("D204", kinds(KindClass), func(c *Context) []Finding {
			after := linesAfter(c.Node)
			blanks := takeBlank(after)
			if onlyDocstring(after, blanks) || blanks == 1 {
				return nil
			}
			return []Finding{finding("D204", blanks)}
		}),
		content("D205", allKinds, func(c *Context) []Finding {
			lines := c.Doc.Lines()
			if len(lines) <= 1 {
				return nil
			}
			if blanks := takeBlank(lines[1:]); blanks != 1 {
				return []Finding{finding("D205", blanks)}
			}
			return nil
		}),
		content("D206", allKinds, func(c *Context) []Finding {
			indents := c.Doc.LineIndents()
			if len(indents) == 0 {
				return nil
			}
			tabbed := strings.Contains(c.Doc.Indent(), "\t")
			for _, indent := range indents {
				tabbed = tabbed || strings.Contains(indent, "\t")
			}
			if tabbed {
				return []Finding{finding("D206")}
			}
			return nil
		}),
		content("D207", allKinds, func(c *Context) []Finding {
			indents := c.Doc.LineIndents()
			if len(indents) == 0 {
				return nil
			}
			if minString(indents) < c.Doc.Indent() {
				return []Finding{finding("D207")}
			}
			return nil
		}),
		content("D208", allKinds, func(c *Context) []Finding {
			indents := c.Doc.LineIndents()
			if len(indents) == 0 {
				return nil
			}
			indent := c.Doc.Indent()
			last := indents[len(indents)-1]
			if (len(indents) > 1 && minString(indents[:len(indents)-1]) > indent) || last > indent {
				return []Finding{finding("D208")}
			}
			return nil
		}),
		content("D209", allKinds, func(c *Context) []Finding {
			lines := strings.Split(c.Doc.Content(), "\n")
			if len(lines) > 1 && hasContent(lines[len(lines)-1]) {
				return []Finding{finding("D209")}
			}
			return nil
		}),
		content("D210", allKinds, func(c *Context) []Finding {
			lines := strings.Split(c.Doc.Content(), "\n")
			if strings.HasPrefix(lines[0], " ") || (len(lines) == 1 && strings.HasSuffix(lines[0], " ")) {
				return []Finding{finding("D210")}
			}
			return nil
		}),
		content("D211", kinds(KindClass), func(c *Context) []Finding {
			if before := blankLinesBefore(c.Node); before > 0 {
				return []Finding{finding("D211", before)}
			}
			return nil
		}),
		content("D212", allKinds, func(c *Context) []Finding {
			lines := strings.Split(c.Doc.Content(), "\n")
			if len(lines) > 1 && isBlank(lines[0]) {
				return []Finding{finding("D212")}
			}
			return nil
		}),
		content("D213", allKinds, func(c *Context) []Finding {
			lines := strings.Split(c.Doc.Content(), "\n")
			if len(lines) > 1 && hasContent(lines[0]) {
				return []Finding{finding("D213")}
			}
			return nil
		}),
	}
}
