package checker

import (
	"fmt"
	"regexp"
	"strings"

	"pydoclint/internal/core/errors"
)

var openingQuoteRe = regexp.MustCompile(`^(.*?)[uU]?[rR]?("""|'''|"|')`)

// Docstring is a read-only view over the doc span of a definition.
type Docstring struct {
	Node *DefinitionNode

	content     string
	raw         string
	literal     string
	indent      string
	lineIndents []string
}

// NewDocstring builds the view for n. It fails when n has no docstring.
func NewDocstring(n *DefinitionNode) (*Docstring, error) {
	if n == nil || n.Doc == nil {
		name := ""
		if n != nil {
			name = n.Name
		}
		return nil, errors.AddContext(
			errors.New(errors.CodeMissingDocstring, fmt.Sprintf("Node '%s' does not have a doc node.", name)),
			errors.CtxNode, name,
		)
	}

	d := &Docstring{Node: n}
	d.content = expandTabs(n.Doc.Value, 8)

	rawLines := n.Source.Lines(n.Doc.StartLine, n.Doc.EndLine)
	trimmed := make([]string, len(rawLines))
	for i, line := range rawLines {
		trimmed[i] = strings.TrimRight(line, " \t\r\f\v")
	}
	d.raw = strings.Join(trimmed, "\n")

	if len(trimmed) > 0 {
		if m := openingQuoteRe.FindStringSubmatch(trimmed[0]); m != nil {
			d.indent = strings.Repeat(" ", len([]rune(m[1])))
			d.literal = d.raw[len(m[1]):]
		}
	}

	for i, line := range trimmed {
		next := ""
		if i+1 < len(trimmed) {
			next = trimmed[i+1]
		}
		if hasContent(next) && !strings.HasSuffix(line, `\`) {
			d.lineIndents = append(d.lineIndents, leadingSpace(next))
		}
	}

	return d, nil
}

// Content is the literal value with tabs expanded to 8 columns.
func (d *Docstring) Content() string { return d.content }

// Raw is the source text of the literal including its quotes, each line right trimmed.
func (d *Docstring) Raw() string { return d.raw }

// Literal is Raw without the code preceding the string prefix.
func (d *Docstring) Literal() string { return d.literal }

// Indent is a run of spaces as wide as the text preceding the opening quotes.
func (d *Docstring) Indent() string { return d.indent }

// LineIndents holds the leading whitespace of every non-blank line after the
// first, skipping lines continued from a backslash.
func (d *Docstring) LineIndents() []string { return d.lineIndents }

func (d *Docstring) IsEmpty() bool { return isBlank(d.content) }

// Lines splits the stripped content.
func (d *Docstring) Lines() []string {
	return strings.Split(strings.TrimSpace(d.content), "\n")
}

// Summary is the first line of the stripped content.
func (d *Docstring) Summary() string {
	return d.Lines()[0]
}

// FirstWord is the first whitespace separated word of the content.
func (d *Docstring) FirstWord() string {
	fields := strings.Fields(d.content)
	if len(fields) == 0 {
		return ""
	}
	return fields[0]
}
