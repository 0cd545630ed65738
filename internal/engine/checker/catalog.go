package checker

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// Group is a family of codes sharing a prefix.
type Group struct {
	Name   string
	Prefix string
}

var groups = []Group{
	{Name: "Missing Docstrings", Prefix: "D1"},
	{Name: "Whitespace Issues", Prefix: "D2"},
	{Name: "Quotes Issues", Prefix: "D3"},
	{Name: "Docstring Content Issues", Prefix: "D4"},
}

// Message is the text attached to a code. Context is formatted with the
// positional parameters of a violation; "{0}" inserts a value and "{0!r}"
// inserts its quoted form.
type Message struct {
	Short   string
	Context string
}

var messages = map[string]Message{
	"D100": {Short: "Missing docstring in public module"},
	"D101": {Short: "Missing docstring in public class"},
	"D102": {Short: "Missing docstring in public method"},
	"D103": {Short: "Missing docstring in public function"},
	"D104": {Short: "Missing docstring in public package"},
	"D105": {Short: "Missing docstring in magic method"},
	"D106": {Short: "Missing docstring in public nested class"},
	"D107": {Short: "Missing docstring in __init__"},
	"D200": {Short: "One-line docstring should fit on one line with quotes", Context: "found {0}"},
	"D201": {Short: "No blank lines allowed before function docstring", Context: "found {0}"},
	"D202": {Short: "No blank lines allowed after function docstring", Context: "found {0}"},
	"D203": {Short: "1 blank line required before class docstring", Context: "found {0}"},
	"D204": {Short: "1 blank line required after class docstring", Context: "found {0}"},
	"D205": {Short: "1 blank line required between summary line and description", Context: "found {0}"},
	"D206": {Short: "Docstring should be indented with spaces, not tabs"},
	"D207": {Short: "Docstring is under-indented"},
	"D208": {Short: "Docstring is over-indented"},
	"D209": {Short: "Multi-line docstring closing quotes should be on a separate line"},
	"D210": {Short: "No whitespaces allowed surrounding docstring text"},
	"D211": {Short: "No blank lines allowed before class docstring", Context: "found {0}"},
	"D212": {Short: "Multi-line docstring summary should start at the first line"},
	"D213": {Short: "Multi-line docstring summary should start at the second line"},
	"D214": {Short: "Section is over-indented", Context: "{0!r}"},
	"D215": {Short: "Section underline is over-indented", Context: "in section {0!r}"},
	"D300": {Short: `Use """triple double quotes"""`, Context: "found {0}-quotes"},
	"D301": {Short: `Use r""" if any backslashes in a docstring`},
	"D400": {Short: "First line should end with a period", Context: "not {0!r}"},
	"D401": {Short: "First line should be in imperative mood", Context: "perhaps '{0}', not '{1}'"},
	"D402": {Short: `First line should not be the function's "signature"`},
	"D403": {Short: "First word of the first line should be properly capitalized", Context: "'{0}', not '{1}'"},
	"D404": {Short: "First word of the docstring should not be `This`"},
	"D405": {Short: "Section name should be properly capitalized", Context: "'{0}', not '{1}'"},
	"D406": {Short: "Section name should end with a newline", Context: "'{0}', not '{1}'"},
	"D407": {Short: "Missing dashed underline after section", Context: "'{0}'"},
	"D408": {Short: "Section underline should be in the line following the section's name", Context: "'{0}'"},
	"D409": {Short: "Section underline should match the length of its name", Context: "Expected {0!r} dashes in section {1!r}, got {2!r}"},
	"D410": {Short: "Missing blank line after section", Context: "'{0}'"},
	"D411": {Short: "Missing blank line before section", Context: "'{0}'"},
	"D412": {Short: "No blank lines allowed between a section header and its content", Context: "'{0}'"},
	"D413": {Short: "Missing blank line after last section", Context: "'{0}'"},
	"D414": {Short: "Section has no content", Context: "'{0}'"},
	"D415": {Short: "First line should end with a period, question mark, or exclamation point", Context: "not {0!r}"},
	"D416": {Short: "Section name should end with a colon", Context: "'{0}', not '{1}'"},
	"D417": {Short: "Missing argument descriptions in the docstring", Context: "argument(s) {0} are missing descriptions in {1!r} docstring"},
	"D418": {Short: "Function/ Method decorated with @overload shouldn't contain a docstring"},
	"D419": {Short: "Docstring is empty"},
}

// moodRephrase is the alternate D401 message used for blacklisted first words.
var moodRephrase = Message{Short: "First line should be in imperative mood; try rephrasing", Context: "found '{0}'"}

var placeholderRe = regexp.MustCompile(`\{(\d+)(!r)?\}`)

// Render formats the message with the given parameters.
func (m Message) Render(params ...any) string {
	if m.Context == "" {
		return m.Short
	}
	context := placeholderRe.ReplaceAllStringFunc(m.Context, func(token string) string {
		parts := placeholderRe.FindStringSubmatch(token)
		idx, err := strconv.Atoi(parts[1])
		if err != nil || idx >= len(params) {
			return token
		}
		if parts[2] != "" {
			return repr(params[idx])
		}
		return fmt.Sprint(params[idx])
	})
	return fmt.Sprintf("%s (%s)", m.Short, context)
}

func repr(v any) string {
	switch value := v.(type) {
	case string:
		return quote(value)
	default:
		return fmt.Sprint(value)
	}
}

// MessageFor returns the message for code.
func MessageFor(code string) (Message, bool) {
	m, ok := messages[code]
	return m, ok
}

// GroupFor returns the group whose prefix code starts with.
func GroupFor(code string) (Group, bool) {
	for _, g := range groups {
		if strings.HasPrefix(code, g.Prefix) {
			return g, true
		}
	}
	return Group{}, false
}

func Groups() []Group {
	out := make([]Group, len(groups))
	copy(out, groups)
	return out
}

func sortedCodes(set map[string]bool) []string {
	out := make([]string, 0, len(set))
	for code := range set {
		out = append(out, code)
	}
	sort.Strings(out)
	return out
}
