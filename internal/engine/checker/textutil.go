package checker

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/kljensen/snowball/english"
)

var (
	nonAlphanumericRe = regexp.MustCompile(`[^\p{L}\p{N}]+`)
	leadingWordsRe    = regexp.MustCompile(`^[\p{L}\p{N}_ ]+`)
)

func isBlank(s string) bool {
	return strings.TrimSpace(s) == ""
}

func hasContent(s string) bool {
	return !isBlank(s)
}

// leadingSpace returns the run of whitespace at the start of s.
func leadingSpace(s string) string {
	end := len(s)
	for i, r := range s {
		if !unicode.IsSpace(r) {
			end = i
			break
		}
	}
	return s[:end]
}

func commonPrefixLength(a, b string) int {
	n := 0
	for n < len(a) && n < len(b) && a[n] == b[n] {
		n++
	}
	return n
}

func stripNonAlphanumeric(s string) string {
	return nonAlphanumericRe.ReplaceAllString(s, "")
}

// leadingWords returns the leading run of word characters and spaces of the
// trimmed line, so "  Hello world!!!" gives "Hello world".
func leadingWords(line string) string {
	return leadingWordsRe.FindString(strings.TrimSpace(line))
}

// stem reduces an English word to its Porter2 stem.
func stem(word string) string {
	return english.Stem(word, true)
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(s string) string {
	if s == "" {
		return s
	}
	r, size := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + strings.ToLower(s[size:])
}

// titleCase capitalizes every word of s, treating any non-letter as a boundary.
func titleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	prevLetter := false
	for _, r := range s {
		if unicode.IsLetter(r) {
			if prevLetter {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
			}
			prevLetter = true
			continue
		}
		b.WriteRune(r)
		prevLetter = false
	}
	return b.String()
}

// expandTabs replaces tabs with spaces up to the next multiple of size columns.
func expandTabs(s string, size int) string {
	if !strings.Contains(s, "\t") {
		return s
	}
	var b strings.Builder
	column := 0
	for _, r := range s {
		switch r {
		case '\t':
			pad := size - column%size
			b.WriteString(strings.Repeat(" ", pad))
			column += pad
		case '\n', '\r':
			b.WriteRune(r)
			column = 0
		default:
			b.WriteRune(r)
			column++
		}
	}
	return b.String()
}

// takeBlank counts the leading blank entries of lines.
func takeBlank(lines []string) int {
	n := 0
	for _, line := range lines {
		if !isBlank(line) {
			break
		}
		n++
	}
	return n
}

// quote renders s the way a Python repr of a str would.
func quote(s string) string {
	q := "'"
	if strings.Contains(s, "'") && !strings.Contains(s, `"`) {
		q = `"`
	}
	var b strings.Builder
	b.WriteString(q)
	for _, r := range s {
		switch {
		case r == '\\':
			b.WriteString(`\\`)
		case r == '\n':
			b.WriteString(`\n`)
		case r == '\t':
			b.WriteString(`\t`)
		case r == '\r':
			b.WriteString(`\r`)
		case string(r) == q:
			b.WriteString(`\` + q)
		default:
			b.WriteRune(r)
		}
	}
	b.WriteString(q)
	return b.String()
}
