package parser

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeStringLiteral returns the value of a Python str literal. It reports
// false for bytes and f-strings, which never become docstrings.
func decodeStringLiteral(text string) (string, bool) {
	prefixLen := 0
	for prefixLen < len(text) && text[prefixLen] != '"' && text[prefixLen] != '\'' {
		prefixLen++
	}
	prefix := strings.ToLower(text[:prefixLen])
	raw := false
	switch prefix {
	case "", "u":
	case "r":
		raw = true
	default:
		return "", false
	}

	body := text[prefixLen:]
	quote := ""
	for _, q := range []string{`"""`, `'''`, `"`, `'`} {
		if strings.HasPrefix(body, q) && strings.HasSuffix(body, q) && len(body) >= 2*len(q) {
			quote = q
			break
		}
	}
	if quote == "" {
		return "", false
	}
	body = body[len(quote) : len(body)-len(quote)]
	if raw {
		return body, true
	}
	return unescape(body), true
}

var simpleEscapes = map[byte]string{
	'\\': `\`,
	'\'': `'`,
	'"':  `"`,
	'a':  "\a",
	'b':  "\b",
	'f':  "\f",
	'n':  "\n",
	'r':  "\r",
	't':  "\t",
	'v':  "\v",
}

// unescape resolves Python escape sequences. Unknown escapes keep their
// backslash and named \N{...} escapes are kept verbatim.
func unescape(s string) string {
	if !strings.Contains(s, `\`) {
		return s
	}
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c != '\\' || i+1 >= len(s) {
			b.WriteByte(c)
			continue
		}
		next := s[i+1]
		if next == '\n' {
			i++
			continue
		}
		if repl, ok := simpleEscapes[next]; ok {
			b.WriteString(repl)
			i++
			continue
		}
		switch {
		case next >= '0' && next <= '7':
			j := i + 1
			for j < len(s) && j < i+4 && s[j] >= '0' && s[j] <= '7' {
				j++
			}
			v, _ := strconv.ParseUint(s[i+1:j], 8, 32)
			b.WriteRune(rune(v))
			i = j - 1
		case next == 'x' || next == 'u' || next == 'U':
			width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[next]
			end := i + 2 + width
			if end > len(s) {
				b.WriteByte(c)
				continue
			}
			v, err := strconv.ParseUint(s[i+2:end], 16, 32)
			if err != nil || !utf8.ValidRune(rune(v)) {
				b.WriteByte(c)
				continue
			}
			b.WriteRune(rune(v))
			i = end - 1
		default:
			b.WriteByte(c)
		}
	}
	return b.String()
}
