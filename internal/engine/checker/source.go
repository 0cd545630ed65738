package checker

import "strings"

// Source is the text of one module shared by every node of its tree.
type Source struct {
	Path  string
	Text  string
	lines []string
}

func NewSource(path, text string) *Source {
	normalized := strings.ReplaceAll(text, "\r\n", "\n")
	lines := strings.Split(normalized, "\n")
	if len(lines) > 0 && lines[len(lines)-1] == "" {
		lines = lines[:len(lines)-1]
	}
	return &Source{Path: path, Text: normalized, lines: lines}
}

// Line returns the 1-based line n without its newline, or "" when n is out of range.
func (s *Source) Line(n int) string {
	if s == nil || n < 1 || n > len(s.lines) {
		return ""
	}
	return s.lines[n-1]
}

// Lines returns the lines in [from, to], clamped to the source.
func (s *Source) Lines(from, to int) []string {
	if s == nil {
		return nil
	}
	if from < 1 {
		from = 1
	}
	if to > len(s.lines) {
		to = len(s.lines)
	}
	if from > to {
		return nil
	}
	return s.lines[from-1 : to]
}

func (s *Source) LineCount() int {
	if s == nil {
		return 0
	}
	return len(s.lines)
}
