package checker

import (
	"regexp"
	"sort"
	"strings"
	"unicode/utf8"
)

// Style classifies a sectioned docstring. A docstring is NumPy style when at
// least one NumPy section is found; Google sections are only looked for otherwise.
type Style int

const (
	StyleNone Style = iota
	StyleNumpy
	StyleGoogle
)

func (s Style) String() string {
	switch s {
	case StyleNumpy:
		return "numpy"
	case StyleGoogle:
		return "google"
	default:
		return "none"
	}
}

var NumpySectionNames = []string{
	"Short Summary",
	"Extended Summary",
	"Parameters",
	"Returns",
	"Yields",
	"Other Parameters",
	"Raises",
	"See Also",
	"Notes",
	"References",
	"Examples",
	"Attributes",
	"Methods",
}

var GoogleSectionNames = []string{
	"Args",
	"Arguments",
	"Attention",
	"Attributes",
	"Caution",
	"Danger",
	"Error",
	"Example",
	"Examples",
	"Hint",
	"Important",
	"Keyword Args",
	"Keyword Arguments",
	"Methods",
	"Note",
	"Notes",
	"Return",
	"Returns",
	"Raises",
	"References",
	"See Also",
	"Tip",
	"Todo",
	"Warning",
	"Warnings",
	"Warns",
	"Yield",
	"Yields",
}

// googleArgRe matches "name (type): description", the description possibly
// starting on the next line.
var googleArgRe = regexp.MustCompile(`^\s*([\p{L}\p{N}_]+)\s*(\(.*?\))?\s*:\n?\s*.+`)

var sectionTerminators = []string{",", ";", ".", "-", `\`, "/", "]", "}", ")"}

// SectionContext describes one confirmed section header and its body.
type SectionContext struct {
	Name           string
	PreviousLine   string
	Line           string
	FollowingLines []string
	Index          int
	IsLast         bool
}

// SectionReport is the result of analysing the sections of one docstring.
type SectionReport struct {
	Style    Style
	Sections []SectionContext
	// Documented holds the parameter names found in Parameters or Args sections.
	Documented map[string]bool
	Findings   []Finding
}

func (r *SectionReport) findingsFor(code string) []Finding {
	var out []Finding
	for _, f := range r.Findings {
		if f.Code == code {
			out = append(out, f)
		}
	}
	return out
}

// FindSections returns the confirmed sections of lines for a vocabulary.
// The body of a section runs up to the next confirmed header; the body of the
// last section stops before the final line, which holds the closing quotes.
func FindSections(lines []string, vocabulary []string) []SectionContext {
	lower := make(map[string]bool, len(vocabulary))
	for _, name := range vocabulary {
		lower[strings.ToLower(name)] = true
	}

	var confirmed []SectionContext
	for i, line := range lines {
		if !lower[leadingWords(strings.ToLower(line))] {
			continue
		}
		previous := ""
		if i > 0 {
			previous = lines[i-1]
		}
		candidate := SectionContext{
			Name:         leadingWords(strings.TrimSpace(line)),
			PreviousLine: previous,
			Line:         line,
			Index:        i,
		}
		if isSectionHeader(candidate) {
			confirmed = append(confirmed, candidate)
		}
	}

	for i := range confirmed {
		end := len(lines) - 1
		if i+1 < len(confirmed) {
			end = confirmed[i+1].Index
		} else {
			confirmed[i].IsLast = true
		}
		start := confirmed[i].Index + 1
		if start < end {
			confirmed[i].FollowingLines = lines[start:end]
		}
	}
	return confirmed
}

func sectionSuffix(ctx SectionContext) string {
	return strings.TrimPrefix(strings.TrimSpace(ctx.Line), strings.TrimSpace(ctx.Name))
}

// isSectionHeader rules out prose that merely starts with a section word: the
// header must carry nothing but an optional colon and must start a new paragraph.
func isSectionHeader(ctx SectionContext) bool {
	suffix := strings.TrimSpace(sectionSuffix(ctx))
	looksLikeHeader := isBlank(suffix) || suffix == ":"

	prev := strings.TrimSpace(ctx.PreviousLine)
	endsParagraph := isBlank(ctx.PreviousLine)
	for _, p := range sectionTerminators {
		if strings.HasSuffix(prev, p) {
			endsParagraph = true
			break
		}
	}
	return looksLikeHeader && endsParagraph
}

func analyzeSections(n *DefinitionNode, d *Docstring) *SectionReport {
	report := &SectionReport{}
	if d == nil {
		return report
	}
	lines := strings.Split(d.Content(), "\n")
	if len(lines) < 2 {
		return report
	}

	if sections := FindSections(lines, NumpySectionNames); len(sections) > 0 {
		report.Style = StyleNumpy
		report.Sections = sections
		for _, ctx := range sections {
			report.checkNumpySection(n, d, ctx)
		}
		return report
	}

	if sections := FindSections(lines, GoogleSectionNames); len(sections) > 0 {
		report.Style = StyleGoogle
		report.Sections = sections
		for _, ctx := range sections {
			report.checkGoogleSection(n, d, ctx)
		}
	}
	return report
}

func (r *SectionReport) add(code string, params ...any) {
	r.Findings = append(r.Findings, finding(code, params...))
}

func contains(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

func (r *SectionReport) checkCommonSection(d *Docstring, ctx SectionContext, vocabulary []string) {
	indent := d.Indent()
	capitalized := titleCase(ctx.Name)

	if !contains(vocabulary, ctx.Name) && contains(vocabulary, capitalized) {
		r.add("D405", capitalized, ctx.Name)
	}
	if leadingSpace(ctx.Line) > indent {
		r.add("D214", capitalized)
	}
	if len(ctx.FollowingLines) == 0 || !isBlank(ctx.FollowingLines[len(ctx.FollowingLines)-1]) {
		if ctx.IsLast {
			r.add("D413", capitalized)
		} else {
			r.add("D410", capitalized)
		}
	}
	if !isBlank(ctx.PreviousLine) {
		r.add("D411", capitalized)
	}
	r.checkUnderline(capitalized, ctx, indent)
}

func (r *SectionReport) checkUnderline(name string, ctx SectionContext, indent string) {
	following := ctx.FollowingLines
	blanks := takeBlank(following)
	if blanks == len(following) {
		r.add("D407", name)
		r.add("D414", name)
		return
	}

	underline := following[blanks]
	stripped := strings.TrimSpace(underline)
	if strings.Trim(stripped, "-") != "" {
		r.add("D407", name)
		if blanks > 0 {
			r.add("D412", name)
		}
		return
	}

	if blanks > 0 {
		r.add("D408", name)
	}
	nameLen := utf8.RuneCountInString(name)
	if stripped != strings.Repeat("-", nameLen) {
		r.add("D409", nameLen, name, utf8.RuneCountInString(stripped))
	}
	if leadingSpace(underline) > indent {
		r.add("D215", name)
	}

	after := blanks + 1
	if after >= len(following) {
		r.add("D414", name)
		return
	}
	if isBlank(following[after]) {
		if isBlank(strings.Join(following[after:], "")) {
			r.add("D414", name)
		} else {
			r.add("D412", name)
		}
	}
}

func (r *SectionReport) checkNumpySection(n *DefinitionNode, d *Docstring, ctx SectionContext) {
	capitalized := titleCase(ctx.Name)
	r.checkCommonSection(d, ctx, NumpySectionNames)

	if suffix := sectionSuffix(ctx); suffix != "" {
		r.add("D406", capitalized, strings.TrimSpace(ctx.Line))
	}
	if capitalized == "Parameters" {
		r.checkMissingArgs(n, numpyParameters(ctx))
	}
}

func (r *SectionReport) checkGoogleSection(n *DefinitionNode, d *Docstring, ctx SectionContext) {
	capitalized := titleCase(ctx.Name)
	r.checkCommonSection(d, ctx, GoogleSectionNames)

	if suffix := sectionSuffix(ctx); suffix != ":" {
		r.add("D416", capitalized+":", strings.TrimSpace(ctx.Line))
	}
	if capitalized == "Args" || capitalized == "Arguments" {
		r.checkMissingArgs(n, googleArgs(ctx))
	}
}

// numpyParameters collects names declared at the section's own indentation
// and followed by a deeper indented, non-blank description line. Grouped
// names share one declaration separated by commas.
func numpyParameters(ctx SectionContext) map[string]bool {
	documented := make(map[string]bool)
	sectionIndent := leadingSpace(ctx.Line)
	joined := strings.ReplaceAll(strings.Join(ctx.FollowingLines, "\n"), "\\\n", "")
	lines := strings.Split(joined, "\n")

	for i := 0; i+1 < len(lines); i++ {
		current, next := lines[i], lines[i+1]
		if leadingSpace(current) != sectionIndent {
			continue
		}
		if len(leadingSpace(next)) <= len(leadingSpace(current)) || strings.TrimSpace(next) == "" {
			continue
		}
		names := strings.TrimSpace(current)
		if before, _, found := strings.Cut(current, ":"); found {
			names = before
		}
		for _, name := range strings.Split(names, ",") {
			documented[strings.TrimSpace(name)] = true
		}
	}
	return documented
}

// googleArgs groups the Args body into one entry per parameter: a line with
// no indentation starts an entry and indented lines continue it.
func googleArgs(ctx SectionContext) map[string]bool {
	documented := make(map[string]bool)
	if len(ctx.FollowingLines) == 0 {
		return documented
	}

	first := ctx.FollowingLines[0]
	margin := first[:len(first)-len(strings.TrimLeft(first, " \t\n\r\f\v"))]
	if isBlank(first) {
		margin = ""
	}
	kept := make([]string, 0, len(ctx.FollowingLines))
	for _, line := range ctx.FollowingLines {
		if strings.HasPrefix(line, margin) || line == "" {
			kept = append(kept, line)
		}
	}
	content := strings.TrimSpace(dedent(strings.Join(kept, "\n")))
	if content == "" {
		return documented
	}

	var entries []string
	for _, line := range strings.Split(content, "\n") {
		if len(entries) > 0 && (line == "" || leadingSpace(line[:1]) != "") {
			entries[len(entries)-1] += "\n" + line
			continue
		}
		entries = append(entries, line)
	}

	for _, entry := range entries {
		if m := googleArgRe.FindStringSubmatch(entry); m != nil {
			documented[m[1]] = true
		}
	}
	return documented
}

func (r *SectionReport) checkMissingArgs(n *DefinitionNode, documented map[string]bool) {
	if r.Documented == nil {
		r.Documented = make(map[string]bool)
	}
	for name := range documented {
		r.Documented[name] = true
	}
	if n == nil || n.Kind != KindFunction {
		return
	}

	missing := make([]string, 0)
	for _, p := range n.Parameters {
		if p.Variadic || p.Name == "self" || p.Name == "cls" || strings.HasPrefix(p.Name, "_") {
			continue
		}
		if !documented[p.Name] {
			missing = append(missing, p.Name)
		}
	}
	if len(missing) == 0 {
		return
	}
	sort.Strings(missing)
	r.add("D417", strings.Join(missing, ", "), n.Name)
}

// dedent removes the whitespace prefix common to every non-blank line.
// Blank lines come back empty.
func dedent(text string) string {
	lines := strings.Split(text, "\n")
	margin := ""
	first := true
	for _, line := range lines {
		if isBlank(line) {
			continue
		}
		indent := leadingSpace(line)
		if first {
			margin = indent
			first = false
			continue
		}
		margin = margin[:commonPrefixLength(margin, indent)]
	}
	for i, line := range lines {
		if isBlank(line) {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimPrefix(line, margin)
	}
	return strings.Join(lines, "\n")
}
