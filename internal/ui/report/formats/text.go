package formats

import (
	"fmt"
	"strings"
)

// GenerateText renders one line per violation followed by one line per
// unreadable file.
func GenerateText(data ReportData) string {
	var b strings.Builder
	for _, v := range data.Violations {
		v.File = data.displayPath(v.File)
		b.WriteString(v.String())
		b.WriteByte('\n')
	}
	for _, f := range data.Failures {
		fmt.Fprintf(&b, "%s: cannot check file: %s\n", data.displayPath(f.Path), f.Message)
	}
	return b.String()
}
