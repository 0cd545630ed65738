package formats

import (
	"fmt"
	"strings"
)

type TSVGenerator struct{}

func NewTSVGenerator() *TSVGenerator {
	return &TSVGenerator{}
}

// Generate writes one row per violation; tabs and newlines inside values
// are replaced by spaces.
func (t *TSVGenerator) Generate(data ReportData) (string, error) {
	var buf strings.Builder

	buf.WriteString("File\tLine\tKind\tName\tCode\tMessage\n")
	for _, v := range data.Violations {
		buf.WriteString(fmt.Sprintf("%s\t%d\t%s\t%s\t%s\t%s\n",
			tsvField(data.displayPath(v.File)),
			v.Line,
			v.NodeKind,
			tsvField(v.NodeName),
			v.Code,
			tsvField(v.Message),
		))
	}

	return buf.String(), nil
}

// GenerateFailures lists the files that could not be checked.
func (t *TSVGenerator) GenerateFailures(data ReportData) (string, error) {
	var buf strings.Builder

	buf.WriteString("File\tMessage\n")
	for _, f := range data.Failures {
		buf.WriteString(fmt.Sprintf("%s\t%s\n", tsvField(data.displayPath(f.Path)), tsvField(f.Message)))
	}

	return buf.String(), nil
}

func tsvField(value string) string {
	return strings.NewReplacer("\t", " ", "\n", " ", "\r", " ").Replace(value)
}
