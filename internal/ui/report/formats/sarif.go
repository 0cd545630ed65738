package formats

import (
	"encoding/json"

	"pydoclint/internal/engine/checker"
	"pydoclint/internal/shared/util"
)

// SARIF v2.1.0 schema – see https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json

const (
	sarifSchema  = "https://schemastore.azurewebsites.net/schemas/json/sarif-2.1.0-rtm.5.json"
	sarifVersion = "2.1.0"
	sarifSrcRoot = "%SRCROOT%"
)

type sarifReport struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []sarifRun `json:"runs"`
}

type sarifRun struct {
	Tool        sarifTool         `json:"tool"`
	Results     []sarifResult     `json:"results"`
	Invocations []sarifInvocation `json:"invocations,omitempty"`
}

type sarifTool struct {
	Driver sarifDriver `json:"driver"`
}

type sarifDriver struct {
	Name    string      `json:"name"`
	Version string      `json:"version"`
	Rules   []sarifRule `json:"rules"`
}

type sarifRule struct {
	ID               string                 `json:"id"`
	Name             string                 `json:"name"`
	ShortDescription sarifMessage           `json:"shortDescription"`
	DefaultConfig    sarifRuleDefaultConfig `json:"defaultConfiguration"`
}

type sarifRuleDefaultConfig struct {
	Level string `json:"level"`
}

type sarifResult struct {
	RuleID    string          `json:"ruleId"`
	RuleIndex int             `json:"ruleIndex"`
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

type sarifMessage struct {
	Text string `json:"text"`
}

type sarifLocation struct {
	PhysicalLocation sarifPhysicalLocation `json:"physicalLocation"`
}

type sarifPhysicalLocation struct {
	ArtifactLocation sarifArtifactLocation `json:"artifactLocation"`
	Region           *sarifRegion          `json:"region,omitempty"`
}

type sarifArtifactLocation struct {
	URI       string `json:"uri"`
	URIBaseID string `json:"uriBaseId"`
}

type sarifRegion struct {
	StartLine int `json:"startLine,omitempty"`
}

type sarifInvocation struct {
	ExecutionSuccessful        bool                `json:"executionSuccessful"`
	ToolExecutionNotifications []sarifNotification `json:"toolExecutionNotifications,omitempty"`
}

type sarifNotification struct {
	Level     string          `json:"level"`
	Message   sarifMessage    `json:"message"`
	Locations []sarifLocation `json:"locations,omitempty"`
}

// GenerateSARIF builds a SARIF v2.1.0 document with one rule per reported
// code. File URIs are relative to the project root; absolute paths are never
// included so that reports are safe to share. Unreadable files become
// tool execution notifications.
func GenerateSARIF(data ReportData) ([]byte, error) {
	rules, index := buildSARIFRules(data.Violations)

	results := make([]sarifResult, 0, len(data.Violations))
	for _, v := range data.Violations {
		results = append(results, sarifResult{
			RuleID:    v.Code,
			RuleIndex: index[v.Code],
			Level:     "warning",
			Message:   sarifMessage{Text: v.Message},
			Locations: []sarifLocation{fileLocation(data.ProjectRoot, v.File, v.Line)},
		})
	}

	invocation := sarifInvocation{ExecutionSuccessful: len(data.Failures) == 0}
	for _, f := range data.Failures {
		invocation.ToolExecutionNotifications = append(invocation.ToolExecutionNotifications, sarifNotification{
			Level:     "error",
			Message:   sarifMessage{Text: f.Message},
			Locations: []sarifLocation{fileLocation(data.ProjectRoot, f.Path, 0)},
		})
	}

	report := sarifReport{
		Schema:  sarifSchema,
		Version: sarifVersion,
		Runs: []sarifRun{
			{
				Tool: sarifTool{
					Driver: sarifDriver{
						Name:    "pydoclint",
						Version: nonEmpty(data.Version, "dev"),
						Rules:   rules,
					},
				},
				Results:     results,
				Invocations: []sarifInvocation{invocation},
			},
		},
	}

	return json.MarshalIndent(report, "", "  ")
}

// buildSARIFRules returns the rules for the reported codes in code order and
// the index of each rule.
func buildSARIFRules(violations []checker.Violation) ([]sarifRule, map[string]int) {
	seen := make(map[string]bool)
	for _, v := range violations {
		seen[v.Code] = true
	}
	rules := make([]sarifRule, 0, len(seen))
	index := make(map[string]int, len(seen))
	for _, code := range util.SortedStringKeys(seen) {
		name := code
		if g, ok := checker.GroupFor(code); ok {
			name = g.Name
		}
		description := code
		if m, ok := checker.MessageFor(code); ok {
			description = m.Short
		}
		index[code] = len(rules)
		rules = append(rules, sarifRule{
			ID:               code,
			Name:             name,
			ShortDescription: sarifMessage{Text: description},
			DefaultConfig:    sarifRuleDefaultConfig{Level: "warning"},
		})
	}
	return rules, index
}

func fileLocation(projectRoot, path string, line int) sarifLocation {
	loc := sarifLocation{
		PhysicalLocation: sarifPhysicalLocation{
			ArtifactLocation: sarifArtifactLocation{
				URI:       relativeURI(projectRoot, path),
				URIBaseID: sarifSrcRoot,
			},
		},
	}
	if line > 0 {
		loc.PhysicalLocation.Region = &sarifRegion{StartLine: line}
	}
	return loc
}

// relativeURI converts a file path to a forward-slash URI anchored at
// projectRoot. Relative paths are only slash converted.
func relativeURI(projectRoot, filePath string) string {
	return util.RelSlash(projectRoot, filePath)
}
