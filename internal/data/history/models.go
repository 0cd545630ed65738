package history

import "time"

const SchemaVersion = 2

// Run is one recorded check run.
type Run struct {
	ID            string         `json:"id"`
	ProjectKey    string         `json:"project_key"`
	StartedAt     time.Time      `json:"started_at"`
	Duration      time.Duration  `json:"duration"`
	Convention    string         `json:"convention"`
	CommitHash    string         `json:"commit_hash,omitempty"`
	FileCount     int            `json:"file_count"`
	ParseFailures int            `json:"parse_failures"`
	Violations    int            `json:"violations"`
	Codes         map[string]int `json:"codes"`
}

type TrendPoint struct {
	RunID           string         `json:"run_id"`
	StartedAt       time.Time      `json:"started_at"`
	CommitHash      string         `json:"commit_hash,omitempty"`
	FileCount       int            `json:"file_count"`
	Violations      int            `json:"violations"`
	DeltaViolations int            `json:"delta_violations"`
	Codes           map[string]int `json:"codes"`
	DeltaCodes      map[string]int `json:"delta_codes"`
}

// TrendReport lists runs oldest first. Codes is the sorted union of every
// code seen in any of the runs.
type TrendReport struct {
	ProjectKey string       `json:"project_key"`
	Since      time.Time    `json:"since"`
	Until      time.Time    `json:"until"`
	RunCount   int          `json:"run_count"`
	Codes      []string     `json:"codes"`
	Points     []TrendPoint `json:"points"`
}
