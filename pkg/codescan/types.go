package codescan

import "time"

// Analysis represents one completed code-scanning analysis run recorded
// against a repository. A record constructed from a deletion response may
// carry only ID and Deletable; it identifies the next item eligible for
// deletion, not a fully-hydrated historical record.
type Analysis struct {
	ID           int64     `json:"id"`
	Ref          string    `json:"ref"`
	CommitSHA    string    `json:"commit_sha"`
	AnalysisKey  string    `json:"analysis_key"`
	Environment  string    `json:"environment"`
	Category     string    `json:"category"`
	CreatedAt    time.Time `json:"created_at"`
	ResultsCount int       `json:"results_count"`
	RulesCount   int       `json:"rules_count"`
	SarifID      string    `json:"sarif_id"`
	Deletable    bool      `json:"deletable"`
}

// Alert represents one persistent code-scanning finding. State is an opaque
// passthrough from the API (open, dismissed, fixed) and is not validated.
type Alert struct {
	Number             int           `json:"number"`
	CreatedAt          time.Time     `json:"created_at"`
	State              string        `json:"state"`
	Rule               AlertRule     `json:"rule"`
	MostRecentInstance AlertInstance `json:"most_recent_instance"`
}

// AlertRule describes the rule that produced an alert.
type AlertRule struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Severity              string   `json:"severity"`
	SecuritySeverityLevel string   `json:"security_severity_level"`
	Tags                  []string `json:"tags"`
}

// AlertInstance is the most recent occurrence of an alert.
type AlertInstance struct {
	Ref      string        `json:"ref"`
	State    string        `json:"state"`
	Location AlertLocation `json:"location"`
}

// AlertLocation pinpoints an alert within a file.
type AlertLocation struct {
	Path        string `json:"path"`
	StartLine   int    `json:"start_line"`
	EndLine     int    `json:"end_line"`
	StartColumn int    `json:"start_column"`
	EndColumn   int    `json:"end_column"`
}

// RepoMetadata is the subset of repository metadata the engine needs.
type RepoMetadata struct {
	DefaultBranch string `json:"default_branch"`
}

// DeleteResponse is the result of deleting one analysis. NextAnalysisID is
// zero when the deletion did not reveal a further deletable analysis.
type DeleteResponse struct {
	NextAnalysisID int64
}

// Schedule is a once-weekly cron schedule with randomized minute, hour and
// weekday. Day-of-month and month are always "every".
type Schedule struct {
	Minute  int
	Hour    int
	Weekday int
}

// WorkflowConfig holds the three values substituted into the workflow
// template for one repository. It is built once per repository during
// enrollment and discarded after rendering.
type WorkflowConfig struct {
	DefaultBranch string
	Schedule      Schedule
	Languages     []string
}
