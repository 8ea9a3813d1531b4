package codescan

import (
	"fmt"
	"math/rand"
	"sort"
	"strings"
)

// codeqlLanguages maps the language names GitHub reports to the identifiers
// the CodeQL engine recognizes. Names are case-sensitive as supplied by the
// API; anything absent from the map is not scannable and is dropped.
var codeqlLanguages = map[string]string{
	"C":          "cpp",
	"C++":        "cpp",
	"C#":         "csharp",
	"Go":         "go",
	"Java":       "java",
	"JavaScript": "javascript",
	"TypeScript": "javascript",
	"Python":     "python",
	"Ruby":       "ruby",
}

// MatrixLanguages translates a repository's raw language inventory into the
// CodeQL matrix identifiers, deduplicated (C and C++, and JavaScript and
// TypeScript, share a target) and sorted for a deterministic matrix. An
// empty result means the repository has nothing CodeQL can scan.
func MatrixLanguages(inventory map[string]int64) []string {
	seen := make(map[string]bool)
	out := make([]string, 0, len(inventory))
	for name := range inventory {
		id, ok := codeqlLanguages[name]
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// NewSchedule draws a fresh once-weekly schedule with independently
// randomized minute, hour and weekday. Each repository gets its own draw so
// enrolled scans do not all fire at the same instant.
func NewSchedule(rng *rand.Rand) Schedule {
	return Schedule{
		Minute:  rng.Intn(60),
		Hour:    rng.Intn(24),
		Weekday: rng.Intn(7),
	}
}

// Cron renders the schedule as a five-field cron expression with
// day-of-month and month fixed to every.
func (s Schedule) Cron() string {
	return fmt.Sprintf("%d %d * * %d", s.Minute, s.Hour, s.Weekday)
}

// NewWorkflowConfig assembles the scan configuration for one repository.
func NewWorkflowConfig(defaultBranch string, languages []string, rng *rand.Rand) WorkflowConfig {
	return WorkflowConfig{
		DefaultBranch: defaultBranch,
		Schedule:      NewSchedule(rng),
		Languages:     languages,
	}
}

// MatrixExpr renders the language list as the workflow matrix literal,
// e.g. "'go', 'javascript'".
func (c WorkflowConfig) MatrixExpr() string {
	quoted := make([]string, len(c.Languages))
	for i, lang := range c.Languages {
		quoted[i] = "'" + lang + "'"
	}
	return strings.Join(quoted, ", ")
}

// Render substitutes the configuration into the workflow template. Only the
// three named placeholders are resolved; any other $-token in the template
// passes through literally, which keeps the workflow's own expressions
// intact.
func (c WorkflowConfig) Render() string {
	return strings.NewReplacer(
		"$DEFAULT_BRANCH_EXPR", c.DefaultBranch,
		"$SCHEDULE_CRON_EXPR", c.Schedule.Cron(),
		"$MATRIX_LANGUAGE_EXPR", c.MatrixExpr(),
	).Replace(workflowTemplate)
}

// workflowTemplate is the enrollment workflow committed into each
// repository. Its structure beyond the three placeholders is opaque to the
// engine.
const workflowTemplate = `name: "CodeQL"

on:
  push:
    branches: [ $DEFAULT_BRANCH_EXPR ]
  pull_request:
    branches: [ $DEFAULT_BRANCH_EXPR ]
  schedule:
    - cron: '$SCHEDULE_CRON_EXPR'

jobs:
  analyze:
    name: Analyze
    runs-on: ubuntu-latest
    permissions:
      actions: read
      contents: read
      security-events: write

    strategy:
      fail-fast: false
      matrix:
        language: [ $MATRIX_LANGUAGE_EXPR ]

    steps:
      - name: Checkout repository
        uses: actions/checkout@v4

      - name: Initialize CodeQL
        uses: github/codeql-action/init@v3
        with:
          languages: ${{ matrix.language }}

      - name: Autobuild
        uses: github/codeql-action/autobuild@v3

      - name: Perform CodeQL Analysis
        uses: github/codeql-action/analyze@v3
        with:
          category: "/language:${{ matrix.language }}"
`
