package codescan

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestMatrixLanguages(t *testing.T) {
	tests := []struct {
		name      string
		inventory map[string]int64
		want      []string
	}{
		{
			name:      "typescript and javascript share one identifier",
			inventory: map[string]int64{"TypeScript": 100, "JavaScript": 50, "Java": 10},
			want:      []string{"java", "javascript"},
		},
		{
			name:      "c and c++ share one identifier",
			inventory: map[string]int64{"C": 500, "C++": 300},
			want:      []string{"cpp"},
		},
		{
			name:      "csharp is distinct from cpp",
			inventory: map[string]int64{"C#": 100, "C": 50},
			want:      []string{"cpp", "csharp"},
		},
		{
			name:      "unrecognized languages are dropped",
			inventory: map[string]int64{"Rust": 5},
			want:      []string{},
		},
		{
			name:      "mixed inventory keeps only recognized",
			inventory: map[string]int64{"Go": 900, "HTML": 100, "Shell": 30, "Python": 10},
			want:      []string{"go", "python"},
		},
		{
			name:      "empty inventory",
			inventory: map[string]int64{},
			want:      []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, MatrixLanguages(tt.inventory))
		})
	}
}

func TestMatrixLanguagesDeterministic(t *testing.T) {
	inventory := map[string]int64{"TypeScript": 1, "JavaScript": 2, "Ruby": 3, "Go": 4}

	// Map iteration order varies; the output order must not
	first := MatrixLanguages(inventory)
	for i := 0; i < 50; i++ {
		assert.Equal(t, first, MatrixLanguages(inventory))
	}
}

func TestNewScheduleRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	minutes := make(map[int]bool)
	for i := 0; i < 5000; i++ {
		s := NewSchedule(rng)
		require.GreaterOrEqual(t, s.Minute, 0)
		require.Less(t, s.Minute, 60)
		require.GreaterOrEqual(t, s.Hour, 0)
		require.Less(t, s.Hour, 24)
		require.GreaterOrEqual(t, s.Weekday, 0)
		require.Less(t, s.Weekday, 7)
		minutes[s.Minute] = true
	}

	// Over many draws the minute must span its full range
	assert.Len(t, minutes, 60)
}

func TestNewScheduleVaries(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	// Fresh draws per repository must not collapse onto one firing time;
	// with 10080 possible triples, 100 draws landing on fewer than 10
	// distinct values would be far outside statistical chance.
	triples := make(map[Schedule]bool)
	for i := 0; i < 100; i++ {
		triples[NewSchedule(rng)] = true
	}
	assert.Greater(t, len(triples), 10)
}

func TestScheduleCron(t *testing.T) {
	s := Schedule{Minute: 7, Hour: 3, Weekday: 5}
	assert.Equal(t, "7 3 * * 5", s.Cron())
}

func TestWorkflowConfigRender(t *testing.T) {
	cfg := WorkflowConfig{
		DefaultBranch: "main",
		Schedule:      Schedule{Minute: 30, Hour: 4, Weekday: 2},
		Languages:     []string{"go", "javascript"},
	}

	rendered := cfg.Render()

	// The three placeholders resolve
	assert.Contains(t, rendered, "branches: [ main ]")
	assert.Contains(t, rendered, "cron: '30 4 * * 2'")
	assert.Contains(t, rendered, "language: [ 'go', 'javascript' ]")
	assert.NotContains(t, rendered, "$DEFAULT_BRANCH_EXPR")
	assert.NotContains(t, rendered, "$SCHEDULE_CRON_EXPR")
	assert.NotContains(t, rendered, "$MATRIX_LANGUAGE_EXPR")

	// The workflow's own expressions pass through untouched
	assert.Contains(t, rendered, "${{ matrix.language }}")
}

func TestWorkflowConfigRenderIsValidYAML(t *testing.T) {
	cfg := NewWorkflowConfig("develop", []string{"python"}, rand.New(rand.NewSource(3)))

	var doc map[string]interface{}
	require.NoError(t, yaml.Unmarshal([]byte(cfg.Render()), &doc))

	assert.Equal(t, "CodeQL", doc["name"])
	require.Contains(t, doc, "jobs")
}

func TestMatrixExpr(t *testing.T) {
	cfg := WorkflowConfig{Languages: []string{"cpp", "csharp", "ruby"}}
	assert.Equal(t, "'cpp', 'csharp', 'ruby'", cfg.MatrixExpr())

	single := WorkflowConfig{Languages: []string{"go"}}
	assert.Equal(t, "'go'", single.MatrixExpr())
}

func TestWorkflowTemplateHasNoStrayPlaceholders(t *testing.T) {
	// Every $-token in the template that looks like one of ours must be
	// one of the three supported names
	for _, name := range []string{"DEFAULT_BRANCH_EXPR", "SCHEDULE_CRON_EXPR", "MATRIX_LANGUAGE_EXPR"} {
		assert.True(t, strings.Contains(workflowTemplate, "$"+name))
	}
}
