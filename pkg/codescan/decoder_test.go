package codescan

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildStream concatenates n pages of analyses with no delimiter, the way
// the collaborator's pagination loop emits them, and returns the stream
// plus the expected flattened ids.
func buildStream(t *testing.T, pages [][]Analysis) ([]byte, []int64) {
	t.Helper()

	var buf strings.Builder
	var ids []int64
	for _, page := range pages {
		data, err := json.Marshal(page)
		require.NoError(t, err)
		buf.Write(data)
		for _, a := range page {
			ids = append(ids, a.ID)
		}
	}
	return []byte(buf.String()), ids
}

func TestDecodeAnalysesConcatenatedPages(t *testing.T) {
	tests := []struct {
		name  string
		pages int
	}{
		{"no documents", 0},
		{"one document", 1},
		{"two documents", 2},
		{"five documents", 5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var pages [][]Analysis
			id := int64(1)
			for p := 0; p < tt.pages; p++ {
				var page []Analysis
				for i := 0; i <= p; i++ {
					page = append(page, Analysis{
						ID:          id,
						Ref:         "refs/heads/main",
						AnalysisKey: fmt.Sprintf(".github/workflows/codeql-analysis.yml:analyze-%d", id),
					})
					id++
				}
				pages = append(pages, page)
			}

			stream, wantIDs := buildStream(t, pages)

			got, err := DecodeAnalyses(stream)
			require.NoError(t, err)

			var gotIDs []int64
			for _, a := range got {
				gotIDs = append(gotIDs, a.ID)
			}
			// Encounter order across pages must be preserved
			assert.Equal(t, wantIDs, gotIDs)
		})
	}
}

func TestDecodeAnalysesEmptyInput(t *testing.T) {
	for _, input := range []string{"", "   ", "\n"} {
		got, err := DecodeAnalyses([]byte(input))
		require.NoError(t, err)
		assert.Empty(t, got)
	}
}

func TestDecodeAnalysesMalformedTrailingFragment(t *testing.T) {
	stream, _ := buildStream(t, [][]Analysis{
		{{ID: 1}, {ID: 2}},
		{{ID: 3}},
	})
	stream = append(stream, []byte(`[{"id": 4`)...)

	_, err := DecodeAnalyses(stream)
	require.Error(t, err, "truncated trailing document must not be silently dropped")
	assert.True(t, IsFatal(err))
}

func TestDecodeAnalysesGarbageInput(t *testing.T) {
	_, err := DecodeAnalyses([]byte("not json at all"))
	require.Error(t, err)

	var scanErr *ScanError
	require.ErrorAs(t, err, &scanErr)
	assert.Equal(t, ErrorTypeDecode, scanErr.Type)
}

func TestDecodeAlerts(t *testing.T) {
	page1 := `[{"number": 7, "state": "open", "rule": {"id": "go/sql-injection", "tags": ["security"]},
		"most_recent_instance": {"location": {"path": "db/query.go", "start_line": 42}}}]`
	page2 := `[{"number": 9, "state": "dismissed", "rule": {"id": "go/xss"},
		"most_recent_instance": {"location": {"path": "web/render.go", "start_line": 10}}}]`

	alerts, err := DecodeAlerts([]byte(page1 + page2))
	require.NoError(t, err)
	require.Len(t, alerts, 2)

	assert.Equal(t, 7, alerts[0].Number)
	assert.Equal(t, "go/sql-injection", alerts[0].Rule.ID)
	assert.Equal(t, "db/query.go", alerts[0].MostRecentInstance.Location.Path)
	assert.Equal(t, 42, alerts[0].MostRecentInstance.Location.StartLine)
	assert.Equal(t, "dismissed", alerts[1].State)
}
