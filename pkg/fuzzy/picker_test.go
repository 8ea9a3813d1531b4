package fuzzy

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPicker(t *testing.T) {
	picker := NewPicker("Select repositories:", []string{"acme/api", "acme/web"})
	require.NotNil(t, picker)
	assert.Equal(t, "Select repositories:", picker.prompt)
	assert.Len(t, picker.candidates, 2)
	assert.IsType(t, &DefaultFzfRunner{}, picker.runner)
}

func TestPickManyNoCandidates(t *testing.T) {
	picker := NewPicker("Select:", nil)
	_, err := picker.PickMany()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no candidates")
}

func TestFallbackPickSingle(t *testing.T) {
	picker := NewPicker("Select:", []string{"acme/api", "acme/web", "acme/tools"})

	in := strings.NewReader("2\n")
	out := new(bytes.Buffer)

	selected, err := picker.fallbackPick(in, out)
	require.NoError(t, err)
	assert.Equal(t, []string{"acme/web"}, selected)

	// The prompt lists every candidate with its number
	assert.Contains(t, out.String(), "1. acme/api")
	assert.Contains(t, out.String(), "3. acme/tools")
}

func TestFallbackPickMultiple(t *testing.T) {
	picker := NewPicker("Select:", []string{"acme/api", "acme/web", "acme/tools"})

	selected, err := picker.fallbackPick(strings.NewReader("1, 3\n"), new(bytes.Buffer))
	require.NoError(t, err)
	assert.Equal(t, []string{"acme/api", "acme/tools"}, selected)
}

func TestFallbackPickInvalidInput(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{name: "not a number", input: "abc\n"},
		{name: "out of range high", input: "4\n"},
		{name: "out of range zero", input: "0\n"},
		{name: "empty", input: "\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			picker := NewPicker("Select:", []string{"a/b", "c/d", "e/f"})
			_, err := picker.fallbackPick(strings.NewReader(tt.input), new(bytes.Buffer))
			assert.Error(t, err)
		})
	}
}
