// Package fuzzy provides interactive multi-selection of repositories when
// none are given on the command line.
package fuzzy

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	fzf "github.com/junegunn/fzf/src"
)

// FzfRunner defines the interface for running fzf
type FzfRunner interface {
	Run(opts *fzf.Options) (int, error)
}

// DefaultFzfRunner implements the FzfRunner interface using the real fzf library
type DefaultFzfRunner struct{}

// Run executes fzf with the given options
func (r *DefaultFzfRunner) Run(opts *fzf.Options) (int, error) {
	return fzf.Run(opts)
}

// Picker selects one or more items from a candidate list, preferring fzf
// and falling back to a numbered prompt when fzf cannot run.
type Picker struct {
	prompt     string
	candidates []string
	runner     FzfRunner
}

// NewPicker creates a picker over the given candidates
func NewPicker(prompt string, candidates []string) *Picker {
	return &Picker{
		prompt:     prompt,
		candidates: candidates,
		runner:     &DefaultFzfRunner{},
	}
}

// NewPickerWithRunner creates a picker with a custom fzf runner (for testing)
func NewPickerWithRunner(prompt string, candidates []string, runner FzfRunner) *Picker {
	return &Picker{
		prompt:     prompt,
		candidates: candidates,
		runner:     runner,
	}
}

// PickMany starts the selection and returns the chosen items in selection
// order. Tab marks multiple entries in fzf; the fallback prompt accepts a
// comma-separated list of numbers.
func (p *Picker) PickMany() ([]string, error) {
	if len(p.candidates) == 0 {
		return nil, fmt.Errorf("no candidates available")
	}

	selected, err := p.pickWithFzf()
	if err == nil {
		return selected, nil
	}

	return p.fallbackPick(os.Stdin, os.Stdout)
}

// pickWithFzf feeds the candidates to fzf through a temporary file and
// reads the selection back from a captured stdout.
func (p *Picker) pickWithFzf() ([]string, error) {
	tmpFile, err := os.CreateTemp("", "codescanctl-pick-*.txt")
	if err != nil {
		return nil, fmt.Errorf("failed to create temporary file: %w", err)
	}
	defer func() {
		_ = os.Remove(tmpFile.Name()) // Ignore cleanup errors
	}()

	for _, candidate := range p.candidates {
		if _, err := fmt.Fprintln(tmpFile, candidate); err != nil {
			_ = tmpFile.Close()
			return nil, fmt.Errorf("failed to write candidate to file: %w", err)
		}
	}
	if err := tmpFile.Close(); err != nil {
		return nil, fmt.Errorf("failed to close temporary file: %w", err)
	}

	args := []string{
		"--prompt=" + p.prompt + " ",
		"--height=15",
		"--layout=default",
		"--multi",
		"--cycle",
		"--no-mouse",
		"--border=none",
	}

	opts, err := fzf.ParseOptions(true, args)
	if err != nil {
		return nil, fmt.Errorf("failed to parse fzf options: %w", err)
	}

	originalStdin := os.Stdin
	defer func() { os.Stdin = originalStdin }()

	input, err := os.Open(tmpFile.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to open temporary file for reading: %w", err)
	}
	defer func() {
		_ = input.Close() // Ignore close errors
	}()
	os.Stdin = input

	originalStdout := os.Stdout
	defer func() { os.Stdout = originalStdout }()

	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("failed to create pipe: %w", err)
	}
	defer func() {
		_ = r.Close() // Ignore close errors
	}()
	os.Stdout = w

	exitCode, err := p.runner.Run(opts)

	_ = w.Close()
	os.Stdout = originalStdout

	if err != nil {
		return nil, fmt.Errorf("fzf failed: %w", err)
	}
	if exitCode != fzf.ExitOk {
		return nil, fmt.Errorf("selection cancelled")
	}

	result, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read fzf result: %w", err)
	}

	var selected []string
	for _, line := range strings.Split(string(result), "\n") {
		if line = strings.TrimSpace(line); line != "" {
			selected = append(selected, line)
		}
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no selection made")
	}
	return selected, nil
}

// fallbackPick lists the candidates with numbers and reads a
// comma-separated selection.
func (p *Picker) fallbackPick(in io.Reader, out io.Writer) ([]string, error) {
	fmt.Fprintln(out, p.prompt)
	fmt.Fprintln(out, strings.Repeat("-", len(p.prompt)))
	for i, candidate := range p.candidates {
		fmt.Fprintf(out, "%d. %s\n", i+1, candidate)
	}
	fmt.Fprintf(out, "\nSelect (e.g. 1,3,5): ")

	reader := bufio.NewReader(in)
	input, err := reader.ReadString('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read input: %w", err)
	}

	var selected []string
	for _, field := range strings.Split(strings.TrimSpace(input), ",") {
		field = strings.TrimSpace(field)
		if field == "" {
			continue
		}
		n, err := strconv.Atoi(field)
		if err != nil {
			return nil, fmt.Errorf("invalid selection: %s", field)
		}
		if n < 1 || n > len(p.candidates) {
			return nil, fmt.Errorf("selection out of range: %d", n)
		}
		selected = append(selected, p.candidates[n-1])
	}
	if len(selected) == 0 {
		return nil, fmt.Errorf("no selection made")
	}
	return selected, nil
}
