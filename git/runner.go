package git

import (
	"os/exec"
	"strings"
)

// CommandRunner executes external commands in a working directory.
type CommandRunner interface {
	// Run executes the command and returns its trimmed combined output.
	Run(dir, name string, args ...string) (string, error)
}

// ExecRunner runs commands with os/exec.
type ExecRunner struct{}

// NewExecRunner creates a runner backed by os/exec.
func NewExecRunner() *ExecRunner {
	return &ExecRunner{}
}

// Run implements CommandRunner.
func (r *ExecRunner) Run(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir
	output, err := cmd.CombinedOutput()
	return strings.TrimSpace(string(output)), err
}

// MockRunner replays queued outputs for tests. Calls are recorded in
// order so tests can assert the command sequence.
type MockRunner struct {
	outputs []mockOutput
	Calls   []string
}

type mockOutput struct {
	output string
	err    error
}

// NewMockRunner creates an empty mock runner.
func NewMockRunner() *MockRunner {
	return &MockRunner{}
}

// AddOutput queues the output and error for the next call.
func (r *MockRunner) AddOutput(output string, err error) {
	r.outputs = append(r.outputs, mockOutput{output: output, err: err})
}

// Run implements CommandRunner. Exhausting the queue returns empty
// output with no error.
func (r *MockRunner) Run(dir, name string, args ...string) (string, error) {
	r.Calls = append(r.Calls, name+" "+strings.Join(args, " "))

	if len(r.outputs) == 0 {
		return "", nil
	}
	next := r.outputs[0]
	r.outputs = r.outputs[1:]
	return next.output, next.err
}
