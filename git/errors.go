package git

import "errors"

// ErrNotGitRepo indicates the path is not a git repository.
var ErrNotGitRepo = errors.New("not a git repository")

// Error wraps a git command error with context.
type Error struct {
	Op     string // Operation that failed (e.g., "status")
	Output string // Combined stdout/stderr output
	Err    error  // Underlying error
}

func (e *Error) Error() string {
	if e.Output != "" {
		return e.Op + ": " + e.Output
	}
	return e.Op + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}
