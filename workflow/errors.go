package workflow

import "errors"

// Workflow errors
var (
	// ErrMissingTitle indicates the feature request has no title.
	ErrMissingTitle = errors.New("feature title is required")

	// ErrMissingProject indicates no project key was given and no
	// default is configured.
	ErrMissingProject = errors.New("project key is required")

	// ErrMissingRepo indicates no repository was given and no default
	// is configured.
	ErrMissingRepo = errors.New("repository is required")

	// ErrProjectNotFound indicates the project key did not resolve to
	// a tracker team.
	ErrProjectNotFound = errors.New("project not found")
)
