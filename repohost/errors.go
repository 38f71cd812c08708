package repohost

import "errors"

// Host errors
var (
	// ErrTokenRequired indicates no access token was provided.
	ErrTokenRequired = errors.New("access token is required")

	// ErrOwnerRequired indicates no owner or namespace was provided
	// for an unqualified repository name.
	ErrOwnerRequired = errors.New("repository owner is required")

	// ErrUnknownHost indicates the git remote points at an unknown host.
	ErrUnknownHost = errors.New("unknown repository host")

	// ErrBaseBranchNotFound indicates the base branch for a new branch
	// does not exist.
	ErrBaseBranchNotFound = errors.New("base branch not found")

	// ErrBranchExists indicates the branch already exists.
	ErrBranchExists = errors.New("branch already exists")

	// ErrPRExists indicates a pull request already exists for the branch.
	ErrPRExists = errors.New("pull request already exists for this branch")

	// ErrNoChanges indicates there are no commits between branches.
	ErrNoChanges = errors.New("no changes between branches")
)
