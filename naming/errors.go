package naming

import "errors"

// Generation errors. Validation never returns an error value; it reports
// problems in the result struct so callers can surface suggestions.
var (
	// ErrInvalidBranchType indicates an unrecognized branch type.
	ErrInvalidBranchType = errors.New("invalid branch type")

	// ErrEmptyDescription indicates a missing branch description.
	ErrEmptyDescription = errors.New("description cannot be empty")

	// ErrInvalidIssueRef indicates an issue ref not matching PROJECT-123.
	ErrInvalidIssueRef = errors.New("invalid issue ref format")

	// ErrEmptySlug indicates a description with no usable characters
	// once normalized.
	ErrEmptySlug = errors.New("description must contain at least one valid character")

	// ErrInvalidCommitType indicates an unrecognized commit type.
	ErrInvalidCommitType = errors.New("invalid commit type")

	// ErrEmptySubject indicates a missing commit subject.
	ErrEmptySubject = errors.New("subject cannot be empty")

	// ErrInvalidScope indicates a scope with no usable characters once
	// normalized.
	ErrInvalidScope = errors.New("scope must contain at least one valid character")

	// ErrEmptyTitle indicates a missing PR title.
	ErrEmptyTitle = errors.New("title cannot be empty")
)
