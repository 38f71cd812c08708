package repohost

import (
	"context"
	"strings"
	"time"
)

// PRState filters pull request listings.
type PRState string

const (
	PRStateOpen   PRState = "open"
	PRStateClosed PRState = "closed"
	PRStateAll    PRState = "all"
)

// Host is the interface for repository hosting services.
// Implementations exist for GitHub and GitLab.
type Host interface {
	// Repository returns repository metadata.
	Repository(ctx context.Context, repo string) (*Repository, error)

	// Branches lists branches in a repository.
	Branches(ctx context.Context, repo string) ([]Branch, error)

	// Branch returns a branch, or (nil, nil) if it does not exist.
	Branch(ctx context.Context, repo, name string) (*Branch, error)

	// CreateBranch creates a branch off base. An empty base means the
	// repository's default branch.
	CreateBranch(ctx context.Context, repo, name, base string) (*Branch, error)

	// DeleteBranch deletes a branch. Returns false if it did not exist.
	DeleteBranch(ctx context.Context, repo, name string) (bool, error)

	// PullRequests lists pull requests. An empty state means open;
	// limit 0 means the service default page size.
	PullRequests(ctx context.Context, repo string, state PRState, limit int) ([]*PullRequest, error)

	// PullRequest returns a pull request by number, or (nil, nil) if
	// it does not exist.
	PullRequest(ctx context.Context, repo string, number int) (*PullRequest, error)

	// CreatePullRequest opens a new pull request. An empty base means
	// the repository's default branch.
	CreatePullRequest(ctx context.Context, repo string, opts PROptions) (*PullRequest, error)
}

// Repository holds repository metadata.
type Repository struct {
	Name          string `json:"name"`
	FullName      string `json:"full_name"`
	DefaultBranch string `json:"default_branch"`
	Private       bool   `json:"private"`
	URL           string `json:"html_url"`
	Description   string `json:"description,omitempty"`
}

// Branch is a branch head.
type Branch struct {
	Name      string `json:"name"`
	SHA       string `json:"sha"`
	Protected bool   `json:"protected"`
}

// PullRequest represents a pull request (a merge request on GitLab).
type PullRequest struct {
	Number    int        `json:"number"`
	Title     string     `json:"title"`
	Body      string     `json:"body,omitempty"`
	State     string     `json:"state"`
	Draft     bool       `json:"draft"`
	Merged    bool       `json:"merged"`
	URL       string     `json:"html_url"`
	Head      string     `json:"head"`
	HeadSHA   string     `json:"head_sha,omitempty"`
	Base      string     `json:"base"`
	Author    string     `json:"author,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
	MergedAt  *time.Time `json:"merged_at,omitempty"`
}

// PROptions configures pull request creation.
type PROptions struct {
	Title string // required
	Head  string // source branch (required)
	Base  string // target branch (empty = repository default)
	Body  string // description (markdown)
	Draft bool
}

// splitRepo resolves "name" against a default owner, or splits
// "owner/name" as-is.
func splitRepo(repo, defaultOwner string) (owner, name string) {
	if owner, name, ok := strings.Cut(repo, "/"); ok {
		return owner, name
	}
	return defaultOwner, repo
}
