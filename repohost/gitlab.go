package repohost

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/xanzy/go-gitlab"
)

// GitLabConfig configures a GitLab host.
type GitLabConfig struct {
	// Token is a personal access token (required).
	Token string

	// Namespace is the default namespace for unqualified project names.
	Namespace string

	// BaseURL is the GitLab instance URL, empty for gitlab.com.
	BaseURL string

	// HTTPClient overrides the underlying HTTP client.
	HTTPClient *http.Client
}

// GitLab implements Host for GitLab projects. Pull requests map to
// merge requests.
type GitLab struct {
	client    *gitlab.Client
	namespace string
}

var _ Host = (*GitLab)(nil)

// NewGitLab creates a GitLab host.
func NewGitLab(cfg GitLabConfig) (*GitLab, error) {
	if cfg.Token == "" {
		return nil, ErrTokenRequired
	}

	var opts []gitlab.ClientOptionFunc
	if cfg.BaseURL != "" {
		opts = append(opts, gitlab.WithBaseURL(cfg.BaseURL))
	}
	if cfg.HTTPClient != nil {
		opts = append(opts, gitlab.WithHTTPClient(cfg.HTTPClient))
	}

	client, err := gitlab.NewClient(cfg.Token, opts...)
	if err != nil {
		return nil, fmt.Errorf("create GitLab client: %w", err)
	}

	return &GitLab{client: client, namespace: cfg.Namespace}, nil
}

// project resolves a repo argument to a GitLab project path.
func (g *GitLab) project(repo string) (string, error) {
	if strings.Contains(repo, "/") {
		return repo, nil
	}
	if g.namespace == "" {
		return "", fmt.Errorf("%w for %q", ErrOwnerRequired, repo)
	}
	return g.namespace + "/" + repo, nil
}

// Repository implements Host.
func (g *GitLab) Repository(ctx context.Context, repo string) (*Repository, error) {
	pid, err := g.project(repo)
	if err != nil {
		return nil, err
	}

	p, _, err := g.client.Projects.GetProject(pid, nil, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	return &Repository{
		Name:          p.Path,
		FullName:      p.PathWithNamespace,
		DefaultBranch: p.DefaultBranch,
		Private:       p.Visibility == gitlab.PrivateVisibility,
		URL:           p.WebURL,
		Description:   p.Description,
	}, nil
}

// Branches implements Host.
func (g *GitLab) Branches(ctx context.Context, repo string) ([]Branch, error) {
	pid, err := g.project(repo)
	if err != nil {
		return nil, err
	}

	opts := &gitlab.ListBranchesOptions{
		ListOptions: gitlab.ListOptions{PerPage: 100},
	}
	branches, _, err := g.client.Branches.ListBranches(pid, opts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	result := make([]Branch, len(branches))
	for i, b := range branches {
		result[i] = branchFromGitLab(b)
	}
	return result, nil
}

// Branch implements Host. A missing branch returns (nil, nil).
func (g *GitLab) Branch(ctx context.Context, repo, branch string) (*Branch, error) {
	pid, err := g.project(repo)
	if err != nil {
		return nil, err
	}

	b, resp, err := g.client.Branches.GetBranch(pid, branch, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}

	result := branchFromGitLab(b)
	return &result, nil
}

// CreateBranch implements Host.
func (g *GitLab) CreateBranch(ctx context.Context, repo, branch, base string) (*Branch, error) {
	pid, err := g.project(repo)
	if err != nil {
		return nil, err
	}

	if base == "" {
		repository, err := g.Repository(ctx, repo)
		if err != nil {
			return nil, err
		}
		base = repository.DefaultBranch
	}

	opts := &gitlab.CreateBranchOptions{
		Branch: gitlab.Ptr(branch),
		Ref:    gitlab.Ptr(base),
	}
	b, resp, err := g.client.Branches.CreateBranch(pid, opts, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusBadRequest &&
			strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("%w: %q", ErrBranchExists, branch)
		}
		if resp != nil && resp.StatusCode == http.StatusBadRequest &&
			strings.Contains(err.Error(), "invalid reference") {
			return nil, fmt.Errorf("%w: %q", ErrBaseBranchNotFound, base)
		}
		return nil, fmt.Errorf("create branch: %w", err)
	}

	result := branchFromGitLab(b)
	return &result, nil
}

// DeleteBranch implements Host. Returns false if the branch did not exist.
func (g *GitLab) DeleteBranch(ctx context.Context, repo, branch string) (bool, error) {
	pid, err := g.project(repo)
	if err != nil {
		return false, err
	}

	resp, err := g.client.Branches.DeleteBranch(pid, branch, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("delete branch: %w", err)
	}
	return true, nil
}

// PullRequests implements Host.
func (g *GitLab) PullRequests(ctx context.Context, repo string, state PRState, limit int) ([]*PullRequest, error) {
	pid, err := g.project(repo)
	if err != nil {
		return nil, err
	}

	opts := &gitlab.ListProjectMergeRequestsOptions{
		ListOptions: gitlab.ListOptions{PerPage: 30},
	}
	switch state {
	case PRStateOpen, "":
		opts.State = gitlab.Ptr("opened")
	case PRStateClosed:
		opts.State = gitlab.Ptr("closed")
	case PRStateAll:
		// no filter
	}
	if limit > 0 {
		opts.PerPage = limit
	}

	mrs, _, err := g.client.MergeRequests.ListProjectMergeRequests(pid, opts, gitlab.WithContext(ctx))
	if err != nil {
		return nil, fmt.Errorf("list merge requests: %w", err)
	}

	result := make([]*PullRequest, len(mrs))
	for i, mr := range mrs {
		result[i] = prFromGitLab(mr)
	}
	return result, nil
}

// PullRequest implements Host. A missing MR returns (nil, nil).
func (g *GitLab) PullRequest(ctx context.Context, repo string, number int) (*PullRequest, error) {
	pid, err := g.project(repo)
	if err != nil {
		return nil, err
	}

	mr, resp, err := g.client.MergeRequests.GetMergeRequest(pid, number, nil, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get merge request: %w", err)
	}
	return prFromGitLab(mr), nil
}

// CreatePullRequest implements Host.
func (g *GitLab) CreatePullRequest(ctx context.Context, repo string, opts PROptions) (*PullRequest, error) {
	pid, err := g.project(repo)
	if err != nil {
		return nil, err
	}

	base := opts.Base
	if base == "" {
		repository, err := g.Repository(ctx, repo)
		if err != nil {
			return nil, err
		}
		base = repository.DefaultBranch
	}

	title := opts.Title
	// Older GitLab versions have no draft flag on the create API, the
	// title prefix works everywhere.
	if opts.Draft {
		title = "Draft: " + title
	}

	mrOpts := &gitlab.CreateMergeRequestOptions{
		Title:        gitlab.Ptr(title),
		Description:  gitlab.Ptr(opts.Body),
		SourceBranch: gitlab.Ptr(opts.Head),
		TargetBranch: gitlab.Ptr(base),
	}
	mr, resp, err := g.client.MergeRequests.CreateMergeRequest(pid, mrOpts, gitlab.WithContext(ctx))
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusConflict {
			return nil, ErrPRExists
		}
		return nil, fmt.Errorf("create merge request: %w", err)
	}
	return prFromGitLab(mr), nil
}

func branchFromGitLab(b *gitlab.Branch) Branch {
	result := Branch{
		Name:      b.Name,
		Protected: b.Protected,
	}
	if b.Commit != nil {
		result.SHA = b.Commit.ID
	}
	return result
}

// prFromGitLab converts a GitLab MR to our PullRequest type.
func prFromGitLab(mr *gitlab.MergeRequest) *PullRequest {
	result := &PullRequest{
		Number:  mr.IID,
		Title:   mr.Title,
		Body:    mr.Description,
		URL:     mr.WebURL,
		Head:    mr.SourceBranch,
		HeadSHA: mr.SHA,
		Base:    mr.TargetBranch,
		Merged:  mr.State == "merged",
		Draft: strings.HasPrefix(mr.Title, "Draft:") ||
			strings.HasPrefix(mr.Title, "WIP:"),
	}

	// Normalize state names to the GitHub-style vocabulary.
	switch mr.State {
	case "opened":
		result.State = string(PRStateOpen)
	case "merged", "closed":
		result.State = string(PRStateClosed)
	default:
		result.State = mr.State
	}

	if mr.Author != nil {
		result.Author = mr.Author.Username
	}
	if mr.CreatedAt != nil {
		result.CreatedAt = *mr.CreatedAt
	}
	if mr.UpdatedAt != nil {
		result.UpdatedAt = *mr.UpdatedAt
	}
	if mr.MergedAt != nil {
		result.MergedAt = mr.MergedAt
	}

	return result
}
