package repohost

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/go-github/v57/github"
	"golang.org/x/oauth2"
)

// GitHubConfig configures a GitHub host.
type GitHubConfig struct {
	// Token is a personal access token or GitHub App token (required).
	Token string

	// Owner is the default owner/org for unqualified repository names.
	Owner string

	// BaseURL overrides the API endpoint, for GitHub Enterprise or tests.
	BaseURL string

	// HTTPClient overrides the underlying HTTP client. When set, Token
	// is not wired automatically and the client must authenticate itself.
	HTTPClient *http.Client
}

// GitHub implements Host for GitHub repositories.
type GitHub struct {
	client *github.Client
	owner  string
}

var _ Host = (*GitHub)(nil)

// NewGitHub creates a GitHub host.
func NewGitHub(cfg GitHubConfig) (*GitHub, error) {
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		if cfg.Token == "" {
			return nil, ErrTokenRequired
		}
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: cfg.Token})
		httpClient = oauth2.NewClient(context.Background(), ts)
	}

	client := github.NewClient(httpClient)
	if cfg.BaseURL != "" {
		base, err := url.Parse(strings.TrimSuffix(cfg.BaseURL, "/") + "/")
		if err != nil {
			return nil, fmt.Errorf("parse base URL: %w", err)
		}
		client.BaseURL = base
	}

	return &GitHub{client: client, owner: cfg.Owner}, nil
}

func (g *GitHub) repo(repo string) (owner, name string, err error) {
	owner, name = splitRepo(repo, g.owner)
	if owner == "" {
		return "", "", fmt.Errorf("%w for %q", ErrOwnerRequired, repo)
	}
	return owner, name, nil
}

// Repository implements Host.
func (g *GitHub) Repository(ctx context.Context, repo string) (*Repository, error) {
	owner, name, err := g.repo(repo)
	if err != nil {
		return nil, err
	}

	r, _, err := g.client.Repositories.Get(ctx, owner, name)
	if err != nil {
		return nil, fmt.Errorf("get repository: %w", err)
	}

	return &Repository{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		DefaultBranch: r.GetDefaultBranch(),
		Private:       r.GetPrivate(),
		URL:           r.GetHTMLURL(),
		Description:   r.GetDescription(),
	}, nil
}

// Branches implements Host.
func (g *GitHub) Branches(ctx context.Context, repo string) ([]Branch, error) {
	owner, name, err := g.repo(repo)
	if err != nil {
		return nil, err
	}

	opts := &github.BranchListOptions{
		ListOptions: github.ListOptions{PerPage: 100},
	}
	branches, _, err := g.client.Repositories.ListBranches(ctx, owner, name, opts)
	if err != nil {
		return nil, fmt.Errorf("list branches: %w", err)
	}

	result := make([]Branch, len(branches))
	for i, b := range branches {
		result[i] = branchFromGitHub(b)
	}
	return result, nil
}

// Branch implements Host. A missing branch returns (nil, nil).
func (g *GitHub) Branch(ctx context.Context, repo, branch string) (*Branch, error) {
	owner, name, err := g.repo(repo)
	if err != nil {
		return nil, err
	}

	b, resp, err := g.client.Repositories.GetBranch(ctx, owner, name, branch, 0)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get branch: %w", err)
	}

	result := branchFromGitHub(b)
	return &result, nil
}

// CreateBranch implements Host. The new branch is created as a git ref
// pointing at the base branch's head commit.
func (g *GitHub) CreateBranch(ctx context.Context, repo, branch, base string) (*Branch, error) {
	owner, name, err := g.repo(repo)
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

	baseBranch, err := g.Branch(ctx, repo, base)
	if err != nil {
		return nil, err
	}
	if baseBranch == nil {
		return nil, fmt.Errorf("%w: %q", ErrBaseBranchNotFound, base)
	}

	ref := &github.Reference{
		Ref:    github.String("refs/heads/" + branch),
		Object: &github.GitObject{SHA: github.String(baseBranch.SHA)},
	}
	created, resp, err := g.client.Git.CreateRef(ctx, owner, name, ref)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity &&
			strings.Contains(err.Error(), "already exists") {
			return nil, fmt.Errorf("%w: %q", ErrBranchExists, branch)
		}
		return nil, fmt.Errorf("create branch: %w", err)
	}

	return &Branch{
		Name: branch,
		SHA:  created.GetObject().GetSHA(),
	}, nil
}

// DeleteBranch implements Host. Returns false if the branch did not exist.
func (g *GitHub) DeleteBranch(ctx context.Context, repo, branch string) (bool, error) {
	owner, name, err := g.repo(repo)
	if err != nil {
		return false, err
	}

	resp, err := g.client.Git.DeleteRef(ctx, owner, name, "heads/"+branch)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return false, nil
		}
		return false, fmt.Errorf("delete branch: %w", err)
	}
	return true, nil
}

// PullRequests implements Host.
func (g *GitHub) PullRequests(ctx context.Context, repo string, state PRState, limit int) ([]*PullRequest, error) {
	owner, name, err := g.repo(repo)
	if err != nil {
		return nil, err
	}

	opts := &github.PullRequestListOptions{
		State:       string(PRStateOpen),
		ListOptions: github.ListOptions{PerPage: 30},
	}
	if state != "" {
		opts.State = string(state)
	}
	if limit > 0 {
		opts.PerPage = limit
	}

	prs, _, err := g.client.PullRequests.List(ctx, owner, name, opts)
	if err != nil {
		return nil, fmt.Errorf("list pull requests: %w", err)
	}

	result := make([]*PullRequest, len(prs))
	for i, pr := range prs {
		result[i] = prFromGitHub(pr)
	}
	return result, nil
}

// PullRequest implements Host. A missing PR returns (nil, nil).
func (g *GitHub) PullRequest(ctx context.Context, repo string, number int) (*PullRequest, error) {
	owner, name, err := g.repo(repo)
	if err != nil {
		return nil, err
	}

	pr, resp, err := g.client.PullRequests.Get(ctx, owner, name, number)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, nil
		}
		return nil, fmt.Errorf("get pull request: %w", err)
	}
	return prFromGitHub(pr), nil
}

// CreatePullRequest implements Host.
func (g *GitHub) CreatePullRequest(ctx context.Context, repo string, opts PROptions) (*PullRequest, error) {
	owner, name, err := g.repo(repo)
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

	newPR := &github.NewPullRequest{
		Title: github.String(opts.Title),
		Body:  github.String(opts.Body),
		Head:  github.String(opts.Head),
		Base:  github.String(base),
		Draft: github.Bool(opts.Draft),
	}
	pr, resp, err := g.client.PullRequests.Create(ctx, owner, name, newPR)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnprocessableEntity {
			if strings.Contains(err.Error(), "A pull request already exists") {
				return nil, ErrPRExists
			}
			if strings.Contains(err.Error(), "No commits between") {
				return nil, ErrNoChanges
			}
		}
		return nil, fmt.Errorf("create pull request: %w", err)
	}
	return prFromGitHub(pr), nil
}

func branchFromGitHub(b *github.Branch) Branch {
	return Branch{
		Name:      b.GetName(),
		SHA:       b.GetCommit().GetSHA(),
		Protected: b.GetProtected(),
	}
}

// prFromGitHub converts a GitHub PR to our PullRequest type.
func prFromGitHub(pr *github.PullRequest) *PullRequest {
	result := &PullRequest{
		Number: pr.GetNumber(),
		Title:  pr.GetTitle(),
		Body:   pr.GetBody(),
		State:  pr.GetState(),
		Draft:  pr.GetDraft(),
		Merged: pr.GetMerged(),
		URL:    pr.GetHTMLURL(),
		Author: pr.GetUser().GetLogin(),
	}

	if pr.Head != nil {
		result.Head = pr.Head.GetRef()
		result.HeadSHA = pr.Head.GetSHA()
	}
	if pr.Base != nil {
		result.Base = pr.Base.GetRef()
	}

	if pr.CreatedAt != nil {
		result.CreatedAt = pr.CreatedAt.Time
	}
	if pr.UpdatedAt != nil {
		result.UpdatedAt = pr.UpdatedAt.Time
	}
	if pr.MergedAt != nil {
		t := pr.MergedAt.Time
		result.MergedAt = &t
	}

	return result
}
