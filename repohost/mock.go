package repohost

import "context"

// Mock is a mock implementation of Host for testing.
type Mock struct {
	RepositoryFunc        func(ctx context.Context, repo string) (*Repository, error)
	BranchesFunc          func(ctx context.Context, repo string) ([]Branch, error)
	BranchFunc            func(ctx context.Context, repo, name string) (*Branch, error)
	CreateBranchFunc      func(ctx context.Context, repo, name, base string) (*Branch, error)
	DeleteBranchFunc      func(ctx context.Context, repo, name string) (bool, error)
	PullRequestsFunc      func(ctx context.Context, repo string, state PRState, limit int) ([]*PullRequest, error)
	PullRequestFunc       func(ctx context.Context, repo string, number int) (*PullRequest, error)
	CreatePullRequestFunc func(ctx context.Context, repo string, opts PROptions) (*PullRequest, error)
}

var _ Host = (*Mock)(nil)

// Repository implements Host.
func (m *Mock) Repository(ctx context.Context, repo string) (*Repository, error) {
	if m.RepositoryFunc != nil {
		return m.RepositoryFunc(ctx, repo)
	}
	return &Repository{
		Name:          repo,
		FullName:      "mock/" + repo,
		DefaultBranch: "main",
	}, nil
}

// Branches implements Host.
func (m *Mock) Branches(ctx context.Context, repo string) ([]Branch, error) {
	if m.BranchesFunc != nil {
		return m.BranchesFunc(ctx, repo)
	}
	return []Branch{{Name: "main", SHA: "abc123", Protected: true}}, nil
}

// Branch implements Host.
func (m *Mock) Branch(ctx context.Context, repo, name string) (*Branch, error) {
	if m.BranchFunc != nil {
		return m.BranchFunc(ctx, repo, name)
	}
	if name == "main" {
		return &Branch{Name: "main", SHA: "abc123", Protected: true}, nil
	}
	return nil, nil
}

// CreateBranch implements Host.
func (m *Mock) CreateBranch(ctx context.Context, repo, name, base string) (*Branch, error) {
	if m.CreateBranchFunc != nil {
		return m.CreateBranchFunc(ctx, repo, name, base)
	}
	return &Branch{Name: name, SHA: "def456"}, nil
}

// DeleteBranch implements Host.
func (m *Mock) DeleteBranch(ctx context.Context, repo, name string) (bool, error) {
	if m.DeleteBranchFunc != nil {
		return m.DeleteBranchFunc(ctx, repo, name)
	}
	return true, nil
}

// PullRequests implements Host.
func (m *Mock) PullRequests(ctx context.Context, repo string, state PRState, limit int) ([]*PullRequest, error) {
	if m.PullRequestsFunc != nil {
		return m.PullRequestsFunc(ctx, repo, state, limit)
	}
	return []*PullRequest{}, nil
}

// PullRequest implements Host.
func (m *Mock) PullRequest(ctx context.Context, repo string, number int) (*PullRequest, error) {
	if m.PullRequestFunc != nil {
		return m.PullRequestFunc(ctx, repo, number)
	}
	return &PullRequest{Number: number, State: string(PRStateOpen)}, nil
}

// CreatePullRequest implements Host.
func (m *Mock) CreatePullRequest(ctx context.Context, repo string, opts PROptions) (*PullRequest, error) {
	if m.CreatePullRequestFunc != nil {
		return m.CreatePullRequestFunc(ctx, repo, opts)
	}
	return &PullRequest{
		Number: 1,
		Title:  opts.Title,
		Head:   opts.Head,
		Base:   opts.Base,
		State:  string(PRStateOpen),
		URL:    "https://example.com/mock/pull/1",
	}, nil
}
