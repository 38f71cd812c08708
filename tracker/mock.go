package tracker

import "context"

// Mock is a mock implementation of Client for testing.
type Mock struct {
	ProjectByKeyFunc func(ctx context.Context, key string) (*Team, error)
	StatesFunc       func(ctx context.Context, teamID string) ([]WorkflowState, error)
	StateByNameFunc  func(ctx context.Context, teamID, name string) (*WorkflowState, error)
	LabelsFunc       func(ctx context.Context, teamID string) ([]Label, error)
	UsersFunc        func(ctx context.Context) ([]User, error)
	CreateIssueFunc  func(ctx context.Context, input CreateIssueInput) (*Issue, error)
	UpdateIssueFunc  func(ctx context.Context, issueID string, input UpdateIssueInput) (*Issue, error)
	FindIssueFunc    func(ctx context.Context, identifier string) (*Issue, error)
}

var _ Client = (*Mock)(nil)

// ProjectByKey implements Client.
func (m *Mock) ProjectByKey(ctx context.Context, key string) (*Team, error) {
	if m.ProjectByKeyFunc != nil {
		return m.ProjectByKeyFunc(ctx, key)
	}
	return &Team{ID: "team-1", Name: "Mock Team", Key: key}, nil
}

// States implements Client.
func (m *Mock) States(ctx context.Context, teamID string) ([]WorkflowState, error) {
	if m.StatesFunc != nil {
		return m.StatesFunc(ctx, teamID)
	}
	return []WorkflowState{}, nil
}

// StateByName implements Client.
func (m *Mock) StateByName(ctx context.Context, teamID, name string) (*WorkflowState, error) {
	if m.StateByNameFunc != nil {
		return m.StateByNameFunc(ctx, teamID, name)
	}
	return nil, nil
}

// Labels implements Client.
func (m *Mock) Labels(ctx context.Context, teamID string) ([]Label, error) {
	if m.LabelsFunc != nil {
		return m.LabelsFunc(ctx, teamID)
	}
	return []Label{}, nil
}

// Users implements Client.
func (m *Mock) Users(ctx context.Context) ([]User, error) {
	if m.UsersFunc != nil {
		return m.UsersFunc(ctx)
	}
	return []User{}, nil
}

// CreateIssue implements Client.
func (m *Mock) CreateIssue(ctx context.Context, input CreateIssueInput) (*Issue, error) {
	if m.CreateIssueFunc != nil {
		return m.CreateIssueFunc(ctx, input)
	}
	return &Issue{ID: "issue-1", Identifier: "MOCK-1", Title: input.Title, Priority: input.Priority}, nil
}

// UpdateIssue implements Client.
func (m *Mock) UpdateIssue(ctx context.Context, issueID string, input UpdateIssueInput) (*Issue, error) {
	if m.UpdateIssueFunc != nil {
		return m.UpdateIssueFunc(ctx, issueID, input)
	}
	return &Issue{ID: issueID}, nil
}

// FindIssue implements Client.
func (m *Mock) FindIssue(ctx context.Context, identifier string) (*Issue, error) {
	if m.FindIssueFunc != nil {
		return m.FindIssueFunc(ctx, identifier)
	}
	return nil, nil
}
