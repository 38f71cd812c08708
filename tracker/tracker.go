package tracker

import (
	"context"
	"time"
)

// Priority levels used by the tracker. Zero means no priority.
const (
	PriorityNone   = 0
	PriorityUrgent = 1
	PriorityHigh   = 2
	PriorityNormal = 3
	PriorityLow    = 4
)

// PriorityLabels maps priority levels to their display names.
var PriorityLabels = map[int]string{
	PriorityNone:   "No priority",
	PriorityUrgent: "Urgent",
	PriorityHigh:   "High",
	PriorityNormal: "Normal",
	PriorityLow:    "Low",
}

// Client is the interface to the issue tracker.
// All operations re-query the remote service; nothing is cached.
type Client interface {
	// ProjectByKey resolves a team/project by its key (e.g. "FAVRES").
	// Returns (nil, nil) when no team matches.
	ProjectByKey(ctx context.Context, key string) (*Team, error)

	// States lists the workflow states of a team.
	States(ctx context.Context, teamID string) ([]WorkflowState, error)

	// StateByName resolves a workflow state by case-insensitive name.
	// Returns (nil, nil) when no state matches.
	StateByName(ctx context.Context, teamID, name string) (*WorkflowState, error)

	// Labels lists the issue labels of a team.
	Labels(ctx context.Context, teamID string) ([]Label, error)

	// Users lists all users in the workspace.
	Users(ctx context.Context) ([]User, error)

	// CreateIssue creates a new issue.
	CreateIssue(ctx context.Context, input CreateIssueInput) (*Issue, error)

	// UpdateIssue updates an existing issue by its internal ID.
	// Nil input fields are left unchanged.
	UpdateIssue(ctx context.Context, issueID string, input UpdateIssueInput) (*Issue, error)

	// FindIssue looks up an issue by identifier (e.g. "FAVRES-123").
	// Returns (nil, nil) when no issue matches.
	FindIssue(ctx context.Context, identifier string) (*Issue, error)
}

// Team is a tracker team/project.
type Team struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Key  string `json:"key"`
}

// WorkflowState is an issue state within a team (e.g. "In Progress").
type WorkflowState struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Type  string `json:"type,omitempty"`
	Color string `json:"color,omitempty"`
}

// Label is an issue label.
type Label struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
}

// User is a workspace user.
type User struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"displayName,omitempty"`
}

// Issue is a tracker issue.
type Issue struct {
	ID            string         `json:"id"`
	Identifier    string         `json:"identifier"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Priority      int            `json:"priority"`
	PriorityLabel string         `json:"priorityLabel,omitempty"`
	URL           string         `json:"url,omitempty"`
	State         *WorkflowState `json:"state,omitempty"`
	Assignee      *User          `json:"assignee,omitempty"`
	Labels        []Label        `json:"labels,omitempty"`
	Team          *Team          `json:"team,omitempty"`
	CreatedAt     time.Time      `json:"createdAt,omitempty"`
	UpdatedAt     time.Time      `json:"updatedAt,omitempty"`
}

// CreateIssueInput holds the fields for creating an issue.
type CreateIssueInput struct {
	Title       string   // required
	Description string   // optional
	TeamID      string   // required
	Priority    int      // 0-4, see priority constants
	ProjectID   string   // optional
	AssigneeID  string   // optional
	StateID     string   // optional
	LabelIDs    []string // optional
}

// UpdateIssueInput holds the fields for updating an issue.
// Nil fields are left unchanged.
type UpdateIssueInput struct {
	Title       *string
	Description *string
	Priority    *int
	StateID     *string
	AssigneeID  *string
	LabelIDs    []string // nil = no change
}
