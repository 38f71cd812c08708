package tracker

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	flowhttp "github.com/randalmurphal/issueflow/http"
)

// DefaultLinearURL is the Linear GraphQL endpoint.
const DefaultLinearURL = "https://api.linear.app/graphql"

// LinearConfig holds the configuration for the Linear client.
type LinearConfig struct {
	// APIKey is the Linear API key (lin_api_xxxxx). Required.
	APIKey string

	// URL is the GraphQL endpoint. Defaults to DefaultLinearURL.
	URL string

	// Timeout is the per-request timeout. Defaults to flowhttp.DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the underlying HTTP client (for tests).
	HTTPClient *http.Client
}

// Linear implements Client against the Linear GraphQL API.
type Linear struct {
	http *flowhttp.Client
}

var _ Client = (*Linear)(nil)

// NewLinear creates a new Linear client.
func NewLinear(cfg LinearConfig) (*Linear, error) {
	if cfg.APIKey == "" {
		return nil, ErrAPIKeyRequired
	}

	baseURL := cfg.URL
	if baseURL == "" {
		baseURL = DefaultLinearURL
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = flowhttp.DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	return &Linear{
		http: flowhttp.NewClient(flowhttp.ClientConfig{
			Client:      httpClient,
			BaseURL:     baseURL,
			ServiceName: "linear",
			BeforeRequest: func(req *http.Request) {
				req.Header.Set("Authorization", cfg.APIKey)
			},
		}),
	}, nil
}

// graphqlRequest is the POST body for a GraphQL call.
type graphqlRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables,omitempty"`
}

// execute runs one GraphQL operation and decodes the data payload.
func (l *Linear) execute(ctx context.Context, operation, query string, variables map[string]any, data any) error {
	req := graphqlRequest{Query: query, Variables: variables}

	var resp struct {
		Data   json.RawMessage `json:"data"`
		Errors []struct {
			Message string `json:"message"`
		} `json:"errors"`
	}

	if err := l.http.Post(ctx, "", req, &resp); err != nil {
		return fmt.Errorf("linear %s: %w", operation, err)
	}

	if len(resp.Errors) > 0 {
		gqlErr := &GraphQLError{Operation: operation}
		for _, e := range resp.Errors {
			gqlErr.Messages = append(gqlErr.Messages, e.Message)
		}
		return gqlErr
	}

	if data != nil {
		if err := json.Unmarshal(resp.Data, data); err != nil {
			return fmt.Errorf("decode linear %s response: %w", operation, err)
		}
	}

	return nil
}

// issueFields is the selection set shared by all issue queries.
const issueFields = `
	id
	identifier
	title
	description
	priority
	priorityLabel
	url
	createdAt
	updatedAt
	state {
		id
		name
		type
		color
	}
	assignee {
		id
		name
		email
	}
	labels {
		nodes {
			id
			name
			color
		}
	}
	team {
		id
		name
		key
	}`

// issueNode mirrors the GraphQL issue shape, with labels nested in a
// connection. The outer Labels field shadows the embedded one during
// decoding.
type issueNode struct {
	Issue
	Labels struct {
		Nodes []Label `json:"nodes"`
	} `json:"labels"`
}

func (n issueNode) toIssue() *Issue {
	issue := n.Issue
	issue.Labels = n.Labels.Nodes
	return &issue
}

// ProjectByKey implements Client. Team keys match case-insensitively.
func (l *Linear) ProjectByKey(ctx context.Context, key string) (*Team, error) {
	const query = `
		query Teams {
			teams {
				nodes {
					id
					name
					key
				}
			}
		}`

	var data struct {
		Teams struct {
			Nodes []Team `json:"nodes"`
		} `json:"teams"`
	}
	if err := l.execute(ctx, "teams", query, nil, &data); err != nil {
		return nil, err
	}

	for _, team := range data.Teams.Nodes {
		if strings.EqualFold(team.Key, key) {
			return &team, nil
		}
	}
	return nil, nil
}

// States implements Client.
func (l *Linear) States(ctx context.Context, teamID string) ([]WorkflowState, error) {
	const query = `
		query WorkflowStates($teamId: String!) {
			workflowStates(filter: { team: { id: { eq: $teamId } } }) {
				nodes {
					id
					name
					type
					color
				}
			}
		}`

	var data struct {
		WorkflowStates struct {
			Nodes []WorkflowState `json:"nodes"`
		} `json:"workflowStates"`
	}
	if err := l.execute(ctx, "workflowStates", query, map[string]any{"teamId": teamID}, &data); err != nil {
		return nil, err
	}

	return data.WorkflowStates.Nodes, nil
}

// StateByName implements Client.
func (l *Linear) StateByName(ctx context.Context, teamID, name string) (*WorkflowState, error) {
	states, err := l.States(ctx, teamID)
	if err != nil {
		return nil, err
	}

	for _, state := range states {
		if strings.EqualFold(state.Name, name) {
			return &state, nil
		}
	}
	return nil, nil
}

// Labels implements Client.
func (l *Linear) Labels(ctx context.Context, teamID string) ([]Label, error) {
	const query = `
		query Labels($teamId: String!) {
			issueLabels(filter: { team: { id: { eq: $teamId } } }) {
				nodes {
					id
					name
					color
				}
			}
		}`

	var data struct {
		IssueLabels struct {
			Nodes []Label `json:"nodes"`
		} `json:"issueLabels"`
	}
	if err := l.execute(ctx, "issueLabels", query, map[string]any{"teamId": teamID}, &data); err != nil {
		return nil, err
	}

	return data.IssueLabels.Nodes, nil
}

// Users implements Client.
func (l *Linear) Users(ctx context.Context) ([]User, error) {
	const query = `
		query Users {
			users {
				nodes {
					id
					name
					email
					displayName
				}
			}
		}`

	var data struct {
		Users struct {
			Nodes []User `json:"nodes"`
		} `json:"users"`
	}
	if err := l.execute(ctx, "users", query, nil, &data); err != nil {
		return nil, err
	}

	return data.Users.Nodes, nil
}

// CreateIssue implements Client.
func (l *Linear) CreateIssue(ctx context.Context, input CreateIssueInput) (*Issue, error) {
	const mutation = `
		mutation CreateIssue($input: IssueCreateInput!) {
			issueCreate(input: $input) {
				success
				issue {` + issueFields + `
				}
			}
		}`

	fields := map[string]any{
		"title":    input.Title,
		"teamId":   input.TeamID,
		"priority": input.Priority,
	}
	if input.Description != "" {
		fields["description"] = input.Description
	}
	if input.ProjectID != "" {
		fields["projectId"] = input.ProjectID
	}
	if input.AssigneeID != "" {
		fields["assigneeId"] = input.AssigneeID
	}
	if input.StateID != "" {
		fields["stateId"] = input.StateID
	}
	if len(input.LabelIDs) > 0 {
		fields["labelIds"] = input.LabelIDs
	}

	var data struct {
		IssueCreate struct {
			Success bool      `json:"success"`
			Issue   issueNode `json:"issue"`
		} `json:"issueCreate"`
	}
	if err := l.execute(ctx, "issueCreate", mutation, map[string]any{"input": fields}, &data); err != nil {
		return nil, err
	}

	if !data.IssueCreate.Success {
		return nil, ErrIssueCreateRejected
	}

	return data.IssueCreate.Issue.toIssue(), nil
}

// UpdateIssue implements Client.
func (l *Linear) UpdateIssue(ctx context.Context, issueID string, input UpdateIssueInput) (*Issue, error) {
	const mutation = `
		mutation UpdateIssue($id: String!, $input: IssueUpdateInput!) {
			issueUpdate(id: $id, input: $input) {
				success
				issue {` + issueFields + `
				}
			}
		}`

	fields := map[string]any{}
	if input.Title != nil {
		fields["title"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = *input.Description
	}
	if input.Priority != nil {
		fields["priority"] = *input.Priority
	}
	if input.StateID != nil {
		fields["stateId"] = *input.StateID
	}
	if input.AssigneeID != nil {
		fields["assigneeId"] = *input.AssigneeID
	}
	if input.LabelIDs != nil {
		fields["labelIds"] = input.LabelIDs
	}

	var data struct {
		IssueUpdate struct {
			Success bool      `json:"success"`
			Issue   issueNode `json:"issue"`
		} `json:"issueUpdate"`
	}
	if err := l.execute(ctx, "issueUpdate", mutation,
		map[string]any{"id": issueID, "input": fields}, &data); err != nil {
		return nil, err
	}

	if !data.IssueUpdate.Success {
		return nil, ErrIssueUpdateRejected
	}

	return data.IssueUpdate.Issue.toIssue(), nil
}

// FindIssue implements Client. Identifiers that do not look like
// PROJECT-123 resolve to (nil, nil) without a remote call.
func (l *Linear) FindIssue(ctx context.Context, identifier string) (*Issue, error) {
	teamKey, numberText, ok := strings.Cut(identifier, "-")
	if !ok {
		return nil, nil
	}
	number, err := strconv.Atoi(numberText)
	if err != nil {
		return nil, nil
	}

	const query = `
		query IssueByIdentifier($filter: IssueFilter!) {
			issues(filter: $filter, first: 1) {
				nodes {` + issueFields + `
				}
			}
		}`

	filter := map[string]any{
		"team":   map[string]any{"key": map[string]any{"eq": teamKey}},
		"number": map[string]any{"eq": number},
	}

	var data struct {
		Issues struct {
			Nodes []issueNode `json:"nodes"`
		} `json:"issues"`
	}
	if err := l.execute(ctx, "issues", query, map[string]any{"filter": filter}, &data); err != nil {
		return nil, err
	}

	if len(data.Issues.Nodes) == 0 {
		return nil, nil
	}
	return data.Issues.Nodes[0].toIssue(), nil
}
