package tracker

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	flowhttp "github.com/randalmurphal/issueflow/http"
)

// jiraTimeFormat is the Jira Cloud timestamp format.
const jiraTimeFormat = "2006-01-02T15:04:05.000-0700"

// JiraConfig holds the configuration for the Jira client.
type JiraConfig struct {
	// URL is the Jira site URL (https://yoursite.atlassian.net). Required.
	URL string

	// Email and Token form the API token credential pair. Required.
	Email string
	Token string

	// IssueType is the issue type for created issues. Defaults to "Task".
	IssueType string

	// Timeout is the per-request timeout. Defaults to flowhttp.DefaultTimeout.
	Timeout time.Duration

	// HTTPClient overrides the underlying HTTP client (for tests).
	HTTPClient *http.Client
}

// Jira implements Client against the Jira Cloud REST API v3.
//
// The tracker vocabulary maps onto Jira's: a Team is a Jira project, a
// WorkflowState is a status, and priorities 1-4 map to Highest, High,
// Medium, and Low.
type Jira struct {
	http      *flowhttp.Client
	issueType string
}

var _ Client = (*Jira)(nil)

// NewJira creates a new Jira client.
func NewJira(cfg JiraConfig) (*Jira, error) {
	if cfg.URL == "" {
		return nil, ErrURLRequired
	}
	if cfg.Email == "" || cfg.Token == "" {
		return nil, ErrAPIKeyRequired
	}

	issueType := cfg.IssueType
	if issueType == "" {
		issueType = "Task"
	}

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		timeout := cfg.Timeout
		if timeout == 0 {
			timeout = flowhttp.DefaultTimeout
		}
		httpClient = &http.Client{Timeout: timeout}
	}

	// Cloud API tokens authenticate as basic email:token.
	credentials := base64.StdEncoding.EncodeToString([]byte(cfg.Email + ":" + cfg.Token))

	return &Jira{
		issueType: issueType,
		http: flowhttp.NewClient(flowhttp.ClientConfig{
			Client:      httpClient,
			BaseURL:     strings.TrimSuffix(cfg.URL, "/"),
			ServiceName: "jira",
			BeforeRequest: func(req *http.Request) {
				req.Header.Set("Authorization", "Basic "+credentials)
			},
		}),
	}, nil
}

// jiraPriorities maps tracker priority levels to Jira priority names.
var jiraPriorities = map[int]string{
	PriorityUrgent: "Highest",
	PriorityHigh:   "High",
	PriorityNormal: "Medium",
	PriorityLow:    "Low",
}

// jiraPriorityLevel is the reverse of jiraPriorities.
func jiraPriorityLevel(name string) int {
	for level, jiraName := range jiraPriorities {
		if strings.EqualFold(jiraName, name) {
			return level
		}
	}
	return PriorityNone
}

// jiraIssue mirrors the Jira REST issue shape.
type jiraIssue struct {
	ID     string `json:"id"`
	Key    string `json:"key"`
	Fields struct {
		Summary     string       `json:"summary"`
		Description *adfDocument `json:"description"`
		Priority    *struct {
			Name string `json:"name"`
		} `json:"priority"`
		Status   *jiraStatus `json:"status"`
		Assignee *jiraUser   `json:"assignee"`
		Labels   []string    `json:"labels"`
		Project  *struct {
			ID   string `json:"id"`
			Key  string `json:"key"`
			Name string `json:"name"`
		} `json:"project"`
		Created string `json:"created"`
		Updated string `json:"updated"`
	} `json:"fields"`
}

type jiraStatus struct {
	ID             string `json:"id"`
	Name           string `json:"name"`
	StatusCategory *struct {
		Key       string `json:"key"`
		ColorName string `json:"colorName"`
	} `json:"statusCategory"`
}

type jiraUser struct {
	AccountID    string `json:"accountId"`
	DisplayName  string `json:"displayName"`
	EmailAddress string `json:"emailAddress"`
}

func (j jiraIssue) toIssue(siteURL string) *Issue {
	issue := &Issue{
		ID:         j.ID,
		Identifier: j.Key,
		Title:      j.Fields.Summary,
	}

	if j.Fields.Description != nil {
		issue.Description = j.Fields.Description.plainText()
	}
	if j.Fields.Priority != nil {
		issue.Priority = jiraPriorityLevel(j.Fields.Priority.Name)
		issue.PriorityLabel = PriorityLabels[issue.Priority]
	}
	if j.Fields.Status != nil {
		issue.State = j.Fields.Status.toState()
	}
	if j.Fields.Assignee != nil {
		issue.Assignee = j.Fields.Assignee.toUser()
	}
	for _, label := range j.Fields.Labels {
		issue.Labels = append(issue.Labels, Label{ID: label, Name: label})
	}
	if j.Fields.Project != nil {
		issue.Team = &Team{
			ID:   j.Fields.Project.ID,
			Name: j.Fields.Project.Name,
			Key:  j.Fields.Project.Key,
		}
	}
	if siteURL != "" && j.Key != "" {
		issue.URL = siteURL + "/browse/" + j.Key
	}
	if t, err := time.Parse(jiraTimeFormat, j.Fields.Created); err == nil {
		issue.CreatedAt = t
	}
	if t, err := time.Parse(jiraTimeFormat, j.Fields.Updated); err == nil {
		issue.UpdatedAt = t
	}

	return issue
}

func (s *jiraStatus) toState() *WorkflowState {
	state := &WorkflowState{ID: s.ID, Name: s.Name}
	if s.StatusCategory != nil {
		state.Type = s.StatusCategory.Key
		state.Color = s.StatusCategory.ColorName
	}
	return state
}

func (u *jiraUser) toUser() *User {
	return &User{
		ID:          u.AccountID,
		Name:        u.DisplayName,
		Email:       u.EmailAddress,
		DisplayName: u.DisplayName,
	}
}

// ProjectByKey implements Client.
func (j *Jira) ProjectByKey(ctx context.Context, key string) (*Team, error) {
	var project struct {
		ID   string `json:"id"`
		Key  string `json:"key"`
		Name string `json:"name"`
	}
	err := j.http.Get(ctx, "/rest/api/3/project/"+url.PathEscape(key), &project)
	if flowhttp.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jira project: %w", err)
	}

	return &Team{ID: project.ID, Name: project.Name, Key: project.Key}, nil
}

// States implements Client. Jira scopes statuses per issue type;
// duplicates across types collapse to one entry.
func (j *Jira) States(ctx context.Context, teamID string) ([]WorkflowState, error) {
	var issueTypes []struct {
		Statuses []jiraStatus `json:"statuses"`
	}
	if err := j.http.Get(ctx, "/rest/api/3/project/"+url.PathEscape(teamID)+"/statuses", &issueTypes); err != nil {
		return nil, fmt.Errorf("jira statuses: %w", err)
	}

	seen := make(map[string]bool)
	var states []WorkflowState
	for _, it := range issueTypes {
		for _, status := range it.Statuses {
			if seen[status.ID] {
				continue
			}
			seen[status.ID] = true
			states = append(states, *status.toState())
		}
	}
	return states, nil
}

// StateByName implements Client.
func (j *Jira) StateByName(ctx context.Context, teamID, name string) (*WorkflowState, error) {
	states, err := j.States(ctx, teamID)
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

// Labels implements Client. Jira labels are site-wide plain strings,
// so teamID is ignored and the label name doubles as its ID.
func (j *Jira) Labels(ctx context.Context, teamID string) ([]Label, error) {
	var page struct {
		Values []string `json:"values"`
	}
	if err := j.http.Get(ctx, "/rest/api/3/label", &page); err != nil {
		return nil, fmt.Errorf("jira labels: %w", err)
	}

	labels := make([]Label, len(page.Values))
	for i, name := range page.Values {
		labels[i] = Label{ID: name, Name: name}
	}
	return labels, nil
}

// Users implements Client.
func (j *Jira) Users(ctx context.Context) ([]User, error) {
	var found []jiraUser
	if err := j.http.Get(ctx, "/rest/api/3/users/search?maxResults=200", &found); err != nil {
		return nil, fmt.Errorf("jira users: %w", err)
	}

	users := make([]User, len(found))
	for i, u := range found {
		users[i] = *u.toUser()
	}
	return users, nil
}

// CreateIssue implements Client. The response carries only the new
// issue's key, so a follow-up fetch fills in the full record.
func (j *Jira) CreateIssue(ctx context.Context, input CreateIssueInput) (*Issue, error) {
	fields := map[string]any{
		"summary":   input.Title,
		"project":   map[string]any{"id": input.TeamID},
		"issuetype": map[string]any{"name": j.issueType},
	}
	if input.Description != "" {
		fields["description"] = adfFromText(input.Description)
	}
	if name, ok := jiraPriorities[input.Priority]; ok {
		fields["priority"] = map[string]any{"name": name}
	}
	if input.AssigneeID != "" {
		fields["assignee"] = map[string]any{"accountId": input.AssigneeID}
	}
	if len(input.LabelIDs) > 0 {
		fields["labels"] = input.LabelIDs
	}

	var created struct {
		ID  string `json:"id"`
		Key string `json:"key"`
	}
	if err := j.http.Post(ctx, "/rest/api/3/issue", map[string]any{"fields": fields}, &created); err != nil {
		return nil, fmt.Errorf("jira create issue: %w", err)
	}

	issue, err := j.FindIssue(ctx, created.Key)
	if err != nil {
		return nil, err
	}
	if issue == nil {
		// Create succeeded; return what the response gave us.
		return &Issue{ID: created.ID, Identifier: created.Key, Title: input.Title}, nil
	}
	return issue, nil
}

// UpdateIssue implements Client.
func (j *Jira) UpdateIssue(ctx context.Context, issueID string, input UpdateIssueInput) (*Issue, error) {
	fields := map[string]any{}
	if input.Title != nil {
		fields["summary"] = *input.Title
	}
	if input.Description != nil {
		fields["description"] = adfFromText(*input.Description)
	}
	if input.Priority != nil {
		if name, ok := jiraPriorities[*input.Priority]; ok {
			fields["priority"] = map[string]any{"name": name}
		}
	}
	if input.AssigneeID != nil {
		fields["assignee"] = map[string]any{"accountId": *input.AssigneeID}
	}
	if input.LabelIDs != nil {
		fields["labels"] = input.LabelIDs
	}

	if err := j.http.Put(ctx, "/rest/api/3/issue/"+url.PathEscape(issueID),
		map[string]any{"fields": fields}, nil); err != nil {
		return nil, fmt.Errorf("jira update issue: %w", err)
	}

	// StateID transitions go through the transitions endpoint, not the
	// fields payload.
	if input.StateID != nil {
		transition := map[string]any{"transition": map[string]any{"id": *input.StateID}}
		if err := j.http.Post(ctx, "/rest/api/3/issue/"+url.PathEscape(issueID)+"/transitions", transition, nil); err != nil {
			return nil, fmt.Errorf("jira transition issue: %w", err)
		}
	}

	return j.FindIssue(ctx, issueID)
}

// FindIssue implements Client. The identifier may be a key
// (PROJECT-123) or an internal ID.
func (j *Jira) FindIssue(ctx context.Context, identifier string) (*Issue, error) {
	if identifier == "" {
		return nil, nil
	}

	var issue jiraIssue
	err := j.http.Get(ctx, "/rest/api/3/issue/"+url.PathEscape(identifier), &issue)
	if flowhttp.IsNotFound(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("jira issue: %w", err)
	}

	return issue.toIssue(j.siteURL()), nil
}

func (j *Jira) siteURL() string {
	return j.http.BaseURL()
}
