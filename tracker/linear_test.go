package tracker

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	flowhttp "github.com/randalmurphal/issueflow/http"
)

// newTestLinear wires a Linear client to an httptest server whose
// handler receives the decoded GraphQL request.
func newTestLinear(t *testing.T, handler func(t *testing.T, query string, variables map[string]any) string) *Linear {
	t.Helper()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Query     string         `json:"query"`
			Variables map[string]any `json:"variables"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Write([]byte(handler(t, req.Query, req.Variables)))
	}))
	t.Cleanup(srv.Close)

	client, err := NewLinear(LinearConfig{APIKey: "lin_api_test", URL: srv.URL})
	if err != nil {
		t.Fatalf("NewLinear failed: %v", err)
	}
	return client
}

func TestNewLinear_RequiresAPIKey(t *testing.T) {
	if _, err := NewLinear(LinearConfig{}); !errors.Is(err, ErrAPIKeyRequired) {
		t.Errorf("error = %v, want ErrAPIKeyRequired", err)
	}
}

func TestLinear_ProjectByKey(t *testing.T) {
	client := newTestLinear(t, func(t *testing.T, query string, variables map[string]any) string {
		if !strings.Contains(query, "teams") {
			t.Errorf("unexpected query: %s", query)
		}
		return `{"data":{"teams":{"nodes":[
			{"id":"team-1","name":"Favorite Restaurants","key":"FAVRES"},
			{"id":"team-2","name":"Platform","key":"PLAT"}
		]}}}`
	})

	team, err := client.ProjectByKey(context.Background(), "favres")
	if err != nil {
		t.Fatalf("ProjectByKey failed: %v", err)
	}
	if team == nil || team.ID != "team-1" {
		t.Errorf("team = %+v, want team-1", team)
	}

	team, err = client.ProjectByKey(context.Background(), "NOPE")
	if err != nil {
		t.Fatalf("ProjectByKey failed: %v", err)
	}
	if team != nil {
		t.Errorf("team = %+v, want nil for unknown key", team)
	}
}

func TestLinear_CreateIssue(t *testing.T) {
	client := newTestLinear(t, func(t *testing.T, query string, variables map[string]any) string {
		input, ok := variables["input"].(map[string]any)
		if !ok {
			t.Fatalf("missing input variable: %v", variables)
		}
		if input["title"] != "Add restaurant search" {
			t.Errorf("title = %v", input["title"])
		}
		if input["teamId"] != "team-1" {
			t.Errorf("teamId = %v", input["teamId"])
		}
		if input["priority"] != float64(PriorityNormal) {
			t.Errorf("priority = %v", input["priority"])
		}
		if _, present := input["description"]; present {
			t.Error("empty description should be omitted")
		}

		return `{"data":{"issueCreate":{"success":true,"issue":{
			"id":"issue-uuid",
			"identifier":"FAVRES-123",
			"title":"Add restaurant search",
			"priority":3,
			"priorityLabel":"Normal",
			"url":"https://linear.app/favres/issue/FAVRES-123",
			"state":{"id":"state-1","name":"Backlog","type":"backlog"},
			"labels":{"nodes":[{"id":"label-1","name":"mobile"}]}
		}}}}`
	})

	issue, err := client.CreateIssue(context.Background(), CreateIssueInput{
		Title:    "Add restaurant search",
		TeamID:   "team-1",
		Priority: PriorityNormal,
	})
	if err != nil {
		t.Fatalf("CreateIssue failed: %v", err)
	}

	if issue.Identifier != "FAVRES-123" {
		t.Errorf("Identifier = %q, want FAVRES-123", issue.Identifier)
	}
	if issue.State == nil || issue.State.Name != "Backlog" {
		t.Errorf("State = %+v, want Backlog", issue.State)
	}
	if len(issue.Labels) != 1 || issue.Labels[0].Name != "mobile" {
		t.Errorf("Labels = %+v, want flattened [mobile]", issue.Labels)
	}
}

func TestLinear_CreateIssue_Rejected(t *testing.T) {
	client := newTestLinear(t, func(t *testing.T, query string, variables map[string]any) string {
		return `{"data":{"issueCreate":{"success":false}}}`
	})

	_, err := client.CreateIssue(context.Background(), CreateIssueInput{Title: "x", TeamID: "t"})
	if !errors.Is(err, ErrIssueCreateRejected) {
		t.Errorf("error = %v, want ErrIssueCreateRejected", err)
	}
}

func TestLinear_GraphQLError(t *testing.T) {
	client := newTestLinear(t, func(t *testing.T, query string, variables map[string]any) string {
		return `{"errors":[{"message":"rate limit exceeded"}]}`
	})

	_, err := client.Users(context.Background())
	if err == nil {
		t.Fatal("expected error, got nil")
	}

	var gqlErr *GraphQLError
	if !errors.As(err, &gqlErr) {
		t.Fatalf("error = %T, want *GraphQLError", err)
	}
	if gqlErr.Operation != "users" {
		t.Errorf("Operation = %q, want users", gqlErr.Operation)
	}
	if !strings.Contains(gqlErr.Error(), "rate limit exceeded") {
		t.Errorf("Error() = %q, want remote message included", gqlErr.Error())
	}
}

func TestLinear_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"error":"invalid api key"}`))
	}))
	defer srv.Close()

	client, err := NewLinear(LinearConfig{APIKey: "lin_api_bad", URL: srv.URL})
	if err != nil {
		t.Fatalf("NewLinear failed: %v", err)
	}

	_, err = client.ProjectByKey(context.Background(), "FAVRES")
	if err == nil {
		t.Fatal("expected error, got nil")
	}
	if !flowhttp.IsUnauthorized(err) {
		t.Errorf("IsUnauthorized(%v) = false, want true", err)
	}
}

func TestLinear_FindIssue(t *testing.T) {
	client := newTestLinear(t, func(t *testing.T, query string, variables map[string]any) string {
		filter, _ := variables["filter"].(map[string]any)
		team, _ := filter["team"].(map[string]any)
		key, _ := team["key"].(map[string]any)
		if key["eq"] != "FAVRES" {
			t.Errorf("team key filter = %v, want FAVRES", key["eq"])
		}
		number, _ := filter["number"].(map[string]any)
		if number["eq"] != float64(123) {
			t.Errorf("number filter = %v, want 123", number["eq"])
		}

		return `{"data":{"issues":{"nodes":[{
			"id":"issue-uuid",
			"identifier":"FAVRES-123",
			"title":"Add restaurant search",
			"priority":3
		}]}}}`
	})

	issue, err := client.FindIssue(context.Background(), "FAVRES-123")
	if err != nil {
		t.Fatalf("FindIssue failed: %v", err)
	}
	if issue == nil || issue.Identifier != "FAVRES-123" {
		t.Errorf("issue = %+v, want FAVRES-123", issue)
	}
}

func TestLinear_FindIssue_MalformedIdentifier(t *testing.T) {
	client := newTestLinear(t, func(t *testing.T, query string, variables map[string]any) string {
		t.Error("no remote call expected for malformed identifier")
		return `{}`
	})

	for _, identifier := range []string{"FAVRES", "FAVRES-abc", ""} {
		issue, err := client.FindIssue(context.Background(), identifier)
		if err != nil {
			t.Errorf("FindIssue(%q) error: %v", identifier, err)
		}
		if issue != nil {
			t.Errorf("FindIssue(%q) = %+v, want nil", identifier, issue)
		}
	}
}

func TestLinear_StateByName(t *testing.T) {
	client := newTestLinear(t, func(t *testing.T, query string, variables map[string]any) string {
		if variables["teamId"] != "team-1" {
			t.Errorf("teamId = %v, want team-1", variables["teamId"])
		}
		return `{"data":{"workflowStates":{"nodes":[
			{"id":"state-1","name":"Backlog","type":"backlog"},
			{"id":"state-2","name":"In Progress","type":"started"}
		]}}}`
	})

	state, err := client.StateByName(context.Background(), "team-1", "in progress")
	if err != nil {
		t.Fatalf("StateByName failed: %v", err)
	}
	if state == nil || state.ID != "state-2" {
		t.Errorf("state = %+v, want state-2", state)
	}

	state, err = client.StateByName(context.Background(), "team-1", "Shipped")
	if err != nil {
		t.Fatalf("StateByName failed: %v", err)
	}
	if state != nil {
		t.Errorf("state = %+v, want nil for unknown name", state)
	}
}
