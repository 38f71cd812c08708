package issueflow

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"

	"github.com/randalmurphal/issueflow/naming"
	"github.com/randalmurphal/issueflow/tracker"
	"github.com/randalmurphal/issueflow/workflow"
)

// Tool describes a callable tool: a name, a human-readable description,
// and a JSON schema for its input.
type Tool struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	InputSchema map[string]any `json:"input_schema"`
}

var toolValidateBranchName = Tool{
	Name:        "validate_branch_name",
	Description: "Validate a branch name against the team naming convention: <type>/<issue-ref>-<description>.",
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"branch_name": map[string]any{
				"type":        "string",
				"description": "The branch name to validate. E.g. 'feature/FAVRES-123-restaurant-search'",
			},
		},
		"required": []string{"branch_name"},
	},
}

var toolGenerateBranchName = Tool{
	Name:        "generate_branch_name",
	Description: "Generate a convention-conforming branch name from a type, a free-text description, and an optional issue ref.",
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"branch_type": map[string]any{
				"type":        "string",
				"description": "Branch type: feature, bugfix, hotfix, docs, spike, or release.",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Free-text description. Normalized to a lowercase hyphenated slug.",
			},
			"issue_ref": map[string]any{
				"type":        "string",
				"description": "Optional issue identifier in PROJECT-123 form. E.g. 'FAVRES-123'",
			},
		},
		"required": []string{"branch_type", "description"},
	},
}

var toolValidateCommitMessage = Tool{
	Name:        "validate_commit_message",
	Description: "Validate a commit message first line against the conventional commit format: <type>(<scope>): <subject>.",
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"message": map[string]any{
				"type":        "string",
				"description": "The commit message to validate. Only the first line is checked.",
			},
		},
		"required": []string{"message"},
	},
}

var toolGenerateCommitMessage = Tool{
	Name:        "generate_commit_message",
	Description: "Generate a conventional commit first line from a type, subject, and optional scope.",
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"commit_type": map[string]any{
				"type":        "string",
				"description": "Commit type: feat, fix, docs, style, refactor, perf, test, chore, build, ci, or revert.",
			},
			"subject": map[string]any{
				"type":        "string",
				"description": "The commit subject. First character is lowercased, a trailing period is stripped.",
			},
			"scope": map[string]any{
				"type":        "string",
				"description": "Optional scope. E.g. 'search' for 'feat(search): ...'",
			},
		},
		"required": []string{"commit_type", "subject"},
	},
}

var toolListConventions = Tool{
	Name:        "list_conventions",
	Description: "Return the team naming conventions: branch format, commit format, PR title format, and issue priorities.",
	InputSchema: map[string]any{
		"type":       "object",
		"properties": map[string]any{},
	},
}

var toolStartFeature = Tool{
	Name:        "start_feature",
	Description: "Start a feature workflow: create a tracker issue, then a matching branch on the repo host. Completed steps are never rolled back on a later failure.",
	InputSchema: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"title": map[string]any{
				"type":        "string",
				"description": "Feature title, used for both the issue and the branch name.",
			},
			"description": map[string]any{
				"type":        "string",
				"description": "Optional issue description.",
			},
			"repo": map[string]any{
				"type":        "string",
				"description": "Repository for the branch. Defaults to the configured default repo.",
			},
			"project": map[string]any{
				"type":        "string",
				"description": "Tracker team/project key. Defaults to the configured default project.",
			},
			"priority": map[string]any{
				"type":        "integer",
				"description": "Issue priority: 1=Urgent, 2=High, 3=Normal, 4=Low. Defaults to 3.",
			},
			"branch_type": map[string]any{
				"type":        "string",
				"description": "Branch type. Defaults to 'feature'.",
			},
		},
		"required": []string{"title"},
	},
}

// AllTools lists every tool in registration order.
var AllTools = []Tool{
	toolValidateBranchName,
	toolGenerateBranchName,
	toolValidateCommitMessage,
	toolGenerateCommitMessage,
	toolListConventions,
	toolStartFeature,
}

type validateBranchInput struct {
	BranchName string `json:"branch_name"`
}

type generateBranchInput struct {
	BranchType  string `json:"branch_type"`
	Description string `json:"description"`
	IssueRef    string `json:"issue_ref"`
}

type validateCommitInput struct {
	Message string `json:"message"`
}

type generateCommitInput struct {
	CommitType string `json:"commit_type"`
	Subject    string `json:"subject"`
	Scope      string `json:"scope"`
}

// Result is the envelope every tool call returns. Success reports
// whether the requested operation succeeded; input and remote errors
// land in Error, never in a panic or a process abort.
type Result struct {
	Success bool           `json:"success"`
	Data    map[string]any `json:"data,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func failure(format string, args ...any) Result {
	return Result{Error: fmt.Sprintf(format, args...)}
}

// Call dispatches a tool by name with a raw JSON input. Unknown names
// and malformed input yield a failure Result, not an error.
func (s *Service) Call(ctx context.Context, name string, raw json.RawMessage) Result {
	switch name {
	case "validate_branch_name":
		return s.validateBranchName(raw)
	case "generate_branch_name":
		return s.generateBranchName(raw)
	case "validate_commit_message":
		return s.validateCommitMessage(raw)
	case "generate_commit_message":
		return s.generateCommitMessage(raw)
	case "list_conventions":
		return s.listConventions()
	case "start_feature":
		return s.startFeature(ctx, raw)
	default:
		return failure("unknown tool %q", name)
	}
}

func (s *Service) validateBranchName(raw json.RawMessage) Result {
	var in validateBranchInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return failure("invalid input: %v", err)
	}

	res := naming.ValidateBranch(in.BranchName)
	data := asMap(res)
	data["valid_types"] = branchTypeNames()

	if res.Valid {
		msg := fmt.Sprintf("Valid %s branch", res.Type)
		if res.IssueRef != "" {
			msg += " for issue " + res.IssueRef
		}
		data["message"] = msg
	} else {
		data["message"] = "Invalid branch name: " + res.Err
	}

	return Result{Success: true, Data: data}
}

func (s *Service) generateBranchName(raw json.RawMessage) Result {
	var in generateBranchInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return failure("invalid input: %v", err)
	}

	name, err := naming.GenerateBranch(naming.BranchType(in.BranchType), in.Description, in.IssueRef)
	if err != nil {
		return Result{
			Error: err.Error(),
			Data:  map[string]any{"valid_types": branchTypeNames()},
		}
	}

	return Result{Success: true, Data: map[string]any{
		"branch_name": name,
		"components": map[string]any{
			"type":        in.BranchType,
			"issue_ref":   in.IssueRef,
			"description": in.Description,
		},
	}}
}

func (s *Service) validateCommitMessage(raw json.RawMessage) Result {
	var in validateCommitInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return failure("invalid input: %v", err)
	}

	res := naming.ValidateCommit(in.Message)
	data := asMap(res)
	data["valid_types"] = commitTypeNames()

	if res.Valid {
		msg := fmt.Sprintf("Valid %s commit", res.Type)
		if res.Scope != "" {
			msg += fmt.Sprintf(" with scope '%s'", res.Scope)
		}
		data["message"] = msg
	} else {
		data["message"] = "Invalid commit message: " + res.Err
	}

	return Result{Success: true, Data: data}
}

func (s *Service) generateCommitMessage(raw json.RawMessage) Result {
	var in generateCommitInput
	if err := json.Unmarshal(raw, &in); err != nil {
		return failure("invalid input: %v", err)
	}

	message, err := naming.GenerateCommit(naming.CommitType(in.CommitType), in.Subject, in.Scope)
	if err != nil {
		return Result{
			Error: err.Error(),
			Data:  map[string]any{"valid_types": commitTypeNames()},
		}
	}

	return Result{Success: true, Data: map[string]any{
		"commit_message": message,
		"components": map[string]any{
			"type":    in.CommitType,
			"scope":   in.Scope,
			"subject": in.Subject,
		},
	}}
}

func (s *Service) listConventions() Result {
	return Result{Success: true, Data: map[string]any{
		"branch_naming": map[string]any{
			"format": "<type>/<issue-ref>-<description>",
			"types":  branchTypeNames(),
			"examples": []string{
				"feature/FAVRES-123-restaurant-search",
				"bugfix/FAVRES-456-map-crash",
				"hotfix/FAVRES-789-auth-fix",
				"docs/update-readme",
				"spike/swiftui-animations",
				"release/1.2.0",
			},
		},
		"commit_format": map[string]any{
			"format":       "<type>(<scope>): <subject>",
			"types":        commitTypeNames(),
			"descriptions": naming.CommitTypeDescriptions,
			"examples": []string{
				"feat(search): add restaurant filtering",
				"fix(map): resolve annotation crash",
				"docs(readme): update installation steps",
				"refactor: simplify auth flow",
			},
			"rules": []string{
				"Subject should be lowercase",
				"No period at the end of subject",
				fmt.Sprintf("Maximum %d characters for first line", naming.MaxCommitLineLength),
				"Use imperative mood (add, fix, update, not added, fixed, updated)",
			},
		},
		"pr_naming": map[string]any{
			"format": "<Type>/<Issue-Ref>: <Title>",
			"examples": []string{
				"Feature/FAVRES-123: Restaurant Search Implementation",
				"Bugfix/FAVRES-456: Map Annotation Crash Fix",
				"Hotfix/FAVRES-789: Authentication Token Refresh",
			},
		},
		"issue_priority": map[string]string{
			"1": tracker.PriorityLabels[tracker.PriorityUrgent],
			"2": tracker.PriorityLabels[tracker.PriorityHigh],
			"3": tracker.PriorityLabels[tracker.PriorityNormal] + " (default)",
			"4": tracker.PriorityLabels[tracker.PriorityLow],
		},
	}}
}

func (s *Service) startFeature(ctx context.Context, raw json.RawMessage) Result {
	var req workflow.FeatureRequest
	if err := json.Unmarshal(raw, &req); err != nil {
		return failure("invalid input: %v", err)
	}

	outcome, err := s.flow.StartFeature(ctx, req)
	if err != nil {
		return failure("start feature: %v", err)
	}

	data := asMap(outcome)
	delete(data, "success")
	delete(data, "error")

	return Result{Success: outcome.Success, Data: data, Error: outcome.Error}
}

// asMap round-trips a value through JSON so tool payloads follow the
// value's JSON tags.
func asMap(v any) map[string]any {
	b, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var m map[string]any
	if err := json.Unmarshal(b, &m); err != nil {
		return nil
	}
	return m
}

func branchTypeNames() []string {
	types := naming.BranchTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	sort.Strings(names)
	return names
}

func commitTypeNames() []string {
	types := naming.CommitTypes()
	names := make([]string, len(types))
	for i, t := range types {
		names[i] = string(t)
	}
	sort.Strings(names)
	return names
}
