package workflow

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/randalmurphal/flowgraph/pkg/flowgraph"

	"github.com/randalmurphal/issueflow/naming"
	"github.com/randalmurphal/issueflow/notify"
	"github.com/randalmurphal/issueflow/repohost"
	"github.com/randalmurphal/issueflow/tracker"
)

// Step names for the feature workflow graph.
const (
	stepResolveProject = "resolve-project"
	stepCreateIssue    = "create-issue"
	stepDeriveBranch   = "derive-branch"
	stepEnsureBranch   = "ensure-branch"
)

// Options configures an Orchestrator.
type Options struct {
	// DefaultRepo fills FeatureRequest.Repo when empty.
	DefaultRepo string

	// DefaultProject fills FeatureRequest.Project when empty.
	DefaultProject string

	// DefaultBaseBranch fills FeatureRequest.BaseBranch when empty.
	// Empty here means the repository's default branch.
	DefaultBaseBranch string

	// Notifier receives run started/completed/failed events. Nil
	// disables notifications.
	Notifier notify.Notifier
}

// BranchResult describes the branch half of an Outcome.
type BranchResult struct {
	Name          string `json:"name"`
	SHA           string `json:"sha,omitempty"`
	AlreadyExists bool   `json:"already_exists,omitempty"`
}

// Outcome is the result of a feature workflow run. Fields fill in
// progressively: a failure after issue creation still reports the
// issue, since completed remote steps are never rolled back.
type Outcome struct {
	Success   bool           `json:"success"`
	Issue     *tracker.Issue `json:"issue,omitempty"`
	Branch    *BranchResult  `json:"branch,omitempty"`
	Error     string         `json:"error,omitempty"`
	Message   string         `json:"message,omitempty"`
	NextSteps []string       `json:"next_steps,omitempty"`
}

// Orchestrator runs the start-feature workflow against a tracker and a
// repo host.
type Orchestrator struct {
	tracker  tracker.Client
	host     hostClient
	notifier notify.Notifier
	opts     Options
}

// hostClient is the slice of repohost.Host the workflow needs.
type hostClient interface {
	Branch(ctx context.Context, repo, name string) (*repohost.Branch, error)
	CreateBranch(ctx context.Context, repo, name, base string) (*repohost.Branch, error)
}

// NewOrchestrator creates an orchestrator.
func NewOrchestrator(trackerClient tracker.Client, host hostClient, opts Options) *Orchestrator {
	return &Orchestrator{
		tracker:  trackerClient,
		host:     host,
		notifier: opts.Notifier,
		opts:     opts,
	}
}

// StartFeature creates a tracker issue, derives a branch name from the
// title and the new issue's identifier, and ensures the branch exists
// on the repo host. Steps run strictly in order with no rollback: a
// failure reports everything completed before it.
func (o *Orchestrator) StartFeature(ctx context.Context, req FeatureRequest) (*Outcome, error) {
	if req.Repo == "" {
		req.Repo = o.opts.DefaultRepo
	}
	if req.Project == "" {
		req.Project = o.opts.DefaultProject
	}
	if req.BaseBranch == "" {
		req.BaseBranch = o.opts.DefaultBaseBranch
	}

	if err := validateRequest(req); err != nil {
		return &Outcome{Success: false, Error: err.Error()}, nil
	}

	state := NewFeatureState(req)
	o.notifyEvent(ctx, notify.EventRunStarted, notify.SeverityInfo,
		fmt.Sprintf("starting feature workflow for %q", req.Title), state)

	graph := flowgraph.NewGraph[FeatureState]().
		AddNode(stepResolveProject, o.resolveProject).
		AddNode(stepCreateIssue, o.createIssue).
		AddNode(stepDeriveBranch, o.deriveBranch).
		AddNode(stepEnsureBranch, o.ensureBranch).
		AddEdge(stepResolveProject, stepCreateIssue).
		AddEdge(stepCreateIssue, stepDeriveBranch).
		AddEdge(stepDeriveBranch, stepEnsureBranch).
		AddEdge(stepEnsureBranch, flowgraph.END).
		SetEntry(stepResolveProject)

	compiled, err := graph.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile workflow: %w", err)
	}

	final, err := compiled.Run(flowgraph.NewContext(ctx), state)
	if err != nil {
		return nil, fmt.Errorf("run workflow: %w", err)
	}

	outcome := buildOutcome(final)
	if outcome.Success {
		o.notifyEvent(ctx, notify.EventRunCompleted, notify.SeverityInfo, outcome.Message, final)
	} else {
		o.notifyEvent(ctx, notify.EventRunFailed, notify.SeverityError, outcome.Error, final)
	}
	return outcome, nil
}

func validateRequest(req FeatureRequest) error {
	if req.Title == "" {
		return ErrMissingTitle
	}
	if req.Project == "" {
		return ErrMissingProject
	}
	if req.Repo == "" {
		return ErrMissingRepo
	}
	return nil
}

// resolveProject looks up the tracker team for the project key.
func (o *Orchestrator) resolveProject(ctx flowgraph.Context, state FeatureState) (FeatureState, error) {
	team, err := o.tracker.ProjectByKey(ctx, state.Request.Project)
	if err != nil {
		return state.failed(stepResolveProject, fmt.Errorf("resolve project: %w", err)), nil
	}
	if team == nil {
		return state.failed(stepResolveProject,
			fmt.Errorf("%w: %q", ErrProjectNotFound, state.Request.Project)), nil
	}
	state.Team = team
	return state, nil
}

// createIssue creates the tracker issue.
func (o *Orchestrator) createIssue(ctx flowgraph.Context, state FeatureState) (FeatureState, error) {
	if state.HasError() {
		return state, nil
	}

	priority := state.Request.Priority
	if priority == 0 {
		priority = tracker.PriorityNormal
	}

	issue, err := o.tracker.CreateIssue(ctx, tracker.CreateIssueInput{
		Title:       state.Request.Title,
		Description: state.Request.Description,
		TeamID:      state.Team.ID,
		Priority:    priority,
	})
	if err != nil {
		return state.failed(stepCreateIssue, fmt.Errorf("create issue: %w", err)), nil
	}
	state.Issue = issue
	o.notifyEvent(ctx, notify.EventIssueCreated, notify.SeverityInfo,
		fmt.Sprintf("created issue %s", issue.Identifier), state)
	return state, nil
}

// deriveBranch derives the branch name from the title and the new
// issue's identifier. A derivation failure leaves the created issue in
// place; the outcome reports the partial completion.
func (o *Orchestrator) deriveBranch(ctx flowgraph.Context, state FeatureState) (FeatureState, error) {
	if state.HasError() {
		return state, nil
	}

	typ := state.Request.BranchType
	if typ == "" {
		typ = naming.BranchFeature
	}

	name, err := naming.GenerateBranch(typ, state.Request.Title, state.Issue.Identifier)
	if err != nil {
		return state.failed(stepDeriveBranch, err), nil
	}
	state.BranchName = name
	return state, nil
}

// ensureBranch checks for the derived branch and creates it when
// missing, based off the requested base branch (or the repository's
// default).
func (o *Orchestrator) ensureBranch(ctx flowgraph.Context, state FeatureState) (FeatureState, error) {
	if state.HasError() {
		return state, nil
	}

	existing, err := o.host.Branch(ctx, state.Request.Repo, state.BranchName)
	if err != nil {
		return state.failed(stepEnsureBranch, fmt.Errorf("check branch: %w", err)), nil
	}
	if existing != nil {
		state.Branch = existing
		state.BranchExisted = true
		return state, nil
	}

	branch, err := o.host.CreateBranch(ctx, state.Request.Repo, state.BranchName, state.Request.BaseBranch)
	if err != nil {
		return state.failed(stepEnsureBranch, fmt.Errorf("create branch: %w", err)), nil
	}
	state.Branch = branch
	o.notifyEvent(ctx, notify.EventBranchCreated, notify.SeverityInfo,
		fmt.Sprintf("created branch %s", state.BranchName), state)
	return state, nil
}

// buildOutcome converts the final workflow state into an Outcome.
func buildOutcome(state FeatureState) *Outcome {
	if state.HasError() {
		out := &Outcome{
			Success: false,
			Error:   state.Err,
			Issue:   state.Issue,
		}
		if state.FailedStep == stepEnsureBranch {
			out.Message = fmt.Sprintf("Issue %s was created but branch creation failed",
				state.Issue.Identifier)
		}
		return out
	}

	out := &Outcome{
		Success: true,
		Issue:   state.Issue,
		Branch: &BranchResult{
			Name:          state.BranchName,
			AlreadyExists: state.BranchExisted,
		},
	}
	if state.Branch != nil {
		out.Branch.SHA = state.Branch.SHA
	}

	if state.BranchExisted {
		out.Message = fmt.Sprintf("Issue %s created. Branch %q already exists.",
			state.Issue.Identifier, state.BranchName)
	} else {
		out.Message = fmt.Sprintf("Created issue %s and branch %q",
			state.Issue.Identifier, state.BranchName)
	}

	out.NextSteps = []string{
		"git fetch origin",
		"git checkout " + state.BranchName,
		"# Start working on your feature",
		"# When ready, create a PR linking to " + state.Issue.Identifier,
	}
	return out
}

// notifyEvent sends a workflow event. Notifier failures are logged and
// never affect the run.
func (o *Orchestrator) notifyEvent(ctx context.Context, typ notify.EventType, severity, message string, state FeatureState) {
	if o.notifier == nil {
		return
	}

	meta := map[string]any{
		"project": state.Request.Project,
		"repo":    state.Request.Repo,
	}
	if state.Issue != nil {
		meta["issue"] = state.Issue.Identifier
	}
	if state.BranchName != "" {
		meta["branch"] = state.BranchName
	}

	err := o.notifier.Notify(ctx, notify.Event{
		Type:      typ,
		RunID:     state.RunID,
		FlowID:    "start-feature",
		Message:   message,
		Severity:  severity,
		Timestamp: time.Now(),
		Metadata:  meta,
	})
	if err != nil {
		slog.Warn("notification failed", "event", typ, "run_id", state.RunID, "error", err)
	}
}
