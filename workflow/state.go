package workflow

import (
	"fmt"
	"time"

	nanoid "github.com/matoous/go-nanoid/v2"

	"github.com/randalmurphal/issueflow/naming"
	"github.com/randalmurphal/issueflow/repohost"
	"github.com/randalmurphal/issueflow/tracker"
)

// FeatureRequest is the input to StartFeature.
type FeatureRequest struct {
	// Title is used for both the issue and the branch name (required).
	Title string `json:"title"`

	// Description is the issue body.
	Description string `json:"description,omitempty"`

	// Repo is the repository for the branch. Empty means the
	// orchestrator's default.
	Repo string `json:"repo,omitempty"`

	// Project is the tracker team/project key. Empty means the
	// orchestrator's default.
	Project string `json:"project,omitempty"`

	// Priority is the issue priority (1=Urgent .. 4=Low). Zero means
	// Normal.
	Priority int `json:"priority,omitempty"`

	// BranchType selects the branch prefix. Empty means feature.
	BranchType naming.BranchType `json:"branch_type,omitempty"`

	// BaseBranch is the branch to fork from. Empty means the
	// repository's default branch.
	BaseBranch string `json:"base_branch,omitempty"`
}

// FeatureState is the state threaded through the workflow graph.
// Fields fill in progressively as steps complete; on failure the state
// keeps everything completed so far.
type FeatureState struct {
	RunID   string         `json:"run_id"`
	Request FeatureRequest `json:"request"`

	Team          *tracker.Team   `json:"team,omitempty"`
	Issue         *tracker.Issue  `json:"issue,omitempty"`
	BranchName    string          `json:"branch_name,omitempty"`
	Branch        *repohost.Branch `json:"branch,omitempty"`
	BranchExisted bool            `json:"branch_existed,omitempty"`

	// Err records the first step failure. Later nodes pass through
	// unchanged once it is set.
	Err        string `json:"error,omitempty"`
	FailedStep string `json:"failed_step,omitempty"`
}

// NewFeatureState seeds workflow state for a request.
func NewFeatureState(req FeatureRequest) FeatureState {
	return FeatureState{
		RunID:   newRunID(),
		Request: req,
	}
}

// failed records a step failure. The rest of the state stays as-is so
// partial completion remains visible.
func (s FeatureState) failed(step string, err error) FeatureState {
	s.Err = err.Error()
	s.FailedStep = step
	return s
}

// HasError reports whether a step has failed.
func (s FeatureState) HasError() bool {
	return s.Err != ""
}

func newRunID() string {
	id, err := nanoid.Generate("0123456789abcdefghijklmnopqrstuvwxyz", 10)
	if err != nil {
		// Entropy failure, fall back to a timestamp.
		return fmt.Sprintf("feature-%d", time.Now().UnixNano())
	}
	return "feature-" + id
}
