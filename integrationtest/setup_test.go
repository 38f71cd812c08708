package integrationtest

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/randalmurphal/issueflow/notify"
	"github.com/randalmurphal/issueflow/repohost"
	"github.com/randalmurphal/issueflow/tracker"
	"github.com/randalmurphal/issueflow/workflow"
)

// recordingNotifier captures every event it receives.
type recordingNotifier struct {
	mu     sync.Mutex
	events []notify.Event
}

func (n *recordingNotifier) Notify(_ context.Context, event notify.Event) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
	return nil
}

func (n *recordingNotifier) Events() []notify.Event {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]notify.Event(nil), n.events...)
}

func (n *recordingNotifier) Types() []notify.EventType {
	var types []notify.EventType
	for _, e := range n.Events() {
		types = append(types, e.Type)
	}
	return types
}

// fakeTracker is an in-memory tracker backed by the function-field mock.
// Issues get sequential FAVRES identifiers.
type fakeTracker struct {
	*tracker.Mock
	mu     sync.Mutex
	nextID int
	issues []*tracker.Issue
}

func newFakeTracker() *fakeTracker {
	f := &fakeTracker{Mock: &tracker.Mock{}, nextID: 100}

	f.Mock.ProjectByKeyFunc = func(_ context.Context, key string) (*tracker.Team, error) {
		if key != "FAVRES" {
			return nil, nil
		}
		return &tracker.Team{ID: "team-favres", Name: "FavRes iOS", Key: key}, nil
	}

	f.Mock.CreateIssueFunc = func(_ context.Context, input tracker.CreateIssueInput) (*tracker.Issue, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		f.nextID++
		issue := &tracker.Issue{
			ID:            fmt.Sprintf("issue-%d", f.nextID),
			Identifier:    fmt.Sprintf("FAVRES-%d", f.nextID),
			Title:         input.Title,
			Description:   input.Description,
			Priority:      input.Priority,
			PriorityLabel: tracker.PriorityLabels[input.Priority],
		}
		f.issues = append(f.issues, issue)
		return issue, nil
	}

	return f
}

func (f *fakeTracker) Issues() []*tracker.Issue {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]*tracker.Issue(nil), f.issues...)
}

// fakeHost is an in-memory repo host. Created branches are remembered
// so a second run sees them as existing.
type fakeHost struct {
	*repohost.Mock
	mu       sync.Mutex
	branches map[string]*repohost.Branch
}

func newFakeHost() *fakeHost {
	f := &fakeHost{
		Mock:     &repohost.Mock{},
		branches: map[string]*repohost.Branch{},
	}

	f.Mock.BranchFunc = func(_ context.Context, repo, name string) (*repohost.Branch, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		return f.branches[repo+"/"+name], nil
	}

	f.Mock.CreateBranchFunc = func(_ context.Context, repo, name, base string) (*repohost.Branch, error) {
		f.mu.Lock()
		defer f.mu.Unlock()
		branch := &repohost.Branch{Name: name, SHA: fmt.Sprintf("sha-%d", len(f.branches)+1)}
		f.branches[repo+"/"+name] = branch
		return branch, nil
	}

	return f
}

// setupWorkflow wires a full orchestrator against in-memory services.
func setupWorkflow(t *testing.T) (*workflow.Orchestrator, *fakeTracker, *fakeHost, *recordingNotifier) {
	t.Helper()

	trackerClient := newFakeTracker()
	host := newFakeHost()
	notifier := &recordingNotifier{}

	flow := workflow.NewOrchestrator(trackerClient, host, workflow.Options{
		DefaultRepo:    "FavRes",
		DefaultProject: "FAVRES",
		Notifier:       notifier,
	})

	return flow, trackerClient, host, notifier
}
