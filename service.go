package issueflow

import (
	"fmt"

	"github.com/randalmurphal/issueflow/config"
	"github.com/randalmurphal/issueflow/git"
	"github.com/randalmurphal/issueflow/notify"
	"github.com/randalmurphal/issueflow/repohost"
	"github.com/randalmurphal/issueflow/tracker"
	"github.com/randalmurphal/issueflow/workflow"
)

// Service wires the tracker, repo host, and workflow together behind
// the tool surface.
type Service struct {
	tracker tracker.Client
	host    repohost.Host
	flow    *workflow.Orchestrator
}

// NewService builds a Service from resolved settings. The tracker is
// Jira when a Jira URL is configured, Linear otherwise; the host is
// GitLab when only a GitLab token is configured, GitHub otherwise.
func NewService(settings *config.Settings) (*Service, error) {
	trackerClient, err := newTracker(settings)
	if err != nil {
		return nil, fmt.Errorf("configure tracker: %w", err)
	}

	host, err := newHost(settings)
	if err != nil {
		return nil, fmt.Errorf("configure repo host: %w", err)
	}

	return newService(trackerClient, host, settings), nil
}

// NewServiceFromRepo is like NewService but picks the repo host by
// inspecting the origin remote of the git repository at path.
func NewServiceFromRepo(settings *config.Settings, path string) (*Service, error) {
	trackerClient, err := newTracker(settings)
	if err != nil {
		return nil, fmt.Errorf("configure tracker: %w", err)
	}

	repo, err := git.NewContext(path)
	if err != nil {
		return nil, err
	}
	remote, err := repo.RemoteURL("origin")
	if err != nil {
		return nil, err
	}

	kind, err := repohost.Detect(remote)
	if err != nil {
		return nil, err
	}

	token := settings.GitHubToken
	if kind == repohost.KindGitLab {
		token = settings.GitLabToken
	}

	host, err := repohost.FromRemote(remote, token)
	if err != nil {
		return nil, fmt.Errorf("configure repo host: %w", err)
	}

	return newService(trackerClient, host, settings), nil
}

func newService(trackerClient tracker.Client, host repohost.Host, settings *config.Settings) *Service {
	flow := workflow.NewOrchestrator(trackerClient, host, workflow.Options{
		DefaultRepo:       settings.DefaultRepo,
		DefaultProject:    settings.DefaultProject,
		DefaultBaseBranch: settings.BaseBranch,
		Notifier:          newNotifier(settings),
	})

	return &Service{
		tracker: trackerClient,
		host:    host,
		flow:    flow,
	}
}

func newTracker(settings *config.Settings) (tracker.Client, error) {
	if settings.JiraURL != "" {
		return tracker.NewJira(tracker.JiraConfig{
			URL:     settings.JiraURL,
			Email:   settings.JiraEmail,
			Token:   settings.JiraToken,
			Timeout: settings.RequestTimeout,
		})
	}

	return tracker.NewLinear(tracker.LinearConfig{
		APIKey:  settings.LinearAPIKey,
		URL:     settings.LinearURL,
		Timeout: settings.RequestTimeout,
	})
}

func newHost(settings *config.Settings) (repohost.Host, error) {
	if settings.GitLabToken != "" && settings.GitHubToken == "" {
		return repohost.NewGitLab(repohost.GitLabConfig{
			Token:     settings.GitLabToken,
			BaseURL:   settings.GitLabURL,
			Namespace: settings.GitHubOwner,
		})
	}

	return repohost.NewGitHub(repohost.GitHubConfig{
		Token:   settings.GitHubToken,
		Owner:   settings.GitHubOwner,
		BaseURL: settings.GitHubAPIURL,
	})
}

// newNotifier fans out to every configured notification target. Nil
// when nothing is configured, a single notifier when one is, Multi
// otherwise.
func newNotifier(settings *config.Settings) notify.Notifier {
	var notifiers []notify.Notifier
	if settings.SlackWebhook != "" {
		notifiers = append(notifiers, notify.NewSlackNotifier(settings.SlackWebhook))
	}
	if settings.WebhookURL != "" {
		notifiers = append(notifiers, notify.NewWebhookNotifier(settings.WebhookURL, nil))
	}
	if settings.NotifyLog {
		notifiers = append(notifiers, notify.NewLogNotifier(nil))
	}

	switch len(notifiers) {
	case 0:
		return nil
	case 1:
		return notifiers[0]
	default:
		return notify.NewMultiNotifier(notifiers...)
	}
}
