package config

import (
	"fmt"
	"os"
	"time"
)

// Settings keys.
const (
	KeyLinearAPIKey   = "linear_api_key"
	KeyLinearURL      = "linear_url"
	KeyGitHubToken    = "github_token"
	KeyGitHubAPIURL   = "github_api_url"
	KeyGitHubOwner    = "github_owner"
	KeyGitLabToken    = "gitlab_token"
	KeyGitLabURL      = "gitlab_url"
	KeyJiraURL        = "jira_url"
	KeyJiraEmail      = "jira_email"
	KeyJiraToken      = "jira_token"
	KeyDefaultProject = "default_project"
	KeyDefaultRepo    = "default_repo"
	KeyBaseBranch     = "base_branch"
	KeyRequestTimeout = "request_timeout"
	KeySlackWebhook   = "slack_webhook"
	KeyWebhookURL     = "webhook_url"
	KeyNotifyLog      = "notify_log"
)

// Keys lists every recognized setting, including those with no
// default, so ISSUEFLOW_* environment overrides reach all of them.
var Keys = []string{
	KeyLinearAPIKey,
	KeyLinearURL,
	KeyGitHubToken,
	KeyGitHubAPIURL,
	KeyGitHubOwner,
	KeyGitLabToken,
	KeyGitLabURL,
	KeyJiraURL,
	KeyJiraEmail,
	KeyJiraToken,
	KeyDefaultProject,
	KeyDefaultRepo,
	KeyBaseBranch,
	KeyRequestTimeout,
	KeySlackWebhook,
	KeyWebhookURL,
	KeyNotifyLog,
}

// Defaults for issueflow settings.
var Defaults = map[string]string{
	KeyLinearURL:      "https://api.linear.app/graphql",
	KeyGitHubAPIURL:   "https://api.github.com",
	KeyGitHubOwner:    "arclabs-studio",
	KeyDefaultProject: "FAVRES",
	KeyDefaultRepo:    "FavRes",
	KeyRequestTimeout: "30s",
}

// Settings holds the resolved issueflow configuration.
type Settings struct {
	// Linear
	LinearAPIKey string
	LinearURL    string

	// GitHub
	GitHubToken  string
	GitHubAPIURL string
	GitHubOwner  string

	// GitLab (optional alternative host)
	GitLabToken string
	GitLabURL   string

	// Jira (optional alternative tracker)
	JiraURL   string
	JiraEmail string
	JiraToken string

	// Workflow defaults
	DefaultProject string
	DefaultRepo    string
	BaseBranch     string

	RequestTimeout time.Duration

	// Notifications
	SlackWebhook string
	WebhookURL   string
	NotifyLog    bool

	resolved *Resolved
}

// Load resolves settings from config files and the environment.
func Load() (*Settings, error) {
	resolver := NewResolver(ResolverConfig{
		EnvPrefix:       "ISSUEFLOW_",
		GlobalConfigDir: "issueflow",
		LocalConfigName: ".issueflow.yaml",
		Defaults:        Defaults,
		Keys:            Keys,
	})
	return FromResolved(resolver.Resolve())
}

// FromResolved builds typed settings from a resolved key set.
func FromResolved(resolved *Resolved) (*Settings, error) {
	s := &Settings{
		LinearAPIKey:   resolved.Get(KeyLinearAPIKey),
		LinearURL:      resolved.Get(KeyLinearURL),
		GitHubToken:    resolved.Get(KeyGitHubToken),
		GitHubAPIURL:   resolved.Get(KeyGitHubAPIURL),
		GitHubOwner:    resolved.Get(KeyGitHubOwner),
		GitLabToken:    resolved.Get(KeyGitLabToken),
		GitLabURL:      resolved.Get(KeyGitLabURL),
		JiraURL:        resolved.Get(KeyJiraURL),
		JiraEmail:      resolved.Get(KeyJiraEmail),
		JiraToken:      resolved.Get(KeyJiraToken),
		DefaultProject: resolved.Get(KeyDefaultProject),
		DefaultRepo:    resolved.Get(KeyDefaultRepo),
		BaseBranch:     resolved.Get(KeyBaseBranch),
		SlackWebhook:   resolved.Get(KeySlackWebhook),
		WebhookURL:     resolved.Get(KeyWebhookURL),
		NotifyLog:      resolved.Get(KeyNotifyLog) == "true",
		resolved:       resolved,
	}

	// Conventional unprefixed env vars win over nothing but fill gaps.
	if s.LinearAPIKey == "" {
		s.LinearAPIKey = os.Getenv("LINEAR_API_KEY")
	}
	if s.GitHubToken == "" {
		s.GitHubToken = os.Getenv("GITHUB_TOKEN")
	}
	if s.GitLabToken == "" {
		s.GitLabToken = os.Getenv("GITLAB_TOKEN")
	}
	if s.JiraToken == "" {
		s.JiraToken = os.Getenv("JIRA_API_TOKEN")
	}

	if raw := resolved.Get(KeyRequestTimeout); raw != "" {
		timeout, err := time.ParseDuration(raw)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", KeyRequestTimeout, err)
		}
		s.RequestTimeout = timeout
	}

	return s, nil
}

// Source reports where a key's value came from.
func (s *Settings) Source(key string) Source {
	if s.resolved == nil {
		return ""
	}
	return s.resolved.Source(key)
}
