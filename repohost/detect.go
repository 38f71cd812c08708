package repohost

import (
	"fmt"
	"strings"
)

// Kind identifies a hosting service.
type Kind string

const (
	KindGitHub Kind = "github"
	KindGitLab Kind = "gitlab"
)

// Detect identifies the hosting service from a git remote URL.
func Detect(remoteURL string) (Kind, error) {
	lower := strings.ToLower(remoteURL)

	if strings.Contains(lower, "github.com") {
		return KindGitHub, nil
	}
	if strings.Contains(lower, "gitlab") {
		return KindGitLab, nil
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownHost, remoteURL)
}

// ParseRepoFromURL extracts owner and repo from a git remote URL.
// Handles both SSH (git@host:owner/repo.git) and HTTPS forms.
func ParseRepoFromURL(remoteURL string) (owner, repo string, err error) {
	if strings.HasPrefix(remoteURL, "git@") {
		_, path, ok := strings.Cut(remoteURL, ":")
		if !ok {
			return "", "", fmt.Errorf("invalid SSH URL format: %s", remoteURL)
		}
		path = strings.TrimSuffix(path, ".git")
		owner, repo, ok = strings.Cut(path, "/")
		if !ok || owner == "" || repo == "" {
			return "", "", fmt.Errorf("invalid repository path: %s", remoteURL)
		}
		return owner, repo, nil
	}

	trimmed := strings.TrimPrefix(remoteURL, "https://")
	trimmed = strings.TrimPrefix(trimmed, "http://")
	trimmed = strings.TrimSuffix(trimmed, ".git")

	parts := strings.Split(trimmed, "/")
	if len(parts) < 3 {
		return "", "", fmt.Errorf("invalid URL format: %s", remoteURL)
	}

	return parts[len(parts)-2], parts[len(parts)-1], nil
}

// FromRemote creates a Host for the service a git remote URL points at.
// The returned host defaults unqualified repository names to the owner
// parsed from the URL.
func FromRemote(remoteURL, token string) (Host, error) {
	kind, err := Detect(remoteURL)
	if err != nil {
		return nil, err
	}

	owner, _, err := ParseRepoFromURL(remoteURL)
	if err != nil {
		return nil, fmt.Errorf("parse remote URL: %w", err)
	}

	switch kind {
	case KindGitHub:
		return NewGitHub(GitHubConfig{Token: token, Owner: owner})

	case KindGitLab:
		cfg := GitLabConfig{Token: token, Namespace: owner}
		// Self-hosted instances keep their own API endpoint.
		if !strings.Contains(strings.ToLower(remoteURL), "gitlab.com") {
			trimmed := strings.TrimPrefix(remoteURL, "https://")
			trimmed = strings.TrimPrefix(trimmed, "http://")
			if host, _, ok := strings.Cut(trimmed, "/"); ok && !strings.HasPrefix(host, "git@") {
				cfg.BaseURL = "https://" + host
			}
		}
		return NewGitLab(cfg)

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownHost, kind)
	}
}
