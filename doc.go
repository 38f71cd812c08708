// Package issueflow ties issue-tracker and repo-host workflows to a
// small tool surface for naming-convention enforcement.
//
// The package is organized into subpackages by domain:
//
//   - naming: Branch, commit, and PR title conventions
//   - tracker: Issue tracker clients (Linear, Jira)
//   - repohost: Repo host clients (GitHub, GitLab)
//   - workflow: The start-feature orchestrator
//   - notify: Notification services (Slack, webhook)
//   - config: Layered settings resolution
//   - git: Local repository inspection
//   - http: HTTP client utilities
//
// The root package exposes the tool surface: named tools with JSON
// schemas, dispatched by a Service that wires the subpackages together
// from config.Settings.
//
// # Quick Start
//
//	settings, _ := config.Load()
//	svc, _ := issueflow.NewService(settings)
//
//	res := svc.Call(ctx, "validate_branch_name",
//	    json.RawMessage(`{"branch_name": "feature/FAVRES-123-search"}`))
//
// See individual package documentation for detailed usage.
package issueflow
