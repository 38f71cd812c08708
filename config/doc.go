// Package config resolves issueflow settings from layered sources.
//
// Precedence, highest first:
//  1. Environment variables (ISSUEFLOW_* prefix, plus the conventional
//     LINEAR_API_KEY / GITHUB_TOKEN / GITLAB_TOKEN fallbacks)
//  2. Local config (.issueflow.yaml in the git root)
//  3. Global config (~/.config/issueflow/config.yaml)
//  4. Built-in defaults
//
// Load returns a typed Settings value; each key's origin is tracked so
// diagnostics can report where a value came from:
//
//	settings, err := config.Load()
//	fmt.Println(settings.DefaultProject)            // "FAVRES"
//	fmt.Println(settings.Source("default_project")) // "default"
package config
