// Package workflow orchestrates the cross-service feature workflow.
//
// StartFeature sequences two remote systems in a fixed order: create an
// issue in the tracker, then create a matching branch on the repo host.
// The two systems share no transaction, so a later step failing never
// rolls back an earlier step's remote side effect. The Outcome reports
// partial completion instead: a failed branch step still carries the
// issue that was created, so the caller can take corrective action.
//
// Each StartFeature invocation owns its own state. There is no caching
// and no retrying; remote failures surface in the outcome immediately.
package workflow
