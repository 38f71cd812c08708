// Package tracker provides access to the issue tracker.
//
// The Client interface exposes exactly the operations the workflow layer
// needs: project resolution, workflow states, labels, users, and issue
// create/update/find. Linear implements it over the Linear GraphQL API,
// Jira over the Jira Cloud REST API; Mock implements it for tests.
//
// Lookups that find nothing return (nil, nil) rather than an error, so
// callers can distinguish "absent" from "the call failed".
package tracker
