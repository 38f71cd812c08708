// Package git provides read-only inspection of a local git repository.
//
// Core types:
//   - Context: Repository handle with inspection operations
//   - CommandRunner: Interface for executing git commands (with mock for testing)
//
// The package shells out to the git binary; it holds no state beyond
// the repository path.
package git
