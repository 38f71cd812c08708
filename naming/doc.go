// Package naming implements branch, commit, and PR title naming
// conventions: parsing, validation, generation, and did-you-mean
// suggestions for input that almost conforms.
//
// Branch format:
//
//	<type>/<issue-ref>-<description>
//
// Examples:
//
//	feature/FAVRES-123-restaurant-search
//	bugfix/FAVRES-456-map-crash
//	docs/update-readme
//
// Commit format (conventional commits):
//
//	<type>(<scope>): <subject>
//
// Examples:
//
//	feat(search): add restaurant filtering
//	fix(map): resolve annotation crash
//	refactor: simplify auth flow
//
// Validators and generators share one set of patterns, so a generated
// name always passes its own validator.
package naming
