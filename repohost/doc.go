// Package repohost talks to repository hosting services.
//
// The Host interface covers the repository, branch, and pull request
// operations the feature workflow needs. Implementations exist for
// GitHub and GitLab; FromRemote picks one based on a git remote URL.
//
// Lookups for resources that may legitimately be absent (a branch, a
// pull request) return (nil, nil) on 404 rather than an error. All
// other remote failures surface as wrapped errors naming the call.
package repohost
