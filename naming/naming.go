package naming

import (
	"regexp"
	"sort"
	"strings"
)

// BranchType categorizes a branch by its name prefix.
type BranchType string

// Valid branch types.
const (
	BranchFeature BranchType = "feature"
	BranchBugfix  BranchType = "bugfix"
	BranchHotfix  BranchType = "hotfix"
	BranchDocs    BranchType = "docs"
	BranchSpike   BranchType = "spike"
	BranchRelease BranchType = "release"
)

// branchTypes lists the valid branch types in canonical order.
// Suggestion matching iterates in this order, so it must stay stable.
var branchTypes = []BranchType{
	BranchFeature,
	BranchBugfix,
	BranchHotfix,
	BranchDocs,
	BranchSpike,
	BranchRelease,
}

// BranchTypes returns the valid branch types in canonical order.
func BranchTypes() []BranchType {
	out := make([]BranchType, len(branchTypes))
	copy(out, branchTypes)
	return out
}

// Valid reports whether t is a recognized branch type.
func (t BranchType) Valid() bool {
	for _, bt := range branchTypes {
		if t == bt {
			return true
		}
	}
	return false
}

// CommitType categorizes a commit following conventional commits.
type CommitType string

// Valid commit types.
const (
	CommitFeat     CommitType = "feat"
	CommitFix      CommitType = "fix"
	CommitDocs     CommitType = "docs"
	CommitStyle    CommitType = "style"
	CommitRefactor CommitType = "refactor"
	CommitPerf     CommitType = "perf"
	CommitTest     CommitType = "test"
	CommitChore    CommitType = "chore"
	CommitBuild    CommitType = "build"
	CommitCI       CommitType = "ci"
	CommitRevert   CommitType = "revert"
)

// commitTypes lists the valid commit types in canonical order.
var commitTypes = []CommitType{
	CommitFeat,
	CommitFix,
	CommitDocs,
	CommitStyle,
	CommitRefactor,
	CommitPerf,
	CommitTest,
	CommitChore,
	CommitBuild,
	CommitCI,
	CommitRevert,
}

// CommitTypes returns the valid commit types in canonical order.
func CommitTypes() []CommitType {
	out := make([]CommitType, len(commitTypes))
	copy(out, commitTypes)
	return out
}

// Valid reports whether t is a recognized commit type.
func (t CommitType) Valid() bool {
	for _, ct := range commitTypes {
		if t == ct {
			return true
		}
	}
	return false
}

// CommitTypeDescriptions maps each commit type to a short description
// for the conventions reference.
var CommitTypeDescriptions = map[CommitType]string{
	CommitFeat:     "A new feature",
	CommitFix:      "A bug fix",
	CommitDocs:     "Documentation only changes",
	CommitStyle:    "Changes that do not affect the meaning of the code",
	CommitRefactor: "A code change that neither fixes a bug nor adds a feature",
	CommitPerf:     "A code change that improves performance",
	CommitTest:     "Adding missing tests or correcting existing tests",
	CommitChore:    "Other changes that don't modify src or test files",
	CommitBuild:    "Changes that affect the build system or external dependencies",
	CommitCI:       "Changes to CI configuration files and scripts",
	CommitRevert:   "Reverts a previous commit",
}

// MaxCommitLineLength is the maximum length of a commit subject line.
const MaxCommitLineLength = 100

// reservedBranches are git ref names that can never be convention
// branches. Matching is case-sensitive.
var reservedBranches = map[string]bool{
	"main":    true,
	"master":  true,
	"develop": true,
	"HEAD":    true,
}

var (
	branchPattern = regexp.MustCompile(
		`^(feature|bugfix|hotfix|docs|spike|release)/(?:([A-Z]+-\d+)-)?([a-z0-9]+(?:-[a-z0-9]+)*)$`)
	commitPattern = regexp.MustCompile(
		`^(feat|fix|docs|style|refactor|perf|test|chore|build|ci|revert)(?:\(([a-z0-9-]+)\))?:\s+(.+)$`)
	issueRefPattern = regexp.MustCompile(`^[A-Z]+-\d+$`)
	prTitlePattern  = regexp.MustCompile(
		`^(Feature|Bugfix|Hotfix|Docs|Spike|Release)/([A-Z]+-\d+):\s+(.+)$`)
)

// ValidIssueRef reports whether ref matches the PROJECT-123 form.
func ValidIssueRef(ref string) bool {
	return issueRefPattern.MatchString(ref)
}

// branchTypeList formats the valid branch types for error messages.
func branchTypeList() string {
	names := make([]string, len(branchTypes))
	for i, t := range branchTypes {
		names[i] = string(t)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}

// commitTypeList formats the valid commit types for error messages.
func commitTypeList() string {
	names := make([]string, len(commitTypes))
	for i, t := range commitTypes {
		names[i] = string(t)
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
