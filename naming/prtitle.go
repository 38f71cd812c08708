package naming

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// PRTitleValidation is the outcome of validating a pull request title.
type PRTitleValidation struct {
	Valid    bool       `json:"is_valid"`
	Type     BranchType `json:"branch_type,omitempty"`
	IssueRef string     `json:"issue_ref,omitempty"`
	Title    string     `json:"title,omitempty"`
	Err      string     `json:"error,omitempty"`
}

// ValidatePRTitle checks a pull request title against the
// <Type>/<ISSUE-REF>: <Title> convention, e.g.
// "Feature/FAVRES-123: Restaurant Search Implementation".
func ValidatePRTitle(title string) PRTitleValidation {
	if title == "" {
		return PRTitleValidation{Err: "PR title cannot be empty"}
	}

	m := prTitlePattern.FindStringSubmatch(title)
	if m == nil {
		return PRTitleValidation{
			Err: "PR title format is invalid. Expected: <Type>/<ISSUE-REF>: <Title>",
		}
	}

	return PRTitleValidation{
		Valid:    true,
		Type:     BranchType(strings.ToLower(m[1])),
		IssueRef: m[2],
		Title:    m[3],
	}
}

// PRTitle builds a pull request title from a branch type, issue ref,
// and free-text title. The branch type is title-cased for the prefix.
func PRTitle(typ BranchType, issueRef, title string) (string, error) {
	if !typ.Valid() {
		return "", fmt.Errorf("%w %q, valid types: %s", ErrInvalidBranchType, string(typ), branchTypeList())
	}
	if !ValidIssueRef(issueRef) {
		return "", fmt.Errorf("%w %q, expected form PROJECT-123", ErrInvalidIssueRef, issueRef)
	}

	title = strings.TrimSpace(title)
	if title == "" {
		return "", ErrEmptyTitle
	}

	prefix := cases.Title(language.English).String(string(typ))
	return fmt.Sprintf("%s/%s: %s", prefix, issueRef, title), nil
}
