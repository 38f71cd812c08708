package naming

import (
	"fmt"
	"regexp"
	"strings"
)

// BranchValidation is the outcome of validating a branch name.
// Constructed once per call and never mutated.
type BranchValidation struct {
	Valid       bool       `json:"is_valid"`
	Type        BranchType `json:"branch_type,omitempty"`
	IssueRef    string     `json:"issue_ref,omitempty"`
	Description string     `json:"description,omitempty"`
	Err         string     `json:"error,omitempty"`
	Suggestions []string   `json:"suggestions,omitempty"`
}

// ValidateBranch checks a branch name against the naming convention.
func ValidateBranch(name string) BranchValidation {
	if name == "" {
		return BranchValidation{Err: "Branch name cannot be empty"}
	}

	if reservedBranches[name] {
		return BranchValidation{Err: fmt.Sprintf("'%s' is a reserved branch name", name)}
	}

	m := branchPattern.FindStringSubmatch(name)
	if m == nil {
		return BranchValidation{
			Err:         branchErrorMessage(name),
			Suggestions: branchSuggestions(name),
		}
	}

	return BranchValidation{
		Valid:       true,
		Type:        BranchType(m[1]),
		IssueRef:    m[2],
		Description: m[3],
	}
}

// ParseBranch extracts components from a branch name.
// All results are zero-valued when the name does not conform.
func ParseBranch(name string) (typ BranchType, issueRef, description string) {
	result := ValidateBranch(name)
	return result.Type, result.IssueRef, result.Description
}

// GenerateBranch builds a convention-conforming branch name.
// issueRef may be empty; when set it must match the PROJECT-123 form.
func GenerateBranch(typ BranchType, description, issueRef string) (string, error) {
	if !typ.Valid() {
		return "", fmt.Errorf("%w %q, valid types: %s", ErrInvalidBranchType, string(typ), branchTypeList())
	}
	if description == "" {
		return "", ErrEmptyDescription
	}
	if issueRef != "" && !ValidIssueRef(issueRef) {
		return "", fmt.Errorf("%w %q, expected form PROJECT-123", ErrInvalidIssueRef, issueRef)
	}

	slug := Slugify(description)
	if slug == "" {
		return "", ErrEmptySlug
	}

	if issueRef != "" {
		return string(typ) + "/" + issueRef + "-" + slug, nil
	}
	return string(typ) + "/" + slug, nil
}

var (
	slugSeparators = regexp.MustCompile(`[\s_]+`)
	slugInvalid    = regexp.MustCompile(`[^a-z0-9-]`)
	slugHyphenRuns = regexp.MustCompile(`-+`)
)

// Slugify converts free text to a lowercase hyphenated token fit for a
// branch name. Idempotent: slugifying a slug is a no-op.
func Slugify(s string) string {
	s = strings.ToLower(s)
	s = slugSeparators.ReplaceAllString(s, "-")
	s = slugInvalid.ReplaceAllString(s, "")
	s = slugHyphenRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// branchErrorMessage classifies why a name failed the branch pattern.
func branchErrorMessage(name string) string {
	if !strings.Contains(name, "/") {
		return "Branch name must include a type prefix (e.g., feature/, bugfix/)"
	}

	typ, _, _ := strings.Cut(name, "/")
	if !BranchType(typ).Valid() {
		return fmt.Sprintf("Invalid branch type '%s'. Valid types: %s", typ, branchTypeList())
	}

	return "Branch name format is invalid. Expected: <type>/<issue-ref>-<description> or <type>/<description>"
}

// branchSuggestions proposes up to three corrected names for input that
// failed validation. Token zero is treated as a candidate type and
// matched against the valid types by 3-character prefix.
func branchSuggestions(name string) []string {
	var suggestions []string

	// Separators normalize to "/" before splitting; empty tokens are
	// kept, so a leading separator means token zero is not a type
	// candidate and the generic fallback applies.
	normalized := strings.NewReplacer(" ", "/", "_", "/").Replace(name)
	parts := strings.Split(normalized, "/")

	if len(parts) >= 2 {
		candidate := strings.ToLower(parts[0])
		rest := strings.Join(parts[1:], "-")

		for _, typ := range branchTypes {
			if strings.HasPrefix(candidate, string(typ)[:3]) {
				if slug := Slugify(rest); slug != "" {
					suggestions = append(suggestions, string(typ)+"/"+slug)
				}
				break
			}
		}
	}

	// No recoverable type: offer the most common prefixes.
	if len(suggestions) == 0 {
		if slug := Slugify(name); slug != "" {
			suggestions = append(suggestions,
				string(BranchFeature)+"/"+slug,
				string(BranchBugfix)+"/"+slug,
			)
		}
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}
