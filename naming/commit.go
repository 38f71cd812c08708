package naming

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// CommitValidation is the outcome of validating a commit message.
// Constructed once per call and never mutated.
type CommitValidation struct {
	Valid       bool       `json:"is_valid"`
	Type        CommitType `json:"commit_type,omitempty"`
	Scope       string     `json:"scope,omitempty"`
	Subject     string     `json:"subject,omitempty"`
	Err         string     `json:"error,omitempty"`
	Suggestions []string   `json:"suggestions,omitempty"`
}

var preColonPattern = regexp.MustCompile(`^(\w+)(?:\(([^)]+)\))?$`)

// ValidateCommit checks the first line of a commit message against the
// conventional commit format. Lines after the first are ignored.
func ValidateCommit(message string) CommitValidation {
	firstLine, _, _ := strings.Cut(message, "\n")
	firstLine = strings.TrimSpace(firstLine)

	if firstLine == "" {
		return CommitValidation{Err: "Commit message cannot be empty"}
	}

	// The limit counts characters, not bytes.
	if n := utf8.RuneCountInString(firstLine); n > MaxCommitLineLength {
		return CommitValidation{
			Err: fmt.Sprintf("Commit message too long (%d chars). Maximum is %d characters.",
				n, MaxCommitLineLength),
		}
	}

	m := commitPattern.FindStringSubmatch(firstLine)
	if m == nil {
		return CommitValidation{
			Err:         commitErrorMessage(firstLine),
			Suggestions: commitSuggestions(firstLine),
		}
	}

	typ, scope, subject := CommitType(m[1]), m[2], m[3]

	// The uppercase rule is checked before the trailing-period rule, and
	// each produces exactly one corrective suggestion.
	if first, _ := utf8.DecodeRuneInString(subject); unicode.IsUpper(first) {
		return CommitValidation{
			Type:        typ,
			Scope:       scope,
			Subject:     subject,
			Err:         "Subject should start with lowercase letter",
			Suggestions: []string{formatCommit(typ, scope, lowerFirst(subject))},
		}
	}

	if strings.HasSuffix(subject, ".") {
		return CommitValidation{
			Type:        typ,
			Scope:       scope,
			Subject:     subject,
			Err:         "Subject should not end with a period",
			Suggestions: []string{formatCommit(typ, scope, strings.TrimSuffix(subject, "."))},
		}
	}

	return CommitValidation{
		Valid:   true,
		Type:    typ,
		Scope:   scope,
		Subject: subject,
	}
}

// ParseCommit extracts components from a commit message.
// All results are zero-valued when the message does not conform.
func ParseCommit(message string) (typ CommitType, scope, subject string) {
	result := ValidateCommit(message)
	return result.Type, result.Scope, result.Subject
}

// GenerateCommit builds a convention-conforming commit message.
// scope may be empty; when set it is slugged to the scope alphabet.
func GenerateCommit(typ CommitType, subject, scope string) (string, error) {
	if !typ.Valid() {
		return "", fmt.Errorf("%w %q, valid types: %s", ErrInvalidCommitType, string(typ), commitTypeList())
	}

	subject = strings.TrimSpace(subject)
	if subject == "" {
		return "", ErrEmptySubject
	}

	// Scope normalizes to the same slug alphabet the validator
	// accepts, so generated messages always validate.
	if scope != "" {
		slugged := Slugify(scope)
		if slugged == "" {
			return "", fmt.Errorf("%w %q", ErrInvalidScope, scope)
		}
		scope = slugged
	}

	// Only the first rune is lowercased. Internal capitalization is
	// meaningful (API names, acronyms) and preserved.
	subject = lowerFirst(subject)
	subject = strings.TrimSuffix(subject, ".")

	return formatCommit(typ, scope, subject), nil
}

// formatCommit renders a commit first line from its components.
func formatCommit(typ CommitType, scope, subject string) string {
	if scope != "" {
		return fmt.Sprintf("%s(%s): %s", typ, scope, subject)
	}
	return fmt.Sprintf("%s: %s", typ, subject)
}

// lowerFirst lowercases the first rune of s, leaving the rest untouched.
func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

// commitErrorMessage classifies why a first line failed the commit pattern.
func commitErrorMessage(firstLine string) string {
	if !strings.Contains(firstLine, ":") {
		return "Commit message must follow format: <type>(<scope>): <subject>"
	}

	typePart, subject, _ := strings.Cut(firstLine, ":")
	typePart = strings.TrimSpace(typePart)

	m := preColonPattern.FindStringSubmatch(typePart)
	if m == nil {
		return "Invalid format before colon. Expected: <type> or <type>(<scope>)"
	}

	if !CommitType(m[1]).Valid() {
		return fmt.Sprintf("Invalid commit type '%s'. Valid types: %s", m[1], commitTypeList())
	}

	if strings.TrimSpace(subject) == "" {
		return "Subject cannot be empty after the colon"
	}

	return "Commit message format is invalid. Expected: <type>(<scope>): <subject>"
}

// keywordHints pairs content keywords with the commit type they imply.
// Checked in order; the first category with a hit wins.
var keywordHints = []struct {
	typ      CommitType
	keywords []string
}{
	{CommitFeat, []string{"add", "new", "create", "implement"}},
	{CommitFix, []string{"fix", "bug", "issue", "resolve"}},
	{CommitDocs, []string{"doc", "readme", "comment"}},
	{CommitRefactor, []string{"refactor", "clean", "simplify"}},
}

// commitSuggestions proposes corrected messages for a first line that
// failed the pattern. A recoverable type prefix yields one suggestion;
// otherwise the content keywords pick a type, falling back to chore.
func commitSuggestions(firstLine string) []string {
	var suggestions []string

	cleaned := strings.TrimSpace(firstLine)
	for _, typ := range commitTypes {
		if !strings.HasPrefix(strings.ToLower(cleaned), string(typ)) {
			continue
		}

		rest := strings.TrimSpace(cleaned[len(typ):])
		if strings.HasPrefix(rest, ":") {
			rest = strings.TrimSpace(rest[1:])
		}
		if strings.HasPrefix(rest, "-") {
			rest = strings.TrimSpace(rest[1:])
		}
		if rest != "" {
			subject := strings.TrimSuffix(lowerFirst(rest), ".")
			suggestions = append(suggestions, string(typ)+": "+subject)
			break
		}
	}

	if len(suggestions) == 0 {
		typ := CommitChore
		lower := strings.ToLower(firstLine)
	hints:
		for _, hint := range keywordHints {
			for _, kw := range hint.keywords {
				if strings.Contains(lower, kw) {
					typ = hint.typ
					break hints
				}
			}
		}
		suggestions = append(suggestions, string(typ)+": "+normalizeSubjectHint(firstLine))
	}

	if len(suggestions) > 3 {
		suggestions = suggestions[:3]
	}
	return suggestions
}

// normalizeSubjectHint shapes free text into a plausible subject:
// drops a leading type prefix, lowercases the first rune, and strips a
// trailing period.
func normalizeSubjectHint(message string) string {
	for _, typ := range commitTypes {
		if strings.HasPrefix(strings.ToLower(message), string(typ)) {
			message = strings.TrimSpace(message[len(typ):])
			if strings.HasPrefix(message, ":") {
				message = strings.TrimSpace(message[1:])
			}
			break
		}
	}

	return strings.TrimSuffix(lowerFirst(message), ".")
}
