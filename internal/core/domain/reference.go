package domain

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// Kind identifies what a Reference points at.
type Kind string

const (
	KindIssue       Kind = "issue"
	KindPullRequest Kind = "pull_request"
	KindCommit      Kind = "commit"
)

// AllKinds returns every supported reference kind.
func AllKinds() []Kind {
	return []Kind{KindIssue, KindPullRequest, KindCommit}
}

// ParseKind parses a user-supplied kind name. Common aliases
// ("pr", "pull") are accepted.
func ParseKind(s string) (Kind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "issue", "issues":
		return KindIssue, nil
	case "pull_request", "pull", "pr", "prs":
		return KindPullRequest, nil
	case "commit", "commits":
		return KindCommit, nil
	default:
		return "", fmt.Errorf("%w: unknown kind %q", ErrInvalidReference, s)
	}
}

// KindSet is a filter over reference kinds. The zero value (nil or
// empty) matches every kind.
type KindSet map[Kind]bool

// ParseKindSet parses a comma-separated list of kind names.
// An empty string yields the match-all set.
func ParseKindSet(s string) (KindSet, error) {
	set := KindSet{}
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		k, err := ParseKind(part)
		if err != nil {
			return nil, err
		}
		set[k] = true
	}
	if len(set) == 0 {
		return nil, nil
	}
	return set, nil
}

// Contains reports whether the set matches the kind.
func (s KindSet) Contains(k Kind) bool {
	if len(s) == 0 {
		return true
	}
	return s[k]
}

// String renders the set in stable order.
func (s KindSet) String() string {
	if len(s) == 0 {
		return "all"
	}
	parts := make([]string, 0, len(s))
	for _, k := range AllKinds() {
		if s[k] {
			parts = append(parts, string(k))
		}
	}
	return strings.Join(parts, ",")
}

// Reference identifies one GitHub issue, pull request, or commit.
// It is immutable once parsed; equality is by (Owner, Repo, Kind,
// Number/SHA), exposed through Key for deduplication.
type Reference struct {
	Owner  string
	Repo   string
	Kind   Kind
	Number int    // issues and pull requests
	SHA    string // commits, lowercase hex
}

var referencePattern = regexp.MustCompile(
	`^https?://github\.com/([^/\s]+)/([^/\s]+)/(issues|pull|commit)/([0-9a-fA-F]+)/?$`,
)

// ParseURL parses a GitHub issue, pull request, or commit URL.
// Anything else fails with ErrInvalidReference.
func ParseURL(raw string) (Reference, error) {
	m := referencePattern.FindStringSubmatch(strings.TrimSpace(raw))
	if m == nil {
		return Reference{}, fmt.Errorf("%w: %q is not a GitHub issue, pull request, or commit URL", ErrInvalidReference, raw)
	}

	ref := Reference{Owner: m[1], Repo: m[2]}
	switch m[3] {
	case "issues":
		ref.Kind = KindIssue
	case "pull":
		ref.Kind = KindPullRequest
	case "commit":
		ref.Kind = KindCommit
	}

	if ref.Kind == KindCommit {
		if len(m[4]) < 7 {
			return Reference{}, fmt.Errorf("%w: commit SHA %q too short", ErrInvalidReference, m[4])
		}
		ref.SHA = strings.ToLower(m[4])
		return ref, nil
	}

	n, err := strconv.Atoi(m[4])
	if err != nil || n <= 0 {
		return Reference{}, fmt.Errorf("%w: invalid number %q", ErrInvalidReference, m[4])
	}
	ref.Number = n
	return ref, nil
}

// URL reconstructs the canonical https URL for the reference.
func (r Reference) URL() string {
	switch r.Kind {
	case KindPullRequest:
		return fmt.Sprintf("https://github.com/%s/%s/pull/%d", r.Owner, r.Repo, r.Number)
	case KindCommit:
		return fmt.Sprintf("https://github.com/%s/%s/commit/%s", r.Owner, r.Repo, r.SHA)
	default:
		return fmt.Sprintf("https://github.com/%s/%s/issues/%d", r.Owner, r.Repo, r.Number)
	}
}

// Ident is the number or SHA as a string.
func (r Reference) Ident() string {
	if r.Kind == KindCommit {
		return r.SHA
	}
	return strconv.Itoa(r.Number)
}

// Key is the deduplication key: two references with the same key
// identify the same item.
func (r Reference) Key() string {
	return fmt.Sprintf("%s/%s#%s#%s", r.Owner, r.Repo, r.Kind, r.Ident())
}

// String renders a short human-readable form, e.g. "owner/repo#12"
// or "owner/repo@abc1234".
func (r Reference) String() string {
	if r.Kind == KindCommit {
		sha := r.SHA
		if len(sha) > 7 {
			sha = sha[:7]
		}
		return fmt.Sprintf("%s/%s@%s", r.Owner, r.Repo, sha)
	}
	return fmt.Sprintf("%s/%s#%d", r.Owner, r.Repo, r.Number)
}

// IsZero reports whether the reference is unset.
func (r Reference) IsZero() bool {
	return r.Owner == "" && r.Repo == ""
}
