package extract

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"github.com/octotext/octotext/internal/core/domain"
)

// Cross-reference patterns, scanned over the raw text. Order of the
// result is order of first occurrence in the document.
var (
	urlRef   = regexp.MustCompile(`https?://github\.com/([\w.-]+)/([\w.-]+)/(issues|pull|commit)/([0-9a-fA-F]+)`)
	repoRef  = regexp.MustCompile(`(?:^|[\s(])([\w.-]+)/([\w.-]+)#(\d+)\b`)
	shortRef = regexp.MustCompile(`(?:^|[\s(])#(\d+)\b`)
	shaRef   = regexp.MustCompile(`(?:^|[\s("` + "`" + `])([0-9a-f]{40})\b`)
)

type found struct {
	pos int
	ref domain.Reference
}

// DiscoverReferences scans text for references to other GitHub items.
// Short forms ("#123", bare 40-hex SHAs) resolve against base's
// repository. Duplicates within the document collapse to the first
// occurrence, and the base item itself is never reported.
func DiscoverReferences(text string, base domain.Reference) []domain.Reference {
	var hits []found

	for _, m := range urlRef.FindAllStringSubmatchIndex(text, -1) {
		ref, ok := refFromURLMatch(text, m)
		if ok {
			hits = append(hits, found{pos: m[0], ref: ref})
		}
	}

	for _, m := range repoRef.FindAllStringSubmatchIndex(text, -1) {
		n, err := strconv.Atoi(text[m[6]:m[7]])
		if err != nil {
			continue
		}
		hits = append(hits, found{pos: m[2], ref: domain.Reference{
			Owner:  text[m[2]:m[3]],
			Repo:   text[m[4]:m[5]],
			Kind:   domain.KindIssue,
			Number: n,
		}})
	}

	for _, m := range shortRef.FindAllStringSubmatchIndex(text, -1) {
		n, err := strconv.Atoi(text[m[2]:m[3]])
		if err != nil {
			continue
		}
		hits = append(hits, found{pos: m[2] - 1, ref: domain.Reference{
			Owner:  base.Owner,
			Repo:   base.Repo,
			Kind:   domain.KindIssue,
			Number: n,
		}})
	}

	for _, m := range shaRef.FindAllStringSubmatchIndex(text, -1) {
		hits = append(hits, found{pos: m[2], ref: domain.Reference{
			Owner: base.Owner,
			Repo:  base.Repo,
			Kind:  domain.KindCommit,
			SHA:   text[m[2]:m[3]],
		}})
	}

	sort.SliceStable(hits, func(i, j int) bool { return hits[i].pos < hits[j].pos })

	seen := map[string]bool{base.Key(): true}
	if base.Number > 0 {
		// "#456" on the page of pull request 456 is a self-reference
		// even though short forms default to the issue kind.
		alt := base
		for _, k := range []domain.Kind{domain.KindIssue, domain.KindPullRequest} {
			alt.Kind = k
			seen[alt.Key()] = true
		}
	}
	var refs []domain.Reference
	for _, h := range hits {
		if h.ref.IsZero() || seen[h.ref.Key()] {
			continue
		}
		seen[h.ref.Key()] = true
		refs = append(refs, h.ref)
	}
	return refs
}

func refFromURLMatch(text string, m []int) (domain.Reference, bool) {
	ref := domain.Reference{
		Owner: text[m[2]:m[3]],
		Repo:  text[m[4]:m[5]],
	}
	ident := text[m[8]:m[9]]

	switch text[m[6]:m[7]] {
	case "issues":
		ref.Kind = domain.KindIssue
	case "pull":
		ref.Kind = domain.KindPullRequest
	case "commit":
		ref.Kind = domain.KindCommit
	}

	if ref.Kind == domain.KindCommit {
		if len(ident) < 7 {
			return domain.Reference{}, false
		}
		ref.SHA = strings.ToLower(ident)
		return ref, true
	}

	n, err := strconv.Atoi(ident)
	if err != nil || n <= 0 {
		return domain.Reference{}, false
	}
	ref.Number = n
	return ref, true
}
