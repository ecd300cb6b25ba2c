package scan

import (
	"strings"

	"github.com/ericxyz86/culturesoup/internal/domain/trend"
)

const fingerprintLen = 50

// Fingerprint reduces a title to its dedupe key: lowercased, stripped of
// everything but ASCII letters and digits, truncated to 50 characters.
// Near-duplicate titles that diverge before the cutoff, or only after
// it, are treated as distinct stories on purpose.
func Fingerprint(title string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(title) {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
			if b.Len() >= fingerprintLen {
				break
			}
		}
	}
	return b.String()
}

// Dedupe collapses items sharing a fingerprint down to the one with the
// highest normalized velocity. Ties keep the first-seen item, so output
// is deterministic for a given input order. A single greedy pass; no
// fuzzy matching.
func Dedupe(items []trend.RawItem) []trend.RawItem {
	kept := make([]trend.RawItem, 0, len(items))
	index := make(map[string]int, len(items))

	for _, item := range items {
		key := Fingerprint(item.Title)
		at, seen := index[key]
		if !seen {
			index[key] = len(kept)
			kept = append(kept, item)
			continue
		}
		if item.NormalizedVelocity > kept[at].NormalizedVelocity {
			kept[at] = item
		}
	}
	return kept
}
