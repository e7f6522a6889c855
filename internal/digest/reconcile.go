package digest

import "strings"

// Reconcile replaces each candidate's text with the first index line that
// contains it. Matching is exact, case-sensitive substring containment.
func Reconcile(cands []TitleCandidate, indexLines []string) []EnrichedTitle {
	out := make([]EnrichedTitle, 0, len(cands))
	for _, c := range cands {
		full := c.InternalText
		for _, line := range indexLines {
			if strings.Contains(line, c.InternalText) {
				full = line
				break
			}
		}
		out = append(out, EnrichedTitle{TitleCandidate: c, FullText: full})
	}
	return out
}
