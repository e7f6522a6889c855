package digest

import (
	"strconv"
	"strings"
)

// ParseSelection parses comma-separated 1-based article numbers into
// zero-based indices below n. Invalid and repeated entries are dropped.
// A blank selection picks every article.
func ParseSelection(sel string, n int) []int {
	if strings.TrimSpace(sel) == "" {
		all := make([]int, n)
		for i := range all {
			all[i] = i
		}
		return all
	}

	seen := make(map[int]bool)
	var out []int
	for _, field := range strings.Split(sel, ",") {
		num, err := strconv.Atoi(strings.TrimSpace(field))
		if err != nil || num < 1 || num > n {
			continue
		}
		idx := num - 1
		if seen[idx] {
			continue
		}
		seen[idx] = true
		out = append(out, idx)
	}
	return out
}
