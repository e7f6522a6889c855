package digest

import "strings"

// SourceSplitter separates a trailing publication name from a title.
type SourceSplitter struct {
	Known []string
}

// NewSourceSplitter returns a splitter over known, or DefaultKnownSources
// when known is nil.
func NewSourceSplitter(known []string) *SourceSplitter {
	if known == nil {
		known = DefaultKnownSources
	}
	return &SourceSplitter{Known: known}
}

// Split returns the headline and source of a "Title, Source" string. An
// unrecognized suffix is not an error; Source is left empty.
func (s *SourceSplitter) Split(full string) SplitTitle {
	t := strings.TrimSpace(full)
	if strings.HasSuffix(t, ".") {
		t = strings.TrimSpace(strings.TrimSuffix(t, "."))
	}

	var parts []string
	for _, p := range strings.Split(t, ",") {
		if p = strings.TrimSpace(p); p != "" {
			parts = append(parts, p)
		}
	}
	if len(parts) < 2 {
		return SplitTitle{Headline: t}
	}

	last := parts[len(parts)-1]
	headline := strings.Join(parts[:len(parts)-1], ", ")
	for _, src := range s.Known {
		if last == src {
			return SplitTitle{Headline: headline, Source: src}
		}
	}
	// Merged citations such as "Fox Business Reuters".
	for _, src := range s.Known {
		if strings.Contains(last, src) {
			return SplitTitle{Headline: headline, Source: src}
		}
	}
	return SplitTitle{Headline: t}
}
