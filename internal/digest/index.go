package digest

import (
	"strings"
)

// ExtractIndexLines returns the non-empty lines of the index page, in page
// order, with leading bullet markers and surrounding whitespace removed.
func ExtractIndexLines(pages Pages, indexPage int, cfg Config) ([]string, error) {
	cfg = cfg.withDefaults()
	if err := CheckPage(indexPage, pages.PageCount()); err != nil {
		return nil, err
	}
	text, err := pages.PlainText(indexPage)
	if err != nil {
		return nil, err
	}

	var lines []string
	for _, raw := range strings.Split(text, "\n") {
		line := cleanIndexLine(raw, cfg.BulletMarkers)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	return lines, nil
}

func cleanIndexLine(s, bullets string) string {
	cut := bullets + " \t\r\n\f\v"
	s = strings.TrimLeft(s, cut)
	s = strings.TrimRight(s, cut)
	return strings.TrimSpace(s)
}
