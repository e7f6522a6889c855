package digest

import (
	"math"
	"strings"
	"unicode/utf8"
)

// Detector finds the bold, large-font headline that opens each article.
type Detector struct {
	Config Config
}

// NewDetector returns a Detector with unset fields filled from DefaultConfig.
func NewDetector(cfg Config) *Detector {
	return &Detector{Config: cfg.withDefaults()}
}

// Detect scans every page after indexPage and returns at most one
// candidate per page, in page order. A document without headlines yields
// an empty slice and a nil error.
func (d *Detector) Detect(pages Pages, indexPage int) ([]TitleCandidate, error) {
	cfg := d.Config.withDefaults()
	count := pages.PageCount()
	if err := CheckPage(indexPage, count); err != nil {
		return nil, err
	}

	var out []TitleCandidate
	for idx := indexPage + 1; idx < count; idx++ {
		blocks, err := pages.Blocks(idx)
		if err != nil {
			return nil, err
		}
		if title, ok := scanPage(blocks, cfg); ok {
			out = append(out, TitleCandidate{InternalText: title, StartPage: idx + 1})
		}
	}
	return out, nil
}

type styleKey struct {
	font string
	size int
}

// accumulator buffers consecutive heading lines of one style.
type accumulator struct {
	open  bool
	style styleKey
	lines []string
}

func (a *accumulator) start(style styleKey, text string) {
	a.open = true
	a.style = style
	a.lines = append(a.lines[:0], text)
}

func (a *accumulator) reset() {
	a.open = false
	a.lines = a.lines[:0]
}

// close joins the buffered lines and reports whether they form a title.
func (a *accumulator) close(cfg Config) (string, bool) {
	if !a.open {
		return "", false
	}
	title := strings.TrimSpace(strings.Join(a.lines, " "))
	a.reset()
	return title, acceptTitle(title, cfg)
}

// scanPage returns the first accepted title on the page.
func scanPage(blocks []Block, cfg Config) (string, bool) {
	var acc accumulator
	for _, block := range blocks {
		for _, line := range block.Lines {
			text, style, heading, ok := classifyLine(line, cfg)
			if !ok {
				continue
			}
			switch {
			case heading && !acc.open:
				acc.start(style, text)
			case heading && style == acc.style:
				acc.lines = append(acc.lines, text)
			case heading:
				if title, ok := acc.close(cfg); ok {
					return title, true
				}
				acc.start(style, text)
			case acc.open:
				if title, ok := acc.close(cfg); ok {
					return title, true
				}
			}
		}
		// Headlines never cross a block boundary.
		if title, ok := acc.close(cfg); ok {
			return title, true
		}
	}
	return "", false
}

// classifyLine returns the trimmed text of a line, its style key and
// whether it is a heading line. ok is false for lines with no text, which
// are skipped without affecting the accumulator.
func classifyLine(line Line, cfg Config) (text string, style styleKey, heading, ok bool) {
	if len(line.Spans) == 0 {
		return "", styleKey{}, false, false
	}
	var sb strings.Builder
	for _, span := range line.Spans {
		sb.WriteString(span.Text)
	}
	text = strings.TrimSpace(sb.String())
	if text == "" {
		return "", styleKey{}, false, false
	}

	first := line.Spans[0]
	if first.FontName == "" || first.FontSize <= 0 || math.IsNaN(first.FontSize) {
		return text, styleKey{}, false, true
	}
	style = styleKey{font: first.FontName, size: int(math.Round(first.FontSize))}
	bold := strings.Contains(strings.ToLower(first.FontName), strings.ToLower(cfg.BoldMarker))
	heading = bold && float64(style.size) >= cfg.MinFontSize
	return text, style, heading, true
}

func acceptTitle(title string, cfg Config) bool {
	if utf8.RuneCountInString(title) < cfg.MinTitleLength {
		return false
	}
	for _, stop := range cfg.Stoplist {
		if title == stop {
			return false
		}
	}
	return true
}
