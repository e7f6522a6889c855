package parser

import (
	"math"
	"sort"
	"strings"

	"github.com/dgallion1/pressdigest/internal/digest"
	pdflib "github.com/ledongthuc/pdf"
)

// LayoutConfig controls how positioned glyphs are grouped into lines and
// blocks. Zero fields take the defaults below.
type LayoutConfig struct {
	RowTolerance   float64 // Max baseline difference, in points, within a line.
	WordGapFactor  float64 // Horizontal gap, as a fraction of font size, that implies a space.
	BlockGapFactor float64 // Vertical gap, as a multiple of font size, that starts a new block.
	SizeTolerance  float64 // Max font size difference within a span.
}

func (c LayoutConfig) withDefaults() LayoutConfig {
	if c.RowTolerance <= 0 {
		c.RowTolerance = 2.0
	}
	if c.WordGapFactor <= 0 {
		c.WordGapFactor = 0.2
	}
	if c.BlockGapFactor <= 0 {
		c.BlockGapFactor = 1.8
	}
	if c.SizeTolerance <= 0 {
		c.SizeTolerance = 0.1
	}
	return c
}

type row struct {
	y     float64
	size  float64
	texts []pdflib.Text
}

// GroupBlocks arranges the glyph runs of a page top to bottom into blocks
// of lines of styled spans.
func GroupBlocks(texts []pdflib.Text, cfg LayoutConfig) []digest.Block {
	cfg = cfg.withDefaults()
	rows := groupRows(texts, cfg)
	if len(rows) == 0 {
		return nil
	}

	var blocks []digest.Block
	var cur digest.Block
	prev := rows[0]
	for i, r := range rows {
		if i > 0 {
			gap := prev.y - r.y
			if gap > cfg.BlockGapFactor*math.Max(prev.size, r.size) {
				blocks = append(blocks, cur)
				cur = digest.Block{}
			}
		}
		cur.Lines = append(cur.Lines, buildLine(r.texts, cfg))
		prev = r
	}
	if len(cur.Lines) > 0 {
		blocks = append(blocks, cur)
	}
	return blocks
}

// groupRows clusters glyphs by baseline. PDF user space grows upward, so
// rows are returned in descending Y.
func groupRows(texts []pdflib.Text, cfg LayoutConfig) []row {
	sorted := make([]pdflib.Text, 0, len(texts))
	for _, t := range texts {
		if t.S != "" {
			sorted = append(sorted, t)
		}
	}
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].Y > sorted[j].Y })

	var rows []row
	for _, t := range sorted {
		n := len(rows)
		if n > 0 && math.Abs(rows[n-1].y-t.Y) <= cfg.RowTolerance {
			rows[n-1].texts = append(rows[n-1].texts, t)
			rows[n-1].size = math.Max(rows[n-1].size, t.FontSize)
			continue
		}
		rows = append(rows, row{y: t.Y, size: t.FontSize, texts: []pdflib.Text{t}})
	}
	for i := range rows {
		ts := rows[i].texts
		sort.SliceStable(ts, func(a, b int) bool { return ts[a].X < ts[b].X })
	}
	return rows
}

// buildLine merges adjacent glyphs of one font and size into spans.
func buildLine(texts []pdflib.Text, cfg LayoutConfig) digest.Line {
	var line digest.Line
	var sb strings.Builder
	var cur digest.StyledSpan
	end := 0.0

	flush := func() {
		if sb.Len() > 0 {
			cur.Text = sb.String()
			line.Spans = append(line.Spans, cur)
		}
		sb.Reset()
	}

	for i, t := range texts {
		if i > 0 {
			gap := t.X - end
			needSpace := gap > cfg.WordGapFactor*t.FontSize &&
				!strings.HasSuffix(sb.String(), " ") && !strings.HasPrefix(t.S, " ")
			if t.Font != cur.FontName || math.Abs(t.FontSize-cur.FontSize) > cfg.SizeTolerance {
				if needSpace {
					sb.WriteString(" ")
				}
				flush()
			} else if needSpace {
				sb.WriteString(" ")
			}
		}
		if sb.Len() == 0 {
			cur = digest.StyledSpan{FontName: t.Font, FontSize: t.FontSize}
		}
		sb.WriteString(t.S)
		end = t.X + t.W
	}
	flush()
	return line
}
