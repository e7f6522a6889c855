package parser

import (
	"testing"

	"github.com/dgallion1/pressdigest/internal/digest"
	pdflib "github.com/ledongthuc/pdf"
)

// glyphs lays out s one character per glyph starting at x on baseline y.
func glyphs(s, font string, size, x, y float64) []pdflib.Text {
	w := size * 0.5
	var out []pdflib.Text
	for _, r := range s {
		out = append(out, pdflib.Text{Font: font, FontSize: size, X: x, Y: y, W: w, S: string(r)})
		x += w
	}
	return out
}

func lineText(l digest.Line) string {
	var s string
	for _, sp := range l.Spans {
		s += sp.Text
	}
	return s
}

func TestGroupBlocks_LinesAndSpans(t *testing.T) {
	var texts []pdflib.Text
	texts = append(texts, glyphs("Fed", "Arial-BoldMT", 14, 72, 700)...)
	texts = append(texts, glyphs("Holds", "Arial-BoldMT", 14, 72+3*7+5, 700)...)
	texts = append(texts, glyphs("body", "TimesNewRomanPSMT", 10, 72, 683)...)

	blocks := GroupBlocks(texts, LayoutConfig{})
	if len(blocks) != 1 {
		t.Fatalf("expected 1 block, got %d", len(blocks))
	}
	lines := blocks[0].Lines
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if got := lineText(lines[0]); got != "Fed Holds" {
		t.Errorf("line 0: expected %q, got %q", "Fed Holds", got)
	}
	if len(lines[0].Spans) != 1 {
		t.Errorf("expected one span for uniform style, got %d", len(lines[0].Spans))
	}
	sp := lines[1].Spans[0]
	if sp.FontName != "TimesNewRomanPSMT" || sp.FontSize != 10 {
		t.Errorf("unexpected body span style: %+v", sp)
	}
}

func TestGroupBlocks_StyleChangeSplitsSpans(t *testing.T) {
	var texts []pdflib.Text
	texts = append(texts, glyphs("Bold", "Arial-BoldMT", 12, 72, 500)...)
	texts = append(texts, glyphs("Plain", "ArialMT", 12, 72+4*6, 500)...)

	blocks := GroupBlocks(texts, LayoutConfig{})
	spans := blocks[0].Lines[0].Spans
	if len(spans) != 2 {
		t.Fatalf("expected 2 spans, got %d", len(spans))
	}
	if spans[0].Text != "Bold" || spans[1].Text != "Plain" {
		t.Errorf("unexpected spans: %+v", spans)
	}
}

func TestGroupBlocks_LargeGapStartsNewBlock(t *testing.T) {
	var texts []pdflib.Text
	texts = append(texts, glyphs("top", "ArialMT", 10, 72, 700)...)
	texts = append(texts, glyphs("next", "ArialMT", 10, 72, 688)...)
	texts = append(texts, glyphs("far", "ArialMT", 10, 72, 600)...)

	blocks := GroupBlocks(texts, LayoutConfig{})
	if len(blocks) != 2 {
		t.Fatalf("expected 2 blocks, got %d", len(blocks))
	}
	if len(blocks[0].Lines) != 2 || len(blocks[1].Lines) != 1 {
		t.Errorf("unexpected block sizes: %d, %d", len(blocks[0].Lines), len(blocks[1].Lines))
	}
}

func TestGroupBlocks_OrdersTopToBottomAndLeftToRight(t *testing.T) {
	var texts []pdflib.Text
	texts = append(texts, glyphs("second", "ArialMT", 10, 72, 688)...)
	texts = append(texts, glyphs("B", "ArialMT", 10, 77, 700.5)...)
	texts = append(texts, glyphs("A", "ArialMT", 10, 72, 700)...)

	blocks := GroupBlocks(texts, LayoutConfig{})
	lines := blocks[0].Lines
	if got := lineText(lines[0]); got != "AB" {
		t.Errorf("expected first line %q, got %q", "AB", got)
	}
	if got := lineText(lines[1]); got != "second" {
		t.Errorf("expected second line %q, got %q", "second", got)
	}
}

func TestGroupBlocks_Empty(t *testing.T) {
	if blocks := GroupBlocks(nil, LayoutConfig{}); blocks != nil {
		t.Errorf("expected nil blocks, got %v", blocks)
	}
}

func TestIsSupportedExtension(t *testing.T) {
	if !IsSupportedExtension("Digest.PDF") {
		t.Error("expected .PDF to be supported")
	}
	if IsSupportedExtension("notes.txt") {
		t.Error("expected .txt to be rejected")
	}
}
