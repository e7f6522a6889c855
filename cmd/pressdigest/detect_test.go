package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/dgallion1/pressdigest/internal/digest"
)

func TestPrintArticles(t *testing.T) {
	res := &digest.Result{
		PageCount:  5,
		IndexLines: []string{"a", "b"},
		Articles: []digest.Article{
			{Title: "Fed Holds Rates Steady Amid Inflation Worries, Reuters", StartPage: 2, EndPage: 3},
			{Title: "Markets Brace for a Busy Week of Earnings", StartPage: 4, EndPage: 3},
		},
	}

	var buf bytes.Buffer
	printArticles(&buf, res, digest.NewSourceSplitter(nil))
	out := buf.String()

	for _, want := range []string{
		"5 pages, 2 index lines, 2 articles",
		" 1. Fed Holds Rates Steady Amid Inflation Worries (pages 2-3)",
		"    Reuters",
		" 2. Markets Brace for a Busy Week of Earnings (no pages)",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
