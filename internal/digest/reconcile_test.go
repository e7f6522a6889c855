package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func cand(text string, page int) TitleCandidate {
	return TitleCandidate{InternalText: text, StartPage: page}
}

func TestReconcile_SubstringMatch(t *testing.T) {
	index := []string{
		"Fed Holds Rates Steady, Reuters",
		"ECB Officials Lobby for Rival Bank Rule Plans Before Report, Bloomberg",
	}
	got := Reconcile([]TitleCandidate{cand("ECB Officials Lobby for Rival Bank Rule Plans Before Report", 3)}, index)
	assert.Equal(t, "ECB Officials Lobby for Rival Bank Rule Plans Before Report, Bloomberg", got[0].FullText)
	assert.Equal(t, "ECB Officials Lobby for Rival Bank Rule Plans Before Report", got[0].InternalText)
	assert.Equal(t, 3, got[0].StartPage)
}

func TestReconcile_FirstMatchWins(t *testing.T) {
	index := []string{
		"Oil Prices Slide on Demand Worries, Reuters",
		"Oil Prices Slide on Demand Worries, Bloomberg",
	}
	got := Reconcile([]TitleCandidate{cand("Oil Prices Slide on Demand Worries", 2)}, index)
	assert.Equal(t, "Oil Prices Slide on Demand Worries, Reuters", got[0].FullText)
}

func TestReconcile_NoMatchKeepsInternalText(t *testing.T) {
	index := []string{"Something Else Entirely, CNBC"}
	got := Reconcile([]TitleCandidate{cand("oil prices slide on demand worries", 2)}, index)
	assert.Equal(t, "oil prices slide on demand worries", got[0].FullText)
}

func TestReconcile_CaseSensitive(t *testing.T) {
	index := []string{"OIL PRICES SLIDE ON DEMAND WORRIES, Reuters"}
	got := Reconcile([]TitleCandidate{cand("Oil Prices Slide on Demand Worries", 2)}, index)
	assert.Equal(t, "Oil Prices Slide on Demand Worries", got[0].FullText)
}

func TestReconcile_ExactLineIsIdempotent(t *testing.T) {
	index := []string{"Stocks Close Higher Led by Technology Shares"}
	got := Reconcile([]TitleCandidate{cand(index[0], 4)}, index)
	assert.Equal(t, index[0], got[0].FullText)
}

func TestExtractIndexLines(t *testing.T) {
	doc := newFakePages(2)
	doc.text[0] = "Resumen de prensa\n\n • Fed Holds Rates Steady, Reuters \n\t•ECB Officials Lobby, Bloomberg\n   \n▪ Oil Slides, CNBC\n"

	got, err := ExtractIndexLines(doc, 0, DefaultConfig())
	assert.NoError(t, err)
	assert.Equal(t, []string{
		"Resumen de prensa",
		"Fed Holds Rates Steady, Reuters",
		"ECB Officials Lobby, Bloomberg",
		"Oil Slides, CNBC",
	}, got)
}

func TestExtractIndexLines_OutOfRange(t *testing.T) {
	_, err := ExtractIndexLines(newFakePages(1), 3, DefaultConfig())
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}
