package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDigest() *fakePages {
	doc := newFakePages(6)
	doc.text[0] = "• ECB Officials Lobby for Rival Bank Rule Plans Before Report, Bloomberg\n• Fed Holds Rates Steady as Inflation Cools, Reuters\n"
	doc.blocks[0] = []Block{block(bodyLine("ECB Officials Lobby for Rival Bank Rule Plans Before Report, Bloomberg"))}

	doc.blocks[1] = []Block{block(
		boldLine("ECB Officials Lobby for Rival", 16),
		boldLine("Bank Rule Plans Before Report", 16),
		bodyLine("FRANKFURT -- ..."),
	)}
	doc.text[1] = "ECB Officials Lobby for Rival\nBank Rule Plans Before Report\nFRANKFURT -- ...\n"
	doc.text[2] = "more ECB text\n"
	doc.blocks[3] = []Block{block(boldLine("Fed Holds Rates Steady as Inflation Cools", 14), bodyLine("WASHINGTON"))}
	doc.text[3] = "Fed Holds Rates Steady as Inflation Cools\nWASHINGTON\n"
	doc.text[4] = "fed continued\n"
	doc.text[5] = "fed end\n"
	return doc
}

func TestRun_EndToEnd(t *testing.T) {
	res, err := Run(sampleDigest(), 0, DefaultConfig())
	require.NoError(t, err)
	require.NoError(t, res.Err())
	require.Len(t, res.Articles, 2)

	first := res.Articles[0]
	assert.Equal(t, "ECB Officials Lobby for Rival Bank Rule Plans Before Report, Bloomberg", first.Title)
	assert.Equal(t, []int{2, 3}, first.Pages)
	assert.Equal(t, "ECB Officials Lobby for Rival\nBank Rule Plans Before Report\nFRANKFURT -- ...\nmore ECB text", first.BodyText)

	second := res.Articles[1]
	assert.Equal(t, "Fed Holds Rates Steady as Inflation Cools, Reuters", second.Title)
	assert.Equal(t, []int{4, 5, 6}, second.Pages)

	split := NewSourceSplitter(nil).Split(first.Title)
	assert.Equal(t, SplitTitle{"ECB Officials Lobby for Rival Bank Rule Plans Before Report", "Bloomberg"}, split)
}

func TestRun_Deterministic(t *testing.T) {
	a, err := Run(sampleDigest(), 0, DefaultConfig())
	require.NoError(t, err)
	b, err := Run(sampleDigest(), 0, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestRun_NoTitles(t *testing.T) {
	doc := textDoc(3)
	res, err := Run(doc, 0, DefaultConfig())
	require.NoError(t, err)
	assert.Empty(t, res.Articles)
	assert.ErrorIs(t, res.Err(), ErrNoTitlesDetected)
}

func TestRun_IndexPageBeyondDocument(t *testing.T) {
	_, err := Run(textDoc(1), 1, DefaultConfig())
	assert.ErrorIs(t, err, ErrPageOutOfRange)
}

func TestRun_ZeroConfigUsesDefaults(t *testing.T) {
	res, err := Run(sampleDigest(), 0, Config{})
	require.NoError(t, err)
	assert.Len(t, res.Articles, 2)
}
