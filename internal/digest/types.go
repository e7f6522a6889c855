package digest

// StyledSpan is one run of same-styled text within a line.
type StyledSpan struct {
	Text     string  `json:"text"`
	FontName string  `json:"font_name"`
	FontSize float64 `json:"font_size"`
}

// Line is an ordered sequence of spans sharing a baseline.
type Line struct {
	Spans []StyledSpan `json:"spans"`
}

// Block is a group of vertically adjacent lines.
type Block struct {
	Lines []Line `json:"lines"`
}

// Pages is the read-only view of an opened document. Pages are addressed
// by zero-based index; implementations return a *PageOutOfRangeError for
// an index outside [0, PageCount()).
type Pages interface {
	PageCount() int
	Blocks(index int) ([]Block, error)
	PlainText(index int) (string, error)
}

// TitleCandidate is an in-body headline and the 1-based page it starts on.
type TitleCandidate struct {
	InternalText string `json:"internal_text"`
	StartPage    int    `json:"start_page"`
}

// EnrichedTitle is a candidate after cover-index reconciliation. FullText
// equals InternalText unless a matching index line was found.
type EnrichedTitle struct {
	TitleCandidate
	FullText string `json:"full_text"`
}

// Article is a titled, contiguous range of pages.
type Article struct {
	Title     string `json:"title"`
	StartPage int    `json:"start_page"`
	EndPage   int    `json:"end_page"`
	Pages     []int  `json:"pages"`
	BodyText  string `json:"body_text"`
}

// Empty reports whether the article covers no pages.
func (a Article) Empty() bool {
	return a.EndPage < a.StartPage
}

// SplitTitle is a reconciled title broken into headline and source.
type SplitTitle struct {
	Headline string `json:"headline"`
	Source   string `json:"source"`
}
