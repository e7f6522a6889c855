package digest

import "fmt"

// Result is the outcome of one conversion run.
type Result struct {
	IndexPage  int              `json:"index_page"`
	PageCount  int              `json:"page_count"`
	IndexLines []string         `json:"index_lines"`
	Candidates []TitleCandidate `json:"candidates"`
	Titles     []EnrichedTitle  `json:"titles"`
	Articles   []Article        `json:"articles"`
}

// Err returns ErrNoTitlesDetected when the run found no articles.
func (r *Result) Err() error {
	if len(r.Articles) == 0 {
		return ErrNoTitlesDetected
	}
	return nil
}

// Run detects, reconciles and segments the articles of a document.
// indexPage is 0 when the index is the first page and 1 when a cover
// page precedes it.
func Run(pages Pages, indexPage int, cfg Config) (*Result, error) {
	cfg = cfg.withDefaults()

	indexLines, err := ExtractIndexLines(pages, indexPage, cfg)
	if err != nil {
		return nil, fmt.Errorf("extract index: %w", err)
	}
	cands, err := NewDetector(cfg).Detect(pages, indexPage)
	if err != nil {
		return nil, fmt.Errorf("detect titles: %w", err)
	}
	titles := Reconcile(cands, indexLines)
	articles, err := Segment(pages, titles)
	if err != nil {
		return nil, fmt.Errorf("segment articles: %w", err)
	}

	return &Result{
		IndexPage:  indexPage,
		PageCount:  pages.PageCount(),
		IndexLines: indexLines,
		Candidates: cands,
		Titles:     titles,
		Articles:   articles,
	}, nil
}
