// Package report renders summarized articles as a press report.
package report

import (
	"fmt"
	"time"

	"github.com/dgallion1/pressdigest/internal/digest"
)

// Item is one summarized article as it appears in the report.
type Item struct {
	Headline  string `json:"headline"`
	Source    string `json:"source"`
	Summary   string `json:"summary"`
	StartPage int    `json:"start_page"`
}

// NewItem splits the article title into headline and source.
func NewItem(a digest.Article, summary string, splitter *digest.SourceSplitter) Item {
	st := splitter.Split(a.Title)
	return Item{
		Headline:  st.Headline,
		Source:    st.Source,
		Summary:   summary,
		StartPage: a.StartPage,
	}
}

// Options controls the report header and links.
type Options struct {
	Date       time.Time
	Department string
	Heading    string
	LogoPath   string // Optional image placed at the top.
	PDFURL     string // When set, titles link to PDFURL#page=N.
}

const (
	DefaultDepartment = "Gerencia de Asuntos Económicos Internacionales"
	DefaultHeading    = "REPORTE DE PRENSA"
)

func (o Options) withDefaults() Options {
	if o.Date.IsZero() {
		o.Date = time.Now()
	}
	if o.Department == "" {
		o.Department = DefaultDepartment
	}
	if o.Heading == "" {
		o.Heading = DefaultHeading
	}
	return o
}

// PageLink returns the deep link to an item's first page, or "" when the
// report has no source URL or the item no page.
func (o Options) PageLink(it Item) string {
	if o.PDFURL == "" || it.StartPage <= 0 {
		return ""
	}
	return fmt.Sprintf("%s#page=%d", o.PDFURL, it.StartPage)
}
