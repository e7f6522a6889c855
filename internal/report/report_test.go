package report

import (
	"archive/zip"
	"bytes"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/pressdigest/internal/digest"
	"github.com/fumiama/go-docx"
	"golang.org/x/net/html"
)

var reportDate = time.Date(2026, time.January, 6, 9, 0, 0, 0, time.UTC)

func sampleItems() []Item {
	return []Item{
		{Headline: "ECB Officials Lobby for Rival Bank Rule Plans Before Report", Source: "Bloomberg", Summary: "Funcionarios del BCE impulsan reglas alternativas.", StartPage: 3},
		{Headline: "Peso gains as [markets] *rally*", Summary: "The peso rose.", StartPage: 5},
	}
}

func TestLongDateAndFileName(t *testing.T) {
	if got := LongDate(reportDate); got != "6 de enero de 2026" {
		t.Errorf("LongDate: got %q", got)
	}
	if got := FileName(reportDate); got != "reporte de prensa 06 de enero.docx" {
		t.Errorf("FileName: got %q", got)
	}
	dec := time.Date(2025, time.December, 24, 0, 0, 0, 0, time.UTC)
	if got := LongDate(dec); got != "24 de diciembre de 2025" {
		t.Errorf("LongDate december: got %q", got)
	}
}

func TestNewItem_SplitsSource(t *testing.T) {
	a := digest.Article{Title: "Fed Holds Rates Steady, Reuters", StartPage: 4}
	it := NewItem(a, "summary", digest.NewSourceSplitter(nil))
	want := Item{Headline: "Fed Holds Rates Steady", Source: "Reuters", Summary: "summary", StartPage: 4}
	if it != want {
		t.Errorf("expected %+v, got %+v", want, it)
	}
}

func TestPageLink(t *testing.T) {
	opts := Options{PDFURL: "https://example.com/digest.pdf"}
	if got := opts.PageLink(Item{StartPage: 7}); got != "https://example.com/digest.pdf#page=7" {
		t.Errorf("unexpected link %q", got)
	}
	if got := opts.PageLink(Item{}); got != "" {
		t.Errorf("expected no link without a page, got %q", got)
	}
	if got := (Options{}).PageLink(Item{StartPage: 7}); got != "" {
		t.Errorf("expected no link without a url, got %q", got)
	}
}

func TestMarkdown(t *testing.T) {
	md := Markdown(sampleItems(), Options{Date: reportDate, PDFURL: "https://example.com/d.pdf"})

	for _, want := range []string{
		"# REPORTE DE PRENSA",
		"*6 de enero de 2026*",
		"**Bloomberg**",
		"### [ECB Officials Lobby for Rival Bank Rule Plans Before Report](<https://example.com/d.pdf#page=3>)",
		`Peso gains as \[markets\] \*rally\*`,
	} {
		if !strings.Contains(md, want) {
			t.Errorf("markdown missing %q:\n%s", want, md)
		}
	}
}

func TestHTML_LinksOpenInNewTab(t *testing.T) {
	out, err := HTML(sampleItems(), Options{Date: reportDate, PDFURL: "https://example.com/d.pdf"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc, err := html.Parse(strings.NewReader(out))
	if err != nil {
		t.Fatalf("parse output: %v", err)
	}
	var anchors []map[string]string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.Data == "a" {
			attrs := map[string]string{}
			for _, a := range n.Attr {
				attrs[a.Key] = a.Val
			}
			anchors = append(anchors, attrs)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)

	if len(anchors) != 2 {
		t.Fatalf("expected 2 anchors, got %d", len(anchors))
	}
	if anchors[0]["href"] != "https://example.com/d.pdf#page=3" {
		t.Errorf("unexpected href %q", anchors[0]["href"])
	}
	for _, a := range anchors {
		if a["target"] != "_blank" || a["rel"] != "noopener" {
			t.Errorf("anchor missing target/rel: %v", a)
		}
	}
	if !strings.Contains(out, "Peso gains as [markets] *rally*") {
		t.Errorf("escaped headline not rendered literally:\n%s", out)
	}
}

func zipContents(t *testing.T, data []byte) string {
	t.Helper()
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open docx zip: %v", err)
	}
	var sb strings.Builder
	for _, f := range zr.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("open %s: %v", f.Name, err)
		}
		b, _ := io.ReadAll(rc)
		rc.Close()
		sb.Write(b)
	}
	return sb.String()
}

// paragraphTexts reads back the plain text of every body paragraph.
func paragraphTexts(t *testing.T, data []byte) []string {
	t.Helper()
	doc, err := docx.Parse(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("parse docx: %v", err)
	}
	var out []string
	for _, item := range doc.Document.Body.Items {
		para, ok := item.(*docx.Paragraph)
		if !ok {
			continue
		}
		var buf strings.Builder
		for _, child := range para.Children {
			run, ok := child.(*docx.Run)
			if !ok {
				continue
			}
			for _, rc := range run.Children {
				if txt, ok := rc.(*docx.Text); ok {
					buf.WriteString(txt.Text)
				}
			}
		}
		if s := strings.TrimSpace(buf.String()); s != "" {
			out = append(out, s)
		}
	}
	return out
}

func TestWriteDOCX_Layout(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteDOCX(&buf, sampleItems(), Options{Date: reportDate}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got := paragraphTexts(t, buf.Bytes())
	want := []string{
		"6 de enero de 2026",
		DefaultDepartment,
		divider,
		DefaultHeading,
		"Bloomberg",
		"ECB Officials Lobby for Rival Bank Rule Plans Before Report",
		"Funcionarios del BCE impulsan reglas alternativas.",
		"Peso gains as [markets] *rally*",
		"The peso rose.",
	}
	if len(got) != len(want) {
		t.Fatalf("expected %d paragraphs, got %d: %q", len(want), len(got), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("paragraph %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestWriteDOCX_Hyperlinks(t *testing.T) {
	var buf bytes.Buffer
	opts := Options{Date: reportDate, PDFURL: "https://example.com/d.pdf"}
	if err := WriteDOCX(&buf, sampleItems(), opts); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	contents := zipContents(t, buf.Bytes())
	for _, want := range []string{
		"https://example.com/d.pdf#page=3",
		"https://example.com/d.pdf#page=5",
		"w:hyperlink",
	} {
		if !strings.Contains(contents, want) {
			t.Errorf("docx missing %q", want)
		}
	}
}

func TestWriteDOCX_MissingLogo(t *testing.T) {
	var buf bytes.Buffer
	err := WriteDOCX(&buf, nil, Options{LogoPath: "/nonexistent/logo.png"})
	if err == nil {
		t.Fatal("expected error for missing logo")
	}
}
