package summarize

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

var prefacePatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)^(here(?:'|’)s|here is)\b.*?:\s*`),
	regexp.MustCompile(`(?i)^.*summary.*words.*?:\s*`),
	regexp.MustCompile(`(?i)^(resumen|aquí (?:va|tienes) un resumen|a continuación)\b.*?:\s*`),
}

var markdown = goldmark.New()

// CleanSummary strips meta prefaces such as "Here's a summary:", keeps the
// first paragraph and flattens any Markdown markup to plain text.
func CleanSummary(s string) string {
	s = stripPrefaces(strings.TrimSpace(s))
	s, _, _ = strings.Cut(s, "\n\n")
	s = PlainText(strings.TrimSpace(s))
	return stripPrefaces(s)
}

func stripPrefaces(s string) string {
	for _, re := range prefacePatterns {
		s = re.ReplaceAllString(s, "")
	}
	return strings.TrimSpace(s)
}

// PlainText renders Markdown source as a single line of plain text.
func PlainText(src string) string {
	source := []byte(src)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var sb strings.Builder
	space := func() {
		if sb.Len() > 0 && !strings.HasSuffix(sb.String(), " ") {
			sb.WriteByte(' ')
		}
	}
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		if n.Type() == ast.TypeBlock && n.Kind() != ast.KindDocument {
			space()
		}
		switch node := n.(type) {
		case *ast.Text:
			sb.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				space()
			}
		case *ast.String:
			sb.Write(node.Value)
		case *ast.AutoLink:
			sb.Write(node.URL(source))
			return ast.WalkSkipChildren, nil
		}
		return ast.WalkContinue, nil
	})
	return strings.Join(strings.Fields(sb.String()), " ")
}
