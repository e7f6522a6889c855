package report

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/yuin/goldmark"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

var mdEscaper = strings.NewReplacer(
	`\`, `\\`, "`", "\\`", "*", `\*`, "_", `\_`,
	"[", `\[`, "]", `\]`, "<", `\<`, ">", `\>`, "#", `\#`,
)

// Markdown renders the report as Markdown.
func Markdown(items []Item, opts Options) string {
	opts = opts.withDefaults()

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", mdEscaper.Replace(opts.Heading))
	fmt.Fprintf(&sb, "%s\n\n", mdEscaper.Replace(opts.Department))
	fmt.Fprintf(&sb, "*%s*\n\n---\n\n", LongDate(opts.Date))

	for _, it := range items {
		if it.Source != "" {
			fmt.Fprintf(&sb, "**%s**\n\n", mdEscaper.Replace(it.Source))
		}
		headline := mdEscaper.Replace(it.Headline)
		if link := opts.PageLink(it); link != "" {
			fmt.Fprintf(&sb, "### [%s](<%s>)\n\n", headline, link)
		} else {
			fmt.Fprintf(&sb, "### %s\n\n", headline)
		}
		fmt.Fprintf(&sb, "%s\n\n", mdEscaper.Replace(it.Summary))
	}
	return sb.String()
}

// HTML renders the report as an HTML fragment. Links open in a new tab.
func HTML(items []Item, opts Options) (string, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(Markdown(items, opts)), &buf); err != nil {
		return "", fmt.Errorf("render markdown: %w", err)
	}
	return externalLinks(buf.String())
}

// externalLinks sets target and rel on every anchor of an HTML fragment.
func externalLinks(fragment string) (string, error) {
	body := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	nodes, err := html.ParseFragment(strings.NewReader(fragment), body)
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}

	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && n.DataAtom == atom.A {
			n.Attr = setAttr(n.Attr, "target", "_blank")
			n.Attr = setAttr(n.Attr, "rel", "noopener")
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}

	var out bytes.Buffer
	for _, n := range nodes {
		walk(n)
		if err := html.Render(&out, n); err != nil {
			return "", fmt.Errorf("render html: %w", err)
		}
	}
	return out.String(), nil
}

func setAttr(attrs []html.Attribute, key, val string) []html.Attribute {
	for i := range attrs {
		if attrs[i].Key == key {
			attrs[i].Val = val
			return attrs
		}
	}
	return append(attrs, html.Attribute{Key: key, Val: val})
}
