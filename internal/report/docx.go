package report

import (
	"fmt"
	"io"

	"github.com/fumiama/go-docx"
)

const (
	bodyFont   = "Times New Roman"
	headerFont = "Arial"

	// Sizes are in half-points.
	bodySize    = "22"
	headerSize  = "34"
	headingSize = "57"

	// Logo width in EMU (1.2in).
	logoWidth = 1097280

	divider = "_____________________________________________________________"
)

// WriteDOCX renders the report as a Word document.
func WriteDOCX(w io.Writer, items []Item, opts Options) error {
	opts = opts.withDefaults()
	doc := docx.New().WithDefaultTheme()

	if opts.LogoPath != "" {
		if err := addLogo(doc, opts.LogoPath); err != nil {
			return fmt.Errorf("add logo: %w", err)
		}
	}

	doc.AddParagraph().Justification("end").
		AddText(LongDate(opts.Date)).Font(headerFont, headerFont, headerFont, "").Size(headerSize)
	doc.AddParagraph().Justification("center").
		AddText(opts.Department).Font(headerFont, headerFont, headerFont, "").Size(headerSize)
	doc.AddParagraph().AddText(divider).Color("000000")
	doc.AddParagraph().Justification("center").
		AddText(opts.Heading).Bold().Font(headerFont, headerFont, headerFont, "").Size(headingSize)
	doc.AddParagraph()

	for _, it := range items {
		if it.Source != "" {
			doc.AddParagraph().
				AddText(it.Source).Bold().Font(bodyFont, bodyFont, bodyFont, "").Size(bodySize)
		}

		title := doc.AddParagraph()
		if link := opts.PageLink(it); link != "" {
			title.AddLink(it.Headline, link)
		} else {
			title.AddText(it.Headline).Bold().Font(bodyFont, bodyFont, bodyFont, "").Size(bodySize)
		}

		doc.AddParagraph().Justification("both").
			AddText(it.Summary).Font(bodyFont, bodyFont, bodyFont, "").Size(bodySize)
		doc.AddParagraph()
	}

	if _, err := doc.WriteTo(w); err != nil {
		return fmt.Errorf("write docx: %w", err)
	}
	return nil
}

func addLogo(doc *docx.Docx, path string) error {
	run, err := doc.AddParagraph().AddInlineDrawingFrom(path)
	if err != nil {
		return err
	}
	if len(run.Children) == 0 {
		return nil
	}
	drawing, ok := run.Children[0].(*docx.Drawing)
	if !ok || drawing.Inline == nil {
		return nil
	}
	cx, cy := drawing.Inline.Extent.CX, drawing.Inline.Extent.CY
	if cx == 0 {
		return nil
	}
	drawing.Inline.Size(logoWidth, cy*logoWidth/cx)
	return nil
}
