package parser

import (
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strconv"
	"strings"

	"github.com/dgallion1/pressdigest/internal/digest"
	pdflib "github.com/ledongthuc/pdf"
)

// PDFOptions tunes how a PDF is opened.
type PDFOptions struct {
	// FallbackPdftotext extracts a page's plain text with pdftotext when
	// the Go reader fails on it.
	FallbackPdftotext bool
	Layout            LayoutConfig
}

// PDFDocument is an opened PDF exposing styled text blocks and plain text
// per page. Page content is read lazily and memoized. A PDFDocument is
// not safe for concurrent use.
type PDFDocument struct {
	path   string
	file   *os.File
	reader *pdflib.Reader
	opts   PDFOptions
	fonts  map[string]*pdflib.Font

	blocks map[int][]digest.Block
	text   map[int]string
}

var _ digest.Pages = (*PDFDocument)(nil)

// OpenPDF copies r to a temporary file and opens it. The caller must Close
// the document to remove the file.
func OpenPDF(r io.Reader, opts PDFOptions) (*PDFDocument, error) {
	// ledongthuc/pdf requires a ReadSeeker+size, and pdftotext needs a path.
	tmp, err := os.CreateTemp("", "pressdigest-*.pdf")
	if err != nil {
		return nil, fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return nil, fmt.Errorf("write temp file: %w", err)
	}
	tmp.Close()

	doc, err := openPDFFile(tmpPath, opts)
	if err != nil {
		os.Remove(tmpPath)
		return nil, err
	}
	return doc, nil
}

func openPDFFile(path string, opts PDFOptions) (doc *PDFDocument, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("open pdf: reader panicked: %v", r)
		}
	}()

	f, reader, err := pdflib.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf: %w", err)
	}
	return &PDFDocument{
		path:   path,
		file:   f,
		reader: reader,
		opts:   opts,
		fonts:  make(map[string]*pdflib.Font),
		blocks: make(map[int][]digest.Block),
		text:   make(map[int]string),
	}, nil
}

// PageCount returns the number of pages.
func (d *PDFDocument) PageCount() int {
	return d.reader.NumPage()
}

// Blocks returns the text blocks of the zero-based page index.
func (d *PDFDocument) Blocks(index int) ([]digest.Block, error) {
	if err := digest.CheckPage(index, d.PageCount()); err != nil {
		return nil, err
	}
	if b, ok := d.blocks[index]; ok {
		return b, nil
	}

	var texts []pdflib.Text
	err := guard(func() {
		page := d.reader.Page(index + 1)
		if page.V.IsNull() {
			return
		}
		texts = page.Content().Text
	})
	if err != nil {
		return nil, fmt.Errorf("read page %d content: %w", index+1, err)
	}

	blocks := GroupBlocks(texts, d.opts.Layout)
	d.blocks[index] = blocks
	return blocks, nil
}

// PlainText returns the plain text of the zero-based page index. Non-empty
// text always ends with a newline so pages concatenate cleanly.
func (d *PDFDocument) PlainText(index int) (string, error) {
	if err := digest.CheckPage(index, d.PageCount()); err != nil {
		return "", err
	}
	if t, ok := d.text[index]; ok {
		return t, nil
	}

	text, err := d.extractPlainText(index + 1)
	if err != nil && d.opts.FallbackPdftotext {
		text, err = extractPdftotextPage(d.path, index+1)
	}
	if err != nil {
		return "", fmt.Errorf("extract page %d text: %w", index+1, err)
	}

	if text != "" && !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	d.text[index] = text
	return text, nil
}

func (d *PDFDocument) extractPlainText(pageNum int) (string, error) {
	var text string
	err := guard(func() {
		page := d.reader.Page(pageNum)
		if page.V.IsNull() {
			return
		}
		for _, name := range page.Fonts() {
			if _, ok := d.fonts[name]; !ok {
				f := page.Font(name)
				d.fonts[name] = &f
			}
		}
		var pageErr error
		text, pageErr = page.GetPlainText(d.fonts)
		if pageErr != nil {
			panic(pageErr)
		}
	})
	return text, err
}

// Close releases the file handle and removes the temporary copy.
func (d *PDFDocument) Close() error {
	err := d.file.Close()
	if rmErr := os.Remove(d.path); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
		err = rmErr
	}
	return err
}

// guard turns a panic inside the PDF reader into an error. ledongthuc/pdf
// panics on malformed streams.
func guard(fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok {
				err = e
				return
			}
			err = fmt.Errorf("reader panicked: %v", r)
		}
	}()
	fn()
	return nil
}

func extractPdftotextPage(path string, pageNum int) (string, error) {
	n := strconv.Itoa(pageNum)
	cmd := exec.Command("pdftotext", "-layout", "-f", n, "-l", n, path, "-")
	out, err := cmd.Output()
	if err != nil {
		return "", fmt.Errorf("pdftotext: %w", err)
	}
	return strings.TrimRight(string(out), "\f"), nil
}
