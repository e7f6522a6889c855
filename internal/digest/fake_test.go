package digest

// fakePages is an in-memory document for tests.
type fakePages struct {
	blocks [][]Block
	text   []string
	reads  map[int]int
}

func newFakePages(n int) *fakePages {
	return &fakePages{
		blocks: make([][]Block, n),
		text:   make([]string, n),
		reads:  make(map[int]int),
	}
}

func (f *fakePages) PageCount() int { return len(f.text) }

func (f *fakePages) Blocks(i int) ([]Block, error) {
	if err := CheckPage(i, f.PageCount()); err != nil {
		return nil, err
	}
	return f.blocks[i], nil
}

func (f *fakePages) PlainText(i int) (string, error) {
	if err := CheckPage(i, f.PageCount()); err != nil {
		return "", err
	}
	f.reads[i]++
	return f.text[i], nil
}

func span(text, font string, size float64) StyledSpan {
	return StyledSpan{Text: text, FontName: font, FontSize: size}
}

func line(spans ...StyledSpan) Line { return Line{Spans: spans} }

func block(lines ...Line) Block { return Block{Lines: lines} }

func boldLine(text string, size float64) Line {
	return line(span(text, "Arial-BoldMT", size))
}

func bodyLine(text string) Line {
	return line(span(text, "TimesNewRomanPSMT", 10))
}
