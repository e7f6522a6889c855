package digest

import "strings"

// Segment partitions the document into one article per title. Each article
// ends on the page before the next title starts; the last one runs to the
// end of the document. Two titles on the same page give the first an empty
// range and empty body.
func Segment(pages Pages, titles []EnrichedTitle) ([]Article, error) {
	count := pages.PageCount()
	articles := make([]Article, 0, len(titles))
	for i, t := range titles {
		if err := CheckPage(t.StartPage-1, count); err != nil {
			return nil, err
		}
		end := count
		if i+1 < len(titles) {
			end = titles[i+1].StartPage - 1
		}
		if end > count {
			return nil, &PageOutOfRangeError{Page: end - 1, Count: count}
		}

		art := Article{
			Title:     t.FullText,
			StartPage: t.StartPage,
			EndPage:   end,
			Pages:     pageRange(t.StartPage, end),
		}
		if !art.Empty() {
			body, err := concatText(pages, t.StartPage-1, end-1)
			if err != nil {
				return nil, err
			}
			art.BodyText = body
		}
		articles = append(articles, art)
	}
	return articles, nil
}

// pageRange returns [from, to] inclusive, or an empty non-nil slice.
func pageRange(from, to int) []int {
	if to < from {
		return []int{}
	}
	out := make([]int, 0, to-from+1)
	for p := from; p <= to; p++ {
		out = append(out, p)
	}
	return out
}

// concatText joins the plain text of zero-based pages [from, to].
func concatText(pages Pages, from, to int) (string, error) {
	var sb strings.Builder
	for idx := from; idx <= to; idx++ {
		text, err := pages.PlainText(idx)
		if err != nil {
			return "", err
		}
		sb.WriteString(text)
	}
	return strings.TrimSpace(sb.String()), nil
}
