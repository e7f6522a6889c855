package summarize

import "strings"

const (
	LangSpanish = "es"
	LangEnglish = "en"
)

var (
	spanishMarkers = []string{
		" el ", " la ", " de ", " que ", " y ", " en ", " los ", " las ",
		" por ", " para ", " del ", " al ", " una ", " un ", " se ", " con ",
		" como ", " más ", " menos ", " también ",
	}
	englishMarkers = []string{
		" the ", " and ", " of ", " to ", " in ", " for ", " on ", " with ",
		" as ", " by ", " from ", " that ", " this ", " it ", " at ", " were ",
		" has ", " have ", " said ", " will ", " would ",
	}
)

const spanishChars = "áéíóúñ¿¡"

// DetectLanguage guesses whether text is Spanish or English by comparing
// marker-word counts. A lead of three decides; otherwise accented
// characters tip it to Spanish.
func DetectLanguage(text string) string {
	t := strings.ToLower(text)

	es := 0
	for _, m := range spanishMarkers {
		es += strings.Count(t, m)
	}
	accents := 0
	for _, r := range t {
		if strings.ContainsRune(spanishChars, r) {
			accents++
		}
	}
	es += accents

	en := 0
	for _, m := range englishMarkers {
		en += strings.Count(t, m)
	}

	switch {
	case en >= es+3:
		return LangEnglish
	case es >= en+3:
		return LangSpanish
	case accents > 0:
		return LangSpanish
	default:
		return LangEnglish
	}
}
