package summarize

import (
	"strings"
	"unicode"
)

// EstimateTokens gives a rough token count from the word count.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	words := len(strings.Fields(text))
	// Roughly 0.75 tokens per word for English text.
	tokens := int(float64(words) * 1.33)
	if tokens < 1 {
		tokens = 1
	}
	return tokens
}

// TruncateTokens cuts text at a word boundary so that its estimate stays
// within maxTokens. maxTokens <= 0 returns text unchanged.
func TruncateTokens(text string, maxTokens int) string {
	if maxTokens <= 0 || EstimateTokens(text) <= maxTokens {
		return text
	}
	maxWords := int(float64(maxTokens) / 1.33)
	if maxWords < 1 {
		maxWords = 1
	}

	words := 0
	inWord := false
	for i, r := range text {
		if unicode.IsSpace(r) {
			if inWord {
				words++
				if words == maxWords {
					return text[:i]
				}
			}
			inWord = false
			continue
		}
		inWord = true
	}
	return text
}
