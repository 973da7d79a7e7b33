package summarize

import (
	"strings"
	"unicode"
)

// EstimateTokens provides a simple token count approximation.
// For accurate counting, use a proper tokenizer like tiktoken.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}

	// Most tokenizers produce ~1.3 tokens per word on average
	words := strings.Fields(text)
	wordCount := len(words)

	// Punctuation typically tokenizes separately
	punctCount := 0
	for _, r := range text {
		if unicode.IsPunct(r) {
			punctCount++
		}
	}

	return int(float64(wordCount)*1.3) + punctCount/2
}
