package extract

import (
	"math"
	"strings"
	"unicode"
)

// wordsPerMinute is an average adult reading speed for news prose.
const wordsPerMinute = 238

// wordBreaks are punctuation runes that separate words like whitespace does.
const wordBreaks = ".,;:!?\"'()[]{}—–-"

// readingMinutes estimates how long words takes to read, rounded up.
// It is 0 only when there are no words.
func readingMinutes(words int) int {
	if words <= 0 {
		return 0
	}
	return int(math.Ceil(float64(words) / wordsPerMinute))
}

// countWords counts runs of non-separator runes in text.
func countWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) || strings.ContainsRune(wordBreaks, r) {
			if inWord {
				count++
				inWord = false
			}
			continue
		}
		inWord = true
	}
	if inWord {
		count++
	}
	return count
}
