// Package extract pulls the readable body out of a web page so a user can
// submit an article by URL instead of pasting it.
package extract

import (
	"fmt"
	"net/http"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"

	readability "github.com/go-shiori/go-readability"
)

// browserHeaders sets browser-like request headers so sites that check Accept
// or User-Agent don't reject the request with 406.
func browserHeaders(r *http.Request) {
	r.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	r.Header.Set("User-Agent", "Mozilla/5.0 (compatible; Veritas/1.0; +https://github.com/hoanghai1803/veritas)")
}

// Article holds the metadata and text extracted from a web page.
type Article struct {
	Title          string `json:"title"`
	SiteName       string `json:"siteName"`
	Excerpt        string `json:"excerpt"`
	Text           string `json:"articleText"`
	Truncated      bool   `json:"truncated"`
	WordCount      int    `json:"wordCount"`
	ReadingMinutes int    `json:"readingMinutes"`
}

// Extractor fetches pages and extracts their main text.
type Extractor struct {
	timeout  time.Duration
	maxChars int
}

// NewExtractor creates an Extractor. Text longer than maxChars characters is
// clipped at a word boundary; maxChars <= 0 disables clipping.
func NewExtractor(timeout time.Duration, maxChars int) *Extractor {
	return &Extractor{timeout: timeout, maxChars: maxChars}
}

// Extract fetches the web page at url and returns its readable content.
func (e *Extractor) Extract(url string) (*Article, error) {
	article, err := readability.FromURL(url, e.timeout, browserHeaders)
	if err != nil {
		return nil, fmt.Errorf("readability extraction: %w", err)
	}

	text := normalizeSpace(article.TextContent)
	if text == "" {
		return nil, fmt.Errorf("readability extraction: no readable text at %s", url)
	}

	// Word count and reading time describe the whole page, not the clipped text.
	words := countWords(text)
	clipped, truncated := clipRunes(text, e.maxChars)
	return &Article{
		Title:          strings.TrimSpace(article.Title),
		SiteName:       strings.TrimSpace(article.SiteName),
		Excerpt:        strings.TrimSpace(article.Excerpt),
		Text:           clipped,
		Truncated:      truncated,
		WordCount:      words,
		ReadingMinutes: readingMinutes(words),
	}, nil
}

// normalizeSpace trims s and collapses runs of blank lines left behind by
// stripped markup, keeping paragraph breaks.
func normalizeSpace(s string) string {
	lines := strings.Split(s, "\n")
	out := make([]string, 0, len(lines))
	blank := false
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line == "" {
			if !blank && len(out) > 0 {
				out = append(out, "")
			}
			blank = true
			continue
		}
		blank = false
		out = append(out, line)
	}
	return strings.TrimSpace(strings.Join(out, "\n"))
}

// clipRunes returns s cut to at most limit characters, backing off to the
// last whitespace so no word is split. If s already fits it is returned
// unchanged.
func clipRunes(s string, limit int) (string, bool) {
	if limit <= 0 || utf8.RuneCountInString(s) <= limit {
		return s, false
	}

	runes := []rune(s)
	cut := limit
	if !unicode.IsSpace(runes[limit]) {
		for i := limit - 1; i > 0; i-- {
			if unicode.IsSpace(runes[i]) {
				cut = i
				break
			}
		}
	}
	return strings.TrimRightFunc(string(runes[:cut]), unicode.IsSpace), true
}
