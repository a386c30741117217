package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/hoanghai1803/veritas/internal/extract"
)

type fakeExtractor struct {
	article *extract.Article
	err     error
	calls   int
	lastURL string
}

func (f *fakeExtractor) Extract(url string) (*extract.Article, error) {
	f.calls++
	f.lastURL = url
	return f.article, f.err
}

func TestExtractArticle(t *testing.T) {
	t.Run("returns extracted article", func(t *testing.T) {
		fe := &fakeExtractor{article: &extract.Article{Title: "Bridge reopens", Text: validArticle}}
		w := post(t, ExtractArticle(fe), "/api/extract", `{"url":"  https://news.example.com/bridge  "}`)

		if w.Code != http.StatusOK {
			t.Fatalf("got status %d, want %d (body: %s)", w.Code, http.StatusOK, w.Body.String())
		}
		if fe.lastURL != "https://news.example.com/bridge" {
			t.Errorf("extractor got url %q, want trimmed url", fe.lastURL)
		}

		var got extract.Article
		if err := json.NewDecoder(w.Body).Decode(&got); err != nil {
			t.Fatalf("decoding response body: %v", err)
		}
		if got.Text != validArticle {
			t.Error("response should carry the article text")
		}
		if got.SiteName != "news.example.com" {
			t.Errorf("SiteName = %q, want hostname fallback %q", got.SiteName, "news.example.com")
		}
	})

	t.Run("extraction failure", func(t *testing.T) {
		fe := &fakeExtractor{err: errors.New("readability extraction: timeout")}
		w := post(t, ExtractArticle(fe), "/api/extract", `{"url":"https://news.example.com/slow"}`)

		if w.Code != http.StatusUnprocessableEntity {
			t.Errorf("got status %d, want %d", w.Code, http.StatusUnprocessableEntity)
		}
	})
}

func TestExtractArticle_InvalidURL(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed body", body: `{"url":`},
		{name: "missing url", body: `{}`},
		{name: "blank url", body: `{"url":"   "}`},
		{name: "relative url", body: `{"url":"/news/bridge"}`},
		{name: "ftp scheme", body: `{"url":"ftp://example.com/file"}`},
		{name: "javascript scheme", body: `{"url":"javascript:alert(1)"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fe := &fakeExtractor{}
			w := post(t, ExtractArticle(fe), "/api/extract", tt.body)

			if w.Code != http.StatusBadRequest {
				t.Errorf("got status %d, want %d", w.Code, http.StatusBadRequest)
			}
			if fe.calls != 0 {
				t.Errorf("extractor called %d times, want 0", fe.calls)
			}
		})
	}
}
