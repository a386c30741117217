package handlers

import (
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/hoanghai1803/veritas/internal/extract"
)

// ArticleExtractor fetches a page and returns its readable text.
type ArticleExtractor interface {
	Extract(url string) (*extract.Article, error)
}

// ExtractArticle handles POST /api/extract. It fetches the page at the
// given URL and returns its readable text, clipped to the analysis length
// limit, so the client can fill the analysis form.
func ExtractArticle(extractor ArticleExtractor) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var body struct {
			URL string `json:"url"`
		}
		if err := decodeBody(w, r, &body); err != nil {
			writeError(w, http.StatusBadRequest, "Invalid JSON body")
			return
		}

		body.URL = strings.TrimSpace(body.URL)
		if body.URL == "" {
			writeError(w, http.StatusBadRequest, "url is required")
			return
		}

		parsed, err := url.ParseRequestURI(body.URL)
		if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
			writeError(w, http.StatusBadRequest, "url must be a valid HTTP or HTTPS URL")
			return
		}

		article, err := extractor.Extract(body.URL)
		if err != nil {
			slog.WarnContext(ctx, "failed to extract article", "url", body.URL, "error", err)
			writeError(w, http.StatusUnprocessableEntity, "Could not fetch article from URL")
			return
		}

		if article.SiteName == "" {
			article.SiteName = parsed.Hostname()
		}

		writeJSON(w, http.StatusOK, article)
	}
}
