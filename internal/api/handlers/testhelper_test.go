package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/hoanghai1803/veritas/internal/ai"
	"github.com/hoanghai1803/veritas/internal/analysis"
)

// fakeAnalyzer records calls and returns a canned result or error.
type fakeAnalyzer struct {
	result *analysis.Result
	err    error

	calls      int
	lastText   string
	lastAPIKey string
	lastCtxErr error
}

func (f *fakeAnalyzer) Analyze(ctx context.Context, articleText, apiKey string) (*analysis.Result, error) {
	f.calls++
	f.lastText = articleText
	f.lastAPIKey = apiKey
	f.lastCtxErr = ctx.Err()
	return f.result, f.err
}

// completerFunc adapts a function to ai.Completer.
type completerFunc func(ctx context.Context, req ai.CompletionRequest) (string, error)

func (f completerFunc) Complete(ctx context.Context, req ai.CompletionRequest) (string, error) {
	return f(ctx, req)
}

// post sends body to handler as a JSON POST and returns the recorder.
func post(t *testing.T, handler http.Handler, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	r := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	r.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)
	return w
}

// validArticle is 120+ characters of plain text.
var validArticle = strings.Repeat("The ministry published the full report on its website on Monday. ", 2)
