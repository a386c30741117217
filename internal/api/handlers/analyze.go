package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"unicode/utf8"

	"github.com/hoanghai1803/veritas/internal/analysis"
)

// APIKeyErrorCode marks 402 responses that the client should answer by
// asking the user for their own API key.
const APIKeyErrorCode = "API_KEY_ERROR"

// Analyzer runs the credibility pipeline for one article.
type Analyzer interface {
	Analyze(ctx context.Context, articleText, apiKey string) (*analysis.Result, error)
}

// analyzeRequest keeps raw field values so type errors can be reported per
// field instead of failing the whole decode.
type analyzeRequest struct {
	ArticleText json.RawMessage `json:"articleText"`
	APIKey      json.RawMessage `json:"apiKey"`
}

// validationResponse is the 400 body.
type validationResponse struct {
	Error   string           `json:"error"`
	Details []analysis.Issue `json:"details"`
}

// apiKeyErrorResponse is the 402 body.
type apiKeyErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code"`
}

// Analyze handles POST /api/analyze. It validates the article text and the
// optional personal API key, runs the analysis and maps failures to status
// codes: 400 for validation, 402 for credential problems, 500 otherwise.
func Analyze(analyzer Analyzer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body analyzeRequest
		if err := decodeBody(w, r, &body); err != nil {
			slog.DebugContext(r.Context(), "invalid analyze body", "error", err)
			writeJSON(w, http.StatusBadRequest, validationResponse{
				Error: "Invalid input",
				Details: []analysis.Issue{{
					Path:    []string{},
					Code:    "invalid_json",
					Message: "Request body must be a JSON object",
				}},
			})
			return
		}

		text, apiKey, issues := validateAnalyzeRequest(body)
		if len(issues) > 0 {
			slog.DebugContext(r.Context(), "analyze request rejected", "issues", len(issues))
			writeJSON(w, http.StatusBadRequest, validationResponse{
				Error:   "Invalid input",
				Details: issues,
			})
			return
		}

		// The model call outlives a disconnected client; the provider's HTTP
		// timeout still bounds it.
		ctx := context.WithoutCancel(r.Context())

		result, err := analyzer.Analyze(ctx, text, apiKey)
		if err != nil {
			writeAnalysisError(ctx, w, err, apiKey != "")
			return
		}

		writeJSON(w, http.StatusOK, result)
	}
}

// writeAnalysisError maps a pipeline failure to its HTTP response. Upstream
// details are logged but never sent to the client.
func writeAnalysisError(ctx context.Context, w http.ResponseWriter, err error, customKey bool) {
	var ae *analysis.Error
	if !errors.As(err, &ae) {
		slog.ErrorContext(ctx, "analysis failed", "kind", "unexpected", "error", err)
		writeError(w, http.StatusInternalServerError, "Analysis failed. Please try again.")
		return
	}

	switch ae.Kind {
	case analysis.KindValidation:
		slog.WarnContext(ctx, "model reply failed validation", "issues", len(ae.Details))
		writeJSON(w, http.StatusBadRequest, validationResponse{
			Error:   "Invalid analysis result",
			Details: ae.Details,
		})

	case analysis.KindCredential:
		slog.WarnContext(ctx, "model provider rejected credential",
			"custom_key", customKey,
			"error", ae.Err,
		)
		writeJSON(w, http.StatusPaymentRequired, apiKeyErrorResponse{
			Error: "The API key is invalid, out of quota or rate limited. Please provide your own API key.",
			Code:  APIKeyErrorCode,
		})

	default:
		slog.ErrorContext(ctx, "analysis failed",
			"kind", ae.Kind.String(),
			"reason", ae.Reason,
			"error", err,
		)
		writeError(w, http.StatusInternalServerError, "Analysis failed. Please try again.")
	}
}

// validateAnalyzeRequest checks the raw request fields and collects every
// violation. A null apiKey is treated as absent.
func validateAnalyzeRequest(body analyzeRequest) (text, apiKey string, issues []analysis.Issue) {
	textPath := []string{"articleText"}
	switch {
	case isAbsent(body.ArticleText):
		issues = append(issues, analysis.Issue{
			Path:    textPath,
			Code:    "required",
			Message: "Article text is required",
		})
	case json.Unmarshal(body.ArticleText, &text) != nil:
		issues = append(issues, analysis.Issue{
			Path:    textPath,
			Code:    "invalid_type",
			Message: "Article text must be a string",
			Params:  map[string]any{"expected": "string"},
		})
	default:
		if issue, ok := checkTextLength(text); !ok {
			issues = append(issues, issue)
		}
	}

	if !isAbsent(body.APIKey) {
		if err := json.Unmarshal(body.APIKey, &apiKey); err != nil {
			issues = append(issues, analysis.Issue{
				Path:    []string{"apiKey"},
				Code:    "invalid_type",
				Message: "API key must be a string",
				Params:  map[string]any{"expected": "string"},
			})
		}
	}

	return text, apiKey, issues
}

// checkTextLength enforces the article length bounds, counted in characters.
func checkTextLength(text string) (analysis.Issue, bool) {
	n := utf8.RuneCountInString(text)
	switch {
	case n < analysis.MinArticleLength:
		return analysis.Issue{
			Path:    []string{"articleText"},
			Code:    "too_small",
			Message: fmt.Sprintf("Text must contain at least %d characters", analysis.MinArticleLength),
			Params:  map[string]any{"minimum": analysis.MinArticleLength, "actual": n},
		}, false
	case n > analysis.MaxArticleLength:
		return analysis.Issue{
			Path:    []string{"articleText"},
			Code:    "too_big",
			Message: fmt.Sprintf("Text cannot exceed %d characters", analysis.MaxArticleLength),
			Params:  map[string]any{"maximum": analysis.MaxArticleLength, "actual": n},
		}, false
	}
	return analysis.Issue{}, true
}

func isAbsent(raw json.RawMessage) bool {
	return len(raw) == 0 || bytes.Equal(raw, []byte("null"))
}
