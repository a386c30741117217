// Package analysis turns article text into a validated credibility result.
//
// An Analyzer builds the prompts, calls the model once, decodes the reply
// and checks it against the result schema. It never retries and never
// adjusts the model's answer: a reply either validates as-is or the call
// fails with a classified *Error.
package analysis

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/hoanghai1803/veritas/internal/ai"
)

// Article length bounds in characters (Unicode code points), inclusive.
const (
	MinArticleLength = 50
	MaxArticleLength = 5000
)

// Options tunes the completion call.
type Options struct {
	Temperature float64
	MaxTokens   int
}

// Analyzer runs the credibility pipeline. It holds no per-request state and
// is safe for concurrent use.
type Analyzer struct {
	completer ai.Completer
	opts      Options
}

// NewAnalyzer creates an Analyzer backed by the given provider. A zero
// MaxTokens selects ai.DefaultMaxTokens.
func NewAnalyzer(completer ai.Completer, opts Options) *Analyzer {
	if opts.MaxTokens <= 0 {
		opts.MaxTokens = ai.DefaultMaxTokens
	}
	return &Analyzer{completer: completer, opts: opts}
}

// Analyze scores articleText. apiKey, when non-empty, replaces the
// provider's default credential for this call only.
func (a *Analyzer) Analyze(ctx context.Context, articleText, apiKey string) (*Result, error) {
	raw, err := a.completer.Complete(ctx, ai.CompletionRequest{
		System:      SystemPrompt(),
		User:        UserPrompt(articleText),
		APIKey:      apiKey,
		Temperature: a.opts.Temperature,
		MaxTokens:   a.opts.MaxTokens,
		JSONMode:    true,
	})
	if err != nil {
		return nil, classifyCompletionError(err)
	}

	var parsed any
	if err := json.Unmarshal([]byte(extractJSON(raw)), &parsed); err != nil {
		slog.Debug("model reply is not JSON", "reply_len", len(raw))
		return nil, &Error{
			Kind:    KindUpstream,
			Reason:  ReasonMalformedJSON,
			Message: "model reply is not valid JSON",
			Err:     err,
		}
	}

	return Validate(parsed)
}

func classifyCompletionError(err error) error {
	switch {
	case ai.IsCredentialError(err):
		return &Error{
			Kind:    KindCredential,
			Reason:  ReasonProvider,
			Message: "model provider rejected the credential",
			Err:     err,
		}
	case errors.Is(err, ai.ErrEmptyResponse):
		return &Error{
			Kind:    KindUpstream,
			Reason:  ReasonEmptyResponse,
			Message: "model returned an empty reply",
			Err:     err,
		}
	default:
		return &Error{
			Kind:    KindUpstream,
			Reason:  ReasonProvider,
			Message: "model call failed",
			Err:     err,
		}
	}
}
