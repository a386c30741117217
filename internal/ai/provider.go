package ai

import (
	"context"
	"fmt"
	"net/http"
)

// Completer is the interface that all LLM providers must implement.
type Completer interface {
	// Complete sends the system and user prompts to the model and returns
	// the raw text of its single reply.
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}

// NewProvider creates the appropriate provider based on config.
func NewProvider(cfg ProviderConfig) (Completer, error) {
	switch cfg.Provider {
	case "anthropic":
		return NewAnthropicProvider(cfg), nil
	case "openai":
		return NewOpenAIProvider(cfg), nil
	default:
		return nil, fmt.Errorf("unsupported AI provider: %s", cfg.Provider)
	}
}

// newHTTPClient returns the client shared by both providers.
func newHTTPClient(cfg ProviderConfig) *http.Client {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &http.Client{Timeout: timeout}
}

// pickKey selects the caller-supplied credential when present.
func pickKey(override, fallback string) string {
	if override != "" {
		return override
	}
	return fallback
}
