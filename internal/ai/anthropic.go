package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
)

// Compile-time interface check.
var _ Completer = (*AnthropicProvider)(nil)

const anthropicAPIURL = "https://api.anthropic.com/v1/messages"

// AnthropicProvider implements Completer using the Anthropic Messages API.
type AnthropicProvider struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

// NewAnthropicProvider creates an AnthropicProvider. The HTTP client timeout
// comes from cfg.Timeout and defaults to 60 seconds.
func NewAnthropicProvider(cfg ProviderConfig) *AnthropicProvider {
	url := anthropicAPIURL
	if cfg.BaseURL != "" {
		url = strings.TrimRight(cfg.BaseURL, "/") + "/messages"
	}
	return &AnthropicProvider{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		url:    url,
		client: newHTTPClient(cfg),
	}
}

// anthropicRequest is the request body for the Anthropic Messages API.
type anthropicRequest struct {
	Model       string             `json:"model"`
	MaxTokens   int                `json:"max_tokens"`
	Temperature float64            `json:"temperature"`
	System      string             `json:"system"`
	Messages    []anthropicMessage `json:"messages"`
}

// anthropicMessage is a single message in the Anthropic request.
type anthropicMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// anthropicResponse is the response body from the Anthropic Messages API.
type anthropicResponse struct {
	Content []struct {
		Type string `json:"type"`
		Text string `json:"text"`
	} `json:"content"`
	Error *struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	} `json:"error"`
}

// Complete makes an HTTP request to the Anthropic Messages API and returns
// the text content from the first content block. The Messages API has no
// JSON response mode, so JSONMode is carried by the system prompt alone.
func (p *AnthropicProvider) Complete(ctx context.Context, in CompletionRequest) (string, error) {
	maxTokens := in.MaxTokens
	if maxTokens <= 0 {
		maxTokens = DefaultMaxTokens
	}

	reqBody := anthropicRequest{
		Model:       p.model,
		MaxTokens:   maxTokens,
		Temperature: in.Temperature,
		System:      in.System,
		Messages: []anthropicMessage{
			{Role: "user", Content: in.User},
		},
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("x-api-key", pickKey(in.APIKey, p.apiKey))
	req.Header.Set("anthropic-version", "2023-06-01")
	req.Header.Set("content-type", "application/json")

	slog.Debug("calling Anthropic API", "model", p.model, "custom_key", in.APIKey != "")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	var apiResp anthropicResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", &APIError{Provider: "anthropic", StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return "", fmt.Errorf("parsing response (status %d): %w", resp.StatusCode, err)
	}

	if apiResp.Error != nil {
		return "", &APIError{
			Provider:   "anthropic",
			StatusCode: resp.StatusCode,
			Type:       apiResp.Error.Type,
			Message:    apiResp.Error.Message,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Provider: "anthropic", StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	for _, block := range apiResp.Content {
		if block.Type == "text" && strings.TrimSpace(block.Text) != "" {
			return block.Text, nil
		}
	}
	return "", ErrEmptyResponse
}
