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
var _ Completer = (*OpenAIProvider)(nil)

const openaiAPIURL = "https://api.openai.com/v1/chat/completions"

// OpenAIProvider implements Completer using the OpenAI Chat Completions API.
type OpenAIProvider struct {
	apiKey string
	model  string
	url    string
	client *http.Client
}

// NewOpenAIProvider creates an OpenAIProvider. The HTTP client timeout comes
// from cfg.Timeout and defaults to 60 seconds.
func NewOpenAIProvider(cfg ProviderConfig) *OpenAIProvider {
	url := openaiAPIURL
	if cfg.BaseURL != "" {
		url = strings.TrimRight(cfg.BaseURL, "/") + "/chat/completions"
	}
	return &OpenAIProvider{
		apiKey: cfg.APIKey,
		model:  cfg.Model,
		url:    url,
		client: newHTTPClient(cfg),
	}
}

// openaiRequest is the request body for the OpenAI Chat Completions API.
type openaiRequest struct {
	Model          string                `json:"model"`
	Messages       []openaiMessage       `json:"messages"`
	Temperature    float64               `json:"temperature"`
	MaxTokens      int                   `json:"max_tokens,omitempty"`
	ResponseFormat *openaiResponseFormat `json:"response_format,omitempty"`
}

// openaiMessage is a single message in the OpenAI request.
type openaiMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type openaiResponseFormat struct {
	Type string `json:"type"`
}

// openaiResponse is the response body from the OpenAI Chat Completions API.
type openaiResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    any    `json:"code"`
	} `json:"error"`
}

// Complete makes an HTTP request to the OpenAI Chat Completions API and
// returns the text content from the first choice.
func (p *OpenAIProvider) Complete(ctx context.Context, in CompletionRequest) (string, error) {
	reqBody := openaiRequest{
		Model: p.model,
		Messages: []openaiMessage{
			{Role: "system", Content: in.System},
			{Role: "user", Content: in.User},
		},
		Temperature: in.Temperature,
		MaxTokens:   in.MaxTokens,
	}
	if in.JSONMode {
		reqBody.ResponseFormat = &openaiResponseFormat{Type: "json_object"}
	}

	body, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}

	req.Header.Set("Authorization", "Bearer "+pickKey(in.APIKey, p.apiKey))
	req.Header.Set("Content-Type", "application/json")

	slog.Debug("calling OpenAI API", "model", p.model, "custom_key", in.APIKey != "")

	resp, err := p.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("sending request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading response body: %w", err)
	}

	var apiResp openaiResponse
	if err := json.Unmarshal(respBody, &apiResp); err != nil {
		if resp.StatusCode != http.StatusOK {
			return "", &APIError{Provider: "openai", StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
		}
		return "", fmt.Errorf("parsing response (status %d): %w", resp.StatusCode, err)
	}

	if apiResp.Error != nil {
		// OpenAI sends code as a string, but some compatible gateways use numbers.
		var code string
		if s, ok := apiResp.Error.Code.(string); ok {
			code = s
		}
		return "", &APIError{
			Provider:   "openai",
			StatusCode: resp.StatusCode,
			Type:       apiResp.Error.Type,
			Code:       code,
			Message:    apiResp.Error.Message,
		}
	}

	if resp.StatusCode != http.StatusOK {
		return "", &APIError{Provider: "openai", StatusCode: resp.StatusCode, Message: http.StatusText(resp.StatusCode)}
	}

	if len(apiResp.Choices) == 0 || strings.TrimSpace(apiResp.Choices[0].Message.Content) == "" {
		return "", ErrEmptyResponse
	}

	return apiResp.Choices[0].Message.Content, nil
}
