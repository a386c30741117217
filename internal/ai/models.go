package ai

import "time"

// Default generation settings. A low temperature keeps scoring consistent
// across runs; the token ceiling fits a summary plus two short lists.
const (
	DefaultTemperature = 0.3
	DefaultMaxTokens   = 1000
	DefaultTimeout     = 60 * time.Second
)

// ProviderConfig holds the configuration needed to create an AI provider.
type ProviderConfig struct {
	Provider string // "anthropic" | "openai"
	APIKey   string // default credential, used when a request carries none
	Model    string
	BaseURL  string // optional, overrides the provider's public endpoint
	Timeout  time.Duration
}

// CompletionRequest is a single system+user completion call.
type CompletionRequest struct {
	System      string
	User        string
	APIKey      string // caller-supplied credential; empty selects the default
	Temperature float64
	MaxTokens   int
	JSONMode    bool // ask the provider for a single JSON object
}
