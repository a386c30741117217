package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Config holds all application configuration.
type Config struct {
	AI      AIConfig      `toml:"ai"`
	Server  ServerConfig  `toml:"server"`
	Extract ExtractConfig `toml:"extract"`
}

// AIConfig holds AI provider settings.
type AIConfig struct {
	Provider       string  `toml:"provider"`
	APIKey         string  `toml:"api_key"`
	Model          string  `toml:"model"`
	BaseURL        string  `toml:"base_url"`
	Temperature    float64 `toml:"temperature"`
	MaxTokens      int     `toml:"max_tokens"`
	TimeoutSeconds int     `toml:"timeout_seconds"`
}

// Timeout returns the provider HTTP timeout.
func (c AIConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host      string `toml:"host"`
	Port      int    `toml:"port"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
}

// ExtractConfig holds settings for fetching articles by URL.
type ExtractConfig struct {
	TimeoutSeconds int `toml:"timeout_seconds"`
}

// Timeout returns the page fetch timeout.
func (c ExtractConfig) Timeout() time.Duration {
	return time.Duration(c.TimeoutSeconds) * time.Second
}

const (
	defaultProvider       = "openai"
	defaultOpenAIModel    = "gpt-4-turbo"
	defaultAnthropicModel = "claude-haiku-4-5"
	defaultTemperature    = 0.3
	defaultMaxTokens      = 1000
	defaultAITimeout      = 60
	defaultHost           = "localhost"
	defaultPort           = 8080
	defaultLogLevel       = "info"
	defaultLogFormat      = "text"
	defaultExtractTimeout = 30
)

const defaultConfigContent = `[ai]
provider = "openai"               # "openai" or "anthropic"
api_key = ""                      # Shared default key (or set AI_API_KEY env var)
model = "gpt-4-turbo"
temperature = 0.3                 # Low values keep scores consistent
max_tokens = 1000
timeout_seconds = 60

[server]
host = "localhost"
port = 8080
log_level = "info"                # "debug", "info", "warn" or "error"
log_format = "text"               # "text" or "json"

[extract]
timeout_seconds = 30
`

// Load reads and parses the TOML config from the given path. If the file does
// not exist, it creates a default config file at that path. Values from a
// .env file next to the config and from the environment override the file,
// with real environment variables taking highest priority.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := createDefault(path); err != nil {
			return nil, fmt.Errorf("creating default config: %w", err)
		}
		slog.Info("created default config file", "path", path)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing config file: %w", err)
	}

	// Validate explicitly-set values before applying defaults, so that
	// explicitly writing "port = 0" is an error rather than silently
	// being replaced with the default.
	if err := validateExplicit(&cfg, md); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	applyDefaults(&cfg, md)

	dotenv, err := readDotEnv(filepath.Join(filepath.Dir(path), ".env"))
	if err != nil {
		return nil, fmt.Errorf("reading .env file: %w", err)
	}
	applyEnvOverrides(&cfg, envLookup(dotenv))

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return &cfg, nil
}

// createDefault writes the default config content to the given path,
// creating any parent directories as needed.
func createDefault(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(defaultConfigContent), 0o644); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}

// readDotEnv parses a .env file without touching the process environment.
// A missing file yields an empty map.
func readDotEnv(path string) (map[string]string, error) {
	vars, err := godotenv.Read(path)
	if errors.Is(err, fs.ErrNotExist) {
		return map[string]string{}, nil
	}
	if err != nil {
		return nil, err
	}
	slog.Debug("loaded .env file", "path", path, "vars", len(vars))
	return vars, nil
}

// envLookup returns a getter that prefers the process environment and falls
// back to values read from a .env file.
func envLookup(dotenv map[string]string) func(string) string {
	return func(key string) string {
		if v := os.Getenv(key); v != "" {
			return v
		}
		return dotenv[key]
	}
}

// validateExplicit checks values that were explicitly set in the TOML file.
// This catches cases like "port = 0" which would otherwise be silently
// replaced by the default value.
func validateExplicit(cfg *Config, md toml.MetaData) error {
	if md.IsDefined("server", "port") {
		if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
			return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
		}
	}
	if md.IsDefined("ai", "max_tokens") && cfg.AI.MaxTokens < 1 {
		return fmt.Errorf("invalid ai.max_tokens %d: must be >= 1", cfg.AI.MaxTokens)
	}
	if md.IsDefined("ai", "timeout_seconds") && cfg.AI.TimeoutSeconds < 1 {
		return fmt.Errorf("invalid ai.timeout_seconds %d: must be >= 1", cfg.AI.TimeoutSeconds)
	}
	if md.IsDefined("extract", "timeout_seconds") && cfg.Extract.TimeoutSeconds < 1 {
		return fmt.Errorf("invalid extract.timeout_seconds %d: must be >= 1", cfg.Extract.TimeoutSeconds)
	}
	return nil
}

// applyDefaults sets default values for any zero-valued fields. Temperature
// is checked against the metadata because 0 is a meaningful setting.
func applyDefaults(cfg *Config, md toml.MetaData) {
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = defaultProvider
	}
	if cfg.AI.Model == "" {
		switch cfg.AI.Provider {
		case "anthropic":
			cfg.AI.Model = defaultAnthropicModel
		default:
			cfg.AI.Model = defaultOpenAIModel
		}
	}
	if !md.IsDefined("ai", "temperature") {
		cfg.AI.Temperature = defaultTemperature
	}
	if cfg.AI.MaxTokens == 0 {
		cfg.AI.MaxTokens = defaultMaxTokens
	}
	if cfg.AI.TimeoutSeconds == 0 {
		cfg.AI.TimeoutSeconds = defaultAITimeout
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = defaultHost
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = defaultPort
	}
	if cfg.Server.LogLevel == "" {
		cfg.Server.LogLevel = defaultLogLevel
	}
	if cfg.Server.LogFormat == "" {
		cfg.Server.LogFormat = defaultLogFormat
	}
	if cfg.Extract.TimeoutSeconds == 0 {
		cfg.Extract.TimeoutSeconds = defaultExtractTimeout
	}
}

// applyEnvOverrides applies environment variable overrides. Environment
// variables take highest priority over config file values.
//
// Priority for ai.api_key:
//  1. AI_API_KEY (generic, highest)
//  2. OPENAI_API_KEY (when provider is "openai")
//  3. ANTHROPIC_API_KEY (when provider is "anthropic")
func applyEnvOverrides(cfg *Config, getenv func(string) string) {
	// Apply provider-specific env var first (lower priority).
	switch cfg.AI.Provider {
	case "anthropic":
		if v := getenv("ANTHROPIC_API_KEY"); v != "" {
			cfg.AI.APIKey = v
		}
	case "openai":
		if v := getenv("OPENAI_API_KEY"); v != "" {
			cfg.AI.APIKey = v
		}
	}

	// AI_API_KEY overrides everything (highest priority).
	if v := getenv("AI_API_KEY"); v != "" {
		cfg.AI.APIKey = v
	}

	if v := getenv("AI_BASE_URL"); v != "" {
		cfg.AI.BaseURL = v
	}
	if v := getenv("LOG_LEVEL"); v != "" {
		cfg.Server.LogLevel = v
	}
}

// validate checks that configuration values are within acceptable ranges.
func validate(cfg *Config) error {
	switch cfg.AI.Provider {
	case "anthropic", "openai":
		// valid
	default:
		return fmt.Errorf("invalid ai.provider %q: must be \"openai\" or \"anthropic\"", cfg.AI.Provider)
	}

	if cfg.AI.Temperature < 0 || cfg.AI.Temperature > 2 {
		return fmt.Errorf("invalid ai.temperature %v: must be between 0 and 2", cfg.AI.Temperature)
	}

	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d: must be between 1 and 65535", cfg.Server.Port)
	}

	if _, err := ParseLogLevel(cfg.Server.LogLevel); err != nil {
		return err
	}

	switch cfg.Server.LogFormat {
	case "text", "json":
		// valid
	default:
		return fmt.Errorf("invalid server.log_format %q: must be \"text\" or \"json\"", cfg.Server.LogFormat)
	}

	if cfg.AI.APIKey == "" {
		slog.Warn("ai.api_key is empty: users will have to supply their own key")
	}

	return nil
}

// ParseLogLevel maps a config log level name to a slog.Level.
func ParseLogLevel(name string) (slog.Level, error) {
	switch strings.ToLower(name) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("invalid server.log_level %q: must be debug, info, warn or error", name)
	}
}
