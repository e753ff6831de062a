// Package llm provides the LLM client abstraction and provider
// implementations for page content generation. The client is deliberately
// dumb: one call in, one JSON string out, no internal retries. Retry policy
// belongs to the worker.
package llm

import "time"

// Provider represents an LLM provider
type Provider string

// Provider constants define supported LLM providers
const (
	// ProviderOpenAI is any OpenAI-compatible chat-completions endpoint
	ProviderOpenAI Provider = "openai"
	// ProviderGemini is the Google Gemini provider
	ProviderGemini Provider = "gemini"
)

// Default call settings for page generation.
const (
	DefaultTemperature float32 = 0.7
	DefaultMaxTokens           = 3000
	DefaultTimeout             = 90 * time.Second
)

// Config holds provider selection and connection settings.
type Config struct {
	Provider Provider
	Model    string
	APIKey   string
	// BaseURL applies to OpenAI-compatible endpoints only.
	BaseURL string
	// Timeout is the HTTP client ceiling. Per-call deadlines come from the
	// caller's context and are usually shorter.
	Timeout time.Duration
}

// DefaultConfig returns the default configuration (OpenAI-compatible, gpt-4).
func DefaultConfig() *Config {
	return &Config{
		Provider: ProviderOpenAI,
		Model:    "gpt-4",
		BaseURL:  "https://api.openai.com/v1",
		Timeout:  DefaultTimeout,
	}
}

// WithModel returns a copy of the config pinned to a specific model.
func (c *Config) WithModel(model string) *Config {
	out := *c
	out.Model = model
	return &out
}

func temperatureOrDefault(t float32) float32 {
	if t <= 0 {
		return DefaultTemperature
	}
	return t
}

func maxTokensOrDefault(n int) int {
	if n <= 0 {
		return DefaultMaxTokens
	}
	return n
}
