package llm

import (
	"context"
)

// Request is one generation call: a system+user prompt pair plus call
// settings. Zero Temperature and MaxTokens fall back to the package
// defaults.
type Request struct {
	System      string
	User        string
	Temperature float32
	MaxTokens   int
}

// Client is an abstraction over LLM providers
type Client interface {
	// GenerateJSON sends the prompt pair and returns the raw JSON text of
	// the model's reply, with any markdown fences stripped. The reply is
	// not parsed; callers own decoding and validation.
	GenerateJSON(ctx context.Context, req Request) (string, error)
	// Model returns the configured model name
	Model() string
	// Close releases any resources held by the client
	Close() error
}

// NewClient creates a new LLM client based on configuration
func NewClient(ctx context.Context, config *Config) (Client, error) {
	if config == nil {
		config = DefaultConfig()
	}

	switch config.Provider {
	case ProviderGemini:
		return NewGeminiClient(ctx, config)
	case ProviderOpenAI:
		return NewOpenAIClient(config)
	default:
		return NewOpenAIClient(config)
	}
}
