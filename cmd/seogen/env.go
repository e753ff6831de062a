package main

import (
	"fmt"
	"os"

	"github.com/parkerjr2/seogen/internal/llm"
)

// llmConfigFromEnv builds the LLM client configuration from the environment.
// LLM_PROVIDER selects the provider (default "openai"); the matching API key
// variable is required.
func llmConfigFromEnv() (*llm.Config, error) {
	cfg := llm.DefaultConfig()

	switch os.Getenv("LLM_PROVIDER") {
	case "", "openai":
		cfg.Provider = llm.ProviderOpenAI
		cfg.APIKey = os.Getenv("OPENAI_API_KEY")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OPENAI_API_KEY environment variable is required")
		}
	case "gemini":
		cfg.Provider = llm.ProviderGemini
		cfg.Model = "gemini-2.5-flash"
		cfg.APIKey = os.Getenv("GEMINI_API_KEY")
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("GEMINI_API_KEY environment variable is required")
		}
	default:
		return nil, fmt.Errorf("unknown LLM_PROVIDER %q (expected openai or gemini)", os.Getenv("LLM_PROVIDER"))
	}

	if model := os.Getenv("LLM_MODEL"); model != "" {
		cfg.Model = model
	}
	if baseURL := os.Getenv("OPENAI_BASE_URL"); baseURL != "" {
		cfg.BaseURL = baseURL
	}
	return cfg, nil
}

// databaseURLFromEnv returns DATABASE_URL or an error when unset.
func databaseURLFromEnv() (string, error) {
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return "", fmt.Errorf("DATABASE_URL environment variable is required")
	}
	return databaseURL, nil
}
