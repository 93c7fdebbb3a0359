package config

import (
	"os"
	"strconv"
	"strings"
)

// ProviderSettings holds the completion parameters for one provider.
// Whether these bind at client construction or per request is the
// provider adapter's concern.
type ProviderSettings struct {
	APIKey       string
	DefaultModel string
	Temperature  float64
	MaxTokens    int
	MaxRetries   int
}

// LLMSettings aggregates all provider-specific settings.
type LLMSettings struct {
	OpenAI ProviderSettings
	Gemini ProviderSettings
}

// LoadLLMSettings reads provider settings from the environment, with the
// same defaults for model names, temperature, and retry budget as the
// deployed configuration. Temperature defaults to 0 for deterministic
// extraction.
func LoadLLMSettings() *LLMSettings {
	return &LLMSettings{
		OpenAI: ProviderSettings{
			APIKey:       os.Getenv("OPENAI_API_KEY"),
			DefaultModel: envString("OPENAI_MODEL", "gpt-4o-mini"),
			Temperature:  envFloat("LLM_TEMPERATURE", 0),
			MaxTokens:    envInt("OPENAI_MAX_TOKENS", 0),
			MaxRetries:   envInt("LLM_MAX_RETRIES", 3),
		},
		Gemini: ProviderSettings{
			APIKey:       os.Getenv("GEMINI_API_KEY"),
			DefaultModel: envString("GEMINI_MODEL", "models/gemini-2.0-flash"),
			Temperature:  envFloat("LLM_TEMPERATURE", 0),
			MaxTokens:    envInt("GEMINI_MAX_TOKENS", 8192),
			MaxRetries:   envInt("LLM_MAX_RETRIES", 3),
		},
	}
}

// ForProvider returns the settings block for the named provider. Unknown
// names resolve to the Gemini block, matching the provider factory's
// default.
func (s *LLMSettings) ForProvider(name string) ProviderSettings {
	if strings.EqualFold(name, "openai") {
		return s.OpenAI
	}
	return s.Gemini
}

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envFloat(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
