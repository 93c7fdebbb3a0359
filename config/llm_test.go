package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadLLMSettingsDefaults(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "")
	t.Setenv("GEMINI_MODEL", "")
	t.Setenv("LLM_TEMPERATURE", "")
	t.Setenv("GEMINI_MAX_TOKENS", "")
	t.Setenv("LLM_MAX_RETRIES", "")

	settings := LoadLLMSettings()

	assert.Equal(t, "gpt-4o-mini", settings.OpenAI.DefaultModel)
	assert.Equal(t, "models/gemini-2.0-flash", settings.Gemini.DefaultModel)
	assert.Equal(t, 0.0, settings.Gemini.Temperature)
	assert.Equal(t, 8192, settings.Gemini.MaxTokens)
	assert.Equal(t, 3, settings.Gemini.MaxRetries)
}

func TestLoadLLMSettingsFromEnv(t *testing.T) {
	t.Setenv("GEMINI_MODEL", "models/gemini-2.5-pro")
	t.Setenv("LLM_TEMPERATURE", "0.4")
	t.Setenv("LLM_MAX_RETRIES", "5")

	settings := LoadLLMSettings()

	assert.Equal(t, "models/gemini-2.5-pro", settings.Gemini.DefaultModel)
	assert.Equal(t, 0.4, settings.Gemini.Temperature)
	assert.Equal(t, 5, settings.OpenAI.MaxRetries)
}

func TestForProvider(t *testing.T) {
	settings := &LLMSettings{
		OpenAI: ProviderSettings{DefaultModel: "gpt-4o-mini"},
		Gemini: ProviderSettings{DefaultModel: "models/gemini-2.0-flash"},
	}

	assert.Equal(t, "gpt-4o-mini", settings.ForProvider("OpenAI").DefaultModel)
	assert.Equal(t, "models/gemini-2.0-flash", settings.ForProvider("gemini").DefaultModel)
	assert.Equal(t, "models/gemini-2.0-flash", settings.ForProvider("unknown").DefaultModel)
}

func TestLoadLLMSettingsIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("LLM_TEMPERATURE", "warm")
	t.Setenv("GEMINI_MAX_TOKENS", "lots")

	settings := LoadLLMSettings()

	assert.Equal(t, 0.0, settings.Gemini.Temperature)
	assert.Equal(t, 8192, settings.Gemini.MaxTokens)
}
