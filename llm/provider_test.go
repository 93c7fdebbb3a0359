package llm

import (
	"context"
	"testing"

	"lawwatch-backend/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportsTextLength(t *testing.T) {
	assert.True(t, SupportsTextLength("openai", 99999))
	assert.False(t, SupportsTextLength("openai", 100000))
	assert.True(t, SupportsTextLength("gemini", 100000))
	assert.True(t, SupportsTextLength("gemini", 10_000_000))
}

func TestNewUnsupportedProvider(t *testing.T) {
	_, err := New(context.Background(), "anthropic", &config.LLMSettings{})
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestNewOpenAIProvider(t *testing.T) {
	settings := &config.LLMSettings{
		OpenAI: config.ProviderSettings{APIKey: "key", DefaultModel: "gpt-4o-mini"},
	}
	provider, err := New(context.Background(), "OpenAI", settings)
	require.NoError(t, err)
	assert.Equal(t, "openai", provider.Name())
	assert.Equal(t, "gpt-4o-mini", provider.Model())
}

func TestOpenAIProviderRequiresKey(t *testing.T) {
	provider := NewOpenAIProvider(config.ProviderSettings{DefaultModel: "gpt-4o-mini"})
	_, err := provider.Complete(context.Background(), "prompt")
	assert.Error(t, err)
}
