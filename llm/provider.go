package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lawwatch-backend/config"
)

// Provider is a completion backend. Adapters own their transport and
// generation parameters; callers only supply the prompt.
type Provider interface {
	// Name identifies the backend ("gemini" or "openai").
	Name() string
	// Model returns the model identifier requests are sent to.
	Model() string
	// Complete sends one prompt and returns the raw reply text.
	Complete(ctx context.Context, prompt string) (string, error)
}

// ErrUnsupportedProvider is returned for provider names the factory does
// not recognize.
var ErrUnsupportedProvider = errors.New("unsupported provider")

// New builds the named provider adapter from its settings. Gemini is the
// preferred backend for long documents; OpenAI is available for shorter
// texts.
func New(ctx context.Context, name string, settings *config.LLMSettings) (Provider, error) {
	switch strings.ToLower(name) {
	case "gemini":
		return NewGeminiProvider(ctx, settings.Gemini)
	case "openai":
		return NewOpenAIProvider(settings.OpenAI), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedProvider, name)
	}
}

// openAITextLimit is the largest document length OpenAI requests accept.
// Longer texts must go through Gemini.
const openAITextLimit = 100000

// SupportsTextLength reports whether the named provider can take a
// document of the given length.
func SupportsTextLength(providerName string, textLength int) bool {
	if strings.ToLower(providerName) == "openai" {
		return textLength < openAITextLimit
	}
	return true
}
