package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"lawwatch-backend/config"
)

// GeminiProvider adapts the Gemini SDK. Generation parameters are bound
// to the model at construction time, so every request runs with the same
// temperature and output budget.
type GeminiProvider struct {
	client *genai.Client
	model  *genai.GenerativeModel
	name   string
}

// NewGeminiProvider creates a Gemini adapter from the given settings.
func NewGeminiProvider(ctx context.Context, settings config.ProviderSettings) (*GeminiProvider, error) {
	if settings.APIKey == "" {
		return nil, fmt.Errorf("GEMINI_API_KEY not set")
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(settings.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	model := client.GenerativeModel(settings.DefaultModel)
	model.SetTemperature(float32(settings.Temperature))
	if settings.MaxTokens > 0 {
		model.SetMaxOutputTokens(int32(settings.MaxTokens))
	}
	model.ResponseMIMEType = "application/json"

	return &GeminiProvider{
		client: client,
		model:  model,
		name:   settings.DefaultModel,
	}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) Model() string { return p.name }

// Complete sends the prompt and concatenates the text parts of every
// candidate into a single reply string.
func (p *GeminiProvider) Complete(ctx context.Context, prompt string) (string, error) {
	resp, err := p.model.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("Gemini generation failed: %w", err)
	}

	if len(resp.Candidates) == 0 {
		return "", fmt.Errorf("Gemini returned no candidates")
	}

	var reply strings.Builder
	for _, candidate := range resp.Candidates {
		if candidate.Content == nil {
			continue
		}
		for _, part := range candidate.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				reply.WriteString(string(text))
			}
		}
	}

	if reply.Len() == 0 {
		return "", fmt.Errorf("Gemini candidates contained no text")
	}
	return reply.String(), nil
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	return p.client.Close()
}
