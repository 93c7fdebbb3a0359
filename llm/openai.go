package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"lawwatch-backend/config"
)

const openAIChatCompletionsURL = "https://api.openai.com/v1/chat/completions"

// OpenAIProvider calls the chat completions API directly via HTTP.
// Unlike Gemini, generation parameters ride on each request.
type OpenAIProvider struct {
	settings   config.ProviderSettings
	httpClient *http.Client
}

// NewOpenAIProvider creates an OpenAI adapter from the given settings.
func NewOpenAIProvider(settings config.ProviderSettings) *OpenAIProvider {
	return &OpenAIProvider{
		settings:   settings,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
}

func (p *OpenAIProvider) Name() string { return "openai" }

func (p *OpenAIProvider) Model() string { return p.settings.DefaultModel }

// Complete sends one chat completion request and returns the first
// choice's message content.
func (p *OpenAIProvider) Complete(ctx context.Context, prompt string) (string, error) {
	if p.settings.APIKey == "" {
		return "", fmt.Errorf("OPENAI_API_KEY not set")
	}

	reqBody := map[string]interface{}{
		"model": p.settings.DefaultModel,
		"messages": []map[string]interface{}{
			{"role": "user", "content": prompt},
		},
		"temperature":     p.settings.Temperature,
		"response_format": map[string]string{"type": "json_object"},
	}
	if p.settings.MaxTokens > 0 {
		reqBody["max_tokens"] = p.settings.MaxTokens
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", openAIChatCompletionsURL, bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+p.settings.APIKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	bodyBytes, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		log.Printf("OpenAI API error: Status %d, Body: %s", resp.StatusCode, string(bodyBytes))
		return "", fmt.Errorf("API error: %d - %s", resp.StatusCode, string(bodyBytes))
	}

	var apiResp struct {
		Choices []struct {
			Message struct {
				Content string `json:"content"`
			} `json:"message"`
			FinishReason string `json:"finish_reason,omitempty"`
		} `json:"choices"`
		Error struct {
			Message string `json:"message,omitempty"`
			Type    string `json:"type,omitempty"`
		} `json:"error,omitempty"`
	}
	if err := json.Unmarshal(bodyBytes, &apiResp); err != nil {
		log.Printf("Failed to decode OpenAI response. Body: %s", string(bodyBytes))
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if apiResp.Error.Message != "" {
		return "", fmt.Errorf("API error: %s (type: %s)", apiResp.Error.Message, apiResp.Error.Type)
	}
	if len(apiResp.Choices) == 0 {
		return "", fmt.Errorf("API returned no choices")
	}

	choice := apiResp.Choices[0]
	if choice.FinishReason != "" && choice.FinishReason != "stop" {
		log.Printf("Warning: OpenAI choice finished with reason: %s", choice.FinishReason)
	}
	if choice.Message.Content == "" {
		return "", fmt.Errorf("API choice has empty content")
	}
	return choice.Message.Content, nil
}
