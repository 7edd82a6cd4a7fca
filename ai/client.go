package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"assetlens/internal/config"
)

// Client calls an OpenAI-compatible chat-completions endpoint and returns
// the generated text. The rest of the application depends only on the
// ports.TextGenerator contract this satisfies.
type Client struct {
	apiKey        string
	baseURL       string
	model         string
	temperature   float64
	maxTokens     int
	timeout       time.Duration
	systemContext string
	httpClient    *http.Client
}

// NewClient creates a text-generation client from AI configuration.
func NewClient(cfg config.AIConfig) *Client {
	timeout := 180 * time.Second
	log.Printf("[AIClient] Initializing client with model=%s, temp=%.2f, maxTokens=%d, timeout=%v",
		cfg.Model, cfg.Temperature, cfg.MaxTokens, timeout)

	return &Client{
		apiKey:        cfg.APIKey,
		baseURL:       cfg.BaseURL,
		model:         cfg.Model,
		temperature:   cfg.Temperature,
		maxTokens:     cfg.MaxTokens,
		timeout:       timeout,
		systemContext: cfg.SystemContext,
		httpClient:    &http.Client{Timeout: timeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model               string        `json:"model"`
	Messages            []chatMessage `json:"messages"`
	Temperature         float64       `json:"temperature,omitempty"`
	MaxCompletionTokens int           `json:"max_completion_tokens,omitempty"`
}

type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// GenerateText makes a chat-completions call and returns the response text.
func (c *Client) GenerateText(ctx context.Context, systemMessage, prompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("AI client not configured: missing API key")
	}

	systemContent := systemMessage
	if systemContent == "" {
		systemContent = c.systemContext
	}

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	reqBody := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: systemContent},
			{Role: "user", Content: prompt},
		},
		Temperature:         c.temperature,
		MaxCompletionTokens: c.maxTokens,
	}

	jsonData, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request: %w", err)
	}

	log.Printf("[AIClient] Sending request to %s - promptLength=%d", c.model, len(prompt))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewBuffer(jsonData))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return "", fmt.Errorf("request timeout after %v: %w", c.timeout, err)
		}
		return "", fmt.Errorf("failed to make request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("AI API returned status %d: %s", resp.StatusCode, string(body))
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("AI API error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", fmt.Errorf("AI API returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
