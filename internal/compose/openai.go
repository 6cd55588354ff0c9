// Package compose drafts email reply bodies, delegating wording to an
// external text-generation service with a deterministic template fallback.
package compose

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultAPIURL    = "https://api.openai.com/v1/chat/completions"
	defaultModel     = "gpt-4o-2024-11-20"
	defaultMaxTokens = 500
	callTimeout      = 10 * time.Second
)

// ErrNoCredentials indicates the completion service is not configured.
var ErrNoCredentials = errors.New("no completion API key configured")

// GenerateRequest is one text-completion call.
type GenerateRequest struct {
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float64
}

// Generator produces text for a prompt. Callers must treat any error as
// "service unavailable" and fall back deterministically.
type Generator interface {
	Generate(ctx context.Context, req GenerateRequest) (string, error)
}

// OpenAI calls the chat-completions endpoint.
type OpenAI struct {
	apiKey string
	model  string
	apiURL string
	client *http.Client
}

// NewOpenAI creates a completion client. An empty model selects the default.
func NewOpenAI(apiKey, model string) *OpenAI {
	if model == "" {
		model = defaultModel
	}

	return &OpenAI{
		apiKey: apiKey,
		model:  model,
		apiURL: defaultAPIURL,
		client: &http.Client{Timeout: callTimeout},
	}
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens"`
	Temperature float64       `json:"temperature"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Generate runs one completion call.
func (c *OpenAI) Generate(ctx context.Context, req GenerateRequest) (string, error) {
	if c.apiKey == "" {
		return "", ErrNoCredentials
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultMaxTokens
	}

	payload := chatRequest{
		Model:       c.model,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
		Messages: []chatMessage{
			{Role: "system", Content: req.System},
			{Role: "user", Content: req.Prompt},
		},
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("json.Marshal failed: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.apiURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("http.NewRequestWithContext failed: %w", err)
	}
	httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(httpReq)
	if err != nil {
		return "", fmt.Errorf("completion request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("io.ReadAll failed: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("completion request returned %d: %s", resp.StatusCode, raw)
	}

	var parsed chatResponse
	if err := json.Unmarshal(raw, &parsed); err != nil {
		return "", fmt.Errorf("json.Unmarshal failed: %w", err)
	}
	if parsed.Error != nil {
		return "", fmt.Errorf("completion error: %s", parsed.Error.Message)
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("completion returned no choices")
	}

	return parsed.Choices[0].Message.Content, nil
}
