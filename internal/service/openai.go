package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Completer sends one system/user prompt pair to a language model.
// An empty string with a nil error means the model returned no content.
type Completer interface {
	Complete(ctx context.Context, system, user string) (string, error)
}

// OpenAIConfig holds configuration for OpenAIClient.
type OpenAIConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// OpenAIClient calls an OpenAI-compatible chat completions endpoint.
type OpenAIClient struct {
	client      *resty.Client
	model       string
	temperature float32
	endpoint    string
}

// NewOpenAIClient creates a new chat completions client.
// Parameters:
//   - cfg: model, credential and endpoint settings.
//
// Returns:
//   - *OpenAIClient: initialized client.
func NewOpenAIClient(cfg *OpenAIConfig) *OpenAIClient {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 60 * time.Second
	}

	client := resty.New()
	client.SetHeader("Authorization", "Bearer "+cfg.APIKey)
	client.SetHeader("Content-Type", "application/json")
	client.SetTimeout(timeout)

	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}

	model := cfg.Model
	if model == "" {
		model = "gpt-4o-mini"
	}

	return &OpenAIClient{
		client:      client,
		model:       model,
		temperature: cfg.Temperature,
		endpoint:    baseURL + "/chat/completions",
	}
}

// GetModel returns the model name being used.
func (c *OpenAIClient) GetModel() string {
	return c.model
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float32       `json:"temperature"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
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

// Complete sends the prompts and returns the first choice's content.
func (c *OpenAIClient) Complete(ctx context.Context, system, user string) (string, error) {
	req := chatRequest{
		Model: c.model,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		Temperature: c.temperature,
	}

	var resp chatResponse
	httpResp, err := c.client.R().
		SetContext(ctx).
		SetBody(req).
		SetResult(&resp).
		SetError(&resp).
		Post(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("failed to call chat completions API: %w", err)
	}

	if httpResp.StatusCode() < 200 || httpResp.StatusCode() >= 300 {
		if resp.Error != nil {
			return "", fmt.Errorf("chat completions API returned HTTP %d: %s", httpResp.StatusCode(), resp.Error.Message)
		}
		return "", fmt.Errorf("chat completions API returned HTTP %d: %s", httpResp.StatusCode(), string(httpResp.Body()))
	}

	if resp.Error != nil {
		return "", fmt.Errorf("chat completions API error: %s", resp.Error.Message)
	}

	if len(resp.Choices) == 0 {
		return "", nil
	}
	return resp.Choices[0].Message.Content, nil
}
