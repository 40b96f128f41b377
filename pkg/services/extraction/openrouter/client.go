package openrouter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/restoreco/claimscope/pkg/services/extraction"
)

const (
	defaultBaseURL = "https://openrouter.ai/api/v1/chat/completions"
	defaultModel   = "anthropic/claude-3.5-sonnet"
)

// Config holds the collaborator settings loaded from the service
// configuration.
type Config struct {
	APIKey  string `mapstructure:"api_key"`
	Model   string `mapstructure:"model"`
	BaseURL string `mapstructure:"base_url"`
}

// Client talks to an OpenRouter-compatible chat-completions endpoint.
// It performs a single request per call; retry policy belongs to the
// caller.
type Client struct {
	apiKey     string
	model      string
	baseURL    string
	httpClient *http.Client
}

type message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type request struct {
	Model    string    `json:"model"`
	Messages []message `json:"messages"`
	Stream   bool      `json:"stream"`
}

type response struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
}

func NewClient(cfg Config) *Client {
	c := &Client{
		apiKey:     cfg.APIKey,
		model:      cfg.Model,
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: 120 * time.Second},
	}
	if c.model == "" {
		c.model = defaultModel
	}
	if c.baseURL == "" {
		c.baseURL = defaultBaseURL
	}
	return c
}

// GenerateExtraction asks the model to convert the claim document text
// into the structured JSON contract. Failures are classified as
// *extraction.UpstreamError so the presentation layer can offer a
// retry.
func (c *Client) GenerateExtraction(ctx context.Context, documentText string, strict bool) (string, error) {
	body, err := json.Marshal(request{
		Model: c.model,
		Messages: []message{
			{Role: "system", Content: systemPrompt(strict)},
			{Role: "user", Content: documentText},
		},
	})
	if err != nil {
		return "", fmt.Errorf("marshal extraction request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("build extraction request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", &extraction.UpstreamError{Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return "", &extraction.UpstreamError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%s", respBody),
		}
	}

	var parsed response
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &extraction.UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("decode response envelope: %w", err)}
	}
	if len(parsed.Choices) == 0 || parsed.Choices[0].Message.Content == "" {
		return "", &extraction.UpstreamError{Status: resp.StatusCode, Err: fmt.Errorf("empty completion")}
	}

	return parsed.Choices[0].Message.Content, nil
}
