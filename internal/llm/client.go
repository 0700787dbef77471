// Package llm provides a typed client for the Groq chat-completion API
// (OpenAI-compatible) with circuit breaking and rate limiting.
package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/wayfarer-ai/wayfarer/pkg/api"
)

// Model identifiers. The service uses a fast model for summaries and
// suggestions and a smart model for user-facing replies.
const (
	ModelFast    = "llama-3.1-8b-instant"
	ModelSmart   = "llama-3.1-70b-versatile"
	ModelDefault = ModelSmart
)

// CompleteOptions are per-call generation parameters.
type CompleteOptions struct {
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
}

// Client is a typed HTTP client for the Groq completion API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	breaker    *CircuitBreaker
	limiter    *rate.Limiter
}

// New creates a new Client. baseURL is the OpenAI-compatible API root,
// e.g. "https://api.groq.com/openai/v1".
func New(baseURL, apiKey string) *Client {
	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 60 * time.Second},
		breaker:    NewCircuitBreaker(),
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
	}
}

// BaseURL returns the API base URL.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Models returns the available model identifiers keyed by tier.
func (c *Client) Models() map[string]string {
	return map[string]string{
		"fast":    ModelFast,
		"smart":   ModelSmart,
		"default": ModelDefault,
	}
}

// ChatCompletion sends a non-streaming chat completion request.
// Calls pass through the rate limiter and circuit breaker.
func (c *Client) ChatCompletion(ctx context.Context, req *api.ChatCompletionRequest) (*api.ChatCompletionResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	result, err := c.breaker.Execute(ctx, func() (interface{}, error) {
		return c.doChatCompletion(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return result.(*api.ChatCompletionResponse), nil
}

func (c *Client) doChatCompletion(ctx context.Context, req *api.ChatCompletionRequest) (*api.ChatCompletionResponse, error) {
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if c.apiKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+c.apiKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("completion API returned %d: %s", resp.StatusCode, string(respBody))
	}

	var result api.ChatCompletionResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	if len(result.Choices) == 0 {
		return nil, fmt.Errorf("empty response from model")
	}
	return &result, nil
}

// Complete is a convenience wrapper returning the trimmed text of the first choice.
func (c *Client) Complete(ctx context.Context, messages []api.Message, opts CompleteOptions) (string, error) {
	if opts.Model == "" {
		opts.Model = ModelDefault
	}

	req := &api.ChatCompletionRequest{
		Model:    opts.Model,
		Messages: messages,
	}
	if opts.MaxTokens > 0 {
		req.MaxTokens = &opts.MaxTokens
	}
	if opts.Temperature > 0 {
		req.Temperature = &opts.Temperature
	}
	if opts.TopP > 0 {
		req.TopP = &opts.TopP
	}

	resp, err := c.ChatCompletion(ctx, req)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(resp.Choices[0].Message.Content), nil
}

// TestConnection verifies the completion API is reachable with a trivial call.
func (c *Client) TestConnection(ctx context.Context) bool {
	maxTokens := 10
	req := &api.ChatCompletionRequest{
		Model:     ModelFast,
		Messages:  []api.Message{{Role: "user", Content: "Hello"}},
		MaxTokens: &maxTokens,
	}
	_, err := c.ChatCompletion(ctx, req)
	return err == nil
}
