package llm

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/wayfarer-ai/wayfarer/pkg/api"
)

// StreamEvent represents a parsed SSE event from the completion API.
type StreamEvent struct {
	Chunk *api.ChatCompletionChunk
	Done  bool
	Err   error
}

// StreamCompletion sends a streaming chat completion request and returns a
// channel of parsed SSE events. The channel is closed when the stream ends.
func (c *Client) StreamCompletion(ctx context.Context, req *api.ChatCompletionRequest) (<-chan StreamEvent, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit: %w", err)
	}

	req.Stream = true
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

	if resp.StatusCode != http.StatusOK {
		respBody, _ := io.ReadAll(resp.Body)
		resp.Body.Close()
		return nil, fmt.Errorf("completion API returned %d: %s", resp.StatusCode, string(respBody))
	}

	ch := make(chan StreamEvent)
	go func() {
		defer close(ch)
		defer resp.Body.Close()
		parseSSE(resp.Body, ch)
	}()
	return ch, nil
}

func parseSSE(r io.Reader, ch chan<- StreamEvent) {
	scanner := bufio.NewScanner(r)

	for scanner.Scan() {
		line := scanner.Text()
		if !strings.HasPrefix(line, "data: ") {
			continue
		}
		data := strings.TrimPrefix(line, "data: ")

		if data == "[DONE]" {
			ch <- StreamEvent{Done: true}
			return
		}

		var chunk api.ChatCompletionChunk
		if err := json.Unmarshal([]byte(data), &chunk); err != nil {
			ch <- StreamEvent{Err: err}
			return
		}
		ch <- StreamEvent{Chunk: &chunk}
	}

	if err := scanner.Err(); err != nil {
		ch <- StreamEvent{Err: err}
	}
}

// Accumulate collects streaming chunks into the complete response text.
func Accumulate(events <-chan StreamEvent) (string, error) {
	var content strings.Builder
	for ev := range events {
		if ev.Err != nil {
			return "", ev.Err
		}
		if ev.Done {
			break
		}
		if ev.Chunk == nil {
			continue
		}
		for _, choice := range ev.Chunk.Choices {
			if choice.Delta.Content != "" {
				content.WriteString(choice.Delta.Content)
			}
		}
	}
	return content.String(), nil
}
