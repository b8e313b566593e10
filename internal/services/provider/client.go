package provider

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/selectchat/chat-service/internal/domain/models"
)

// Client defines the gateway contract. It holds no state between calls and
// performs no retries; a network or protocol error propagates to the caller
// immediately.
type Client interface {
	// StreamComplete opens a streaming chat completion and returns a reader
	// of text deltas.
	StreamComplete(ctx context.Context, cfg models.ProviderConfig, messages []ChatMessage) (StreamReader, error)

	// Complete performs a non-streaming chat completion and returns the
	// full assistant content.
	Complete(ctx context.Context, cfg models.ProviderConfig, messages []ChatMessage) (string, error)
}

// HTTPClient implements Client over plain HTTP with SSE response parsing.
type HTTPClient struct {
	httpClient *http.Client
}

// NewHTTPClient creates a gateway client. A nil httpClient gets a default
// with a long timeout suitable for streaming.
func NewHTTPClient(httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{
			Timeout: 5 * time.Minute, // Longer timeout for streaming
		}
	}
	return &HTTPClient{httpClient: httpClient}
}

// StreamComplete opens a streaming completion against cfg's endpoint.
func (c *HTTPClient) StreamComplete(ctx context.Context, cfg models.ProviderConfig, messages []ChatMessage) (StreamReader, error) {
	resp, err := c.post(ctx, cfg, messages, true)
	if err != nil {
		return nil, err
	}

	scanner := bufio.NewScanner(resp.Body)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	return &sseStreamReader{
		response: resp,
		scanner:  scanner,
	}, nil
}

// Complete performs a non-streaming completion.
func (c *HTTPClient) Complete(ctx context.Context, cfg models.ProviderConfig, messages []ChatMessage) (string, error) {
	resp, err := c.post(ctx, cfg, messages, false)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var completion completionResponse
	if err := json.NewDecoder(resp.Body).Decode(&completion); err != nil {
		return "", fmt.Errorf("failed to decode completion response: %w", err)
	}

	if completion.Error != nil {
		return "", fmt.Errorf("provider error: %s", completion.Error.Message)
	}
	if len(completion.Choices) == 0 {
		return "", fmt.Errorf("empty response from provider")
	}

	return completion.Choices[0].Message.Content, nil
}

// post builds and executes the chat-completion request.
func (c *HTTPClient) post(ctx context.Context, cfg models.ProviderConfig, messages []ChatMessage, stream bool) (*http.Response, error) {
	if cfg.APIURL == "" {
		return nil, fmt.Errorf("provider API URL is required")
	}

	cfg = cfg.WithDefaults(models.ProviderConfig{})

	payload := &completionRequest{
		Model:            cfg.Model,
		Temperature:      cfg.Temperature,
		TopP:             cfg.TopP,
		FrequencyPenalty: cfg.FrequencyPenalty,
		PresencePenalty:  cfg.PresencePenalty,
		MaxTokens:        cfg.MaxTokens,
		Messages:         messages,
		Stream:           stream,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	url := strings.TrimSuffix(cfg.APIURL, "/") + "/chat/completions"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewBuffer(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	httpReq.Header.Set("Content-Type", "application/json")
	if stream {
		httpReq.Header.Set("Accept", "text/event-stream")
	}
	if cfg.APIKey != "" {
		httpReq.Header.Set("Authorization", "Bearer "+cfg.APIKey)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		resp.Body.Close()
		return nil, fmt.Errorf("unexpected status code %d: %s", resp.StatusCode, strings.TrimSpace(string(detail)))
	}

	return resp, nil
}

// sseStreamReader implements StreamReader over an SSE response body.
type sseStreamReader struct {
	response *http.Response
	scanner  *bufio.Scanner
	closed   bool
}

// Read reads the next content delta from the stream.
func (r *sseStreamReader) Read() (*StreamChunk, error) {
	if r.closed {
		return nil, io.EOF
	}

	for r.scanner.Scan() {
		line := r.scanner.Text()
		if line == "" {
			continue
		}

		// Handle data lines - can be "data: {...}" or bare JSON
		var jsonData string
		if strings.HasPrefix(line, "data: ") {
			jsonData = strings.TrimPrefix(line, "data: ")
		} else if strings.HasPrefix(line, "{") {
			jsonData = line
		} else {
			continue
		}

		if jsonData == "[DONE]" {
			return nil, io.EOF
		}

		var chunk completionChunk
		if err := json.Unmarshal([]byte(jsonData), &chunk); err != nil {
			// Skip malformed events
			continue
		}

		if len(chunk.Choices) == 0 {
			continue
		}

		return &StreamChunk{Content: chunk.Choices[0].Delta.Content}, nil
	}

	if err := r.scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanner error: %w", err)
	}

	return nil, io.EOF
}

// Close closes the underlying response body. Safe to call mid-stream.
func (r *sseStreamReader) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	if r.response != nil && r.response.Body != nil {
		return r.response.Body.Close()
	}
	return nil
}
