// Package provider implements the gateway to OpenAI-compatible
// chat-completion endpoints.
package provider

// ChatMessage is one entry of the outbound messages array.
type ChatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// StreamChunk is one text delta read from a completion stream. Content may
// be the empty string for keep-alive or metadata-only chunks.
type StreamChunk struct {
	Content string
}

// StreamReader reads stream chunks one at a time. Read returns io.EOF when
// the stream ends. Close may be called before the stream is drained; the
// reasoning stage relies on this to stop consuming at the closing think
// marker.
type StreamReader interface {
	Read() (*StreamChunk, error)
	Close() error
}

// completionRequest is the chat-completion wire payload.
type completionRequest struct {
	Model            string        `json:"model"`
	Temperature      float64       `json:"temperature"`
	TopP             float64       `json:"top_p"`
	FrequencyPenalty float64       `json:"frequency_penalty"`
	PresencePenalty  float64       `json:"presence_penalty"`
	MaxTokens        int           `json:"max_tokens"`
	Messages         []ChatMessage `json:"messages"`
	Stream           bool          `json:"stream"`
}

// completionChunk is one streamed SSE event payload.
type completionChunk struct {
	Choices []struct {
		Delta struct {
			Content string `json:"content"`
		} `json:"delta"`
	} `json:"choices"`
}

// completionResponse is the non-streaming response payload.
type completionResponse struct {
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
	} `json:"choices"`
	Error *apiError `json:"error,omitempty"`
}

// apiError is the error payload some providers embed in a 200 response.
type apiError struct {
	Message string `json:"message"`
	Type    string `json:"type"`
}
