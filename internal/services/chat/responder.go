package chat

import (
	"context"
	"fmt"
	"io"

	"github.com/selectchat/chat-service/internal/services/provider"
	"github.com/selectchat/chat-service/internal/services/settings"
)

// Responder runs the response stage: the final streamed assistant answer.
// Unlike the reasoning stage, failures here are fatal to the turn and
// propagate to the orchestrator.
type Responder struct {
	gateway  provider.Client
	settings settings.Service
}

// NewResponder creates a response stage bound to the chat provider config.
func NewResponder(gateway provider.Client, settings settings.Service) *Responder {
	return &Responder{
		gateway:  gateway,
		settings: settings,
	}
}

// Respond streams the completion for the given history, invoking onUpdate
// with the accumulated text on every flush. Returns the fully accumulated
// text.
func (r *Responder) Respond(ctx context.Context, history []provider.ChatMessage, onUpdate func(string)) (string, error) {
	cfg := r.settings.ChatConfig(ctx)

	reader, err := r.gateway.StreamComplete(ctx, cfg, history)
	if err != nil {
		return "", err
	}
	defer reader.Close()

	batcher := NewBatcher(chatFlushWordCount, onUpdate)

	for {
		chunk, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return "", fmt.Errorf("response stream failed: %w", err)
		}
		batcher.Write(chunk.Content)
	}

	return batcher.Flush(), nil
}
