package chat

import (
	"context"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/selectchat/chat-service/internal/services/provider"
	"github.com/selectchat/chat-service/internal/services/settings"
)

// Think markers bracketing reasoning content inside a provider stream.
const (
	thinkOpenMarker  = "<think>"
	thinkCloseMarker = "</think>"
)

// Reasoner runs the optional reasoning pre-pass. It is fully self-contained
// on failure: any error is logged and surfaces as an empty transcript, never
// as an error to the caller.
type Reasoner struct {
	gateway  provider.Client
	settings settings.Service
	logger   zerolog.Logger
}

// NewReasoner creates a reasoning stage bound to the reasoning provider
// config.
func NewReasoner(gateway provider.Client, settings settings.Service) *Reasoner {
	return &Reasoner{
		gateway:  gateway,
		settings: settings,
		logger:   log.With().Str("component", "reasoning").Logger(),
	}
}

// Reason produces the thinking transcript for the given history. The history
// is rendered into a single synthetic user turn; system entries are skipped.
// Content inside the think markers is extracted and batched to onUpdate;
// everything after the closing marker is the provider's unrelated answer
// continuation, so the stream is abandoned there instead of drained.
func (r *Reasoner) Reason(ctx context.Context, history []provider.ChatMessage, onUpdate func(string)) string {
	cfg := r.settings.ReasoningConfig(ctx)

	reader, err := r.gateway.StreamComplete(ctx, cfg, []provider.ChatMessage{
		{Role: "system", Content: reasoningSystemPrompt},
		{Role: "user", Content: reasoningUserPrompt(history)},
	})
	if err != nil {
		r.logger.Warn().Err(err).Msg("reasoning request failed")
		return ""
	}
	defer reader.Close()

	batcher := NewBatcher(reasoningFlushWordCount, onUpdate)
	openStripped := false

	for {
		chunk, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			r.logger.Warn().Err(err).Msg("reasoning stream failed")
			return ""
		}

		content := chunk.Content
		if !openStripped {
			if idx := strings.Index(content, thinkOpenMarker); idx >= 0 {
				content = content[:idx] + content[idx+len(thinkOpenMarker):]
				openStripped = true
			}
		}

		if idx := strings.Index(content, thinkCloseMarker); idx >= 0 {
			// The provider embeds the whole answer after the closing
			// marker; stop consuming here instead of reading to EOF.
			batcher.Write(content[:idx])
			break
		}

		batcher.Write(content)
	}

	return batcher.Flush()
}
