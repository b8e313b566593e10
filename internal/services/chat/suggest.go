package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"

	"github.com/selectchat/chat-service/internal/services/provider"
	"github.com/selectchat/chat-service/internal/services/settings"
)

// Sampling overrides for the suggested-questions call.
const (
	suggestTemperature = 1.3
	suggestMaxTokens   = 100
)

// codeFencePattern strips markdown code fences some models wrap around the
// JSON array.
var codeFencePattern = regexp.MustCompile("```[^\n]*\n|```")

// Suggester generates follow-up question suggestions. Best-effort UI sugar:
// the orchestrator swallows every failure.
type Suggester struct {
	gateway  provider.Client
	settings settings.Service
}

// NewSuggester creates a suggester bound to the chat provider config.
func NewSuggester(gateway provider.Client, settings settings.Service) *Suggester {
	return &Suggester{
		gateway:  gateway,
		settings: settings,
	}
}

// Suggest asks the chat provider for follow-up questions to the given
// conversation content and parses the JSON array reply.
func (s *Suggester) Suggest(ctx context.Context, content string) ([]string, error) {
	cfg := s.settings.ChatConfig(ctx)
	cfg.Temperature = suggestTemperature
	cfg.MaxTokens = suggestMaxTokens

	reply, err := s.gateway.Complete(ctx, cfg, []provider.ChatMessage{
		{Role: "system", Content: suggestSystemPrompt},
		{Role: "user", Content: suggestUserPrompt(content)},
	})
	if err != nil {
		return nil, err
	}

	jsonString := strings.TrimSpace(codeFencePattern.ReplaceAllString(reply, ""))

	var questions []string
	if err := json.Unmarshal([]byte(jsonString), &questions); err != nil {
		return nil, fmt.Errorf("failed to parse questions: %w", err)
	}
	return questions, nil
}
