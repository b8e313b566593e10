package chat

import (
	"context"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/selectchat/chat-service/internal/domain/models"
	"github.com/selectchat/chat-service/internal/services/archive"
	"github.com/selectchat/chat-service/internal/services/provider"
	"github.com/selectchat/chat-service/internal/services/settings"
)

// maxHistory caps how many settled messages from the log are sent upstream
// per turn.
const maxHistory = 10

// Orchestrator drives the conversation turn pipeline over the shared Store:
// append, optional reasoning pre-pass, streamed response, follow-up
// suggestions. One instance serves one conversation.
type Orchestrator struct {
	store     *Store
	settings  settings.Service
	reasoner  *Reasoner
	responder *Responder
	suggester *Suggester
	archive   archive.Service
	logger    zerolog.Logger
}

// Config holds the orchestrator dependencies.
type Config struct {
	Store    *Store
	Gateway  provider.Client
	Settings settings.Service
	// Archive receives finalized turns; nil disables archiving.
	Archive archive.Service
}

// NewOrchestrator wires the pipeline stages over a shared gateway and
// settings service.
func NewOrchestrator(cfg *Config) *Orchestrator {
	return &Orchestrator{
		store:     cfg.Store,
		settings:  cfg.Settings,
		reasoner:  NewReasoner(cfg.Gateway, cfg.Settings),
		responder: NewResponder(cfg.Gateway, cfg.Settings),
		suggester: NewSuggester(cfg.Gateway, cfg.Settings),
		archive:   cfg.Archive,
		logger:    log.With().Str("component", "orchestrator").Logger(),
	}
}

// Submit runs one conversation turn for the given content. asAssistant
// records the content as a completed assistant message without generating;
// isError records it as an error entry. In the new-chat context an empty
// content resets the conversation, and the very first message never
// generates a response.
func (o *Orchestrator) Submit(ctx context.Context, content string, asAssistant, isError bool) {
	o.store.ClearSuggestedQuestions()

	feature := o.store.Feature()

	if feature.IsNewChat() {
		o.submitNewChat(ctx, content, asAssistant, isError)
	} else {
		o.submitFeature(ctx, feature, content, asAssistant, isError)
	}

	o.suggestQuestions(ctx, content)
}

func (o *Orchestrator) submitNewChat(ctx context.Context, content string, asAssistant, isError bool) {
	if content == "" {
		// An empty submission in the new-chat context starts a fresh
		// conversation.
		o.store.Reset(models.NewChatFeature())
		return
	}

	o.appendMessage(content, asAssistant, isError)

	// The opening message of a fresh chat is recorded without a reply.
	if asAssistant || len(o.store.Messages()) <= 1 {
		return
	}

	o.generateResponse(ctx, models.NewChatFeatureID, content)
}

func (o *Orchestrator) submitFeature(ctx context.Context, feature models.Feature, content string, asAssistant, isError bool) {
	recorded := content
	if len(o.store.Messages()) == 0 && feature.Instruction != "" {
		recorded = feature.Instruction + "\n" + content
	}

	o.appendMessage(recorded, asAssistant, isError)

	if asAssistant {
		return
	}

	o.generateResponse(ctx, feature.ID, content)
}

func (o *Orchestrator) appendMessage(content string, asAssistant, isError bool) {
	featureID := o.store.Feature().ID

	var msg models.Message
	switch {
	case isError:
		msg = models.NewErrorMessage(featureID, content)
	case asAssistant:
		msg = models.NewAssistantMessage(featureID, content)
	default:
		msg = models.NewUserMessage(featureID, content)
	}

	o.store.Update(func(messages []models.Message) []models.Message {
		return append(messages, msg)
	})
}

// Regenerate discards the assistant reply containing messageID along with
// every later message, then replays the preceding user turn. Error entries
// above the cut point are purged as part of the same atomic update.
func (o *Orchestrator) Regenerate(ctx context.Context, messageID string) {
	o.store.ClearSuggestedQuestions()

	messages := o.store.Messages()

	idx := -1
	for i, msg := range messages {
		if msg.ID == messageID {
			idx = i
			break
		}
	}
	if idx < 0 {
		o.logger.Warn().Str("message_id", messageID).Msg("regenerate target not found")
		return
	}

	for idx >= 0 && messages[idx].Role == models.RoleAssistant {
		idx--
	}
	if idx < 0 {
		return
	}

	source := messages[idx]

	o.store.Update(func([]models.Message) []models.Message {
		kept := make([]models.Message, 0, idx+1)
		for _, msg := range messages[:idx+1] {
			if !msg.IsError {
				kept = append(kept, msg)
			}
		}
		return kept
	})

	o.generateResponse(ctx, source.FeatureID, source.Content)
	o.suggestQuestions(ctx, source.Content)
}

// EditMessage rewrites the content of an existing message in place.
func (o *Orchestrator) EditMessage(messageID, content string) {
	o.store.PatchMessage(messageID, models.MessagePatch{
		Content: models.StringPtr(content),
	})
}

// DeleteMessage removes a single message from the log.
func (o *Orchestrator) DeleteMessage(messageID string) {
	o.store.Update(func(messages []models.Message) []models.Message {
		kept := messages[:0]
		for _, msg := range messages {
			if msg.ID != messageID {
				kept = append(kept, msg)
			}
		}
		return kept
	})
}

// generateResponse runs the reasoning and response stages for one turn. The
// content guard mirrors the submit paths: a blank turn never reaches the
// provider. The loading flag belongs to whoever began the turn
// (Store.TryBeginTurn), not to this stage.
func (o *Orchestrator) generateResponse(ctx context.Context, featureID, content string) {
	if content == "" {
		return
	}

	pending := models.NewPendingAssistantMessage(featureID)
	o.store.Update(func(messages []models.Message) []models.Message {
		return append(messages, pending)
	})

	history := o.buildHistory()

	if o.store.Feature().EnableReasoning {
		reasoning := o.reasoner.Reason(ctx, history, func(partial string) {
			o.store.PatchMessage(pending.ID, models.MessagePatch{
				ReasoningContent: models.StringPtr(partial),
			})
		})
		if strings.TrimSpace(reasoning) != "" {
			history = append(history, provider.ChatMessage{
				Role:    "assistant",
				Content: reasoningTurn(reasoning),
			})
		}
	}

	final, err := o.responder.Respond(ctx, history, func(partial string) {
		o.store.PatchMessage(pending.ID, models.MessagePatch{
			Content: models.StringPtr(partial),
			Pending: models.BoolPtr(false),
		})
	})
	if err != nil {
		o.logger.Error().Err(err).Msg("response generation failed")
		o.failPending(pending.ID, featureID, err)
		return
	}

	o.store.PatchMessage(pending.ID, models.MessagePatch{
		Content: models.StringPtr(final),
		Pending: models.BoolPtr(false),
	})

	o.archiveTurn(ctx)
}

// failPending atomically replaces the in-flight assistant message with an
// error entry so the log never retains a stuck pending message.
func (o *Orchestrator) failPending(pendingID, featureID string, cause error) {
	errMsg := models.NewErrorMessage(featureID, cause.Error())

	o.store.Update(func(messages []models.Message) []models.Message {
		kept := messages[:0]
		for _, msg := range messages {
			if msg.ID != pendingID {
				kept = append(kept, msg)
			}
		}
		return append(kept, errMsg)
	})
}

// buildHistory renders the upstream message list: the feature system prompt
// followed by the last settled messages from the log.
func (o *Orchestrator) buildHistory() []provider.ChatMessage {
	feature := o.store.Feature()

	systemPrompt := feature.SystemPrompt
	if feature.IsNewChat() {
		systemPrompt = systemPromptNewChat
	}

	history := []provider.ChatMessage{{Role: "system", Content: systemPrompt}}

	settled := make([]models.Message, 0, maxHistory)
	for _, msg := range o.store.Messages() {
		if msg.Settled() {
			settled = append(settled, msg)
		}
	}
	if len(settled) > maxHistory {
		settled = settled[len(settled)-maxHistory:]
	}

	for _, msg := range settled {
		history = append(history, provider.ChatMessage{
			Role:    string(msg.Role),
			Content: msg.Content,
		})
	}
	return history
}

// suggestQuestions refreshes the follow-up suggestions after a completed
// turn. Failures are swallowed; suggestions are UI sugar, not pipeline state.
func (o *Orchestrator) suggestQuestions(ctx context.Context, content string) {
	if content == "" {
		return
	}

	hasReply := false
	for _, msg := range o.store.Messages() {
		if msg.Role == models.RoleAssistant && msg.Settled() {
			hasReply = true
			break
		}
	}
	if !hasReply {
		return
	}

	questions, err := o.suggester.Suggest(ctx, content)
	if err != nil {
		o.logger.Warn().Err(err).Msg("question suggestion failed")
		return
	}
	if len(questions) > 0 {
		o.store.SetSuggestedQuestions(questions)
	}
}

// archiveTurn persists the settled log best-effort after a successful turn.
// Turns are keyed by the store's conversation id, so conversations sharing a
// feature stay distinct in the archive.
func (o *Orchestrator) archiveTurn(ctx context.Context) {
	if o.archive == nil {
		return
	}

	conversationID := o.store.ConversationID()

	settled := make([]models.Message, 0)
	for _, msg := range o.store.Messages() {
		if msg.Settled() {
			settled = append(settled, msg)
		}
	}

	if err := o.archive.SaveMessages(ctx, conversationID, settled); err != nil {
		o.logger.Warn().Err(err).Str("conversation_id", conversationID).Msg("failed to archive conversation")
	}
}
