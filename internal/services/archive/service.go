// Package archive persists finalized conversation transcripts.
package archive

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/selectchat/chat-service/internal/core/docdb"
	"github.com/selectchat/chat-service/internal/domain/models"
)

// DefaultListLimit caps listings when the caller passes no limit.
const DefaultListLimit = 50

// Service defines transcript archive operations. Writes happen after each
// completed turn; reads serve the history API.
type Service interface {
	// SaveMessages archives the given messages under a conversation,
	// replacing earlier copies of the same messages.
	SaveMessages(ctx context.Context, conversationID string, messages []models.Message) error

	// ListMessages returns archived messages for a conversation in
	// transcript order.
	ListMessages(ctx context.Context, conversationID string, limit, skip int64) ([]models.Message, error)

	// ListConversations returns archived conversations, most recent first.
	ListConversations(ctx context.Context, limit int64) ([]docdb.ConversationSummary, error)
}

// Config holds the archive service dependencies.
type Config struct {
	DocDB docdb.Client
}

type service struct {
	docdb  docdb.Client
	logger zerolog.Logger
}

// NewService creates an archive service backed by the document database.
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config cannot be nil")
	}
	if cfg.DocDB == nil {
		return nil, fmt.Errorf("docdb client cannot be nil")
	}

	return &service{
		docdb:  cfg.DocDB,
		logger: log.With().Str("component", "archive").Logger(),
	}, nil
}

func (s *service) SaveMessages(ctx context.Context, conversationID string, messages []models.Message) error {
	if len(messages) == 0 {
		return nil
	}

	if err := s.docdb.Transcripts().UpsertMessages(ctx, conversationID, messages); err != nil {
		return fmt.Errorf("failed to save transcript: %w", err)
	}

	s.logger.Debug().
		Str("conversation_id", conversationID).
		Int("messages", len(messages)).
		Msg("transcript archived")

	return nil
}

func (s *service) ListMessages(ctx context.Context, conversationID string, limit, skip int64) ([]models.Message, error) {
	if conversationID == "" {
		return nil, fmt.Errorf("conversation ID is required")
	}
	if limit <= 0 {
		limit = DefaultListLimit
	}

	messages, err := s.docdb.Transcripts().ListMessages(ctx, &docdb.ListMessagesOptions{
		ConversationID: conversationID,
		Limit:          limit,
		Skip:           skip,
		OrderBy:        docdb.SortOrderAsc,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list transcript: %w", err)
	}

	return messages, nil
}

func (s *service) ListConversations(ctx context.Context, limit int64) ([]docdb.ConversationSummary, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}

	summaries, err := s.docdb.Transcripts().ListConversations(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list conversations: %w", err)
	}

	return summaries, nil
}
