// Package docdb defines the document database interface for the transcript
// archive.
package docdb

import (
	"context"
	"time"

	"github.com/selectchat/chat-service/internal/domain/models"
)

// SortOrder represents the sort direction for listings.
type SortOrder string

const (
	// SortOrderAsc represents ascending order.
	SortOrderAsc SortOrder = "asc"
	// SortOrderDesc represents descending order.
	SortOrderDesc SortOrder = "desc"
)

// ListMessagesOptions contains options for listing archived messages.
type ListMessagesOptions struct {
	ConversationID string
	Limit          int64
	Skip           int64
	OrderBy        SortOrder // Order by createdAt
}

// ConversationSummary describes one archived conversation.
type ConversationSummary struct {
	ConversationID string    `json:"conversationId" bson:"_id"`
	MessageCount   int64     `json:"messageCount" bson:"messageCount"`
	LastMessageAt  time.Time `json:"lastMessageAt" bson:"lastMessageAt"`
}

// TranscriptsCollection defines the interface for archived transcript
// operations. Messages are keyed by their id, so re-archiving a turn after
// an edit replaces the stored copy instead of duplicating it.
type TranscriptsCollection interface {
	// UpsertMessages writes the given messages for a conversation,
	// replacing any existing copies with the same id.
	UpsertMessages(ctx context.Context, conversationID string, messages []models.Message) error

	// ListMessages lists archived messages with pagination and sorting.
	ListMessages(ctx context.Context, opts *ListMessagesOptions) ([]models.Message, error)

	// ListConversations lists archived conversations, most recent first.
	ListConversations(ctx context.Context, limit int64) ([]ConversationSummary, error)

	// CountByConversation returns the count of archived messages in a
	// conversation.
	CountByConversation(ctx context.Context, conversationID string) (int64, error)

	// EnsureIndexes creates necessary indexes for the collection.
	EnsureIndexes(ctx context.Context) error
}
