// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/selectchat/chat-service/internal/core/docdb"
	"github.com/selectchat/chat-service/internal/domain/models"
)

// MockArchiveService is a mock implementation of archive.Service.
type MockArchiveService struct {
	mock.Mock
}

// SaveMessages archives messages for a conversation.
func (m *MockArchiveService) SaveMessages(ctx context.Context, conversationID string, messages []models.Message) error {
	args := m.Called(ctx, conversationID, messages)
	return args.Error(0)
}

// ListMessages lists archived messages.
func (m *MockArchiveService) ListMessages(ctx context.Context, conversationID string, limit, skip int64) ([]models.Message, error) {
	args := m.Called(ctx, conversationID, limit, skip)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// ListConversations lists archived conversations.
func (m *MockArchiveService) ListConversations(ctx context.Context, limit int64) ([]docdb.ConversationSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]docdb.ConversationSummary), args.Error(1)
}
