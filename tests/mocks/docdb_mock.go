// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/selectchat/chat-service/internal/core/docdb"
	"github.com/selectchat/chat-service/internal/domain/models"
)

// MockTranscriptsCollection is a mock implementation of
// docdb.TranscriptsCollection.
type MockTranscriptsCollection struct {
	mock.Mock
}

// UpsertMessages writes messages for a conversation.
func (m *MockTranscriptsCollection) UpsertMessages(ctx context.Context, conversationID string, messages []models.Message) error {
	args := m.Called(ctx, conversationID, messages)
	return args.Error(0)
}

// ListMessages lists archived messages.
func (m *MockTranscriptsCollection) ListMessages(ctx context.Context, opts *docdb.ListMessagesOptions) ([]models.Message, error) {
	args := m.Called(ctx, opts)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Message), args.Error(1)
}

// ListConversations lists archived conversations.
func (m *MockTranscriptsCollection) ListConversations(ctx context.Context, limit int64) ([]docdb.ConversationSummary, error) {
	args := m.Called(ctx, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]docdb.ConversationSummary), args.Error(1)
}

// CountByConversation counts archived messages in a conversation.
func (m *MockTranscriptsCollection) CountByConversation(ctx context.Context, conversationID string) (int64, error) {
	args := m.Called(ctx, conversationID)
	return args.Get(0).(int64), args.Error(1)
}

// EnsureIndexes creates collection indexes.
func (m *MockTranscriptsCollection) EnsureIndexes(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// MockDocDBClient is a mock implementation of docdb.Client.
type MockDocDBClient struct {
	mock.Mock
	transcripts *MockTranscriptsCollection
}

// NewMockDocDBClient creates a new MockDocDBClient.
func NewMockDocDBClient() *MockDocDBClient {
	return &MockDocDBClient{
		transcripts: &MockTranscriptsCollection{},
	}
}

// TranscriptsMock returns the underlying transcripts mock for expectations.
func (m *MockDocDBClient) TranscriptsMock() *MockTranscriptsCollection {
	return m.transcripts
}

// Transcripts returns the transcripts collection.
func (m *MockDocDBClient) Transcripts() docdb.TranscriptsCollection {
	return m.transcripts
}

// Ping verifies the database connection.
func (m *MockDocDBClient) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

// Close closes the database connection.
func (m *MockDocDBClient) Close(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
