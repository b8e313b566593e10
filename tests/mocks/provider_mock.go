// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/selectchat/chat-service/internal/domain/models"
	"github.com/selectchat/chat-service/internal/services/provider"
)

// MockProviderClient is a mock implementation of provider.Client.
type MockProviderClient struct {
	mock.Mock
}

// StreamComplete opens a streaming completion.
func (m *MockProviderClient) StreamComplete(ctx context.Context, cfg models.ProviderConfig, messages []provider.ChatMessage) (provider.StreamReader, error) {
	args := m.Called(ctx, cfg, messages)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(provider.StreamReader), args.Error(1)
}

// Complete performs a non-streaming completion.
func (m *MockProviderClient) Complete(ctx context.Context, cfg models.ProviderConfig, messages []provider.ChatMessage) (string, error) {
	args := m.Called(ctx, cfg, messages)
	return args.String(0), args.Error(1)
}

// MockStreamReader is a mock implementation of provider.StreamReader.
type MockStreamReader struct {
	mock.Mock
}

// Read returns the next stream chunk.
func (m *MockStreamReader) Read() (*provider.StreamChunk, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*provider.StreamChunk), args.Error(1)
}

// Close closes the stream.
func (m *MockStreamReader) Close() error {
	args := m.Called()
	return args.Error(0)
}
