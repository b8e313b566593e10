// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import (
	"github.com/selectchat/chat-service/internal/core/docdb"
	"github.com/selectchat/chat-service/internal/domain/models"
)

// ErrorResponse represents an error response.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// HealthResponse represents a health check response.
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// AcceptedResponse acknowledges an asynchronous submission.
type AcceptedResponse struct {
	Status string `json:"status"`
}

// SuggestionsResponse carries the current suggested follow-up questions.
type SuggestionsResponse struct {
	SuggestedQuestions []string `json:"suggestedQuestions"`
}

// FeaturesResponse carries the feature catalog and the default feature id.
type FeaturesResponse struct {
	Features         []models.Feature `json:"features"`
	DefaultFeatureID string           `json:"defaultFeatureId"`
}

// ProvidersResponse carries the provider map and the active selection.
type ProvidersResponse struct {
	Providers         map[string]models.ProviderSettings `json:"providers"`
	ChatProvider      string                             `json:"chatProvider"`
	ReasoningProvider string                             `json:"reasoningProvider"`
}

// TranscriptResponse lists archived messages for a conversation.
type TranscriptResponse struct {
	ConversationID string           `json:"conversationId"`
	Messages       []models.Message `json:"messages"`
	Total          int64            `json:"total"`
	Limit          int64            `json:"limit"`
	Offset         int64            `json:"offset"`
}

// ConversationsResponse lists archived conversations.
type ConversationsResponse struct {
	Conversations []docdb.ConversationSummary `json:"conversations"`
}
