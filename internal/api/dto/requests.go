// Package dto provides Data Transfer Objects for API requests and responses.
package dto

import "github.com/selectchat/chat-service/internal/domain/models"

// OpenConversationRequest starts a conversation in a feature context with an
// optional initial submission.
type OpenConversationRequest struct {
	FeatureID string `json:"featureId" binding:"required"`
	Content   string `json:"content"`
}

// SendMessageRequest represents the request body for submitting a message.
type SendMessageRequest struct {
	Content     string `json:"content" binding:"required,min=1,max=32000"`
	AsAssistant bool   `json:"asAssistant"`
}

// RegenerateRequest identifies the assistant message to regenerate.
type RegenerateRequest struct {
	MessageID string `json:"messageId" binding:"required"`
}

// EditMessageRequest carries the replacement content for a message.
type EditMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// SwitchFeatureRequest selects the conversation feature.
type SwitchFeatureRequest struct {
	FeatureID string `json:"featureId" binding:"required"`
}

// SaveFeaturesRequest replaces the feature catalog.
type SaveFeaturesRequest struct {
	Features []models.Feature `json:"features" binding:"required"`
}

// SetDefaultFeatureRequest stores the default feature id.
type SetDefaultFeatureRequest struct {
	FeatureID string `json:"featureId" binding:"required"`
}

// SaveProvidersRequest replaces the provider configuration map.
type SaveProvidersRequest struct {
	Providers map[string]models.ProviderSettings `json:"providers" binding:"required"`
}

// SetProviderSelectionRequest selects the active providers.
type SetProviderSelectionRequest struct {
	ChatProvider      string `json:"chatProvider" binding:"required"`
	ReasoningProvider string `json:"reasoningProvider" binding:"required"`
}
