// Package testutils provides test utilities and helpers.
package testutils

import (
	"github.com/selectchat/chat-service/internal/domain/models"
)

// SampleFeature returns a feature fixture with reasoning disabled.
func SampleFeature() models.Feature {
	return models.Feature{
		ID:           "summarize",
		Name:         "Summarize",
		Icon:         "notes",
		SystemPrompt: "You summarize text the user selected.",
		Instruction:  "Summarize the following text:",
		Enabled:      true,
	}
}

// SampleReasoningFeature returns a feature fixture with reasoning enabled.
func SampleReasoningFeature() models.Feature {
	f := SampleFeature()
	f.ID = "analyze"
	f.Name = "Analyze"
	f.SystemPrompt = "You analyze text the user selected."
	f.Instruction = "Analyze the following text:"
	f.EnableReasoning = true
	return f
}

// SampleProviderSettings returns a provider settings fixture.
func SampleProviderSettings() models.ProviderSettings {
	return models.ProviderSettings{
		ChatConfig: models.ProviderConfig{
			Provider: "TestProvider",
			APIURL:   "https://api.test.invalid/v1",
			APIKey:   "test-key",
			Model:    "test-chat-model",
		},
		ReasoningConfig: models.ProviderConfig{
			Provider: "TestProvider",
			APIURL:   "https://api.test.invalid/v1",
			APIKey:   "test-key",
			Model:    "test-reasoning-model",
		},
	}
}

// SampleConversation returns a settled user/assistant exchange.
func SampleConversation(featureID string) []models.Message {
	user := models.NewUserMessage(featureID, "What does this selection mean?")
	assistant := models.NewAssistantMessage(featureID, "It describes the parsing rules.")
	return []models.Message{user, assistant}
}
