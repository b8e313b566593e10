package models

// NewChatFeatureID is the reserved sentinel identifying the feature-less
// "new chat" conversation context.
const NewChatFeatureID = "newChat"

// Feature is a reusable prompt configuration selectable as the active
// conversation context.
type Feature struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon"`
	// SystemPrompt is injected as the system turn at conversation start.
	SystemPrompt string `json:"systemPrompt"`
	// Instruction is prepended to the first user message of this feature's
	// conversation.
	Instruction string `json:"instruction"`
	Enabled     bool   `json:"enabled"`
	// EnableReasoning runs the reasoning stage before the response stage.
	EnableReasoning bool `json:"enableReasoning"`
}

// NewChatFeature returns the synthetic feature used for the new-chat
// context. It carries no instruction and never enables reasoning on its own.
func NewChatFeature() Feature {
	return Feature{
		ID:      NewChatFeatureID,
		Name:    "New Chat",
		Enabled: true,
	}
}

// IsNewChat reports whether the feature is the reserved new-chat context.
func (f Feature) IsNewChat() bool {
	return f.ID == NewChatFeatureID
}
