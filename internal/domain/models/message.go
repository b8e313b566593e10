// Package models contains domain models for the SelectChat Chat Service.
package models

import (
	"time"

	"github.com/google/uuid"
)

// MessageRole represents the role of a message sender.
//
// Role is authoritative. Earlier builds derived the role from an id suffix
// ("…-user" / "…-assistant"); ids are now opaque uuids and the suffix
// convention is gone.
type MessageRole string

const (
	// RoleUser represents a message from the user.
	RoleUser MessageRole = "user"
	// RoleAssistant represents a message from the assistant.
	RoleAssistant MessageRole = "assistant"
	// RoleSystem represents a system message.
	RoleSystem MessageRole = "system"
)

// Message represents one turn in a conversation.
type Message struct {
	ID        string      `json:"id" bson:"_id"`
	FeatureID string      `json:"featureId" bson:"featureId"`
	Role      MessageRole `json:"role" bson:"role"`
	Content   string      `json:"content" bson:"content"`
	// ReasoningContent holds the auxiliary thinking transcript, populated
	// only for assistant messages produced under reasoning mode.
	ReasoningContent string    `json:"reasoningContent,omitempty" bson:"reasoningContent,omitempty"`
	CreatedAt        time.Time `json:"createdAt" bson:"createdAt"`
	// Pending is true while an assistant message is awaiting or streaming
	// content. At most one message in a conversation is pending.
	Pending bool `json:"pending,omitempty" bson:"pending,omitempty"`
	// IsError marks a surfaced failure rather than model output. Error
	// messages render inline but never enter history windows.
	IsError bool `json:"isError,omitempty" bson:"isError,omitempty"`
}

// NewUserMessage creates a user message for the given feature context.
func NewUserMessage(featureID, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		FeatureID: featureID,
		Role:      RoleUser,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// NewAssistantMessage creates a completed assistant message, used when a
// caller records a reply directly instead of generating one.
func NewAssistantMessage(featureID, content string) Message {
	return Message{
		ID:        uuid.NewString(),
		FeatureID: featureID,
		Role:      RoleAssistant,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// NewPendingAssistantMessage creates the streaming placeholder appended
// before the response network call begins.
func NewPendingAssistantMessage(featureID string) Message {
	return Message{
		ID:        uuid.NewString(),
		FeatureID: featureID,
		Role:      RoleAssistant,
		CreatedAt: time.Now().UTC(),
		Pending:   true,
	}
}

// NewErrorMessage creates an assistant-side message carrying a failure
// description.
func NewErrorMessage(featureID, description string) Message {
	return Message{
		ID:        uuid.NewString(),
		FeatureID: featureID,
		Role:      RoleAssistant,
		Content:   description,
		CreatedAt: time.Now().UTC(),
		IsError:   true,
	}
}

// Settled reports whether the message participates in history windows:
// neither pending nor an error.
func (m Message) Settled() bool {
	return !m.Pending && !m.IsError
}

// MessagePatch is a typed partial update applied to one message by id.
// Nil fields are left untouched.
type MessagePatch struct {
	Content          *string
	ReasoningContent *string
	Pending          *bool
	IsError          *bool
}

// Apply returns a copy of the message with the patch applied.
func (p MessagePatch) Apply(m Message) Message {
	if p.Content != nil {
		m.Content = *p.Content
	}
	if p.ReasoningContent != nil {
		m.ReasoningContent = *p.ReasoningContent
	}
	if p.Pending != nil {
		m.Pending = *p.Pending
	}
	if p.IsError != nil {
		m.IsError = *p.IsError
	}
	return m
}

// StringPtr returns a pointer to s, for use in MessagePatch literals.
func StringPtr(s string) *string { return &s }

// BoolPtr returns a pointer to b, for use in MessagePatch literals.
func BoolPtr(b bool) *bool { return &b }
