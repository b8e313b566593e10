package chat

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selectchat/chat-service/internal/domain/models"
)

func TestStoreStartsOnNewChat(t *testing.T) {
	s := NewStore()

	assert.True(t, s.Feature().IsNewChat())
	assert.Empty(t, s.Messages())
	assert.False(t, s.IsLoading())
}

func TestStoreUpdateReplacesList(t *testing.T) {
	// Arrange
	s := NewStore()
	msg := models.NewUserMessage(models.NewChatFeatureID, "hello")

	// Act
	s.Update(func(messages []models.Message) []models.Message {
		return append(messages, msg)
	})

	// Assert
	messages := s.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, msg.ID, messages[0].ID)
}

func TestStoreMessagesReturnsCopy(t *testing.T) {
	// Arrange
	s := NewStore()
	s.Update(func(messages []models.Message) []models.Message {
		return append(messages, models.NewUserMessage(models.NewChatFeatureID, "hello"))
	})

	// Act
	snapshot := s.Messages()
	snapshot[0].Content = "mutated"

	// Assert
	assert.Equal(t, "hello", s.Messages()[0].Content)
}

func TestStorePatchMessage(t *testing.T) {
	// Arrange
	s := NewStore()
	pending := models.NewPendingAssistantMessage(models.NewChatFeatureID)
	s.Update(func(messages []models.Message) []models.Message {
		return append(messages, pending)
	})

	// Act
	s.PatchMessage(pending.ID, models.MessagePatch{
		Content: models.StringPtr("partial text"),
		Pending: models.BoolPtr(false),
	})

	// Assert
	messages := s.Messages()
	require.Len(t, messages, 1)
	assert.Equal(t, "partial text", messages[0].Content)
	assert.False(t, messages[0].Pending)
}

func TestStorePatchUnknownIDLeavesListUntouched(t *testing.T) {
	// Arrange
	s := NewStore()
	msg := models.NewUserMessage(models.NewChatFeatureID, "hello")
	s.Update(func(messages []models.Message) []models.Message {
		return append(messages, msg)
	})

	// Act
	s.PatchMessage("missing", models.MessagePatch{Content: models.StringPtr("changed")})

	// Assert
	assert.Equal(t, "hello", s.Messages()[0].Content)
}

func TestStoreTryBeginTurnIsExclusive(t *testing.T) {
	// Arrange
	s := NewStore()

	// Act / Assert: only the first claim wins until it is released
	assert.True(t, s.TryBeginTurn())
	assert.True(t, s.IsLoading())
	assert.False(t, s.TryBeginTurn())

	s.EndTurn()
	assert.False(t, s.IsLoading())
	assert.True(t, s.TryBeginTurn())
}

func TestStoreResetStartsFreshConversation(t *testing.T) {
	// Arrange
	s := NewStore()
	s.Update(func(messages []models.Message) []models.Message {
		return append(messages, models.NewUserMessage(models.NewChatFeatureID, "old"))
	})
	s.SetSuggestedQuestions([]string{"stale"})
	previousID := s.ConversationID()
	feature := models.Feature{ID: "summarize", Name: "Summarize"}

	// Act
	s.Reset(feature)

	// Assert
	assert.Empty(t, s.Messages())
	assert.Empty(t, s.SuggestedQuestions())
	assert.Equal(t, feature, s.Feature())
	assert.NotEqual(t, previousID, s.ConversationID())
}

func TestStoreSubscribeReceivesSnapshots(t *testing.T) {
	// Arrange
	s := NewStore()
	ch, cancel := s.Subscribe()
	defer cancel()

	// Act
	s.SetLoading(true)

	// Assert
	snapshot := <-ch
	assert.True(t, snapshot.IsLoading)
}

func TestStoreSlowSubscriberSeesLatestState(t *testing.T) {
	// Arrange
	s := NewStore()
	ch, cancel := s.Subscribe()
	defer cancel()

	// Act: two mutations without a read in between
	s.SetSuggestedQuestions([]string{"first"})
	s.SetSuggestedQuestions([]string{"second"})

	// Assert: the buffered snapshot is the most recent one
	snapshot := <-ch
	assert.Equal(t, []string{"second"}, snapshot.SuggestedQuestions)
}

func TestStoreSuggestedQuestionsLifecycle(t *testing.T) {
	s := NewStore()

	s.SetSuggestedQuestions([]string{"q1", "q2"})
	assert.Equal(t, []string{"q1", "q2"}, s.SuggestedQuestions())

	s.ClearSuggestedQuestions()
	assert.Empty(t, s.SuggestedQuestions())
}

func TestStoreSnapshotIsConsistent(t *testing.T) {
	// Arrange
	s := NewStore()
	feature := models.Feature{ID: "summarize", Name: "Summarize"}
	s.SetFeature(feature)
	s.Update(func(messages []models.Message) []models.Message {
		return append(messages, models.NewUserMessage(feature.ID, "hello"))
	})
	s.SetLoading(true)

	// Act
	snapshot := s.Snapshot()

	// Assert
	assert.Equal(t, feature, snapshot.Feature)
	assert.Len(t, snapshot.Messages, 1)
	assert.True(t, snapshot.IsLoading)
}
