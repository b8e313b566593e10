package chat

import (
	"sync"

	"github.com/google/uuid"

	"github.com/selectchat/chat-service/internal/domain/models"
)

// Snapshot is an immutable view of the conversation state handed to
// observers.
type Snapshot struct {
	ConversationID     string           `json:"conversationId"`
	Messages           []models.Message `json:"messages"`
	Feature            models.Feature   `json:"feature"`
	SuggestedQuestions []string         `json:"suggestedQuestions"`
	IsLoading          bool             `json:"isLoading"`
}

// Store is the shared, observable conversation state: the ordered message
// log, the current feature, the suggested follow-up questions and the
// loading flag. It is the single source of truth for what is rendered.
//
// Every message mutation is expressed as one atomic synchronous transform
// over the prior list snapshot (Update); no mutation interleaves with
// another. Observers subscribe for snapshots published after each change.
type Store struct {
	mu             sync.Mutex
	conversationID string
	messages       []models.Message
	feature        models.Feature
	suggested      []string
	loading        bool
	nextSubID      int
	subscribers    map[int]chan Snapshot
}

// NewStore creates a store positioned on the new-chat context.
func NewStore() *Store {
	return &Store{
		conversationID: uuid.NewString(),
		feature:        models.NewChatFeature(),
		subscribers:    make(map[int]chan Snapshot),
	}
}

// ConversationID identifies the conversation currently held by the store.
// Reset mints a fresh one.
func (s *Store) ConversationID() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.conversationID
}

// Reset starts a new conversation on the given feature: the message log and
// suggestions are cleared and a fresh conversation id is minted, all in one
// atomic step.
func (s *Store) Reset(feature models.Feature) {
	s.mu.Lock()
	s.conversationID = uuid.NewString()
	s.messages = nil
	s.suggested = nil
	s.feature = feature
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
}

// Update atomically replaces the message list with the result of fn applied
// to the current list. fn must be pure and synchronous: it receives a copy
// of the list and returns the full replacement.
func (s *Store) Update(fn func(messages []models.Message) []models.Message) {
	s.mu.Lock()
	s.messages = fn(copyMessages(s.messages))
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
}

// PatchMessage applies a typed partial update to the message with the given
// id, leaving the rest of the list untouched.
func (s *Store) PatchMessage(id string, patch models.MessagePatch) {
	s.Update(func(messages []models.Message) []models.Message {
		for i, msg := range messages {
			if msg.ID == id {
				messages[i] = patch.Apply(msg)
			}
		}
		return messages
	})
}

// Messages returns a copy of the current message list.
func (s *Store) Messages() []models.Message {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copyMessages(s.messages)
}

// Feature returns the current conversation feature.
func (s *Store) Feature() models.Feature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.feature
}

// SetFeature switches the current conversation feature.
func (s *Store) SetFeature(feature models.Feature) {
	s.mu.Lock()
	s.feature = feature
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
}

// SetSuggestedQuestions replaces the suggested questions wholesale.
func (s *Store) SetSuggestedQuestions(questions []string) {
	s.mu.Lock()
	s.suggested = append([]string(nil), questions...)
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
}

// ClearSuggestedQuestions drops all suggested questions.
func (s *Store) ClearSuggestedQuestions() {
	s.SetSuggestedQuestions(nil)
}

// SuggestedQuestions returns the current suggestions.
func (s *Store) SuggestedQuestions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.suggested...)
}

// TryBeginTurn claims the pipeline for one turn. The check and the flag
// flip happen under the same lock, so of two racing callers exactly one
// wins. The winner must call EndTurn when the turn finishes, on every path.
func (s *Store) TryBeginTurn() bool {
	s.mu.Lock()
	if s.loading {
		s.mu.Unlock()
		return false
	}
	s.loading = true
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
	return true
}

// EndTurn releases the claim taken by TryBeginTurn.
func (s *Store) EndTurn() {
	s.SetLoading(false)
}

// SetLoading flips the global loading flag.
func (s *Store) SetLoading(loading bool) {
	s.mu.Lock()
	s.loading = loading
	snapshot := s.snapshotLocked()
	s.mu.Unlock()

	s.publish(snapshot)
}

// IsLoading reports whether a turn is in flight. Callers gate submissions
// on this; the orchestrator holds no queue.
func (s *Store) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Snapshot returns the full current state.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// Subscribe registers an observer. The returned channel receives a snapshot
// after every state change; slow observers skip intermediate snapshots
// rather than block a mutation. The cancel function must be called when the
// observer goes away.
func (s *Store) Subscribe() (<-chan Snapshot, func()) {
	s.mu.Lock()
	id := s.nextSubID
	s.nextSubID++
	ch := make(chan Snapshot, 1)
	s.subscribers[id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if sub, ok := s.subscribers[id]; ok {
			delete(s.subscribers, id)
			close(sub)
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

// publish fans a snapshot out to subscribers. A full channel is drained
// first so the subscriber always sees the latest state.
func (s *Store) publish(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, ch := range s.subscribers {
		select {
		case ch <- snapshot:
		default:
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

func (s *Store) snapshotLocked() Snapshot {
	return Snapshot{
		ConversationID:     s.conversationID,
		Messages:           copyMessages(s.messages),
		Feature:            s.feature,
		SuggestedQuestions: append([]string(nil), s.suggested...),
		IsLoading:          s.loading,
	}
}

func copyMessages(messages []models.Message) []models.Message {
	out := make([]models.Message, len(messages))
	copy(out, messages)
	return out
}
