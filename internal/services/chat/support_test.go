package chat

import (
	"context"
	"io"
	"sync"

	"github.com/selectchat/chat-service/internal/domain/models"
	"github.com/selectchat/chat-service/internal/services/provider"
)

// fakeStream replays scripted chunks and then reports EOF or a scripted
// error.
type fakeStream struct {
	chunks  []string
	readErr error
	closed  bool
}

func (s *fakeStream) Read() (*provider.StreamChunk, error) {
	if len(s.chunks) == 0 {
		if s.readErr != nil {
			return nil, s.readErr
		}
		return nil, io.EOF
	}
	content := s.chunks[0]
	s.chunks = s.chunks[1:]
	return &provider.StreamChunk{Content: content}, nil
}

func (s *fakeStream) Close() error {
	s.closed = true
	return nil
}

// gatewayCall records one gateway invocation.
type gatewayCall struct {
	kind     string // "stream" or "complete"
	cfg      models.ProviderConfig
	messages []provider.ChatMessage
}

// scriptedGateway serves prepared streams in order and records every call.
type scriptedGateway struct {
	mu           sync.Mutex
	streams      []*fakeStream
	streamErrs   []error
	completeText string
	completeErr  error
	calls        []gatewayCall
}

func (g *scriptedGateway) StreamComplete(_ context.Context, cfg models.ProviderConfig, messages []provider.ChatMessage) (provider.StreamReader, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, gatewayCall{kind: "stream", cfg: cfg, messages: messages})

	if len(g.streamErrs) > 0 {
		err := g.streamErrs[0]
		g.streamErrs = g.streamErrs[1:]
		if err != nil {
			return nil, err
		}
	}

	if len(g.streams) == 0 {
		return &fakeStream{}, nil
	}
	stream := g.streams[0]
	g.streams = g.streams[1:]
	return stream, nil
}

func (g *scriptedGateway) Complete(_ context.Context, cfg models.ProviderConfig, messages []provider.ChatMessage) (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	g.calls = append(g.calls, gatewayCall{kind: "complete", cfg: cfg, messages: messages})
	return g.completeText, g.completeErr
}

func (g *scriptedGateway) recordedCalls() []gatewayCall {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]gatewayCall, len(g.calls))
	copy(out, g.calls)
	return out
}

// stubSettings serves fixed provider configs without a backing store.
type stubSettings struct {
	chatCfg      models.ProviderConfig
	reasoningCfg models.ProviderConfig
	features     []models.Feature
}

func newStubSettings() *stubSettings {
	return &stubSettings{
		chatCfg:      models.ProviderConfig{Provider: "Test", APIURL: "https://test.invalid", Model: "chat-model"},
		reasoningCfg: models.ProviderConfig{Provider: "Test", APIURL: "https://test.invalid", Model: "reasoning-model"},
	}
}

func (s *stubSettings) Features(context.Context) []models.Feature { return s.features }

func (s *stubSettings) Feature(_ context.Context, id string) (models.Feature, bool) {
	if id == models.NewChatFeatureID {
		return models.NewChatFeature(), true
	}
	for _, f := range s.features {
		if f.ID == id {
			return f, true
		}
	}
	return models.Feature{}, false
}

func (s *stubSettings) SaveFeatures(_ context.Context, features []models.Feature) error {
	s.features = features
	return nil
}

func (s *stubSettings) DefaultFeatureID(context.Context) string { return models.NewChatFeatureID }

func (s *stubSettings) SetDefaultFeatureID(context.Context, string) error { return nil }

func (s *stubSettings) Providers(context.Context) map[string]models.ProviderSettings {
	return map[string]models.ProviderSettings{
		"Test": {ChatConfig: s.chatCfg, ReasoningConfig: s.reasoningCfg},
	}
}

func (s *stubSettings) SaveProviders(context.Context, map[string]models.ProviderSettings) error {
	return nil
}

func (s *stubSettings) Selection(context.Context) (string, string) { return "Test", "Test" }

func (s *stubSettings) SetSelection(context.Context, string, string) error { return nil }

func (s *stubSettings) ChatConfig(context.Context) models.ProviderConfig { return s.chatCfg }

func (s *stubSettings) ReasoningConfig(context.Context) models.ProviderConfig {
	return s.reasoningCfg
}

// newTestOrchestrator wires an orchestrator over a fresh store and the given
// gateway.
func newTestOrchestrator(gateway *scriptedGateway) (*Orchestrator, *Store) {
	store := NewStore()
	orch := NewOrchestrator(&Config{
		Store:    store,
		Gateway:  gateway,
		Settings: newStubSettings(),
	})
	return orch, store
}
