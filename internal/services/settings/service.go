// Package settings provides access to the persisted extension settings:
// the feature catalog, provider configurations and provider selection.
package settings

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/selectchat/chat-service/internal/core/kv"
	"github.com/selectchat/chat-service/internal/domain/models"
	"github.com/selectchat/chat-service/internal/pkg/encryption"
)

// DefaultProviderName is used when no provider selection has been stored.
const DefaultProviderName = "OpenAI"

// Service reads and writes the persisted settings. Readers never fail on
// missing or malformed values; they fall back to built-in defaults so the
// pipeline only ever errors on the network call itself.
type Service interface {
	// Features returns the stored feature catalog, or an empty catalog.
	Features(ctx context.Context) []models.Feature

	// Feature returns the feature with the given id. The reserved new-chat
	// id always resolves. The second result reports whether it was found.
	Feature(ctx context.Context, id string) (models.Feature, bool)

	// SaveFeatures replaces the stored feature catalog.
	SaveFeatures(ctx context.Context, features []models.Feature) error

	// DefaultFeatureID returns the stored default feature id, or the
	// new-chat sentinel.
	DefaultFeatureID(ctx context.Context) string

	// SetDefaultFeatureID stores the default feature id.
	SetDefaultFeatureID(ctx context.Context, id string) error

	// Providers returns the stored provider map with API keys decrypted,
	// falling back to the built-in presets.
	Providers(ctx context.Context) map[string]models.ProviderSettings

	// SaveProviders replaces the stored provider map, encrypting API keys.
	SaveProviders(ctx context.Context, providers map[string]models.ProviderSettings) error

	// Selection returns the selected chat and reasoning provider names.
	Selection(ctx context.Context) (chatProvider, reasoningProvider string)

	// SetSelection stores the selected provider names.
	SetSelection(ctx context.Context, chatProvider, reasoningProvider string) error

	// ChatConfig resolves the active chat-completion provider config.
	ChatConfig(ctx context.Context) models.ProviderConfig

	// ReasoningConfig resolves the active reasoning provider config.
	ReasoningConfig(ctx context.Context) models.ProviderConfig
}

// Config holds the dependencies for the settings service.
type Config struct {
	Store     kv.Store
	Encryptor encryption.Encryptor
}

// service implements the Service interface.
type service struct {
	store     kv.Store
	encryptor encryption.Encryptor
	logger    zerolog.Logger
}

// NewService creates a new settings service.
func NewService(cfg *Config) (Service, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if cfg.Store == nil {
		return nil, fmt.Errorf("kv store is required")
	}
	if cfg.Encryptor == nil {
		return nil, fmt.Errorf("encryptor is required")
	}

	return &service{
		store:     cfg.Store,
		encryptor: cfg.Encryptor,
		logger:    log.With().Str("component", "settings").Logger(),
	}, nil
}

// Features returns the stored feature catalog.
func (s *service) Features(ctx context.Context) []models.Feature {
	var features []models.Feature
	if !s.getJSON(ctx, kv.KeyFeatures, &features) {
		return []models.Feature{}
	}
	return features
}

// Feature resolves a feature by id.
func (s *service) Feature(ctx context.Context, id string) (models.Feature, bool) {
	if id == models.NewChatFeatureID {
		return models.NewChatFeature(), true
	}
	for _, f := range s.Features(ctx) {
		if f.ID == id {
			return f, true
		}
	}
	return models.Feature{}, false
}

// SaveFeatures replaces the stored feature catalog.
func (s *service) SaveFeatures(ctx context.Context, features []models.Feature) error {
	return s.setJSON(ctx, kv.KeyFeatures, features)
}

// DefaultFeatureID returns the stored default feature id.
func (s *service) DefaultFeatureID(ctx context.Context) string {
	raw, err := s.store.Get(ctx, kv.KeyDefaultFeature)
	if err != nil || len(raw) == 0 {
		return models.NewChatFeatureID
	}
	return string(raw)
}

// SetDefaultFeatureID stores the default feature id.
func (s *service) SetDefaultFeatureID(ctx context.Context, id string) error {
	if err := s.store.Set(ctx, kv.KeyDefaultFeature, []byte(id)); err != nil {
		return fmt.Errorf("failed to store default feature: %w", err)
	}
	return nil
}

// Providers returns the stored provider map with API keys decrypted.
func (s *service) Providers(ctx context.Context) map[string]models.ProviderSettings {
	var providers map[string]models.ProviderSettings
	if !s.getJSON(ctx, kv.KeyProvidersConfig, &providers) || len(providers) == 0 {
		return models.DefaultProviders()
	}

	for name, settings := range providers {
		settings.ChatConfig.APIKey = s.decryptKey(settings.ChatConfig.APIKey)
		settings.ReasoningConfig.APIKey = s.decryptKey(settings.ReasoningConfig.APIKey)
		providers[name] = settings
	}
	return providers
}

// SaveProviders replaces the stored provider map, encrypting API keys.
func (s *service) SaveProviders(ctx context.Context, providers map[string]models.ProviderSettings) error {
	encrypted := make(map[string]models.ProviderSettings, len(providers))
	for name, settings := range providers {
		chatKey, err := s.encryptor.EncryptString(settings.ChatConfig.APIKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt chat API key: %w", err)
		}
		reasoningKey, err := s.encryptor.EncryptString(settings.ReasoningConfig.APIKey)
		if err != nil {
			return fmt.Errorf("failed to encrypt reasoning API key: %w", err)
		}
		settings.ChatConfig.APIKey = chatKey
		settings.ReasoningConfig.APIKey = reasoningKey
		encrypted[name] = settings
	}
	return s.setJSON(ctx, kv.KeyProvidersConfig, encrypted)
}

// Selection returns the selected chat and reasoning provider names.
func (s *service) Selection(ctx context.Context) (string, string) {
	chatProvider := s.getString(ctx, kv.KeyChatProvider, DefaultProviderName)
	reasoningProvider := s.getString(ctx, kv.KeyReasoningProvider, DefaultProviderName)
	return chatProvider, reasoningProvider
}

// SetSelection stores the selected provider names.
func (s *service) SetSelection(ctx context.Context, chatProvider, reasoningProvider string) error {
	if err := s.store.Set(ctx, kv.KeyChatProvider, []byte(chatProvider)); err != nil {
		return fmt.Errorf("failed to store chat provider: %w", err)
	}
	if err := s.store.Set(ctx, kv.KeyReasoningProvider, []byte(reasoningProvider)); err != nil {
		return fmt.Errorf("failed to store reasoning provider: %w", err)
	}
	return nil
}

// ChatConfig resolves the active chat-completion provider config.
func (s *service) ChatConfig(ctx context.Context) models.ProviderConfig {
	chatProvider, _ := s.Selection(ctx)
	settings, ok := s.Providers(ctx)[chatProvider]
	if !ok {
		settings = models.DefaultProviders()[DefaultProviderName]
	}
	return settings.ChatConfig
}

// ReasoningConfig resolves the active reasoning provider config.
func (s *service) ReasoningConfig(ctx context.Context) models.ProviderConfig {
	_, reasoningProvider := s.Selection(ctx)
	settings, ok := s.Providers(ctx)[reasoningProvider]
	if !ok {
		settings = models.DefaultProviders()[DefaultProviderName]
	}
	return settings.ReasoningConfig
}

// getJSON unmarshals the value stored under key into v. Missing keys and
// malformed values are treated as absent, never as errors.
func (s *service) getJSON(ctx context.Context, key string, v interface{}) bool {
	raw, err := s.store.Get(ctx, key)
	if err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("failed to read setting, using defaults")
		return false
	}
	if len(raw) == 0 {
		return false
	}
	if err := json.Unmarshal(raw, v); err != nil {
		s.logger.Warn().Err(err).Str("key", key).Msg("malformed setting, using defaults")
		return false
	}
	return true
}

// setJSON marshals v and stores it under key.
func (s *service) setJSON(ctx context.Context, key string, v interface{}) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal %s: %w", key, err)
	}
	if err := s.store.Set(ctx, key, data); err != nil {
		return fmt.Errorf("failed to store %s: %w", key, err)
	}
	return nil
}

// getString reads a plain string value with a fallback.
func (s *service) getString(ctx context.Context, key, fallback string) string {
	raw, err := s.store.Get(ctx, key)
	if err != nil || len(raw) == 0 {
		return fallback
	}
	return string(raw)
}

// decryptKey decrypts a stored API key, returning it unchanged when
// decryption fails (e.g. the key predates encryption).
func (s *service) decryptKey(value string) string {
	if value == "" {
		return value
	}
	plain, err := s.encryptor.DecryptString(value)
	if err != nil {
		return value
	}
	return plain
}
