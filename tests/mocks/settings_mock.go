// Package mocks provides mock implementations for testing.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/selectchat/chat-service/internal/domain/models"
)

// MockSettingsService is a mock implementation of settings.Service.
type MockSettingsService struct {
	mock.Mock
}

// Features returns the feature catalog.
func (m *MockSettingsService) Features(ctx context.Context) []models.Feature {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).([]models.Feature)
}

// Feature resolves a feature by id.
func (m *MockSettingsService) Feature(ctx context.Context, id string) (models.Feature, bool) {
	args := m.Called(ctx, id)
	return args.Get(0).(models.Feature), args.Bool(1)
}

// SaveFeatures replaces the feature catalog.
func (m *MockSettingsService) SaveFeatures(ctx context.Context, features []models.Feature) error {
	args := m.Called(ctx, features)
	return args.Error(0)
}

// DefaultFeatureID returns the default feature id.
func (m *MockSettingsService) DefaultFeatureID(ctx context.Context) string {
	args := m.Called(ctx)
	return args.String(0)
}

// SetDefaultFeatureID stores the default feature id.
func (m *MockSettingsService) SetDefaultFeatureID(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// Providers returns the provider map.
func (m *MockSettingsService) Providers(ctx context.Context) map[string]models.ProviderSettings {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil
	}
	return args.Get(0).(map[string]models.ProviderSettings)
}

// SaveProviders replaces the provider map.
func (m *MockSettingsService) SaveProviders(ctx context.Context, providers map[string]models.ProviderSettings) error {
	args := m.Called(ctx, providers)
	return args.Error(0)
}

// Selection returns the selected provider names.
func (m *MockSettingsService) Selection(ctx context.Context) (string, string) {
	args := m.Called(ctx)
	return args.String(0), args.String(1)
}

// SetSelection stores the selected provider names.
func (m *MockSettingsService) SetSelection(ctx context.Context, chatProvider, reasoningProvider string) error {
	args := m.Called(ctx, chatProvider, reasoningProvider)
	return args.Error(0)
}

// ChatConfig resolves the active chat provider config.
func (m *MockSettingsService) ChatConfig(ctx context.Context) models.ProviderConfig {
	args := m.Called(ctx)
	return args.Get(0).(models.ProviderConfig)
}

// ReasoningConfig resolves the active reasoning provider config.
func (m *MockSettingsService) ReasoningConfig(ctx context.Context) models.ProviderConfig {
	args := m.Called(ctx)
	return args.Get(0).(models.ProviderConfig)
}
