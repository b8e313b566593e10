package settings_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/selectchat/chat-service/internal/core/kv"
	"github.com/selectchat/chat-service/internal/domain/models"
	"github.com/selectchat/chat-service/internal/pkg/encryption"
	"github.com/selectchat/chat-service/internal/services/settings"
	"github.com/selectchat/chat-service/tests/testutils"
)

const testEncryptionKey = "0123456789abcdef0123456789abcdef"

func newTestService(t *testing.T, encryptor encryption.Encryptor) (settings.Service, kv.Store) {
	t.Helper()

	_, store := testutils.NewMiniredisStore(t)
	if encryptor == nil {
		encryptor = encryption.NewNoOpEncryptor()
	}

	svc, err := settings.NewService(&settings.Config{
		Store:     store,
		Encryptor: encryptor,
	})
	require.NoError(t, err)
	return svc, store
}

func TestNewServiceValidatesConfig(t *testing.T) {
	_, err := settings.NewService(nil)
	assert.Error(t, err)

	_, err = settings.NewService(&settings.Config{Encryptor: encryption.NewNoOpEncryptor()})
	assert.Error(t, err)

	_, store := testutils.NewMiniredisStore(t)
	_, err = settings.NewService(&settings.Config{Store: store})
	assert.Error(t, err)
}

func TestFeaturesEmptyWhenUnset(t *testing.T) {
	// Arrange
	svc, _ := newTestService(t, nil)

	// Act
	features := svc.Features(context.Background())

	// Assert
	assert.Empty(t, features)
}

func TestFeaturesFallBackOnMalformedValue(t *testing.T) {
	// Arrange
	svc, store := newTestService(t, nil)
	require.NoError(t, store.Set(context.Background(), kv.KeyFeatures, []byte("{not json")))

	// Act
	features := svc.Features(context.Background())

	// Assert: malformed storage degrades to the empty catalog
	assert.Empty(t, features)
}

func TestSaveFeaturesRoundTrip(t *testing.T) {
	// Arrange
	svc, _ := newTestService(t, nil)
	in := []models.Feature{
		{ID: "summarize", Name: "Summarize", SystemPrompt: "You summarize.", Instruction: "Summarize:", Enabled: true},
		{ID: "analyze", Name: "Analyze", SystemPrompt: "You analyze.", Enabled: true, EnableReasoning: true},
	}

	// Act
	require.NoError(t, svc.SaveFeatures(context.Background(), in))
	out := svc.Features(context.Background())

	// Assert
	assert.Equal(t, in, out)
}

func TestFeatureResolvesNewChatSentinel(t *testing.T) {
	// Arrange
	svc, _ := newTestService(t, nil)

	// Act
	feature, ok := svc.Feature(context.Background(), models.NewChatFeatureID)

	// Assert
	require.True(t, ok)
	assert.True(t, feature.IsNewChat())
}

func TestFeatureUnknownIDNotFound(t *testing.T) {
	// Arrange
	svc, _ := newTestService(t, nil)

	// Act
	_, ok := svc.Feature(context.Background(), "nope")

	// Assert
	assert.False(t, ok)
}

func TestDefaultFeatureIDRoundTrip(t *testing.T) {
	// Arrange
	svc, _ := newTestService(t, nil)
	assert.Equal(t, models.NewChatFeatureID, svc.DefaultFeatureID(context.Background()))

	// Act
	require.NoError(t, svc.SetDefaultFeatureID(context.Background(), "summarize"))

	// Assert
	assert.Equal(t, "summarize", svc.DefaultFeatureID(context.Background()))
}

func TestProvidersDefaultToPresets(t *testing.T) {
	// Arrange
	svc, _ := newTestService(t, nil)

	// Act
	providers := svc.Providers(context.Background())

	// Assert
	require.Contains(t, providers, "OpenAI")
	require.Contains(t, providers, "DeepSeek")
	assert.Equal(t, "gpt-4o", providers["OpenAI"].ChatConfig.Model)
	assert.Equal(t, "deepseek-reasoner", providers["DeepSeek"].ReasoningConfig.Model)
}

func TestSaveProvidersEncryptsKeysAtRest(t *testing.T) {
	// Arrange
	encryptor, err := encryption.NewAESEncryptor(testEncryptionKey)
	require.NoError(t, err)
	svc, store := newTestService(t, encryptor)

	in := map[string]models.ProviderSettings{
		"Custom": {
			ChatConfig:      models.ProviderConfig{Provider: "Custom", APIURL: "https://custom.invalid", APIKey: "sk-secret-chat"},
			ReasoningConfig: models.ProviderConfig{Provider: "Custom", APIURL: "https://custom.invalid", APIKey: "sk-secret-reason"},
		},
	}

	// Act
	require.NoError(t, svc.SaveProviders(context.Background(), in))

	// Assert: plaintext keys never touch the store
	raw, err := store.Get(context.Background(), kv.KeyProvidersConfig)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "sk-secret-chat")
	assert.NotContains(t, string(raw), "sk-secret-reason")

	// The reader hands the keys back decrypted.
	out := svc.Providers(context.Background())
	require.Contains(t, out, "Custom")
	assert.Equal(t, "sk-secret-chat", out["Custom"].ChatConfig.APIKey)
	assert.Equal(t, "sk-secret-reason", out["Custom"].ReasoningConfig.APIKey)
}

func TestProvidersKeepUndecryptableKeysVerbatim(t *testing.T) {
	// Arrange: a key stored before encryption was enabled
	encryptor, err := encryption.NewAESEncryptor(testEncryptionKey)
	require.NoError(t, err)
	svc, store := newTestService(t, encryptor)

	raw := `{"Legacy":{"chatConfig":{"provider":"Legacy","apiKey":"plain-old-key"},"reasoningConfig":{"provider":"Legacy"}}}`
	require.NoError(t, store.Set(context.Background(), kv.KeyProvidersConfig, []byte(raw)))

	// Act
	out := svc.Providers(context.Background())

	// Assert
	require.Contains(t, out, "Legacy")
	assert.Equal(t, "plain-old-key", out["Legacy"].ChatConfig.APIKey)
}

func TestSelectionDefaultsToOpenAI(t *testing.T) {
	// Arrange
	svc, _ := newTestService(t, nil)

	// Act
	chatProvider, reasoningProvider := svc.Selection(context.Background())

	// Assert
	assert.Equal(t, settings.DefaultProviderName, chatProvider)
	assert.Equal(t, settings.DefaultProviderName, reasoningProvider)
}

func TestSetSelectionRoundTrip(t *testing.T) {
	// Arrange
	svc, _ := newTestService(t, nil)

	// Act
	require.NoError(t, svc.SetSelection(context.Background(), "DeepSeek", "OpenAI"))
	chatProvider, reasoningProvider := svc.Selection(context.Background())

	// Assert
	assert.Equal(t, "DeepSeek", chatProvider)
	assert.Equal(t, "OpenAI", reasoningProvider)
}

func TestChatConfigFollowsSelection(t *testing.T) {
	// Arrange
	svc, _ := newTestService(t, nil)
	require.NoError(t, svc.SetSelection(context.Background(), "DeepSeek", "DeepSeek"))

	// Act
	chatCfg := svc.ChatConfig(context.Background())
	reasoningCfg := svc.ReasoningConfig(context.Background())

	// Assert
	assert.Equal(t, "deepseek-chat", chatCfg.Model)
	assert.Equal(t, "deepseek-reasoner", reasoningCfg.Model)
}

func TestChatConfigFallsBackOnUnknownSelection(t *testing.T) {
	// Arrange
	svc, _ := newTestService(t, nil)
	require.NoError(t, svc.SetSelection(context.Background(), "Nonexistent", "Nonexistent"))

	// Act
	chatCfg := svc.ChatConfig(context.Background())

	// Assert: falls back to the OpenAI preset
	assert.Equal(t, "gpt-4o", chatCfg.Model)
}
