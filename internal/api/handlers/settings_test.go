package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/selectchat/chat-service/internal/api/dto"
	"github.com/selectchat/chat-service/internal/api/handlers"
	"github.com/selectchat/chat-service/internal/domain/models"
	"github.com/selectchat/chat-service/internal/pkg/encryption"
	"github.com/selectchat/chat-service/internal/services/settings"
	"github.com/selectchat/chat-service/tests/mocks"
	"github.com/selectchat/chat-service/tests/testutils"
)

func newSettingsRouter(t *testing.T) (*gin.Engine, settings.Service) {
	t.Helper()

	_, kvStore := testutils.NewMiniredisStore(t)
	svc, err := settings.NewService(&settings.Config{
		Store:     kvStore,
		Encryptor: encryption.NewNoOpEncryptor(),
	})
	require.NoError(t, err)

	handler := handlers.NewSettingsHandler(svc)

	router := testutils.SetupTestRouter()
	group := router.Group("/settings")
	group.GET("/features", handler.GetFeatures)
	group.PUT("/features", handler.SaveFeatures)
	group.PUT("/features/default", handler.SetDefaultFeature)
	group.GET("/providers", handler.GetProviders)
	group.PUT("/providers", handler.SaveProviders)
	group.PUT("/providers/selection", handler.SetProviderSelection)

	return router, svc
}

func TestGetFeaturesEmptyCatalog(t *testing.T) {
	// Arrange
	router, _ := newSettingsRouter(t)

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/settings/features", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
	var resp dto.FeaturesResponse
	testutils.ParseJSONResponse(t, w, &resp)
	assert.Empty(t, resp.Features)
	assert.Equal(t, models.NewChatFeatureID, resp.DefaultFeatureID)
}

func TestSaveFeaturesReplacesCatalog(t *testing.T) {
	// Arrange
	router, svc := newSettingsRouter(t)
	payload := map[string]interface{}{
		"features": []models.Feature{
			{ID: "summarize", Name: "Summarize", SystemPrompt: "You summarize.", Enabled: true},
		},
	}

	// Act
	w := testutils.PerformRequest(router, http.MethodPut, "/settings/features", payload, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
	features := svc.Features(testutils.TestContext())
	require.Len(t, features, 1)
	assert.Equal(t, "summarize", features[0].ID)
}

func TestSetDefaultFeature(t *testing.T) {
	// Arrange
	router, svc := newSettingsRouter(t)
	require.NoError(t, svc.SaveFeatures(testutils.TestContext(), []models.Feature{
		{ID: "summarize", Name: "Summarize", Enabled: true},
	}))

	// Act
	w := testutils.PerformRequest(router, http.MethodPut, "/settings/features/default",
		map[string]string{"featureId": "summarize"}, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
	assert.Equal(t, "summarize", svc.DefaultFeatureID(testutils.TestContext()))
}

func TestSetDefaultFeatureUnknownIDNotFound(t *testing.T) {
	// Arrange
	router, _ := newSettingsRouter(t)

	// Act
	w := testutils.PerformRequest(router, http.MethodPut, "/settings/features/default",
		map[string]string{"featureId": "nope"}, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusNotFound, w)
}

func TestGetProvidersReturnsPresets(t *testing.T) {
	// Arrange
	router, _ := newSettingsRouter(t)

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/settings/providers", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
	var resp dto.ProvidersResponse
	testutils.ParseJSONResponse(t, w, &resp)
	assert.Contains(t, resp.Providers, "OpenAI")
	assert.Equal(t, settings.DefaultProviderName, resp.ChatProvider)
	assert.Equal(t, settings.DefaultProviderName, resp.ReasoningProvider)
}

func TestSaveProvidersRoundTrip(t *testing.T) {
	// Arrange
	router, svc := newSettingsRouter(t)
	payload := map[string]interface{}{
		"providers": map[string]models.ProviderSettings{
			"TestProvider": testutils.SampleProviderSettings(),
		},
	}

	// Act
	w := testutils.PerformRequest(router, http.MethodPut, "/settings/providers", payload, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
	providers := svc.Providers(testutils.TestContext())
	require.Contains(t, providers, "TestProvider")
	assert.Equal(t, "test-chat-model", providers["TestProvider"].ChatConfig.Model)
}

func TestSetProviderSelection(t *testing.T) {
	// Arrange
	router, svc := newSettingsRouter(t)

	// Act
	w := testutils.PerformRequest(router, http.MethodPut, "/settings/providers/selection",
		map[string]string{"chatProvider": "DeepSeek", "reasoningProvider": "OpenAI"}, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
	chatProvider, reasoningProvider := svc.Selection(testutils.TestContext())
	assert.Equal(t, "DeepSeek", chatProvider)
	assert.Equal(t, "OpenAI", reasoningProvider)
}

func TestSaveFeaturesStorageErrorIsInternal(t *testing.T) {
	// Arrange
	svcMock := &mocks.MockSettingsService{}
	svcMock.On("SaveFeatures", mock.Anything, mock.Anything).Return(errors.New("redis down"))
	handler := handlers.NewSettingsHandler(svcMock)
	router := testutils.SetupTestRouter()
	router.PUT("/settings/features", handler.SaveFeatures)

	// Act
	w := testutils.PerformRequest(router, http.MethodPut, "/settings/features",
		map[string]interface{}{"features": []models.Feature{}}, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusInternalServerError, w)
}

func TestSetProviderSelectionUnknownProviderNotFound(t *testing.T) {
	// Arrange
	router, _ := newSettingsRouter(t)

	// Act
	w := testutils.PerformRequest(router, http.MethodPut, "/settings/providers/selection",
		map[string]string{"chatProvider": "Nonexistent", "reasoningProvider": "OpenAI"}, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusNotFound, w)
}
