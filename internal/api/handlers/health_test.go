package handlers_test

import (
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/selectchat/chat-service/internal/api/dto"
	"github.com/selectchat/chat-service/internal/api/handlers"
	"github.com/selectchat/chat-service/internal/core/docdb"
	"github.com/selectchat/chat-service/tests/mocks"
	"github.com/selectchat/chat-service/tests/testutils"
)

func newHealthRouter(kvStore *mocks.MockKVStore, docDB docdb.Client) *gin.Engine {
	handler := handlers.NewHealthHandler(kvStore, docDB)

	router := testutils.SetupTestRouter()
	router.GET("/health", handler.Health)
	router.GET("/ready", handler.Ready)
	router.GET("/live", handler.Live)
	return router
}

func TestHealthAllComponentsHealthy(t *testing.T) {
	// Arrange
	kvStore := &mocks.MockKVStore{}
	kvStore.On("Ping", mock.Anything).Return(nil)
	docDB := mocks.NewMockDocDBClient()
	docDB.On("Ping", mock.Anything).Return(nil)
	router := newHealthRouter(kvStore, docDB)

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/health", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
	var resp dto.HealthResponse
	testutils.ParseJSONResponse(t, w, &resp)
	assert.Equal(t, "healthy", resp.Status)
	assert.Equal(t, "healthy", resp.Components["kv"])
	assert.Equal(t, "healthy", resp.Components["docdb"])
}

func TestHealthUnhealthyKV(t *testing.T) {
	// Arrange
	kvStore := &mocks.MockKVStore{}
	kvStore.On("Ping", mock.Anything).Return(errors.New("connection refused"))
	router := newHealthRouter(kvStore, nil)

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/health", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusServiceUnavailable, w)
	var resp dto.HealthResponse
	testutils.ParseJSONResponse(t, w, &resp)
	assert.Equal(t, "unhealthy", resp.Status)
	assert.Equal(t, "unhealthy", resp.Components["kv"])
}

func TestHealthSkipsDocDBWhenArchiveDisabled(t *testing.T) {
	// Arrange
	kvStore := &mocks.MockKVStore{}
	kvStore.On("Ping", mock.Anything).Return(nil)
	router := newHealthRouter(kvStore, nil)

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/health", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
	var resp dto.HealthResponse
	testutils.ParseJSONResponse(t, w, &resp)
	assert.NotContains(t, resp.Components, "docdb")
}

func TestReadyUnhealthyDocDB(t *testing.T) {
	// Arrange
	kvStore := &mocks.MockKVStore{}
	kvStore.On("Ping", mock.Anything).Return(nil)
	docDB := mocks.NewMockDocDBClient()
	docDB.On("Ping", mock.Anything).Return(errors.New("no reachable servers"))
	router := newHealthRouter(kvStore, docDB)

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/ready", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusServiceUnavailable, w)
}

func TestLiveAlwaysOK(t *testing.T) {
	// Arrange
	router := newHealthRouter(&mocks.MockKVStore{}, nil)

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/live", nil, nil)

	// Assert
	testutils.AssertStatusCode(t, http.StatusOK, w)
}
