package middleware_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/selectchat/chat-service/internal/api/middleware"
	"github.com/selectchat/chat-service/tests/testutils"
)

func newCORSRouter() *gin.Engine {
	router := testutils.SetupTestRouter()
	router.Use(middleware.NewCORSMiddleware(middleware.DefaultCORSConfig()))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func TestCORSAllowsExtensionOrigin(t *testing.T) {
	// Arrange
	router := newCORSRouter()

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/ping", nil, map[string]string{
		"Origin": "chrome-extension://abcdefghijklmnop",
	})

	// Assert
	assert.Equal(t, "chrome-extension://abcdefghijklmnop", w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", w.Header().Get("Access-Control-Allow-Credentials"))
}

func TestCORSAllowsLocalDevServer(t *testing.T) {
	// Arrange
	router := newCORSRouter()

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/ping", nil, map[string]string{
		"Origin": "http://localhost:5173",
	})

	// Assert
	assert.Equal(t, "http://localhost:5173", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestCORSRejectsUnknownOrigin(t *testing.T) {
	// Arrange
	router := newCORSRouter()

	// Act
	w := testutils.PerformRequest(router, http.MethodGet, "/ping", nil, map[string]string{
		"Origin": "https://evil.example.com",
	})

	// Assert: no CORS headers, but the request itself still succeeds
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCORSPreflightShortCircuits(t *testing.T) {
	// Arrange
	router := newCORSRouter()

	// Act
	w := testutils.PerformRequest(router, http.MethodOptions, "/ping", nil, map[string]string{
		"Origin":                        "chrome-extension://abcdefghijklmnop",
		"Access-Control-Request-Method": http.MethodPost,
	})

	// Assert
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Contains(t, w.Header().Get("Access-Control-Allow-Methods"), http.MethodPost)
}
