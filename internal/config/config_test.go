package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "redis", cfg.KV.Type)
	assert.Equal(t, "6379", cfg.KV.Port)
	assert.Empty(t, cfg.DocDB.URI)
	assert.Equal(t, "selectchat", cfg.DocDB.Database)
	assert.Equal(t, 300*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "info", cfg.Log.Level)
}

func TestLoadFromEnvironment(t *testing.T) {
	// Arrange
	t.Setenv("SERVER_HOST", "0.0.0.0")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("REDIS_HOST", "redis.internal")
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("PROVIDER_TIMEOUT_SECONDS", "60")
	t.Setenv("LOG_LEVEL", "debug")

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "0.0.0.0", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "redis.internal", cfg.KV.Host)
	assert.Equal(t, "mongodb://localhost:27017", cfg.DocDB.URI)
	assert.Equal(t, 60*time.Second, cfg.Provider.Timeout)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoadInvalidIntFallsBack(t *testing.T) {
	// Arrange
	t.Setenv("SERVER_PORT", "not-a-number")

	// Act
	cfg, err := Load()

	// Assert
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Server.Port)
}

func TestServerAddress(t *testing.T) {
	cfg := ServerConfig{Host: "127.0.0.1", Port: 8080}

	assert.Equal(t, "127.0.0.1:8080", cfg.Address())
}
