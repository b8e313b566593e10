// Package kv defines the key-value persistence interface consumed by the
// pipeline. The pipeline treats all stored values as already validated;
// schema enforcement belongs to the settings surface.
package kv

import "context"

// Store defines the asynchronous key-value operations the pipeline needs.
type Store interface {
	// Get retrieves the value stored under key.
	// Returns nil (not an error) if the key does not exist.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Remove deletes key. Returns true if the key existed.
	Remove(ctx context.Context, key string) (bool, error)

	// Ping checks if the store connection is alive.
	Ping(ctx context.Context) error

	// Close closes the store connection.
	Close() error
}

// Keys consumed by the pipeline.
const (
	// KeyFeatures holds the stored Feature list.
	KeyFeatures = "features"
	// KeyProvidersConfig holds the provider-name → {chatConfig, reasoningConfig} map.
	KeyProvidersConfig = "providersConfig"
	// KeyChatProvider holds the selected chat provider name.
	KeyChatProvider = "chatProvider"
	// KeyReasoningProvider holds the selected reasoning provider name.
	KeyReasoningProvider = "reasoningProvider"
	// KeyDefaultFeature holds the default feature id.
	KeyDefaultFeature = "defaultFeature"
)
