// Package kv provides the store type constants.
package kv

// Type represents the type of key-value store.
type Type string

const (
	// TypeRedis represents a Redis-backed store.
	TypeRedis Type = "redis"
)
