// Package cache provides the key/value store used for sessions and cached
// reads. Two drivers exist: Redis for deployments and an in-process memory
// driver for local development and tests. Values are JSON-encoded so either
// driver can hold arbitrary structs.
package cache

import (
	"context"
	"time"
)

// Cache is the driver interface.
type Cache interface {
	// Get unmarshals the value stored under key into dest.
	// Returns true on a hit, false on miss or error.
	Get(ctx context.Context, key string, dest interface{}) bool
	// Set stores value under key for the given TTL (0 = no expiry).
	Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	// Delete removes key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
