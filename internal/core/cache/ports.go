package cache

import (
	"context"
	"time"
)

// ErrKeyNotFound-style errors are reported via wrapped errors; adapters
// format them as "key not found: <key>".

// Store defines the keyed-storage operations the service needs, following
// hexagonal architecture. This is a port that can be implemented by
// different providers (Redis, in-memory, etc.).
//
// The primitives map onto the storage layout of the cargo feature:
// SetNX guards create-once records, RPush/LRange back the owner index,
// SAdd/SIsMember hold ciphertext grant sets (grant-only, never removed),
// and Publish carries mutation notifications.
type Store interface {
	// Get retrieves a value by key.
	// Returns the stored value or an error if not found or on failure.
	Get(ctx context.Context, key string) ([]byte, error)

	// Set stores a value with the specified key and TTL.
	// TTL of 0 means no expiration.
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error

	// SetNX stores a value only if the key does not exist yet.
	// Returns true if the value was stored, false if the key was taken.
	SetNX(ctx context.Context, key string, value []byte) (bool, error)

	// Delete removes a value by key.
	Delete(ctx context.Context, key string) error

	// RPush appends values to the list stored at key.
	RPush(ctx context.Context, key string, values ...string) error

	// LRange returns the full list stored at key (empty if absent).
	LRange(ctx context.Context, key string) ([]string, error)

	// SAdd adds members to the set stored at key. Adding an existing
	// member is a no-op, not an error.
	SAdd(ctx context.Context, key string, members ...string) error

	// SIsMember reports whether member is in the set stored at key.
	SIsMember(ctx context.Context, key string, member string) (bool, error)

	// Publish sends a message on the given pub/sub channel.
	Publish(ctx context.Context, channel string, message []byte) error

	// Ping checks if the storage service is reachable.
	Ping(ctx context.Context) error

	// Close closes the storage connection.
	Close() error
}
