package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is a string key/value store with per-entry expiration.
// A miss is reported as ("", false, nil); errors are reserved for the
// backend being unreachable or misbehaving.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key string, value string, ttl time.Duration) error
	// Remove deletes key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}

// GetJSON looks up key and decodes the stored JSON into dest.
func GetJSON(ctx context.Context, c Cache, key string, dest interface{}) (bool, error) {
	raw, ok, err := c.Get(ctx, key)
	if err != nil || !ok {
		return false, err
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		return false, fmt.Errorf("decode cached value %q: %w", key, err)
	}
	return true, nil
}

// SetJSON encodes value as JSON and stores it under key.
func SetJSON(ctx context.Context, c Cache, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode cache value %q: %w", key, err)
	}
	return c.Set(ctx, key, string(data), ttl)
}

// Nop never stores anything; every Get is a miss.
type Nop struct{}

func (Nop) Get(context.Context, string) (string, bool, error) { return "", false, nil }
func (Nop) Set(context.Context, string, string, time.Duration) error { return nil }
func (Nop) Remove(context.Context, string) error { return nil }
func (Nop) Ping(context.Context) error { return nil }
func (Nop) Close() error { return nil }
