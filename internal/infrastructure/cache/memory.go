package cache

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/viccon/sturdyc"
)

// MemoryConfig sizes the in-process cache. Capacity and Shards apply to
// each TTL bucket.
type MemoryConfig struct {
	Capacity           int
	Shards             int
	EvictionPercentage int
}

func (c MemoryConfig) Validate() error {
	if c.Capacity <= 0 {
		return errors.New("memory cache: capacity must be greater than 0")
	}
	if c.Shards <= 0 {
		return errors.New("memory cache: shards must be greater than 0")
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return errors.New("memory cache: eviction percentage must be between 1 and 100")
	}
	return nil
}

// MemoryCache keeps entries in process using sturdyc. sturdyc fixes the TTL
// per client, so one client is created for every distinct TTL seen by Set.
type MemoryCache struct {
	cfg MemoryConfig

	mu      sync.RWMutex
	buckets map[time.Duration]*sturdyc.Client[string]
}

func NewMemoryCache(cfg MemoryConfig) (*MemoryCache, error) {
	if cfg.EvictionPercentage == 0 {
		cfg.EvictionPercentage = 10
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &MemoryCache{
		cfg:     cfg,
		buckets: make(map[time.Duration]*sturdyc.Client[string]),
	}, nil
}

func (m *MemoryCache) bucket(ttl time.Duration) *sturdyc.Client[string] {
	m.mu.RLock()
	client, ok := m.buckets[ttl]
	m.mu.RUnlock()
	if ok {
		return client
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if client, ok := m.buckets[ttl]; ok {
		return client
	}
	client = sturdyc.New[string](m.cfg.Capacity, m.cfg.Shards, ttl, m.cfg.EvictionPercentage)
	m.buckets[ttl] = client
	return client
}

func (m *MemoryCache) clients() []*sturdyc.Client[string] {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]*sturdyc.Client[string], 0, len(m.buckets))
	for _, c := range m.buckets {
		out = append(out, c)
	}
	return out
}

func (m *MemoryCache) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, err
	}
	for _, c := range m.clients() {
		if v, ok := c.Get(key); ok {
			return v, true, nil
		}
	}
	return "", false, nil
}

// Set replaces any existing entry for key, including one held under a different TTL.
func (m *MemoryCache) Set(ctx context.Context, key string, value string, ttl time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if ttl <= 0 {
		return errors.New("memory cache: ttl must be positive")
	}

	target := m.bucket(ttl)
	for _, c := range m.clients() {
		if c != target {
			c.Delete(key)
		}
	}
	target.Set(key, value)
	return nil
}

func (m *MemoryCache) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	for _, c := range m.clients() {
		c.Delete(key)
	}
	return nil
}

func (m *MemoryCache) Ping(context.Context) error { return nil }

// Size reports the number of entries across all TTL buckets.
func (m *MemoryCache) Size() int {
	n := 0
	for _, c := range m.clients() {
		n += c.Size()
	}
	return n
}

func (m *MemoryCache) Close() error {
	m.mu.Lock()
	m.buckets = make(map[time.Duration]*sturdyc.Client[string])
	m.mu.Unlock()
	return nil
}
