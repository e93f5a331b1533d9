package catalog

import (
	"context"
	"time"

	"bookstore-catalog/internal/infrastructure/telemetry"
	"bookstore-catalog/pkg/cache"

	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// Policy is the caching policy for one entity type. The cache is never the
// source of truth: lookups that fail are misses and writes that fail are
// logged and dropped.
type Policy struct {
	Entity  string
	TTL     time.Duration
	Cache   cache.Cache
	Metrics *telemetry.Metrics
}

func NewPolicy(entity string, ttl time.Duration, c cache.Cache, m *telemetry.Metrics) *Policy {
	if c == nil {
		c = cache.Nop{}
	}
	return &Policy{Entity: entity, TTL: ttl, Cache: c, Metrics: m}
}

// Fetch returns the cached value for key, or calls load and caches its result.
// Errors from load (including not-found sentinels) are returned and nothing is cached.
func Fetch[T any](ctx context.Context, p *Policy, key string, load func(context.Context) (T, error)) (T, error) {
	span := trace.SpanFromContext(ctx)

	var cached T
	hit, err := cache.GetJSON(ctx, p.Cache, key, &cached)
	switch {
	case err != nil:
		p.Metrics.CacheFailure(p.Entity, "get")
		log.Warn().Err(err).Str("key", key).Msg("cache get failed, reading from store")
	case hit:
		p.Metrics.CacheHit(p.Entity)
		span.SetAttributes(attribute.Bool("cache.hit", true))
		return cached, nil
	default:
		p.Metrics.CacheMiss(p.Entity)
		log.Debug().Str("key", key).Msg("cache miss")
	}
	span.SetAttributes(attribute.Bool("cache.hit", false))

	v, err := load(ctx)
	if err != nil {
		var zero T
		return zero, err
	}

	if err := cache.SetJSON(ctx, p.Cache, key, v, p.TTL); err != nil {
		p.Metrics.CacheFailure(p.Entity, "set")
		log.Warn().Err(err).Str("key", key).Msg("cache set failed")
	}
	return v, nil
}

// Invalidate removes the point-lookup entry for id.
func (p *Policy) Invalidate(ctx context.Context, id string) {
	key := EntityKey(p.Entity, id)
	if err := p.Cache.Remove(ctx, key); err != nil {
		p.Metrics.CacheFailure(p.Entity, "remove")
		log.Warn().Err(err).Str("key", key).Msg("cache remove failed")
	}
}

// ListsWritten runs after every successful write. List pages are keyed by
// arbitrary filter/page combinations and are not tracked, so they are left to
// expire by TTL; this only records that a stale window was opened.
func (p *Policy) ListsWritten(ctx context.Context) {
	p.Metrics.StaleListWrite(p.Entity)
	log.Debug().
		Str("entity", p.Entity).
		Dur("max_staleness", p.TTL).
		Msg("list caches left to expire")
}

// ListKey builds the list-query key for this entity.
func (p *Policy) ListKey(page, pageSize int, filters ...string) string {
	return ListKey(p.Entity, page, pageSize, filters...)
}

// Key builds the point-lookup key for this entity.
func (p *Policy) Key(id string) string {
	return EntityKey(p.Entity, id)
}
