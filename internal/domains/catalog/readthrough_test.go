package catalog

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"bookstore-catalog/internal/infrastructure/telemetry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mapCache struct {
	mu      sync.Mutex
	entries map[string]string
	ttls    map[string]time.Duration
	failGet bool
	failSet bool
	failDel bool
}

func newMapCache() *mapCache {
	return &mapCache{entries: map[string]string{}, ttls: map[string]time.Duration{}}
}

var errBackend = errors.New("cache backend down")

func (c *mapCache) Get(_ context.Context, key string) (string, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failGet {
		return "", false, errBackend
	}
	v, ok := c.entries[key]
	return v, ok, nil
}

func (c *mapCache) Set(_ context.Context, key, value string, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failSet {
		return errBackend
	}
	c.entries[key] = value
	c.ttls[key] = ttl
	return nil
}

func (c *mapCache) Remove(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.failDel {
		return errBackend
	}
	delete(c.entries, key)
	return nil
}

func (c *mapCache) Ping(context.Context) error { return nil }
func (c *mapCache) Close() error { return nil }

type item struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func TestFetchPopulatesOnMissAndServesHit(t *testing.T) {
	ctx := context.Background()
	c := newMapCache()
	p := NewPolicy("book", 10*time.Minute, c, telemetry.NewMetrics())

	calls := 0
	load := func(context.Context) (item, error) {
		calls++
		return item{ID: "1", Name: "Dune"}, nil
	}

	got, err := Fetch(ctx, p, p.Key("1"), load)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Name)
	assert.Equal(t, 10*time.Minute, c.ttls["book:1"])

	got, err = Fetch(ctx, p, p.Key("1"), load)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Name)
	assert.Equal(t, 1, calls)
}

func TestFetchDoesNotCacheLoadErrors(t *testing.T) {
	ctx := context.Background()
	c := newMapCache()
	p := NewPolicy("book", time.Minute, c, nil)
	errMissing := errors.New("missing")

	_, err := Fetch(ctx, p, "book:x", func(context.Context) (item, error) { return item{}, errMissing })
	assert.ErrorIs(t, err, errMissing)
	assert.Empty(t, c.entries)
}

func TestFetchTreatsCacheFailuresAsMiss(t *testing.T) {
	ctx := context.Background()
	c := newMapCache()
	c.failGet, c.failSet = true, true
	p := NewPolicy("author", time.Minute, c, nil)

	got, err := Fetch(ctx, p, "author:1", func(context.Context) (item, error) {
		return item{ID: "1", Name: "Le Guin"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "Le Guin", got.Name)
}

func TestFetchIgnoresUndecodableEntries(t *testing.T) {
	ctx := context.Background()
	c := newMapCache()
	c.entries["book:1"] = "{not json"
	p := NewPolicy("book", time.Minute, c, nil)

	got, err := Fetch(ctx, p, "book:1", func(context.Context) (item, error) {
		return item{ID: "1", Name: "fresh"}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, "fresh", got.Name)
	assert.Contains(t, c.entries["book:1"], "fresh")
}

func TestInvalidateSwallowsFailures(t *testing.T) {
	ctx := context.Background()
	c := newMapCache()
	c.entries["book:1"] = "{}"
	p := NewPolicy("book", time.Minute, c, nil)

	p.Invalidate(ctx, "1")
	assert.NotContains(t, c.entries, "book:1")

	c.failDel = true
	assert.NotPanics(t, func() { p.Invalidate(ctx, "2") })
}

func TestValidatePage(t *testing.T) {
	assert.NoError(t, ValidatePage(1, 10))
	assert.NoError(t, ValidatePage(3, MaxPageSize))

	for _, tc := range [][2]int{{0, 10}, {1, 0}, {-1, 5}, {1, MaxPageSize + 1}} {
		err := ValidatePage(tc[0], tc[1])
		assert.ErrorIs(t, err, ErrValidation, "page=%d size=%d", tc[0], tc[1])

		var verr *ValidationError
		require.ErrorAs(t, err, &verr)
		assert.NotEmpty(t, verr.Fields())
	}
}
