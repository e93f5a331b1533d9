package telemetry

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCounters(t *testing.T) {
	m := NewMetrics()

	m.CacheHit("book")
	m.CacheHit("book")
	m.CacheMiss("book")
	m.CacheFailure("author", "get")
	m.CacheFailure("author", "set")
	m.StaleListWrite("book")
	m.ObserveStore("book", "find_by_id", time.Now())
	m.ObserveHTTP("GET", "/api/v1/books/:id", 200, time.Now())

	assert.Equal(t, 2.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("book", "hit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("book", "miss")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheRequests.WithLabelValues("author", "error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.cacheFailures.WithLabelValues("author", "set")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.staleListWrites.WithLabelValues("book")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.storeDuration))
	assert.Equal(t, 1, testutil.CollectAndCount(m.httpRequests))
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.CacheHit("book")
		m.CacheMiss("book")
		m.CacheFailure("book", "get")
		m.ObserveStore("book", "insert", time.Now())
		m.StaleListWrite("book")
		m.ObserveHTTP("GET", "/", 200, time.Now())
	})
}

func TestSetupWithoutEndpointIsNoop(t *testing.T) {
	shutdown, err := Setup(context.Background(), "bookstore-catalog", "test", "")
	require.NoError(t, err)
	assert.NoError(t, shutdown(context.Background()))
}
