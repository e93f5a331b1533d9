package loadtest

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPercentileNearestRank(t *testing.T) {
	samples := make([]time.Duration, 100)
	for i := range samples {
		samples[i] = time.Duration(i+1) * time.Millisecond
	}
	assert.Equal(t, 50*time.Millisecond, percentile(samples, 50))
	assert.Equal(t, 95*time.Millisecond, percentile(samples, 95))
	assert.Equal(t, 99*time.Millisecond, percentile(samples, 99))
	assert.Equal(t, time.Millisecond, percentile(samples[:1], 99))
}

func TestRecorderResult(t *testing.T) {
	rec := newRecorder()
	rec.record(OpList, 200, 10*time.Millisecond, nil)
	rec.record(OpGet, 404, 20*time.Millisecond, nil)
	rec.record(OpCreate, 0, 30*time.Millisecond, errors.New("refused"))
	rec.record(OpList, 200, 40*time.Millisecond, nil)

	sc := Scenario{Name: "t", Thresholds: Thresholds{P95: 35 * time.Millisecond, MaxFailRate: 0.6}}
	res := rec.result(sc, 2*time.Second)

	assert.Equal(t, 4, res.Requests)
	assert.Equal(t, 2, res.Failures)
	assert.InDelta(t, 0.5, res.FailRate, 1e-9)
	assert.InDelta(t, 2.0, res.RPS, 1e-9)
	assert.Equal(t, map[string]int{"200": 2, "404": 1, "error": 1}, res.Statuses)
	assert.Equal(t, map[Operation]int{OpList: 2, OpGet: 1, OpCreate: 1}, res.Operations)
	assert.Equal(t, 10.0, res.Latency.Min)
	assert.Equal(t, 25.0, res.Latency.Mean)
	assert.Equal(t, 40.0, res.Latency.P95)

	require.Len(t, res.Thresholds, 2)
	assert.False(t, res.Thresholds[0].OK, "p95 of 40ms breaks a 35ms limit")
	assert.True(t, res.Thresholds[1].OK)
	assert.False(t, res.Passed)
}

func TestEmptyResultPassesWithoutThresholds(t *testing.T) {
	res := newRecorder().result(Scenario{Name: "idle"}, 0)
	assert.Zero(t, res.Requests)
	assert.Empty(t, res.Thresholds)
	assert.True(t, res.Passed)
}
