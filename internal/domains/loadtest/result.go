package loadtest

import (
	"fmt"
	"math"
	"slices"
	"strconv"
	"sync"
	"time"
)

// Latency figures are in milliseconds.
type Latency struct {
	Min  float64 `json:"minMs"`
	Mean float64 `json:"meanMs"`
	P50  float64 `json:"p50Ms"`
	P90  float64 `json:"p90Ms"`
	P95  float64 `json:"p95Ms"`
	P99  float64 `json:"p99Ms"`
	Max  float64 `json:"maxMs"`
}

type ThresholdResult struct {
	Name     string  `json:"name"`
	Limit    float64 `json:"limit"`
	Observed float64 `json:"observed"`
	OK       bool    `json:"ok"`
}

type Result struct {
	Scenario   string            `json:"scenario"`
	Requests   int               `json:"requests"`
	Failures   int               `json:"failures"`
	FailRate   float64           `json:"failRate"`
	RPS        float64           `json:"rps"`
	ElapsedMs  int64             `json:"elapsedMs"`
	Statuses   map[string]int    `json:"statuses"`
	Operations map[Operation]int `json:"operations"`
	Latency    Latency           `json:"latency"`
	Thresholds []ThresholdResult `json:"thresholds"`
	Passed     bool              `json:"passed"`
}

// recorder aggregates samples from every virtual user.
type recorder struct {
	mu         sync.Mutex
	latencies  []time.Duration
	statuses   map[string]int
	operations map[Operation]int
	failures   int
}

func newRecorder() *recorder {
	return &recorder{
		statuses:   make(map[string]int),
		operations: make(map[Operation]int),
	}
}

// record counts a transport error or any status >= 400 as a failure.
func (r *recorder) record(op Operation, status int, latency time.Duration, err error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.operations[op]++
	r.latencies = append(r.latencies, latency)
	if err != nil {
		r.statuses["error"]++
		r.failures++
		return
	}
	r.statuses[strconv.Itoa(status)]++
	if status >= 400 {
		r.failures++
	}
}

func (r *recorder) result(sc Scenario, elapsed time.Duration) *Result {
	r.mu.Lock()
	defer r.mu.Unlock()

	res := &Result{
		Scenario:   sc.Name,
		Requests:   len(r.latencies),
		Failures:   r.failures,
		ElapsedMs:  elapsed.Milliseconds(),
		Statuses:   copyCounts(r.statuses),
		Operations: copyCounts(r.operations),
		Latency:    summarize(r.latencies),
	}
	if res.Requests > 0 {
		res.FailRate = float64(res.Failures) / float64(res.Requests)
	}
	if elapsed > 0 {
		res.RPS = float64(res.Requests) / elapsed.Seconds()
	}
	res.Thresholds, res.Passed = evaluate(sc.Thresholds, res)
	return res
}

func copyCounts[K comparable](in map[K]int) map[K]int {
	out := make(map[K]int, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

func summarize(samples []time.Duration) Latency {
	if len(samples) == 0 {
		return Latency{}
	}
	sorted := slices.Clone(samples)
	slices.Sort(sorted)

	var total time.Duration
	for _, d := range sorted {
		total += d
	}
	return Latency{
		Min:  ms(sorted[0]),
		Mean: ms(total / time.Duration(len(sorted))),
		P50:  ms(percentile(sorted, 50)),
		P90:  ms(percentile(sorted, 90)),
		P95:  ms(percentile(sorted, 95)),
		P99:  ms(percentile(sorted, 99)),
		Max:  ms(sorted[len(sorted)-1]),
	}
}

// percentile uses the nearest-rank method on sorted samples.
func percentile(sorted []time.Duration, p float64) time.Duration {
	rank := int(math.Ceil(p / 100 * float64(len(sorted))))
	if rank < 1 {
		rank = 1
	}
	return sorted[rank-1]
}

func evaluate(t Thresholds, res *Result) ([]ThresholdResult, bool) {
	var out []ThresholdResult
	if t.P95 > 0 {
		limit := ms(t.P95)
		out = append(out, ThresholdResult{
			Name:     fmt.Sprintf("p95<%gms", limit),
			Limit:    limit,
			Observed: res.Latency.P95,
			OK:       res.Latency.P95 < limit,
		})
	}
	if t.MaxFailRate > 0 {
		out = append(out, ThresholdResult{
			Name:     fmt.Sprintf("failRate<%g", t.MaxFailRate),
			Limit:    t.MaxFailRate,
			Observed: res.FailRate,
			OK:       res.FailRate < t.MaxFailRate,
		})
	}

	passed := true
	for _, r := range out {
		passed = passed && r.OK
	}
	return out, passed
}
