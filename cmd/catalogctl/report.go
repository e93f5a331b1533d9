package main

import (
	"fmt"
	"io"
	"slices"
	"time"

	"bookstore-catalog/internal/domains/loadtest"

	"github.com/dustin/go-humanize"
)

func writeReport(w io.Writer, res *loadtest.Result) {
	fmt.Fprintf(w, "scenario   %s\n", res.Scenario)
	fmt.Fprintf(w, "elapsed    %s\n", (time.Duration(res.ElapsedMs) * time.Millisecond).Round(time.Millisecond))
	fmt.Fprintf(w, "requests   %s (%s/s)\n", humanize.Comma(int64(res.Requests)), humanize.FormatFloat("#,###.##", res.RPS))
	fmt.Fprintf(w, "failures   %s (%s%%)\n", humanize.Comma(int64(res.Failures)), humanize.FormatFloat("#.##", res.FailRate*100))

	fmt.Fprintln(w, "\nlatency (ms)")
	l := res.Latency
	fmt.Fprintf(w, "  min %.1f  mean %.1f  p50 %.1f  p90 %.1f  p95 %.1f  p99 %.1f  max %.1f\n",
		l.Min, l.Mean, l.P50, l.P90, l.P95, l.P99, l.Max)

	if len(res.Operations) > 0 {
		fmt.Fprintln(w, "\noperations")
		for _, op := range sortedKeys(res.Operations) {
			fmt.Fprintf(w, "  %-8s %s\n", op, humanize.Comma(int64(res.Operations[op])))
		}
	}
	if len(res.Statuses) > 0 {
		fmt.Fprintln(w, "\nstatuses")
		for _, s := range sortedKeys(res.Statuses) {
			fmt.Fprintf(w, "  %-8s %s\n", s, humanize.Comma(int64(res.Statuses[s])))
		}
	}

	if len(res.Thresholds) > 0 {
		fmt.Fprintln(w, "\nthresholds")
		for _, t := range res.Thresholds {
			mark := "ok"
			if !t.OK {
				mark = "FAIL"
			}
			fmt.Fprintf(w, "  %-4s %s: %.2f (limit %.2f)\n", mark, t.Name, t.Observed, t.Limit)
		}
	}

	verdict := "PASSED"
	if !res.Passed {
		verdict = "FAILED"
	}
	fmt.Fprintf(w, "\n%s\n", verdict)
}

func sortedKeys[K ~string, V any](m map[K]V) []K {
	keys := make([]K, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
