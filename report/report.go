// Package report formats benchmark results for output.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"math"

	"github.com/weiihann/bufbench/harness"
)

// Line renders one result in the harness's canonical single-line format:
//
//	Data: 9, Buffer: 10, Duration:42 ns, Vector: 0, Exceptions: 1
//
// Vector is 1 for the dynamic strategy, Exceptions is 1 when recovery
// scaffolding was present. The format is stable; downstream tooling parses
// it.
func Line(r harness.Result) string {
	return fmt.Sprintf(
		"Data: %d, Buffer: %d, Duration:%d ns, Vector: %d, Exceptions: %d",
		r.DataSize, r.Capacity, r.MedianNs,
		flag(r.Dynamic), flag(r.Recovered),
	)
}

// Generate writes a markdown comparison table for the given results.
func Generate(w io.Writer, results []harness.Result) error {
	if len(results) == 0 {
		return fmt.Errorf("no results to report")
	}

	fastest := findFastest(results)

	fmt.Fprintln(w, "## Benchmark Results")
	fmt.Fprintln(w)

	fmt.Fprintln(w, "| Data | Buffer | Median | Strategy | Recovery | Slowdown |")
	fmt.Fprintln(w, "|------|--------|--------|----------|----------|----------|")

	for _, r := range results {
		slowdown := 1.0
		if fastest > 0 && r.MedianNs > 0 {
			slowdown = float64(r.MedianNs) / float64(fastest)
		}

		fmt.Fprintf(w, "| %d | %d | %s | %s | %s | %.2fx |\n",
			r.DataSize,
			r.Capacity,
			formatNs(r.MedianNs),
			strategyName(r.Dynamic),
			recoveryName(r.Recovered),
			slowdown,
		)
	}

	return nil
}

// GenerateJSON writes results as JSON to w.
func GenerateJSON(w io.Writer, results []harness.Result) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(results)
}

func flag(b bool) int {
	if b {
		return 1
	}

	return 0
}

func strategyName(dynamic bool) string {
	if dynamic {
		return "dynamic"
	}

	return "bounded"
}

func recoveryName(recovered bool) string {
	if recovered {
		return "include"
	}

	return "omit"
}

func findFastest(results []harness.Result) int64 {
	fastest := int64(math.MaxInt64)
	for _, r := range results {
		if r.MedianNs > 0 && r.MedianNs < fastest {
			fastest = r.MedianNs
		}
	}

	if fastest == math.MaxInt64 {
		return 0
	}

	return fastest
}

func formatNs(ns int64) string {
	switch {
	case ns < 1000:
		return fmt.Sprintf("%dns", ns)
	case ns < 1000000:
		return fmt.Sprintf("%.2fµs", float64(ns)/1000)
	default:
		return fmt.Sprintf("%.2fms", float64(ns)/1000000)
	}
}
