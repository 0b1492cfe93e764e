package main

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"testing"

	"github.com/weiihann/bufbench/harness"
)

var testHarnessCfg = harness.Config{Samples: 2, Scaling: 5}

func collectMatrix(t *testing.T, vec []byte) []harness.Result {
	t.Helper()

	var results []harness.Result

	runMatrix(testHarnessCfg, vec, func(r harness.Result) {
		results = append(results, r)
	})

	return results
}

func TestMatrixSkipsUndersizedCapacities(t *testing.T) {
	// A 9-byte vector (input size 3) must skip the capacity-1 and
	// capacity-4 pairs, leaving 9 capacity/mode pairs * 2 strategies.
	results := collectMatrix(t, make([]byte, 9))

	if len(results) != 18 {
		t.Fatalf("got %d results, want 18", len(results))
	}

	for _, r := range results {
		if r.Capacity < r.DataSize {
			t.Errorf("capacity %d smaller than input %d was not skipped",
				r.Capacity, r.DataSize)
		}
	}
}

func TestMatrixSmallestInputRunsAllPoints(t *testing.T) {
	results := collectMatrix(t, make([]byte, 1))

	if len(results) != 22 {
		t.Fatalf("got %d results, want 22", len(results))
	}

	// Only the capacity-64 pairs run without recovery scaffolding.
	var omitted int

	for _, r := range results {
		if !r.Recovered {
			omitted++

			if r.Capacity != 64 {
				t.Errorf("omit-mode point at capacity %d, want 64", r.Capacity)
			}
		}
	}

	if omitted != 2 {
		t.Errorf("got %d omit-mode points, want 2", omitted)
	}
}

func TestMatrixPairsStrategies(t *testing.T) {
	results := collectMatrix(t, make([]byte, 9))

	// Points come in bounded/dynamic pairs over the same capacity.
	for i := 0; i+1 < len(results); i += 2 {
		a, b := results[i], results[i+1]

		if a.Capacity != b.Capacity {
			t.Errorf("pair %d: capacities %d and %d differ", i/2, a.Capacity, b.Capacity)
		}
		if a.Dynamic || !b.Dynamic {
			t.Errorf("pair %d: want bounded then dynamic, got %v, %v",
				i/2, a.Dynamic, b.Dynamic)
		}
		if a.Recovered != b.Recovered {
			t.Errorf("pair %d: fault modes differ", i/2)
		}
	}
}

var lineRe = regexp.MustCompile(
	`^Data: \d+, Buffer: \d+, Duration:\d+ ns, Vector: [01], Exceptions: [01]$`,
)

func TestRunBenchmarkLines(t *testing.T) {
	var out bytes.Buffer

	err := runBenchmark(context.Background(), discardLogger(), &out, runConfig{
		samples:  2,
		scaling:  5,
		maxInput: 2,
		seed:     1,
	})
	if err != nil {
		t.Fatalf("runBenchmark failed: %v", err)
	}

	output := out.String()

	lines := 0
	scanner := bufio.NewScanner(&out)

	for scanner.Scan() {
		lines++

		if !lineRe.MatchString(scanner.Text()) {
			t.Errorf("malformed line: %q", scanner.Text())
		}
	}

	// Size 1 runs all 22 points; size 2 (4 bytes) skips the capacity-1
	// pair, leaving 20.
	if lines != 42 {
		t.Errorf("got %d lines, want 42", lines)
	}

	if !strings.Contains(output, "Data: 1, Buffer: 1,") {
		t.Error("missing capacity-1 point for the 1-byte vector")
	}
	if strings.Contains(output, "Data: 4, Buffer: 1,") {
		t.Error("capacity-1 point not skipped for the 4-byte vector")
	}
}

func TestRunBenchmarkJSON(t *testing.T) {
	var out bytes.Buffer

	err := runBenchmark(context.Background(), discardLogger(), &out, runConfig{
		samples:  2,
		scaling:  5,
		maxInput: 1,
		seed:     1,
		outJSON:  true,
	})
	if err != nil {
		t.Fatalf("runBenchmark failed: %v", err)
	}

	var results []harness.Result
	if err := json.Unmarshal(out.Bytes(), &results); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}

	if len(results) != 22 {
		t.Errorf("got %d results, want 22", len(results))
	}
}

func TestRunBenchmarkRejectsConflictingOutputs(t *testing.T) {
	var out bytes.Buffer

	err := runBenchmark(context.Background(), discardLogger(), &out, runConfig{
		samples:  2,
		scaling:  5,
		maxInput: 1,
		outJSON:  true,
		outMD:    true,
	})
	if err == nil {
		t.Error("expected error for --json with --markdown")
	}
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
