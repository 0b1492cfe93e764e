// Package main provides the CLI entry point for bufbench, a micro-benchmark
// comparing inline-buffer and heap-slice return strategies for a byte
// transformation.
package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"github.com/weiihann/bufbench/harness"
	"github.com/weiihann/bufbench/report"
	"github.com/weiihann/bufbench/transform"
	"github.com/weiihann/bufbench/workload"
)

func main() {
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))

	root := newRootCmd(logger)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func newRootCmd(logger *slog.Logger) *cobra.Command {
	var (
		samples  int
		scaling  int
		maxInput int
		seed     int64
		outJSON  bool
		outMD    bool
	)

	cmd := &cobra.Command{
		Use:   "bufbench",
		Short: "Benchmark inline-buffer vs heap-slice return strategies",
		Long: `Bufbench measures the median per-call latency of returning a byte buffer
from a transformation, across a matrix of input sizes, buffer capacities,
return strategies, and fault-handling modes. Results are printed one line
per benchmark point on stdout.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runBenchmark(cmd.Context(), logger, os.Stdout, runConfig{
				samples:  samples,
				scaling:  scaling,
				maxInput: maxInput,
				seed:     seed,
				outJSON:  outJSON,
				outMD:    outMD,
			})
		},
	}

	flags := cmd.Flags()
	flags.IntVar(&samples, "samples", harness.DefaultSamples,
		"Timed trials per benchmark point")
	flags.IntVar(&scaling, "scaling", harness.DefaultScaling,
		"Transformations per trial")
	flags.IntVar(&maxInput, "max-input", 32,
		"Largest input size (vectors are size*size bytes, size = 1..max)")
	flags.Int64Var(&seed, "seed", 0,
		"Random seed for test vectors (0 = use OS entropy)")
	flags.BoolVar(&outJSON, "json", false,
		"Output results as JSON instead of per-point lines")
	flags.BoolVar(&outMD, "markdown", false,
		"Output results as a markdown table instead of per-point lines")

	return cmd
}

type runConfig struct {
	samples  int
	scaling  int
	maxInput int
	seed     int64
	outJSON  bool
	outMD    bool
}

func runBenchmark(
	ctx context.Context,
	logger *slog.Logger,
	out io.Writer,
	cfg runConfig,
) error {
	if cfg.outJSON && cfg.outMD {
		return fmt.Errorf("--json and --markdown are mutually exclusive")
	}

	if cfg.maxInput < 1 {
		return fmt.Errorf("--max-input must be at least 1, got %d", cfg.maxInput)
	}

	logger.InfoContext(ctx, "starting benchmark",
		slog.Int("samples", cfg.samples),
		slog.Int("scaling", cfg.scaling),
		slog.Int("max_input", cfg.maxInput),
		slog.Int64("seed", cfg.seed),
	)

	// Step 1: Generate test vectors, one per input size.
	gen := workload.NewGenerator(workload.Config{Seed: cfg.seed})
	vectors := gen.Vectors(cfg.maxInput)

	// Step 2: Run the point matrix over every vector. In line mode each
	// result is printed as it lands; the aggregate modes collect first.
	hcfg := harness.Config{
		Samples: cfg.samples,
		Scaling: cfg.scaling,
		Logger:  logger,
	}

	lineMode := !cfg.outJSON && !cfg.outMD
	results := make([]harness.Result, 0, 22*len(vectors))

	emit := func(r harness.Result) {
		results = append(results, r)
		if lineMode {
			fmt.Fprintln(out, report.Line(r))
		}
	}

	for _, vec := range vectors {
		runMatrix(hcfg, vec, emit)
	}

	// Step 3: Emit aggregate output if requested.
	if cfg.outJSON {
		if err := report.GenerateJSON(out, results); err != nil {
			return fmt.Errorf("generate JSON report: %w", err)
		}
	}

	if cfg.outMD {
		if err := report.Generate(out, results); err != nil {
			return fmt.Errorf("generate report: %w", err)
		}
	}

	logger.InfoContext(ctx, "benchmark complete",
		slog.Int("points", len(results)),
	)

	return nil
}

// runMatrix measures the fixed point matrix against one test vector: each
// listed capacity crossed with both return strategies, recovery scaffolding
// included everywhere except the second capacity-64 pair, which runs with
// it omitted so the two modes can be compared directly.
func runMatrix(cfg harness.Config, vec []byte, emit func(harness.Result)) {
	measure[[1]byte](cfg, transform.SafeBoundedReturn[[1]byte]{}, vec, emit)
	measure[[1]byte](cfg, transform.SafeDynamicReturn[[1]byte]{}, vec, emit)
	measure[[4]byte](cfg, transform.SafeBoundedReturn[[4]byte]{}, vec, emit)
	measure[[4]byte](cfg, transform.SafeDynamicReturn[[4]byte]{}, vec, emit)
	measure[[10]byte](cfg, transform.SafeBoundedReturn[[10]byte]{}, vec, emit)
	measure[[10]byte](cfg, transform.SafeDynamicReturn[[10]byte]{}, vec, emit)
	measure[[64]byte](cfg, transform.SafeBoundedReturn[[64]byte]{}, vec, emit)
	measure[[64]byte](cfg, transform.SafeDynamicReturn[[64]byte]{}, vec, emit)
	measure[[64]byte](cfg, transform.BoundedReturn[[64]byte]{}, vec, emit)
	measure[[64]byte](cfg, transform.DynamicReturn[[64]byte]{}, vec, emit)
	measure[[128]byte](cfg, transform.SafeBoundedReturn[[128]byte]{}, vec, emit)
	measure[[128]byte](cfg, transform.SafeDynamicReturn[[128]byte]{}, vec, emit)
	measure[[256]byte](cfg, transform.SafeBoundedReturn[[256]byte]{}, vec, emit)
	measure[[256]byte](cfg, transform.SafeDynamicReturn[[256]byte]{}, vec, emit)
	measure[[512]byte](cfg, transform.SafeBoundedReturn[[512]byte]{}, vec, emit)
	measure[[512]byte](cfg, transform.SafeDynamicReturn[[512]byte]{}, vec, emit)
	measure[[1024]byte](cfg, transform.SafeBoundedReturn[[1024]byte]{}, vec, emit)
	measure[[1024]byte](cfg, transform.SafeDynamicReturn[[1024]byte]{}, vec, emit)
	measure[[2048]byte](cfg, transform.SafeBoundedReturn[[2048]byte]{}, vec, emit)
	measure[[2048]byte](cfg, transform.SafeDynamicReturn[[2048]byte]{}, vec, emit)
	measure[[4096]byte](cfg, transform.SafeBoundedReturn[[4096]byte]{}, vec, emit)
	measure[[4096]byte](cfg, transform.SafeDynamicReturn[[4096]byte]{}, vec, emit)
	// Capacities of 8192 and above are out of scope: inline values that
	// large made the measurements unreliable.
}

// measure runs one benchmark point, skipping it when the vector would not
// fit the capacity. Truncated results would look misleadingly fast.
func measure[S transform.Storage, M transform.Method[S]](
	cfg harness.Config,
	m M,
	vec []byte,
	emit func(harness.Result),
) {
	if transform.Capacity[S]() < len(vec) {
		return
	}

	emit(harness.Run[S](cfg, m, vec))
}
