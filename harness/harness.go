package harness

import (
	"io"
	"log/slog"
	"slices"
	"time"

	"github.com/weiihann/bufbench/transform"
)

const (
	// DefaultSamples is the number of timed trials per benchmark point.
	DefaultSamples = 1000
	// DefaultScaling is the number of transformations per trial, chosen to
	// keep trial durations well above timer granularity.
	DefaultScaling = 10000
)

// Config holds parameters for a single benchmark point measurement.
// Zero values fall back to the defaults a full run uses; tests override
// them to run small schedules.
type Config struct {
	Samples int
	Scaling int
	Logger  *slog.Logger
}

func (c Config) withDefaults() Config {
	if c.Samples <= 0 {
		c.Samples = DefaultSamples
	}

	if c.Scaling <= 0 {
		c.Scaling = DefaultScaling
	}

	if c.Logger == nil {
		c.Logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	return c
}

// Run measures method m against data and returns the median per-call
// latency. It times cfg.Samples trials, each an amortized loop of
// cfg.Scaling transformations, sorts the per-call durations ascending, and
// reports the sample at index len/2. For an even sample count that is the
// upper-middle element, not an averaged pair; the convention is kept for
// compatibility with prior result sets.
func Run[S transform.Storage, M transform.Method[S]](
	cfg Config,
	m M,
	data []byte,
) Result {
	cfg = cfg.withDefaults()

	samples := collect[S](cfg, m, data)
	med := median(samples)

	cfg.Logger.Debug("point measured",
		slog.Int("data_size", len(data)),
		slog.Int("capacity", transform.Capacity[S]()),
		slog.Bool("dynamic", m.Dynamic()),
		slog.Bool("recovered", m.Recovers()),
		slog.Duration("median", med),
	)

	return Result{
		DataSize:  len(data),
		Capacity:  transform.Capacity[S](),
		MedianNs:  med.Nanoseconds(),
		Dynamic:   m.Dynamic(),
		Recovered: m.Recovers(),
	}
}

// collect times cfg.Samples trials of the amortized iteration loop and
// returns one per-call duration per trial, in collection order.
func collect[S transform.Storage, M transform.Method[S]](
	cfg Config,
	m M,
	data []byte,
) []time.Duration {
	samples := make([]time.Duration, 0, cfg.Samples)

	for len(samples) < cfg.Samples {
		start := time.Now()
		n := iterate[S](m, data, cfg.Scaling)
		elapsed := time.Since(start)

		samples = append(samples, elapsed/time.Duration(n))
	}

	return samples
}

// median sorts samples in place and returns the element at index len/2,
// the upper-middle sample for even counts.
func median(samples []time.Duration) time.Duration {
	slices.Sort(samples)

	return samples[len(samples)/2]
}

// iterate runs the transformation scaling times over the same input,
// passing every result through the optimization barrier so none of the
// work can be elided. It returns the iteration count so the caller can
// compute a per-call duration.
func iterate[S transform.Storage, M transform.Method[S]](
	m M,
	data []byte,
	scaling int,
) int {
	for i := 0; i < scaling; i++ {
		Sink(m.Transform(data))
	}

	return scaling
}
