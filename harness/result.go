// Package harness runs timed trials of a transformation method and reports
// the median per-call latency.
package harness

// Result holds the measured outcome for one benchmark point.
type Result struct {
	DataSize  int   `json:"data_size"`
	Capacity  int   `json:"capacity"`
	MedianNs  int64 `json:"median_ns"`
	Dynamic   bool  `json:"dynamic"`
	Recovered bool  `json:"recovered"`
}
