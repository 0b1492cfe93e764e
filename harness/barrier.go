package harness

import "runtime"

// Sink is an optimization barrier: it forces v to be fully materialized by
// passing it across a call the compiler may not inline, preventing the
// computation that produced it from being eliminated or hoisted. The
// argument is taken by value, so the copy cost is constant per type and
// identical across the strategies being compared.
//
//go:noinline
func Sink[T any](v T) {
	runtime.KeepAlive(v)
}

// SinkPtr is the read-modify form of Sink: the callee holds a pointer to v,
// so the compiler must treat v as both read and potentially written, and
// cannot reuse a stale copy afterwards. Note that taking the address makes
// v escape, which changes its allocation behavior; the iteration driver
// uses Sink for that reason.
//
//go:noinline
func SinkPtr[T any](v *T) {
	runtime.KeepAlive(v)
}
