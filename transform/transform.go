package transform

import "errors"

// ErrOutOfMemory is raised (as a panic value) by the dynamic branch when an
// allocation would exceed the configured limit. It is the only failure the
// Safe methods recover from.
var ErrOutOfMemory = errors.New("transform: out of memory")

// Result holds the output of one transformation: exactly one of the two
// arms is populated per call, selected by the Method that produced it.
// Like a tagged union, the value's footprint is that of the larger arm
// regardless of which one is active.
type Result[S Storage] struct {
	Bounded   Bounded[S]
	Dynamic   []byte
	IsDynamic bool
}

// Method is one fully specialized transformation: a return strategy plus a
// fault-handling mode over a fixed capacity. Each concrete Method type is a
// single branch-free arm, so instantiating the harness with one gives the
// compiler the whole configuration as constants.
type Method[S Storage] interface {
	// Transform copies src into the method's output representation.
	Transform(src []byte) Result[S]
	// Dynamic reports whether the heap-slice strategy is in use.
	Dynamic() bool
	// Recovers reports whether failure-recovery scaffolding is present.
	Recovers() bool
}

// BoundedReturn returns the input through a fixed-capacity inline buffer,
// truncating oversized input. No failure recovery (inline construction
// cannot fail).
type BoundedReturn[S Storage] struct{}

func (BoundedReturn[S]) Transform(src []byte) Result[S] {
	return Result[S]{Bounded: NewBounded[S](src)}
}

func (BoundedReturn[S]) Dynamic() bool  { return false }
func (BoundedReturn[S]) Recovers() bool { return false }

// DynamicReturn returns the input through a freshly allocated byte slice.
// Limit, when nonzero, caps the allocation size; exceeding it raises
// ErrOutOfMemory, modeling allocator exhaustion. No failure recovery: a
// raised failure propagates and is fatal at the top level.
type DynamicReturn[S Storage] struct {
	Limit int
}

func (m DynamicReturn[S]) Transform(src []byte) Result[S] {
	if m.Limit > 0 && len(src) > m.Limit {
		panic(ErrOutOfMemory)
	}

	out := make([]byte, len(src))
	copy(out, src)

	return Result[S]{Dynamic: out, IsDynamic: true}
}

func (DynamicReturn[S]) Dynamic() bool  { return true }
func (DynamicReturn[S]) Recovers() bool { return false }

// SafeBoundedReturn is BoundedReturn with the recovery scaffolding present.
// The inline branch never fails, so the deferred recover exists purely to
// carry the scaffolding's cost; on the success path its output is identical
// to BoundedReturn's.
type SafeBoundedReturn[S Storage] struct{}

func (SafeBoundedReturn[S]) Transform(src []byte) (r Result[S]) {
	defer recoverOOM(&r)

	return BoundedReturn[S]{}.Transform(src)
}

func (SafeBoundedReturn[S]) Dynamic() bool  { return false }
func (SafeBoundedReturn[S]) Recovers() bool { return true }

// SafeDynamicReturn is DynamicReturn with the recovery scaffolding present:
// an out-of-memory failure is converted into an empty dynamic result
// instead of propagating.
type SafeDynamicReturn[S Storage] struct {
	Limit int
}

func (m SafeDynamicReturn[S]) Transform(src []byte) (r Result[S]) {
	defer recoverOOM(&r)

	return DynamicReturn[S]{Limit: m.Limit}.Transform(src)
}

func (SafeDynamicReturn[S]) Dynamic() bool  { return true }
func (SafeDynamicReturn[S]) Recovers() bool { return true }

// recoverOOM turns an in-flight ErrOutOfMemory panic into an empty dynamic
// result. Any other panic value is repropagated untouched.
func recoverOOM[S Storage](r *Result[S]) {
	rec := recover()
	if rec == nil {
		return
	}

	if err, ok := rec.(error); ok && errors.Is(err, ErrOutOfMemory) {
		*r = Result[S]{Dynamic: []byte{}, IsDynamic: true}

		return
	}

	panic(rec)
}
