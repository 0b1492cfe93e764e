// Package transform implements the two buffer-return strategies under
// measurement: a fixed-capacity inline buffer and a heap-backed byte slice.
// Capacity, strategy, and fault handling are all selected through generic
// instantiation so every benchmark point compiles to its own specialized
// code path.
package transform

import "unsafe"

// Storage is the set of inline array types the benchmark matrix uses.
// Each array length instantiates its own Bounded specialization.
type Storage interface {
	~[1]byte | ~[4]byte | ~[10]byte | ~[64]byte | ~[128]byte | ~[256]byte |
		~[512]byte | ~[1024]byte | ~[2048]byte | ~[4096]byte
}

// Bounded is a fixed-capacity buffer whose storage lives inline in the
// value. Construction copies at most Cap bytes from the source; anything
// beyond that is silently truncated. Assignment copies contents, so two
// Bounded values never alias.
type Bounded[S Storage] struct {
	n    int
	data S
}

// NewBounded copies min(capacity, len(src)) bytes of src into a new
// Bounded value.
func NewBounded[S Storage](src []byte) Bounded[S] {
	var b Bounded[S]
	b.n = copy(b.storage(), src)

	return b
}

// Len reports the number of bytes stored.
func (b *Bounded[S]) Len() int { return b.n }

// Cap reports the fixed capacity.
func (b *Bounded[S]) Cap() int { return len(b.data) }

// Bytes returns the stored bytes. The slice aliases the receiver's inline
// storage and is invalidated by copying the value.
func (b *Bounded[S]) Bytes() []byte { return b.storage()[:b.n] }

// storage views the inline array as a byte slice. S is constrained to byte
// arrays, so reinterpreting its first element as *byte is safe.
func (b *Bounded[S]) storage() []byte {
	return unsafe.Slice((*byte)(unsafe.Pointer(&b.data)), len(b.data))
}

// Capacity reports the capacity of the Bounded specialization for S
// without constructing one.
func Capacity[S Storage]() int {
	var s S

	return len(s)
}
