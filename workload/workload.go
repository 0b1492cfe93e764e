// Package workload generates the random byte vectors fed to the benchmark.
// Each vector is produced once and then shared read-only by every benchmark
// point that uses its size.
package workload

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	mrand "math/rand"
)

// Config controls test-vector generation.
type Config struct {
	// Seed for the pseudo-random engine. Zero draws a fresh seed from the
	// operating system's entropy source, so runs are not reproducible
	// unless a seed is given explicitly.
	Seed int64
}

// Generator produces random byte vectors. The engine is local to the
// Generator; no process-wide random state is touched.
type Generator struct {
	rng *mrand.Rand
}

// NewGenerator creates a Generator from the given Config.
func NewGenerator(cfg Config) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = entropySeed()
	}

	return &Generator{
		rng: mrand.New(mrand.NewSource(seed)),
	}
}

// Generate returns exactly length uniformly random bytes.
func (g *Generator) Generate(length int) []byte {
	buf := make([]byte, length)
	g.rng.Read(buf)

	return buf
}

// Vectors returns test vectors of length size*size for size = 1..maxSize,
// in increasing order.
func (g *Generator) Vectors(maxSize int) [][]byte {
	vectors := make([][]byte, 0, maxSize)
	for size := 1; size <= maxSize; size++ {
		vectors = append(vectors, g.Generate(size*size))
	}

	return vectors
}

// entropySeed draws a seed from the OS entropy source. A failing entropy
// source is fatal; there is nothing sensible to fall back to.
func entropySeed() int64 {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		panic(fmt.Sprintf("workload: read entropy source: %v", err))
	}

	return int64(binary.LittleEndian.Uint64(buf[:]))
}
