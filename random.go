package sparks

import "math/rand/v2"

// Random is the source of uniform samples used by Emit. Implementations are
// not required to be safe for concurrent use; give each System its own.
type Random interface {
	// Float32 returns a uniform sample in [0, 1).
	Float32() float32
}

// NewRandom returns a deterministic PCG stream for the given seed. Two
// Systems built with the same seed and fed the same calls produce identical
// pools.
func NewRandom(seed uint64) Random {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// NewEntropyRandom returns a PCG stream seeded once from the runtime's
// entropy-seeded generator.
func NewEntropyRandom() Random {
	return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
}
