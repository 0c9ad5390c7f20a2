package component

import "math/rand/v2"

// Rand is the random source behavior code draws from. *rand.Rand satisfies it.
type Rand interface {
	Float64() float64
}

// NewRand returns a seeded source so runs can be replayed.
func NewRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Range returns a uniform value in [lo, hi).
func Range(r Rand, lo, hi float64) float64 {
	if r == nil || hi <= lo {
		return lo
	}
	return lo + r.Float64()*(hi-lo)
}
