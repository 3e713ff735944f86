package model

import "math/rand/v2"

// Rand is the source of randomness a Grid draws from. *rand.Rand satisfies it.
type Rand interface {
	IntN(n int) int
	Float64() float64
}

// NewRand returns a deterministic PCG generator for the given seed.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewPCG(uint64(seed), 0))
}

// symmetric returns a uniform value in [-amplitude, amplitude).
func symmetric(r Rand, amplitude float64) float64 {
	return (r.Float64()*2 - 1) * amplitude
}
