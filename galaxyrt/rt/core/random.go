package core

import (
	"math/rand/v2"
)

// RandomSource yields uniform samples in [0,1).
type RandomSource interface {
	Float64() float64
}

// NewRandomSource returns a PCG-backed source. Equal seeds give equal streams.
func NewRandomSource(seed uint64) RandomSource {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Uniform maps a [0,1) sample onto [min,max).
func Uniform(rng RandomSource, min, max float64) float64 {
	return min + rng.Float64()*(max-min)
}
