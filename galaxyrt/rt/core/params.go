package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const (
	DefaultCount      = 30000
	DefaultRadius     = 5.0
	DefaultBranches   = 3
	DefaultSpinning   = 3.0
	DefaultRandomness = 10.0

	// MaxSupportedCount is the largest particle total the renderer is tuned
	// for. Larger counts still generate; frame timing is the caller's problem.
	MaxSupportedCount = 1_000_000
)

// ParameterSet describes one galaxy instance. It is a value: replace it whole
// to change anything.
type ParameterSet struct {
	Count      int
	Radius     float64
	Branches   int
	Spinning   float64
	Randomness float64
	InColor    Color
	OutColor   Color

	// Transform only; never affects generation.
	Position mgl32.Vec3
	Scale    mgl32.Vec3
	Rotation mgl32.Vec3 // Euler XYZ, radians
}

func DefaultParameterSet() ParameterSet {
	return ParameterSet{
		Count:      DefaultCount,
		Radius:     DefaultRadius,
		Branches:   DefaultBranches,
		Spinning:   DefaultSpinning,
		Randomness: DefaultRandomness,
		InColor:    Black,
		OutColor:   White,
		Position:   mgl32.Vec3{0, 0, 0},
		Scale:      mgl32.Vec3{1, 1, 1},
		Rotation:   mgl32.Vec3{0, 0, 0},
	}
}

// GenerationKey is the comparable subset of a ParameterSet that the particle
// buffers depend on.
type GenerationKey struct {
	Count      int
	Radius     float64
	Branches   int
	Spinning   float64
	Randomness float64
	InColor    Color
	OutColor   Color
}

func (p ParameterSet) GenerationKey() GenerationKey {
	return GenerationKey{
		Count:      p.Count,
		Radius:     p.Radius,
		Branches:   p.Branches,
		Spinning:   p.Spinning,
		Randomness: p.Randomness,
		InColor:    p.InColor,
		OutColor:   p.OutColor,
	}
}

// SameTransform reports whether p and o place the galaxy identically.
func (p ParameterSet) SameTransform(o ParameterSet) bool {
	return p.Position == o.Position && p.Scale == o.Scale && p.Rotation == o.Rotation
}

// Validate rejects out-of-range values instead of clamping them.
func (p ParameterSet) Validate() error {
	if p.Count < 0 {
		return &ParamError{Field: "count", Value: p.Count, Rule: "must be >= 0"}
	}
	if p.Branches < 1 {
		return &ParamError{Field: "branches", Value: p.Branches, Rule: "must be >= 1"}
	}
	scalars := []struct {
		name string
		v    float64
	}{
		{"radius", p.Radius},
		{"spinning", p.Spinning},
		{"randomness", p.Randomness},
	}
	for _, s := range scalars {
		if math.IsNaN(s.v) || math.IsInf(s.v, 0) {
			return &ParamError{Field: s.name, Value: s.v, Rule: "must be finite"}
		}
	}
	if p.Radius < 0 {
		return &ParamError{Field: "radius", Value: p.Radius, Rule: "must be >= 0"}
	}
	// pow(0, negative) is +Inf, which would leak into positions.
	if p.Randomness < 0 {
		return &ParamError{Field: "randomness", Value: p.Randomness, Rule: "must be >= 0"}
	}
	return nil
}
