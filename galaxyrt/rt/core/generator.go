package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// ParticleBuffer holds one generation's per-particle attributes. The three
// slices always have the same length and are never written after Generate.
type ParticleBuffer struct {
	Positions []mgl32.Vec3
	Colors    []mgl32.Vec3
	Speeds    []float32
}

func (b *ParticleBuffer) Len() int {
	if b == nil {
		return 0
	}
	return len(b.Positions)
}

// Generate lays out params.Count particles along params.Branches spiral arms.
// Per particle, rng is drawn in this order: radius, then magnitude and sign
// for X, Y, Z, then speed.
func Generate(params ParameterSet, rng RandomSource) (*ParticleBuffer, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	n := params.Count
	buf := &ParticleBuffer{
		Positions: make([]mgl32.Vec3, n),
		Colors:    make([]mgl32.Vec3, n),
		Speeds:    make([]float32, n),
	}

	in := params.InColor.Vec3()
	out := params.OutColor.Vec3()

	for i := 0; i < n; i++ {
		radiusCalc := Uniform(rng, 0, params.Radius)
		spinAngle := radiusCalc * params.Spinning
		branchAngle := BranchAngle(i, params.Branches)

		rx := randomOffset(rng, params.Randomness)
		ry := randomOffset(rng, params.Randomness)
		rz := randomOffset(rng, params.Randomness)

		angle := branchAngle + spinAngle
		buf.Positions[i] = mgl32.Vec3{
			float32(math.Cos(angle)*radiusCalc + rx),
			float32(ry),
			float32(math.Sin(angle)*radiusCalc + rz),
		}

		var t float32
		if params.Radius > 0 {
			t = float32(radiusCalc / params.Radius)
		}
		buf.Colors[i] = MixColor(in, out, t)

		buf.Speeds[i] = float32(Uniform(rng, -0.5, 0.5))
	}

	return buf, nil
}

// BranchAngle places particle i on arm i mod branches.
func BranchAngle(i, branches int) float64 {
	return float64(i%branches) / float64(branches) * 2 * math.Pi
}

func randomOffset(rng RandomSource, randomness float64) float64 {
	mag := math.Pow(rng.Float64(), randomness)
	if rng.Float64() < 0.5 {
		return -mag
	}
	return mag
}
