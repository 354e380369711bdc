package core

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// seqSource replays vals in a loop.
type seqSource struct {
	vals []float64
	i    int
}

func (s *seqSource) Float64() float64 {
	v := s.vals[s.i%len(s.vals)]
	s.i++
	return v
}

func TestGenerate_Lengths(t *testing.T) {
	for _, count := range []int{0, 1, 2, 3, 7, 1000} {
		p := DefaultParameterSet()
		p.Count = count

		buf, err := Generate(p, NewRandomSource(1))
		require.NoError(t, err)
		assert.Len(t, buf.Positions, count)
		assert.Len(t, buf.Colors, count)
		assert.Len(t, buf.Speeds, count)
		assert.Equal(t, count, buf.Len())
	}
}

func TestGenerate_ZeroCount(t *testing.T) {
	p := DefaultParameterSet()
	p.Count = 0

	buf, err := Generate(p, NewRandomSource(7))
	require.NoError(t, err)
	require.NotNil(t, buf)
	assert.Empty(t, buf.Positions)
	assert.Empty(t, buf.Colors)
	assert.Empty(t, buf.Speeds)
}

func TestGenerate_ZeroRadiusUsesOffsetsOnly(t *testing.T) {
	p := DefaultParameterSet()
	p.Count = 4
	p.Radius = 0
	p.Randomness = 2
	p.InColor = MustParseColor("#336699")

	// radius, |x|, sign x, |y|, sign y, |z|, sign z, speed
	src := &seqSource{vals: []float64{0.9, 0.5, 0.2, 0.25, 0.7, 0.1, 0.4, 0.75}}
	buf, err := Generate(p, src)
	require.NoError(t, err)

	for i := 0; i < p.Count; i++ {
		pos := buf.Positions[i]
		assert.Equal(t, float32(-0.25), pos.X(), "x of particle %d", i)
		assert.Equal(t, float32(0.0625), pos.Y(), "y of particle %d", i)
		assert.InDelta(t, -0.01, pos.Z(), 1e-7, "z of particle %d", i)
		assert.Equal(t, p.InColor.Vec3(), buf.Colors[i])
		assert.Equal(t, float32(0.25), buf.Speeds[i])
	}
}

func TestGenerate_NoNaN(t *testing.T) {
	cases := []ParameterSet{
		DefaultParameterSet(),
		func() ParameterSet { p := DefaultParameterSet(); p.Radius = 0; return p }(),
		func() ParameterSet { p := DefaultParameterSet(); p.Randomness = 0; return p }(),
		func() ParameterSet { p := DefaultParameterSet(); p.Spinning = -4; p.Branches = 1; return p }(),
	}
	for _, p := range cases {
		p.Count = 2000
		buf, err := Generate(p, NewRandomSource(3))
		require.NoError(t, err)
		for i, pos := range buf.Positions {
			for axis := 0; axis < 3; axis++ {
				v := float64(pos[axis])
				if math.IsNaN(v) || math.IsInf(v, 0) {
					t.Fatalf("particle %d axis %d is %v", i, axis, v)
				}
			}
		}
	}
}

func TestGenerate_BranchResidue(t *testing.T) {
	const branches = 3
	for i := 0; i < 30; i++ {
		assert.Equal(t, BranchAngle(i, branches), BranchAngle(i+branches, branches))
	}
	assert.Equal(t, 0.0, BranchAngle(0, branches))
	assert.InDelta(t, 2*math.Pi/3, BranchAngle(1, branches), 1e-12)
	assert.InDelta(t, 4*math.Pi/3, BranchAngle(5, branches), 1e-12)

	// With every draw fixed, only the branch term separates particles.
	p := DefaultParameterSet()
	p.Count = 12
	p.Branches = branches
	buf, err := Generate(p, &seqSource{vals: []float64{0.25}})
	require.NoError(t, err)
	for i := 0; i+branches < p.Count; i++ {
		assert.Equal(t, buf.Positions[i], buf.Positions[i+branches], "particles %d and %d", i, i+branches)
	}
	assert.NotEqual(t, buf.Positions[0], buf.Positions[1])
}

func TestGenerate_SpiralLaw(t *testing.T) {
	p := DefaultParameterSet()
	p.Count = 2
	p.Radius = 4
	p.Spinning = 0.5
	p.Branches = 2
	p.Randomness = 1

	// radius draw 0.5 -> radiusCalc 2, spin 1; offsets pow(0,1) = 0.
	buf, err := Generate(p, &seqSource{vals: []float64{0.5, 0, 0.9, 0, 0.9, 0, 0.9, 0.5}})
	require.NoError(t, err)

	assert.InDelta(t, math.Cos(1)*2, buf.Positions[0].X(), 1e-6)
	assert.InDelta(t, 0, buf.Positions[0].Y(), 1e-6)
	assert.InDelta(t, math.Sin(1)*2, buf.Positions[0].Z(), 1e-6)

	assert.InDelta(t, math.Cos(math.Pi+1)*2, buf.Positions[1].X(), 1e-6)
	assert.InDelta(t, math.Sin(math.Pi+1)*2, buf.Positions[1].Z(), 1e-6)
}

func TestGenerate_ColorBoundaries(t *testing.T) {
	in := MustParseColor("#1b3984")
	out := MustParseColor("#ff6030")

	assert.Equal(t, in.Vec3(), MixColor(in.Vec3(), out.Vec3(), 0))
	assert.Equal(t, out.Vec3(), MixColor(in.Vec3(), out.Vec3(), 1))

	p := DefaultParameterSet()
	p.Count = 5
	p.InColor = in
	p.OutColor = out

	atCenter, err := Generate(p, &seqSource{vals: []float64{0}})
	require.NoError(t, err)
	atEdge, err := Generate(p, &seqSource{vals: []float64{1}})
	require.NoError(t, err)
	for i := 0; i < p.Count; i++ {
		assert.Equal(t, in.Vec3(), atCenter.Colors[i])
		assert.Equal(t, out.Vec3(), atEdge.Colors[i])
	}
}

func TestGenerate_SpeedRange(t *testing.T) {
	p := DefaultParameterSet()
	p.Count = 5000
	buf, err := Generate(p, NewRandomSource(11))
	require.NoError(t, err)
	for i, s := range buf.Speeds {
		if s < -0.5 || s >= 0.5 {
			t.Fatalf("speed %d out of range: %v", i, s)
		}
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	p := DefaultParameterSet()
	p.Count = 500

	a, err := Generate(p, NewRandomSource(42))
	require.NoError(t, err)
	b, err := Generate(p, NewRandomSource(42))
	require.NoError(t, err)
	c, err := Generate(p, NewRandomSource(43))
	require.NoError(t, err)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a.Positions, c.Positions)
}

func TestGenerate_RandomnessTightensArms(t *testing.T) {
	meanAbsY := func(randomness float64) float64 {
		p := DefaultParameterSet()
		p.Count = 4000
		p.Randomness = randomness
		buf, err := Generate(p, NewRandomSource(5))
		require.NoError(t, err)
		sum := 0.0
		for _, pos := range buf.Positions {
			sum += math.Abs(float64(pos.Y()))
		}
		return sum / float64(p.Count)
	}

	assert.Less(t, meanAbsY(10), meanAbsY(1))
}

func TestGenerate_InvalidParameters(t *testing.T) {
	cases := []struct {
		name  string
		field string
		edit  func(*ParameterSet)
	}{
		{"negative count", "count", func(p *ParameterSet) { p.Count = -1 }},
		{"negative radius", "radius", func(p *ParameterSet) { p.Radius = -0.5 }},
		{"zero branches", "branches", func(p *ParameterSet) { p.Branches = 0 }},
		{"negative randomness", "randomness", func(p *ParameterSet) { p.Randomness = -1 }},
		{"nan radius", "radius", func(p *ParameterSet) { p.Radius = math.NaN() }},
		{"infinite spin", "spinning", func(p *ParameterSet) { p.Spinning = math.Inf(1) }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p := DefaultParameterSet()
			tc.edit(&p)

			buf, err := Generate(p, NewRandomSource(1))
			assert.Nil(t, buf)
			require.ErrorIs(t, err, ErrInvalidParameter)

			var pe *ParamError
			require.True(t, errors.As(err, &pe))
			assert.Equal(t, tc.field, pe.Field)
		})
	}
}

func TestMixColor_Midpoint(t *testing.T) {
	got := MixColor(mgl32.Vec3{0, 0, 0}, mgl32.Vec3{1, 0.5, 0.25}, 0.5)
	assert.Equal(t, mgl32.Vec3{0.5, 0.25, 0.125}, got)
}
