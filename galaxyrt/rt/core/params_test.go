package core

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
)

func TestDefaultParameterSet(t *testing.T) {
	p := DefaultParameterSet()

	assert.Equal(t, 30000, p.Count)
	assert.Equal(t, 5.0, p.Radius)
	assert.Equal(t, 3, p.Branches)
	assert.Equal(t, 3.0, p.Spinning)
	assert.Equal(t, 10.0, p.Randomness)
	assert.Equal(t, Black, p.InColor)
	assert.Equal(t, White, p.OutColor)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, p.Position)
	assert.Equal(t, mgl32.Vec3{1, 1, 1}, p.Scale)
	assert.Equal(t, mgl32.Vec3{0, 0, 0}, p.Rotation)
	assert.NoError(t, p.Validate())
}

func TestGenerationKey_IgnoresTransform(t *testing.T) {
	a := DefaultParameterSet()
	b := a
	b.Position = mgl32.Vec3{4, 5, 6}
	b.Scale = mgl32.Vec3{2, 2, 2}
	b.Rotation = mgl32.Vec3{0.1, 0.2, 0.3}

	assert.Equal(t, a.GenerationKey(), b.GenerationKey())
	assert.False(t, a.SameTransform(b))

	c := a
	c.OutColor = MustParseColor("#ff0000")
	assert.NotEqual(t, a.GenerationKey(), c.GenerationKey())
	assert.True(t, a.SameTransform(c))
}

func TestValidate_Boundaries(t *testing.T) {
	p := DefaultParameterSet()
	p.Count = 0
	p.Radius = 0
	p.Branches = 1
	p.Randomness = 0
	p.Spinning = -3
	assert.NoError(t, p.Validate())
}
