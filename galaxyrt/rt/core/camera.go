package core

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

const maxPitch = math.Pi/2 - 0.01

// OrbitCamera circles Target at Distance. Y is up.
type OrbitCamera struct {
	Target      mgl32.Vec3
	Distance    float32
	Yaw         float32
	Pitch       float32
	FovDegrees  float32
	Sensitivity float32
	ZoomStep    float32
	MinDistance float32
	MaxDistance float32
}

func NewOrbitCamera() *OrbitCamera {
	return &OrbitCamera{
		Target:      mgl32.Vec3{0, 0, 0},
		Distance:    5,
		FovDegrees:  75,
		Sensitivity: 0.005,
		ZoomStep:    0.9,
		MinDistance: 0.5,
		MaxDistance: 200,
	}
}

func (c *OrbitCamera) Position() mgl32.Vec3 {
	cp := float32(math.Cos(float64(c.Pitch)))
	offset := mgl32.Vec3{
		cp * float32(math.Sin(float64(c.Yaw))),
		float32(math.Sin(float64(c.Pitch))),
		cp * float32(math.Cos(float64(c.Yaw))),
	}
	return c.Target.Add(offset.Mul(c.Distance))
}

func (c *OrbitCamera) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(c.Position(), c.Target, mgl32.Vec3{0, 1, 0})
}

func (c *OrbitCamera) ProjectionMatrix(aspect float32) mgl32.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return mgl32.Perspective(mgl32.DegToRad(c.FovDegrees), aspect, 0.1, 1000)
}

// Orbit applies a cursor drag of (dx, dy) pixels.
func (c *OrbitCamera) Orbit(dx, dy float32) {
	c.Yaw -= dx * c.Sensitivity
	c.Pitch += dy * c.Sensitivity
	c.Pitch = mgl32.Clamp(c.Pitch, -maxPitch, maxPitch)
}

// Zoom moves toward the target for positive steps and away for negative ones.
func (c *OrbitCamera) Zoom(steps float32) {
	c.Distance *= float32(math.Pow(float64(c.ZoomStep), float64(steps)))
	c.Distance = mgl32.Clamp(c.Distance, c.MinDistance, c.MaxDistance)
}
