package core

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestTransform_ObjectToWorld(t *testing.T) {
	tr := NewTransform()
	tr.Position = mgl32.Vec3{10, 20, 30}
	tr.Scale = mgl32.Vec3{2, 2, 2}
	tr.SetEuler(mgl32.Vec3{0, float32(math.Pi / 2), 0})

	got := tr.ObjectToWorld().Mul4x1(mgl32.Vec4{1, 0, 0, 1}).Vec3()
	want := mgl32.Vec3{10, 20, 28}
	if !got.ApproxEqualThreshold(want, 1e-5) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestTransform_Identity(t *testing.T) {
	tr := NewTransform()
	m := tr.ObjectToWorld()
	if !m.ApproxEqual(mgl32.Ident4()) {
		t.Errorf("new transform should be identity, got %v", m)
	}
}
