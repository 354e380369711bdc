package galaxy

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/gekko3d/galaxy/galaxyrt/rt/core"
)

func TestInput_Edges(t *testing.T) {
	in := &Input{}

	in.beginFrame()
	in.setPressed(KeyF3, true)
	assert.True(t, in.JustPressed[KeyF3])
	assert.True(t, in.Pressed[KeyF3])

	in.beginFrame()
	in.setPressed(KeyF3, true)
	assert.False(t, in.JustPressed[KeyF3])

	in.beginFrame()
	in.setPressed(KeyF3, false)
	assert.True(t, in.JustReleased[KeyF3])
	assert.False(t, in.Pressed[KeyF3])
}

func TestInput_CursorAndScroll(t *testing.T) {
	in := &Input{}
	in.moveCursor(100, 50)
	assert.Zero(t, in.MouseDeltaX, "first sample has no delta")

	in.moveCursor(110, 45)
	assert.Equal(t, 10.0, in.MouseDeltaX)
	assert.Equal(t, -5.0, in.MouseDeltaY)

	in.addScroll(1)
	in.addScroll(0.5)
	in.beginFrame()
	assert.Equal(t, 1.5, in.ScrollY)
	in.beginFrame()
	assert.Zero(t, in.ScrollY)
}

func TestApplyCameraInput(t *testing.T) {
	cam := core.NewOrbitCamera()
	home := *cam
	in := &Input{}

	// Press frame: no orbit yet.
	in.beginFrame()
	in.setPressed(MouseButtonLeft, true)
	in.MouseDeltaX = 100
	applyCameraInput(cam, &home, in)
	assert.Equal(t, home.Yaw, cam.Yaw)

	// Drag.
	in.beginFrame()
	in.setPressed(MouseButtonLeft, true)
	in.MouseDeltaX, in.MouseDeltaY = 100, 20
	applyCameraInput(cam, &home, in)
	assert.InDelta(t, -0.5, cam.Yaw, 1e-6)
	assert.InDelta(t, 0.1, cam.Pitch, 1e-6)

	// Scroll in plus '+' zooms two steps.
	in.beginFrame()
	in.setPressed(MouseButtonLeft, false)
	in.addScroll(1)
	in.beginFrame()
	in.setPressed(KeyEqual, true)
	applyCameraInput(cam, &home, in)
	assert.InDelta(t, home.Distance*0.81, cam.Distance, 1e-5)

	in.beginFrame()
	in.setPressed(KeyEqual, false)
	in.setPressed(KeyR, true)
	applyCameraInput(cam, &home, in)
	assert.Equal(t, home, *cam)
}
