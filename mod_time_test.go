package galaxy

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeModule_ManualClock(t *testing.T) {
	clock := &ManualClock{}
	app := NewApp()
	app.UseModules(TimeModule{Clock: clock})
	tm, ok := Resource[Time](app)
	require.True(t, ok)

	app.Step()
	assert.Equal(t, 0.0, tm.Elapsed)
	assert.Equal(t, uint64(1), tm.Frames)

	clock.Advance(1500 * time.Millisecond)
	app.Step()
	assert.InDelta(t, 1.5, tm.Elapsed, 1e-9)
	assert.InDelta(t, 1.5, tm.Dt, 1e-9)

	// A clock that goes backwards does not rewind the scene.
	clock.Seconds = 0.5
	app.Step()
	assert.InDelta(t, 1.5, tm.Elapsed, 1e-9)
	assert.Equal(t, 0.0, tm.Dt)
}

func TestSystemClock_Monotonic(t *testing.T) {
	c := NewSystemClock()
	a := c.Elapsed()
	b := c.Elapsed()
	assert.GreaterOrEqual(t, a, 0.0)
	assert.GreaterOrEqual(t, b, a)
}

func TestFrameLimitModule(t *testing.T) {
	app := NewApp()
	app.UseModules(TimeModule{Clock: &ManualClock{}}, FrameLimitModule{Frames: 3})
	tm, _ := Resource[Time](app)

	require.NoError(t, app.Run())
	assert.Equal(t, uint64(3), tm.Frames)
}
