package galaxy

import (
	"time"
)

// Clock reports seconds since scene start.
type Clock interface {
	Elapsed() float64
}

// SystemClock is monotonic; it starts counting at construction.
type SystemClock struct {
	start time.Time
}

func NewSystemClock() *SystemClock {
	return &SystemClock{start: time.Now()}
}

func (c *SystemClock) Elapsed() float64 {
	return time.Since(c.start).Seconds()
}

// ManualClock only moves when told to.
type ManualClock struct {
	Seconds float64
}

func (c *ManualClock) Elapsed() float64 { return c.Seconds }

func (c *ManualClock) Advance(d time.Duration) {
	c.Seconds += d.Seconds()
}

type Time struct {
	Clock   Clock
	Elapsed float64
	Dt      float64
	Frames  uint64
}

type TimeModule struct {
	Clock Clock
}

func (mod TimeModule) Install(app *App, cmd *Commands) {
	clock := mod.Clock
	if clock == nil {
		clock = NewSystemClock()
	}
	cmd.AddResources(&Time{Clock: clock})
	cmd.UseSystem(System(timeSystem).InStage(Prelude))
}

func timeSystem(timeResource *Time) {
	now := timeResource.Clock.Elapsed()
	if now < timeResource.Elapsed {
		now = timeResource.Elapsed
	}

	timeResource.Dt = now - timeResource.Elapsed
	timeResource.Elapsed = now
	timeResource.Frames++
}

// FrameLimitModule exits after Frames frames. Zero means no limit.
type FrameLimitModule struct {
	Frames uint64
}

func (mod FrameLimitModule) Install(app *App, cmd *Commands) {
	if mod.Frames == 0 {
		return
	}
	limit := mod.Frames
	cmd.UseSystem(System(func(cmd *Commands, t *Time) {
		if t.Frames >= limit {
			cmd.Exit(nil)
		}
	}).InStage(Finale))
}
