package physics

import (
	"time"

	"particleview/pkg/vmath"
)

// FrameTimer measures the elapsed time between frames.
type FrameTimer struct {
	lastTime time.Time
}

// NewFrameTimer returns a timer whose first Tick measures from now.
func NewFrameTimer() *FrameTimer {
	return &FrameTimer{lastTime: time.Now()}
}

// Tick returns the time elapsed in seconds since the last call to Tick
// (or since the timer was created) and resets the reference point.
func (t *FrameTimer) Tick() vmath.Real {
	now := time.Now()
	dt := now.Sub(t.lastTime)
	t.lastTime = now
	return vmath.Real(dt.Seconds())
}
