package orbit

import "time"

// FrameTimes keeps a rolling view of frame durations for pacing and
// diagnostics.
type FrameTimes struct {
	FrameCount uint64
	Average    time.Duration
	Max        time.Duration

	// Delta is the time since the previous frame.
	Delta time.Duration

	lastTime time.Time
}

func (t *FrameTimes) observe(d time.Duration) {
	const window = 64

	t.Delta = d
	t.Max = max(t.Max, d)

	if t.FrameCount < window/2 {
		t.Average = d
	} else {
		t.Average = ((window-1)*t.Average + d) / window
	}
}

func (t *FrameTimes) FPS() float64 {
	if t.Average == 0 {
		return 0
	}

	return 1.0 / t.Average.Seconds()
}

// Tick records the start of a new frame. It reports true once every 60
// frames so callers can log stats at a sane rate.
func (t *FrameTimes) Tick() bool {
	now := time.Now()

	if t.FrameCount > 0 {
		t.observe(now.Sub(t.lastTime))
	}

	t.lastTime = now
	t.FrameCount += 1

	return t.FrameCount%60 == 0
}
