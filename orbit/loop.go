// Package orbit drives the render loop: it polls the platform, honors
// the close latch, brackets each iteration with the frame guard and
// owns the pacing policy.
package orbit

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/rafx-go/rafx/cadence"
	"github.com/rafx-go/rafx/glint"
)

// FrameFunc records the rendering work of one frame.
type FrameFunc func(*cadence.Frame) error

// Driver is the outer control loop. It is the only component that
// loops; the window and guard are driven synchronously from within it.
type Driver struct {
	Window *glint.Window
	Guard  *cadence.Guard

	// MaxFPS caps the loop rate with a sleep. Zero leaves pacing to
	// the device's present mode (vsync).
	MaxFPS int

	Times FrameTimes
}

// Run loops until the window's close latch is set, then returns nil.
// Every iteration polls the platform exactly once, then attempts a
// frame; iterations without a presentable surface skip the callback
// entirely. Once the latch is observed no further frame is begun.
func (d *Driver) Run(frame FrameFunc) error {
	for {
		if err := d.Window.Poll(); err != nil {
			return fmt.Errorf("poll events: %w", err)
		}

		if d.Window.ShouldClose() {
			return nil
		}

		started := time.Now()

		if d.Times.Tick() {
			slog.Debug("Frame stats",
				slog.Float64("fps", d.Times.FPS()),
				slog.Duration("max", d.Times.Max),
			)
		}

		if err := d.step(frame); err != nil {
			return err
		}

		d.pace(started)
	}
}

// step brackets one frame. The guard token is closed on every path,
// including a failing callback, so caller code cannot leak an open
// frame past its iteration.
func (d *Driver) step(frame FrameFunc) error {
	f, err := d.Guard.Begin()
	if err != nil {
		return fmt.Errorf("begin frame: %w", err)
	}

	if f == nil {
		// surface unavailable, skip this iteration
		return nil
	}

	if err := frame(f); err != nil {
		if endErr := f.End(); endErr != nil && !errors.Is(endErr, cadence.ErrSurfaceOutOfDate) {
			slog.Warn("End frame after callback failure", slog.Any("error", endErr))
		}

		return fmt.Errorf("frame callback: %w", err)
	}

	if err := f.End(); err != nil {
		if errors.Is(err, cadence.ErrSurfaceOutOfDate) {
			slog.Debug("Present skipped, surface out of date")
			return nil
		}

		return fmt.Errorf("end frame: %w", err)
	}

	return nil
}

func (d *Driver) pace(started time.Time) {
	if d.MaxFPS <= 0 {
		return
	}

	budget := time.Second / time.Duration(d.MaxFPS)
	if sleep := budget - time.Since(started); sleep > 0 {
		time.Sleep(sleep)
	}
}
