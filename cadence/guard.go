package cadence

import (
	"errors"
	"fmt"
	"log/slog"
)

type guardState uint8

const (
	stateIdle guardState = iota
	stateOpen
	stateInvalidated
)

// Guard is the begin/end frame state machine. It owns the surface
// generation counter and guarantees that at most one frame is open at
// any instant.
type Guard struct {
	window WindowState
	device Device

	state      guardState
	generation uint64

	// size the device surface is currently configured for
	width, height int
	configured    bool

	open *Frame
}

// NewGuard creates a guard in the Idle state. The device is configured
// lazily on the first Begin.
func NewGuard(window WindowState, device Device) *Guard {
	return &Guard{window: window, device: device}
}

// Generation reports the surface generation. It increments once per
// invalidation episode, never otherwise, so anything built for an
// older generation is stale.
func (g *Guard) Generation() uint64 {
	return g.generation
}

// Invalidated reports whether the guard is waiting for the surface to
// become presentable again.
func (g *Guard) Invalidated() bool {
	return g.state == stateInvalidated
}

// invalidate enters the Invalidated state and bumps the generation,
// once per episode. Re-invalidating while already invalidated is a
// no-op so a long minimize counts as a single recreation.
func (g *Guard) invalidate(reason string) {
	if g.state == stateInvalidated {
		return
	}

	g.state = stateInvalidated
	g.configured = false
	g.generation++

	slog.Debug("Surface invalidated",
		slog.String("reason", reason),
		slog.Uint64("generation", g.generation),
	)
}

// Begin opens the next frame against the current window state.
//
// It returns a nil Frame without error when the surface is unavailable
// (window minimized, or not yet recreatable after invalidation); the
// caller must skip all rendering work for this iteration. Calling
// Begin while a frame is open returns ErrFrameSequence and leaves the
// open frame's token valid.
func (g *Guard) Begin() (*Frame, error) {
	if g.state == stateOpen {
		return nil, fmt.Errorf("%w: Begin while a frame is open", ErrFrameSequence)
	}

	width, height := g.window.Size()
	if g.window.Minimized() || width == 0 || height == 0 {
		g.invalidate("window minimized")
		return nil, nil
	}

	if g.configured && (width != g.width || height != g.height) {
		g.invalidate("window resized")
	}

	if !g.configured {
		if err := g.device.Configure(width, height); err != nil {
			// surface cannot be recreated yet, retry next iteration
			g.invalidate("configure failed")
			slog.Debug("Surface configure failed", slog.Any("error", err))
			return nil, nil
		}

		g.width = width
		g.height = height
		g.configured = true
	}

	target, err := g.device.Acquire()
	if err != nil {
		if errors.Is(err, ErrSurfaceOutOfDate) {
			g.invalidate("acquire out of date")
			return nil, nil
		}

		return nil, fmt.Errorf("acquire surface: %w", err)
	}

	g.state = stateOpen
	g.open = &Frame{
		guard:      g,
		target:     target,
		width:      width,
		height:     height,
		generation: g.generation,
	}

	return g.open, nil
}

// Frame is the token for one open frame. It pins the surface size the
// frame was opened with; a resize arriving mid-frame is only visible
// to the next Begin. The token is spent once End returns.
type Frame struct {
	guard      *Guard
	target     Target
	width      int
	height     int
	generation uint64
	done       bool
}

// Size reports the surface size this frame was opened with.
func (f *Frame) Size() (int, int) {
	return f.width, f.height
}

// Generation reports the surface generation this frame belongs to.
func (f *Frame) Generation() uint64 {
	return f.generation
}

// Target exposes the acquired presentable surface for recording.
func (f *Frame) Target() Target {
	return f.target
}

// End submits the frame's recorded work and presents it, returning the
// guard to Idle.
//
// An out-of-date present (resize race) is absorbed: the guard
// invalidates, and the returned error matches ErrSurfaceOutOfDate so
// the caller can treat the frame as skipped. Ending a frame twice, or
// ending a token that is not the open one, returns ErrFrameSequence.
func (f *Frame) End() error {
	g := f.guard

	if f.done || g.open != f {
		return fmt.Errorf("%w: End on a frame that is not open", ErrFrameSequence)
	}

	f.done = true
	g.open = nil
	g.state = stateIdle

	if err := g.device.Present(f.target); err != nil {
		f.target.Release()

		if errors.Is(err, ErrSurfaceOutOfDate) {
			g.invalidate("present out of date")
			return fmt.Errorf("present: %w", err)
		}

		return fmt.Errorf("present: %w", err)
	}

	return nil
}
