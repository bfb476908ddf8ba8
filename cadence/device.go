// Package cadence brackets each rendering cycle: it guards the
// begin/end frame contract, tracks surface invalidation across resizes
// and minimizes, and hands out at most one frame token at a time.
package cadence

import "errors"

var (
	// ErrSurfaceOutOfDate reports that the presentable surface no
	// longer matches the window and must be recreated. Recoverable:
	// the guard absorbs it into the Invalidated state and the next
	// Begin reconfigures the device.
	ErrSurfaceOutOfDate = errors.New("surface out of date")

	// ErrFrameSequence reports a Begin or End call outside the allowed
	// ordering. Always surfaced, never corrected.
	ErrFrameSequence = errors.New("frame sequence violation")
)

// Target is one acquired presentable surface, valid for a single
// frame. Present consumes it; Release drops it without presenting.
type Target interface {
	Release()
}

// Device is the capability consumed from the rendering device.
type Device interface {
	// Configure (re)creates the presentable surface at the given size.
	Configure(width, height int) error

	// Acquire obtains the next presentable target. Fails with
	// ErrSurfaceOutOfDate after a resize race.
	Acquire() (Target, error)

	// Present submits recorded work and shows the target. On success
	// the target is consumed. Fails with ErrSurfaceOutOfDate when the
	// surface was invalidated mid-frame.
	Present(Target) error
}

// WindowState is the settled platform state the guard consults at
// Begin. *glint.Window satisfies it.
type WindowState interface {
	Size() (int, int)
	Minimized() bool
}
