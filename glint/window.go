// Package glint owns the platform window: its native handle, its
// settled size and minimized state, and the close latch. Everything
// here runs on the thread that created the window, since most platform
// windowing APIs are thread affine.
package glint

import (
	"errors"
	"fmt"
	"log/slog"
)

var (
	// ErrPlatformUnavailable reports that the windowing system could
	// not be initialized. Fatal at startup, no retry.
	ErrPlatformUnavailable = errors.New("windowing platform unavailable")

	// ErrInvalidDescriptor reports creation parameters the platform
	// cannot honor.
	ErrInvalidDescriptor = errors.New("invalid window descriptor")

	// ErrClosed reports use of a window after Destroy.
	ErrClosed = errors.New("window already destroyed")
)

// Descriptor holds the immutable creation parameters of a window.
// Width and Height must be positive, the title may be empty.
type Descriptor struct {
	Title  string
	Width  int
	Height int
}

func (d Descriptor) validate() error {
	if d.Width <= 0 || d.Height <= 0 {
		return fmt.Errorf("%w: size %dx%d", ErrInvalidDescriptor, d.Width, d.Height)
	}

	return nil
}

// State is the settled view of the platform window. It is mutated only
// by Poll, so a frame that samples it sees one consistent size for its
// whole lifetime.
type State struct {
	Width, Height  int
	Minimized      bool
	CloseRequested bool
}

// Window is the explicit owner of one native window. Create it with
// Open (native backend) or NewMemoryWindow and destroy it exactly once.
type Window struct {
	desc      Descriptor
	backend   Backend
	state     State
	destroyed bool
}

// NewWindow creates a window over a caller-supplied backend. Most
// applications use Open or NewMemoryWindow instead.
func NewWindow(desc Descriptor, backend Backend) (*Window, error) {
	if err := desc.validate(); err != nil {
		return nil, err
	}

	return &Window{
		desc:    desc,
		backend: backend,
		state:   State{Width: desc.Width, Height: desc.Height},
	}, nil
}

// Poll drains all pending platform events and folds them into the
// window state. It never blocks. Call it once per loop iteration,
// before any frame related call.
func (w *Window) Poll() error {
	if w.destroyed {
		return ErrClosed
	}

	for _, ev := range w.backend.Poll() {
		w.apply(ev)
	}

	return nil
}

func (w *Window) apply(ev Event) {
	switch ev := ev.(type) {
	case ResizeEvent:
		slog.Debug("Window resized",
			slog.Int("width", ev.Width),
			slog.Int("height", ev.Height),
		)

		w.state.Width = ev.Width
		w.state.Height = ev.Height

	case MinimizeEvent:
		w.state.Minimized = ev.Minimized

	case CloseEvent:
		w.state.CloseRequested = true
	}
}

// ShouldClose reports the close latch as of the most recent Poll. Once
// true it never reverts.
func (w *Window) ShouldClose() bool {
	return w.state.CloseRequested
}

// RequestClose sets the close latch programmatically, with the same
// semantics as a platform close event.
func (w *Window) RequestClose() {
	if w.destroyed {
		return
	}

	w.state.CloseRequested = true
	w.backend.NotifyClose()
}

// Size reports the settled window size.
func (w *Window) Size() (int, int) {
	return w.state.Width, w.state.Height
}

// Minimized reports whether the window is iconified.
func (w *Window) Minimized() bool {
	return w.state.Minimized
}

// Title reports the title the window was created with.
func (w *Window) Title() string {
	return w.desc.Title
}

// Backend exposes the platform backend, e.g. to let a rendering device
// derive a surface from the native handle.
func (w *Window) Backend() Backend {
	return w.backend
}

// Destroy releases the native window resource. Calling it a second
// time, or using the window afterwards, returns ErrClosed.
func (w *Window) Destroy() error {
	if w.destroyed {
		return ErrClosed
	}

	w.destroyed = true
	w.backend.Destroy()

	return nil
}
