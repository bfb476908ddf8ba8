package cadence

import (
	"errors"
	"testing"
)

type fakeWindow struct {
	width, height int
	minimized     bool
}

func (w *fakeWindow) Size() (int, int) {
	return w.width, w.height
}

func (w *fakeWindow) Minimized() bool {
	return w.minimized
}

type fakeTarget struct {
	released bool
}

func (t *fakeTarget) Release() {
	t.released = true
}

type fakeDevice struct {
	configures [][2]int
	acquires   int
	presents   int

	configureErr error
	acquireErr   error
	presentErr   error

	lastTarget *fakeTarget
}

func (d *fakeDevice) Configure(width, height int) error {
	if d.configureErr != nil {
		return d.configureErr
	}

	d.configures = append(d.configures, [2]int{width, height})

	return nil
}

func (d *fakeDevice) Acquire() (Target, error) {
	if d.acquireErr != nil {
		err := d.acquireErr
		d.acquireErr = nil
		return nil, err
	}

	d.acquires++
	d.lastTarget = &fakeTarget{}

	return d.lastTarget, nil
}

func (d *fakeDevice) Present(Target) error {
	if d.presentErr != nil {
		err := d.presentErr
		d.presentErr = nil
		return err
	}

	d.presents++

	return nil
}

func newTestGuard() (*Guard, *fakeWindow, *fakeDevice) {
	win := &fakeWindow{width: 1280, height: 720}
	dev := &fakeDevice{}

	return NewGuard(win, dev), win, dev
}

func TestBeginEnd(t *testing.T) {
	guard, _, dev := newTestGuard()

	frame, err := guard.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}

	if frame == nil {
		t.Fatal("expected a frame, got skip")
	}

	if w, h := frame.Size(); w != 1280 || h != 720 {
		t.Fatalf("expected frame size 1280x720, got %dx%d", w, h)
	}

	if err := frame.End(); err != nil {
		t.Fatalf("end: %v", err)
	}

	if dev.presents != 1 {
		t.Fatalf("expected one present, got %d", dev.presents)
	}

	if guard.Generation() != 0 {
		t.Fatalf("generation must stay 0 on the happy path, got %d", guard.Generation())
	}

	if len(dev.configures) != 1 {
		t.Fatalf("expected a single configure, got %d", len(dev.configures))
	}
}

func TestBeginWhileOpen(t *testing.T) {
	guard, _, _ := newTestGuard()

	frame, err := guard.Begin()
	if err != nil || frame == nil {
		t.Fatalf("begin: frame=%v err=%v", frame, err)
	}

	if _, err := guard.Begin(); !errors.Is(err, ErrFrameSequence) {
		t.Fatalf("expected ErrFrameSequence on nested Begin, got %v", err)
	}

	// the first token must still be valid
	if err := frame.End(); err != nil {
		t.Fatalf("end after rejected Begin: %v", err)
	}
}

func TestEndTwice(t *testing.T) {
	guard, _, _ := newTestGuard()

	frame, err := guard.Begin()
	if err != nil || frame == nil {
		t.Fatalf("begin: frame=%v err=%v", frame, err)
	}

	if err := frame.End(); err != nil {
		t.Fatalf("end: %v", err)
	}

	if err := frame.End(); !errors.Is(err, ErrFrameSequence) {
		t.Fatalf("expected ErrFrameSequence on second End, got %v", err)
	}
}

func TestEndStaleToken(t *testing.T) {
	guard, _, _ := newTestGuard()

	first, err := guard.Begin()
	if err != nil || first == nil {
		t.Fatalf("begin: frame=%v err=%v", first, err)
	}

	if err := first.End(); err != nil {
		t.Fatalf("end: %v", err)
	}

	second, err := guard.Begin()
	if err != nil || second == nil {
		t.Fatalf("second begin: frame=%v err=%v", second, err)
	}

	if err := first.End(); !errors.Is(err, ErrFrameSequence) {
		t.Fatalf("expected ErrFrameSequence ending a stale token, got %v", err)
	}

	// the current token is unaffected by the stale End
	if err := second.End(); err != nil {
		t.Fatalf("end of current token: %v", err)
	}
}

func TestMinimizedSkips(t *testing.T) {
	guard, win, dev := newTestGuard()

	frame, err := guard.Begin()
	if err != nil || frame == nil {
		t.Fatalf("begin: frame=%v err=%v", frame, err)
	}
	if err := frame.End(); err != nil {
		t.Fatalf("end: %v", err)
	}

	win.width, win.height = 0, 0
	win.minimized = true

	for i := 0; i < 3; i++ {
		frame, err := guard.Begin()
		if err != nil {
			t.Fatalf("begin while minimized: %v", err)
		}
		if frame != nil {
			t.Fatal("expected skip while minimized")
		}
	}

	if guard.Generation() != 1 {
		t.Fatalf("minimize must bump the generation exactly once, got %d", guard.Generation())
	}

	win.width, win.height = 1280, 720
	win.minimized = false

	frame, err = guard.Begin()
	if err != nil {
		t.Fatalf("begin after restore: %v", err)
	}
	if frame == nil {
		t.Fatal("expected a frame after restore")
	}

	if guard.Generation() != 1 {
		t.Fatalf("restore must not bump the generation again, got %d", guard.Generation())
	}

	// restored surface is reconfigured exactly once
	if len(dev.configures) != 2 {
		t.Fatalf("expected 2 configures, got %d", len(dev.configures))
	}

	if err := frame.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
}

func TestZeroSizeSkipsRegardlessOfFlag(t *testing.T) {
	guard, win, _ := newTestGuard()

	// zero size without an iconify event must still skip
	win.width, win.height = 0, 0

	frame, err := guard.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if frame != nil {
		t.Fatal("expected skip for a 0x0 surface")
	}
}

func TestResizeReconfigures(t *testing.T) {
	guard, win, dev := newTestGuard()

	frame, err := guard.Begin()
	if err != nil || frame == nil {
		t.Fatalf("begin: frame=%v err=%v", frame, err)
	}
	if err := frame.End(); err != nil {
		t.Fatalf("end: %v", err)
	}

	win.width, win.height = 1920, 1080

	frame, err = guard.Begin()
	if err != nil {
		t.Fatalf("begin after resize: %v", err)
	}
	if frame == nil {
		t.Fatal("expected a frame after resize")
	}

	if w, h := frame.Size(); w != 1920 || h != 1080 {
		t.Fatalf("expected resized frame 1920x1080, got %dx%d", w, h)
	}

	if guard.Generation() != 1 {
		t.Fatalf("resize must bump the generation once, got %d", guard.Generation())
	}

	last := dev.configures[len(dev.configures)-1]
	if last != [2]int{1920, 1080} {
		t.Fatalf("expected configure at 1920x1080, got %v", last)
	}

	if err := frame.End(); err != nil {
		t.Fatalf("end: %v", err)
	}
}

func TestOpenFrameKeepsItsSize(t *testing.T) {
	guard, win, _ := newTestGuard()

	frame, err := guard.Begin()
	if err != nil || frame == nil {
		t.Fatalf("begin: frame=%v err=%v", frame, err)
	}

	// a resize arriving mid-frame is only visible to the next Begin
	win.width, win.height = 640, 480

	if w, h := frame.Size(); w != 1280 || h != 720 {
		t.Fatalf("open frame changed size to %dx%d", w, h)
	}
}

func TestAcquireOutOfDateSkips(t *testing.T) {
	guard, _, dev := newTestGuard()

	dev.acquireErr = ErrSurfaceOutOfDate

	frame, err := guard.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if frame != nil {
		t.Fatal("expected skip on out-of-date acquire")
	}

	if guard.Generation() != 1 {
		t.Fatalf("expected one generation bump, got %d", guard.Generation())
	}

	// next iteration reconfigures and succeeds
	frame, err = guard.Begin()
	if err != nil {
		t.Fatalf("begin after invalidation: %v", err)
	}
	if frame == nil {
		t.Fatal("expected a frame after reacquisition")
	}

	if len(dev.configures) != 2 {
		t.Fatalf("expected 2 configures, got %d", len(dev.configures))
	}
}

func TestAcquireHardFailurePropagates(t *testing.T) {
	guard, _, dev := newTestGuard()

	deviceLost := errors.New("device lost")
	dev.acquireErr = deviceLost

	if _, err := guard.Begin(); !errors.Is(err, deviceLost) {
		t.Fatalf("expected the device error to propagate, got %v", err)
	}
}

func TestPresentOutOfDate(t *testing.T) {
	guard, _, dev := newTestGuard()

	frame, err := guard.Begin()
	if err != nil || frame == nil {
		t.Fatalf("begin: frame=%v err=%v", frame, err)
	}

	dev.presentErr = ErrSurfaceOutOfDate

	err = frame.End()
	if !errors.Is(err, ErrSurfaceOutOfDate) {
		t.Fatalf("expected recoverable ErrSurfaceOutOfDate, got %v", err)
	}

	if !guard.Invalidated() {
		t.Fatal("guard must be invalidated after an out-of-date present")
	}

	if !dev.lastTarget.released {
		t.Fatal("unpresented target must be released")
	}

	if guard.Generation() != 1 {
		t.Fatalf("expected one generation bump, got %d", guard.Generation())
	}

	// the guard recovers on the next iteration
	frame, err = guard.Begin()
	if err != nil {
		t.Fatalf("begin after present failure: %v", err)
	}
	if frame == nil {
		t.Fatal("expected a frame after recovery")
	}
}

func TestConfigureFailureStaysInvalidated(t *testing.T) {
	guard, _, dev := newTestGuard()

	dev.configureErr = errors.New("surface not ready")

	for i := 0; i < 2; i++ {
		frame, err := guard.Begin()
		if err != nil {
			t.Fatalf("begin: %v", err)
		}
		if frame != nil {
			t.Fatal("expected skip while the surface cannot be created")
		}
	}

	if guard.Generation() != 1 {
		t.Fatalf("repeated configure failures must bump once, got %d", guard.Generation())
	}

	dev.configureErr = nil

	frame, err := guard.Begin()
	if err != nil {
		t.Fatalf("begin: %v", err)
	}
	if frame == nil {
		t.Fatal("expected a frame once configure succeeds")
	}
}
