package orbit

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/pkg/profile"

	"github.com/rafx-go/rafx/cadence"
	"github.com/rafx-go/rafx/glint"
	"github.com/rafx-go/rafx/surf"
)

// RunOptions configures the all-in-one entry point.
type RunOptions struct {
	Config Config

	// Frame records one frame of rendering work. This is the only
	// field that is required.
	Frame FrameFunc
}

// Run opens a window, brings up the rendering device and drives the
// render loop until the window is asked to close. Teardown is
// deterministic: the loop result is returned after the device and the
// window have been released, in that order.
func Run(opts RunOptions) error {
	if opts.Frame == nil {
		return errors.New("Frame must not be nil")
	}

	cfg := opts.Config.withDefaults()

	if cfg.Profile {
		defer profile.Start(profile.CPUProfile).Stop()
	}

	win, err := glint.Open(glint.Descriptor{
		Title:  cfg.Title,
		Width:  cfg.Width,
		Height: cfg.Height,
	})
	if err != nil {
		return fmt.Errorf("open window: %w", err)
	}

	defer func() {
		if err := win.Destroy(); err != nil {
			slog.Warn("Destroy window", slog.Any("error", err))
		}
	}()

	ctx, err := surf.NewContext(win)
	if err != nil {
		return fmt.Errorf("initialize wgpu: %w", err)
	}

	defer ctx.Release()

	view := surf.NewView(ctx, surf.ViewOptions{VSync: *cfg.VSync})

	driver := &Driver{
		Window: win,
		Guard:  cadence.NewGuard(win, view),
		MaxFPS: cfg.MaxFPS,
	}

	return driver.Run(opts.Frame)
}
