package surf

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/rafx-go/rafx/cadence"
)

// ViewOptions selects how frames reach the screen.
type ViewOptions struct {
	// VSync selects fifo presentation; otherwise frames are presented
	// immediately.
	VSync bool
}

// View configures and presents the window surface. It implements
// cadence.Device.
type View struct {
	ctx    *Context
	config *wgpu.SurfaceConfiguration
}

func NewView(ctx *Context, opts ViewOptions) *View {
	caps := ctx.Surface.GetCapabilities(ctx.Adapter)
	slog.Info("Available surface formats", slog.Any("formats", caps.Formats))

	presentMode := wgpu.PresentModeFifo
	if !opts.VSync {
		presentMode = wgpu.PresentModeImmediate
	}

	return &View{
		ctx: ctx,
		config: &wgpu.SurfaceConfiguration{
			Usage:       wgpu.TextureUsageRenderAttachment,
			Format:      wgpu.TextureFormatBGRA8Unorm,
			PresentMode: presentMode,
			AlphaMode:   caps.AlphaModes[0],
		},
	}
}

func (v *View) Configure(width, height int) error {
	v.config.Width = uint32(width)
	v.config.Height = uint32(height)
	v.ctx.Surface.Configure(v.ctx.Adapter, v.ctx.Device, v.config)

	return nil
}

func (v *View) Acquire() (cadence.Target, error) {
	texture, err := v.ctx.Surface.GetCurrentTexture()
	if err != nil {
		if isOutdated(err) {
			return nil, fmt.Errorf("%w: %v", cadence.ErrSurfaceOutOfDate, err)
		}

		return nil, fmt.Errorf("get current texture: %w", err)
	}

	return &surfaceTarget{texture: texture}, nil
}

func (v *View) Present(target cadence.Target) error {
	st, ok := target.(*surfaceTarget)
	if !ok {
		return errors.New("target was not acquired from this view")
	}

	v.ctx.Surface.Present()

	// the presented texture is consumed, only its view handle remains
	st.texture = nil

	return nil
}

// surfaceTarget is one acquired surface texture.
type surfaceTarget struct {
	texture *wgpu.Texture
}

// Texture exposes the surface texture for render pass setup.
func (t *surfaceTarget) Texture() *wgpu.Texture {
	return t.texture
}

func (t *surfaceTarget) Release() {
	if t.texture != nil {
		t.texture.Release()
		t.texture = nil
	}
}

// isOutdated matches the surface statuses that require the swapchain
// to be rebuilt rather than failing the application.
func isOutdated(err error) bool {
	msg := strings.ToLower(err.Error())

	return strings.Contains(msg, "outdated") ||
		strings.Contains(msg, "out of date") ||
		strings.Contains(msg, "suboptimal") ||
		strings.Contains(msg, "lost")
}
