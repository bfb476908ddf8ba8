// Package surf is the webgpu glue behind the frame guard: it owns the
// low level device state and exposes the window surface as a
// cadence.Device.
package surf

import (
	"errors"
	"os"
	"runtime"
	"strings"

	"github.com/cogentcore/webgpu/wgpu"

	"github.com/rafx-go/rafx/glint"
)

var forceFallbackAdapter = os.Getenv("WGPU_FORCE_FALLBACK_ADAPTER") == "1"

func init() {
	// the window handle and the surface are thread affine
	runtime.LockOSThread()

	switch strings.ToUpper(os.Getenv("WGPU_LOG_LEVEL")) {
	case "OFF":
		wgpu.SetLogLevel(wgpu.LogLevelOff)
	case "ERROR":
		wgpu.SetLogLevel(wgpu.LogLevelError)
	case "WARN":
		wgpu.SetLogLevel(wgpu.LogLevelWarn)
	case "INFO":
		wgpu.SetLogLevel(wgpu.LogLevelInfo)
	case "DEBUG":
		wgpu.SetLogLevel(wgpu.LogLevelDebug)
	case "TRACE":
		wgpu.SetLogLevel(wgpu.LogLevelTrace)
	}
}

// surfaceSource is the optional capability of window backends that own
// a native surface.
type surfaceSource interface {
	SurfaceDescriptor() *wgpu.SurfaceDescriptor
}

// Context encapsulates the low level state of the webgpu context,
// this includes the Device, Surface and active Adapter.
type Context struct {
	*wgpu.Device
	Queue   *wgpu.Queue
	Surface *wgpu.Surface
	Adapter *wgpu.Adapter
}

// NewContext brings up a webgpu device able to render to the window's
// native surface.
func NewContext(win *glint.Window) (ctx *Context, err error) {
	src, ok := win.Backend().(surfaceSource)
	if !ok {
		return nil, errors.New("window is not backed by a native surface")
	}

	defer func() {
		if err != nil && ctx != nil {
			ctx.Release()
			ctx = nil
		}
	}()

	ctx = &Context{}

	instance := wgpu.CreateInstance(nil)
	defer instance.Release()

	ctx.Surface = instance.CreateSurface(src.SurfaceDescriptor())

	ctx.Adapter, err = instance.RequestAdapter(&wgpu.RequestAdapterOptions{
		ForceFallbackAdapter: forceFallbackAdapter,
		CompatibleSurface:    ctx.Surface,
	})

	if err != nil {
		return
	}

	ctx.Device, err = ctx.Adapter.RequestDevice(nil)
	if err != nil {
		return
	}

	ctx.Queue = ctx.Device.GetQueue()

	return ctx, nil
}

func (c *Context) Release() {
	if c.Queue != nil {
		c.Queue.Release()
		c.Queue = nil
	}

	if c.Device != nil {
		c.Device.Release()
		c.Device = nil
	}

	if c.Adapter != nil {
		c.Adapter.Release()
		c.Adapter = nil
	}

	if c.Surface != nil {
		c.Surface.Release()
		c.Surface = nil
	}
}
