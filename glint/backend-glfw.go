//go:build !headless

package glint

import (
	"fmt"

	"github.com/cogentcore/webgpu/wgpu"
	"github.com/cogentcore/webgpu/wgpuglfw"
	"github.com/go-gl/glfw/v3.3/glfw"
)

type glfwBackend struct {
	win     *glfw.Window
	pending []Event
}

var _ Backend = (*glfwBackend)(nil)

// Open creates a native window for the given descriptor.
func Open(desc Descriptor) (*Window, error) {
	if err := desc.validate(); err != nil {
		return nil, err
	}

	if err := glfw.Init(); err != nil {
		return nil, fmt.Errorf("%w: initialize glfw: %v", ErrPlatformUnavailable, err)
	}

	glfw.WindowHint(glfw.ClientAPI, glfw.NoAPI)

	native, err := glfw.CreateWindow(desc.Width, desc.Height, desc.Title, nil, nil)
	if err != nil {
		glfw.Terminate()
		return nil, fmt.Errorf("%w: create window: %v", ErrPlatformUnavailable, err)
	}

	b := &glfwBackend{win: native}

	// callbacks only queue, Poll folds the queue into the window state
	native.SetSizeCallback(func(_ *glfw.Window, width, height int) {
		b.pending = append(b.pending, ResizeEvent{Width: width, Height: height})
	})

	native.SetIconifyCallback(func(_ *glfw.Window, iconified bool) {
		b.pending = append(b.pending, MinimizeEvent{Minimized: iconified})
	})

	native.SetCloseCallback(func(_ *glfw.Window) {
		b.pending = append(b.pending, CloseEvent{})
	})

	win, err := NewWindow(desc, b)
	if err != nil {
		b.Destroy()
		return nil, err
	}

	return win, nil
}

func (b *glfwBackend) Poll() []Event {
	glfw.PollEvents()

	pending := b.pending
	b.pending = nil

	return pending
}

func (b *glfwBackend) NotifyClose() {
	b.win.SetShouldClose(true)
}

func (b *glfwBackend) Destroy() {
	b.win.Destroy()
	glfw.Terminate()
}

// SurfaceDescriptor exposes the native handle to the rendering device.
func (b *glfwBackend) SurfaceDescriptor() *wgpu.SurfaceDescriptor {
	return wgpuglfw.GetSurfaceDescriptor(b.win)
}
