package glint

// Event is one platform event relevant to the window lifecycle. The
// backend queues events as they arrive; Poll folds them into the
// window state in order.
type Event interface {
	isEvent()
}

// ResizeEvent carries the new client size of the window.
type ResizeEvent struct {
	Width, Height int
}

// MinimizeEvent reports iconify and restore.
type MinimizeEvent struct {
	Minimized bool
}

// CloseEvent reports that the platform asked the window to close.
type CloseEvent struct{}

func (ResizeEvent) isEvent()   {}
func (MinimizeEvent) isEvent() {}
func (CloseEvent) isEvent()    {}

// Backend is the capability consumed from the platform windowing
// toolkit. Implementations must be used from the thread that created
// the window.
type Backend interface {
	// Poll drains all pending platform events without blocking.
	Poll() []Event

	// NotifyClose propagates a programmatic close request to the
	// native window.
	NotifyClose()

	// Destroy releases the native window resource.
	Destroy()
}
