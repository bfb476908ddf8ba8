package glint

// MemoryBackend is a window backend with no native resources. It is
// used for tests and headless runs; the caller injects the events a
// real platform would deliver.
type MemoryBackend struct {
	queue []Event
}

// NewMemoryWindow creates a window over an in-process backend. The
// returned backend is the handle used to inject platform events.
func NewMemoryWindow(desc Descriptor) (*Window, *MemoryBackend, error) {
	b := &MemoryBackend{}

	win, err := NewWindow(desc, b)
	if err != nil {
		return nil, nil, err
	}

	return win, b, nil
}

// Push queues events for the next Poll.
func (b *MemoryBackend) Push(events ...Event) {
	b.queue = append(b.queue, events...)
}

// Resize queues a size change.
func (b *MemoryBackend) Resize(width, height int) {
	b.Push(ResizeEvent{Width: width, Height: height})
}

// Minimize queues an iconify, shrinking the client size to zero the
// way most platforms report it.
func (b *MemoryBackend) Minimize() {
	b.Push(MinimizeEvent{Minimized: true}, ResizeEvent{})
}

// Restore queues the inverse of Minimize.
func (b *MemoryBackend) Restore(width, height int) {
	b.Push(MinimizeEvent{Minimized: false}, ResizeEvent{Width: width, Height: height})
}

// Close queues a platform close request.
func (b *MemoryBackend) Close() {
	b.Push(CloseEvent{})
}

func (b *MemoryBackend) Poll() []Event {
	queued := b.queue
	b.queue = nil

	return queued
}

func (b *MemoryBackend) NotifyClose() {}

func (b *MemoryBackend) Destroy() {}
