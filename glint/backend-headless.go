//go:build headless

package glint

// Open creates a window over the in-process backend when the module is
// built without native windowing support.
func Open(desc Descriptor) (*Window, error) {
	win, _, err := NewMemoryWindow(desc)
	return win, err
}
