//go:build windows

// Package stderr is a no-op on Windows, where the audio backend does not
// write to the console.
package stderr

// Capture is a no-op capture.
type Capture struct {
	lines chan string
}

// Start returns a capture that never delivers lines.
func Start() (*Capture, error) {
	return &Capture{lines: make(chan string)}, nil
}

// Lines never delivers.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// Stop is a no-op.
func (c *Capture) Stop() {}
