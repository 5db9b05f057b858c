//go:build !windows

// Package stderr captures output that C audio libraries (ALSA, faad2) write
// directly to file descriptor 2, so it cannot corrupt the TUI.
package stderr

import (
	"bufio"
	"fmt"
	"os"
	"strings"
	"sync"

	"golang.org/x/sys/unix"
)

const bufferedLines = 100

// Capture redirects fd 2 into a pipe and delivers its lines.
type Capture struct {
	lines    chan string
	orig     int
	r, w     *os.File
	stopOnce sync.Once
	drained  chan struct{}
}

// Start redirects stderr. It must run before the audio device is opened.
// On error stderr is left untouched and the program can continue.
func Start() (*Capture, error) {
	r, w, err := os.Pipe()
	if err != nil {
		return nil, fmt.Errorf("create pipe: %w", err)
	}

	fd := int(os.Stderr.Fd())
	orig, err := unix.Dup(fd)
	if err != nil {
		r.Close()
		w.Close()
		return nil, fmt.Errorf("dup stderr: %w", err)
	}
	if err := unix.Dup2(int(w.Fd()), fd); err != nil {
		unix.Close(orig)
		r.Close()
		w.Close()
		return nil, fmt.Errorf("redirect stderr: %w", err)
	}

	c := &Capture{
		lines:   make(chan string, bufferedLines),
		orig:    orig,
		r:       r,
		w:       w,
		drained: make(chan struct{}),
	}
	go c.read()
	return c, nil
}

func (c *Capture) read() {
	defer close(c.drained)
	defer close(c.lines)
	scanner := bufio.NewScanner(c.r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		select {
		case c.lines <- line:
		default:
			// nobody is reading; drop rather than block the writer
		}
	}
}

// Lines delivers captured lines. It is closed after Stop.
func (c *Capture) Lines() <-chan string {
	return c.lines
}

// Stop restores the original stderr.
func (c *Capture) Stop() {
	c.stopOnce.Do(func() {
		fd := int(os.Stderr.Fd())
		_ = unix.Dup2(c.orig, fd)
		_ = unix.Close(c.orig)
		// fd 2 no longer references the pipe, so closing w ends the reader.
		c.w.Close()
		<-c.drained
		c.r.Close()
	})
}
