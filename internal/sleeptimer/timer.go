// Package sleeptimer implements a countdown that pauses playback when it expires.
package sleeptimer

import (
	"log/slog"
	"strconv"
	"strings"
	"sync"
	"time"
)

const updateBufferSize = 16

// Pauser is the playback the timer stops on expiry.
type Pauser interface {
	IsPlaying() bool
	Pause()
}

// State is the observable timer state. Remaining is 0 whenever Running is false.
type State struct {
	Running   bool
	Remaining int // seconds
}

// Timer is a cancellable countdown with one-second granularity.
type Timer struct {
	pauser Pauser
	logger *slog.Logger

	mu      sync.Mutex
	state   State
	gen     uint64
	stop    chan struct{}
	wg      sync.WaitGroup
	closed  bool
	updates chan State
}

// New creates a stopped timer that pauses p on expiry.
func New(p Pauser, logger *slog.Logger) *Timer {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Timer{
		pauser:  p,
		logger:  logger,
		updates: make(chan State, updateBufferSize),
	}
}

// Start begins a countdown of the given minutes, replacing any running one.
// Non-positive durations are ignored.
func (t *Timer) Start(minutes int) {
	if minutes <= 0 {
		return
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	if t.closed {
		return
	}
	t.cancelLocked()

	t.gen++
	stop := make(chan struct{})
	t.stop = stop
	t.setLocked(State{Running: true, Remaining: minutes * 60})
	t.logger.Info("sleep timer started", "minutes", minutes)

	t.wg.Add(1)
	go t.countdown(t.gen, stop)
}

// StartFromInput parses user input as minutes and starts the timer.
// It reports whether a countdown was started; invalid input changes nothing.
func (t *Timer) StartFromInput(s string) bool {
	minutes, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || minutes <= 0 {
		return false
	}
	t.Start(minutes)
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Running
}

// Cancel stops the countdown. It is safe to call when nothing is running.
func (t *Timer) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancelLocked() {
		t.logger.Info("sleep timer cancelled")
	}
}

func (t *Timer) cancelLocked() bool {
	if t.stop == nil {
		return false
	}
	close(t.stop)
	t.stop = nil
	t.gen++
	t.setLocked(State{})
	return true
}

// State returns the current timer state.
func (t *Timer) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state
}

// Updates delivers every published state. Slow readers lose updates.
func (t *Timer) Updates() <-chan State {
	return t.updates
}

// Close cancels the countdown, waits for it to exit, and rejects later starts.
func (t *Timer) Close() {
	t.mu.Lock()
	t.cancelLocked()
	t.closed = true
	t.mu.Unlock()
	t.wg.Wait()
}

func (t *Timer) setLocked(s State) {
	if s == t.state {
		return
	}
	t.state = s
	select {
	case t.updates <- s:
	default:
	}
}

func (t *Timer) countdown(gen uint64, stop <-chan struct{}) {
	defer t.wg.Done()

	ticker := time.NewTicker(time.Second)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if !t.tick(gen) {
				return
			}
		}
	}
}

// tick counts down one second. It returns false once the countdown is over
// or has been superseded.
func (t *Timer) tick(gen uint64) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if gen != t.gen {
		return false
	}
	if t.state.Remaining > 1 {
		t.setLocked(State{Running: true, Remaining: t.state.Remaining - 1})
		return true
	}

	// Pause before reporting the timer as stopped.
	if t.pauser != nil && t.pauser.IsPlaying() {
		t.logger.Info("sleep timer expired, pausing playback")
		t.pauser.Pause()
	} else {
		t.logger.Info("sleep timer expired")
	}
	t.stop = nil
	t.gen++
	t.setLocked(State{})
	return false
}
