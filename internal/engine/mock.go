package engine

import (
	"sync"
	"time"

	"github.com/llehouerou/audiobook/internal/media"
)

// Mock is a test double for the engine. It follows the same lifecycle and
// emits the same events as the real engine, without producing audio.
type Mock struct {
	mu sync.Mutex

	ref       *media.Ref
	lifecycle Lifecycle
	playing   bool
	position  time.Duration
	duration  time.Duration
	known     bool

	// mediaDuration is the duration reported once prepared.
	mediaDuration time.Duration
	prepareErr    error

	calls    []string
	events   chan Event
	released bool
}

// NewMock creates a mock engine in the Idle state.
func NewMock() *Mock {
	return &Mock{
		events: make(chan Event, eventBufferSize),
	}
}

func (m *Mock) record(call string) {
	m.calls = append(m.calls, call)
}

func (m *Mock) send(e Event) {
	if m.released {
		return
	}
	emit(m.events, e)
}

func (m *Mock) setPlaying(p bool) {
	if m.playing == p {
		return
	}
	m.playing = p
	m.send(Event{Kind: IsPlayingChanged, Playing: p})
}

func (m *Mock) setLifecycle(l Lifecycle, err error) {
	m.lifecycle = l
	m.send(Event{Kind: LifecycleChanged, Lifecycle: l, Err: err})
}

func (m *Mock) Load(ref *media.Ref) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("load")
	m.setPlaying(false)
	m.ref = ref
	m.position = 0
	m.duration = 0
	m.known = false
}

func (m *Mock) Prepare() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("prepare")
	if m.ref == nil {
		return
	}
	m.setLifecycle(Buffering, nil)
	if m.prepareErr != nil {
		m.setLifecycle(Idle, m.prepareErr)
		return
	}
	m.duration = m.mediaDuration
	m.known = true
	m.setLifecycle(Ready, nil)
}

func (m *Mock) Play() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("play")
	if m.lifecycle != Ready {
		return
	}
	m.setPlaying(true)
}

func (m *Mock) Pause() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("pause")
	m.setPlaying(false)
}

func (m *Mock) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("stop")
	m.setPlaying(false)
	m.position = 0
	m.duration = 0
	m.known = false
	if m.lifecycle != Idle {
		m.setLifecycle(Idle, nil)
	}
}

func (m *Mock) ClearMedia() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("clear")
	m.ref = nil
}

func (m *Mock) Seek(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.record("seek")
	m.position = pos
	if m.lifecycle == Ended {
		m.setLifecycle(Ready, nil)
	}
}

func (m *Mock) CurrentPosition() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *Mock) Duration() (time.Duration, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration, m.known
}

func (m *Mock) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing
}

func (m *Mock) Lifecycle() Lifecycle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.lifecycle
}

func (m *Mock) HasMedia() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ref != nil
}

func (m *Mock) Events() <-chan Event { return m.events }

func (m *Mock) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.released {
		return
	}
	m.record("release")
	m.released = true
	close(m.events)
}

// Test helpers

// SetMediaDuration sets the duration reported after the next Prepare.
func (m *Mock) SetMediaDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mediaDuration = d
}

// SetPrepareError makes the next Prepare fail with err.
func (m *Mock) SetPrepareError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prepareErr = err
}

// SetPosition moves the playback position, as if audio had been played.
func (m *Mock) SetPosition(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = d
}

// SetDuration changes the reported duration mid-stream.
func (m *Mock) SetDuration(d time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.duration = d
	m.known = true
}

// SimulateEnded plays the stream to its end.
func (m *Mock) SimulateEnded() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = m.duration
	m.setPlaying(false)
	m.setLifecycle(Ended, nil)
}

// SimulatePlaying emits a play-intent notification without changing anything else.
func (m *Mock) SimulatePlaying(p bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playing = p
	m.send(Event{Kind: IsPlayingChanged, Playing: p})
}

// SimulateLifecycle forces a lifecycle transition.
func (m *Mock) SimulateLifecycle(l Lifecycle, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if l == Idle {
		m.playing = false
		m.duration = 0
		m.known = false
	}
	m.setLifecycle(l, err)
}

// Calls returns the engine methods invoked so far, in order.
func (m *Mock) Calls() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.calls...)
}

// Released reports whether Release was called.
func (m *Mock) Released() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.released
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
