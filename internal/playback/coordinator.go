// Package playback bridges the player engine to observable playback state.
package playback

import (
	"log/slog"
	"sync"
	"time"

	"github.com/llehouerou/audiobook/internal/engine"
	"github.com/llehouerou/audiobook/internal/media"
)

const (
	DefaultSkipInterval = 15 * time.Second
	DefaultPollInterval = 500 * time.Millisecond
)

// Options configures a Coordinator. Zero values select the defaults.
type Options struct {
	SkipInterval time.Duration
	PollInterval time.Duration
	Logger       *slog.Logger
}

// Coordinator owns the engine and republishes its state.
//
// All mutations happen on a single goroutine: user intents are submitted as
// commands, engine events are drained from engine.Events in arrival order, and
// the position poll ticks on the same select. Readers only see published
// snapshots.
type Coordinator struct {
	engine engine.Interface
	skip   time.Duration
	every  time.Duration
	logger *slog.Logger

	cmds      chan command
	done      chan struct{}
	stopped   chan struct{}
	closeOnce sync.Once

	// Owned by the run goroutine.
	media     *media.Ref
	playing   bool
	position  time.Duration
	duration  time.Duration
	lifecycle engine.Lifecycle
	idle      IdleReason
	poll      *time.Ticker

	stateDirty    bool
	positionDirty bool
	mediaDirty    bool
	errs          []ErrorEvent

	mu       sync.RWMutex
	snapshot State

	subsMu     sync.RWMutex
	subs       []*Subscription
	subsClosed bool
}

// New creates a coordinator and starts its event loop. Close releases the engine.
func New(eng engine.Interface, opts Options) *Coordinator {
	c := &Coordinator{
		engine:  eng,
		skip:    opts.SkipInterval,
		every:   opts.PollInterval,
		logger:  opts.Logger,
		cmds:    make(chan command),
		done:    make(chan struct{}),
		stopped: make(chan struct{}),
	}
	if c.skip <= 0 {
		c.skip = DefaultSkipInterval
	}
	if c.every <= 0 {
		c.every = DefaultPollInterval
	}
	if c.logger == nil {
		c.logger = slog.New(slog.DiscardHandler)
	}
	go c.run()
	return c
}

func (c *Coordinator) run() {
	defer close(c.stopped)

	events := c.engine.Events()
	for {
		var tick <-chan time.Time
		if c.poll != nil {
			tick = c.poll.C
		}

		select {
		case cmd := <-c.cmds:
			cmd.fn()
			c.flush()
			close(cmd.ran)
			continue
		case ev, ok := <-events:
			if !ok {
				events = nil
				continue
			}
			c.handleEvent(ev)
		case <-tick:
			c.pollOnce()
		case <-c.done:
			c.teardown()
			return
		}
		c.flush()
	}
}

type command struct {
	fn  func()
	ran chan struct{}
}

// do runs fn on the event loop and waits until its effects are published.
// It is a no-op once the coordinator is closed.
func (c *Coordinator) do(fn func()) {
	cmd := command{fn: fn, ran: make(chan struct{})}
	select {
	case c.cmds <- cmd:
	case <-c.done:
		return
	}
	select {
	case <-cmd.ran:
	case <-c.stopped:
	}
}

// SelectMedia loads ref into the engine and prepares it. A nil ref stops the
// engine and clears the selection.
func (c *Coordinator) SelectMedia(ref *media.Ref) {
	c.do(func() {
		c.stopPolling()
		c.setPosition(0)
		c.setDuration(0)

		if ref == nil {
			c.engine.Stop()
			c.engine.ClearMedia()
			c.setMedia(nil)
			c.setPlaying(false)
			c.setIdle(IdleStoppedByUser)
			c.logger.Info("selection cleared")
			return
		}

		c.setMedia(ref)
		c.setIdle(IdleNone)
		c.logger.Info("loading media", "path", ref.Path, "format", ref.Format)
		c.engine.Load(ref)
		c.engine.Prepare()
	})
}

// PlayPause toggles playback. Playback that reached the end restarts from
// the beginning. It does nothing when no media is loaded.
func (c *Coordinator) PlayPause() {
	c.do(func() {
		if c.media == nil && !c.engine.HasMedia() {
			return
		}
		switch {
		case c.engine.Lifecycle() == engine.Ended:
			c.engine.Seek(0)
			c.setPosition(0)
			c.engine.Play()
		case c.engine.Lifecycle() == engine.Idle:
			// A failed load leaves the media selected; try once more.
			c.engine.Prepare()
			c.engine.Play()
		case c.engine.IsPlaying():
			c.engine.Pause()
		default:
			c.engine.Play()
		}
	})
}

// Pause pauses playback if it is active.
func (c *Coordinator) Pause() {
	c.do(func() {
		if c.engine.IsPlaying() {
			c.engine.Pause()
		}
	})
}

// SeekTo moves to pos, clamped to [0, Duration]. It is a no-op while the
// engine cannot seek: nothing loaded, idle, or duration unknown.
func (c *Coordinator) SeekTo(pos time.Duration) {
	c.do(func() { c.seekTo(pos) })
}

// SkipForward seeks forward by the skip interval.
func (c *Coordinator) SkipForward() {
	c.do(func() { c.seekTo(c.position + c.skip) })
}

// SkipBackward seeks backward by the skip interval.
func (c *Coordinator) SkipBackward() {
	c.do(func() { c.seekTo(c.position - c.skip) })
}

func (c *Coordinator) seekTo(pos time.Duration) {
	if c.media == nil || c.engine.Lifecycle() == engine.Idle || c.duration <= 0 {
		return
	}
	pos = min(max(pos, 0), c.duration)
	c.engine.Seek(pos)
	c.setPosition(pos)
	c.positionDirty = true
}

func (c *Coordinator) handleEvent(ev engine.Event) {
	switch ev.Kind {
	case engine.LifecycleChanged:
		c.onLifecycle(ev)
	case engine.IsPlayingChanged:
		c.onPlayingChanged(ev.Playing)
	}
}

func (c *Coordinator) onLifecycle(ev engine.Event) {
	c.logger.Debug("engine lifecycle", "state", ev.Lifecycle, "err", ev.Err)
	c.setLifecycle(ev.Lifecycle)

	switch ev.Lifecycle {
	case engine.Ready:
		d, ok := c.engine.Duration()
		if !ok {
			d = 0
		}
		c.setDuration(d)
		c.setPosition(c.clamp(c.position))
		c.setIdle(IdleNone)
	case engine.Ended:
		c.stopPolling()
		c.setPlaying(false)
		c.setPosition(c.duration)
	case engine.Idle:
		c.stopPolling()
		c.setPlaying(false)
		c.setPosition(0)
		c.setDuration(0)
		if ev.Err != nil {
			c.setIdle(IdleLoadFailed)
			c.reportError("load", ev.Err)
		} else {
			c.setIdle(IdleStoppedByUser)
		}
	}
}

func (c *Coordinator) onPlayingChanged(playing bool) {
	was := c.playing
	c.setPlaying(playing)
	if playing {
		c.startPolling()
		return
	}
	c.stopPolling()
	if was {
		c.snapshotPosition()
	}
}

func (c *Coordinator) snapshotPosition() {
	if c.lifecycle == engine.Ended {
		c.setPosition(c.duration)
	} else {
		c.setPosition(c.clamp(c.engine.CurrentPosition()))
	}
	c.positionDirty = true
}

// startPolling replaces any running poll, so at most one ticker is ever active.
func (c *Coordinator) startPolling() {
	c.stopPolling()
	c.poll = time.NewTicker(c.every)
}

func (c *Coordinator) stopPolling() {
	if c.poll == nil {
		return
	}
	c.poll.Stop()
	c.poll = nil
}

func (c *Coordinator) pollOnce() {
	if !c.engine.IsPlaying() {
		c.stopPolling()
		return
	}
	if d, ok := c.engine.Duration(); ok && d != c.duration {
		c.logger.Debug("duration changed", "from", c.duration, "to", d)
		c.setDuration(d)
	}
	c.setPosition(c.clamp(c.engine.CurrentPosition()))
	c.positionDirty = true
}

func (c *Coordinator) clamp(pos time.Duration) time.Duration {
	pos = max(pos, 0)
	if c.duration > 0 {
		pos = min(pos, c.duration)
	}
	return pos
}

func (c *Coordinator) reportError(op string, err error) {
	path := ""
	if c.media != nil {
		path = c.media.Path
	}
	c.logger.Error("playback error", "op", op, "path", path, "err", err)
	c.errs = append(c.errs, ErrorEvent{Operation: op, Path: path, Err: err})
}

func (c *Coordinator) setPlaying(p bool) {
	if c.playing != p {
		c.playing = p
		c.stateDirty = true
	}
}

func (c *Coordinator) setLifecycle(l engine.Lifecycle) {
	if c.lifecycle != l {
		c.lifecycle = l
		c.stateDirty = true
	}
}

func (c *Coordinator) setIdle(r IdleReason) {
	if c.idle != r {
		c.idle = r
		c.stateDirty = true
	}
}

func (c *Coordinator) setMedia(ref *media.Ref) {
	if c.media != ref {
		c.media = ref
		c.mediaDirty = true
	}
}

func (c *Coordinator) setPosition(d time.Duration) {
	if c.position != d {
		c.position = d
		c.positionDirty = true
	}
}

func (c *Coordinator) setDuration(d time.Duration) {
	if c.duration != d {
		c.duration = d
		c.positionDirty = true
	}
}

// flush publishes the snapshot, then notifies subscribers of what changed.
func (c *Coordinator) flush() {
	s := State{
		Media:     c.media,
		Playing:   c.playing,
		Position:  c.position,
		Duration:  c.duration,
		Lifecycle: c.lifecycle,
		Idle:      c.idle,
	}
	c.mu.Lock()
	c.snapshot = s
	c.mu.Unlock()

	if !c.stateDirty && !c.positionDirty && !c.mediaDirty && len(c.errs) == 0 {
		return
	}

	c.subsMu.RLock()
	for _, sub := range c.subs {
		if c.mediaDirty {
			sub.sendMedia(MediaChange{Media: s.Media})
		}
		if c.stateDirty {
			sub.sendState(StateChange{Playing: s.Playing, Lifecycle: s.Lifecycle, Idle: s.Idle})
		}
		if c.positionDirty {
			sub.sendPosition(PositionChange{Position: s.Position, Duration: s.Duration})
		}
		for _, e := range c.errs {
			sub.sendError(e)
		}
	}
	c.subsMu.RUnlock()

	c.stateDirty, c.positionDirty, c.mediaDirty = false, false, false
	c.errs = nil
}

// State returns the latest published state.
func (c *Coordinator) State() State {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.snapshot
}

// IsPlaying reports whether playback is active.
func (c *Coordinator) IsPlaying() bool {
	return c.State().Playing
}

// Subscribe creates a new event subscription.
func (c *Coordinator) Subscribe() *Subscription {
	c.subsMu.Lock()
	defer c.subsMu.Unlock()
	sub := newSubscription()
	if c.subsClosed {
		sub.close()
		return sub
	}
	c.subs = append(c.subs, sub)
	return sub
}

// Close stops polling, releases the engine, and closes subscriptions.
// It blocks until the event loop has exited.
func (c *Coordinator) Close() error {
	c.closeOnce.Do(func() {
		close(c.done)
	})
	<-c.stopped
	return nil
}

func (c *Coordinator) teardown() {
	c.stopPolling()
	c.engine.Release()
	c.setPlaying(false)
	c.flush()
	c.logger.Debug("playback closed")

	c.subsMu.Lock()
	for _, sub := range c.subs {
		sub.close()
	}
	c.subs = nil
	c.subsClosed = true
	c.subsMu.Unlock()
}
