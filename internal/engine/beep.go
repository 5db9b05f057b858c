package engine

import (
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"github.com/gopxl/beep/v2/speaker"

	"github.com/llehouerou/audiobook/internal/media"
)

// The speaker is process-wide: it is initialized once, at the sample rate of
// the first prepared file, and every later file is resampled to that rate.
var (
	speakerOnce sync.Once
	speakerRate beep.SampleRate
	speakerErr  error
)

func initSpeaker(rate beep.SampleRate) error {
	speakerOnce.Do(func() {
		speakerRate = rate
		speakerErr = speaker.Init(rate, rate.N(time.Second/10))
	})
	return speakerErr
}

// Beep is the engine backed by gopxl/beep.
type Beep struct {
	mu     sync.Mutex
	logger *slog.Logger

	ref       *media.Ref
	lifecycle Lifecycle
	playing   bool

	streamer beep.StreamSeekCloser
	format   beep.Format
	ctrl     *beep.Ctrl
	volume   *effects.Volume
	queued   bool   // stream is attached to the speaker mixer
	gen      uint64 // bumped whenever the stream is replaced
	level    float64

	events   chan Event
	released bool
}

// NewBeep creates an idle engine.
func NewBeep(logger *slog.Logger) *Beep {
	return &Beep{
		logger: logger,
		level:  1,
		events: make(chan Event, eventBufferSize),
	}
}

func (b *Beep) sendLocked(e Event) {
	if b.released {
		return
	}
	if !emit(b.events, e) {
		b.logger.Warn("engine event dropped", "kind", e.Kind, "lifecycle", e.Lifecycle)
	}
}

func (b *Beep) setPlayingLocked(p bool) {
	if b.playing == p {
		return
	}
	b.playing = p
	b.sendLocked(Event{Kind: IsPlayingChanged, Playing: p})
}

func (b *Beep) setLifecycleLocked(l Lifecycle, err error) {
	b.lifecycle = l
	b.sendLocked(Event{Kind: LifecycleChanged, Lifecycle: l, Err: err})
}

// closeStreamLocked detaches and closes the current stream, if any.
func (b *Beep) closeStreamLocked() {
	b.gen++
	if b.streamer == nil {
		return
	}
	if b.queued {
		speaker.Clear()
		b.queued = false
	}
	if err := b.streamer.Close(); err != nil {
		b.logger.Debug("close stream", "err", err)
	}
	b.streamer = nil
	b.ctrl = nil
	b.volume = nil
}

// Load replaces the current media. Playback of the previous media stops.
func (b *Beep) Load(ref *media.Ref) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setPlayingLocked(false)
	b.closeStreamLocked()
	b.ref = ref
}

// Prepare decodes the loaded media. On failure the engine goes back to Idle
// and the error is attached to the lifecycle event.
func (b *Beep) Prepare() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ref == nil || b.released {
		return
	}
	b.closeStreamLocked()
	b.setLifecycleLocked(Buffering, nil)

	streamer, format, err := open(b.ref)
	if err == nil {
		err = initSpeaker(format.SampleRate)
		if err != nil {
			streamer.Close()
		}
	}
	if err != nil {
		b.logger.Error("prepare failed", "path", b.ref.Path, "err", err)
		b.setPlayingLocked(false)
		b.setLifecycleLocked(Idle, err)
		return
	}

	var s beep.Streamer = streamer
	if format.SampleRate != speakerRate {
		s = beep.Resample(4, format.SampleRate, speakerRate, streamer)
	}
	b.streamer = streamer
	b.format = format
	b.ctrl = &beep.Ctrl{Streamer: s, Paused: true}
	b.volume = &effects.Volume{
		Streamer: b.ctrl,
		Base:     2,
		Volume:   levelToVolume(b.level),
		Silent:   b.level == 0,
	}
	b.logger.Debug("prepared", "path", b.ref.Path, "rate", format.SampleRate,
		"duration", format.SampleRate.D(streamer.Len()))
	b.setLifecycleLocked(Ready, nil)
}

func (b *Beep) Play() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.streamer == nil || b.lifecycle != Ready {
		return
	}
	if !b.queued {
		gen := b.gen
		speaker.Play(beep.Seq(b.volume, beep.Callback(func() {
			// Runs on the speaker goroutine with the speaker lock held.
			go b.finished(gen)
		})))
		b.queued = true
	}
	speaker.Lock()
	b.ctrl.Paused = false
	speaker.Unlock()
	b.setPlayingLocked(true)
}

func (b *Beep) finished(gen uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if gen != b.gen || b.streamer == nil {
		return
	}
	b.queued = false
	b.setPlayingLocked(false)
	b.setLifecycleLocked(Ended, nil)
}

func (b *Beep) Pause() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.ctrl == nil {
		return
	}
	speaker.Lock()
	b.ctrl.Paused = true
	speaker.Unlock()
	b.setPlayingLocked(false)
}

func (b *Beep) Stop() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.setPlayingLocked(false)
	b.closeStreamLocked()
	if b.lifecycle != Idle {
		b.setLifecycleLocked(Idle, nil)
	}
}

func (b *Beep) ClearMedia() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.ref = nil
}

// Seek moves to pos, clamped to the stream. Seeking an ended stream makes it
// Ready again so that Play restarts it.
func (b *Beep) Seek(pos time.Duration) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.streamer == nil {
		return
	}
	n := min(max(b.format.SampleRate.N(pos), 0), b.streamer.Len())

	speaker.Lock()
	err := b.streamer.Seek(n)
	speaker.Unlock()
	if err != nil {
		b.logger.Warn("seek failed", "pos", pos, "err", err)
		return
	}
	if b.lifecycle == Ended {
		b.setLifecycleLocked(Ready, nil)
	}
}

func (b *Beep) CurrentPosition() time.Duration {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.streamer == nil {
		return 0
	}
	speaker.Lock()
	n := b.streamer.Position()
	speaker.Unlock()
	return b.format.SampleRate.D(n)
}

func (b *Beep) Duration() (time.Duration, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.streamer == nil {
		return 0, false
	}
	n := b.streamer.Len()
	if n <= 0 {
		return 0, false
	}
	return b.format.SampleRate.D(n), true
}

func (b *Beep) IsPlaying() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.playing
}

func (b *Beep) Lifecycle() Lifecycle {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.lifecycle
}

func (b *Beep) HasMedia() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.ref != nil
}

// SetVolume sets the output level in [0, 1]. It applies to the current and
// every later stream.
func (b *Beep) SetVolume(level float64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	level = min(max(level, 0), 1)
	b.level = level
	if b.volume == nil {
		return
	}
	speaker.Lock()
	b.volume.Silent = level == 0
	b.volume.Volume = levelToVolume(level)
	speaker.Unlock()
}

// levelToVolume maps a linear level to beep's base-2 gain:
// 1 -> 0, 0.5 -> -1, 0.25 -> -2, silence -> -10.
func levelToVolume(level float64) float64 {
	if level <= 0 {
		return -10
	}
	if level >= 1 {
		return 0
	}
	return math.Log2(level)
}

func (b *Beep) Events() <-chan Event { return b.events }

// Release stops playback, frees the decoder, and closes the event channel.
func (b *Beep) Release() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.released {
		return
	}
	b.playing = false
	b.closeStreamLocked()
	b.ref = nil
	b.lifecycle = Idle
	b.released = true
	close(b.events)
}

// Verify Beep implements Interface at compile time.
var _ Interface = (*Beep)(nil)
