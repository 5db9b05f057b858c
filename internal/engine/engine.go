// Package engine defines the media playback engine the player screen is built on,
// together with a beep-backed implementation and a test double.
package engine

import (
	"time"

	"github.com/llehouerou/audiobook/internal/media"
)

// Lifecycle is the engine's media lifecycle state.
//
//	        Load+Prepare           end of stream
//	Idle ─────────────▶ Buffering ──▶ Ready ─────────▶ Ended
//	 ▲                                  │ ▲              │
//	 │ Stop / load failure              │ └── Seek ──────┘
//	 └──────────────────────────────────┘
type Lifecycle int

const (
	Idle Lifecycle = iota
	Buffering
	Ready
	Ended
)

// String returns the lifecycle name for debugging.
func (l Lifecycle) String() string {
	switch l {
	case Idle:
		return "Idle"
	case Buffering:
		return "Buffering"
	case Ready:
		return "Ready"
	case Ended:
		return "Ended"
	default:
		return "Unknown"
	}
}

// EventKind identifies the notification carried by an Event.
type EventKind int

const (
	// LifecycleChanged reports a new Lifecycle. Err is set when the engine
	// fell back to Idle because the media could not be loaded.
	LifecycleChanged EventKind = iota
	// IsPlayingChanged reports a change of the play intent.
	IsPlayingChanged
)

// Event is an asynchronous engine notification.
type Event struct {
	Kind      EventKind
	Lifecycle Lifecycle
	Playing   bool
	Err       error
}

const eventBufferSize = 64

// Interface is the capability set the playback coordinator consumes.
// Events are delivered in emission order on the channel returned by Events,
// which is closed by Release.
type Interface interface {
	Load(ref *media.Ref)
	Prepare()
	Play()
	Pause()
	Stop()
	ClearMedia()
	Seek(pos time.Duration)

	CurrentPosition() time.Duration
	// Duration returns false while the duration is unknown.
	Duration() (time.Duration, bool)
	IsPlaying() bool
	Lifecycle() Lifecycle
	HasMedia() bool

	Events() <-chan Event
	Release()
}

// emit sends e without blocking; events are dropped if nobody drains the channel.
func emit(ch chan Event, e Event) bool {
	select {
	case ch <- e:
		return true
	default:
		return false
	}
}
