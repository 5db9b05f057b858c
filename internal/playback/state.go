package playback

import (
	"time"

	"github.com/llehouerou/audiobook/internal/engine"
	"github.com/llehouerou/audiobook/internal/media"
)

// IdleReason tells why the coordinator is idle.
type IdleReason int

const (
	IdleNone IdleReason = iota
	// IdleStoppedByUser follows an explicit clear of the selection.
	IdleStoppedByUser
	// IdleLoadFailed follows an engine failure to load or decode the media.
	IdleLoadFailed
)

// String returns the reason name.
func (r IdleReason) String() string {
	switch r {
	case IdleNone:
		return "None"
	case IdleStoppedByUser:
		return "StoppedByUser"
	case IdleLoadFailed:
		return "LoadFailed"
	default:
		return "Unknown"
	}
}

// State is the observable playback state.
//
// Position never exceeds Duration when Duration is known (> 0).
type State struct {
	Media     *media.Ref
	Playing   bool
	Position  time.Duration
	Duration  time.Duration // 0 while unknown
	Lifecycle engine.Lifecycle
	Idle      IdleReason
}

// HasMedia reports whether a file is selected.
func (s State) HasMedia() bool {
	return s.Media != nil
}

// Progress returns Position/Duration in [0, 1], or 0 when the duration is unknown.
func (s State) Progress() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return min(float64(s.Position)/float64(s.Duration), 1)
}
