package playback

import (
	"time"

	"github.com/llehouerou/audiobook/internal/engine"
	"github.com/llehouerou/audiobook/internal/media"
)

// StateChange is emitted when the play intent, lifecycle or idle reason changes.
type StateChange struct {
	Playing   bool
	Lifecycle engine.Lifecycle
	Idle      IdleReason
}

// PositionChange is emitted on every poll tick, on seeks, and when the
// position is snapshotted after playback stops.
type PositionChange struct {
	Position time.Duration
	Duration time.Duration
}

// MediaChange is emitted when the selection changes. Media is nil after a clear.
type MediaChange struct {
	Media *media.Ref
}

// ErrorEvent is emitted when the engine reports a failure.
type ErrorEvent struct {
	Operation string // e.g. "load"
	Path      string
	Err       error
}
