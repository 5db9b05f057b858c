package app

import (
	"github.com/llehouerou/audiobook/internal/playback"
	"github.com/llehouerou/audiobook/internal/sleeptimer"
)

// PlaybackStateMsg carries a fresh playback snapshot after any change.
type PlaybackStateMsg struct {
	State playback.State
}

// PlaybackErrorMsg reports an engine failure.
type PlaybackErrorMsg struct {
	Event playback.ErrorEvent
}

// PlaybackClosedMsg is sent once the coordinator has shut down.
type PlaybackClosedMsg struct{}

// SleepTimerMsg carries a sleep timer update.
type SleepTimerMsg struct {
	State sleeptimer.State
}

// OpenResultMsg is the outcome of opening a file.
type OpenResultMsg struct {
	Path string
	Err  error
}

// StderrMsg is a line captured from a C audio library.
type StderrMsg string
