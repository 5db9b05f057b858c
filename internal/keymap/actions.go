// Package keymap defines key bindings and action dispatch for the application.
package keymap

// Action represents a user-triggerable action.
type Action string

const (
	// Global actions
	ActionQuit Action = "quit"
	ActionHelp Action = "help"

	// Playback actions
	ActionPlayPause    Action = "play_pause"
	ActionSkipForward  Action = "skip_forward"
	ActionSkipBackward Action = "skip_backward"
	ActionSeekStart    Action = "seek_start"
	ActionSeekPercent  Action = "seek_percent" // digit keys, 0-9 tenths of the book

	// Media actions
	ActionOpenFile  Action = "open_file"
	ActionClearFile Action = "clear_file"

	// Sleep timer actions
	ActionSleepStart  Action = "sleep_start"
	ActionSleepCancel Action = "sleep_cancel"
)
