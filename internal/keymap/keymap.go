package keymap

// Binding describes a single key binding.
type Binding struct {
	Action      Action
	Keys        []string
	Description string
	Context     string // "global", "playback", "media", "sleep"
}

// All contains all key bindings for help generation.
var All = []Binding{
	// Global
	{ActionQuit, []string{"q", "ctrl+c"}, "Quit", "global"},
	{ActionHelp, []string{"?"}, "Show help", "global"},

	// Playback
	{ActionPlayPause, []string{" ", "p"}, "Play/pause", "playback"},
	{ActionSkipForward, []string{"right", "l"}, "Skip forward", "playback"},
	{ActionSkipBackward, []string{"left", "h"}, "Skip backward", "playback"},
	{ActionSeekStart, []string{"home"}, "Back to start", "playback"},
	{ActionSeekPercent, []string{"0", "1", "2", "3", "4", "5", "6", "7", "8", "9"}, "Jump to 0%-90%", "playback"},

	// Media
	{ActionOpenFile, []string{"o"}, "Open file", "media"},
	{ActionClearFile, []string{"x"}, "Close file", "media"},

	// Sleep timer
	{ActionSleepStart, []string{"t"}, "Start sleep timer", "sleep"},
	{ActionSleepCancel, []string{"T"}, "Cancel sleep timer", "sleep"},
}

// Contexts lists binding contexts in help display order.
var Contexts = []string{"playback", "media", "sleep", "global"}

// ByContext returns key bindings filtered by context.
func ByContext(context string) []Binding {
	var result []Binding
	for _, kb := range All {
		if kb.Context == context {
			result = append(result, kb)
		}
	}
	return result
}
