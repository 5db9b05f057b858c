package state

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	GetPreferences() Preferences
	SaveLastFolder(dir string)
	SaveSleepMinutes(minutes int)
	AddRecent(path string)
	RecentFiles() ([]string, error)
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
