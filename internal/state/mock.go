package state

import (
	"slices"
	"sync"
)

// Mock is an in-memory test double for Manager.
type Mock struct {
	mu     sync.Mutex
	prefs  Preferences
	recent []string
	closed bool
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{}
}

func (m *Mock) GetPreferences() Preferences {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.prefs
}

func (m *Mock) SaveLastFolder(dir string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.LastFolder = dir
}

func (m *Mock) SaveSleepMinutes(minutes int) {
	if minutes <= 0 {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs.SleepMinutes = minutes
}

func (m *Mock) AddRecent(path string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recent = slices.DeleteFunc(m.recent, func(p string) bool { return p == path })
	m.recent = slices.Insert(m.recent, 0, path)
	if len(m.recent) > maxRecent {
		m.recent = m.recent[:maxRecent]
	}
}

func (m *Mock) RecentFiles() ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return slices.Clone(m.recent), nil
}

func (m *Mock) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Test helpers

func (m *Mock) SetPreferences(p Preferences) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.prefs = p
}

func (m *Mock) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
