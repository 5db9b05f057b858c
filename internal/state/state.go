// Package state persists user preferences between runs: the last folder a
// book was opened from, the last sleep timer duration and recently opened
// files. Playback positions are not stored.
package state

import (
	"database/sql"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"

	dbutil "github.com/llehouerou/audiobook/internal/db"
)

const (
	appName      = "audiobook"
	dbFileName   = "audiobook.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db *sql.DB

	saveMu    sync.Mutex
	saveTimer *time.Timer
	prefs     Preferences
	pending   *Preferences
}

// Open opens the database in the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the database at path.
func OpenPath(path string) (*Manager, error) {
	db, err := dbutil.Open(path)
	if err != nil {
		return nil, err
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}

	prefs, err := getPreferences(db)
	if err != nil {
		db.Close()
		return nil, err
	}

	return &Manager{db: db, prefs: prefs}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.pending
	m.pending = nil
	m.saveMu.Unlock()

	// Flush pending state
	if pending != nil {
		_ = savePreferences(m.db, *pending)
	}

	return m.db.Close()
}

// GetPreferences returns the latest preferences, including changes not yet
// written to disk.
func (m *Manager) GetPreferences() Preferences {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()
	return m.prefs
}

func (m *Manager) SaveLastFolder(dir string) {
	m.update(func(p *Preferences) { p.LastFolder = dir })
}

func (m *Manager) SaveSleepMinutes(minutes int) {
	if minutes <= 0 {
		return
	}
	m.update(func(p *Preferences) { p.SleepMinutes = minutes })
}

func (m *Manager) update(fn func(p *Preferences)) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	fn(&m.prefs)
	pending := m.prefs
	m.pending = &pending

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.pending
		m.pending = nil
		m.saveMu.Unlock()

		if pending != nil {
			_ = savePreferences(m.db, *pending)
		}
	})
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
