package state

import (
	"database/sql"
	"fmt"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dbutil "github.com/llehouerou/audiobook/internal/db"
)

// setupTestDB creates an in-memory SQLite database with the schema initialized.
func setupTestDB(t *testing.T) *sql.DB {
	t.Helper()

	db, err := dbutil.Open(":memory:")
	require.NoError(t, err)
	require.NoError(t, initSchema(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func TestGetPreferences_Empty(t *testing.T) {
	db := setupTestDB(t)

	prefs, err := getPreferences(db)
	require.NoError(t, err)
	assert.Equal(t, Preferences{}, prefs)
}

func TestSaveAndGetPreferences(t *testing.T) {
	db := setupTestDB(t)

	want := Preferences{LastFolder: "/books/tolkien", SleepMinutes: 20}
	require.NoError(t, savePreferences(db, want))

	got, err := getPreferences(db)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	// Overwrite keeps a single row.
	want = Preferences{LastFolder: "/books/pratchett"}
	require.NoError(t, savePreferences(db, want))

	got, err = getPreferences(db)
	require.NoError(t, err)
	assert.Equal(t, want, got)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM preferences`).Scan(&count))
	assert.Equal(t, 1, count)
}

func TestInitSchema_Idempotent(t *testing.T) {
	db := setupTestDB(t)

	require.NoError(t, initSchema(db))

	var version int
	require.NoError(t, db.QueryRow(`SELECT MAX(version) FROM schema_version`).Scan(&version))
	assert.Equal(t, currentSchemaVersion, version)
}

func TestRecentFiles_NewestFirst(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)

	require.NoError(t, addRecent(db, "/books/a.m4b", base))
	require.NoError(t, addRecent(db, "/books/b.mp3", base.Add(time.Minute)))
	require.NoError(t, addRecent(db, "/books/a.m4b", base.Add(2*time.Minute)))

	paths, err := recentFiles(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"/books/a.m4b", "/books/b.mp3"}, paths)
}

func TestRecentFiles_Capped(t *testing.T) {
	db := setupTestDB(t)
	base := time.Date(2026, 1, 1, 20, 0, 0, 0, time.UTC)

	for i := range maxRecent + 3 {
		path := fmt.Sprintf("/books/%02d.m4b", i)
		require.NoError(t, addRecent(db, path, base.Add(time.Duration(i)*time.Second)))
	}

	paths, err := recentFiles(db)
	require.NoError(t, err)
	require.Len(t, paths, maxRecent)
	assert.Equal(t, fmt.Sprintf("/books/%02d.m4b", maxRecent+2), paths[0])
	assert.NotContains(t, paths, "/books/00.m4b")
}

func TestManager_CloseFlushesPending(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audiobook.db")

	m, err := OpenPath(path)
	require.NoError(t, err)
	m.SaveLastFolder("/books/tolkien")
	m.SaveSleepMinutes(45)
	m.SaveSleepMinutes(0) // ignored

	// Visible before the debounce fires.
	assert.Equal(t, Preferences{LastFolder: "/books/tolkien", SleepMinutes: 45}, m.GetPreferences())
	require.NoError(t, m.Close())

	reopened, err := OpenPath(path)
	require.NoError(t, err)
	defer reopened.Close()
	assert.Equal(t, Preferences{LastFolder: "/books/tolkien", SleepMinutes: 45}, reopened.GetPreferences())
}

func TestManager_DebouncedSave(t *testing.T) {
	m, err := OpenPath(filepath.Join(t.TempDir(), "audiobook.db"))
	require.NoError(t, err)
	defer m.Close()

	m.SaveSleepMinutes(10)
	m.SaveSleepMinutes(15)

	require.Eventually(t, func() bool {
		prefs, err := getPreferences(m.db)
		return err == nil && prefs.SleepMinutes == 15
	}, 5*time.Second, 50*time.Millisecond)
}

func TestManager_AddRecent(t *testing.T) {
	m, err := OpenPath(filepath.Join(t.TempDir(), "audiobook.db"))
	require.NoError(t, err)
	defer m.Close()

	m.AddRecent("/books/a.m4b")
	m.AddRecent("/books/b.m4b")

	paths, err := m.RecentFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"/books/b.m4b", "/books/a.m4b"}, paths)
}

func TestMock(t *testing.T) {
	m := NewMock()
	m.SaveLastFolder("/books")
	m.SaveSleepMinutes(30)
	m.AddRecent("/books/a.m4b")
	m.AddRecent("/books/b.m4b")
	m.AddRecent("/books/a.m4b")

	assert.Equal(t, Preferences{LastFolder: "/books", SleepMinutes: 30}, m.GetPreferences())
	paths, err := m.RecentFiles()
	require.NoError(t, err)
	assert.Equal(t, []string{"/books/a.m4b", "/books/b.m4b"}, paths)

	require.NoError(t, m.Close())
	assert.True(t, m.IsClosed())
}
