package state

import (
	"database/sql"
	"time"

	dbutil "github.com/llehouerou/audiobook/internal/db"
)

// maxRecent bounds the recent_files table.
const maxRecent = 10

// AddRecent records path as the most recently opened file. Write errors are
// dropped; the list is a convenience.
func (m *Manager) AddRecent(path string) {
	_ = addRecent(m.db, path, time.Now())
}

// RecentFiles returns recently opened files, newest first.
func (m *Manager) RecentFiles() ([]string, error) {
	return recentFiles(m.db)
}

func addRecent(db *sql.DB, path string, at time.Time) error {
	return dbutil.WithTx(db, func(tx *sql.Tx) error {
		_, err := tx.Exec(`
			INSERT INTO recent_files (path, opened_at) VALUES (?, ?)
			ON CONFLICT(path) DO UPDATE SET opened_at = excluded.opened_at
		`, path, at.UnixNano())
		if err != nil {
			return err
		}
		_, err = tx.Exec(`
			DELETE FROM recent_files WHERE path NOT IN (
				SELECT path FROM recent_files ORDER BY opened_at DESC LIMIT ?
			)
		`, maxRecent)
		return err
	})
}

func recentFiles(db *sql.DB) ([]string, error) {
	rows, err := db.Query(`SELECT path FROM recent_files ORDER BY opened_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, rows.Err()
}
