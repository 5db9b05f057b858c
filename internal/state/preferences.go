package state

import (
	"database/sql"
	"errors"

	dbutil "github.com/llehouerou/audiobook/internal/db"
)

type Preferences struct {
	LastFolder   string
	SleepMinutes int // 0 when never set
}

func getPreferences(db *sql.DB) (Preferences, error) {
	row := db.QueryRow(`SELECT last_folder, sleep_minutes FROM preferences WHERE id = 1`)

	var folder sql.NullString
	var minutes sql.NullInt64
	err := row.Scan(&folder, &minutes)
	if errors.Is(err, sql.ErrNoRows) {
		return Preferences{}, nil
	}
	if err != nil {
		return Preferences{}, err
	}

	return Preferences{
		LastFolder:   dbutil.NullStringValue(folder),
		SleepMinutes: int(dbutil.NullInt64Value(minutes)),
	}, nil
}

func savePreferences(db *sql.DB, p Preferences) error {
	_, err := db.Exec(`
		INSERT INTO preferences (id, last_folder, sleep_minutes)
		VALUES (1, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			last_folder = excluded.last_folder,
			sleep_minutes = excluded.sleep_minutes
	`, nullString(p.LastFolder), nullInt(p.SleepMinutes))
	return err
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullInt(n int) sql.NullInt64 {
	return sql.NullInt64{Int64: int64(n), Valid: n > 0}
}
