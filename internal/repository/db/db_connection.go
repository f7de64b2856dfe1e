package db

import (
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

const sqliteDriverName = "sqlite"

// pragmas applied to every new cache file, in order.
var pragmas = []string{
	"PRAGMA journal_mode = WAL;",
	"PRAGMA busy_timeout = 5000;",
	"PRAGMA synchronous = NORMAL;",
}

const schemaHeaterSnapshot = `
CREATE TABLE IF NOT EXISTS heater_snapshot (
    heater INTEGER PRIMARY KEY CHECK (heater >= 0),
    pressure_bar REAL NOT NULL,
    heater_temp_c REAL NOT NULL,
    tap_temp_c REAL NOT NULL,
    room_temp_c REAL NOT NULL,
    setpoint_c REAL NOT NULL,
    setpoint_override_c REAL NOT NULL,
    display_code TEXT NOT NULL,
    burning BOOLEAN NOT NULL,
    lockout BOOLEAN NOT NULL,
    pumping BOOLEAN NOT NULL,
    tapping BOOLEAN NOT NULL,
    updated_at TIMESTAMP NOT NULL
);
`

// InitDB opens or creates the snapshot cache at path and makes sure the
// heater_snapshot table exists.
func InitDB(path string) (*sql.DB, error) {
	db, err := sql.Open(sqliteDriverName, path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite at %q: %w", path, err)
	}

	// one writer: the poller and API writes go through HeaterService anyway
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	if err := prepare(db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func prepare(db *sql.DB) error {
	if err := db.Ping(); err != nil {
		return fmt.Errorf("ping sqlite: %w", err)
	}
	for _, p := range pragmas {
		if _, err := db.Exec(p); err != nil {
			return fmt.Errorf("apply %q: %w", p, err)
		}
	}
	if _, err := db.Exec(schemaHeaterSnapshot); err != nil {
		return fmt.Errorf("create heater_snapshot: %w", err)
	}
	return nil
}
