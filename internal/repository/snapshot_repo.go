package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"incomfort"
)

type SnapshotSQLite struct {
	db *sql.DB
}

func NewSnapshotSQLite(db *sql.DB) *SnapshotSQLite {
	return &SnapshotSQLite{db: db}
}

var _ SnapshotRepo = (*SnapshotSQLite)(nil)

const (
	upsertSnapshotSQL = `
		INSERT INTO heater_snapshot (heater, pressure_bar, heater_temp_c, tap_temp_c, room_temp_c,
			setpoint_c, setpoint_override_c, display_code, burning, lockout, pumping, tapping, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(heater) DO UPDATE SET
			pressure_bar=excluded.pressure_bar,
			heater_temp_c=excluded.heater_temp_c,
			tap_temp_c=excluded.tap_temp_c,
			room_temp_c=excluded.room_temp_c,
			setpoint_c=excluded.setpoint_c,
			setpoint_override_c=excluded.setpoint_override_c,
			display_code=excluded.display_code,
			burning=excluded.burning,
			lockout=excluded.lockout,
			pumping=excluded.pumping,
			tapping=excluded.tapping,
			updated_at=excluded.updated_at
	`

	snapshotColumns = `heater, pressure_bar, heater_temp_c, tap_temp_c, room_temp_c,
		setpoint_c, setpoint_override_c, display_code, burning, lockout, pumping, tapping, updated_at`

	selectSnapshotSQL  = `SELECT ` + snapshotColumns + ` FROM heater_snapshot WHERE heater=?`
	selectSnapshotsSQL = `SELECT ` + snapshotColumns + ` FROM heater_snapshot ORDER BY heater`
)

// Save upserts the row for st.Heater. UpdatedAt is stored as UTC and set to now when zero.
func (r *SnapshotSQLite) Save(ctx context.Context, st incomfort.HeaterState) error {
	if st.Heater < 0 {
		return fmt.Errorf("save snapshot: invalid heater index %d", st.Heater)
	}
	ts := st.UpdatedAt
	if ts.IsZero() {
		ts = time.Now().UTC()
	} else {
		ts = ts.UTC()
	}

	_, err := r.db.ExecContext(ctx, upsertSnapshotSQL,
		st.Heater,
		st.PressureBar,
		st.HeaterTempC,
		st.TapTempC,
		st.RoomTempC,
		st.SetpointC,
		st.SetpointOverrideC,
		st.Display.String(),
		st.Burning,
		st.Lockout,
		st.Pumping,
		st.Tapping,
		ts,
	)
	if err != nil {
		return fmt.Errorf("save snapshot of heater %d: %w", st.Heater, err)
	}
	return nil
}

// Load fetches one heater's row. A heater never saved gives the zero state and no error.
func (r *SnapshotSQLite) Load(ctx context.Context, heater int) (incomfort.HeaterState, error) {
	st, err := scanSnapshot(r.db.QueryRowContext(ctx, selectSnapshotSQL, heater))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return incomfort.HeaterState{}, nil // no snapshot yet
		}
		return incomfort.HeaterState{}, fmt.Errorf("load snapshot of heater %d: %w", heater, err)
	}
	return st, nil
}

// List returns every cached snapshot ordered by heater.
func (r *SnapshotSQLite) List(ctx context.Context) ([]incomfort.HeaterState, error) {
	rows, err := r.db.QueryContext(ctx, selectSnapshotsSQL)
	if err != nil {
		return nil, fmt.Errorf("list snapshots: %w", err)
	}
	defer rows.Close()

	var out []incomfort.HeaterState
	for rows.Next() {
		st, err := scanSnapshot(rows)
		if err != nil {
			return nil, fmt.Errorf("scan snapshot: %w", err)
		}
		out = append(out, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate snapshots: %w", err)
	}
	return out, nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanSnapshot(row scanner) (incomfort.HeaterState, error) {
	var st incomfort.HeaterState
	var display string
	if err := row.Scan(
		&st.Heater,
		&st.PressureBar,
		&st.HeaterTempC,
		&st.TapTempC,
		&st.RoomTempC,
		&st.SetpointC,
		&st.SetpointOverrideC,
		&display,
		&st.Burning,
		&st.Lockout,
		&st.Pumping,
		&st.Tapping,
		&st.UpdatedAt,
	); err != nil {
		return incomfort.HeaterState{}, err
	}
	st.Display = incomfort.ParseDisplayState(display)
	st.UpdatedAt = st.UpdatedAt.UTC()
	return st, nil
}
