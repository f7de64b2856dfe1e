package repository

import (
	"context"
	"database/sql"

	"incomfort"
)

// SnapshotRepo caches the last good state of each heater so a restarted
// service can answer reads before its first poll.
type SnapshotRepo interface {
	Save(ctx context.Context, st incomfort.HeaterState) error
	Load(ctx context.Context, heater int) (incomfort.HeaterState, error)
	List(ctx context.Context) ([]incomfort.HeaterState, error)
}

type Repository struct {
	Snapshots SnapshotRepo
}

func NewRepository(db *sql.DB) *Repository {
	return &Repository{
		Snapshots: NewSnapshotSQLite(db),
	}
}
