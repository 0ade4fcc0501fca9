package mysql

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"yisu_hotel/internal/adapters/observability"
	"yisu_hotel/internal/domain"
)

const snapshotName = "primary"

// Store persists the dataset as one JSON blob row. The repository works
// against whole snapshots, so row-level mapping would buy nothing here.
type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

// EnsureSchema creates the snapshots table when missing.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createSnapshotsSQL)
	return err
}

func (s *Store) Load(ctx context.Context) (domain.Snapshot, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, getSnapshotSQL, snapshotName).Scan(&data)
	if err == sql.ErrNoRows {
		observability.ObserveSnapshot("mysql", "miss")
		return domain.Snapshot{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.Snapshot{}, fmt.Errorf("snapshot select: %w", err)
	}
	var snap domain.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return domain.Snapshot{}, fmt.Errorf("snapshot decode: %w", err)
	}
	observability.ObserveSnapshot("mysql", "load")
	return snap, nil
}

func (s *Store) Save(ctx context.Context, snap domain.Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("snapshot encode: %w", err)
	}
	if _, err := s.db.ExecContext(ctx, upsertSnapshotSQL, snapshotName, string(b)); err != nil {
		return fmt.Errorf("snapshot upsert: %w", err)
	}
	observability.ObserveSnapshot("mysql", "save")
	return nil
}
