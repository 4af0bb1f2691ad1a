package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrNoSnapshot is returned when nothing has been saved for a kind yet
var ErrNoSnapshot = errors.New("no snapshot stored")

// Snapshot describes a stored dataset
type Snapshot struct {
	Kind        string    `json:"kind"`
	Source      string    `json:"source"`
	RecordCount int       `json:"record_count"`
	CapturedAt  time.Time `json:"captured_at"`
}

// SaveRecords replaces the snapshot for kind with records
func SaveRecords[T any](ctx context.Context, db *DB, kind, source string, records []T) error {
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to marshal %s snapshot: %w", kind, err)
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM app_snapshots WHERE kind = ?", kind); err != nil {
		return fmt.Errorf("failed to delete old %s snapshot: %w", kind, err)
	}

	_, err = tx.ExecContext(ctx,
		"INSERT INTO app_snapshots (kind, source, record_count, payload, captured_at) VALUES (?, ?, ?, ?, ?)",
		kind, source, len(records), string(data), time.Now().UnixMilli())
	if err != nil {
		return fmt.Errorf("failed to insert %s snapshot: %w", kind, err)
	}

	return tx.Commit()
}

// LoadRecords reads the snapshot for kind
func LoadRecords[T any](ctx context.Context, db *DB, kind string) ([]T, *Snapshot, error) {
	var (
		snap       Snapshot
		data       string
		capturedAt int64
	)

	err := db.QueryRowContext(ctx,
		"SELECT kind, source, record_count, payload, captured_at FROM app_snapshots WHERE kind = ?", kind).
		Scan(&snap.Kind, &snap.Source, &snap.RecordCount, &data, &capturedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, ErrNoSnapshot
		}
		return nil, nil, fmt.Errorf("failed to query %s snapshot: %w", kind, err)
	}
	snap.CapturedAt = time.UnixMilli(capturedAt)

	var records []T
	if err := json.Unmarshal([]byte(data), &records); err != nil {
		return nil, nil, fmt.Errorf("failed to decode %s snapshot: %w", kind, err)
	}

	return records, &snap, nil
}

// ListSnapshots returns metadata for every stored snapshot
func (db *DB) ListSnapshots(ctx context.Context) ([]Snapshot, error) {
	rows, err := db.QueryContext(ctx, "SELECT kind, source, record_count, captured_at FROM app_snapshots ORDER BY kind")
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snaps []Snapshot
	for rows.Next() {
		var (
			s          Snapshot
			capturedAt int64
		)
		if err := rows.Scan(&s.Kind, &s.Source, &s.RecordCount, &capturedAt); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		s.CapturedAt = time.UnixMilli(capturedAt)
		snaps = append(snaps, s)
	}

	return snaps, rows.Err()
}

// ClearSnapshots removes every stored snapshot
func (db *DB) ClearSnapshots(ctx context.Context) (int64, error) {
	res, err := db.ExecContext(ctx, "DELETE FROM app_snapshots")
	if err != nil {
		return 0, fmt.Errorf("failed to clear snapshots: %w", err)
	}
	return res.RowsAffected()
}
