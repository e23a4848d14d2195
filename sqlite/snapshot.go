package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fwojciec/doxhund"
)

// Compile-time interface verification.
var _ doxhund.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore implements doxhund.SnapshotStore using SQLite.
// The database holds at most one snapshot; saving replaces it wholesale.
type SnapshotStore struct {
	db *DB
}

// NewSnapshotStore creates a new SnapshotStore.
func NewSnapshotStore(db *DB) *SnapshotStore {
	return &SnapshotStore{db: db}
}

// SaveSnapshot replaces the stored snapshot in a single transaction.
func (s *SnapshotStore) SaveSnapshot(ctx context.Context, snap *doxhund.Snapshot) error {
	if snap == nil {
		return doxhund.Errorf(doxhund.EINVALID, "invalid model: snapshot missing")
	}
	if err := snap.Validate(); err != nil {
		return err
	}

	classes, err := json.Marshal(snap.Classes)
	if err != nil {
		return fmt.Errorf("failed to encode classes: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	for _, table := range []string{"snapshots", "snapshot_weights", "snapshot_tags"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO snapshots (id, classes, created_at) VALUES (1, ?, ?)
	`, string(classes), time.Now().UTC().Format(time.RFC3339)); err != nil {
		return err
	}

	weightStmt, err := tx.PrepareContext(ctx, "INSERT INTO snapshot_weights (feature, class, weight) VALUES (?, ?, ?)")
	if err != nil {
		return err
	}
	defer weightStmt.Close()
	for feature, classWeights := range snap.Weights {
		for class, w := range classWeights {
			if _, err := weightStmt.ExecContext(ctx, feature, class, w); err != nil {
				return fmt.Errorf("failed to insert weight: %w", err)
			}
		}
	}

	tagStmt, err := tx.PrepareContext(ctx, "INSERT INTO snapshot_tags (word, tag) VALUES (?, ?)")
	if err != nil {
		return err
	}
	defer tagStmt.Close()
	for word, tag := range snap.TagDict {
		if _, err := tagStmt.ExecContext(ctx, word, tag); err != nil {
			return fmt.Errorf("failed to insert tag: %w", err)
		}
	}

	return tx.Commit()
}

// LoadSnapshot reads the stored snapshot.
// Returns ENOTFOUND if none was saved and EINVALID if it cannot be decoded.
func (s *SnapshotStore) LoadSnapshot(ctx context.Context) (*doxhund.Snapshot, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var classes string
	err = tx.QueryRowContext(ctx, "SELECT classes FROM snapshots WHERE id = 1").Scan(&classes)
	if err == sql.ErrNoRows {
		return nil, doxhund.Errorf(doxhund.ENOTFOUND, "model not found")
	}
	if err != nil {
		return nil, err
	}

	snap := &doxhund.Snapshot{
		Weights: doxhund.Weights{},
		TagDict: map[string]string{},
	}
	if err := json.Unmarshal([]byte(classes), &snap.Classes); err != nil {
		return nil, doxhund.Errorf(doxhund.EINVALID, "invalid model: %v", err)
	}

	rows, err := tx.QueryContext(ctx, "SELECT feature, class, weight FROM snapshot_weights")
	if err != nil {
		return nil, err
	}
	for rows.Next() {
		var feature, class string
		var w float64
		if err := rows.Scan(&feature, &class, &w); err != nil {
			rows.Close()
			return nil, err
		}
		snap.Weights.Set(feature, class, w)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	rows, err = tx.QueryContext(ctx, "SELECT word, tag FROM snapshot_tags")
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	for rows.Next() {
		var word, tag string
		if err := rows.Scan(&word, &tag); err != nil {
			return nil, err
		}
		snap.TagDict[word] = tag
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}
