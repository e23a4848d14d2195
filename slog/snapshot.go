package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/doxhund"
)

// Ensure LoggingSnapshotStore implements doxhund.SnapshotStore.
var _ doxhund.SnapshotStore = (*LoggingSnapshotStore)(nil)

// LoggingSnapshotStore wraps a SnapshotStore with logging.
type LoggingSnapshotStore struct {
	next   doxhund.SnapshotStore
	logger *slog.Logger
}

// NewLoggingSnapshotStore creates a new LoggingSnapshotStore.
func NewLoggingSnapshotStore(next doxhund.SnapshotStore, logger *slog.Logger) *LoggingSnapshotStore {
	return &LoggingSnapshotStore{next: next, logger: logger}
}

// SaveSnapshot delegates to the wrapped store and logs the operation.
func (s *LoggingSnapshotStore) SaveSnapshot(ctx context.Context, snap *doxhund.Snapshot) (err error) {
	defer func(begin time.Time) {
		features, words, classes := snapshotSize(snap)
		s.logger.Info("save model",
			"features", features,
			"tagdict", words,
			"classes", classes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.SaveSnapshot(ctx, snap)
}

// LoadSnapshot delegates to the wrapped store and logs the operation.
func (s *LoggingSnapshotStore) LoadSnapshot(ctx context.Context) (snap *doxhund.Snapshot, err error) {
	defer func(begin time.Time) {
		features, words, classes := snapshotSize(snap)
		s.logger.Info("load model",
			"features", features,
			"tagdict", words,
			"classes", classes,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.LoadSnapshot(ctx)
}

func snapshotSize(snap *doxhund.Snapshot) (features, words, classes int) {
	if snap == nil {
		return 0, 0, 0
	}
	return len(snap.Weights), len(snap.TagDict), len(snap.Classes)
}
