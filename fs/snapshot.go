// Package fs provides file-based storage for tagger models and article reports.
package fs

import (
	"context"
	"encoding/gob"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fwojciec/doxhund"
)

// Ensure FileStore implements doxhund.SnapshotStore at compile time.
var _ doxhund.SnapshotStore = (*FileStore)(nil)

// snapshotVersion identifies the on-disk layout of snapshotFile.
const snapshotVersion = 1

type snapshotFile struct {
	Version int
	Weights doxhund.Weights
	TagDict map[string]string
	Classes []string
}

// FileStore implements doxhund.SnapshotStore as a single gob-encoded file.
// Saves are atomic: the snapshot is written to path.tmp, then renamed over path.
type FileStore struct {
	path string
}

// NewFileStore creates a new FileStore backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the snapshot file path.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) tempPath() string {
	return s.path + ".tmp"
}

// SaveSnapshot writes snap, replacing any previous snapshot.
func (s *FileStore) SaveSnapshot(ctx context.Context, snap *doxhund.Snapshot) error {
	if snap == nil {
		return doxhund.Errorf(doxhund.EINVALID, "invalid model: snapshot missing")
	}
	if err := snap.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0755); err != nil {
		return fmt.Errorf("create model directory: %w", err)
	}

	f, err := os.Create(s.tempPath())
	if err != nil {
		return fmt.Errorf("create model file: %w", err)
	}
	err = gob.NewEncoder(f).Encode(snapshotFile{
		Version: snapshotVersion,
		Weights: snap.Weights,
		TagDict: snap.TagDict,
		Classes: snap.Classes,
	})
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		_ = os.Remove(s.tempPath())
		return fmt.Errorf("write model: %w", err)
	}

	// Atomically replace the previous snapshot
	if err := os.Rename(s.tempPath(), s.path); err != nil {
		_ = os.Remove(s.tempPath())
		return fmt.Errorf("commit model: %w", err)
	}
	return nil
}

// LoadSnapshot reads the stored snapshot.
// Returns ENOTFOUND if the file does not exist and EINVALID if it cannot be decoded.
func (s *FileStore) LoadSnapshot(ctx context.Context) (*doxhund.Snapshot, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, doxhund.Errorf(doxhund.ENOTFOUND, "model not found: %s", s.path)
	} else if err != nil {
		return nil, fmt.Errorf("open model: %w", err)
	}
	defer f.Close()

	var file snapshotFile
	if err := gob.NewDecoder(f).Decode(&file); err != nil {
		return nil, doxhund.Errorf(doxhund.EINVALID, "invalid model: %s: %v", s.path, err)
	}
	if file.Version != snapshotVersion {
		return nil, doxhund.Errorf(doxhund.EINVALID, "invalid model: %s: unsupported version %d", s.path, file.Version)
	}

	// Empty maps are not transmitted by gob.
	snap := &doxhund.Snapshot{
		Weights: file.Weights,
		TagDict: file.TagDict,
		Classes: file.Classes,
	}
	if snap.Weights == nil {
		snap.Weights = doxhund.Weights{}
	}
	if snap.TagDict == nil {
		snap.TagDict = map[string]string{}
	}
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return snap, nil
}
