package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/doxhund"
	"github.com/fwojciec/doxhund/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSnapshot() *doxhund.Snapshot {
	return &doxhund.Snapshot{
		Weights: doxhund.Weights{
			"bias":         {"NN": 0.5, "VB": -0.25},
			"i word !YEAR": {"CD": 1.125},
		},
		TagDict: map[string]string{"the": "DT", ".": "."},
		Classes: []string{".", "CD", "DT", "NN", "VB"},
	}
}

func TestFileStore_SaveAndLoad(t *testing.T) {
	t.Parallel()

	// Given a store in a directory that does not exist yet
	path := filepath.Join(t.TempDir(), "models", "tagger.gob")
	store := fs.NewFileStore(path)

	// When I save a snapshot and load it back
	require.NoError(t, store.SaveSnapshot(context.Background(), testSnapshot()))
	got, err := store.LoadSnapshot(context.Background())

	// Then the snapshot round-trips unchanged
	require.NoError(t, err)
	assert.Equal(t, testSnapshot(), got)

	// And no temp file is left behind
	_, err = os.Stat(path + ".tmp")
	assert.True(t, os.IsNotExist(err))
}

func TestFileStore_SaveReplacesPreviousSnapshot(t *testing.T) {
	t.Parallel()

	store := fs.NewFileStore(filepath.Join(t.TempDir(), "tagger.gob"))
	require.NoError(t, store.SaveSnapshot(context.Background(), testSnapshot()))

	replacement := &doxhund.Snapshot{
		Weights: doxhund.Weights{"bias": {"NNP": 2}},
		TagDict: map[string]string{},
		Classes: []string{"NNP"},
	}
	require.NoError(t, store.SaveSnapshot(context.Background(), replacement))

	got, err := store.LoadSnapshot(context.Background())
	require.NoError(t, err)
	assert.Equal(t, replacement, got)
}

func TestFileStore_EmptyTablesSurvive(t *testing.T) {
	t.Parallel()

	store := fs.NewFileStore(filepath.Join(t.TempDir(), "tagger.gob"))
	snap := &doxhund.Snapshot{
		Weights: doxhund.Weights{},
		TagDict: map[string]string{},
		Classes: []string{"NN"},
	}
	require.NoError(t, store.SaveSnapshot(context.Background(), snap))

	got, err := store.LoadSnapshot(context.Background())

	require.NoError(t, err)
	assert.Equal(t, snap, got)
}

func TestFileStore_LoadMissing(t *testing.T) {
	t.Parallel()

	store := fs.NewFileStore(filepath.Join(t.TempDir(), "missing.gob"))

	_, err := store.LoadSnapshot(context.Background())

	require.Error(t, err)
	assert.Equal(t, doxhund.ENOTFOUND, doxhund.ErrorCode(err))
	assert.Contains(t, doxhund.ErrorMessage(err), "model not found")
}

func TestFileStore_LoadCorrupt(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tagger.gob")
	require.NoError(t, os.WriteFile(path, []byte("not a gob stream"), 0644))
	store := fs.NewFileStore(path)

	_, err := store.LoadSnapshot(context.Background())

	require.Error(t, err)
	assert.Equal(t, doxhund.EINVALID, doxhund.ErrorCode(err))
	assert.Contains(t, doxhund.ErrorMessage(err), "invalid model")
}

func TestFileStore_SaveRejectsInvalidSnapshot(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "tagger.gob")
	store := fs.NewFileStore(path)

	err := store.SaveSnapshot(context.Background(), &doxhund.Snapshot{})

	assert.Equal(t, doxhund.EINVALID, doxhund.ErrorCode(err))
	_, statErr := os.Stat(path)
	assert.True(t, os.IsNotExist(statErr))
}
