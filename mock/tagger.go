package mock

import (
	"context"

	"github.com/fwojciec/doxhund"
)

var _ doxhund.Tagger = (*Tagger)(nil)

// Tagger is a mock implementation of doxhund.Tagger.
type Tagger struct {
	TagFn func(text string) []doxhund.Token
}

func (t *Tagger) Tag(text string) []doxhund.Token {
	return t.TagFn(text)
}

var _ doxhund.Segmenter = (*Segmenter)(nil)

// Segmenter is a mock implementation of doxhund.Segmenter.
type Segmenter struct {
	SentencesFn func(text string) []string
	WordsFn     func(sentence string) []string
}

func (s *Segmenter) Sentences(text string) []string {
	return s.SentencesFn(text)
}

func (s *Segmenter) Words(sentence string) []string {
	return s.WordsFn(sentence)
}

var _ doxhund.SnapshotStore = (*SnapshotStore)(nil)

// SnapshotStore is a mock implementation of doxhund.SnapshotStore.
type SnapshotStore struct {
	SaveSnapshotFn func(ctx context.Context, s *doxhund.Snapshot) error
	LoadSnapshotFn func(ctx context.Context) (*doxhund.Snapshot, error)
}

func (m *SnapshotStore) SaveSnapshot(ctx context.Context, s *doxhund.Snapshot) error {
	return m.SaveSnapshotFn(ctx, s)
}

func (m *SnapshotStore) LoadSnapshot(ctx context.Context) (*doxhund.Snapshot, error) {
	return m.LoadSnapshotFn(ctx)
}
