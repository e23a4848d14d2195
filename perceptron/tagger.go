package perceptron

import (
	"context"
	"math/rand"
	"strings"
	"time"

	"github.com/fwojciec/doxhund"
	"github.com/shogo82148/go-shuffle"
)

// Ensure Tagger implements doxhund.Tagger at compile time.
var _ doxhund.Tagger = (*Tagger)(nil)

// DefaultIterations is the number of training passes over the corpus.
const DefaultIterations = 5

// Tag dictionary thresholds: a word needs this many occurrences, and this
// share of them under one tag, to bypass the model.
const (
	freqThreshold      = 20
	ambiguityThreshold = 0.97
)

// Tagger is a greedy left-to-right part-of-speech tagger.
// Words found in the tag dictionary get their dictionary tag; all others are
// classified by the model using the two previous tags as context.
type Tagger struct {
	model   *Model
	tagDict map[string]string
}

// NewTagger returns an untrained tagger.
func NewTagger() *Tagger {
	return &Tagger{
		model:   NewModel(nil),
		tagDict: make(map[string]string),
	}
}

// NewTaggerFromSnapshot returns a tagger driven by a trained snapshot.
// The snapshot is shared, not copied, and must not be modified afterwards.
func NewTaggerFromSnapshot(s *doxhund.Snapshot) (*Tagger, error) {
	if s == nil {
		return nil, doxhund.Errorf(doxhund.EINVALID, "invalid model: snapshot missing")
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &Tagger{
		model:   newTrainedModel(s.Weights, s.Classes),
		tagDict: s.TagDict,
	}, nil
}

// Load reads a snapshot from store and returns a tagger driven by it.
func Load(ctx context.Context, store doxhund.SnapshotStore) (*Tagger, error) {
	s, err := store.LoadSnapshot(ctx)
	if err != nil {
		return nil, err
	}
	return NewTaggerFromSnapshot(s)
}

// Snapshot returns the tagger's persistable state.
func (t *Tagger) Snapshot() *doxhund.Snapshot {
	return &doxhund.Snapshot{
		Weights: t.model.Weights(),
		TagDict: t.tagDict,
		Classes: t.model.Classes(),
	}
}

// Tag splits text into sentences on newlines and words on whitespace and
// tags every word. Empty sentences produce no tokens. The previous-tag
// context restarts at every line.
func (t *Tagger) Tag(text string) []doxhund.Token {
	var tokens []doxhund.Token
	for _, sentence := range strings.Split(text, "\n") {
		words := strings.Fields(sentence)
		if len(words) == 0 {
			continue
		}
		window := buildContext(words)
		prev, prev2 := start1, start2
		for i, word := range words {
			tag, ok := t.tagDict[word]
			if !ok {
				tag = t.model.Predict(extractFeatures(i, word, window, prev, prev2))
			}
			tokens = append(tokens, doxhund.Token{Text: word, Tag: tag})
			prev2, prev = prev, tag
		}
	}
	return tokens
}

// Iteration reports the outcome of one training pass. Correct and Total
// count model-driven predictions only; dictionary hits are not counted.
type Iteration struct {
	N       int
	Correct int
	Total   int
}

// Accuracy returns Correct/Total, or zero when nothing was predicted.
func (it Iteration) Accuracy() float64 {
	if it.Total == 0 {
		return 0
	}
	return float64(it.Correct) / float64(it.Total)
}

// IterationFunc is called after every training pass.
type IterationFunc func(Iteration)

type trainConfig struct {
	iterations int
	src        rand.Source
	progress   IterationFunc
}

// TrainOption configures Train.
type TrainOption func(*trainConfig)

// WithIterations sets the number of training passes.
// Defaults to DefaultIterations.
func WithIterations(n int) TrainOption {
	return func(c *trainConfig) {
		c.iterations = n
	}
}

// WithRandSource sets the source used to shuffle the corpus between passes.
// Defaults to a time-seeded source.
func WithRandSource(src rand.Source) TrainOption {
	return func(c *trainConfig) {
		c.src = src
	}
}

// WithProgress registers a callback receiving per-pass accuracy.
func WithProgress(fn IterationFunc) TrainOption {
	return func(c *trainConfig) {
		c.progress = fn
	}
}

// sentenceSlice adapts a corpus to shuffle.Interface.
type sentenceSlice []doxhund.LabeledSentence

func (s sentenceSlice) Len() int      { return len(s) }
func (s sentenceSlice) Swap(i, j int) { s[i], s[j] = s[j], s[i] }

// Train fits the tagger to a gold-tagged corpus. It builds the tag dictionary
// and class set from the whole corpus, runs the configured number of passes
// (shuffling after each), and averages the weights once at the end.
//
// A tagger can be trained once. The caller's slice is not reordered.
func (t *Tagger) Train(sentences []doxhund.LabeledSentence, opts ...TrainOption) error {
	if t.model.averaged {
		return doxhund.Errorf(doxhund.EINVALID, "tagger already trained")
	}
	if len(sentences) == 0 {
		return doxhund.Errorf(doxhund.EINVALID, "training corpus is empty")
	}
	for i, s := range sentences {
		if len(s.Words) != len(s.Tags) {
			return doxhund.Errorf(doxhund.EINVALID, "sentence %d: %d words but %d tags", i, len(s.Words), len(s.Tags))
		}
	}

	cfg := trainConfig{iterations: DefaultIterations}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.src == nil {
		cfg.src = rand.NewSource(time.Now().UnixNano())
	}

	t.model.setClasses(t.makeTagDict(sentences))

	corpus := make(sentenceSlice, len(sentences))
	copy(corpus, sentences)
	shuffler := shuffle.New(cfg.src)

	for n := 0; n < cfg.iterations; n++ {
		it := Iteration{N: n}
		for _, s := range corpus {
			window := buildContext(s.Words)
			prev, prev2 := start1, start2
			for i, word := range s.Words {
				guess, ok := t.tagDict[word]
				if !ok {
					features := extractFeatures(i, word, window, prev, prev2)
					guess = t.model.Predict(features)
					t.model.Update(s.Tags[i], guess, features)
					if guess == s.Tags[i] {
						it.Correct++
					}
					it.Total++
				}
				prev2, prev = prev, guess
			}
		}
		shuffler.Shuffle(corpus)
		if cfg.progress != nil {
			cfg.progress(it)
		}
	}

	return t.model.AverageWeights()
}

// makeTagDict fills the tag dictionary with frequent unambiguous words and
// returns every tag seen in the corpus.
func (t *Tagger) makeTagDict(sentences []doxhund.LabeledSentence) []string {
	counts := make(map[string]map[string]int)
	seen := make(map[string]struct{})
	var classes []string

	for _, s := range sentences {
		for i, word := range s.Words {
			tag := s.Tags[i]
			if counts[word] == nil {
				counts[word] = make(map[string]int)
			}
			counts[word][tag]++
			if _, ok := seen[tag]; !ok {
				seen[tag] = struct{}{}
				classes = append(classes, tag)
			}
		}
	}

	for word, freqs := range counts {
		var tag string
		var mode, n int
		for tg, c := range freqs {
			n += c
			if c > mode || (c == mode && tg < tag) {
				tag, mode = tg, c
			}
		}
		if n >= freqThreshold && float64(mode)/float64(n) >= ambiguityThreshold {
			t.tagDict[word] = tag
		}
	}

	return classes
}
