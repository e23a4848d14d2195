package doxhund

import (
	"context"
	"strings"
)

// ProperNounTag is the Penn Treebank tag for a singular proper noun.
// Runs of tokens carrying it form named entities.
const ProperNounTag = "NNP"

// Token is a word together with its part-of-speech tag.
type Token struct {
	Text string `json:"text"`
	Tag  string `json:"tag"`
}

// LabeledSentence is a gold-tagged training sentence.
// Words and Tags have the same length.
type LabeledSentence struct {
	Words []string
	Tags  []string
}

// Tagger assigns part-of-speech tags to text.
type Tagger interface {
	// Tag splits text into sentences on newlines and into words on whitespace,
	// and returns one token per word in input order. Each line is tagged
	// independently: previous-tag context does not carry across newlines.
	Tag(text string) []Token
}

// Segmenter splits natural-language text into sentences and words.
type Segmenter interface {
	// Sentences returns the sentences of text in order.
	Sentences(text string) []string

	// Words returns the word tokens of a single sentence in order.
	Words(sentence string) []string
}

// Features maps a feature name to its occurrence count in one word context.
type Features map[string]int

// Weights maps a feature name to per-class weights.
type Weights map[string]map[string]float64

// Get returns the weight of class for feature, or zero when either is absent.
func (w Weights) Get(feature, class string) float64 {
	return w[feature][class]
}

// Set stores the weight of class for feature.
func (w Weights) Set(feature, class string, v float64) {
	m, ok := w[feature]
	if !ok {
		m = make(map[string]float64)
		w[feature] = m
	}
	m[class] = v
}

// Snapshot is a trained tagger model: weight table, tag dictionary and class
// set. It is created by training and loaded wholesale before inference.
type Snapshot struct {
	Weights Weights
	TagDict map[string]string
	Classes []string
}

// Validate returns an error if the snapshot cannot drive a tagger.
func (s *Snapshot) Validate() error {
	if s.Weights == nil {
		return Errorf(EINVALID, "invalid model: weight table missing")
	}
	if s.TagDict == nil {
		return Errorf(EINVALID, "invalid model: tag dictionary missing")
	}
	if len(s.Classes) == 0 {
		return Errorf(EINVALID, "invalid model: class set empty")
	}
	return nil
}

// SnapshotStore persists tagger snapshots.
type SnapshotStore interface {
	// SaveSnapshot replaces the stored snapshot.
	SaveSnapshot(ctx context.Context, s *Snapshot) error

	// LoadSnapshot returns the stored snapshot.
	// Returns ENOTFOUND if no snapshot exists and EINVALID if it is unreadable.
	LoadSnapshot(ctx context.Context) (*Snapshot, error)
}

// ChunkKind distinguishes entity chunks from plain tokens.
type ChunkKind int

const (
	// ChunkToken is a single token outside any entity.
	ChunkToken ChunkKind = iota
	// ChunkEntity is a maximal run of proper-noun tokens.
	ChunkEntity
)

// Chunk is a contiguous group of tokens of one kind.
type Chunk struct {
	Kind   ChunkKind
	Tokens []Token
}

// Text returns the chunk's words joined by single spaces.
func (c Chunk) Text() string {
	words := make([]string, len(c.Tokens))
	for i, t := range c.Tokens {
		words[i] = t.Text
	}
	return strings.Join(words, " ")
}

// Chunks groups consecutive proper-noun tokens into entity chunks.
// Every other token becomes its own plain chunk.
func Chunks(tokens []Token) []Chunk {
	var chunks []Chunk
	var run []Token
	flush := func() {
		if len(run) > 0 {
			chunks = append(chunks, Chunk{Kind: ChunkEntity, Tokens: run})
			run = nil
		}
	}
	for _, t := range tokens {
		if t.Tag == ProperNounTag {
			run = append(run, t)
			continue
		}
		flush()
		chunks = append(chunks, Chunk{Kind: ChunkToken, Tokens: []Token{t}})
	}
	flush()
	return chunks
}

// NamedEntities returns the text of every proper-noun run in order.
// Single-token runs are included.
func NamedEntities(tokens []Token) []string {
	var entities []string
	for _, c := range Chunks(tokens) {
		if c.Kind == ChunkEntity {
			entities = append(entities, c.Text())
		}
	}
	return entities
}
