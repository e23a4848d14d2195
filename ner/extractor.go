// Package ner ranks the named entities and keywords of a news text.
//
// Candidates are the proper-noun runs found by a part-of-speech tagger,
// scored by frequency. The ranking is a heuristic: fast and usefully good,
// with no model download beyond the tagger itself.
package ner

import (
	"strings"

	"github.com/fwojciec/doxhund"
)

// Ensure Extractor implements doxhund.EntityExtractor at compile time.
var _ doxhund.EntityExtractor = (*Extractor)(nil)

// Defaults for the ranking step.
const (
	DefaultTopFraction = 70
	DefaultLimit       = 8
)

// Extractor ranks entity names and keywords of a text.
// It is safe for concurrent use when its Tagger and Segmenter are.
type Extractor struct {
	tagger      doxhund.Tagger
	segmenter   doxhund.Segmenter
	stopwords   Stopwords
	topFraction int
	limit       int
}

// Option configures an Extractor.
type Option func(*Extractor)

// WithTopFraction sets the percentage of top-scored candidates considered
// before filtering. Values outside 0..100 are ignored.
func WithTopFraction(pct int) Option {
	return func(e *Extractor) {
		if pct >= 0 && pct <= 100 {
			e.topFraction = pct
		}
	}
}

// WithLimit sets the maximum number of names and of keywords returned.
func WithLimit(n int) Option {
	return func(e *Extractor) {
		if n > 0 {
			e.limit = n
		}
	}
}

// WithStopwords replaces the default stop-word set.
func WithStopwords(s Stopwords) Option {
	return func(e *Extractor) {
		e.stopwords = s
	}
}

// NewExtractor creates an Extractor that tags with tagger and splits text
// with segmenter.
func NewExtractor(tagger doxhund.Tagger, segmenter doxhund.Segmenter, opts ...Option) *Extractor {
	e := &Extractor{
		tagger:      tagger,
		segmenter:   segmenter,
		stopwords:   DefaultStopwords(),
		topFraction: DefaultTopFraction,
		limit:       DefaultLimit,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Extract returns the ranked names and keywords of text. A non-empty title
// counts as an additional leading sentence.
func (e *Extractor) Extract(title, text string) *doxhund.Entities {
	scores := e.ScoreEntities(title, text)
	return &doxhund.Entities{
		Names:    e.Names(scores),
		Keywords: e.Keywords(scores),
	}
}

// ScoreEntities returns every entity that contains no stop word, scored by
// its number of occurrences, in order of first appearance.
func (e *Extractor) ScoreEntities(title, text string) []doxhund.ScoredPhrase {
	var sentences []string
	if t := strings.TrimSpace(title); t != "" {
		sentences = append(sentences, t)
	}
	sentences = append(sentences, e.segmenter.Sentences(text)...)

	var scores []doxhund.ScoredPhrase
	index := make(map[string]int)
	for _, sentence := range sentences {
		words := e.segmenter.Words(sentence)
		if len(words) == 0 {
			continue
		}
		tokens := e.tagger.Tag(strings.Join(words, " "))
		for _, ent := range doxhund.NamedEntities(tokens) {
			if e.stopwords.containsAny(ent) {
				continue
			}
			if i, ok := index[ent]; ok {
				scores[i].Score++
				continue
			}
			index[ent] = len(scores)
			scores = append(scores, doxhund.ScoredPhrase{Text: ent, Score: 1})
		}
	}
	return scores
}

// Names returns the top-ranked multi-word entities in their original case.
func (e *Extractor) Names(scores []doxhund.ScoredPhrase) []doxhund.ScoredPhrase {
	var names []doxhund.ScoredPhrase
	for _, s := range scores {
		if strings.Contains(s.Text, " ") {
			names = append(names, s)
		}
	}
	return e.sortAndFilter(names)
}

// Keywords returns the top-ranked single-word entities, lowercased. Case
// variants of a word share one summed score.
func (e *Extractor) Keywords(scores []doxhund.ScoredPhrase) []doxhund.ScoredPhrase {
	var keywords []doxhund.ScoredPhrase
	index := make(map[string]int)
	for _, s := range scores {
		if strings.Contains(s.Text, " ") {
			continue
		}
		kw := strings.ToLower(s.Text)
		if i, ok := index[kw]; ok {
			keywords[i].Score += s.Score
			continue
		}
		index[kw] = len(keywords)
		keywords = append(keywords, doxhund.ScoredPhrase{Text: kw, Score: s.Score})
	}
	return e.sortAndFilter(keywords)
}
