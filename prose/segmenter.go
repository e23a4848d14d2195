// Package prose implements doxhund.Segmenter with the punkt sentence
// tokenizer and the Penn Treebank word tokenizer.
package prose

import (
	"strings"

	"github.com/fwojciec/doxhund"
	"github.com/jdkato/prose/tokenize"
)

// Ensure Segmenter implements doxhund.Segmenter at compile time.
var _ doxhund.Segmenter = (*Segmenter)(nil)

// Segmenter splits English text into sentences and words.
// The underlying tokenizers are stateless after construction, so a Segmenter
// can be shared between goroutines.
type Segmenter struct {
	sentences *tokenize.PunktSentenceTokenizer
	words     *tokenize.TreebankWordTokenizer
}

// NewSegmenter returns a Segmenter using the English punkt model.
func NewSegmenter() *Segmenter {
	return &Segmenter{
		sentences: tokenize.NewPunktSentenceTokenizer(),
		words:     tokenize.NewTreebankWordTokenizer(),
	}
}

// Sentences returns the trimmed, non-empty sentences of text.
func (s *Segmenter) Sentences(text string) []string {
	if strings.TrimSpace(text) == "" {
		return nil
	}
	var out []string
	for _, sent := range s.sentences.Tokenize(text) {
		if sent = strings.TrimSpace(sent); sent != "" {
			out = append(out, sent)
		}
	}
	return out
}

// Words returns the treebank word tokens of sentence.
// Embedded newlines are treated as spaces.
func (s *Segmenter) Words(sentence string) []string {
	sentence = strings.Join(strings.Fields(sentence), " ")
	if sentence == "" {
		return nil
	}
	return s.words.Tokenize(sentence)
}
