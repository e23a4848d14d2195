package ner_test

import (
	"fmt"
	"strings"
	"testing"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/doxhund"
	"github.com/fwojciec/doxhund/mock"
	"github.com/fwojciec/doxhund/ner"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// capsTagger tags capitalized words and "%%" as proper nouns.
func capsTagger() *mock.Tagger {
	return &mock.Tagger{
		TagFn: func(text string) []doxhund.Token {
			var tokens []doxhund.Token
			for _, w := range strings.Fields(text) {
				tag := "NN"
				r, _ := utf8.DecodeRuneInString(w)
				if unicode.IsUpper(r) || w == "%%" {
					tag = doxhund.ProperNounTag
				}
				tokens = append(tokens, doxhund.Token{Text: w, Tag: tag})
			}
			return tokens
		},
	}
}

// lineSegmenter treats every line as a sentence.
func lineSegmenter() *mock.Segmenter {
	return &mock.Segmenter{
		SentencesFn: func(text string) []string {
			var out []string
			for _, line := range strings.Split(text, "\n") {
				if strings.TrimSpace(line) != "" {
					out = append(out, line)
				}
			}
			return out
		},
		WordsFn: strings.Fields,
	}
}

func lines(parts ...string) string {
	return strings.Join(parts, "\n")
}

func times(s string, n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = s
	}
	return out
}

func TestExtractor_ScoreEntities(t *testing.T) {
	t.Parallel()

	t.Run("counts entities in order of first appearance", func(t *testing.T) {
		t.Parallel()

		e := ner.NewExtractor(capsTagger(), lineSegmenter())

		scores := e.ScoreEntities("", lines(
			"yesterday Berlin met Angela Merkel",
			"later Angela Merkel left",
			"and Berlin slept",
		))

		assert.Equal(t, []doxhund.ScoredPhrase{
			{Text: "Berlin", Score: 2},
			{Text: "Angela Merkel", Score: 2},
		}, scores)
	})

	t.Run("scores the title as a leading sentence", func(t *testing.T) {
		t.Parallel()

		e := ner.NewExtractor(capsTagger(), lineSegmenter())

		scores := e.ScoreEntities("Paris burns", "then Rome")

		assert.Equal(t, []string{"Paris", "Rome"}, doxhund.Phrases(scores))
	})

	t.Run("drops entities containing a stop word", func(t *testing.T) {
		t.Parallel()

		e := ner.NewExtractor(capsTagger(), lineSegmenter())

		scores := e.ScoreEntities("", lines(
			"The dog barked",
			"at The White House",
			"near Lake Tahoe",
		))

		assert.Equal(t, []string{"Lake Tahoe"}, doxhund.Phrases(scores))
	})

	t.Run("accepts a custom stop-word set", func(t *testing.T) {
		t.Parallel()

		e := ner.NewExtractor(capsTagger(), lineSegmenter(), ner.WithStopwords(ner.NewStopwords("lake")))

		scores := e.ScoreEntities("", "The dog at Lake Tahoe")

		assert.Equal(t, []string{"The"}, doxhund.Phrases(scores))
	})

	t.Run("joins segmented words before tagging", func(t *testing.T) {
		t.Parallel()

		var tagged []string
		tagger := capsTagger()
		inner := tagger.TagFn
		tagger.TagFn = func(text string) []doxhund.Token {
			tagged = append(tagged, text)
			return inner(text)
		}
		seg := &mock.Segmenter{
			SentencesFn: func(string) []string { return []string{"Hi, Bob."} },
			WordsFn:     func(string) []string { return []string{"Hi", ",", "Bob", "."} },
		}

		ner.NewExtractor(tagger, seg).ScoreEntities("", "Hi, Bob.")

		assert.Equal(t, []string{"Hi , Bob ."}, tagged)
	})
}

func TestExtractor_Keywords(t *testing.T) {
	t.Parallel()

	t.Run("drops near-duplicates of higher-ranked keywords", func(t *testing.T) {
		t.Parallel()

		e := ner.NewExtractor(capsTagger(), lineSegmenter(), ner.WithTopFraction(100))
		text := lines(append(times("Trump spoke", 3), times("Trumps left", 2)...)...)

		keywords := e.Keywords(e.ScoreEntities("", text))

		assert.Equal(t, []doxhund.ScoredPhrase{{Text: "trump", Score: 3}}, keywords)
	})

	t.Run("sums case variants", func(t *testing.T) {
		t.Parallel()

		e := ner.NewExtractor(capsTagger(), lineSegmenter(), ner.WithTopFraction(100))

		keywords := e.Keywords(e.ScoreEntities("", lines("NASA flew", "Nasa landed", "Ohio waited")))

		assert.Equal(t, []doxhund.ScoredPhrase{
			{Text: "nasa", Score: 2},
			{Text: "ohio", Score: 1},
		}, keywords)
	})

	t.Run("drops punctuation-only candidates", func(t *testing.T) {
		t.Parallel()

		e := ner.NewExtractor(capsTagger(), lineSegmenter(), ner.WithTopFraction(100))

		keywords := e.Keywords(e.ScoreEntities("", lines("%% and Ohio", "%% again")))

		assert.Equal(t, []string{"ohio"}, doxhund.Phrases(keywords))
	})

	t.Run("keeps the top seventy percent by default", func(t *testing.T) {
		t.Parallel()

		e := ner.NewExtractor(capsTagger(), lineSegmenter())
		text := lines(
			"Ohio x Ohio x Ohio",
			"x Ohio",
			"Kenya x Kenya x Kenya",
			"Brazil x Brazil",
			"Japan",
		)

		keywords := e.Keywords(e.ScoreEntities("", text))

		// Four candidates keep floor(4*70/100) = 2.
		assert.Equal(t, []doxhund.ScoredPhrase{
			{Text: "ohio", Score: 4},
			{Text: "kenya", Score: 3},
		}, keywords)
	})

	t.Run("a single candidate falls below the cut", func(t *testing.T) {
		t.Parallel()

		e := ner.NewExtractor(capsTagger(), lineSegmenter())

		assert.Empty(t, e.Keywords(e.ScoreEntities("", "Ohio")))
	})
}

func TestExtractor_Names(t *testing.T) {
	t.Parallel()

	t.Run("keeps multi-word entities in original case", func(t *testing.T) {
		t.Parallel()

		e := ner.NewExtractor(capsTagger(), lineSegmenter(), ner.WithTopFraction(100))

		names := e.Names(e.ScoreEntities("", lines("Angela Merkel met Ohio", "Angela Merkel left")))

		assert.Equal(t, []doxhund.ScoredPhrase{{Text: "Angela Merkel", Score: 2}}, names)
	})

	t.Run("equal scores keep first appearance order", func(t *testing.T) {
		t.Parallel()

		e := ner.NewExtractor(capsTagger(), lineSegmenter(), ner.WithTopFraction(100))

		names := e.Names(e.ScoreEntities("", lines("Xavier Quill met Bob Dent", "then Mona Zelk")))

		assert.Equal(t, []string{"Xavier Quill", "Bob Dent", "Mona Zelk"}, doxhund.Phrases(names))
	})
}

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	t.Run("returns at most the limit in descending score order", func(t *testing.T) {
		t.Parallel()

		var sentences []string
		for i := 0; i < 12; i++ {
			r := rune('A' + i)
			name := fmt.Sprintf("%caa %cbb", r, r)
			word := strings.Repeat(string(r), 3)
			sentences = append(sentences, times("x "+name+" y "+word, i+1)...)
		}

		e := ner.NewExtractor(capsTagger(), lineSegmenter(), ner.WithTopFraction(100))
		entities := e.Extract("", lines(sentences...))

		require.NotEmpty(t, entities.Names)
		require.NotEmpty(t, entities.Keywords)
		assert.LessOrEqual(t, len(entities.Names), ner.DefaultLimit)
		assert.LessOrEqual(t, len(entities.Keywords), ner.DefaultLimit)
		for _, list := range [][]doxhund.ScoredPhrase{entities.Names, entities.Keywords} {
			for i := 1; i < len(list); i++ {
				assert.GreaterOrEqual(t, list[i-1].Score, list[i].Score)
			}
		}
		assert.Equal(t, "Laa Lbb", entities.Names[0].Text)
		assert.Equal(t, "lll", entities.Keywords[0].Text)
	})

	t.Run("honors a custom limit", func(t *testing.T) {
		t.Parallel()

		e := ner.NewExtractor(capsTagger(), lineSegmenter(), ner.WithTopFraction(100), ner.WithLimit(1))
		entities := e.Extract("", lines("Ohio x Kenya", "Ohio"))

		assert.Equal(t, []string{"ohio"}, doxhund.Phrases(entities.Keywords))
	})

	t.Run("never returns a stop word as a name", func(t *testing.T) {
		t.Parallel()

		e := ner.NewExtractor(capsTagger(), lineSegmenter(), ner.WithTopFraction(100))
		entities := e.Extract("The News", lines(times("The Senate voted", 5)...))

		assert.Empty(t, entities.Names)
		assert.NotContains(t, doxhund.Phrases(entities.Keywords), "the")
	})

	t.Run("empty text yields empty lists", func(t *testing.T) {
		t.Parallel()

		e := ner.NewExtractor(capsTagger(), lineSegmenter())
		entities := e.Extract("", "")

		require.NotNil(t, entities)
		assert.Empty(t, entities.Names)
		assert.Empty(t, entities.Keywords)
	})
}

func TestDefaultStopwords(t *testing.T) {
	t.Parallel()

	s := ner.DefaultStopwords()

	assert.True(t, s.Contains("the"))
	assert.True(t, s.Contains("The"))
	assert.True(t, s.Contains("und"))
	assert.False(t, s.Contains("merkel"))
}
