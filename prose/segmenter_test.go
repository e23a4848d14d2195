package prose_test

import (
	"testing"

	"github.com/fwojciec/doxhund/prose"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSegmenter_Sentences(t *testing.T) {
	t.Parallel()

	seg := prose.NewSegmenter()

	t.Run("splits on sentence boundaries", func(t *testing.T) {
		t.Parallel()

		sentences := seg.Sentences("Rami Eid is studying at Stony Brook University. He lives in New York. It rains.")

		require.Len(t, sentences, 3)
		assert.Equal(t, "Rami Eid is studying at Stony Brook University.", sentences[0])
		assert.Equal(t, "It rains.", sentences[2])
	})

	t.Run("returns nothing for blank text", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, seg.Sentences(""))
		assert.Empty(t, seg.Sentences("  \n\t "))
	})
}

func TestSegmenter_Words(t *testing.T) {
	t.Parallel()

	seg := prose.NewSegmenter()

	t.Run("separates punctuation from words", func(t *testing.T) {
		t.Parallel()

		words := seg.Words("Merkel met Macron in Paris, France.")

		assert.Equal(t, []string{"Merkel", "met", "Macron", "in", "Paris", ",", "France", "."}, words)
	})

	t.Run("treats newlines as spaces", func(t *testing.T) {
		t.Parallel()

		words := seg.Words("Stony\nBrook")

		assert.Equal(t, []string{"Stony", "Brook"}, words)
	})

	t.Run("returns nothing for blank text", func(t *testing.T) {
		t.Parallel()

		assert.Empty(t, seg.Words(" "))
	})
}
