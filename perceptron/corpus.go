package perceptron

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/fwojciec/doxhund"
)

// sentenceEnd is the word that closes a sentence in a training corpus.
const sentenceEnd = "."

// maxLineSize bounds a single corpus line.
const maxLineSize = 1 << 20

// ReadCorpus parses a training corpus of "word tag" lines. A line whose word
// is a lone "." closes the current sentence. Lines that do not split into
// exactly two fields are skipped, as are words after the last ".".
func ReadCorpus(r io.Reader) ([]doxhund.LabeledSentence, error) {
	var sentences []doxhund.LabeledSentence
	var current doxhund.LabeledSentence

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), maxLineSize)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) != 2 {
			continue
		}
		current.Words = append(current.Words, fields[0])
		current.Tags = append(current.Tags, fields[1])

		if fields[0] == sentenceEnd {
			sentences = append(sentences, current)
			current = doxhund.LabeledSentence{}
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read corpus: %w", err)
	}
	return sentences, nil
}
