package main

import (
	"fmt"
	"math/rand"
	"os"
	"time"

	"github.com/fwojciec/doxhund"
	"github.com/fwojciec/doxhund/perceptron"
)

// Run executes the train command.
func (c *TrainCmd) Run(deps *Dependencies) error {
	f, err := os.Open(c.Corpus)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}
	defer f.Close()

	sentences, err := perceptron.ReadCorpus(f)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", err)
		return err
	}

	seed := c.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	tagger := perceptron.NewTagger()
	err = tagger.Train(sentences,
		perceptron.WithIterations(c.Iterations),
		perceptron.WithRandSource(rand.NewSource(seed)),
		perceptron.WithProgress(func(it perceptron.Iteration) {
			fmt.Fprintf(deps.Stderr, "Iteration %d: %d/%d correct (%.1f%%)\n",
				it.N+1, it.Correct, it.Total, it.Accuracy()*100)
			if deps.Logger != nil {
				deps.Logger.Info("training iteration",
					"n", it.N,
					"correct", it.Correct,
					"total", it.Total,
					"accuracy", it.Accuracy(),
				)
			}
		}),
	)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", doxhund.ErrorMessage(err))
		return err
	}

	snap := tagger.Snapshot()
	if err := deps.Snapshots.SaveSnapshot(deps.Ctx, snap); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", doxhund.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Trained on %d sentences: %d features, %d dictionary words, %d tags\n",
		len(sentences), len(snap.Weights), len(snap.TagDict), len(snap.Classes))
	return nil
}
