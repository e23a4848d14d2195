// Package perceptron implements a greedy averaged-perceptron part-of-speech
// tagger: a multiclass linear model over sparse string features, a tag
// dictionary fast path for frequent unambiguous words, and the training
// driver that produces a doxhund.Snapshot.
package perceptron

import (
	"math"
	"slices"
	"sort"

	"github.com/fwojciec/doxhund"
	"github.com/montanaflynn/stats"
)

// param identifies one weight in the table.
type param struct {
	feature string
	class   string
}

// Model is a multiclass averaged perceptron.
//
// Predict is safe for concurrent use once training has finished. Update and
// AverageWeights mutate the model and must not run concurrently with anything.
type Model struct {
	weights doxhund.Weights
	classes []string

	// Running sums and last-touched steps used for averaging.
	totals    map[param]float64
	stamps    map[param]int
	instances int
	averaged  bool
}

// NewModel returns an untrained model over the given classes.
func NewModel(classes []string) *Model {
	m := &Model{
		weights: make(doxhund.Weights),
		totals:  make(map[param]float64),
		stamps:  make(map[param]int),
	}
	m.setClasses(classes)
	return m
}

// newTrainedModel wraps deployed weights. The result only predicts.
func newTrainedModel(weights doxhund.Weights, classes []string) *Model {
	m := &Model{weights: weights, averaged: true}
	m.setClasses(classes)
	return m
}

func (m *Model) setClasses(classes []string) {
	m.classes = slices.Clone(classes)
	sort.Strings(m.classes)
	m.classes = slices.Compact(m.classes)
}

// Classes returns the sorted class set.
func (m *Model) Classes() []string {
	return slices.Clone(m.classes)
}

// Weights returns the weight table. Callers must not modify it.
func (m *Model) Weights() doxhund.Weights {
	return m.weights
}

// Instances returns the number of Update calls seen so far.
func (m *Model) Instances() int {
	return m.instances
}

// Predict returns the class with the highest dot product against features.
// Ties go to the lexicographically largest class.
func (m *Model) Predict(features doxhund.Features) string {
	names := make([]string, 0, len(features))
	for name := range features {
		names = append(names, name)
	}
	sort.Strings(names)

	scores := make(map[string]float64)
	for _, name := range names {
		value := features[name]
		weights, ok := m.weights[name]
		if !ok || value == 0 {
			continue
		}
		for class, weight := range weights {
			scores[class] += float64(value) * weight
		}
	}

	best, bestScore := "", math.Inf(-1)
	for _, class := range m.classes {
		score := scores[class]
		if score > bestScore || (score == bestScore && class > best) {
			best, bestScore = class, score
		}
	}
	return best
}

// Update moves weights towards truth and away from guess for every feature.
// The step counter advances on every call, including correct guesses.
func (m *Model) Update(truth, guess string, features doxhund.Features) {
	m.instances++
	if truth == guess {
		return
	}
	for f := range features {
		m.updateFeature(truth, f, m.weights.Get(f, truth), 1.0)
		m.updateFeature(guess, f, m.weights.Get(f, guess), -1.0)
	}
}

func (m *Model) updateFeature(class, feature string, w, v float64) {
	p := param{feature: feature, class: class}
	m.totals[p] += float64(m.instances-m.stamps[p]) * w
	m.stamps[p] = m.instances
	m.weights.Set(feature, class, w+v)
}

// AverageWeights replaces every weight with its average over all steps,
// rounded to three decimals, and drops zero weights.
//
// It may be called once per model. A second call returns EINVALID and leaves
// the weights unchanged.
func (m *Model) AverageWeights() error {
	if m.averaged {
		return doxhund.Errorf(doxhund.EINVALID, "weights already averaged")
	}
	m.averaged = true

	for feature, weights := range m.weights {
		averaged := make(map[string]float64, len(weights))
		for class, weight := range weights {
			if m.instances == 0 {
				break
			}
			p := param{feature: feature, class: class}
			total := m.totals[p] + float64(m.instances-m.stamps[p])*weight
			avg, err := stats.Round(total/float64(m.instances), 3)
			if err != nil {
				return doxhund.Errorf(doxhund.EINTERNAL, "average weight %q/%q: %v", feature, class, err)
			}
			if avg != 0 {
				averaged[class] = avg
			}
		}
		if len(averaged) == 0 {
			delete(m.weights, feature)
			continue
		}
		m.weights[feature] = averaged
	}

	m.totals, m.stamps = nil, nil
	return nil
}
