package ner

import (
	"sort"
	"strings"
	"unicode"

	"github.com/fwojciec/doxhund"
	"github.com/pmezard/go-difflib/difflib"
)

// Near-duplicate search parameters.
const (
	closeMatchCutoff = 0.6
	closeMatchCount  = 2
)

// sortAndFilter ranks candidates by descending score and keeps the top
// fraction, minus punctuation and near-duplicates, truncated to the limit.
func (e *Extractor) sortAndFilter(candidates []doxhund.ScoredPhrase) []doxhund.ScoredPhrase {
	sorted := make([]doxhund.ScoredPhrase, len(candidates))
	copy(sorted, candidates)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].Score > sorted[j].Score
	})

	top := sorted[:len(sorted)*e.topFraction/100]

	pool := make([]doxhund.ScoredPhrase, 0, len(top))
	for _, c := range top {
		if !isPunct(c.Text) {
			pool = append(pool, c)
		}
	}

	kept := dropNearDuplicates(pool)
	if len(kept) > e.limit {
		kept = kept[:e.limit]
	}
	return kept
}

// dropNearDuplicates walks the pool in order and drops the closest match of
// every kept candidate. A candidate that has been kept is never dropped later.
func dropNearDuplicates(pool []doxhund.ScoredPhrase) []doxhund.ScoredPhrase {
	texts := make([]string, len(pool))
	for i, c := range pool {
		texts[i] = c.Text
	}

	kept := make([]doxhund.ScoredPhrase, 0, len(pool))
	emitted := make(map[string]bool, len(pool))
	dropped := make(map[string]bool)
	for _, c := range pool {
		if dropped[c.Text] || emitted[c.Text] {
			continue
		}
		kept = append(kept, c)
		emitted[c.Text] = true
		matches := closeMatches(c.Text, texts, closeMatchCount, closeMatchCutoff)
		for _, m := range matches {
			if m != c.Text && !emitted[m] {
				dropped[m] = true
			}
		}
	}
	return kept
}

type match struct {
	score float64
	text  string
}

// closeMatches returns up to n possibilities whose similarity to word is at
// least cutoff, best first. Similarity is the difflib ratio over runes; equal
// scores order by text, descending.
func closeMatches(word string, possibilities []string, n int, cutoff float64) []string {
	m := difflib.NewMatcher(nil, runes(word))
	seen := make(map[string]bool, len(possibilities))
	var found []match
	for _, p := range possibilities {
		if seen[p] {
			continue
		}
		seen[p] = true
		m.SetSeq1(runes(p))
		if m.RealQuickRatio() >= cutoff && m.QuickRatio() >= cutoff {
			if r := m.Ratio(); r >= cutoff {
				found = append(found, match{score: r, text: p})
			}
		}
	}

	sort.Slice(found, func(i, j int) bool {
		if found[i].score != found[j].score {
			return found[i].score > found[j].score
		}
		return found[i].text > found[j].text
	})
	if len(found) > n {
		found = found[:n]
	}

	out := make([]string, len(found))
	for i, f := range found {
		out[i] = f.text
	}
	return out
}

func runes(s string) []string {
	out := make([]string, 0, len(s))
	for _, r := range s {
		out = append(out, string(r))
	}
	return out
}

// isPunct reports whether s consists of punctuation and symbols only.
func isPunct(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return true
	}
	for _, r := range s {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}
