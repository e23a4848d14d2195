package perceptron

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/fwojciec/doxhund"
)

// Context padding. Two markers on each side keep the i±2 windows in range.
const (
	start1 = "-START-"
	start2 = "-START2-"
	end1   = "-END-"
	end2   = "-END2-"
)

// Normalization markers.
const (
	hyphenMarker = "!HYPHEN"
	yearMarker   = "!YEAR"
	digitsMarker = "!DIGITS"
)

// normalize reduces sparsity: inner hyphens, years and numbers collapse to
// markers and everything else is lowercased.
func normalize(word string) string {
	if word == "" {
		return word
	}
	first, _ := utf8.DecodeRuneInString(word)
	switch {
	case strings.Contains(word, "-") && first != '-':
		return hyphenMarker
	case utf8.RuneCountInString(word) == 4 && isDigits(word):
		return yearMarker
	case unicode.IsDigit(first):
		return digitsMarker
	}
	return strings.ToLower(word)
}

func isDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return s != ""
}

// buildContext returns the normalized words bracketed by the start and end markers.
func buildContext(words []string) []string {
	context := make([]string, 0, len(words)+4)
	context = append(context, start1, start2)
	for _, w := range words {
		context = append(context, normalize(w))
	}
	return append(context, end1, end2)
}

// extractFeatures returns the features of word i given the normalized context
// and the two previously predicted tags.
// If the features change, a new model must be trained.
func extractFeatures(i int, word string, context []string, prev, prev2 string) doxhund.Features {
	features := make(doxhund.Features, 14)
	add := func(name string, args ...string) {
		if len(args) > 0 {
			name += " " + strings.Join(args, " ")
		}
		features[name]++
	}

	i += 2
	add("bias")
	add("i suffix", suffix(word))
	add("i pref1", prefix(word))
	add("i-1 tag", prev)
	add("i-2 tag", prev2)
	add("i tag+i-2 tag", prev, prev2)
	add("i word", context[i])
	add("i-1 tag+i word", prev, context[i])
	add("i-1 word", context[i-1])
	add("i-1 suffix", suffix(context[i-1]))
	add("i-2 word", context[i-2])
	add("i+1 word", context[i+1])
	add("i+1 suffix", suffix(context[i+1]))
	add("i+2 word", context[i+2])
	return features
}

// suffix returns the last three runes of s.
func suffix(s string) string {
	r := []rune(s)
	if len(r) <= 3 {
		return s
	}
	return string(r[len(r)-3:])
}

// prefix returns the first rune of s.
func prefix(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if size == 0 {
		return ""
	}
	return string(r)
}
