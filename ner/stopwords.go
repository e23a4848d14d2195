package ner

import (
	"bufio"
	"embed"
	"io/fs"
	"strings"
	"sync"
)

//go:embed stopwords/*.txt
var stopwordFiles embed.FS

var (
	defaultStopwords     Stopwords
	defaultStopwordsOnce sync.Once
)

// Stopwords is a set of lowercase function words.
type Stopwords map[string]struct{}

// NewStopwords returns a set containing words, lowercased.
func NewStopwords(words ...string) Stopwords {
	s := make(Stopwords, len(words))
	for _, w := range words {
		s[strings.ToLower(w)] = struct{}{}
	}
	return s
}

// DefaultStopwords returns the embedded English and German lists.
// The returned set is shared and must not be modified.
func DefaultStopwords() Stopwords {
	defaultStopwordsOnce.Do(func() {
		defaultStopwords = make(Stopwords)
		files, _ := fs.Glob(stopwordFiles, "stopwords/*.txt")
		for _, name := range files {
			f, err := stopwordFiles.Open(name)
			if err != nil {
				continue
			}
			scanner := bufio.NewScanner(f)
			for scanner.Scan() {
				if w := strings.TrimSpace(scanner.Text()); w != "" {
					defaultStopwords[strings.ToLower(w)] = struct{}{}
				}
			}
			f.Close()
		}
	})
	return defaultStopwords
}

// Contains reports whether word is a stop word, ignoring case.
func (s Stopwords) Contains(word string) bool {
	_, ok := s[strings.ToLower(word)]
	return ok
}

// containsAny reports whether any space-separated word of phrase is a stop word.
func (s Stopwords) containsAny(phrase string) bool {
	for _, w := range strings.Split(phrase, " ") {
		if s.Contains(w) {
			return true
		}
	}
	return false
}
