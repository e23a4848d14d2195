package analyze

import (
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/doxhund"
)

// wordsPerMinute is the assumed reading speed.
const wordsPerMinute = 300

// minTextLength is the text length below which an article is flagged.
const minTextLength = 50

// ContentHash fingerprints an article by its title and text using xxhash.
// Any change to either produces a different hash.
func ContentHash(title, text string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(title+text))
}

// ReadingTime estimates the time to read text at 300 words per minute,
// rounded down to the second.
func ReadingTime(text string) time.Duration {
	words := len(strings.Fields(text))
	return time.Duration(words*60/wordsPerMinute) * time.Second
}

// Warnings lists the likely quality problems of an analyzed article.
func Warnings(a *doxhund.Article) []string {
	var warnings []string
	if a.Title == "" {
		warnings = append(warnings, "no title")
	}
	if len(a.Text) < minTextLength {
		warnings = append(warnings, "no or little text")
	}
	if len(a.Names) == 0 {
		warnings = append(warnings, "no names")
	}
	if len(a.Keywords) == 0 {
		warnings = append(warnings, "no keywords")
	}
	return warnings
}

// TruncateSource shortens a source for display, keeping the end which is more informative.
func TruncateSource(source string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		return source[:min(len(source), maxLen)]
	}
	if len(source) <= maxLen {
		return source
	}
	return "..." + source[len(source)-maxLen+3:]
}
