// Package slog provides log/slog decorators for doxhund services.
package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/doxhund"
)

// Ensure LoggingTagger implements doxhund.Tagger.
var _ doxhund.Tagger = (*LoggingTagger)(nil)

// LoggingTagger wraps a Tagger with debug logging.
// Tagging runs once per sentence, so it logs at debug level.
type LoggingTagger struct {
	next   doxhund.Tagger
	logger *slog.Logger
}

// NewLoggingTagger creates a new LoggingTagger.
func NewLoggingTagger(next doxhund.Tagger, logger *slog.Logger) *LoggingTagger {
	return &LoggingTagger{next: next, logger: logger}
}

// Tag delegates to the wrapped tagger and logs the operation.
func (t *LoggingTagger) Tag(text string) (tokens []doxhund.Token) {
	defer func(begin time.Time) {
		t.logger.Debug("tag",
			"chars", len(text),
			"tokens", len(tokens),
			"duration", time.Since(begin),
		)
	}(time.Now())
	return t.next.Tag(text)
}

// Ensure LoggingExtractor implements doxhund.EntityExtractor.
var _ doxhund.EntityExtractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an EntityExtractor with logging.
type LoggingExtractor struct {
	next   doxhund.EntityExtractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next doxhund.EntityExtractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor and logs the operation.
func (e *LoggingExtractor) Extract(title, text string) (entities *doxhund.Entities) {
	defer func(begin time.Time) {
		var names, keywords int
		if entities != nil {
			names, keywords = len(entities.Names), len(entities.Keywords)
		}
		e.logger.Info("entity extraction",
			"title", title,
			"names", names,
			"keywords", keywords,
			"duration", time.Since(begin),
		)
	}(time.Now())
	return e.next.Extract(title, text)
}
