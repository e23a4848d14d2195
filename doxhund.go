// Package doxhund extracts structured metadata from the cleaned text of news
// articles: named entities, keywords, a content fingerprint and a reading-time
// estimate. Entities come from a greedy averaged-perceptron part-of-speech
// tagger and a frequency-scored ranking of proper-noun spans.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency or concern (e.g., perceptron/, sqlite/, prose/).
package doxhund
