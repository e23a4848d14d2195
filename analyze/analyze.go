// Package analyze turns article texts into stored doxhund.Article records.
// It coordinates fingerprinting, entity extraction, deduplication and
// storage of analyzed articles.
package analyze

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/fwojciec/doxhund"
	"golang.org/x/sync/errgroup"
)

// DefaultConcurrency is the number of articles analyzed in parallel.
const DefaultConcurrency = 4

// Input is one article text to analyze.
type Input struct {
	Source string
	Title  string
	Text   string
}

// Analyzer orchestrates the analysis of article texts.
type Analyzer struct {
	Extractor doxhund.EntityExtractor

	// Articles, if set, stores analyzed articles and confirms duplicates.
	Articles doxhund.ArticleService

	// Seen, if set, skips texts whose fingerprint was seen before.
	Seen doxhund.FingerprintFilter

	Concurrency int
}

// Result holds the outcome of a batch analysis.
type Result struct {
	Articles []*doxhund.Article
	Analyzed int
	Skipped  int
	Failed   int
}

// ProgressEvent reports progress during a batch analysis.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Source    string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressSkipped
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting analysis progress.
type ProgressFunc func(event ProgressEvent)

// analyzeResult holds the outcome of processing a single input.
type analyzeResult struct {
	position int
	source   string
	article  *doxhund.Article
	skipped  bool
	err      error
}

// Analyze computes the fingerprint, reading time, names and keywords of a
// single text and stamps the analysis time. The article is not stored; a
// store assigns its own creation time.
func (a *Analyzer) Analyze(ctx context.Context, in Input) (*doxhund.Article, error) {
	article := &doxhund.Article{
		Source: in.Source,
		Title:  in.Title,
		Text:   in.Text,
	}
	if err := article.Validate(); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	article.ContentHash = ContentHash(in.Title, in.Text)
	article.ReadingTime = ReadingTime(in.Text)
	article.CreatedAt = time.Now().UTC().Truncate(time.Second)

	entities := a.Extractor.Extract(in.Title, in.Text)
	article.Names = entities.Names
	article.Keywords = entities.Keywords

	return article, nil
}

// AnalyzeAll analyzes inputs concurrently and stores the results in input
// order. Texts seen before are skipped; per-article failures are counted,
// not returned. The progress callback, if provided, receives events as
// analysis proceeds.
func (a *Analyzer) AnalyzeAll(ctx context.Context, inputs []Input, progress ProgressFunc) (*Result, error) {
	concurrency := a.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	resultCh := make(chan analyzeResult, len(inputs))

	var completed atomic.Int64
	total := len(inputs)

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, in := range inputs {
			i, in := i, in
			g.Go(func() error {
				resultCh <- a.process(gctx, i, in)
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	// Collect results in order
	results := make([]analyzeResult, len(inputs))
	for r := range resultCh {
		completed.Add(1)
		results[r.position] = r

		if progress == nil {
			continue
		}
		event := ProgressEvent{
			Type:      ProgressCompleted,
			Completed: int(completed.Load()),
			Total:     total,
			Source:    r.source,
			Error:     r.err,
		}
		switch {
		case r.err != nil:
			event.Type = ProgressFailed
		case r.skipped:
			event.Type = ProgressSkipped
		}
		progress(event)
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var result Result
	for _, r := range results {
		switch {
		case r.err != nil:
			result.Failed++
			continue
		case r.skipped:
			result.Skipped++
			continue
		}

		if a.Articles != nil {
			err := a.Articles.CreateArticle(ctx, r.article)
			if doxhund.ErrorCode(err) == doxhund.ECONFLICT {
				result.Skipped++
				continue
			} else if err != nil {
				result.Failed++
				continue
			}
		}

		result.Analyzed++
		result.Articles = append(result.Articles, r.article)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return &result, nil
}

// process analyzes a single input unless its fingerprint was seen before.
func (a *Analyzer) process(ctx context.Context, position int, in Input) analyzeResult {
	result := analyzeResult{
		position: position,
		source:   in.Source,
	}

	if in.Text != "" {
		seen, err := a.seen(ctx, ContentHash(in.Title, in.Text))
		if err != nil {
			result.err = err
			return result
		}
		if seen {
			result.skipped = true
			return result
		}
	}

	result.article, result.err = a.Analyze(ctx, in)
	return result
}

// seen reports whether hash belongs to an already analyzed text. The filter
// answers first; a positive answer is confirmed against stored articles
// when a store is configured.
func (a *Analyzer) seen(ctx context.Context, hash string) (bool, error) {
	if a.Seen == nil || !a.Seen.TestAndAdd(hash) {
		return false, nil
	}
	if a.Articles == nil {
		return true, nil
	}
	found, err := a.Articles.FindArticles(ctx, doxhund.ArticleFilter{ContentHash: &hash, Limit: 1})
	if err != nil {
		return false, err
	}
	return len(found) > 0, nil
}
