package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/fwojciec/doxhund"
	"github.com/fwojciec/doxhund/analyze"
	"github.com/fwojciec/doxhund/metrics"
)

// maxSourceDisplay bounds the width of sources in progress lines.
const maxSourceDisplay = 40

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	inputs := make([]analyze.Input, 0, len(c.Files))
	for _, path := range c.Files {
		b, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", err)
			return err
		}
		inputs = append(inputs, analyze.Input{
			Source: path,
			Title:  c.Title,
			Text:   string(b),
		})
	}

	result, err := deps.Analyzer.AnalyzeAll(deps.Ctx, inputs, func(e analyze.ProgressEvent) {
		source := analyze.TruncateSource(e.Source, maxSourceDisplay)
		switch e.Type {
		case analyze.ProgressSkipped:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s (already analyzed)\n", e.Completed, e.Total, source)
		case analyze.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "[%d/%d] %s: %s\n", e.Completed, e.Total, source, doxhund.ErrorMessage(e.Error))
		}
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", doxhund.ErrorMessage(err))
		return err
	}

	for _, a := range result.Articles {
		printArticle(deps, a)
		if deps.Reports != nil {
			if _, err := deps.Reports.WriteArticle(a); err != nil {
				fmt.Fprintf(deps.Stderr, "error: %s\n", err)
				return err
			}
		}
	}

	fmt.Fprintf(deps.Stdout, "Analyzed %d, skipped %d, failed %d\n", result.Analyzed, result.Skipped, result.Failed)

	if deps.Verbose && deps.Metrics != nil {
		metrics.WriteSummary(deps.Stderr, deps.Metrics)
	}

	if result.Failed > 0 {
		return doxhund.Errorf(doxhund.EINTERNAL, "%d article(s) failed", result.Failed)
	}
	return nil
}

func printArticle(deps *Dependencies, a *doxhund.Article) {
	fmt.Fprintf(deps.Stdout, "%s\n", a.Source)
	if a.ID != "" {
		fmt.Fprintf(deps.Stdout, "  id:        %s\n", a.ID)
	}
	fmt.Fprintf(deps.Stdout, "  hash:      %s\n", a.ContentHash)
	fmt.Fprintf(deps.Stdout, "  reading:   %s\n", a.ReadingTime)
	fmt.Fprintf(deps.Stdout, "  names:     %s\n", strings.Join(doxhund.Phrases(a.Names), ", "))
	fmt.Fprintf(deps.Stdout, "  keywords:  %s\n", strings.Join(doxhund.Phrases(a.Keywords), ", "))
	for _, w := range analyze.Warnings(a) {
		fmt.Fprintf(deps.Stderr, "warning: %s: %s\n", a.Source, w)
	}
}
