// Package metrics instruments doxhund services with go-metrics.
package metrics

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fwojciec/doxhund"
	"github.com/rcrowley/go-metrics"
)

// Metric names.
const (
	TagTimer     = "tagger.tag"
	TokenMeter   = "tagger.tokens"
	ExtractTimer = "extractor.extract"
)

// Ensure MeteredTagger implements doxhund.Tagger at compile time.
var _ doxhund.Tagger = (*MeteredTagger)(nil)

// MeteredTagger times every Tag call and meters the tokens produced.
type MeteredTagger struct {
	next   doxhund.Tagger
	timer  metrics.Timer
	tokens metrics.Meter
}

// NewMeteredTagger registers its metrics in r. A nil registry means
// metrics.DefaultRegistry.
func NewMeteredTagger(next doxhund.Tagger, r metrics.Registry) *MeteredTagger {
	if r == nil {
		r = metrics.DefaultRegistry
	}
	return &MeteredTagger{
		next:   next,
		timer:  metrics.GetOrRegisterTimer(TagTimer, r),
		tokens: metrics.GetOrRegisterMeter(TokenMeter, r),
	}
}

func (t *MeteredTagger) Tag(text string) []doxhund.Token {
	begin := time.Now()
	tokens := t.next.Tag(text)
	t.timer.UpdateSince(begin)
	t.tokens.Mark(int64(len(tokens)))
	return tokens
}

// Ensure MeteredExtractor implements doxhund.EntityExtractor at compile time.
var _ doxhund.EntityExtractor = (*MeteredExtractor)(nil)

// MeteredExtractor times every Extract call.
type MeteredExtractor struct {
	next  doxhund.EntityExtractor
	timer metrics.Timer
}

// NewMeteredExtractor registers its timer in r. A nil registry means
// metrics.DefaultRegistry.
func NewMeteredExtractor(next doxhund.EntityExtractor, r metrics.Registry) *MeteredExtractor {
	if r == nil {
		r = metrics.DefaultRegistry
	}
	return &MeteredExtractor{
		next:  next,
		timer: metrics.GetOrRegisterTimer(ExtractTimer, r),
	}
}

func (e *MeteredExtractor) Extract(title, text string) *doxhund.Entities {
	defer e.timer.UpdateSince(time.Now())
	return e.next.Extract(title, text)
}

// WriteSummary writes one line per registered timer and meter, sorted by name.
func WriteSummary(w io.Writer, r metrics.Registry) {
	var lines []string
	r.Each(func(name string, m any) {
		switch m := m.(type) {
		case metrics.Timer:
			s := m.Snapshot()
			lines = append(lines, fmt.Sprintf("%s: count=%d mean=%s p95=%s",
				name, s.Count(), time.Duration(s.Mean()), time.Duration(s.Percentile(0.95))))
		case metrics.Meter:
			s := m.Snapshot()
			lines = append(lines, fmt.Sprintf("%s: count=%d rate=%.1f/s", name, s.Count(), s.RateMean()))
		}
	})
	sort.Strings(lines)
	for _, l := range lines {
		fmt.Fprintln(w, l)
	}
}
