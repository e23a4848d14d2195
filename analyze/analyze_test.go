package analyze_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/fwojciec/doxhund"
	"github.com/fwojciec/doxhund/analyze"
	"github.com/fwojciec/doxhund/bloom"
	"github.com/fwojciec/doxhund/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedExtractor() *mock.EntityExtractor {
	return &mock.EntityExtractor{
		ExtractFn: func(title, _ string) *doxhund.Entities {
			return &doxhund.Entities{
				Names:    []doxhund.ScoredPhrase{{Text: "Angela Merkel", Score: 2}},
				Keywords: []doxhund.ScoredPhrase{{Text: keywordOf(title), Score: 1}},
			}
		},
	}
}

// keywordOf turns a title into a keyword so results can be told apart.
func keywordOf(title string) string {
	if title == "" {
		return "untitled"
	}
	return title
}

// memoryArticles is an in-memory ArticleService keyed by content hash.
func memoryArticles() *mock.ArticleService {
	var mu sync.Mutex
	byHash := make(map[string]*doxhund.Article)
	n := 0
	return &mock.ArticleService{
		CreateArticleFn: func(_ context.Context, a *doxhund.Article) error {
			mu.Lock()
			defer mu.Unlock()
			if _, ok := byHash[a.ContentHash]; ok {
				return doxhund.Errorf(doxhund.ECONFLICT, "article already exists")
			}
			n++
			a.ID = fmt.Sprintf("id-%d", n)
			byHash[a.ContentHash] = a
			return nil
		},
		FindArticlesFn: func(_ context.Context, filter doxhund.ArticleFilter) ([]*doxhund.Article, error) {
			mu.Lock()
			defer mu.Unlock()
			if filter.ContentHash == nil {
				return nil, nil
			}
			if a, ok := byHash[*filter.ContentHash]; ok {
				return []*doxhund.Article{a}, nil
			}
			return nil, nil
		},
	}
}

func TestAnalyzer_Analyze(t *testing.T) {
	t.Parallel()

	t.Run("assembles the article", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{Extractor: fixedExtractor()}
		text := "Angela Merkel visited Paris on Tuesday. " +
			"She met the French president and discussed trade."

		article, err := a.Analyze(context.Background(), analyze.Input{
			Source: "merkel.txt",
			Title:  "Merkel in Paris",
			Text:   text,
		})

		require.NoError(t, err)
		assert.Equal(t, "merkel.txt", article.Source)
		assert.Equal(t, "Merkel in Paris", article.Title)
		assert.Equal(t, text, article.Text)
		assert.Equal(t, analyze.ContentHash("Merkel in Paris", text), article.ContentHash)
		assert.Equal(t, 2*time.Second, article.ReadingTime)
		assert.Equal(t, []string{"Angela Merkel"}, doxhund.Phrases(article.Names))
		assert.Equal(t, []string{"Merkel in Paris"}, doxhund.Phrases(article.Keywords))
		assert.Empty(t, article.ID, "Analyze does not store")
		assert.False(t, article.CreatedAt.IsZero())
		assert.WithinDuration(t, time.Now(), article.CreatedAt, time.Minute)
	})

	t.Run("rejects empty text", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{Extractor: fixedExtractor()}

		_, err := a.Analyze(context.Background(), analyze.Input{Title: "Only a title"})

		assert.Equal(t, doxhund.EINVALID, doxhund.ErrorCode(err))
	})

	t.Run("stops on canceled context", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{Extractor: fixedExtractor()}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := a.Analyze(ctx, analyze.Input{Text: "Some text."})

		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestAnalyzer_AnalyzeAll(t *testing.T) {
	t.Parallel()

	t.Run("returns zero result for no inputs", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{Extractor: fixedExtractor()}

		result, err := a.AnalyzeAll(context.Background(), nil, nil)

		require.NoError(t, err)
		assert.Equal(t, analyze.Result{}, *result)
	})

	t.Run("stores articles in input order", func(t *testing.T) {
		t.Parallel()

		articles := memoryArticles()
		a := &analyze.Analyzer{Extractor: fixedExtractor(), Articles: articles, Concurrency: 3}
		var inputs []analyze.Input
		for i := 0; i < 10; i++ {
			inputs = append(inputs, analyze.Input{
				Source: fmt.Sprintf("%d.txt", i),
				Title:  fmt.Sprintf("Story %d", i),
				Text:   fmt.Sprintf("Text number %d.", i),
			})
		}

		result, err := a.AnalyzeAll(context.Background(), inputs, nil)

		require.NoError(t, err)
		assert.Equal(t, 10, result.Analyzed)
		require.Len(t, result.Articles, 10)
		for i, article := range result.Articles {
			assert.Equal(t, fmt.Sprintf("%d.txt", i), article.Source)
			assert.Equal(t, fmt.Sprintf("id-%d", i+1), article.ID)
		}
	})

	t.Run("counts failures without aborting", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{Extractor: fixedExtractor()}

		result, err := a.AnalyzeAll(context.Background(), []analyze.Input{
			{Source: "good.txt", Text: "Some text."},
			{Source: "empty.txt"},
		}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Analyzed)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("counts storage failures", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{
			Extractor: fixedExtractor(),
			Articles: &mock.ArticleService{
				CreateArticleFn: func(_ context.Context, _ *doxhund.Article) error {
					return errors.New("disk full")
				},
			},
		}

		result, err := a.AnalyzeAll(context.Background(), []analyze.Input{{Text: "Some text."}}, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, result.Analyzed)
		assert.Equal(t, 1, result.Failed)
	})

	t.Run("skips repeated texts within a batch", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{
			Extractor: fixedExtractor(),
			Seen:      bloom.NewFilter(100, 0.01),
		}
		same := analyze.Input{Title: "Same", Text: "Identical text."}

		result, err := a.AnalyzeAll(context.Background(), []analyze.Input{same, same, same}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Analyzed)
		assert.Equal(t, 2, result.Skipped)
	})

	t.Run("skips texts already stored", func(t *testing.T) {
		t.Parallel()

		articles := memoryArticles()
		seen := bloom.NewFilter(100, 0.01)
		a := &analyze.Analyzer{Extractor: fixedExtractor(), Articles: articles, Seen: seen}
		in := analyze.Input{Title: "Old", Text: "Already analyzed."}

		first, err := a.AnalyzeAll(context.Background(), []analyze.Input{in}, nil)
		require.NoError(t, err)
		require.Equal(t, 1, first.Analyzed)

		second, err := a.AnalyzeAll(context.Background(), []analyze.Input{in}, nil)

		require.NoError(t, err)
		assert.Equal(t, 0, second.Analyzed)
		assert.Equal(t, 1, second.Skipped)
	})

	t.Run("analyzes filter false positives that are not stored", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{
			Extractor: fixedExtractor(),
			Articles:  memoryArticles(),
			Seen: &mock.FingerprintFilter{
				TestAndAddFn: func(string) bool { return true },
			},
		}

		result, err := a.AnalyzeAll(context.Background(), []analyze.Input{{Text: "New text."}}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Analyzed)
	})

	t.Run("treats storage conflicts as skips", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{Extractor: fixedExtractor(), Articles: memoryArticles()}
		same := analyze.Input{Text: "Identical text."}

		result, err := a.AnalyzeAll(context.Background(), []analyze.Input{same, same}, nil)

		require.NoError(t, err)
		assert.Equal(t, 1, result.Analyzed)
		assert.Equal(t, 1, result.Skipped)
	})

	t.Run("reports progress", func(t *testing.T) {
		t.Parallel()

		var mu sync.Mutex
		var events []analyze.ProgressEvent
		a := &analyze.Analyzer{Extractor: fixedExtractor(), Concurrency: 1}

		_, err := a.AnalyzeAll(context.Background(), []analyze.Input{
			{Source: "a.txt", Text: "Some text."},
			{Source: "b.txt"},
		}, func(e analyze.ProgressEvent) {
			mu.Lock()
			defer mu.Unlock()
			events = append(events, e)
		})

		require.NoError(t, err)
		require.Len(t, events, 4)
		assert.Equal(t, analyze.ProgressStarted, events[0].Type)
		assert.Equal(t, 2, events[0].Total)
		assert.Equal(t, analyze.ProgressFinished, events[3].Type)

		types := map[analyze.ProgressType]string{}
		for _, e := range events[1:3] {
			types[e.Type] = e.Source
		}
		assert.Equal(t, "a.txt", types[analyze.ProgressCompleted])
		assert.Equal(t, "b.txt", types[analyze.ProgressFailed])
	})

	t.Run("returns error on canceled context", func(t *testing.T) {
		t.Parallel()

		a := &analyze.Analyzer{Extractor: fixedExtractor()}
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := a.AnalyzeAll(ctx, []analyze.Input{{Text: "Some text."}}, nil)

		assert.ErrorIs(t, err, context.Canceled)
	})
}
