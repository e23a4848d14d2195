package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/doxhund"
)

// Ensure LoggingArticleService implements doxhund.ArticleService.
var _ doxhund.ArticleService = (*LoggingArticleService)(nil)

// LoggingArticleService wraps an ArticleService with logging.
type LoggingArticleService struct {
	next   doxhund.ArticleService
	logger *slog.Logger
}

// NewLoggingArticleService creates a new LoggingArticleService.
func NewLoggingArticleService(next doxhund.ArticleService, logger *slog.Logger) *LoggingArticleService {
	return &LoggingArticleService{next: next, logger: logger}
}

func (s *LoggingArticleService) CreateArticle(ctx context.Context, a *doxhund.Article) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("create article",
			"source", a.Source,
			"id", a.ID,
			"hash", a.ContentHash,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateArticle(ctx, a)
}

func (s *LoggingArticleService) FindArticleByID(ctx context.Context, id string) (a *doxhund.Article, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find article",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticleByID(ctx, id)
}

func (s *LoggingArticleService) FindArticles(ctx context.Context, filter doxhund.ArticleFilter) (articles []*doxhund.Article, err error) {
	defer func(begin time.Time) {
		s.logger.Debug("find articles",
			"count", len(articles),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FindArticles(ctx, filter)
}

func (s *LoggingArticleService) DeleteArticle(ctx context.Context, id string) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("delete article",
			"id", id,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.DeleteArticle(ctx, id)
}
