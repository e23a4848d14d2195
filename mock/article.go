package mock

import (
	"context"

	"github.com/fwojciec/doxhund"
)

var _ doxhund.ArticleService = (*ArticleService)(nil)

// ArticleService is a mock implementation of doxhund.ArticleService.
type ArticleService struct {
	CreateArticleFn   func(ctx context.Context, article *doxhund.Article) error
	FindArticleByIDFn func(ctx context.Context, id string) (*doxhund.Article, error)
	FindArticlesFn    func(ctx context.Context, filter doxhund.ArticleFilter) ([]*doxhund.Article, error)
	DeleteArticleFn   func(ctx context.Context, id string) error
}

func (s *ArticleService) CreateArticle(ctx context.Context, article *doxhund.Article) error {
	return s.CreateArticleFn(ctx, article)
}

func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*doxhund.Article, error) {
	return s.FindArticleByIDFn(ctx, id)
}

func (s *ArticleService) FindArticles(ctx context.Context, filter doxhund.ArticleFilter) ([]*doxhund.Article, error) {
	return s.FindArticlesFn(ctx, filter)
}

func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	return s.DeleteArticleFn(ctx, id)
}
