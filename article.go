package doxhund

import (
	"context"
	"time"
)

// Article represents an analyzed news article.
type Article struct {
	ID          string         `json:"id"`
	Source      string         `json:"source"`
	Title       string         `json:"title"`
	Text        string         `json:"text"`
	ContentHash string         `json:"contentHash"`
	ReadingTime time.Duration  `json:"readingTime"`
	Names       []ScoredPhrase `json:"names"`
	Keywords    []ScoredPhrase `json:"keywords"`
	CreatedAt   time.Time      `json:"createdAt"`
}

// Validate returns an error if the article contains invalid fields.
func (a *Article) Validate() error {
	if a.Text == "" {
		return Errorf(EINVALID, "article text required")
	}
	return nil
}

// ArticleService represents a service for managing analyzed articles.
type ArticleService interface {
	// CreateArticle stores a new article and assigns its ID.
	CreateArticle(ctx context.Context, article *Article) error

	// FindArticleByID retrieves an article by ID.
	// Returns ENOTFOUND if article does not exist.
	FindArticleByID(ctx context.Context, id string) (*Article, error)

	// FindArticles retrieves articles matching the filter, newest first.
	FindArticles(ctx context.Context, filter ArticleFilter) ([]*Article, error)

	// DeleteArticle permanently removes an article.
	// Returns ENOTFOUND if article does not exist.
	DeleteArticle(ctx context.Context, id string) error
}

// ArticleFilter represents a filter for FindArticles.
type ArticleFilter struct {
	ID          *string `json:"id"`
	Source      *string `json:"source"`
	ContentHash *string `json:"contentHash"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
