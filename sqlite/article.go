package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/doxhund"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ doxhund.ArticleService = (*ArticleService)(nil)

// ArticleService implements doxhund.ArticleService using SQLite.
type ArticleService struct {
	db *DB
}

// NewArticleService creates a new ArticleService.
func NewArticleService(db *DB) *ArticleService {
	return &ArticleService{db: db}
}

const articleColumns = "id, source, title, text, content_hash, reading_time, names, keywords, created_at"

// CreateArticle stores a new article.
// Returns ECONFLICT if an article with the same content hash exists.
func (s *ArticleService) CreateArticle(ctx context.Context, a *doxhund.Article) error {
	if err := a.Validate(); err != nil {
		return err
	}
	if a.ContentHash == "" {
		return doxhund.Errorf(doxhund.EINVALID, "article content hash required")
	}

	names, err := encodePhrases(a.Names)
	if err != nil {
		return err
	}
	keywords, err := encodePhrases(a.Keywords)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var existing string
	err = tx.QueryRowContext(ctx, "SELECT id FROM articles WHERE content_hash = ?", a.ContentHash).Scan(&existing)
	if err == nil {
		return doxhund.Errorf(doxhund.ECONFLICT, "article already exists: %s", existing)
	} else if err != sql.ErrNoRows {
		return err
	}

	id := uuid.New().String()
	createdAt := time.Now().UTC().Truncate(time.Second)

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO articles (`+articleColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, id, a.Source, a.Title, a.Text, a.ContentHash, int64(a.ReadingTime), names, keywords,
		createdAt.Format(time.RFC3339)); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}
	a.ID = id
	a.CreatedAt = createdAt
	return nil
}

// FindArticleByID retrieves an article by ID.
func (s *ArticleService) FindArticleByID(ctx context.Context, id string) (*doxhund.Article, error) {
	row := s.db.QueryRowContext(ctx, "SELECT "+articleColumns+" FROM articles WHERE id = ?", id)
	a, err := scanArticle(row)
	if err == sql.ErrNoRows {
		return nil, doxhund.Errorf(doxhund.ENOTFOUND, "article not found")
	}
	if err != nil {
		return nil, err
	}
	return a, nil
}

// FindArticles retrieves articles matching the filter, newest first.
func (s *ArticleService) FindArticles(ctx context.Context, filter doxhund.ArticleFilter) ([]*doxhund.Article, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + articleColumns + " FROM articles WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Source != nil {
		query.WriteString(" AND source = ?")
		args = append(args, *filter.Source)
	}
	if filter.ContentHash != nil {
		query.WriteString(" AND content_hash = ?")
		args = append(args, *filter.ContentHash)
	}

	query.WriteString(" ORDER BY created_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var articles []*doxhund.Article
	for rows.Next() {
		a, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, a)
	}

	return articles, rows.Err()
}

// DeleteArticle permanently removes an article.
func (s *ArticleService) DeleteArticle(ctx context.Context, id string) error {
	result, err := s.db.ExecContext(ctx, "DELETE FROM articles WHERE id = ?", id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rows == 0 {
		return doxhund.Errorf(doxhund.ENOTFOUND, "article not found")
	}

	return nil
}

type scanner interface {
	Scan(dest ...any) error
}

func scanArticle(row scanner) (*doxhund.Article, error) {
	var a doxhund.Article
	var readingTime int64
	var names, keywords, createdAt string

	if err := row.Scan(&a.ID, &a.Source, &a.Title, &a.Text, &a.ContentHash, &readingTime,
		&names, &keywords, &createdAt); err != nil {
		return nil, err
	}

	a.ReadingTime = time.Duration(readingTime)
	if err := json.Unmarshal([]byte(names), &a.Names); err != nil {
		return nil, fmt.Errorf("failed to decode names: %w", err)
	}
	if err := json.Unmarshal([]byte(keywords), &a.Keywords); err != nil {
		return nil, fmt.Errorf("failed to decode keywords: %w", err)
	}

	var err error
	a.CreatedAt, err = parseTime(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func encodePhrases(ps []doxhund.ScoredPhrase) (string, error) {
	if ps == nil {
		ps = []doxhund.ScoredPhrase{}
	}
	b, err := json.Marshal(ps)
	if err != nil {
		return "", fmt.Errorf("failed to encode phrases: %w", err)
	}
	return string(b), nil
}
