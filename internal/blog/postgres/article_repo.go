// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package postgres implements blog repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/inkwell/inkwell/internal/blog"
)

// querier abstracts query execution so the repository works with a
// *pgxpool.Pool in production and a pgxmock pool in tests.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// ArticleRepository implements blog.ArticleRepository using PostgreSQL.
type ArticleRepository struct {
	db querier
}

// NewArticleRepository creates a new ArticleRepository.
func NewArticleRepository(db querier) *ArticleRepository {
	return &ArticleRepository{db: db}
}

const articleColumns = "id, title, content, author, created_at"

// Create persists a new article.
func (r *ArticleRepository) Create(ctx context.Context, article *blog.Article) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO articles (id, title, content, author, created_at)
		VALUES ($1, $2, $3, $4, $5)
	`,
		article.ID.String(),
		article.Title,
		article.Content,
		article.Author,
		article.CreatedAt,
	)
	if err != nil {
		return oops.Code("ARTICLE_CREATE_FAILED").
			With("operation", "insert article").
			With("id", article.ID.String()).
			With("author", article.Author).
			Wrap(err)
	}
	return nil
}

// Get retrieves an article by ID.
func (r *ArticleRepository) Get(ctx context.Context, id ulid.ULID) (*blog.Article, error) {
	row := r.db.QueryRow(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE id = $1
	`, id.String())

	article, err := scanArticle(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("ARTICLE_NOT_FOUND").
			With("id", id.String()).
			Wrap(blog.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("ARTICLE_GET_FAILED").
			With("operation", "get article").
			With("id", id.String()).
			Wrap(err)
	}
	return article, nil
}

// ListAll returns all articles, oldest first; ties break on id so the
// order is reproducible.
func (r *ArticleRepository) ListAll(ctx context.Context) ([]*blog.Article, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		ORDER BY created_at, id
	`)
	if err != nil {
		return nil, oops.Code("ARTICLE_LIST_FAILED").
			With("operation", "list articles").
			Wrap(err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// ListByAuthor returns the articles owned by author, oldest first.
func (r *ArticleRepository) ListByAuthor(ctx context.Context, author string) ([]*blog.Article, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE author = $1
		ORDER BY created_at, id
	`, author)
	if err != nil {
		return nil, oops.Code("ARTICLE_LIST_BY_AUTHOR_FAILED").
			With("operation", "list articles by author").
			With("author", author).
			Wrap(err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// Update rewrites title and content of the row matching both id and
// author in one atomic statement. Zero rows affected means the article
// is missing or owned by someone else; the two are indistinguishable.
func (r *ArticleRepository) Update(ctx context.Context, id ulid.ULID, author, title, content string) error {
	result, err := r.db.Exec(ctx, `
		UPDATE articles
		SET title = $3, content = $4
		WHERE id = $1 AND author = $2
	`, id.String(), author, title, content)
	if err != nil {
		return oops.Code("ARTICLE_UPDATE_FAILED").
			With("operation", "update article").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("ARTICLE_NOT_FOUND_OR_UNAUTHORIZED").
			With("id", id.String()).
			Wrap(blog.ErrNotFoundOrUnauthorized)
	}
	return nil
}

// Delete removes the row matching both id and author in one atomic
// statement, with the same conflated failure as Update.
func (r *ArticleRepository) Delete(ctx context.Context, id ulid.ULID, author string) error {
	result, err := r.db.Exec(ctx, `
		DELETE FROM articles
		WHERE id = $1 AND author = $2
	`, id.String(), author)
	if err != nil {
		return oops.Code("ARTICLE_DELETE_FAILED").
			With("operation", "delete article").
			With("id", id.String()).
			Wrap(err)
	}
	if result.RowsAffected() == 0 {
		return oops.Code("ARTICLE_NOT_FOUND_OR_UNAUTHORIZED").
			With("id", id.String()).
			Wrap(blog.ErrNotFoundOrUnauthorized)
	}
	return nil
}

// SearchByTitle returns articles whose title contains keyword,
// case-insensitively. The keyword is always bound as a parameter with
// its LIKE metacharacters escaped, so it matches literally and cannot
// alter the query.
func (r *ArticleRepository) SearchByTitle(ctx context.Context, keyword string) ([]*blog.Article, error) {
	pattern := "%" + escapeLike(keyword) + "%"
	rows, err := r.db.Query(ctx, `
		SELECT `+articleColumns+`
		FROM articles
		WHERE title ILIKE $1 ESCAPE '\'
		ORDER BY created_at, id
	`, pattern)
	if err != nil {
		return nil, oops.Code("ARTICLE_SEARCH_FAILED").
			With("operation", "search articles by title").
			Wrap(err)
	}
	defer rows.Close()

	return scanArticles(rows)
}

// escapeLike escapes LIKE metacharacters so keyword matches literally.
func escapeLike(s string) string {
	s = strings.ReplaceAll(s, `\`, `\\`)
	s = strings.ReplaceAll(s, `%`, `\%`)
	s = strings.ReplaceAll(s, `_`, `\_`)
	return s
}

// scanArticle scans a single row into an Article.
// Callers are responsible for handling pgx.ErrNoRows.
func scanArticle(row pgx.Row) (*blog.Article, error) {
	var (
		idStr     string
		title     string
		content   string
		author    string
		createdAt time.Time
	)

	err := row.Scan(&idStr, &title, &content, &author, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // callers wrap with context-specific info
		}
		return nil, oops.Code("ARTICLE_SCAN_FAILED").
			With("operation", "scan article").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("ARTICLE_INVALID_ID").
			With("operation", "parse article id").
			With("id", idStr).
			Wrap(err)
	}

	return &blog.Article{
		ID:        id,
		Title:     title,
		Content:   content,
		Author:    author,
		CreatedAt: createdAt,
	}, nil
}

// scanArticles drains rows into a slice.
func scanArticles(rows pgx.Rows) ([]*blog.Article, error) {
	articles := make([]*blog.Article, 0)
	for rows.Next() {
		article, err := scanArticle(rows)
		if err != nil {
			return nil, err
		}
		articles = append(articles, article)
	}
	if err := rows.Err(); err != nil {
		return nil, oops.Code("ARTICLE_ITERATE_FAILED").
			With("operation", "iterate articles").
			Wrap(err)
	}
	return articles, nil
}

// Compile-time interface check.
var _ blog.ArticleRepository = (*ArticleRepository)(nil)
