// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package blog

import (
	"context"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// Service orchestrates article operations for the web layer. The
// author argument always comes from the caller's session identity,
// never from request payloads; ownership itself is enforced by the
// repository's scoped statements.
type Service struct {
	articles ArticleRepository
	logger   *slog.Logger
}

// NewService creates a blog Service.
func NewService(articles ArticleRepository, logger *slog.Logger) (*Service, error) {
	if articles == nil {
		return nil, oops.Code("BLOG_INVALID_DEPS").Errorf("article repository is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{articles: articles, logger: logger}, nil
}

// Create validates and persists a new article owned by author.
func (s *Service) Create(ctx context.Context, author, title, content string) (*Article, error) {
	if err := ValidateTitle(title); err != nil {
		return nil, err
	}
	if err := ValidateContent(content); err != nil {
		return nil, err
	}

	article := &Article{
		ID:        ulid.Make(),
		Title:     title,
		Content:   content,
		Author:    author,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.articles.Create(ctx, article); err != nil {
		return nil, oops.Code("ARTICLE_CREATE_FAILED").
			With("operation", "insert article").
			With("author", author).
			Wrap(err)
	}

	s.logger.Info("article created", "article_id", article.ID.String(), "author", author)
	return article, nil
}

// Get retrieves a single article. No session required.
func (s *Service) Get(ctx context.Context, id ulid.ULID) (*Article, error) {
	article, err := s.articles.Get(ctx, id)
	if err != nil {
		return nil, oops.Wrapf(err, "get article %s", id)
	}
	return article, nil
}

// ListAll returns every article.
func (s *Service) ListAll(ctx context.Context) ([]*Article, error) {
	articles, err := s.articles.ListAll(ctx)
	if err != nil {
		return nil, oops.Wrapf(err, "list articles")
	}
	return articles, nil
}

// ListByAuthor returns the caller's own articles (the dashboard view).
func (s *Service) ListByAuthor(ctx context.Context, author string) ([]*Article, error) {
	articles, err := s.articles.ListByAuthor(ctx, author)
	if err != nil {
		return nil, oops.Wrapf(err, "list articles by %s", author)
	}
	return articles, nil
}

// Update rewrites the title and content of the caller's own article.
func (s *Service) Update(ctx context.Context, id ulid.ULID, author, title, content string) error {
	if err := ValidateTitle(title); err != nil {
		return err
	}
	if err := ValidateContent(content); err != nil {
		return err
	}
	if err := s.articles.Update(ctx, id, author, title, content); err != nil {
		return oops.Wrapf(err, "update article %s", id)
	}
	s.logger.Info("article updated", "article_id", id.String(), "author", author)
	return nil
}

// Delete removes the caller's own article.
func (s *Service) Delete(ctx context.Context, id ulid.ULID, author string) error {
	if err := s.articles.Delete(ctx, id, author); err != nil {
		return oops.Wrapf(err, "delete article %s", id)
	}
	s.logger.Info("article deleted", "article_id", id.String(), "author", author)
	return nil
}

// SearchByTitle returns articles whose title contains keyword.
func (s *Service) SearchByTitle(ctx context.Context, keyword string) ([]*Article, error) {
	articles, err := s.articles.SearchByTitle(ctx, keyword)
	if err != nil {
		return nil, oops.Wrapf(err, "search articles")
	}
	return articles, nil
}
