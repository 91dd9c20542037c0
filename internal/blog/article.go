// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package blog

import (
	"context"
	"fmt"
	"time"

	"github.com/oklog/ulid/v2"
)

// Article is a user-authored text post. Author holds the owning
// username by value; authors are never renamed or deleted.
type Article struct {
	ID        ulid.ULID
	Title     string
	Content   string
	Author    string
	CreatedAt time.Time
}

// ValidationError reports a malformed article field.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidateTitle requires a non-empty title. No length cap beyond
// presence.
func ValidateTitle(title string) error {
	if title == "" {
		return &ValidationError{Field: "title", Message: "cannot be empty"}
	}
	return nil
}

// ValidateContent requires non-empty content.
func ValidateContent(content string) error {
	if content == "" {
		return &ValidationError{Field: "content", Message: "cannot be empty"}
	}
	return nil
}

// ArticleRepository manages article persistence.
//
// Update and Delete are the ownership-scoped mutations: each must be a
// single atomic statement matching both id and author, so a concurrent
// delete-then-update race can never touch another author's row.
type ArticleRepository interface {
	// Create persists a new article.
	Create(ctx context.Context, article *Article) error

	// Get retrieves an article by ID. Returns ErrNotFound if absent.
	// Reads are not ownership-scoped; any client may view any article.
	Get(ctx context.Context, id ulid.ULID) (*Article, error)

	// ListAll returns all articles in stable order.
	ListAll(ctx context.Context) ([]*Article, error)

	// ListByAuthor returns the articles owned by author, in stable order.
	ListByAuthor(ctx context.Context, author string) ([]*Article, error)

	// Update rewrites title and content of the row matching both id and
	// author. Returns ErrNotFoundOrUnauthorized when zero rows match.
	Update(ctx context.Context, id ulid.ULID, author, title, content string) error

	// Delete removes the row matching both id and author. Returns
	// ErrNotFoundOrUnauthorized when zero rows match.
	Delete(ctx context.Context, id ulid.ULID, author string) error

	// SearchByTitle returns articles whose title contains keyword,
	// case-insensitively. The keyword is matched literally; it is bound
	// as a query parameter, never spliced into SQL text.
	SearchByTitle(ctx context.Context, keyword string) ([]*Article, error)
}
