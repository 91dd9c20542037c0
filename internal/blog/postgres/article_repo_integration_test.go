//go:build integration

// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package postgres_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/inkwell/inkwell/internal/blog"
	"github.com/inkwell/inkwell/internal/blog/postgres"
	"github.com/inkwell/inkwell/internal/store"
)

var testPool *pgxpool.Pool

func TestMain(m *testing.M) {
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("inkwell_test"),
		tcpostgres.WithUsername("inkwell"),
		tcpostgres.WithPassword("inkwell"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to start postgres container:", err)
		os.Exit(1)
	}

	connStr, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to get connection string:", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}

	migrator, err := store.NewMigrator(connStr)
	if err == nil {
		err = migrator.Up()
		_ = migrator.Close()
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to run migrations:", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}

	testPool, err = pgxpool.New(ctx, connStr)
	if err != nil {
		fmt.Fprintln(os.Stderr, "failed to create pool:", err)
		_ = container.Terminate(ctx)
		os.Exit(1)
	}

	code := m.Run()

	testPool.Close()
	_ = container.Terminate(ctx)
	os.Exit(code)
}

// seedAuthor inserts a users row so the articles author FK holds.
func seedAuthor(t *testing.T, username string) {
	t.Helper()
	_, err := testPool.Exec(context.Background(),
		"INSERT INTO users (id, name, username, email, password_hash, created_at) VALUES ($1, $2, $3, $4, $5, $6)",
		ulid.Make().String(), "Author", username, username+"@example.com", "x", time.Now().UTC())
	require.NoError(t, err)
}

func cleanup(t *testing.T) {
	t.Helper()
	_, err := testPool.Exec(context.Background(), "DELETE FROM articles")
	require.NoError(t, err)
	_, err = testPool.Exec(context.Background(), "DELETE FROM users")
	require.NoError(t, err)
}

func newArticle(author, title string) *blog.Article {
	return &blog.Article{
		ID:        ulid.Make(),
		Title:     title,
		Content:   "content of " + title,
		Author:    author,
		CreatedAt: time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestArticleRepository_CreateAndGet(t *testing.T) {
	cleanup(t)
	seedAuthor(t, "alice01")
	repo := postgres.NewArticleRepository(testPool)
	ctx := context.Background()

	article := newArticle("alice01", "First Post")
	require.NoError(t, repo.Create(ctx, article))

	got, err := repo.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, article.Title, got.Title)
	assert.Equal(t, article.Content, got.Content)
	assert.Equal(t, article.Author, got.Author)
}

func TestArticleRepository_ListOrdering(t *testing.T) {
	cleanup(t)
	seedAuthor(t, "alice01")
	seedAuthor(t, "bob2024")
	repo := postgres.NewArticleRepository(testPool)
	ctx := context.Background()

	base := time.Now().UTC().Truncate(time.Microsecond)
	titles := []string{"Oldest", "Middle", "Newest"}
	for i, title := range titles {
		a := newArticle("alice01", title)
		a.CreatedAt = base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, repo.Create(ctx, a))
	}
	b := newArticle("bob2024", "Bob Post")
	b.CreatedAt = base.Add(30 * time.Second)
	require.NoError(t, repo.Create(ctx, b))

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 4)
	assert.Equal(t, "Oldest", all[0].Title)
	assert.Equal(t, "Bob Post", all[1].Title)
	assert.Equal(t, "Newest", all[3].Title)

	mine, err := repo.ListByAuthor(ctx, "alice01")
	require.NoError(t, err)
	require.Len(t, mine, 3)
	for _, a := range mine {
		assert.Equal(t, "alice01", a.Author)
	}
}

func TestArticleRepository_UpdateScopedToOwner(t *testing.T) {
	cleanup(t)
	seedAuthor(t, "alice01")
	repo := postgres.NewArticleRepository(testPool)
	ctx := context.Background()

	article := newArticle("alice01", "Original")
	require.NoError(t, repo.Create(ctx, article))

	err := repo.Update(ctx, article.ID, "bob2024", "Hijacked", "mine now")
	assert.True(t, errors.Is(err, blog.ErrNotFoundOrUnauthorized))

	got, err := repo.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "Original", got.Title)

	require.NoError(t, repo.Update(ctx, article.ID, "alice01", "Revised", "new content"))

	got, err = repo.Get(ctx, article.ID)
	require.NoError(t, err)
	assert.Equal(t, "Revised", got.Title)
	assert.Equal(t, "new content", got.Content)
}

func TestArticleRepository_DeleteScopedToOwner(t *testing.T) {
	cleanup(t)
	seedAuthor(t, "alice01")
	repo := postgres.NewArticleRepository(testPool)
	ctx := context.Background()

	article := newArticle("alice01", "Doomed")
	require.NoError(t, repo.Create(ctx, article))

	err := repo.Delete(ctx, article.ID, "bob2024")
	assert.True(t, errors.Is(err, blog.ErrNotFoundOrUnauthorized))

	require.NoError(t, repo.Delete(ctx, article.ID, "alice01"))

	_, err = repo.Get(ctx, article.ID)
	assert.True(t, errors.Is(err, blog.ErrNotFound))

	// Deleting again reports the same conflated error.
	err = repo.Delete(ctx, article.ID, "alice01")
	assert.True(t, errors.Is(err, blog.ErrNotFoundOrUnauthorized))
}

func TestArticleRepository_SearchAgainstRealLike(t *testing.T) {
	cleanup(t)
	seedAuthor(t, "alice01")
	repo := postgres.NewArticleRepository(testPool)
	ctx := context.Background()

	for _, title := range []string{"Go Concurrency", "going camping", "Bread Baking", "50% Off Sale"} {
		require.NoError(t, repo.Create(ctx, newArticle("alice01", title)))
	}

	results, err := repo.SearchByTitle(ctx, "go")
	require.NoError(t, err)
	assert.Len(t, results, 2, "substring match is case-insensitive")

	results, err = repo.SearchByTitle(ctx, "50%")
	require.NoError(t, err)
	require.Len(t, results, 1, "LIKE metacharacters in the keyword are literal")
	assert.Equal(t, "50% Off Sale", results[0].Title)

	// A keyword shaped like an injection payload is just a literal
	// string that matches nothing.
	results, err = repo.SearchByTitle(ctx, "' OR '1'='1")
	require.NoError(t, err)
	assert.Empty(t, results)

	// Empty keyword matches everything.
	results, err = repo.SearchByTitle(ctx, "")
	require.NoError(t, err)
	assert.Len(t, results, 4)
}
