// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell/internal/auth"
)

func testUser() *auth.User {
	return &auth.User{
		ID:           ulid.Make(),
		Name:         "Alice Example",
		Username:     "alice",
		Email:        "alice@x.com",
		PasswordHash: "$argon2id$stored",
		CreatedAt:    time.Now().UTC().Truncate(time.Microsecond),
	}
}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()

	t.Run("inserts user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		user := testUser()
		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(user.ID.String(), user.Name, user.Username, user.Email, user.PasswordHash, user.CreatedAt).
			WillReturnResult(pgxmock.NewResult("INSERT", 1))

		repo := NewUserRepository(mock)
		require.NoError(t, repo.Create(ctx, user))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("maps unique violation to ErrDuplicateUsername", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		user := testUser()
		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(user.ID.String(), user.Name, user.Username, user.Email, user.PasswordHash, user.CreatedAt).
			WillReturnError(&pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "users_username_key"})

		repo := NewUserRepository(mock)
		err = repo.Create(ctx, user)
		assert.ErrorIs(t, err, auth.ErrDuplicateUsername)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("propagates store failure", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		user := testUser()
		mock.ExpectExec(`INSERT INTO users`).
			WithArgs(user.ID.String(), user.Name, user.Username, user.Email, user.PasswordHash, user.CreatedAt).
			WillReturnError(errors.New("connection refused"))

		repo := NewUserRepository(mock)
		err = repo.Create(ctx, user)
		require.Error(t, err)
		assert.NotErrorIs(t, err, auth.ErrDuplicateUsername)
		assert.Contains(t, err.Error(), "connection refused")
	})
}

func TestUserRepository_GetByUsername(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		user := testUser()
		rows := pgxmock.NewRows([]string{"id", "name", "username", "email", "password_hash", "created_at"}).
			AddRow(user.ID.String(), user.Name, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
		mock.ExpectQuery(`SELECT id, name, username, email, password_hash, created_at\s+FROM users\s+WHERE username = \$1`).
			WithArgs("alice").
			WillReturnRows(rows)

		repo := NewUserRepository(mock)
		got, err := repo.GetByUsername(ctx, "alice")
		require.NoError(t, err)
		assert.Equal(t, user.ID, got.ID)
		assert.Equal(t, user.Username, got.Username)
		assert.Equal(t, user.PasswordHash, got.PasswordHash)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("absent username yields ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		mock.ExpectQuery(`SELECT id, name, username, email, password_hash, created_at\s+FROM users\s+WHERE username = \$1`).
			WithArgs("ghost").
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "username", "email", "password_hash", "created_at"}))

		repo := NewUserRepository(mock)
		got, err := repo.GetByUsername(ctx, "ghost")
		assert.Nil(t, got)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})

	t.Run("corrupt id surfaces as error", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		rows := pgxmock.NewRows([]string{"id", "name", "username", "email", "password_hash", "created_at"}).
			AddRow("not-a-ulid", "Alice", "alice", "alice@x.com", "hash", time.Now())
		mock.ExpectQuery(`SELECT id, name, username, email, password_hash, created_at\s+FROM users\s+WHERE username = \$1`).
			WithArgs("alice").
			WillReturnRows(rows)

		repo := NewUserRepository(mock)
		_, err = repo.GetByUsername(ctx, "alice")
		assert.Error(t, err)
	})
}

func TestUserRepository_GetByID(t *testing.T) {
	ctx := context.Background()

	t.Run("returns stored user", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		user := testUser()
		rows := pgxmock.NewRows([]string{"id", "name", "username", "email", "password_hash", "created_at"}).
			AddRow(user.ID.String(), user.Name, user.Username, user.Email, user.PasswordHash, user.CreatedAt)
		mock.ExpectQuery(`SELECT id, name, username, email, password_hash, created_at\s+FROM users\s+WHERE id = \$1`).
			WithArgs(user.ID.String()).
			WillReturnRows(rows)

		repo := NewUserRepository(mock)
		got, err := repo.GetByID(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, user.Username, got.Username)
	})

	t.Run("absent id yields ErrNotFound", func(t *testing.T) {
		mock, err := pgxmock.NewPool()
		require.NoError(t, err)
		defer mock.Close()

		id := ulid.Make()
		mock.ExpectQuery(`SELECT id, name, username, email, password_hash, created_at\s+FROM users\s+WHERE id = \$1`).
			WithArgs(id.String()).
			WillReturnRows(pgxmock.NewRows([]string{"id", "name", "username", "email", "password_hash", "created_at"}))

		repo := NewUserRepository(mock)
		_, err = repo.GetByID(ctx, id)
		assert.ErrorIs(t, err, auth.ErrNotFound)
	})
}
