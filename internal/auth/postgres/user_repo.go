// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package postgres implements auth repositories using PostgreSQL.
package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"

	"github.com/inkwell/inkwell/internal/auth"
)

// querier abstracts query execution so the repository works with a
// *pgxpool.Pool in production and a pgxmock pool in tests.
type querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// UserRepository implements auth.UserRepository using PostgreSQL.
type UserRepository struct {
	db querier
}

// NewUserRepository creates a new UserRepository.
func NewUserRepository(db querier) *UserRepository {
	return &UserRepository{db: db}
}

// Create stores a new user. A unique violation on the username column
// maps to auth.ErrDuplicateUsername.
func (r *UserRepository) Create(ctx context.Context, user *auth.User) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO users (id, name, username, email, password_hash, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`,
		user.ID.String(),
		user.Name,
		user.Username,
		user.Email,
		user.PasswordHash,
		user.CreatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation {
			return oops.Code("USER_DUPLICATE_USERNAME").
				With("username", user.Username).
				Wrap(auth.ErrDuplicateUsername)
		}
		return oops.Code("USER_CREATE_FAILED").
			With("operation", "insert user").
			With("username", user.Username).
			Wrap(err)
	}
	return nil
}

// GetByUsername retrieves a user by exact username match.
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, username, email, password_hash, created_at
		FROM users
		WHERE username = $1
	`, username)

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("username", username).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_USERNAME_FAILED").
			With("operation", "get user by username").
			With("username", username).
			Wrap(err)
	}
	return user, nil
}

// GetByID retrieves a user by ID.
func (r *UserRepository) GetByID(ctx context.Context, id ulid.ULID) (*auth.User, error) {
	row := r.db.QueryRow(ctx, `
		SELECT id, name, username, email, password_hash, created_at
		FROM users
		WHERE id = $1
	`, id.String())

	user, err := scanUser(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, oops.Code("USER_NOT_FOUND").
			With("id", id.String()).
			Wrap(auth.ErrNotFound)
	}
	if err != nil {
		return nil, oops.Code("USER_GET_BY_ID_FAILED").
			With("operation", "get user by id").
			With("id", id.String()).
			Wrap(err)
	}
	return user, nil
}

// scanUser scans a single row into a User.
// Callers are responsible for handling pgx.ErrNoRows.
func scanUser(row pgx.Row) (*auth.User, error) {
	var (
		idStr        string
		name         string
		username     string
		email        string
		passwordHash string
		createdAt    time.Time
	)

	err := row.Scan(&idStr, &name, &username, &email, &passwordHash, &createdAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err //nolint:wrapcheck // callers wrap with context-specific info
		}
		return nil, oops.Code("USER_SCAN_FAILED").
			With("operation", "scan user").
			Wrap(err)
	}

	id, err := ulid.Parse(idStr)
	if err != nil {
		return nil, oops.Code("USER_INVALID_ID").
			With("operation", "parse user id").
			With("id", idStr).
			Wrap(err)
	}

	return &auth.User{
		ID:           id,
		Name:         name,
		Username:     username,
		Email:        email,
		PasswordHash: passwordHash,
		CreatedAt:    createdAt,
	}, nil
}

// Compile-time interface check.
var _ auth.UserRepository = (*UserRepository)(nil)
