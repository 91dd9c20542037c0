// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth

import (
	"context"
	"time"

	"github.com/oklog/ulid/v2"
)

// Field length limits for registration.
const (
	MinNameLength     = 1
	MaxNameLength     = 50
	MinUsernameLength = 4
	MaxUsernameLength = 25
)

// User represents a registered account. Accounts are immutable after
// registration; there is no profile editing and no deletion.
type User struct {
	ID           ulid.ULID
	Name         string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
}

// UserRepository manages user persistence.
type UserRepository interface {
	// Create stores a new user. Returns ErrDuplicateUsername if the
	// username is already taken.
	Create(ctx context.Context, user *User) error

	// GetByUsername retrieves a user by exact username match.
	// Returns ErrNotFound if no such user exists.
	GetByUsername(ctx context.Context, username string) (*User, error)

	// GetByID retrieves a user by ID. Returns ErrNotFound if absent.
	GetByID(ctx context.Context, id ulid.ULID) (*User, error)
}
