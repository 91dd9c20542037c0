// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/oklog/ulid/v2"
	"github.com/samber/oops"
)

// dummyPasswordHash is verified against when a username doesn't exist,
// so that login response time does not reveal which usernames are
// registered. It is a fake hash that can never match any password.
//
//nolint:gosec // G101: intentionally fake hash, not a credential.
const dummyPasswordHash = "$argon2id$v=19$m=65536,t=1,p=4$AAAAAAAAAAAAAAAAAAAAAA$AAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAAA"

// Service provides registration, login, and logout.
type Service struct {
	users    UserRepository
	sessions *SessionManager
	hasher   PasswordHasher
	logger   *slog.Logger
}

// NewService creates an auth Service. All dependencies are required.
func NewService(users UserRepository, sessions *SessionManager, hasher PasswordHasher, logger *slog.Logger) (*Service, error) {
	if users == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("user repository is required")
	}
	if sessions == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("session manager is required")
	}
	if hasher == nil {
		return nil, oops.Code("AUTH_INVALID_DEPS").Errorf("password hasher is required")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{users: users, sessions: sessions, hasher: hasher, logger: logger}, nil
}

// Register validates the input, hashes the password, and stores the
// new user. Returns *ValidationError on malformed input and
// ErrDuplicateUsername when the username is taken.
func (s *Service) Register(ctx context.Context, in RegisterInput) (*User, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "hash password").
			Wrap(err)
	}

	user := &User{
		ID:           ulid.Make(),
		Name:         in.Name,
		Username:     in.Username,
		Email:        in.Email,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, ErrDuplicateUsername) {
			return nil, oops.Code("AUTH_DUPLICATE_USERNAME").
				With("username", in.Username).
				Wrap(err)
		}
		return nil, oops.Code("AUTH_REGISTER_FAILED").
			With("operation", "insert user").
			With("username", in.Username).
			Wrap(err)
	}

	s.logger.Info("user registered", "username", user.Username)
	return user, nil
}

// Login verifies the credentials and starts a session, returning the
// session token. Unknown username and wrong password both fail with
// ErrInvalidCredentials; a dummy verification keeps the unknown-user
// path constant time.
func (s *Service) Login(ctx context.Context, username, password string) (string, error) {
	user, lookupErr := s.users.GetByUsername(ctx, username)

	targetHash := dummyPasswordHash
	userExists := false
	switch {
	case lookupErr == nil:
		targetHash = user.PasswordHash
		userExists = true
	case errors.Is(lookupErr, ErrNotFound):
		// Keep verifying against the dummy hash below.
	default:
		return "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "get user by username").
			Wrap(lookupErr)
	}

	valid, verifyErr := s.hasher.Verify(password, targetHash)
	if verifyErr != nil && userExists {
		// A malformed stored hash is a verification failure, not a
		// server fault surfaced to the client.
		s.logger.Warn("stored password hash rejected by verifier", "username", username)
	}

	if !userExists || !valid {
		return "", oops.Code("AUTH_INVALID_CREDENTIALS").Wrap(ErrInvalidCredentials)
	}

	token, err := s.sessions.Start(user.Username)
	if err != nil {
		return "", oops.Code("AUTH_LOGIN_FAILED").
			With("operation", "start session").
			Wrap(err)
	}

	s.logger.Info("user logged in", "username", user.Username)
	return token, nil
}

// Logout ends the session for token. Idempotent.
func (s *Service) Logout(token string) {
	s.sessions.End(token)
}
