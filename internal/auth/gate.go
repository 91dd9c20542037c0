// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth

import "github.com/samber/oops"

// SessionReader is the read-only view of the SessionManager the Gate
// needs. Defined here to keep the Gate decoupled from session writes.
type SessionReader interface {
	Lookup(token string) (*Session, bool)
}

// Gate is the reusable access-control check wrapping protected
// operations. It is a pure predicate: no rate limiting, no lockout,
// no audit logging.
type Gate struct {
	sessions SessionReader
}

// NewGate creates a Gate over the given session source.
func NewGate(sessions SessionReader) *Gate {
	return &Gate{sessions: sessions}
}

// Guard resolves the token to a live session or fails with
// ErrUnauthorized. Callers must not invoke the protected operation
// when an error is returned.
func (g *Gate) Guard(token string) (*Session, error) {
	sess, ok := g.sessions.Lookup(token)
	if !ok {
		return nil, oops.Code("AUTH_UNAUTHORIZED").Wrap(ErrUnauthorized)
	}
	return sess, nil
}

// Compile-time interface check.
var _ SessionReader = (*SessionManager)(nil)
