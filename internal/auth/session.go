// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"time"

	"github.com/samber/oops"
)

// Session token configuration.
const (
	SessionTokenBytes    = 32 // 32 bytes = 64 hex chars
	DefaultSessionExpiry = 24 * time.Hour
)

// Session is the ephemeral, server-held login state for one client.
// It references the username by value; nothing cascades from it.
type Session struct {
	Username  string
	CreatedAt time.Time
	ExpiresAt time.Time
}

// IsExpiredAt reports whether the session would be expired at t.
func (s *Session) IsExpiredAt(t time.Time) bool {
	return t.After(s.ExpiresAt)
}

// GenerateSessionToken creates a secure random token and its hash.
// The plaintext token goes to the client; only the hash is kept
// server-side.
func GenerateSessionToken() (token, hash string, err error) {
	raw := make([]byte, SessionTokenBytes)
	if _, err = rand.Read(raw); err != nil {
		return "", "", oops.Code("SESSION_TOKEN_GENERATE_FAILED").
			With("operation", "crypto/rand.Read").
			With("requested_bytes", SessionTokenBytes).
			Wrap(err)
	}

	token = hex.EncodeToString(raw)
	return token, HashSessionToken(token), nil
}

// HashSessionToken computes the SHA-256 hash of a session token.
func HashSessionToken(token string) string {
	h := sha256.Sum256([]byte(token))
	return hex.EncodeToString(h[:])
}

// SessionManager tracks live sessions in memory, keyed by token hash.
// It is safe for concurrent use; the HTTP layer calls it from many
// goroutines. Sessions are never persisted.
type SessionManager struct {
	mu       sync.Mutex
	ttl      time.Duration
	now      func() time.Time
	sessions map[string]*Session
}

// NewSessionManager creates a SessionManager. A non-positive ttl falls
// back to DefaultSessionExpiry.
func NewSessionManager(ttl time.Duration) *SessionManager {
	if ttl <= 0 {
		ttl = DefaultSessionExpiry
	}
	return &SessionManager{
		ttl:      ttl,
		now:      time.Now,
		sessions: make(map[string]*Session),
	}
}

// Start marks a client authenticated as username and returns the
// opaque token the client must present on later requests.
func (m *SessionManager) Start(username string) (string, error) {
	if username == "" {
		return "", oops.Code("SESSION_INVALID_USERNAME").Errorf("username cannot be empty")
	}

	token, hash, err := GenerateSessionToken()
	if err != nil {
		return "", err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	now := m.now()
	m.sessions[hash] = &Session{
		Username:  username,
		CreatedAt: now,
		ExpiresAt: now.Add(m.ttl),
	}
	return token, nil
}

// Lookup resolves a token to its live session. Expired sessions are
// dropped on sight and report as absent.
func (m *SessionManager) Lookup(token string) (*Session, bool) {
	if token == "" {
		return nil, false
	}
	hash := HashSessionToken(token)

	m.mu.Lock()
	defer m.mu.Unlock()
	sess, ok := m.sessions[hash]
	if !ok {
		return nil, false
	}
	if sess.IsExpiredAt(m.now()) {
		delete(m.sessions, hash)
		return nil, false
	}
	cp := *sess
	return &cp, true
}

// End clears the session for token. Idempotent: ending an unknown or
// already-ended token is a no-op.
func (m *SessionManager) End(token string) {
	if token == "" {
		return
	}
	hash := HashSessionToken(token)

	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, hash)
}

// PruneExpired removes every expired session and returns the count.
func (m *SessionManager) PruneExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	now := m.now()
	pruned := 0
	for hash, sess := range m.sessions {
		if sess.IsExpiredAt(now) {
			delete(m.sessions, hash)
			pruned++
		}
	}
	return pruned
}

// Len reports the number of tracked sessions, expired or not.
func (m *SessionManager) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.sessions)
}
