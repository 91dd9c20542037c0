// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package auth provides authentication primitives for Inkwell.
//
// # Domain Types
//
// User represents a registered account and should be created through
// Service.Register, which validates input and hashes the password.
// Direct struct initialization bypasses validation and may create
// invalid state.
//
// # Sessions
//
// Sessions are ephemeral, server-held state keyed by an opaque token.
// The SessionManager owns them exclusively; nothing about a session is
// persisted. The Gate wraps protected operations and short-circuits to
// ErrUnauthorized when no live session backs the presented token.
package auth
