// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth

import "errors"

// ErrNotFound is returned when a requested user does not exist.
var ErrNotFound = errors.New("not found")

// ErrDuplicateUsername is returned when registering a username that is
// already taken.
var ErrDuplicateUsername = errors.New("username already taken")

// ErrInvalidCredentials is returned on login failure. Unknown username
// and wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid username or password")

// ErrUnauthorized is returned by the Gate when no active session backs
// the presented token.
var ErrUnauthorized = errors.New("unauthorized")
