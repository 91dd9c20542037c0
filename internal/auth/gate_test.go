// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inkwell/inkwell/internal/auth"
)

func TestGate_Guard(t *testing.T) {
	sessions := auth.NewSessionManager(0)
	gate := auth.NewGate(sessions)

	t.Run("denies without a session", func(t *testing.T) {
		sess, err := gate.Guard("no-such-token")
		assert.Nil(t, sess)
		assert.ErrorIs(t, err, auth.ErrUnauthorized)
	})

	t.Run("denies empty token", func(t *testing.T) {
		_, err := gate.Guard("")
		assert.ErrorIs(t, err, auth.ErrUnauthorized)
	})

	t.Run("allows once a session started, denies after end", func(t *testing.T) {
		token, err := sessions.Start("alice")
		require.NoError(t, err)

		sess, err := gate.Guard(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", sess.Username)

		sessions.End(token)

		_, err = gate.Guard(token)
		assert.ErrorIs(t, err, auth.ErrUnauthorized)
	})
}
