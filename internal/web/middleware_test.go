// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package web

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionToken_BearerHeader(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.Header.Set("Authorization", "Bearer abc123")

	assert.Equal(t, "abc123", sessionToken(r))
}

func TestSessionToken_Cookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})

	assert.Equal(t, "cookie-token", sessionToken(r))
}

func TestSessionToken_HeaderWinsOverCookie(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.Header.Set("Authorization", "Bearer header-token")
	r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "cookie-token"})

	assert.Equal(t, "header-token", sessionToken(r))
}

func TestSessionToken_IgnoresNonBearerAuthorization(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)
	r.Header.Set("Authorization", "Basic dXNlcjpwYXNz")

	assert.Empty(t, sessionToken(r))
}

func TestSessionToken_Absent(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	assert.Empty(t, sessionToken(r))
}

func TestSessionFromContext_Missing(t *testing.T) {
	r := httptest.NewRequest(http.MethodGet, "/dashboard", nil)

	_, ok := SessionFromContext(r.Context())
	require.False(t, ok)
}

func TestStatusRecorder_CapturesStatus(t *testing.T) {
	rec := &statusRecorder{ResponseWriter: httptest.NewRecorder(), status: http.StatusOK}
	rec.WriteHeader(http.StatusTeapot)

	assert.Equal(t, http.StatusTeapot, rec.status)
}

func TestStatusRecorder_DefaultsTo200(t *testing.T) {
	inner := httptest.NewRecorder()
	rec := &statusRecorder{ResponseWriter: inner, status: http.StatusOK}
	_, err := rec.Write([]byte("ok"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, rec.status)
	assert.Equal(t, http.StatusOK, inner.Code)
}
