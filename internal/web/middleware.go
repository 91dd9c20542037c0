// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package web

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/inkwell/inkwell/internal/auth"
)

// SessionCookie carries the session token between requests. The same
// token is also accepted as a bearer token for non-browser clients.
const SessionCookie = "inkwell_session"

type contextKey struct{ name string }

var sessionContextKey = contextKey{"session"}

// SessionFromContext returns the session attached by requireSession.
func SessionFromContext(ctx context.Context) (*auth.Session, bool) {
	s, ok := ctx.Value(sessionContextKey).(*auth.Session)
	return s, ok
}

// sessionToken extracts the token from the Authorization header or the
// session cookie. Header wins when both are present.
func sessionToken(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if tok, ok := strings.CutPrefix(h, "Bearer "); ok {
			return tok
		}
	}
	if c, err := r.Cookie(SessionCookie); err == nil {
		return c.Value
	}
	return ""
}

// requireSession rejects requests without a live session and attaches
// the session to the request context for the wrapped handler.
func (s *Server) requireSession(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		session, err := s.gate.Guard(sessionToken(r))
		if err != nil {
			writeError(w, r, err)
			return
		}
		ctx := context.WithValue(r.Context(), sessionContextKey, session)
		next(w, r.WithContext(ctx))
	}
}

// statusRecorder captures the response status for logging and metrics.
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (rec *statusRecorder) WriteHeader(status int) {
	rec.status = status
	rec.ResponseWriter.WriteHeader(status)
}

// instrument logs every request and records request metrics when a
// metrics sink is configured.
func (s *Server) instrument(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		elapsed := time.Since(start)
		route := routePattern(r)
		slog.Info("http request",
			"method", r.Method,
			"route", route,
			"status", rec.status,
			"duration_ms", elapsed.Milliseconds(),
		)
		if s.metrics != nil {
			s.metrics.RequestsTotal.WithLabelValues(route, strconv.Itoa(rec.status)).Inc()
			s.metrics.RequestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		}
	})
}
