// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package web

import (
	"context"
	"log/slog"
	"net"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/samber/oops"

	"github.com/inkwell/inkwell/internal/auth"
	"github.com/inkwell/inkwell/internal/blog"
	"github.com/inkwell/inkwell/internal/observability"
)

// Config carries the collaborators the API server needs.
type Config struct {
	Addr       string
	Auth       *auth.Service
	Gate       *auth.Gate
	Blog       *blog.Service
	Metrics    *observability.Metrics
	SessionTTL time.Duration
}

// Server serves the JSON API.
type Server struct {
	addr       string
	auth       *auth.Service
	gate       *auth.Gate
	blog       *blog.Service
	metrics    *observability.Metrics
	sessionTTL time.Duration

	listener   net.Listener
	httpServer *http.Server
	running    atomic.Bool
}

// NewServer creates the API server. Metrics may be nil, in which case
// no request metrics are recorded.
func NewServer(cfg Config) (*Server, error) {
	if cfg.Auth == nil {
		return nil, oops.Errorf("web: auth service is required")
	}
	if cfg.Gate == nil {
		return nil, oops.Errorf("web: auth gate is required")
	}
	if cfg.Blog == nil {
		return nil, oops.Errorf("web: blog service is required")
	}
	ttl := cfg.SessionTTL
	if ttl <= 0 {
		ttl = auth.DefaultSessionExpiry
	}
	return &Server{
		addr:       cfg.Addr,
		auth:       cfg.Auth,
		gate:       cfg.Gate,
		blog:       cfg.Blog,
		metrics:    cfg.Metrics,
		sessionTTL: ttl,
	}, nil
}

// Handler returns the routed handler with instrumentation applied.
// Exposed for httptest-based tests.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /register", s.handleRegister)
	mux.HandleFunc("POST /login", s.handleLogin)
	mux.HandleFunc("POST /logout", s.requireSession(s.handleLogout))

	mux.HandleFunc("GET /articles", s.handleListArticles)
	mux.HandleFunc("GET /articles/{id}", s.handleGetArticle)
	mux.HandleFunc("GET /articles/search", s.handleSearch)
	mux.HandleFunc("GET /dashboard", s.requireSession(s.handleDashboard))

	mux.HandleFunc("POST /articles", s.requireSession(s.handleCreateArticle))
	mux.HandleFunc("PUT /articles/{id}", s.requireSession(s.handleUpdateArticle))
	mux.HandleFunc("DELETE /articles/{id}", s.requireSession(s.handleDeleteArticle))

	return s.instrument(mux)
}

// Start begins serving the API. It returns an error channel that will
// receive any errors from the HTTP server after it starts; the channel
// is closed when the server stops gracefully.
func (s *Server) Start() (<-chan error, error) {
	if !s.running.CompareAndSwap(false, true) {
		return nil, oops.Errorf("web server already running")
	}

	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		s.running.Store(false)
		return nil, oops.With("addr", s.addr).Wrap(err)
	}
	s.listener = listener

	httpSrv := &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.httpServer = httpSrv

	errCh := make(chan error, 1)

	go func() {
		defer close(errCh)
		if serveErr := httpSrv.Serve(listener); serveErr != nil && serveErr != http.ErrServerClosed {
			slog.Error("web server error", "error", serveErr)
			errCh <- serveErr
		}
	}()

	slog.Info("web server started", "addr", listener.Addr().String())
	return errCh, nil
}

// Stop gracefully shuts down the API server.
func (s *Server) Stop(ctx context.Context) error {
	if !s.running.CompareAndSwap(true, false) {
		return nil
	}

	if s.httpServer != nil {
		if err := s.httpServer.Shutdown(ctx); err != nil {
			s.running.Store(true)
			return oops.With("operation", "shutdown_web_server").Wrap(err)
		}
	}

	slog.Info("web server stopped")
	return nil
}

// Addr returns the address the server is listening on.
// Returns empty string if not running.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return ""
}
