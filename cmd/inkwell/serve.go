// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/inkwell/inkwell/internal/auth"
	authpg "github.com/inkwell/inkwell/internal/auth/postgres"
	"github.com/inkwell/inkwell/internal/blog"
	blogpg "github.com/inkwell/inkwell/internal/blog/postgres"
	"github.com/inkwell/inkwell/internal/config"
	"github.com/inkwell/inkwell/internal/logging"
	"github.com/inkwell/inkwell/internal/observability"
	"github.com/inkwell/inkwell/internal/store"
	"github.com/inkwell/inkwell/internal/web"
)

// sessionPruneInterval is how often expired sessions are swept out of
// the in-memory session manager.
const sessionPruneInterval = 10 * time.Minute

// newServeCmd creates the serve subcommand with all flags configured.
func newServeCmd() *cobra.Command {
	var autoMigrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the Inkwell API server",
		Long: `Start the Inkwell API server, which serves the JSON blogging API
and an optional metrics/health endpoint.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd, autoMigrate)
		},
	}

	// Flag names mirror config file keys so either source can set them.
	f := cmd.Flags()
	f.String("http.addr", config.DefaultHTTPAddr, "API listen address")
	f.String("metrics.addr", config.DefaultMetricsAddr, "metrics/health HTTP address (empty = disabled)")
	f.String("log.format", config.DefaultLogFormat, "log format (json or text)")
	f.String("database.host", "", "database host")
	f.Int("database.port", config.DefaultDBPort, "database port")
	f.String("database.user", "", "database user")
	f.String("database.password", "", "database password")
	f.String("database.name", "", "database name")
	f.String("database.sslmode", config.DefaultDBSSLMode, "database sslmode")
	f.Duration("session.ttl", config.DefaultSessionTTL, "session lifetime")
	f.BoolVar(&autoMigrate, "auto-migrate", false, "run pending migrations before serving")

	return cmd
}

// runServe wires the storage, services, and servers together and
// blocks until a shutdown signal or a server failure.
func runServe(cmd *cobra.Command, autoMigrate bool) error {
	cfg, err := config.Load(configFile, cmd.Flags())
	if err != nil {
		return err
	}

	logging.SetDefault("inkwell", cmd.Root().Version, cfg.Log.Format)

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	if autoMigrate {
		if err := runMigrations(cmd, cfg.Database.DSN()); err != nil {
			return err
		}
	}

	pool, err := store.Connect(ctx, cfg.Database.DSN())
	if err != nil {
		return err
	}
	defer pool.Close()

	sessions := auth.NewSessionManager(cfg.Session.TTL)
	authSvc, err := auth.NewService(authpg.NewUserRepository(pool), sessions, auth.NewArgon2idHasher(), slog.Default())
	if err != nil {
		return err
	}
	blogSvc, err := blog.NewService(blogpg.NewArticleRepository(pool), slog.Default())
	if err != nil {
		return err
	}

	// Observability server is optional; readiness tracks the database.
	var metrics *observability.Metrics
	var obsServer *observability.Server
	if cfg.Metrics.Addr != "" {
		obsServer = observability.NewServer(cfg.Metrics.Addr, func() bool {
			pingCtx, pingCancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer pingCancel()
			return pool.Ping(pingCtx) == nil
		})
		metrics = obsServer.Metrics()
	}

	webServer, err := web.NewServer(web.Config{
		Addr:       cfg.HTTP.Addr,
		Auth:       authSvc,
		Gate:       auth.NewGate(sessions),
		Blog:       blogSvc,
		Metrics:    metrics,
		SessionTTL: cfg.Session.TTL,
	})
	if err != nil {
		return err
	}

	var obsErrCh <-chan error
	if obsServer != nil {
		obsErrCh, err = obsServer.Start()
		if err != nil {
			return err
		}
	}

	webErrCh, err := webServer.Start()
	if err != nil {
		if obsServer != nil {
			shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer shutdownCancel()
			_ = obsServer.Stop(shutdownCtx)
		}
		return err
	}

	// Sweep expired sessions and keep the gauge current.
	go func() {
		ticker := time.NewTicker(sessionPruneInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if pruned := sessions.PruneExpired(); pruned > 0 {
					slog.Debug("pruned expired sessions", "count", pruned)
				}
				if metrics != nil {
					metrics.ActiveSessions.Set(float64(sessions.Len()))
				}
			}
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	cmd.Println("Inkwell server started")
	slog.Info("inkwell ready", "http_addr", webServer.Addr(), "metrics_addr", cfg.Metrics.Addr)

	var serveErr error
	select {
	case sig := <-sigChan:
		slog.Info("received shutdown signal", "signal", sig)
	case serveErr = <-webErrCh:
		if serveErr != nil {
			slog.Error("web server failed", "error", serveErr)
		}
	case obsErr := <-obsErrCh:
		if obsErr != nil {
			slog.Error("observability server failed", "error", obsErr)
			serveErr = obsErr
		}
	case <-ctx.Done():
		slog.Info("context cancelled, shutting down")
	}

	slog.Info("shutting down...")
	cancel()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := webServer.Stop(shutdownCtx); err != nil {
		slog.Warn("error stopping web server", "error", err)
	}
	if obsServer != nil {
		if err := obsServer.Stop(shutdownCtx); err != nil {
			slog.Warn("error stopping observability server", "error", err)
		}
	}

	slog.Info("shutdown complete")
	return serveErr
}
