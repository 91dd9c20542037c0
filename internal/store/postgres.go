// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package store provides PostgreSQL connectivity and schema
// management for Inkwell.
package store

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/oops"
)

// Connect opens a pgx connection pool and verifies it with a ping.
// Connection failures are surfaced immediately; this layer performs no
// retries, since a persistence failure at startup almost always means
// a configuration problem needing operator attention.
func Connect(ctx context.Context, dsn string) (*pgxpool.Pool, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, oops.Code("STORE_UNAVAILABLE").
			With("operation", "create connection pool").
			Wrap(err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, oops.Code("STORE_UNAVAILABLE").
			With("operation", "ping database").
			Wrap(err)
	}
	return pool, nil
}
