// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package errutil provides helpers for logging and asserting on
// structured (oops) errors.
package errutil

import (
	"log/slog"

	"github.com/samber/oops"
)

// LogError logs an error with structured context. Oops errors
// contribute their code and context map as attributes; plain errors
// log their string form.
func LogError(logger *slog.Logger, msg string, err error) {
	oopsErr, ok := oops.AsOops(err)
	if !ok {
		logger.Error(msg, "error", err)
		return
	}

	attrs := []any{"error", oopsErr.Error()}
	if code := oopsErr.Code(); code != nil {
		attrs = append(attrs, "code", code)
	}
	if errCtx := oopsErr.Context(); len(errCtx) > 0 {
		attrs = append(attrs, "context", errCtx)
	}
	logger.Error(msg, attrs...)
}
