// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package blog

import "errors"

// ErrNotFound is returned by reads when no article has the given ID.
var ErrNotFound = errors.New("not found")

// ErrNotFoundOrUnauthorized is returned by ownership-scoped mutations
// when zero rows match. Article-missing and author-mismatch are
// deliberately conflated so callers cannot probe for the existence of
// other users' articles.
var ErrNotFoundOrUnauthorized = errors.New("no article or unauthorized")
