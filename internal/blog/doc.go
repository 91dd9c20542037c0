// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package blog provides the article domain for Inkwell.
//
// An Article is a user-authored text post owned by the username that
// created it. Mutations are ownership-scoped: update and delete take
// effect only when both the article ID and the requesting author match
// in one atomic statement, so a missing article and another user's
// article are indistinguishable to the caller.
package blog
