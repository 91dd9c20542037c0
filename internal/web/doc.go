// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

// Package web exposes the JSON HTTP API: account registration, session
// login/logout, and article CRUD plus search. Handlers translate HTTP
// requests into auth and blog service calls and map domain errors to
// status codes.
package web
