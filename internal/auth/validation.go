// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Inkwell Contributors

package auth

import (
	"fmt"
	"net/mail"
	"strings"
)

// FieldError describes a single violated constraint on a named field.
type FieldError struct {
	Field   string
	Message string
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationError aggregates every constraint violated by one input.
// Callers get the full list in a single failure rather than the first
// violation only.
type ValidationError struct {
	Violations []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Violations))
	for i, v := range e.Violations {
		msgs[i] = v.Error()
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// RegisterInput carries the raw registration form fields.
type RegisterInput struct {
	Name     string
	Username string
	Email    string
	Password string
	Confirm  string
}

// Validate checks every field and returns a *ValidationError listing
// all violations, or nil when the input is well-formed.
func (in RegisterInput) Validate() error {
	var violations []FieldError

	if err := ValidateName(in.Name); err != nil {
		violations = append(violations, *err)
	}
	if err := ValidateUsername(in.Username); err != nil {
		violations = append(violations, *err)
	}
	if err := ValidateEmail(in.Email); err != nil {
		violations = append(violations, *err)
	}
	if in.Password == "" {
		violations = append(violations, FieldError{Field: "password", Message: "cannot be empty"})
	} else if in.Password != in.Confirm {
		violations = append(violations, FieldError{Field: "confirm", Message: "passwords do not match"})
	}

	if len(violations) > 0 {
		return &ValidationError{Violations: violations}
	}
	return nil
}

// ValidateName checks the display name length bounds.
func ValidateName(name string) *FieldError {
	if len(name) < MinNameLength {
		return &FieldError{Field: "name", Message: "cannot be empty"}
	}
	if len(name) > MaxNameLength {
		return &FieldError{Field: "name", Message: fmt.Sprintf("must be at most %d characters", MaxNameLength)}
	}
	return nil
}

// ValidateUsername checks the username length bounds.
func ValidateUsername(username string) *FieldError {
	if len(username) < MinUsernameLength {
		return &FieldError{Field: "username", Message: fmt.Sprintf("must be at least %d characters", MinUsernameLength)}
	}
	if len(username) > MaxUsernameLength {
		return &FieldError{Field: "username", Message: fmt.Sprintf("must be at most %d characters", MaxUsernameLength)}
	}
	return nil
}

// ValidateEmail checks that the address parses as RFC 5322. The parsed
// form must match the input exactly so display names and comments are
// rejected.
func ValidateEmail(email string) *FieldError {
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return &FieldError{Field: "email", Message: "invalid email address"}
	}
	return nil
}
