// Package common defines shared constants and sentinel errors used across
// the TextMatch client layers. Callers should use errors.Is to match these
// values.
package common

import "errors"

var (
	// Validation errors, raised before any network call.
	ErrEmptyField      = errors.New("required field is empty")
	ErrContentTooLong  = errors.New("content exceeds maximum length")
	ErrPasswordTooWeak = errors.New("password does not meet the strength policy")

	// Service-level errors.
	ErrNotLoggedIn = errors.New("not logged in")
)
