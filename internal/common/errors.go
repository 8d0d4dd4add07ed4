// Package common defines the sentinel errors shared by repositories, services
// and handlers. Callers should match them with errors.Is.
package common

import (
	"errors"
	"fmt"
)

var (
	// Lookup errors.
	ErrNotFound = errors.New("not found")

	// Authentication and authorization errors.
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// State conflicts. The specific errors below wrap ErrConflict.
	ErrConflict = errors.New("conflict")

	// Malformed input.
	ErrValidation = errors.New("validation failed")

	// Store-level duplicate key.
	ErrAlreadyExists = fmt.Errorf("%w: already exists", ErrConflict)
)

var (
	ErrAlreadyBookmarked  = fmt.Errorf("%w: idea already bookmarked", ErrConflict)
	ErrNotBookmarked      = fmt.Errorf("%w: idea not bookmarked", ErrConflict)
	ErrVoteConflict       = fmt.Errorf("%w: vote could not be cast", ErrConflict)
	ErrUsernameTaken      = fmt.Errorf("%w: username already exists", ErrConflict)
	ErrInvalidToken       = fmt.Errorf("%w: invalid token", ErrUnauthorized)
	ErrTokenExpired       = fmt.Errorf("%w: token expired", ErrUnauthorized)
	ErrInvalidCredentials = fmt.Errorf("%w: invalid username/password", ErrUnauthorized)
)
