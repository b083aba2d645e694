// Package common provides shared utilities and types used across the application.
package common

import (
	"errors"
	"fmt"

	"github.com/tirtawidya/aruskas/internal/model"
)

// Common application errors.
var (
	// Configuration errors.
	ErrMissingConfig = errors.New("missing configuration")
	ErrInvalidConfig = errors.New("invalid configuration")

	// Reporting errors.
	ErrInvalidPolicy = errors.New("invalid fetch policy")
	ErrNoSources     = errors.New("no source repositories configured")
)

// SourceUnavailableError reports that one source subsystem could not deliver
// its records (timeout, unauthorized, server error). Under the best-effort
// policy the module is listed as failed; under all-or-nothing the error
// fails the whole aggregation.
type SourceUnavailableError struct {
	Err    error
	Module model.SourceModule
}

func (e *SourceUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("source %s unavailable: %v", e.Module, e.Err)
	}
	return fmt.Sprintf("source %s unavailable", e.Module)
}

func (e *SourceUnavailableError) Unwrap() error {
	return e.Err
}

// NewSourceUnavailable wraps a fetch failure with its originating module.
func NewSourceUnavailable(module model.SourceModule, err error) error {
	return &SourceUnavailableError{Module: module, Err: err}
}

// IsSourceUnavailable reports whether err is a source fetch failure and
// returns the failing module when it is.
func IsSourceUnavailable(err error) (model.SourceModule, bool) {
	var sourceErr *SourceUnavailableError
	if errors.As(err, &sourceErr) {
		return sourceErr.Module, true
	}
	return "", false
}

// UserError represents an error that should be shown to the user.
type UserError struct {
	Err         error
	UserMessage string
}

func (e *UserError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Err)
	}
	return e.UserMessage
}

func (e *UserError) Unwrap() error {
	return e.Err
}

// NewUserError creates a new user-friendly error.
func NewUserError(userMessage string, err error) error {
	return &UserError{
		UserMessage: userMessage,
		Err:         err,
	}
}
