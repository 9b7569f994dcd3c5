// Package common defines shared constants and sentinel errors used across
// the service layers. Callers should use errors.Is / errors.As to match them.
package common

import (
	"errors"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound      = errors.New("not found")
	ErrStore           = errors.New("store error")
	ErrCorruptRecord   = errors.New("corrupt record")
	ErrVersionConflict = errors.New("version conflict")

	// Service-level errors.
	ErrorInternal   = errors.New("internal error")
	ErrorValidation = errors.New("validation error")
)

// ValidationError carries every violation found in a single validation pass.
type ValidationError struct {
	Messages []string
}

func NewValidationError(messages ...string) *ValidationError {
	return &ValidationError{Messages: messages}
}

func (e *ValidationError) Add(msg string) {
	e.Messages = append(e.Messages, msg)
}

// Err returns nil when no message was collected.
func (e *ValidationError) Err() error {
	if e == nil || len(e.Messages) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	return "validation error: " + strings.Join(e.Messages, "; ")
}

func (e *ValidationError) Unwrap() error {
	return ErrorValidation
}
