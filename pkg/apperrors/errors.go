package apperrors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("not found")
	ErrParse         = errors.New("parse error")
	ErrConfiguration = errors.New("configuration error")
	ErrInvalidState  = errors.New("invalid state transition")
	ErrValidation    = errors.New("validation error")
)

// ValidationError reports rejected input with the offending field. Unwraps to
// ErrValidation.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("field %s: %s", e.Field, e.Reason)
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// NewValidation creates a ValidationError for the given field.
func NewValidation(field, reason string) error {
	return &ValidationError{Field: field, Reason: reason}
}

// NotFoundError identifies which lookup failed (SME, sector, region, supplier)
// and the key that was missing. Unwraps to ErrNotFound.
type NotFoundError struct {
	Kind string
	Key  string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.Key)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// NewNotFound creates a NotFoundError for the given entity kind and key.
func NewNotFound(kind, key string) error {
	return &NotFoundError{Kind: kind, Key: key}
}

// ParseError reports a unit-suffixed measurement that failed to parse as a
// number after suffix stripping. A missing value is never a ParseError; only
// malformed non-empty input is. Unwraps to ErrParse.
type ParseError struct {
	Field string
	Raw   string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("field %s: cannot parse %q as a numeric measurement", e.Field, e.Raw)
}

func (e *ParseError) Unwrap() error { return ErrParse }

// NewParse creates a ParseError for the given field and raw value.
func NewParse(field, raw string) error {
	return &ParseError{Field: field, Raw: raw}
}
