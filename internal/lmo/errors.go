package lmo

import (
	"errors"
	"fmt"
)

// Error taxonomy shared by the decoder, encoder, and repository layers.
// Handlers map these to HTTP statuses; everything else wraps with %w.

// NotFoundError reports a missing league file or database row.
type NotFoundError struct {
	What string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("not found: %s", e.What)
}

// FormatError reports input that cannot be parsed as the sectioned
// key/value structure, including non-numeric required fields.
type FormatError struct {
	Line int
	Msg  string
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("format error at line %d: %s", e.Line, e.Msg)
	}
	return fmt.Sprintf("format error: %s", e.Msg)
}

// ValidationError reports structurally valid input with illegal content,
// e.g. a negative team index or a correction for an unknown team.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s", e.Msg)
}

// IOError wraps an underlying storage failure.
type IOError struct {
	Op  string
	Err error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *IOError) Unwrap() error { return e.Err }

// IsNotFound reports whether err is a NotFoundError anywhere in its chain.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsFormat reports whether err is a FormatError anywhere in its chain.
func IsFormat(err error) bool {
	var fe *FormatError
	return errors.As(err, &fe)
}

// IsValidation reports whether err is a ValidationError anywhere in its chain.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
