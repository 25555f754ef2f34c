// Package apperr defines the error taxonomy shared by the card core and
// its API/MCP surfaces.
package apperr

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound signals a missing resource (example, history row).
	ErrNotFound = errors.New("not found")
	// ErrNoCard signals that an operation needs a current card and none is loaded.
	ErrNoCard = errors.New("no card loaded")
	// ErrCancelled signals a deliberately stopped in-flight operation.
	// It is not a failure: callers must not surface it as an error to users.
	ErrCancelled = errors.New("cancelled")
	// ErrDecodeFailed covers every malformed-share-token condition:
	// bad encoding, bad JSON, wrong shape, wrong field types.
	ErrDecodeFailed = errors.New("share token decode failed")
	// ErrURLTooLong signals that an encoded share URL exceeds the length budget.
	ErrURLTooLong = errors.New("share URL exceeds length budget")
)

// ValidationError is a field-attributed, recoverable input error.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// InsufficientTermsError reports that fewer usable terms were supplied
// than a 5x5 card needs. Callers may treat it like any ValidationError,
// or use the counts for a specific remaining-count message.
type InsufficientTermsError struct {
	Have int
	Need int
}

func (e *InsufficientTermsError) Error() string {
	return fmt.Sprintf("terms: %d usable terms supplied, need at least %d", e.Have, e.Need)
}

// RangeError reports a numeric argument outside its allowed bounds.
type RangeError struct {
	Name  string
	Value int
	Min   int
	Max   int
}

func (e *RangeError) Error() string {
	return fmt.Sprintf("%s: %d is outside [%d, %d]", e.Name, e.Value, e.Min, e.Max)
}

// IsValidation reports whether err is a validation-class error
// (field validation or insufficient terms).
func IsValidation(err error) bool {
	var ve *ValidationError
	var ie *InsufficientTermsError
	return errors.As(err, &ve) || errors.As(err, &ie)
}

// Field returns the field a validation-class error is attributed to,
// or "" when err carries no field attribution.
func Field(err error) string {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Field
	}
	var ie *InsufficientTermsError
	if errors.As(err, &ie) {
		return "terms"
	}
	return ""
}
