package graph

import (
	"errors"
	"fmt"
)

// Common sentinel errors for snapshot construction and query input.
var (
	ErrDuplicateAtomID    = errors.New("duplicate atom id")
	ErrEmptyAtomID        = errors.New("empty atom id")
	ErrUnknownComparator  = errors.New("unknown comparator")
	ErrInvalidPredicate   = errors.New("invalid predicate")
	ErrInvalidConfig      = errors.New("invalid configuration")
)

// ValidationError reports malformed input to a core operation. It carries the
// offending entity identifiers so callers can render an actionable message.
type ValidationError struct {
	Op     string // operation that rejected the input, e.g. "NewSnapshot"
	AtomID string // offending atom ID, if applicable
	Detail string // additional context
	Cause  error  // sentinel cause
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.AtomID != "" {
		return fmt.Sprintf("%s: atom %q: %v", e.Op, e.AtomID, e.Cause)
	}
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s: %v", e.Op, e.Detail, e.Cause)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Cause)
}

// Unwrap returns the underlying cause for error chain support.
func (e *ValidationError) Unwrap() error {
	return e.Cause
}
