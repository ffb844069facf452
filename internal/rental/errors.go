// Package rental is the operation boundary of the system: it validates
// input before any store access, runs the store flows and converts
// store failures into reported outcomes. Zero-effect deletes and
// updates are counts, not errors.
package rental

import (
	"errors"
	"fmt"
)

// ValidationError marks input rejected before any statement was issued.
// The caller may retry with corrected input.
type ValidationError struct {
	Field string
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %v", e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// IntegrityGuardError marks an operation refused to protect a standing
// invariant. Permanent for that input; the store was never touched.
type IntegrityGuardError struct {
	Reason string
}

func (e *IntegrityGuardError) Error() string { return e.Reason }

// StoreError wraps a failure surfaced by the store. Any transaction the
// operation had opened was rolled back before this was returned.
type StoreError struct {
	Op  string
	Err error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error { return e.Err }

// ErrDefaultLocation rejects deleting the default location.
var ErrDefaultLocation = &IntegrityGuardError{Reason: "default location cannot be deleted"}

// IsValidation reports whether err was rejected before store access.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}
