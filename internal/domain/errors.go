package domain

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrNotFound indicates the requested entity was not found.
	ErrNotFound = errors.New("not found")

	// ErrNotHourlyBillable indicates a quote was submitted for a product
	// that is not hourly-billed or has no usable hourly rate.
	ErrNotHourlyBillable = errors.New("product is not billable by the hour")

	// ErrPersistence indicates a store write could not be completed; the
	// previously persisted state remains active.
	ErrPersistence = errors.New("persistence failure")

	// ErrQuantityLocked indicates an attempt to change the quantity of an
	// hourly line directly; quantity is derived from hours.
	ErrQuantityLocked = errors.New("quantity is derived from hours")
)

// FieldError is one offending field in a submission or schema save.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError carries every field problem found in one pass so the
// caller can report all of them at once.
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	names := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		names = append(names, f.Field)
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(names, ", "))
}

// Add appends a field problem.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// Any reports whether any problem was collected.
func (e *ValidationError) Any() bool {
	return len(e.Fields) > 0
}

// CartRejectedError wraps a Cart Store refusal to append a line. It is
// surfaced verbatim to the user and never retried.
type CartRejectedError struct {
	Cause error
}

func (e *CartRejectedError) Error() string {
	return fmt.Sprintf("cart rejected line item: %v", e.Cause)
}

func (e *CartRejectedError) Unwrap() error {
	return e.Cause
}

// InvalidHourlyConfigError is raised by the reconciler when an hourly
// line's product has a missing or non-positive rate at recompute time.
// The affected lines keep their last valid price and quantity; checkout
// is blocked instead of charging zero.
type InvalidHourlyConfigError struct {
	ProductIDs []string
}

func (e *InvalidHourlyConfigError) Error() string {
	return fmt.Sprintf("hourly rate missing or invalid for products: %s", strings.Join(e.ProductIDs, ", "))
}
