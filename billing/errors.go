package billing

import (
	"errors"
	"fmt"
)

// Sentinel errors let callers handle specific business failures
// programmatically.
var (
	// ErrNoLineItems blocks submission of a bill with no billable items left
	// after the save-eligibility filter.
	ErrNoLineItems = errors.New("transaction must contain at least one billable line item")

	// ErrMissingTransactionNo blocks submission without an effective number.
	ErrMissingTransactionNo = errors.New("transaction number is required")

	// ErrInvalidQuantity blocks submission of a line with non-positive quantity.
	ErrInvalidQuantity = errors.New("line item quantity must be greater than zero")

	// ErrNegativePrice blocks submission of a line with a negative price.
	ErrNegativePrice = errors.New("line item price cannot be negative")

	// ErrSaveInFlight is returned when a submission arrives while another save
	// for the same draft is still in flight.
	ErrSaveInFlight = errors.New("a save is already in progress")

	// ErrNumberConfirmed rejects edits to a server-confirmed transaction number.
	ErrNumberConfirmed = errors.New("transaction number is confirmed and can no longer be edited")

	// ErrItemNotFound is returned for operations on an unknown line-item id.
	ErrItemNotFound = errors.New("line item not found")

	// ErrUnknownAction is returned for an unrecognized fulfillment or save action.
	ErrUnknownAction = errors.New("unknown action")
)

// ValidationError wraps a sentinel error with human-readable details. A
// validation failure always blocks submission before any network call.
type ValidationError struct {
	Err     error
	Details string
}

func (e *ValidationError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Err.Error(), e.Details)
	}
	return e.Err.Error()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
