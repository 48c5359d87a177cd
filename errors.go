package relief

import (
	"errors"
	"fmt"
)

// Sentinel errors for common failure scenarios.
var (
	// General errors
	ErrNotFound      = errors.New("relief: not found")
	ErrAlreadyExists = errors.New("relief: already exists")
	ErrInvalidInput  = errors.New("relief: invalid input")

	// Person errors
	ErrPersonNotFound    = errors.New("relief: person not found")
	ErrDuplicateIdentity = errors.New("relief: person already registered")
	ErrLoginFailed       = errors.New("relief: login failed")

	// Supply ledger errors
	ErrNoSupplyRecord     = errors.New("relief: no supply record for location and year")
	ErrInsufficientSupply = errors.New("relief: insufficient supply")

	// Notification errors
	ErrSinkUnavailable = errors.New("relief: notification sink unavailable")

	// Store errors
	ErrStoreNotReady     = errors.New("relief: store not ready")
	ErrStoreClosed       = errors.New("relief: store is closed")
	ErrStoreUnavailable  = errors.New("relief: store unavailable")
	ErrTransactionFailed = errors.New("relief: transaction failed")
	ErrMigrationFailed   = errors.New("relief: migration failed")
)

// ValidationError represents a validation failure with details.
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("relief: validation failed for %s: %s", e.Field, e.Message)
}

// Unwrap lets errors.Is recognize every validation failure as ErrInvalidInput.
func (e ValidationError) Unwrap() error { return ErrInvalidInput }

// InsufficientSupplyError carries the available and requested amounts of a
// rejected consume. It unwraps to ErrInsufficientSupply.
type InsufficientSupplyError struct {
	Location      string
	Year          int
	AvailableFood int64
	AvailableMed  int64
	Food          int64
	Med           int64
}

func (e InsufficientSupplyError) Error() string {
	return fmt.Sprintf("relief: insufficient supply at %s for %d: available %d food, %d medical; requested %d food, %d medical",
		e.Location, e.Year, e.AvailableFood, e.AvailableMed, e.Food, e.Med)
}

func (e InsufficientSupplyError) Unwrap() error { return ErrInsufficientSupply }

// MultiError represents multiple errors that occurred.
type MultiError struct {
	Errors []error
}

func (e MultiError) Error() string {
	if len(e.Errors) == 0 {
		return "relief: no errors"
	}
	if len(e.Errors) == 1 {
		return e.Errors[0].Error()
	}
	return fmt.Sprintf("relief: %d errors occurred", len(e.Errors))
}

// Add adds an error to the multi-error.
func (e *MultiError) Add(err error) {
	if err != nil {
		e.Errors = append(e.Errors, err)
	}
}

// HasErrors returns true if there are any errors.
func (e MultiError) HasErrors() bool {
	return len(e.Errors) > 0
}

// First returns the first error or nil.
func (e MultiError) First() error {
	if len(e.Errors) > 0 {
		return e.Errors[0]
	}
	return nil
}

// IsNotFound returns true if the error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound) ||
		errors.Is(err, ErrPersonNotFound) ||
		errors.Is(err, ErrNoSupplyRecord)
}

// IsSupplyError returns true if the error is a supply ledger rejection.
func IsSupplyError(err error) bool {
	return errors.Is(err, ErrNoSupplyRecord) ||
		errors.Is(err, ErrInsufficientSupply)
}

// IsRetryable returns true if the error is temporary and the operation can be retried.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStoreNotReady) ||
		errors.Is(err, ErrStoreUnavailable) ||
		errors.Is(err, ErrTransactionFailed) ||
		errors.Is(err, ErrSinkUnavailable)
}
