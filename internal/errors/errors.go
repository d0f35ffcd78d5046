// Package errors defines the error kinds shared by every layer. Domain packages
// derive their errors from these kinds with Wrap, and the HTTP layer chooses a
// status code from the kind alone.
package errors

import (
	"errors"
	"fmt"
)

// Error kinds.
var (
	ErrNotFound        = errors.New("not found")
	ErrConflict        = errors.New("conflict")
	ErrInvalidInput    = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrForbidden       = errors.New("forbidden")
	ErrTooManyRequests = errors.New("too many requests")

	// ErrInternal covers failures the caller cannot fix, including bad key
	// material and failed decryption of stored data.
	ErrInternal = errors.New("internal error")
)

// kinds is ordered: authentication failures win over everything else so a
// request is never told more than that it is unauthenticated.
var kinds = []error{
	ErrUnauthorized,
	ErrForbidden,
	ErrNotFound,
	ErrConflict,
	ErrInvalidInput,
	ErrTooManyRequests,
	ErrInternal,
}

// Kind returns the error kind in err's chain, or ErrInternal when err carries
// none. Kind(nil) is nil.
func Kind(err error) error {
	if err == nil {
		return nil
	}
	for _, kind := range kinds {
		if errors.Is(err, kind) {
			return kind
		}
	}
	return ErrInternal
}

// Wrap prefixes err with message and keeps it in the chain. Wrap(nil, ...) is nil.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
