package repository

import "errors"

// Failure kinds raised by repositories, checked with errors.Is(). The service
// and controller layers branch on these; everything else they treat as an
// unexpected storage failure.
var (
	// ErrNotFound is returned when the referenced entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrInvalidArgument is returned for malformed or out-of-range input
	// before any storage is touched.
	ErrInvalidArgument = errors.New("invalid argument")

	// ErrStorage wraps any unexpected failure from the persistence provider.
	// The original cause stays in the chain for diagnostics.
	ErrStorage = errors.New("storage failure")
)
