package models

import "errors"

// Failure taxonomy for the record stores and the sync engine.
// Lookup misses are not errors: adapters return nil for a missing record.
var (
	// ErrValidation marks a payload that must not reach either store.
	ErrValidation = errors.New("validation failed")

	// ErrStorage wraps faults from the backing key-value store.
	ErrStorage = errors.New("storage failure")

	// ErrIdentityCollision is returned when two distinct accounts normalize
	// to the same detail-record key.
	ErrIdentityCollision = errors.New("identity collision")
)
