package models

import "errors"

// Error taxonomy shared by every service. Callers match with errors.Is; the
// services wrap these with context via fmt.Errorf("...: %w", ...).
var (
	// ErrNotFound means a referenced order or user record is absent.
	ErrNotFound = errors.New("record not found")

	// ErrSelfTrade means a buyer attempted to order from themselves.
	ErrSelfTrade = errors.New("buyer and seller are the same user")

	// ErrConflict means the optimistic-concurrency retry budget was
	// exhausted without a clean write.
	ErrConflict = errors.New("concurrent modification, retries exhausted")

	// ErrValidation means the input is malformed (rating out of range,
	// missing address fields for the chosen delivery option).
	ErrValidation = errors.New("invalid input")
)
