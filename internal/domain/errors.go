package domain

import "errors"

// ─── Sentinel Errors ────────────────────────────────────────────────────────
// Domain errors are pure — no infrastructure dependency. Each maps to a
// fixed user-visible message at the API/CLI edge.

var (
	// License errors
	ErrInvalidKey      = errors.New("invalid password or license key")
	ErrKeyAlreadyBound = errors.New("password already used on another device")
	ErrLocked          = errors.New("milk diary is locked")

	// Ledger errors
	ErrNoDateSelected = errors.New("no date selected")

	// Bill errors
	ErrMissingRangeBounds = errors.New("bill range requires both dates")
	ErrInvalidRange       = errors.New("bill range ends before it starts")
)
