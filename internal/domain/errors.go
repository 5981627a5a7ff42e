package domain

import "errors"

// Sentinel errors for domain-level error discrimination.
// Services wrap these so handlers can map to HTTP status codes without leaking infrastructure details.
var (
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrBadRequest   = errors.New("bad request")

	// ErrInvalidToken marks a JWT that is malformed or fails signature verification.
	ErrInvalidToken = errors.New("invalid token")

	// ErrStorage marks a failed OTP storage operation. The OTP table keys by
	// email, so a failed write leaves the prior record intact — no partial state.
	ErrStorage = errors.New("storage failure")

	// ErrDelivery marks a notifier failure after the OTP was already committed.
	// The persisted code stays valid; callers must not treat this as a rollback.
	ErrDelivery = errors.New("delivery failure")
)
