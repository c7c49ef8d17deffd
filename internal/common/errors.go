// Package common defines shared constants and sentinel errors used across
// client and server layers of Pustaka. Callers should use errors.Is to
// match these values.
package common

import "errors"

var (
	// Repository-level errors.
	ErrNotFound           = errors.New("not found")
	ErrStorageUnavailable = errors.New("local storage unavailable")

	// Remote read errors. Both mean "remote unavailable" to callers.
	ErrNetwork = errors.New("remote unreachable")
	ErrFormat  = errors.New("unexpected remote response format")

	// File encoding errors (attachment could not be read or decoded).
	ErrEncoding = errors.New("encoding error")

	// Delete-gate error (admin secret mismatch).
	ErrUnauthorized = errors.New("unauthorized")
)
