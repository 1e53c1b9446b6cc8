package partyservice

import "errors"

var (
	// ErrInvalidCredentials is returned when display name or PIN do not match.
	ErrInvalidCredentials = errors.New("invalid display name or PIN")

	// ErrGuestNotApproved is returned when authenticating a guest the admin
	// has not approved yet.
	ErrGuestNotApproved = errors.New("guest is not approved")

	// ErrTooManyAttempts is returned when the per-guest PIN rate limit trips.
	ErrTooManyAttempts = errors.New("too many PIN attempts, slow down")

	// ErrInvalidPIN is returned for PINs that are not exactly four digits.
	ErrInvalidPIN = errors.New("PIN must be exactly four digits")

	// ErrInvalidName is returned for empty display names.
	ErrInvalidName = errors.New("display name is required")
)
