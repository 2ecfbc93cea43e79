package services

import "errors"

// Recoverable auth failures surfaced to the caller with a safe message.
// Anything else bubbles up to the boundary error handler as a 500.
var (
	ErrCredentialsInvalid    = errors.New("invalid username or password")
	ErrRegistrationInvalid   = errors.New("login and email required, password must be at least 8 characters")
	ErrTokenMissing          = errors.New("missing access token")
	ErrTokenExpired          = errors.New("access token expired")
	ErrTokenInvalidSignature = errors.New("invalid token signature")
	ErrTokenInvalid          = errors.New("invalid or expired refresh token")
	ErrFederationUnverified  = errors.New("federated identity could not be verified")
	ErrMaintenanceActive     = errors.New("maintenance in progress")
)
