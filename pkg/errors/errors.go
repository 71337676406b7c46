package errors

import "errors"

// Sentinel errors for conditions that carry no extra context.
var (
	ErrInvalidRequest = errors.New("invalid request")
	ErrNotFound       = errors.New("resource not found")
	ErrUnauthorized   = errors.New("unauthorized access")
	ErrSessionRevoked = errors.New("session has been revoked")
	ErrSessionExpired = errors.New("session has expired")
)

// Is and As re-export the standard helpers so callers need a single import.
var (
	Is = errors.Is
	As = errors.As
)
