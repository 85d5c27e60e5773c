package auth

import "errors"

// Error taxonomy surfaced by the credential store and token service. The HTTP
// layer maps every one of these to a generic 401 body; the distinctions exist
// for logging and tests, never for responses.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrMissingToken       = errors.New("missing token")
	ErrMalformedToken     = errors.New("malformed token")
	ErrInvalidSignature   = errors.New("invalid token signature")
	ErrTokenExpired       = errors.New("token expired")
)
