package common

import "errors"

// Callers should match these with errors.Is; providers wrap them with the
// underlying cause.
var (
	// Credential store errors.
	ErrAlreadyExists    = errors.New("already exists")
	ErrBootstrapClosed  = errors.New("bootstrap closed")
	ErrStoreUnavailable = errors.New("store unavailable")

	// Authentication errors. These are terminal for the request and must not
	// be retried automatically.
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidSession     = errors.New("invalid session")
	ErrUnauthorized       = errors.New("unauthorized")

	// App registry errors.
	ErrRegistryUnavailable = errors.New("registry unavailable")
	ErrNotFound            = errors.New("not found")

	// Input validation.
	ErrValidation = errors.New("validation error")
)

// IsUnavailable reports whether err is a transient provider failure that the
// caller may retry.
func IsUnavailable(err error) bool {
	return errors.Is(err, ErrStoreUnavailable) || errors.Is(err, ErrRegistryUnavailable)
}

// IsAuthFailure reports whether err is one of the authentication failures that
// are shown to users as a generic "try again".
func IsAuthFailure(err error) bool {
	return errors.Is(err, ErrInvalidCredentials) ||
		errors.Is(err, ErrInvalidSession) ||
		errors.Is(err, ErrUnauthorized)
}
