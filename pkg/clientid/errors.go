package clientid

import "errors"

var (
	// ErrMissingClientID is returned when no identity can be established
	// for the request and policy forbids minting one: either the manager
	// trusts a third-party issuer, or post-only minting is enabled and
	// the request is not a POST.
	ErrMissingClientID = errors.New("clientid.missing_identity")

	// ErrInvalidCookieName is returned when a configured cookie name
	// contains characters outside [0-9A-Za-z_].
	ErrInvalidCookieName = errors.New("clientid.invalid_cookie_name")

	// ErrTokenGeneration is returned when the system entropy source
	// fails while minting a token.
	ErrTokenGeneration = errors.New("clientid.token_generation_failed")

	// ErrKeyDerivation is returned when the signing key cannot be
	// derived from the configured secret.
	ErrKeyDerivation = errors.New("clientid.key_derivation_failed")
)
