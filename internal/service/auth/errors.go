package auth

import "errors"

// Token codec errors. The Token Guard treats all of them as "no identity".
var (
	// ErrInvalidToken indicates the token signature does not match or the
	// token was signed with an unexpected algorithm.
	ErrInvalidToken = errors.New("invalid authentication token")

	// ErrExpiredToken indicates the token expiry is not after the current time.
	ErrExpiredToken = errors.New("authentication token has expired")

	// ErrMalformedToken indicates the token cannot be parsed or lacks required claims.
	ErrMalformedToken = errors.New("malformed authentication token")
)
