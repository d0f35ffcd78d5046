package domain

import (
	"github.com/cube/simple/internal/errors"
)

// Authentication and authorization errors.
var (
	// ErrTokenExpired indicates a token with a valid signature whose exp has passed.
	ErrTokenExpired = errors.Wrap(errors.ErrUnauthorized, "token expired")

	// ErrSignatureInvalid indicates a token that is malformed, tampered with or
	// signed with another secret.
	ErrSignatureInvalid = errors.Wrap(errors.ErrUnauthorized, "token signature invalid")

	// ErrUnauthenticated indicates a protected route was requested without a valid token.
	ErrUnauthenticated = errors.Wrap(errors.ErrUnauthorized, "authentication required")

	// ErrInvalidCredentials indicates a failed login.
	ErrInvalidCredentials = errors.Wrap(errors.ErrUnauthorized, "invalid credentials")

	// ErrAccessDenied indicates the principal's role does not satisfy the route policy.
	ErrAccessDenied = errors.Wrap(errors.ErrForbidden, "access denied")
)

// IsTokenExpired reports whether err is a token expiry.
func IsTokenExpired(err error) bool {
	return errors.Is(err, ErrTokenExpired)
}

// IsTokenError reports whether err comes from token verification.
func IsTokenError(err error) bool {
	return errors.Is(err, ErrTokenExpired) || errors.Is(err, ErrSignatureInvalid)
}
