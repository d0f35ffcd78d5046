// Package service provides technical services for authentication operations.
//
// TokenService issues and verifies stateless HMAC-SHA256 bearer tokens. Tokens
// expire by time only; there is no revocation list.
package service

import (
	"time"

	authDomain "github.com/cube/simple/internal/auth/domain"
)

// TokenService defines operations for bearer token issuance and verification.
// Implementations are immutable after construction and safe for concurrent use.
type TokenService interface {
	// Issue signs an access token for subject and role valid for ttl.
	// A non-positive ttl produces a token that is already expired.
	Issue(subject string, role authDomain.Role, ttl time.Duration) (string, error)

	// IssueAccessToken signs an access token with the configured access TTL.
	IssueAccessToken(subject string, role authDomain.Role) (*authDomain.IssuedToken, error)

	// IssueRefreshToken signs a refresh token with the configured refresh TTL.
	IssueRefreshToken(subject string, role authDomain.Role) (*authDomain.IssuedToken, error)

	// Verify checks the signature first and the expiry second.
	//
	// Returns authDomain.ErrTokenExpired when the signature is valid but exp is not
	// after the current time, and authDomain.ErrSignatureInvalid for every other
	// failure (malformed, tampered, wrong secret, unexpected algorithm).
	Verify(token string) (*authDomain.Claims, error)
}
