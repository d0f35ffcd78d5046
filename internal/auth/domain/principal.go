package domain

import "time"

// Principal is the authenticated identity attached to a request.
type Principal struct {
	Subject string
	Role    Role
}

// IsAdmin reports whether the principal holds the ADMIN role.
func (p *Principal) IsAdmin() bool {
	return p != nil && p.Role == RoleAdmin
}

// Claims is the verified content of a bearer token.
type Claims struct {
	ID        string
	Subject   string
	Role      Role
	Type      TokenType
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// Principal returns the request identity described by the claims.
func (c *Claims) Principal() *Principal {
	return &Principal{Subject: c.Subject, Role: c.Role}
}

// IssuedToken is a freshly signed token with its expiry.
type IssuedToken struct {
	Token     string
	Type      TokenType
	ExpiresAt time.Time
}

// TokenPair is the result of a login or refresh.
type TokenPair struct {
	AccessToken  *IssuedToken
	RefreshToken *IssuedToken
}
