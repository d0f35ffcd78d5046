package dto

import (
	"time"

	authDomain "github.com/cube/simple/internal/auth/domain"
)

// TokenResponse is returned by login and refresh.
type TokenResponse struct {
	TokenType        string    `json:"token_type"`
	AccessToken      string    `json:"access_token"`
	ExpiresAt        time.Time `json:"expires_at"`
	RefreshToken     string    `json:"refresh_token"`
	RefreshExpiresAt time.Time `json:"refresh_expires_at"`
}

// MapTokenPairToResponse converts a token pair into the API response.
func MapTokenPairToResponse(pair *authDomain.TokenPair) TokenResponse {
	return TokenResponse{
		TokenType:        "Bearer",
		AccessToken:      pair.AccessToken.Token,
		ExpiresAt:        pair.AccessToken.ExpiresAt,
		RefreshToken:     pair.RefreshToken.Token,
		RefreshExpiresAt: pair.RefreshToken.ExpiresAt,
	}
}

// PrincipalResponse describes the caller's identity.
type PrincipalResponse struct {
	ID   string `json:"id"`
	Role string `json:"role"`
}

// MapPrincipalToResponse converts a principal into the API response.
func MapPrincipalToResponse(principal *authDomain.Principal) PrincipalResponse {
	return PrincipalResponse{
		ID:   principal.Subject,
		Role: principal.Role.String(),
	}
}
