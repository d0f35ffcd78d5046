// Package usecase defines the login and refresh flows that turn member
// credentials into bearer tokens.
package usecase

import (
	"context"

	authDomain "github.com/cube/simple/internal/auth/domain"
	memberDomain "github.com/cube/simple/internal/member/domain"
)

// MemberAuthenticator is the subset of the member use case needed to log in.
type MemberAuthenticator interface {
	// Authenticate returns the member when password matches the stored hash.
	// Returns authDomain.ErrInvalidCredentials otherwise.
	Authenticate(ctx context.Context, id, password string) (*memberDomain.Member, error)

	// Get loads a member. Used on refresh to pick up role changes.
	Get(ctx context.Context, id string) (*memberDomain.Member, error)
}

// LoginUseCase issues token pairs.
type LoginUseCase interface {
	// Login checks the credentials and issues an access and a refresh token.
	// Unknown ids and wrong passwords both return authDomain.ErrInvalidCredentials.
	Login(ctx context.Context, id, password string) (*authDomain.TokenPair, error)

	// Refresh exchanges a valid refresh token for a new pair. The role is reloaded
	// from the member store so demotions take effect at the next refresh.
	//
	// An access token presented here is rejected with authDomain.ErrSignatureInvalid.
	Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error)
}
