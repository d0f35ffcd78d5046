package usecase

import (
	"context"
	"fmt"

	authDomain "github.com/cube/simple/internal/auth/domain"
	authService "github.com/cube/simple/internal/auth/service"
	apperrors "github.com/cube/simple/internal/errors"
	memberDomain "github.com/cube/simple/internal/member/domain"
)

type loginUseCase struct {
	members      MemberAuthenticator
	tokenService authService.TokenService
}

// NewLoginUseCase creates a LoginUseCase.
func NewLoginUseCase(members MemberAuthenticator, tokenService authService.TokenService) LoginUseCase {
	return &loginUseCase{
		members:      members,
		tokenService: tokenService,
	}
}

func (l *loginUseCase) Login(ctx context.Context, id, password string) (*authDomain.TokenPair, error) {
	member, err := l.members.Authenticate(ctx, id, password)
	if err != nil {
		return nil, err
	}
	return l.issuePair(member.ID, member.Role)
}

func (l *loginUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	claims, err := l.tokenService.Verify(refreshToken)
	if err != nil {
		return nil, err
	}
	if claims.Type != authDomain.TokenTypeRefresh {
		return nil, fmt.Errorf("%w: %s token used as refresh token", authDomain.ErrSignatureInvalid, claims.Type)
	}

	member, err := l.members.Get(ctx, claims.Subject)
	if err != nil {
		if apperrors.Is(err, memberDomain.ErrMemberNotFound) {
			return nil, authDomain.ErrInvalidCredentials
		}
		return nil, err
	}
	return l.issuePair(member.ID, member.Role)
}

func (l *loginUseCase) issuePair(subject string, role authDomain.Role) (*authDomain.TokenPair, error) {
	access, err := l.tokenService.IssueAccessToken(subject, role)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue access token")
	}
	refresh, err := l.tokenService.IssueRefreshToken(subject, role)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to issue refresh token")
	}
	return &authDomain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
