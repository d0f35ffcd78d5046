// Package mocks provides testify mock implementations of the auth use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	authDomain "github.com/cube/simple/internal/auth/domain"
	memberDomain "github.com/cube/simple/internal/member/domain"
)

// MockLoginUseCase is a mock implementation of LoginUseCase.
type MockLoginUseCase struct {
	mock.Mock
}

func (m *MockLoginUseCase) Login(ctx context.Context, id, password string) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, id, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

func (m *MockLoginUseCase) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	args := m.Called(ctx, refreshToken)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*authDomain.TokenPair), args.Error(1)
}

// MockMemberAuthenticator is a mock implementation of MemberAuthenticator.
type MockMemberAuthenticator struct {
	mock.Mock
}

func (m *MockMemberAuthenticator) Authenticate(
	ctx context.Context,
	id, password string,
) (*memberDomain.Member, error) {
	args := m.Called(ctx, id, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memberDomain.Member), args.Error(1)
}

func (m *MockMemberAuthenticator) Get(ctx context.Context, id string) (*memberDomain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memberDomain.Member), args.Error(1)
}
