// Package mocks provides testify mock implementations of the member use case interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	memberDomain "github.com/cube/simple/internal/member/domain"
)

// MockMemberUseCase is a mock implementation of MemberUseCase.
type MockMemberUseCase struct {
	mock.Mock
}

func (m *MockMemberUseCase) Create(
	ctx context.Context,
	input *memberDomain.CreateMemberInput,
) (*memberDomain.Member, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memberDomain.Member), args.Error(1)
}

func (m *MockMemberUseCase) Get(ctx context.Context, id string) (*memberDomain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memberDomain.Member), args.Error(1)
}

func (m *MockMemberUseCase) List(ctx context.Context, offset, limit int) ([]*memberDomain.Member, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*memberDomain.Member), args.Error(1)
}

func (m *MockMemberUseCase) Update(
	ctx context.Context,
	id string,
	input *memberDomain.UpdateMemberInput,
) (*memberDomain.Member, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memberDomain.Member), args.Error(1)
}

func (m *MockMemberUseCase) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockMemberUseCase) Authenticate(
	ctx context.Context,
	id, password string,
) (*memberDomain.Member, error) {
	args := m.Called(ctx, id, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memberDomain.Member), args.Error(1)
}

// MockMemberRepository is a mock implementation of MemberRepository.
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) Create(ctx context.Context, member *memberDomain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Get(ctx context.Context, id string) (*memberDomain.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*memberDomain.Member), args.Error(1)
}

func (m *MockMemberRepository) List(ctx context.Context, offset, limit int) ([]*memberDomain.Member, error) {
	args := m.Called(ctx, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*memberDomain.Member), args.Error(1)
}

func (m *MockMemberRepository) Update(ctx context.Context, member *memberDomain.Member) error {
	args := m.Called(ctx, member)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockTxManager runs the callback unless an error is configured.
type MockTxManager struct {
	mock.Mock
}

func (m *MockTxManager) WithTx(ctx context.Context, fn func(ctx context.Context) error) error {
	args := m.Called(ctx, fn)
	if args.Get(0) != nil {
		return args.Error(0)
	}
	return fn(ctx)
}
