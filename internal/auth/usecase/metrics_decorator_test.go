package usecase_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	authDomain "github.com/cube/simple/internal/auth/domain"
	"github.com/cube/simple/internal/auth/usecase"
	usecaseMocks "github.com/cube/simple/internal/auth/usecase/mocks"
)

type recordedOp struct {
	domain, operation, status string
	timed                     bool
}

// recordingMetrics keeps every call so a test can compare them as a list.
type recordingMetrics struct {
	mu  sync.Mutex
	ops []recordedOp
}

func (r *recordingMetrics) RecordOperation(_ context.Context, domain, operation, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, recordedOp{domain: domain, operation: operation, status: status})
}

func (r *recordingMetrics) RecordDuration(_ context.Context, domain, operation string, d time.Duration, status string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.ops = append(r.ops, recordedOp{domain: domain, operation: operation, status: status, timed: d >= 0})
}

func TestLoginUseCaseWithMetrics(t *testing.T) {
	ctx := context.Background()
	pair := &authDomain.TokenPair{}

	tests := []struct {
		name      string
		setup     func(m *usecaseMocks.MockLoginUseCase)
		call      func(uc usecase.LoginUseCase) (*authDomain.TokenPair, error)
		operation string
		status    string
		wantErr   error
	}{
		{
			name: "login success",
			setup: func(m *usecaseMocks.MockLoginUseCase) {
				m.On("Login", ctx, "alice", "pw").Return(pair, nil).Once()
			},
			call:      func(uc usecase.LoginUseCase) (*authDomain.TokenPair, error) { return uc.Login(ctx, "alice", "pw") },
			operation: "login",
			status:    "success",
		},
		{
			name: "login bad credentials",
			setup: func(m *usecaseMocks.MockLoginUseCase) {
				m.On("Login", ctx, "alice", "nope").Return(nil, authDomain.ErrInvalidCredentials).Once()
			},
			call:      func(uc usecase.LoginUseCase) (*authDomain.TokenPair, error) { return uc.Login(ctx, "alice", "nope") },
			operation: "login",
			status:    "error",
			wantErr:   authDomain.ErrInvalidCredentials,
		},
		{
			name: "refresh expired",
			setup: func(m *usecaseMocks.MockLoginUseCase) {
				m.On("Refresh", ctx, "tok").Return(nil, authDomain.ErrTokenExpired).Once()
			},
			call:      func(uc usecase.LoginUseCase) (*authDomain.TokenPair, error) { return uc.Refresh(ctx, "tok") },
			operation: "token_refresh",
			status:    "error",
			wantErr:   authDomain.ErrTokenExpired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := &usecaseMocks.MockLoginUseCase{}
			tt.setup(next)
			recorder := &recordingMetrics{}

			got, err := tt.call(usecase.NewLoginUseCaseWithMetrics(next, recorder))

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
			} else {
				require.NoError(t, err)
				assert.Same(t, pair, got)
			}
			assert.Equal(t, []recordedOp{
				{domain: "auth", operation: tt.operation, status: tt.status},
				{domain: "auth", operation: tt.operation, status: tt.status, timed: true},
			}, recorder.ops)
			next.AssertExpectations(t)
		})
	}
}
