package usecase

import (
	"context"
	"time"

	authDomain "github.com/cube/simple/internal/auth/domain"
	"github.com/cube/simple/internal/metrics"
)

// loginUseCaseWithMetrics decorates LoginUseCase with metrics instrumentation.
type loginUseCaseWithMetrics struct {
	next    LoginUseCase
	metrics metrics.BusinessMetrics
}

// NewLoginUseCaseWithMetrics wraps a LoginUseCase with metrics recording.
func NewLoginUseCaseWithMetrics(useCase LoginUseCase, m metrics.BusinessMetrics) LoginUseCase {
	return &loginUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

// Login records metrics for login operations.
func (l *loginUseCaseWithMetrics) Login(ctx context.Context, id, password string) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := l.next.Login(ctx, id, password)

	status := metrics.OperationStatus(err)

	l.metrics.RecordOperation(ctx, "auth", "login", status)
	l.metrics.RecordDuration(ctx, "auth", "login", time.Since(start), status)

	return pair, err
}

// Refresh records metrics for token refresh operations.
func (l *loginUseCaseWithMetrics) Refresh(ctx context.Context, refreshToken string) (*authDomain.TokenPair, error) {
	start := time.Now()
	pair, err := l.next.Refresh(ctx, refreshToken)

	status := metrics.OperationStatus(err)

	l.metrics.RecordOperation(ctx, "auth", "token_refresh", status)
	l.metrics.RecordDuration(ctx, "auth", "token_refresh", time.Since(start), status)

	return pair, err
}
