package usecase

import (
	"context"
	"time"

	memberDomain "github.com/cube/simple/internal/member/domain"
	"github.com/cube/simple/internal/metrics"
)

// memberUseCaseWithMetrics decorates MemberUseCase with metrics instrumentation.
type memberUseCaseWithMetrics struct {
	next    MemberUseCase
	metrics metrics.BusinessMetrics
}

// NewMemberUseCaseWithMetrics wraps a MemberUseCase with metrics recording.
func NewMemberUseCaseWithMetrics(useCase MemberUseCase, m metrics.BusinessMetrics) MemberUseCase {
	return &memberUseCaseWithMetrics{
		next:    useCase,
		metrics: m,
	}
}

func (u *memberUseCaseWithMetrics) record(ctx context.Context, operation string, start time.Time, err error) {
	status := metrics.OperationStatus(err)

	u.metrics.RecordOperation(ctx, "member", operation, status)
	u.metrics.RecordDuration(ctx, "member", operation, time.Since(start), status)
}

// Create records metrics for member creation operations.
func (u *memberUseCaseWithMetrics) Create(
	ctx context.Context,
	input *memberDomain.CreateMemberInput,
) (*memberDomain.Member, error) {
	start := time.Now()
	member, err := u.next.Create(ctx, input)
	u.record(ctx, "member_create", start, err)
	return member, err
}

// Get records metrics for member retrieval operations.
func (u *memberUseCaseWithMetrics) Get(ctx context.Context, id string) (*memberDomain.Member, error) {
	start := time.Now()
	member, err := u.next.Get(ctx, id)
	u.record(ctx, "member_get", start, err)
	return member, err
}

// List records metrics for member list operations.
func (u *memberUseCaseWithMetrics) List(ctx context.Context, offset, limit int) ([]*memberDomain.Member, error) {
	start := time.Now()
	members, err := u.next.List(ctx, offset, limit)
	u.record(ctx, "member_list", start, err)
	return members, err
}

// Update records metrics for member update operations.
func (u *memberUseCaseWithMetrics) Update(
	ctx context.Context,
	id string,
	input *memberDomain.UpdateMemberInput,
) (*memberDomain.Member, error) {
	start := time.Now()
	member, err := u.next.Update(ctx, id, input)
	u.record(ctx, "member_update", start, err)
	return member, err
}

// Delete records metrics for member deletion operations.
func (u *memberUseCaseWithMetrics) Delete(ctx context.Context, id string) error {
	start := time.Now()
	err := u.next.Delete(ctx, id)
	u.record(ctx, "member_delete", start, err)
	return err
}

// Authenticate records metrics for credential checks.
func (u *memberUseCaseWithMetrics) Authenticate(
	ctx context.Context,
	id, password string,
) (*memberDomain.Member, error) {
	start := time.Now()
	member, err := u.next.Authenticate(ctx, id, password)
	u.record(ctx, "member_authenticate", start, err)
	return member, err
}
