package metrics

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Authentication outcomes recorded by the bearer token gate.
const (
	AuthOutcomeValid   = "valid"
	AuthOutcomeExpired = "expired"
	AuthOutcomeInvalid = "invalid"
	AuthOutcomeAbsent  = "absent"
)

// SecurityMetrics records decisions taken by the authentication and
// authorization middlewares.
type SecurityMetrics interface {
	// RecordAuthentication counts token verification outcomes.
	RecordAuthentication(ctx context.Context, outcome string)

	// RecordAuthorization counts route policy decisions ("allow", "unauthenticated", "forbidden").
	RecordAuthorization(ctx context.Context, decision string)
}

type securityMetrics struct {
	authnCounter metric.Int64Counter
	authzCounter metric.Int64Counter
}

// NewSecurityMetrics creates SecurityMetrics using the provided meter provider.
func NewSecurityMetrics(meterProvider metric.MeterProvider, namespace string) (SecurityMetrics, error) {
	meter := meterProvider.Meter(namespace)

	authnCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_authentication_total", namespace),
		metric.WithDescription("Total number of bearer token verifications by outcome"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create authentication counter: %w", err)
	}

	authzCounter, err := meter.Int64Counter(
		fmt.Sprintf("%s_authorization_decisions_total", namespace),
		metric.WithDescription("Total number of route policy decisions"),
		metric.WithUnit("{request}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create authorization counter: %w", err)
	}

	return &securityMetrics{
		authnCounter: authnCounter,
		authzCounter: authzCounter,
	}, nil
}

func (s *securityMetrics) RecordAuthentication(ctx context.Context, outcome string) {
	s.authnCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}

func (s *securityMetrics) RecordAuthorization(ctx context.Context, decision string) {
	s.authzCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("decision", decision)))
}

// NoOpSecurityMetrics is used when metrics are disabled.
type NoOpSecurityMetrics struct{}

// NewNoOpSecurityMetrics creates a no-op SecurityMetrics implementation.
func NewNoOpSecurityMetrics() SecurityMetrics {
	return &NoOpSecurityMetrics{}
}

func (n *NoOpSecurityMetrics) RecordAuthentication(ctx context.Context, outcome string) {}

func (n *NoOpSecurityMetrics) RecordAuthorization(ctx context.Context, decision string) {}
