package sla

import (
	"context"
)

// ConfigRepository - interface for sla_configs table
type ConfigRepository interface {
	// GetByTenant returns ErrConfigNotFound when no record exists; it never
	// writes a default as a side effect of reading.
	GetByTenant(ctx context.Context, tenantID string) (Config, error)
	// Upsert patches the tenant's single record in place, inserting it when
	// absent. Last write wins; UpdatedBy/UpdatedAt reflect the actual writer.
	Upsert(ctx context.Context, cfg Config) (Config, error)
}

// MetricRepository - interface for sla_metrics table
type MetricRepository interface {
	Create(ctx context.Context, metric Metric) (Metric, error)
	GetByRequestID(ctx context.Context, requestID string) (Metric, error)
	// Finalize persists the decision outcome for a pending metric. Returns
	// false when the metric was already finalized.
	Finalize(ctx context.Context, metric Metric) (bool, error)
	// SetTriggerFlags records which threshold alerts have fired, so each
	// fires at most once per metric.
	SetTriggerFlags(ctx context.Context, metricID string, warning, critical, breach bool) error
	// DeleteByRequestID removes the metric of a deleted request.
	DeleteByRequestID(ctx context.Context, requestID string) error
	ListPendingByTenant(ctx context.Context, tenantID string) ([]Metric, error)
	// ListPending returns pending metrics across all tenants (threshold monitor).
	ListPending(ctx context.Context) ([]Metric, error)
	ListCompletedByTenant(ctx context.Context, tenantID string, window StatsWindow) ([]Metric, error)
}
