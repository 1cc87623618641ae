package sla

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/loomhr/leave-backend-go/internal/domain/sla"
	"github.com/loomhr/leave-backend-go/internal/pkg/businesshours"
)

// TrackerService maintains the one-to-one responsiveness metric of each leave
// request: born at submission, finalized at the reviewer decision.
type TrackerService struct {
	metricRepo sla.MetricRepository
	configs    *ConfigService
}

func NewTrackerService(metricRepo sla.MetricRepository, configs *ConfigService) *TrackerService {
	return &TrackerService{
		metricRepo: metricRepo,
		configs:    configs,
	}
}

// CreateMetric snapshots the tenant's effective config into a new pending
// metric. A later config change must not alter this metric's target.
func (t *TrackerService) CreateMetric(ctx context.Context, tenantID, requestID string, submittedAt time.Time) (sla.Metric, error) {
	cfg, err := t.configs.GetEffectiveConfig(ctx, tenantID)
	if err != nil {
		return sla.Metric{}, err
	}

	metric := sla.Metric{
		TenantID:    tenantID,
		RequestID:   requestID,
		SubmittedAt: submittedAt,

		TargetResponseHours:    cfg.TargetResponseHours,
		WarningThresholdHours:  cfg.WarningThresholdHours,
		CriticalThresholdHours: cfg.CriticalThresholdHours,
		BusinessHoursOnly:      cfg.BusinessHoursOnly,
		BusinessStartHour:      cfg.BusinessStartHour,
		BusinessEndHour:        cfg.BusinessEndHour,
		ExcludeWeekends:        cfg.ExcludeWeekends,

		Status: sla.MetricStatusPending,
	}

	created, err := t.metricRepo.Create(ctx, metric)
	if err != nil {
		return sla.Metric{}, fmt.Errorf("failed to create SLA metric: %w", err)
	}

	return created, nil
}

// FinalizeMetric computes response time, score and terminal status using the
// metric's frozen policy. Called exactly once, with the reviewer decision.
func (t *TrackerService) FinalizeMetric(ctx context.Context, requestID string, respondedAt time.Time) (sla.Metric, error) {
	metric, err := t.metricRepo.GetByRequestID(ctx, requestID)
	if err != nil {
		return sla.Metric{}, fmt.Errorf("failed to get SLA metric: %w", err)
	}

	if metric.Status != sla.MetricStatusPending {
		return sla.Metric{}, sla.ErrMetricFinalized
	}

	responseHours := businesshours.Elapsed(metric.SubmittedAt, respondedAt, policyConfig(metric))
	score, status := ComputeScore(responseHours, metric.TargetResponseHours)

	metric.RespondedAt = &respondedAt
	metric.ResponseTimeHours = &responseHours
	metric.Score = &score
	metric.Status = status

	ok, err := t.metricRepo.Finalize(ctx, metric)
	if err != nil {
		return sla.Metric{}, fmt.Errorf("failed to finalize SLA metric: %w", err)
	}
	if !ok {
		return sla.Metric{}, sla.ErrMetricFinalized
	}

	return metric, nil
}

// DeleteMetric drops the metric of a deleted request.
func (t *TrackerService) DeleteMetric(ctx context.Context, requestID string) error {
	return t.metricRepo.DeleteByRequestID(ctx, requestID)
}

// LiveElapsed is the recomputed-per-read view of a pending metric.
func (t *TrackerService) LiveElapsed(metric sla.Metric, now time.Time) (sla.LiveSLA, error) {
	if metric.Status != sla.MetricStatusPending {
		return sla.LiveSLA{}, sla.ErrMetricNotPending
	}
	return Live(metric, now), nil
}

// GetByRequestID exposes the metric for a single request.
func (t *TrackerService) GetByRequestID(ctx context.Context, requestID string) (sla.Metric, error) {
	return t.metricRepo.GetByRequestID(ctx, requestID)
}

// PendingByTenant lists pending metrics keyed by request id, for joining
// against the pending-requests dashboard.
func (t *TrackerService) PendingByTenant(ctx context.Context, tenantID string) (map[string]sla.Metric, error) {
	metrics, err := t.metricRepo.ListPendingByTenant(ctx, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending SLA metrics: %w", err)
	}

	byRequest := make(map[string]sla.Metric, len(metrics))
	for _, m := range metrics {
		byRequest[m.RequestID] = m
	}
	return byRequest, nil
}

// Stats aggregates completed metrics over a window plus the current pending
// count. Compliance rate reads 100% when nothing has completed yet.
func (t *TrackerService) Stats(ctx context.Context, tenantID string, window sla.StatsWindow) (sla.Stats, error) {
	completed, err := t.metricRepo.ListCompletedByTenant(ctx, tenantID, window)
	if err != nil {
		return sla.Stats{}, fmt.Errorf("failed to list completed SLA metrics: %w", err)
	}

	pending, err := t.metricRepo.ListPendingByTenant(ctx, tenantID)
	if err != nil {
		return sla.Stats{}, fmt.Errorf("failed to list pending SLA metrics: %w", err)
	}

	stats := sla.Stats{
		Pending: len(pending),
	}

	var sumResponse, sumScore float64
	for _, m := range completed {
		switch m.Status {
		case sla.MetricStatusOnTime:
			stats.OnTime++
		case sla.MetricStatusBreached:
			stats.Breached++
		}
		if m.ResponseTimeHours != nil {
			sumResponse += *m.ResponseTimeHours
		}
		if m.Score != nil {
			sumScore += *m.Score
		}
		if m.WarningTriggered {
			stats.WarningCount++
		}
		if m.CriticalTriggered {
			stats.CriticalCount++
		}
	}

	done := stats.OnTime + stats.Breached
	stats.Total = done + stats.Pending

	if done > 0 {
		stats.AvgResponseTimeHours = sumResponse / float64(done)
		stats.AvgScore = sumScore / float64(done)
		stats.ComplianceRate = float64(stats.OnTime) / float64(done) * 100
	} else {
		stats.ComplianceRate = 100
	}

	return stats, nil
}

// Trend groups completed metrics by decision day.
func (t *TrackerService) Trend(ctx context.Context, tenantID string, window sla.StatsWindow) ([]sla.TrendPoint, error) {
	completed, err := t.metricRepo.ListCompletedByTenant(ctx, tenantID, window)
	if err != nil {
		return nil, fmt.Errorf("failed to list completed SLA metrics: %w", err)
	}

	type bucket struct {
		onTime   int
		breached int
		sum      float64
		count    int
	}
	buckets := make(map[string]*bucket)

	for _, m := range completed {
		if m.RespondedAt == nil {
			continue
		}
		day := m.RespondedAt.Format("2006-01-02")
		b := buckets[day]
		if b == nil {
			b = &bucket{}
			buckets[day] = b
		}
		if m.Status == sla.MetricStatusOnTime {
			b.onTime++
		} else {
			b.breached++
		}
		if m.ResponseTimeHours != nil {
			b.sum += *m.ResponseTimeHours
			b.count++
		}
	}

	days := make([]string, 0, len(buckets))
	for day := range buckets {
		days = append(days, day)
	}
	sort.Strings(days)

	points := make([]sla.TrendPoint, 0, len(days))
	for _, day := range days {
		b := buckets[day]
		p := sla.TrendPoint{
			Date:     day,
			OnTime:   b.onTime,
			Breached: b.breached,
		}
		if b.count > 0 {
			p.AvgResponseTimeHours = b.sum / float64(b.count)
		}
		points = append(points, p)
	}

	return points, nil
}
