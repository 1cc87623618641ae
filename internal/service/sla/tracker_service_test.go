package sla

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomhr/leave-backend-go/internal/domain/sla"
)

// In-memory repositories for service tests.

type memConfigRepo struct {
	configs map[string]sla.Config
}

func newMemConfigRepo() *memConfigRepo {
	return &memConfigRepo{configs: make(map[string]sla.Config)}
}

func (r *memConfigRepo) GetByTenant(_ context.Context, tenantID string) (sla.Config, error) {
	cfg, ok := r.configs[tenantID]
	if !ok {
		return sla.Config{}, sla.ErrConfigNotFound
	}
	return cfg, nil
}

func (r *memConfigRepo) Upsert(_ context.Context, cfg sla.Config) (sla.Config, error) {
	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}
	r.configs[cfg.TenantID] = cfg
	return cfg, nil
}

type memMetricRepo struct {
	metrics map[string]sla.Metric // keyed by request id
}

func newMemMetricRepo() *memMetricRepo {
	return &memMetricRepo{metrics: make(map[string]sla.Metric)}
}

func (r *memMetricRepo) Create(_ context.Context, metric sla.Metric) (sla.Metric, error) {
	if metric.ID == "" {
		metric.ID = uuid.New().String()
	}
	metric.CreatedAt = time.Now()
	metric.UpdatedAt = metric.CreatedAt
	r.metrics[metric.RequestID] = metric
	return metric, nil
}

func (r *memMetricRepo) GetByRequestID(_ context.Context, requestID string) (sla.Metric, error) {
	m, ok := r.metrics[requestID]
	if !ok {
		return sla.Metric{}, sla.ErrMetricNotFound
	}
	return m, nil
}

func (r *memMetricRepo) Finalize(_ context.Context, metric sla.Metric) (bool, error) {
	stored, ok := r.metrics[metric.RequestID]
	if !ok {
		return false, sla.ErrMetricNotFound
	}
	if stored.Status != sla.MetricStatusPending {
		return false, nil
	}
	r.metrics[metric.RequestID] = metric
	return true, nil
}

func (r *memMetricRepo) SetTriggerFlags(_ context.Context, metricID string, warning, critical, breach bool) error {
	for requestID, m := range r.metrics {
		if m.ID == metricID {
			m.WarningTriggered = warning
			m.CriticalTriggered = critical
			m.BreachTriggered = breach
			r.metrics[requestID] = m
			return nil
		}
	}
	return sla.ErrMetricNotFound
}

func (r *memMetricRepo) DeleteByRequestID(_ context.Context, requestID string) error {
	delete(r.metrics, requestID)
	return nil
}

func (r *memMetricRepo) ListPendingByTenant(_ context.Context, tenantID string) ([]sla.Metric, error) {
	var out []sla.Metric
	for _, m := range r.metrics {
		if m.TenantID == tenantID && m.Status == sla.MetricStatusPending {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMetricRepo) ListPending(_ context.Context) ([]sla.Metric, error) {
	var out []sla.Metric
	for _, m := range r.metrics {
		if m.Status == sla.MetricStatusPending {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *memMetricRepo) ListCompletedByTenant(_ context.Context, tenantID string, window sla.StatsWindow) ([]sla.Metric, error) {
	var out []sla.Metric
	for _, m := range r.metrics {
		if m.TenantID != tenantID || m.Status == sla.MetricStatusPending {
			continue
		}
		if m.RespondedAt != nil {
			if !window.From.IsZero() && m.RespondedAt.Before(window.From) {
				continue
			}
			if !window.To.IsZero() && m.RespondedAt.After(window.To) {
				continue
			}
		}
		out = append(out, m)
	}
	return out, nil
}

func newTestTracker() (*TrackerService, *memConfigRepo, *memMetricRepo) {
	configRepo := newMemConfigRepo()
	metricRepo := newMemMetricRepo()
	configs := NewConfigService(configRepo)
	return NewTrackerService(metricRepo, configs), configRepo, metricRepo
}

func TestCreateMetricUsesDefaultsWithoutConfig(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()

	metric, err := tracker.CreateMetric(ctx, "tenant-1", "req-1", time.Now())
	require.NoError(t, err)

	assert.Equal(t, sla.DefaultTargetResponseHours, metric.TargetResponseHours)
	assert.Equal(t, sla.DefaultWarningThresholdHours, metric.WarningThresholdHours)
	assert.Equal(t, sla.MetricStatusPending, metric.Status)
}

func TestCreateMetricFreezesConfig(t *testing.T) {
	tracker, configRepo, _ := newTestTracker()
	ctx := context.Background()

	cfg := sla.DefaultConfig("tenant-1")
	cfg.TargetResponseHours = 48
	_, err := configRepo.Upsert(ctx, cfg)
	require.NoError(t, err)

	metric, err := tracker.CreateMetric(ctx, "tenant-1", "req-1", time.Now())
	require.NoError(t, err)
	assert.Equal(t, 48.0, metric.TargetResponseHours)

	// Tightening the config afterwards must not move the in-flight target.
	cfg.TargetResponseHours = 8
	_, err = configRepo.Upsert(ctx, cfg)
	require.NoError(t, err)

	stored, err := tracker.GetByRequestID(ctx, "req-1")
	require.NoError(t, err)
	assert.Equal(t, 48.0, stored.TargetResponseHours)
}

func TestFinalizeMetricComputesScore(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()

	submitted := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	_, err := tracker.CreateMetric(ctx, "tenant-1", "req-1", submitted)
	require.NoError(t, err)

	metric, err := tracker.FinalizeMetric(ctx, "req-1", submitted.Add(10*time.Hour))
	require.NoError(t, err)

	assert.Equal(t, sla.MetricStatusOnTime, metric.Status)
	require.NotNil(t, metric.ResponseTimeHours)
	assert.InDelta(t, 10, *metric.ResponseTimeHours, 0.001)
	require.NotNil(t, metric.Score)
	assert.InDelta(t, 91.67, *metric.Score, 0.01)
}

func TestFinalizeMetricExactlyOnce(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()

	submitted := time.Now().Add(-2 * time.Hour)
	_, err := tracker.CreateMetric(ctx, "tenant-1", "req-1", submitted)
	require.NoError(t, err)

	_, err = tracker.FinalizeMetric(ctx, "req-1", time.Now())
	require.NoError(t, err)

	_, err = tracker.FinalizeMetric(ctx, "req-1", time.Now())
	assert.ErrorIs(t, err, sla.ErrMetricFinalized)
}

func TestLiveElapsedRejectsFinalizedMetric(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()

	_, err := tracker.CreateMetric(ctx, "tenant-1", "req-1", time.Now().Add(-time.Hour))
	require.NoError(t, err)

	metric, err := tracker.FinalizeMetric(ctx, "req-1", time.Now())
	require.NoError(t, err)

	_, err = tracker.LiveElapsed(metric, time.Now())
	assert.ErrorIs(t, err, sla.ErrMetricNotPending)
}

func TestStatsEmptyWindowReads100Compliance(t *testing.T) {
	tracker, _, _ := newTestTracker()

	stats, err := tracker.Stats(context.Background(), "tenant-1", sla.StatsWindow{})
	require.NoError(t, err)

	assert.Equal(t, 100.0, stats.ComplianceRate)
	assert.Equal(t, 0, stats.Total)
}

func TestStatsAggregates(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()

	submitted := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

	// Two on-time, one breached, one still pending.
	for i, responseHours := range []float64{4, 8, 30} {
		requestID := uuid.New().String()
		_, err := tracker.CreateMetric(ctx, "tenant-1", requestID, submitted.AddDate(0, 0, i))
		require.NoError(t, err)
		_, err = tracker.FinalizeMetric(ctx, requestID, submitted.AddDate(0, 0, i).Add(time.Duration(responseHours*float64(time.Hour))))
		require.NoError(t, err)
	}
	_, err := tracker.CreateMetric(ctx, "tenant-1", "req-pending", time.Now())
	require.NoError(t, err)

	stats, err := tracker.Stats(ctx, "tenant-1", sla.StatsWindow{})
	require.NoError(t, err)

	assert.Equal(t, 2, stats.OnTime)
	assert.Equal(t, 1, stats.Breached)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 4, stats.Total)
	assert.InDelta(t, 66.67, stats.ComplianceRate, 0.01)
	assert.InDelta(t, 14, stats.AvgResponseTimeHours, 0.001)
}

func TestTrendGroupsByDay(t *testing.T) {
	tracker, _, _ := newTestTracker()
	ctx := context.Background()

	day1 := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)

	for _, c := range []struct {
		submitted time.Time
		responded time.Time
	}{
		{day1, day1.Add(2 * time.Hour)},
		{day1, day1.Add(4 * time.Hour)},
		{day2, day2.Add(30 * time.Hour)},
	} {
		requestID := uuid.New().String()
		_, err := tracker.CreateMetric(ctx, "tenant-1", requestID, c.submitted)
		require.NoError(t, err)
		_, err = tracker.FinalizeMetric(ctx, requestID, c.responded)
		require.NoError(t, err)
	}

	points, err := tracker.Trend(ctx, "tenant-1", sla.StatsWindow{})
	require.NoError(t, err)

	require.Len(t, points, 2)
	assert.Equal(t, "2025-03-03", points[0].Date)
	assert.Equal(t, 2, points[0].OnTime)
	assert.InDelta(t, 3, points[0].AvgResponseTimeHours, 0.001)
	assert.Equal(t, 1, points[1].Breached)
}

func TestUpdateConfigPatchesOverDefaults(t *testing.T) {
	configRepo := newMemConfigRepo()
	configs := NewConfigService(configRepo)
	ctx := context.Background()

	target := 36.0
	updated, err := configs.UpdateConfig(ctx, sla.UpdateConfigRequest{
		TenantID:            "tenant-1",
		AdminID:             "admin-1",
		TargetResponseHours: &target,
	})
	require.NoError(t, err)

	// Patched field applied, everything else keeps the defaults.
	assert.Equal(t, 36.0, updated.TargetResponseHours)
	assert.Equal(t, sla.DefaultWarningThresholdHours, updated.WarningThresholdHours)
	require.NotNil(t, updated.UpdatedBy)
	assert.Equal(t, "admin-1", *updated.UpdatedBy)
}

func TestGetEffectiveConfigNeverPersistsDefaults(t *testing.T) {
	configRepo := newMemConfigRepo()
	configs := NewConfigService(configRepo)

	cfg, err := configs.GetEffectiveConfig(context.Background(), "tenant-1")
	require.NoError(t, err)

	assert.Equal(t, sla.DefaultTargetResponseHours, cfg.TargetResponseHours)
	assert.Empty(t, configRepo.configs)
}
