package cron

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomhr/leave-backend-go/internal/domain/notification"
	"github.com/loomhr/leave-backend-go/internal/domain/sla"
	"github.com/loomhr/leave-backend-go/internal/domain/user"
	slaService "github.com/loomhr/leave-backend-go/internal/service/sla"
)

type memMetricRepo struct {
	metrics map[string]sla.Metric // keyed by metric id
}

func (r *memMetricRepo) Create(_ context.Context, m sla.Metric) (sla.Metric, error) {
	r.metrics[m.ID] = m
	return m, nil
}

func (r *memMetricRepo) GetByRequestID(_ context.Context, requestID string) (sla.Metric, error) {
	for _, m := range r.metrics {
		if m.RequestID == requestID {
			return m, nil
		}
	}
	return sla.Metric{}, sla.ErrMetricNotFound
}

func (r *memMetricRepo) Finalize(_ context.Context, m sla.Metric) (bool, error) {
	r.metrics[m.ID] = m
	return true, nil
}

func (r *memMetricRepo) SetTriggerFlags(_ context.Context, metricID string, warning, critical, breach bool) error {
	m, ok := r.metrics[metricID]
	if !ok {
		return sla.ErrMetricNotFound
	}
	m.WarningTriggered = warning
	m.CriticalTriggered = critical
	m.BreachTriggered = breach
	r.metrics[metricID] = m
	return nil
}

func (r *memMetricRepo) DeleteByRequestID(_ context.Context, requestID string) error {
	for id, m := range r.metrics {
		if m.RequestID == requestID {
			delete(r.metrics, id)
		}
	}
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

func (r *memMetricRepo) ListCompletedByTenant(_ context.Context, tenantID string, _ sla.StatsWindow) ([]sla.Metric, error) {
	var out []sla.Metric
	for _, m := range r.metrics {
		if m.TenantID == tenantID && m.Status != sla.MetricStatusPending {
			out = append(out, m)
		}
	}
	return out, nil
}

type memConfigRepo struct {
	configs map[string]sla.Config
}

func (r *memConfigRepo) GetByTenant(_ context.Context, tenantID string) (sla.Config, error) {
	cfg, ok := r.configs[tenantID]
	if !ok {
		return sla.Config{}, sla.ErrConfigNotFound
	}
	return cfg, nil
}

func (r *memConfigRepo) Upsert(_ context.Context, cfg sla.Config) (sla.Config, error) {
	r.configs[cfg.TenantID] = cfg
	return cfg, nil
}

type memUserRepo struct {
	reviewers []user.User
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (user.User, error) {
	for _, u := range r.reviewers {
		if u.ID == id {
			return u, nil
		}
	}
	return user.User{}, user.ErrUserNotFound
}

func (r *memUserRepo) ListReviewers(_ context.Context, tenantID string) ([]user.User, error) {
	var out []user.User
	for _, u := range r.reviewers {
		if u.TenantID == tenantID {
			out = append(out, u)
		}
	}
	return out, nil
}

type fakeNotifier struct {
	queued []notification.CreateNotificationRequest
}

func (f *fakeNotifier) QueueNotification(_ context.Context, req notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, req)
	return nil
}

func (f *fakeNotifier) QueueBulkNotification(_ context.Context, reqs []notification.CreateNotificationRequest) error {
	f.queued = append(f.queued, reqs...)
	return nil
}

func (f *fakeNotifier) GetNotifications(context.Context, string, int, int, bool) (*notification.NotificationListResponse, error) {
	return &notification.NotificationListResponse{}, nil
}

func (f *fakeNotifier) MarkAsRead(context.Context, string, []string) error { return nil }

func (f *fakeNotifier) MarkAllAsRead(context.Context, string) error { return nil }

func (f *fakeNotifier) Subscribe(context.Context, string) (<-chan notification.SSEEvent, func()) {
	ch := make(chan notification.SSEEvent)
	return ch, func() { close(ch) }
}

func (f *fakeNotifier) Stop() {}

func (f *fakeNotifier) countOfType(t notification.Type) int {
	n := 0
	for _, q := range f.queued {
		if q.Type == t {
			n++
		}
	}
	return n
}

type monitorFixture struct {
	jobs       *SLAJobs
	metricRepo *memMetricRepo
	notifier   *fakeNotifier
}

func newMonitorFixture() *monitorFixture {
	metricRepo := &memMetricRepo{metrics: make(map[string]sla.Metric)}
	configRepo := &memConfigRepo{configs: make(map[string]sla.Config)}
	userRepo := &memUserRepo{reviewers: []user.User{
		{ID: "sup-1", TenantID: "tenant-1", Role: user.RoleSupervisor, Status: user.AccountStatusApproved},
	}}
	notifier := &fakeNotifier{}

	configs := slaService.NewConfigService(configRepo)
	return &monitorFixture{
		jobs:       NewSLAJobs(metricRepo, userRepo, configs, notifier),
		metricRepo: metricRepo,
		notifier:   notifier,
	}
}

func (f *monitorFixture) addPendingMetric(id string, elapsedHours float64) {
	f.metricRepo.metrics[id] = sla.Metric{
		ID:                     id,
		TenantID:               "tenant-1",
		RequestID:              "req-" + id,
		SubmittedAt:            time.Now().Add(-time.Duration(elapsedHours * float64(time.Hour))),
		TargetResponseHours:    24,
		WarningThresholdHours:  18,
		CriticalThresholdHours: 22,
		Status:                 sla.MetricStatusPending,
	}
}

func TestCheckThresholdsWarningFiresOnce(t *testing.T) {
	f := newMonitorFixture()
	f.addPendingMetric("m-1", 19)

	require.NoError(t, f.jobs.CheckThresholds(context.Background()))
	require.NoError(t, f.jobs.CheckThresholds(context.Background()))

	assert.Equal(t, 1, f.notifier.countOfType(notification.TypeSLAWarning))
	assert.True(t, f.metricRepo.metrics["m-1"].WarningTriggered)
}

func TestCheckThresholdsBreachStillFiresAfterCritical(t *testing.T) {
	f := newMonitorFixture()
	f.addPendingMetric("m-1", 23)

	require.NoError(t, f.jobs.CheckThresholds(context.Background()))
	assert.Equal(t, 1, f.notifier.countOfType(notification.TypeSLACritical))

	// Time passes beyond the target; the breach alert is its own one-shot.
	m := f.metricRepo.metrics["m-1"]
	m.SubmittedAt = time.Now().Add(-25 * time.Hour)
	f.metricRepo.metrics["m-1"] = m

	require.NoError(t, f.jobs.CheckThresholds(context.Background()))
	require.NoError(t, f.jobs.CheckThresholds(context.Background()))

	assert.Equal(t, 1, f.notifier.countOfType(notification.TypeSLABreach))
	assert.True(t, f.metricRepo.metrics["m-1"].BreachTriggered)
}

func TestCheckThresholdsBelowWarningStaysQuiet(t *testing.T) {
	f := newMonitorFixture()
	f.addPendingMetric("m-1", 2)

	require.NoError(t, f.jobs.CheckThresholds(context.Background()))

	assert.Empty(t, f.notifier.queued)
	assert.False(t, f.metricRepo.metrics["m-1"].WarningTriggered)
}

func TestCheckThresholdsHonorsDisabledAlerts(t *testing.T) {
	f := newMonitorFixture()
	f.addPendingMetric("m-1", 19)

	cfg := sla.DefaultConfig("tenant-1")
	cfg.NotifyOnWarning = false
	_, err := f.jobs.configs.UpdateConfig(context.Background(), sla.UpdateConfigRequest{
		TenantID:        "tenant-1",
		AdminID:         "admin-1",
		NotifyOnWarning: &cfg.NotifyOnWarning,
	})
	require.NoError(t, err)

	require.NoError(t, f.jobs.CheckThresholds(context.Background()))

	assert.Empty(t, f.notifier.queued)
}
