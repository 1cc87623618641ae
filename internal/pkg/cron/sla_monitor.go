package cron

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/loomhr/leave-backend-go/internal/domain/notification"
	domainSLA "github.com/loomhr/leave-backend-go/internal/domain/sla"
	"github.com/loomhr/leave-backend-go/internal/domain/user"
	slaService "github.com/loomhr/leave-backend-go/internal/service/sla"
)

// SLAJobs watches pending metrics and alerts tenant reviewers as elapsed time
// crosses the warning/critical thresholds and the target itself. Each
// threshold fires at most once per metric.
type SLAJobs struct {
	metricRepo      domainSLA.MetricRepository
	userRepo        user.Repository
	configs         *slaService.ConfigService
	notificationSvc notification.Service
}

func NewSLAJobs(
	metricRepo domainSLA.MetricRepository,
	userRepo user.Repository,
	configs *slaService.ConfigService,
	notificationSvc notification.Service,
) *SLAJobs {
	return &SLAJobs{
		metricRepo:      metricRepo,
		userRepo:        userRepo,
		configs:         configs,
		notificationSvc: notificationSvc,
	}
}

func (j *SLAJobs) RegisterJobs(scheduler *Scheduler, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	scheduler.AddJob("sla_threshold_monitor", interval, j.CheckThresholds)
}

func (j *SLAJobs) CheckThresholds(ctx context.Context) error {
	pending, err := j.metricRepo.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending SLA metrics: %w", err)
	}

	byTenant := make(map[string][]domainSLA.Metric)
	for _, m := range pending {
		byTenant[m.TenantID] = append(byTenant[m.TenantID], m)
	}

	now := time.Now()

	for tenantID, metrics := range byTenant {
		cfg, err := j.configs.GetEffectiveConfig(ctx, tenantID)
		if err != nil {
			slog.Error("Cron: failed to load SLA config", "tenant_id", tenantID, "error", err)
			continue
		}

		reviewers, err := j.userRepo.ListReviewers(ctx, tenantID)
		if err != nil {
			slog.Error("Cron: failed to list reviewers", "tenant_id", tenantID, "error", err)
			continue
		}

		for _, m := range metrics {
			if err := j.checkMetric(ctx, cfg, reviewers, m, now); err != nil {
				slog.Error("Cron: SLA threshold check failed", "metric_id", m.ID, "error", err)
			}
		}
	}

	return nil
}

func (j *SLAJobs) checkMetric(ctx context.Context, cfg domainSLA.Config, reviewers []user.User, m domainSLA.Metric, now time.Time) error {
	live := slaService.Live(m, now)

	var (
		notifType notification.Type
		title     string
		warning   = m.WarningTriggered
		critical  = m.CriticalTriggered
		breach    = m.BreachTriggered
	)

	switch live.Status {
	case domainSLA.LiveBreached:
		if m.BreachTriggered || !cfg.NotifyOnBreach {
			return nil
		}
		notifType = notification.TypeSLABreach
		title = "Leave request response overdue"
		warning, critical, breach = true, true, true
	case domainSLA.LiveCritical:
		if m.CriticalTriggered || !cfg.NotifyOnCritical {
			return nil
		}
		notifType = notification.TypeSLACritical
		title = "Leave request approaching response deadline"
		warning, critical = true, true
	case domainSLA.LiveWarning:
		if m.WarningTriggered || !cfg.NotifyOnWarning {
			return nil
		}
		notifType = notification.TypeSLAWarning
		title = "Leave request awaiting response"
		warning = true
	default:
		return nil
	}

	if err := j.metricRepo.SetTriggerFlags(ctx, m.ID, warning, critical, breach); err != nil {
		return err
	}

	requestID := m.RequestID
	message := fmt.Sprintf("A leave request has been pending for %.1f hours (target %.0f hours).",
		live.ElapsedHours, m.TargetResponseHours)

	reqs := make([]notification.CreateNotificationRequest, 0, len(reviewers))
	for _, reviewer := range reviewers {
		reqs = append(reqs, notification.CreateNotificationRequest{
			TenantID:    m.TenantID,
			RecipientID: reviewer.ID,
			Type:        notifType,
			Title:       title,
			Message:     message,
			RelatedID:   &requestID,
		})
	}

	return j.notificationSvc.QueueBulkNotification(ctx, reqs)
}
