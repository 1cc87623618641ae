package sla

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/loomhr/leave-backend-go/internal/domain/sla"
)

// ConfigService owns the per-tenant SLA policy. Reading defaults never
// persists anything; writing upserts the tenant's single record.
type ConfigService struct {
	configRepo sla.ConfigRepository
}

func NewConfigService(configRepo sla.ConfigRepository) *ConfigService {
	return &ConfigService{configRepo: configRepo}
}

// GetEffectiveConfig returns the persisted record if present, else the
// documented defaults.
func (s *ConfigService) GetEffectiveConfig(ctx context.Context, tenantID string) (sla.Config, error) {
	cfg, err := s.configRepo.GetByTenant(ctx, tenantID)
	if err != nil {
		if errors.Is(err, sla.ErrConfigNotFound) {
			return sla.DefaultConfig(tenantID), nil
		}
		return sla.Config{}, fmt.Errorf("failed to get SLA config: %w", err)
	}
	return cfg, nil
}

// UpdateConfig patches the tenant's record, inserting it when absent. The
// patch is applied over the effective config so unset fields keep their
// current (or default) values.
func (s *ConfigService) UpdateConfig(ctx context.Context, req sla.UpdateConfigRequest) (sla.Config, error) {
	cfg, err := s.GetEffectiveConfig(ctx, req.TenantID)
	if err != nil {
		return sla.Config{}, err
	}

	if req.TargetResponseHours != nil {
		cfg.TargetResponseHours = *req.TargetResponseHours
	}
	if req.WarningThresholdHours != nil {
		cfg.WarningThresholdHours = *req.WarningThresholdHours
	}
	if req.CriticalThresholdHours != nil {
		cfg.CriticalThresholdHours = *req.CriticalThresholdHours
	}
	if req.BusinessHoursOnly != nil {
		cfg.BusinessHoursOnly = *req.BusinessHoursOnly
	}
	if req.BusinessStartHour != nil {
		cfg.BusinessStartHour = *req.BusinessStartHour
	}
	if req.BusinessEndHour != nil {
		cfg.BusinessEndHour = *req.BusinessEndHour
	}
	if req.ExcludeWeekends != nil {
		cfg.ExcludeWeekends = *req.ExcludeWeekends
	}
	if req.NotifyOnWarning != nil {
		cfg.NotifyOnWarning = *req.NotifyOnWarning
	}
	if req.NotifyOnCritical != nil {
		cfg.NotifyOnCritical = *req.NotifyOnCritical
	}
	if req.NotifyOnBreach != nil {
		cfg.NotifyOnBreach = *req.NotifyOnBreach
	}

	adminID := req.AdminID
	cfg.UpdatedBy = &adminID
	cfg.UpdatedAt = time.Now()

	updated, err := s.configRepo.Upsert(ctx, cfg)
	if err != nil {
		return sla.Config{}, fmt.Errorf("failed to upsert SLA config: %w", err)
	}

	return updated, nil
}
