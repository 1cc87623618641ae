package postgresql

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/loomhr/leave-backend-go/internal/domain/sla"
	"github.com/loomhr/leave-backend-go/internal/pkg/database"
)

type slaConfigRepository struct {
	db *database.DB
}

func NewSLAConfigRepository(db *database.DB) sla.ConfigRepository {
	return &slaConfigRepository{db: db}
}

func (r *slaConfigRepository) GetByTenant(ctx context.Context, tenantID string) (sla.Config, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, tenant_id,
			   target_response_hours, warning_threshold_hours, critical_threshold_hours,
			   business_hours_only, business_start_hour, business_end_hour, exclude_weekends,
			   notify_on_warning, notify_on_critical, notify_on_breach,
			   updated_by, created_at, updated_at
		FROM sla_configs
		WHERE tenant_id = $1
	`

	var cfg sla.Config
	err := q.QueryRow(ctx, query, tenantID).Scan(
		&cfg.ID, &cfg.TenantID,
		&cfg.TargetResponseHours, &cfg.WarningThresholdHours, &cfg.CriticalThresholdHours,
		&cfg.BusinessHoursOnly, &cfg.BusinessStartHour, &cfg.BusinessEndHour, &cfg.ExcludeWeekends,
		&cfg.NotifyOnWarning, &cfg.NotifyOnCritical, &cfg.NotifyOnBreach,
		&cfg.UpdatedBy, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sla.Config{}, sla.ErrConfigNotFound
		}
		return sla.Config{}, err
	}

	return cfg, nil
}

// Upsert keeps at most one record per tenant; concurrent writers resolve
// last-write-wins on the tenant_id unique constraint.
func (r *slaConfigRepository) Upsert(ctx context.Context, cfg sla.Config) (sla.Config, error) {
	q := GetQuerier(ctx, r.db)

	if cfg.ID == "" {
		cfg.ID = uuid.New().String()
	}

	query := `
		INSERT INTO sla_configs (
			id, tenant_id,
			target_response_hours, warning_threshold_hours, critical_threshold_hours,
			business_hours_only, business_start_hour, business_end_hour, exclude_weekends,
			notify_on_warning, notify_on_critical, notify_on_breach,
			updated_by, created_at, updated_at
		) VALUES (
			$1, $2,
			$3, $4, $5,
			$6, $7, $8, $9,
			$10, $11, $12,
			$13, NOW(), NOW()
		)
		ON CONFLICT (tenant_id) DO UPDATE SET
			target_response_hours = EXCLUDED.target_response_hours,
			warning_threshold_hours = EXCLUDED.warning_threshold_hours,
			critical_threshold_hours = EXCLUDED.critical_threshold_hours,
			business_hours_only = EXCLUDED.business_hours_only,
			business_start_hour = EXCLUDED.business_start_hour,
			business_end_hour = EXCLUDED.business_end_hour,
			exclude_weekends = EXCLUDED.exclude_weekends,
			notify_on_warning = EXCLUDED.notify_on_warning,
			notify_on_critical = EXCLUDED.notify_on_critical,
			notify_on_breach = EXCLUDED.notify_on_breach,
			updated_by = EXCLUDED.updated_by,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		cfg.ID, cfg.TenantID,
		cfg.TargetResponseHours, cfg.WarningThresholdHours, cfg.CriticalThresholdHours,
		cfg.BusinessHoursOnly, cfg.BusinessStartHour, cfg.BusinessEndHour, cfg.ExcludeWeekends,
		cfg.NotifyOnWarning, cfg.NotifyOnCritical, cfg.NotifyOnBreach,
		cfg.UpdatedBy,
	).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return sla.Config{}, err
	}

	return cfg, nil
}
