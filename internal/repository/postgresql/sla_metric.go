package postgresql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/loomhr/leave-backend-go/internal/domain/sla"
	"github.com/loomhr/leave-backend-go/internal/pkg/database"
)

type slaMetricRepository struct {
	db *database.DB
}

func NewSLAMetricRepository(db *database.DB) sla.MetricRepository {
	return &slaMetricRepository{db: db}
}

const slaMetricColumns = `
	id, tenant_id, request_id, submitted_at,
	target_response_hours, warning_threshold_hours, critical_threshold_hours,
	business_hours_only, business_start_hour, business_end_hour, exclude_weekends,
	responded_at, response_time_hours, score, status,
	warning_triggered, critical_triggered, breach_triggered,
	created_at, updated_at`

func scanSLAMetric(row pgx.Row) (sla.Metric, error) {
	var m sla.Metric
	err := row.Scan(
		&m.ID, &m.TenantID, &m.RequestID, &m.SubmittedAt,
		&m.TargetResponseHours, &m.WarningThresholdHours, &m.CriticalThresholdHours,
		&m.BusinessHoursOnly, &m.BusinessStartHour, &m.BusinessEndHour, &m.ExcludeWeekends,
		&m.RespondedAt, &m.ResponseTimeHours, &m.Score, &m.Status,
		&m.WarningTriggered, &m.CriticalTriggered, &m.BreachTriggered,
		&m.CreatedAt, &m.UpdatedAt,
	)
	return m, err
}

func (r *slaMetricRepository) listMetrics(ctx context.Context, query string, args ...interface{}) ([]sla.Metric, error) {
	q := GetQuerier(ctx, r.db)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var metrics []sla.Metric
	for rows.Next() {
		m, err := scanSLAMetric(rows)
		if err != nil {
			return nil, err
		}
		metrics = append(metrics, m)
	}

	return metrics, rows.Err()
}

func (r *slaMetricRepository) Create(ctx context.Context, metric sla.Metric) (sla.Metric, error) {
	q := GetQuerier(ctx, r.db)

	if metric.ID == "" {
		metric.ID = uuid.New().String()
	}

	query := `
		INSERT INTO sla_metrics (
			id, tenant_id, request_id, submitted_at,
			target_response_hours, warning_threshold_hours, critical_threshold_hours,
			business_hours_only, business_start_hour, business_end_hour, exclude_weekends,
			status, warning_triggered, critical_triggered, breach_triggered,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4,
			$5, $6, $7,
			$8, $9, $10, $11,
			$12, false, false, false,
			NOW(), NOW()
		) RETURNING created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		metric.ID, metric.TenantID, metric.RequestID, metric.SubmittedAt,
		metric.TargetResponseHours, metric.WarningThresholdHours, metric.CriticalThresholdHours,
		metric.BusinessHoursOnly, metric.BusinessStartHour, metric.BusinessEndHour, metric.ExcludeWeekends,
		metric.Status,
	).Scan(&metric.CreatedAt, &metric.UpdatedAt)
	if err != nil {
		return sla.Metric{}, err
	}

	return metric, nil
}

func (r *slaMetricRepository) GetByRequestID(ctx context.Context, requestID string) (sla.Metric, error) {
	q := GetQuerier(ctx, r.db)

	query := fmt.Sprintf(`SELECT %s FROM sla_metrics WHERE request_id = $1`, slaMetricColumns)

	m, err := scanSLAMetric(q.QueryRow(ctx, query, requestID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return sla.Metric{}, sla.ErrMetricNotFound
		}
		return sla.Metric{}, err
	}

	return m, nil
}

// Finalize is the compare-and-swap on status: only one caller ever moves a
// metric out of pending.
func (r *slaMetricRepository) Finalize(ctx context.Context, metric sla.Metric) (bool, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sla_metrics
		SET responded_at = $1, response_time_hours = $2, score = $3, status = $4, updated_at = NOW()
		WHERE id = $5 AND status = 'pending'
	`

	commandTag, err := q.Exec(ctx, query,
		metric.RespondedAt, metric.ResponseTimeHours, metric.Score, metric.Status, metric.ID)
	if err != nil {
		return false, err
	}

	return commandTag.RowsAffected() == 1, nil
}

func (r *slaMetricRepository) SetTriggerFlags(ctx context.Context, metricID string, warning, critical, breach bool) error {
	q := GetQuerier(ctx, r.db)

	query := `
		UPDATE sla_metrics
		SET warning_triggered = $1, critical_triggered = $2, breach_triggered = $3, updated_at = NOW()
		WHERE id = $4
	`

	commandTag, err := q.Exec(ctx, query, warning, critical, breach, metricID)
	if err != nil {
		return err
	}
	if commandTag.RowsAffected() == 0 {
		return sla.ErrMetricNotFound
	}

	return nil
}

func (r *slaMetricRepository) DeleteByRequestID(ctx context.Context, requestID string) error {
	q := GetQuerier(ctx, r.db)

	// Requests may predate SLA tracking, so a missing metric is not an error.
	_, err := q.Exec(ctx, `DELETE FROM sla_metrics WHERE request_id = $1`, requestID)
	return err
}

func (r *slaMetricRepository) ListPendingByTenant(ctx context.Context, tenantID string) ([]sla.Metric, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM sla_metrics
		WHERE tenant_id = $1 AND status = 'pending'
		ORDER BY submitted_at ASC
	`, slaMetricColumns)

	return r.listMetrics(ctx, query, tenantID)
}

func (r *slaMetricRepository) ListPending(ctx context.Context) ([]sla.Metric, error) {
	query := fmt.Sprintf(`
		SELECT %s FROM sla_metrics
		WHERE status = 'pending'
		ORDER BY tenant_id, submitted_at ASC
	`, slaMetricColumns)

	return r.listMetrics(ctx, query)
}

func (r *slaMetricRepository) ListCompletedByTenant(ctx context.Context, tenantID string, window sla.StatsWindow) ([]sla.Metric, error) {
	whereClauses := []string{"tenant_id = $1", "status != 'pending'"}
	args := []interface{}{tenantID}
	argPos := 2

	if !window.From.IsZero() {
		whereClauses = append(whereClauses, fmt.Sprintf("responded_at >= $%d", argPos))
		args = append(args, window.From)
		argPos++
	}
	if !window.To.IsZero() {
		whereClauses = append(whereClauses, fmt.Sprintf("responded_at <= $%d", argPos))
		args = append(args, window.To)
	}

	query := fmt.Sprintf(`
		SELECT %s FROM sla_metrics
		WHERE %s
		ORDER BY responded_at ASC
	`, slaMetricColumns, strings.Join(whereClauses, " AND "))

	return r.listMetrics(ctx, query, args...)
}
